// Package diag implements the diagnostic sink plus a thin terminal
// renderer. The sink itself is the core piece; rendering is kept
// deliberately small.
package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/juniper-lang/frontend/internal/ident"
	"github.com/juniper-lang/frontend/internal/sid"
)

// Severity ranks a Diagnostic. Order matters: errors sort before warnings
// sort before notes when a caller wants a stable grouping.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is a single error, warning, or note emitted by the semantic
// analyser, constraint solver, or overload resolver. It carries exactly
// one primary location plus zero or more highlight ranges.
type Diagnostic struct {
	Code       string
	Severity   Severity
	Message    string
	Primary    *ident.SourceLocation
	Highlights []ident.SourceRange
	Notes      []string
}

// WithNote appends a note (e.g. a "candidates" listing for an overload
// resolution failure) and returns the receiver for chaining at call sites.
func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

func (d *Diagnostic) jsonRecord() map[string]any {
	rec := map[string]any{
		"code":     d.Code,
		"severity": d.Severity.String(),
		"message":  d.Message,
	}
	if d.Primary != nil {
		rec["location"] = d.Primary.String()
	}
	if len(d.Notes) > 0 {
		rec["notes"] = d.Notes
	}
	return rec
}

// ToJSON renders a single diagnostic as deterministic JSON (sorted keys,
// stable shape) so tooling downstream of this front end can consume
// diagnostics machine-readably without depending on the terminal
// renderer below.
func (d *Diagnostic) ToJSON() (string, error) {
	data, err := json.Marshal(d.jsonRecord())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Engine is the append-only diagnostic sink; writes are ordered by walk
// order. It is not safe for concurrent use — the front end is
// single-threaded.
type Engine struct {
	diagnostics []*Diagnostic
}

// NewEngine creates an empty sink.
func NewEngine() *Engine {
	return &Engine{}
}

// Report appends a new diagnostic and returns it so the caller can attach
// notes.
func (e *Engine) Report(sev Severity, code, message string, primary *ident.SourceLocation, highlights ...ident.SourceRange) *Diagnostic {
	d := &Diagnostic{
		Code:       code,
		Severity:   sev,
		Message:    message,
		Primary:    primary,
		Highlights: highlights,
	}
	e.diagnostics = append(e.diagnostics, d)
	return d
}

// Errorf is a convenience wrapper for the common case of an error
// diagnostic with a formatted message.
func (e *Engine) Errorf(code string, primary *ident.SourceLocation, format string, args ...any) *Diagnostic {
	return e.Report(SeverityError, code, fmt.Sprintf(format, args...), primary)
}

// Warnf is the warning counterpart of Errorf.
func (e *Engine) Warnf(code string, primary *ident.SourceLocation, format string, args ...any) *Diagnostic {
	return e.Report(SeverityWarning, code, fmt.Sprintf(format, args...), primary)
}

// All returns the diagnostics in walk order (insertion order).
func (e *Engine) All() []*Diagnostic {
	return e.diagnostics
}

// HasErrors reports whether any diagnostic at or above SeverityError was
// recorded.
func (e *Engine) HasErrors() bool {
	for _, d := range e.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// fingerprint computes d's stable SID, keyed off its primary location
// (or the unlocated sentinel "<none>" for diagnostics with no Primary).
func (d *Diagnostic) fingerprint() sid.SID {
	file, offset := "<none>", 0
	if d.Primary != nil {
		file, offset = d.Primary.File, d.Primary.CharOffset
	}
	return sid.New(file, offset, d.Code, d.Message)
}

// Dedupe drops diagnostics that fingerprint identically to one already
// seen, keeping the first occurrence. The overload resolver and
// constraint generator each trial-solve a site more than once while
// ranking candidates; should a future check ever report the same
// complaint from two different trial passes over the same node, this
// keeps the Engine's final output free of the resulting repeats.
func (e *Engine) Dedupe() {
	seen := make(map[sid.SID]bool, len(e.diagnostics))
	out := e.diagnostics[:0]
	for _, d := range e.diagnostics {
		fp := d.fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, d)
	}
	e.diagnostics = out
}

// CountBySeverity returns how many recorded diagnostics have severity sev.
func (e *Engine) CountBySeverity(sev Severity) int {
	n := 0
	for _, d := range e.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// sortedGroups returns diagnostics grouped by severity, worst first,
// preserving insertion order within a group. Used only by the renderer;
// the underlying sink order is never mutated.
func (e *Engine) sortedGroups() []*Diagnostic {
	out := make([]*Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	locColor     = color.New(color.Faint)
)

// Render prints every diagnostic to w, worst severity first, colorizing
// the severity label the way a terminal REPL colorizes its prompt
// output. This is the full extent of "diagnostic rendering" this front
// end owns; a real driver would hand the Engine to a richer presentation
// layer instead.
func Render(w io.Writer, e *Engine) {
	for _, d := range e.sortedGroups() {
		label := errorColor.Sprint(d.Severity)
		switch d.Severity {
		case SeverityWarning:
			label = warningColor.Sprint(d.Severity)
		case SeverityNote:
			label = noteColor.Sprint(d.Severity)
		}
		loc := ""
		if d.Primary != nil {
			loc = locColor.Sprintf(" %s", d.Primary)
		}
		fmt.Fprintf(w, "%s[%s]%s: %s\n", label, d.Code, loc, d.Message)
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", noteColor.Sprint("note:"), note)
		}
	}
}
