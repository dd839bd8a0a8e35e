// Package ident provides interned names and source locations shared by
// every later compiler stage: the AST, the diagnostic engine, the
// constraint solver, and the mangler all key off the same Identifier and
// SourceRange types.
package ident

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Identifier is a name with an optional source range. Equality and
// hashing are by name only, a single identity rather than two drifting
// notions across revisions; the range is metadata carried for
// diagnostics.
//
// Names are NFC-normalized at construction so that two textually distinct
// but canonically identical spellings (e.g. a precomposed vs. decomposed
// accent) intern to the same Identifier.
type Identifier struct {
	Name  string
	Range *SourceRange
}

// New creates an Identifier with no source range, used for synthetic names
// (implicit self, compiler-generated metavariables).
func New(name string) Identifier {
	return Identifier{Name: normalize(name)}
}

// NewAt creates an Identifier with a source range.
func NewAt(name string, rng SourceRange) Identifier {
	r := rng
	return Identifier{Name: normalize(name), Range: &r}
}

func normalize(name string) string {
	if norm.NFC.IsNormal([]byte(name)) {
		return name
	}
	return string(norm.NFC.Bytes([]byte(name)))
}

// Equal compares identifiers by name only.
func (i Identifier) Equal(other Identifier) bool {
	return i.Name == other.Name
}

func (i Identifier) String() string {
	return i.Name
}

// SourceLocation is a single point in a source file.
type SourceLocation struct {
	File       string
	Line       int
	Column     int
	CharOffset int
}

// Less orders locations by CharOffset, falling back to Line/Column when
// offsets tie or are unset (e.g. synthetic locations).
func (l SourceLocation) Less(other SourceLocation) bool {
	if l.CharOffset != other.CharOffset {
		return l.CharOffset < other.CharOffset
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

func (l SourceLocation) String() string {
	file := l.File
	if file == "" {
		file = "<stdin>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// SourceRange is an inclusive start/end pair.
type SourceRange struct {
	Start SourceLocation
	End   SourceLocation
}

func (r SourceRange) String() string {
	if r.Start.File == r.End.File && r.Start.Line == r.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", r.Start.File, r.Start.Line, r.Start.Column, r.End.Column)
	}
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Contains reports whether loc falls within the inclusive range.
func (r SourceRange) Contains(loc SourceLocation) bool {
	return !loc.Less(r.Start) && !r.End.Less(loc)
}
