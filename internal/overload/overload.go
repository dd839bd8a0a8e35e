// Package overload implements the Overload Resolver: given a call site
// and a candidate set, it filters candidates by shape, trial-solves
// each survivor through the constraint generator and solver
// (internal/constraint), and picks the least-punished solution. The
// shape follows a classic filter-then-rank instance-resolution
// structure, adapted from type-class dictionary lookup to this
// language's label/arity/punishment-based candidate ranking.
package overload

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/compctx"
	"github.com/juniper-lang/frontend/internal/constraint"
)

// Outcome is one of the four results overload resolution can produce.
type Outcome int

const (
	Resolved Outcome = iota
	NoCandidates
	NoMatchingCandidates
	Ambiguity
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case NoCandidates:
		return "noCandidates"
	case NoMatchingCandidates:
		return "noMatchingCandidates"
	case Ambiguity:
		return "ambiguity"
	default:
		return "unknown"
	}
}

// Result is what Resolve returns. Decl is set only when Outcome ==
// Resolved; Ambiguous lists the tied winners when Outcome == Ambiguity.
// Considered always lists every candidate Resolve was handed, in order,
// so a diagnostic can attach a "candidates" note listing the formatted
// parameter list of every candidate considered.
type Result struct {
	Outcome    Outcome
	Decl       ast.Decl
	Ambiguous  []ast.Decl
	Considered []ast.Decl
}

// Call describes one overload-resolution call site. Root is the
// expression whose Goal computation exercises a candidate once it is
// installed; TrialNode is the node the candidate is provisionally
// substituted onto via constraint.Generator.WithTrial. For a
// FuncCallExpr reached through a VarExpr or PropertyRefExpr callee, Root
// is the FuncCallExpr and TrialNode is the callee; for an
// InfixOperatorExpr or SubscriptExpr, Root and TrialNode are the same
// node. Args is the call's argument list for shape filtering, or nil
// when arity/labels are fixed by construction (infix operators always
// have exactly two unlabelled operands).
type Call struct {
	Root      ast.Expr
	TrialNode ast.Node
	Args      []ast.Arg
}

// Resolve filters candidates by shape, trial-solves each survivor,
// ranks by punishment severity, and reports one of the four named
// outcomes.
func Resolve(ctx *compctx.Context, call Call, candidates []ast.Decl) *Result {
	result := &Result{Considered: candidates}
	if len(candidates) == 0 {
		result.Outcome = NoCandidates
		return result
	}

	type scored struct {
		decl        ast.Decl
		punishments constraint.Punishments
	}
	var survivors []scored

	for _, cand := range candidates {
		if !shapeMatches(call.Args, cand) {
			continue
		}
		gen := constraint.NewGenerator().WithTrial(call.TrialNode, cand)
		gen.Goal(call.Root)
		solver := constraint.NewSolver(ctx)
		sol, err := solver.SolveSystem(gen.Constraints)
		if err != nil {
			continue
		}
		total := gen.Punishments
		total.Merge(sol.Punishments)
		survivors = append(survivors, scored{decl: cand, punishments: total})
	}

	if len(survivors) == 0 {
		result.Outcome = NoMatchingCandidates
		return result
	}

	best := survivors[0]
	tied := []scored{best}
	for _, s := range survivors[1:] {
		switch s.punishments.Compare(best.punishments) {
		case -1:
			best = s
			tied = []scored{s}
		case 0:
			tied = append(tied, s)
		}
	}

	if len(tied) > 1 {
		result.Outcome = Ambiguity
		result.Ambiguous = make([]ast.Decl, len(tied))
		for i, s := range tied {
			result.Ambiguous[i] = s.decl
		}
		return result
	}

	result.Outcome = Resolved
	result.Decl = best.decl
	return result
}

// shapeMatches requires candidate arity to match args (or be fewer, for
// a variadic tail); labels must match the
// candidate's declared external names exactly and in order (the vararg
// tail is always unlabelled); implicit-self parameters are skipped
// before comparison. Args == nil (a fixed-arity call shape like an infix
// operator) always matches.
func shapeMatches(args []ast.Arg, cand ast.Decl) bool {
	if args == nil {
		return true
	}
	params, hasImplicitSelf, hasVarArgs := ast.CandidateSignature(cand)
	if hasImplicitSelf {
		if len(params) == 0 {
			return false
		}
		params = params[1:]
	}

	if hasVarArgs {
		if len(args) < len(params) {
			return false
		}
	} else if len(args) != len(params) {
		return false
	}

	for i, p := range params {
		if !labelMatches(args[i].Label, p) {
			return false
		}
	}
	// Vararg tail arguments beyond the declared parameters carry no label.
	for i := len(params); i < len(args); i++ {
		if args[i].Label != "" {
			return false
		}
	}
	return true
}

func labelMatches(argLabel string, p *ast.ParamDecl) bool {
	if p.ExternalName == "_" {
		return argLabel == ""
	}
	return argLabel == p.ExternalName
}
