package constraint

import (
	"fmt"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/compctx"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// ErrorKind distinguishes the two ways solveSingle can fail.
type ErrorKind int

const (
	CannotConvert ErrorKind = iota
	OccursCheck
)

// Error is a constraint-solving failure, carrying enough context for
// the caller (sema or the overload resolver) to turn it into a
// TYPE003-class diagnostic.
type Error struct {
	Kind    ErrorKind
	Node    ast.Node
	Message string
}

func (e *Error) Error() string { return e.Message }

func cannotConvert(c Constraint, msg string) error {
	return &Error{Kind: CannotConvert, Node: c.Node, Message: msg}
}

// Solution is what solving one constraint (or a whole system) produces:
// the substitution it required, plus the punishments that substitution
// cost.
type Solution struct {
	Sub         Substitution
	Punishments Punishments
}

// Solver discharges constraints against a Context's type-decl/protocol
// tables: a classic unifier over this language's type algebra (no row
// polymorphism), plus a conforms() constraint for protocol checking.
type Solver struct {
	ctx *compctx.Context
}

// NewSolver creates a solver bound to ctx's type-decl and protocol
// tables (needed by conforms() to look up nominal types).
func NewSolver(ctx *compctx.Context) *Solver {
	return &Solver{ctx: ctx}
}

// SolveSystem discharges every constraint in cs in order, threading one
// substitution and one punishment multiset through. The first
// constraint that fails aborts the whole system.
func (s *Solver) SolveSystem(cs []Constraint) (*Solution, error) {
	sol := &Solution{Sub: Substitution{}}
	for _, c := range cs {
		next, err := s.solveSingle(c, sol.Sub)
		if err != nil {
			return nil, err
		}
		merged, ok := Compose(sol.Sub, next.Sub)
		if !ok {
			return nil, cannotConvert(c, fmt.Sprintf("conflicting substitution while solving %s", c))
		}
		sol.Sub = merged
		sol.Punishments.Merge(next.Punishments)
	}
	return sol, nil
}

func (s *Solver) solveSingle(c Constraint, sub Substitution) (*Solution, error) {
	if c.Kind == KindConforms {
		return s.solveConforms(c)
	}
	return s.solveEqual(c.T1, c.T2, c, sub)
}

// solveConforms canonicalises both sides, looks up the type decl for T1
// and the protocol decl for T2, verifies conformance (directly or
// through protocol refinement), and on success produces a solution
// tagged ExistentialPromotion — conformance permits T1 to stand
// wherever the protocol's existential is demanded, at a cost distinct
// from (and cheaper than) a raw Any-typed value standing in.
func (s *Solver) solveConforms(c Constraint) (*Solution, error) {
	t1 := s.ctx.Canonicalize(c.T1)
	t2 := s.ctx.Canonicalize(c.T2)
	named, ok := t1.(*dtype.Custom)
	if !ok {
		return nil, cannotConvert(c, fmt.Sprintf("%s is not a nominal type and cannot conform to anything", t1))
	}
	protoName, ok := t2.(*dtype.Custom)
	if !ok {
		return nil, cannotConvert(c, fmt.Sprintf("%s does not name a protocol", t2))
	}
	td, ok := s.ctx.LookupTypeDecl(named.Name)
	if !ok {
		return nil, cannotConvert(c, fmt.Sprintf("unknown type %q", named.Name))
	}
	proto, ok := s.ctx.LookupProtocol(protoName.Name)
	if !ok {
		return nil, cannotConvert(c, fmt.Sprintf("unknown protocol %q", protoName.Name))
	}
	if !conformsToProtocol(s.ctx, td, proto.Name.Name) {
		return nil, cannotConvert(c, fmt.Sprintf("%s does not conform to %s", named.Name, proto.Name.Name))
	}
	// Conformance lets T1 stand wherever the protocol's existential is
	// demanded, but that substitution is cheaper than a raw any-typed
	// value standing in: tag it ExistentialPromotion, not AnyPromotion,
	// so the overload resolver's punishment ranking can tell a candidate
	// accepted only via protocol conformance apart from one accepted only
	// via a bare Any parameter.
	sol := &Solution{Sub: Substitution{}}
	sol.Punishments.Add(ExistentialPromotion)
	return sol, nil
}

// conformsToProtocol reports whether td declares conformance to
// protoName, directly or via a declared protocol that itself refines
// protoName, gathering the protocol and its parents.
func conformsToProtocol(ctx *compctx.Context, td *ast.TypeDecl, protoName string) bool {
	for _, name := range td.Conformances {
		if name.Name == protoName {
			return true
		}
		if proto, ok := ctx.LookupProtocol(name.Name); ok && protocolRefines(ctx, proto, protoName, map[string]bool{}) {
			return true
		}
	}
	return false
}

func protocolRefines(ctx *compctx.Context, p *ast.ProtocolDecl, target string, seen map[string]bool) bool {
	if seen[p.Name.Name] {
		return false
	}
	seen[p.Name.Name] = true
	for _, parent := range p.Parents {
		if parent.Name == target {
			return true
		}
		if pp, ok := ctx.LookupProtocol(parent.Name); ok && protocolRefines(ctx, pp, target, seen) {
			return true
		}
	}
	return false
}

// solveEqual unifies t1 and t2 under sub, applying the equal() rules in
// order: canonicalise and check trivial equality;
// metavariable or type-variable vs anything binds (with an occurs
// check); function vs function recurses elementwise; pointer vs
// pointer, bool vs int, and anything vs any succeed without binding;
// anything else is a cannotConvert failure.
func (s *Solver) solveEqual(t1, t2 dtype.Type, c Constraint, sub Substitution) (*Solution, error) {
	t1 = s.ctx.Canonicalize(sub.Apply(t1))
	t2 = s.ctx.Canonicalize(sub.Apply(t2))

	// Equality is checked in both directions: Any.Equals accepts every
	// type, so a one-sided check would pass an Any operand as trivially
	// equal, skipping the anyPromotion tag below and leaving a
	// metavariable on the other side unbound.
	if t1.Equals(t2) && t2.Equals(t1) {
		return &Solution{Sub: Substitution{}}, nil
	}

	if v1, ok := variableName(t1); ok {
		return s.bind(v1, t1, t2, c)
	}
	if v2, ok := variableName(t2); ok {
		return s.bind(v2, t2, t1, c)
	}

	if f1, ok := t1.(*dtype.Function); ok {
		f2, ok := t2.(*dtype.Function)
		if !ok {
			return nil, cannotConvert(c, fmt.Sprintf("cannot unify %s with %s", t1, t2))
		}
		return s.solveFunctions(f1, f2, c)
	}

	if isPointerType(t1) && isPointerType(t2) {
		return &Solution{Sub: Substitution{}}, nil
	}
	if boolVsInt(t1, t2) {
		return &Solution{Sub: Substitution{}}, nil
	}
	if dtype.IsAny(t1) || dtype.IsAny(t2) {
		sol := &Solution{Sub: Substitution{}}
		sol.Punishments.Add(AnyPromotion)
		return sol, nil
	}

	return nil, cannotConvert(c, fmt.Sprintf("cannot unify %s with %s", t1, t2))
}

// solveFunctions unifies two function types elementwise: arities must
// match unless either side is variadic, then arguments pairwise and
// finally the return types.
func (s *Solver) solveFunctions(f1, f2 *dtype.Function, c Constraint) (*Solution, error) {
	if len(f1.Args) != len(f2.Args) && !f1.HasVarArgs && !f2.HasVarArgs {
		return nil, cannotConvert(c, fmt.Sprintf("function arity mismatch: %d vs %d", len(f1.Args), len(f2.Args)))
	}
	n := len(f1.Args)
	if len(f2.Args) < n {
		n = len(f2.Args)
	}
	sol := &Solution{Sub: Substitution{}}
	for i := 0; i < n; i++ {
		argSol, err := s.solveEqual(f1.Args[i], f2.Args[i], c, sol.Sub)
		if err != nil {
			return nil, err
		}
		if err := sol.absorb(argSol, c); err != nil {
			return nil, err
		}
	}
	retSol, err := s.solveEqual(f1.Return, f2.Return, c, sol.Sub)
	if err != nil {
		return nil, err
	}
	if err := sol.absorb(retSol, c); err != nil {
		return nil, err
	}
	return sol, nil
}

// absorb composes o into sol in place, reporting a cannotConvert error
// if the two sides disagree on a shared binding.
func (sol *Solution) absorb(o *Solution, c Constraint) error {
	merged, ok := Compose(sol.Sub, o.Sub)
	if !ok {
		return cannotConvert(c, "conflicting substitution during function unification")
	}
	sol.Sub = merged
	sol.Punishments.Merge(o.Punishments)
	return nil
}

// bind binds name to other with an occurs check. Binding
// a generic type variable (rather than an internal metavariable) is
// itself recorded as a genericPromotion punishment, since it means the
// call site is using the declared generic parameter rather than a
// concrete type.
func (s *Solver) bind(name string, variable, other dtype.Type, c Constraint) (*Solution, error) {
	if occurs(name, other) {
		return nil, &Error{Kind: OccursCheck, Node: c.Node, Message: fmt.Sprintf("%s occurs in %s", name, other)}
	}
	sol := &Solution{Sub: Substitution{name: other}}
	if _, isTypeVar := variable.(*dtype.TypeVariable); isTypeVar {
		sol.Punishments.Add(GenericPromotion)
	}
	return sol, nil
}

func variableName(t dtype.Type) (string, bool) {
	switch v := t.(type) {
	case *dtype.MetaVariable:
		return v.Name, true
	case *dtype.TypeVariable:
		return v.Name, true
	default:
		return "", false
	}
}

func isPointerType(t dtype.Type) bool {
	_, ok := t.(*dtype.Pointer)
	return ok
}

func boolVsInt(t1, t2 dtype.Type) bool {
	_, b1 := t1.(*dtype.Bool)
	_, b2 := t2.(*dtype.Bool)
	_, i1 := t1.(*dtype.Int)
	_, i2 := t2.(*dtype.Int)
	return (b1 && i2) || (i1 && b2)
}

// occurs reports whether the metavariable/type-variable named name
// appears anywhere inside t.
func occurs(name string, t dtype.Type) bool {
	switch v := t.(type) {
	case *dtype.MetaVariable:
		return v.Name == name
	case *dtype.TypeVariable:
		return v.Name == name
	case *dtype.Pointer:
		return occurs(name, v.Elem)
	case *dtype.Array:
		return occurs(name, v.Elem)
	case *dtype.Tuple:
		for _, f := range v.Fields {
			if occurs(name, f) {
				return true
			}
		}
		return false
	case *dtype.Function:
		for _, a := range v.Args {
			if occurs(name, a) {
				return true
			}
		}
		return v.Return != nil && occurs(name, v.Return)
	default:
		return false
	}
}
