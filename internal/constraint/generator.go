package constraint

import (
	"fmt"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/visit"
)

// Generator walks an expression tree computing each subexpression's
// goal type while emitting the constraints that type must satisfy. It
// implements visit.Transformer[dtype.Type] so a single Goal call
// dispatches through the shared visitor rather than a bespoke switch.
//
// A Generator is single-use per trial: construct it, optionally call
// WithTrial to provisionally stand in for one call/operator/subscript/
// property-ref site's still-undecided candidate, call Goal once on the
// root expression, then hand Constraints and Punishments to a Solver.
// The trial candidate is never written back onto the AST node — only
// the overload resolver's eventual winner is committed via SetDecl,
// never a provisional one.
type Generator struct {
	visit.BaseTransformer[dtype.Type]

	Constraints []Constraint
	Punishments Punishments

	fresh int

	trialNode ast.Node
	trialDecl ast.Decl
}

// NewGenerator creates an empty generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// WithTrial installs decl as the provisional resolution for node for the
// duration of this generator's walk, without touching node's write-once
// Decl cell. Returns the receiver for chaining at the call site.
func (g *Generator) WithTrial(node ast.Node, decl ast.Decl) *Generator {
	g.trialNode = node
	g.trialDecl = decl
	return g
}

// resolvedDecl returns the trial candidate if node is under trial,
// otherwise fallback (the node's own already-committed Decl(), if any).
func (g *Generator) resolvedDecl(node ast.Node, fallback any) any {
	if g.trialDecl != nil && node == g.trialNode {
		return g.trialDecl
	}
	return fallback
}

// FreshMeta mints a new metavariable, unique within this generator run.
func (g *Generator) FreshMeta() *dtype.MetaVariable {
	g.fresh++
	return &dtype.MetaVariable{Name: fmt.Sprintf("m%d", g.fresh)}
}

func (g *Generator) emit(c Constraint) { g.Constraints = append(g.Constraints, c) }

// punish records a coercion the generator itself had to introduce when
// substituting a literal type.
func (g *Generator) punish(kind CoercionKind) { g.Punishments.Add(kind) }

// Goal computes e's goal type, emitting constraints for its
// subexpressions along the way.
func (g *Generator) Goal(e ast.Expr) dtype.Type {
	return visit.VisitExpr[dtype.Type](g, e)
}

// funcSignatureType builds the dtype.Function a parameter list and
// return-type reference denote, once the semantic analyser's
// registration pass has resolved every ParamDecl.ResolvedType and
// return TypeRefExpr.Resolved().
func funcSignatureType(params []*ast.ParamDecl, retRef ast.TypeRefExpr, hasVarArgs bool) dtype.Type {
	args := make([]dtype.Type, len(params))
	for i, p := range params {
		if p.ResolvedType == nil {
			args[i] = &dtype.ErrorType{}
			continue
		}
		args[i] = p.ResolvedType
	}
	var ret dtype.Type = &dtype.Void{}
	if retRef != nil && retRef.Resolved() != nil {
		ret = retRef.Resolved()
	}
	return &dtype.Function{Args: args, Return: ret, HasVarArgs: hasVarArgs}
}

// --- Literals set the goal to their fixed literal type ---

func (g *Generator) VisitNumExpr(*ast.NumExpr) dtype.Type {
	return &dtype.Int{Width: dtype.Width64, Signed: true}
}

func (g *Generator) VisitFloatExpr(*ast.FloatExpr) dtype.Type {
	return &dtype.Floating{Kind: dtype.FloatDouble}
}

func (g *Generator) VisitCharExpr(*ast.CharExpr) dtype.Type {
	return &dtype.Int{Width: dtype.Width32, Signed: false}
}

func (g *Generator) VisitBoolExpr(*ast.BoolExpr) dtype.Type { return &dtype.Bool{} }

func (g *Generator) VisitStringExpr(s *ast.StringExpr) dtype.Type {
	for _, seg := range s.Segments {
		if seg.Interp != nil {
			g.Goal(seg.Interp)
		}
	}
	return &dtype.Custom{Name: "String"}
}

func (g *Generator) VisitNilExpr(*ast.NilExpr) dtype.Type { return &dtype.NilLiteral{} }

func (g *Generator) VisitVoidExpr(*ast.VoidExpr) dtype.Type { return &dtype.Void{} }

// VisitVarExpr sets the goal to the bound type in the environment, or to
// the referenced declaration's type. Resolution itself
// (local -> global -> func overload set -> type name) is the semantic
// analyser's job; by the time the generator runs, v.Decl() already
// carries the resolved binding (or, during overload-resolution trial
// solving, the candidate is supplied via WithTrial without mutating v).
func (g *Generator) VisitVarExpr(v *ast.VarExpr) dtype.Type {
	switch d := g.resolvedDecl(v, v.Decl()).(type) {
	case *ast.VarAssignDecl:
		if d.ResolvedType == nil {
			return &dtype.ErrorType{}
		}
		return d.ResolvedType
	case *ast.ParamDecl:
		if d.ResolvedType == nil {
			return &dtype.ErrorType{}
		}
		return d.ResolvedType
	case *ast.FuncDecl:
		return funcSignatureType(d.Params, d.ReturnType, d.HasVarArgs)
	case *ast.InitializerDecl:
		// Under trial during overload resolution of a `TypeName(args)`
		// call: the candidate's signature is (params...) -> the type
		// itself, since an initializer has no separate return-type ref.
		ret := &dtype.Custom{Name: d.ParentType.Name.Name}
		args := make([]dtype.Type, len(d.Params))
		for i, p := range d.Params {
			if p.ResolvedType == nil {
				args[i] = &dtype.ErrorType{}
				continue
			}
			args[i] = p.ResolvedType
		}
		return &dtype.Function{Args: args, Return: ret}
	case []*ast.FuncDecl:
		if len(d) == 1 {
			return funcSignatureType(d[0].Params, d[0].ReturnType, d[0].HasVarArgs)
		}
		// An overload set with more than one member is only resolvable at
		// a call site; standing alone it types as an unconstrained meta.
		return g.FreshMeta()
	case *ast.TypeDecl:
		// A type name used as a value (e.g. a static-method base) types as
		// a fresh variable standing for "the type itself".
		return g.FreshMeta()
	default:
		return &dtype.ErrorType{}
	}
}

// VisitPropertyRefExpr emits equal(typeDecl.type, goalOfLhs) and
// equal(referencedDecl.type, freshMeta); the goal becomes the fresh
// meta.
func (g *Generator) VisitPropertyRefExpr(p *ast.PropertyRefExpr) dtype.Type {
	lhsGoal := g.Goal(p.Receiver)
	meta := g.FreshMeta()
	switch d := g.resolvedDecl(p, p.Decl()).(type) {
	case *ast.PropertyDecl:
		if d.ParentType != nil {
			g.emit(Equal(&dtype.Custom{Name: d.ParentType.Name.Name}, lhsGoal, p, "property"))
		}
		if d.TypeRef != nil && d.TypeRef.Resolved() != nil {
			g.emit(Equal(d.TypeRef.Resolved(), meta, p, "property"))
		}
	case *ast.VarAssignDecl: // stored field
		if d.EnclosingType != nil {
			g.emit(Equal(&dtype.Custom{Name: d.EnclosingType.Name.Name}, lhsGoal, p, "property"))
		}
		if d.ResolvedType != nil {
			g.emit(Equal(d.ResolvedType, meta, p, "property"))
		}
	case *ast.MethodDecl:
		if d.ParentType != nil {
			g.emit(Equal(&dtype.Custom{Name: d.ParentType.Name.Name}, lhsGoal, p, "property"))
		}
		// The call site never supplies self explicitly (it's the
		// receiver p.Receiver already constrained above), so the
		// function type offered here must drop the implicit-self
		// parameter to line up with the FuncCallExpr's argGoals.
		params := d.Params
		if d.Kind.HasImplicitSelf() && len(params) > 0 {
			params = params[1:]
		}
		g.emit(Equal(funcSignatureType(params, d.ReturnType, false), meta, p, "property"))
	}
	return meta
}

// VisitFuncCallExpr emits equal(lhsGoal, function(argGoals, freshMeta,
// hasVarArgs)). hasVarArgs is read off the callee's own
// function goal, since a variadic tail is a property of the candidate
// being called, not of the call site.
func (g *Generator) VisitFuncCallExpr(f *ast.FuncCallExpr) dtype.Type {
	lhsGoal := g.Goal(f.Callee)
	argGoals := make([]dtype.Type, len(f.Args))
	for i, a := range f.Args {
		argGoals[i] = g.Goal(a.Value)
	}
	meta := g.FreshMeta()
	hasVarArgs := false
	if fn, ok := lhsGoal.(*dtype.Function); ok {
		hasVarArgs = fn.HasVarArgs
	}
	g.emit(Equal(lhsGoal, &dtype.Function{Args: argGoals, Return: meta, HasVarArgs: hasVarArgs}, f, "call"))
	return meta
}

// VisitInfixOperatorExpr emits equal(decl.type, function([lhsGoal,
// rhsGoal], freshMeta, false)).
func (g *Generator) VisitInfixOperatorExpr(i *ast.InfixOperatorExpr) dtype.Type {
	lhsGoal := g.Goal(i.LHS)
	rhsGoal := g.Goal(i.RHS)
	meta := g.FreshMeta()
	var declType dtype.Type = &dtype.ErrorType{}
	if od, ok := g.resolvedDecl(i, i.Decl()).(*ast.OperatorDecl); ok {
		declType = funcSignatureType(od.Params, od.ReturnType, false)
	}
	g.emit(Equal(declType, &dtype.Function{Args: []dtype.Type{lhsGoal, rhsGoal}, Return: meta, HasVarArgs: false}, i, "infix"))
	return meta
}

// VisitTernaryExpr ties the condition to Bool and both arms to a common
// fresh meta.
func (g *Generator) VisitTernaryExpr(t *ast.TernaryExpr) dtype.Type {
	condGoal := g.Goal(t.Cond)
	g.emit(Equal(condGoal, &dtype.Bool{}, t, "ternary"))
	meta := g.FreshMeta()
	g.emit(Equal(g.Goal(t.Then), meta, t, "ternary"))
	g.emit(Equal(g.Goal(t.Else), meta, t, "ternary"))
	return meta
}

// VisitArrayExpr requires every element's goal to equal a common fresh
// meta, so a later mismatch surfaces as an ordinary equal() failure
// instead of a bespoke element-type check.
func (g *Generator) VisitArrayExpr(a *ast.ArrayExpr) dtype.Type {
	meta := g.FreshMeta()
	for _, e := range a.Elements {
		g.emit(Equal(g.Goal(e), meta, a, "array"))
	}
	return &dtype.Array{Elem: meta}
}

// VisitTupleExpr's goal is the tuple of its elements' goals; arity
// itself is structural, so no extra constraint is needed beyond what
// visiting each element already emitted.
func (g *Generator) VisitTupleExpr(t *ast.TupleExpr) dtype.Type {
	fields := make([]dtype.Type, len(t.Elements))
	for i, e := range t.Elements {
		fields[i] = g.Goal(e)
	}
	return &dtype.Tuple{Fields: fields}
}

// VisitTupleFieldLookupExpr's goal is the receiver tuple's field type at
// Index; out-of-range indices are a sema-level diagnostic, not a
// constraint failure, so this returns a fresh meta rather than emitting
// a constraint that can never be satisfied.
func (g *Generator) VisitTupleFieldLookupExpr(t *ast.TupleFieldLookupExpr) dtype.Type {
	recvGoal := g.Goal(t.Receiver)
	if tup, ok := recvGoal.(*dtype.Tuple); ok && t.Index >= 0 && t.Index < len(tup.Fields) {
		return tup.Fields[t.Index]
	}
	return g.FreshMeta()
}

// VisitSubscriptExpr mirrors VisitFuncCallExpr for a user-declared
// subscript candidate under trial; builtin pointer/array subscripting
// is dispatched directly by sema and never reaches the generator.
func (g *Generator) VisitSubscriptExpr(s *ast.SubscriptExpr) dtype.Type {
	idxGoal := g.Goal(s.Index)
	meta := g.FreshMeta()
	if d, ok := g.resolvedDecl(s, s.Decl()).(*ast.SubscriptDecl); ok {
		declType := funcSignatureType(d.Params, d.ReturnType, false)
		g.emit(Equal(declType, &dtype.Function{Args: []dtype.Type{idxGoal}, Return: meta, HasVarArgs: false}, s, "subscript"))
	}
	return meta
}

// VisitPrefixOperatorExpr validates and types each prefix operator:
// `*` requires pointer operand (goal is the
// pointee), `&` requires an l-value (goal is a pointer to the operand),
// `!` requires Bool, the rest type as the operand's own goal (numeric
// unary `-`/`~`; well-formedness is a sema-level check, not a
// constraint).
func (g *Generator) VisitPrefixOperatorExpr(p *ast.PrefixOperatorExpr) dtype.Type {
	operandGoal := g.Goal(p.Operand)
	switch p.Operator {
	case ast.OpDeref:
		meta := g.FreshMeta()
		g.emit(Equal(operandGoal, &dtype.Pointer{Elem: meta}, p, "prefix"))
		return meta
	case ast.OpAddr:
		return &dtype.Pointer{Elem: operandGoal}
	case ast.OpNot:
		g.emit(Equal(operandGoal, &dtype.Bool{}, p, "prefix"))
		return &dtype.Bool{}
	default:
		return operandGoal
	}
}

// VisitCoercionExpr's goal is the resolved target type; `canCoerce`
// validity is checked by sema before the expression is typed.
func (g *Generator) VisitCoercionExpr(c *ast.CoercionExpr) dtype.Type {
	g.Goal(c.Value)
	if c.Target != nil && c.Target.Resolved() != nil {
		return c.Target.Resolved()
	}
	return &dtype.ErrorType{}
}

// VisitIsExpr always types as Bool; the `any`-only-is-meaningful warning
// is a sema-level diagnostic, not a constraint concern.
func (g *Generator) VisitIsExpr(i *ast.IsExpr) dtype.Type {
	g.Goal(i.Value)
	return &dtype.Bool{}
}

// VisitParenExpr passes the inner goal through unchanged.
func (g *Generator) VisitParenExpr(p *ast.ParenExpr) dtype.Type { return g.Goal(p.Inner) }

// VisitPromotionExpr is synthesized by the Type Propagator post-pass,
// always already typed as Any by the time anything asks for its goal.
func (g *Generator) VisitPromotionExpr(p *ast.PromotionExpr) dtype.Type {
	g.Goal(p.Value)
	return &dtype.Any{}
}

// VisitSizeofExpr always types as the platform word-sized unsigned
// integer; its operand is a type reference, not a value expression, so
// there is nothing further to visit.
func (g *Generator) VisitSizeofExpr(*ast.SizeofExpr) dtype.Type {
	return &dtype.Int{Width: dtype.Width64, Signed: false}
}

// VisitClosureExpr's goal is the function type its parameter list and
// return-type annotation denote; the body is checked by sema as its own
// nested scope, not walked for constraints here.
func (g *Generator) VisitClosureExpr(c *ast.ClosureExpr) dtype.Type {
	return funcSignatureType(c.Params, c.ReturnType, false)
}
