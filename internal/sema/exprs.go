package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/constraint"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/overload"
)

// checkExpr resolves every descendant's declaration reference before its
// own, then commits a concrete type through the Constraint System. Each
// call-like node (FuncCallExpr, InfixOperatorExpr, SubscriptExpr,
// PropertyRefExpr) is resolved against its candidate set here, in the
// teacher's order of "children first": the Constraint Generator's own
// walk reads back already-committed Decl()/Type() values on descendants,
// so a parent must never be solved before its children are.
func (a *Analyzer) checkExpr(e ast.Expr) dtype.Type {
	switch v := e.(type) {
	case *ast.NumExpr, *ast.FloatExpr, *ast.CharExpr, *ast.BoolExpr, *ast.NilExpr, *ast.VoidExpr:
		return a.commit(e)
	case *ast.StringExpr:
		for _, seg := range v.Segments {
			if seg.Interp != nil {
				a.checkExpr(seg.Interp)
			}
		}
		return a.commit(e)
	case *ast.VarExpr:
		return a.checkVarExpr(v)
	case *ast.ParenExpr:
		a.checkExpr(v.Inner)
		return a.commit(e)
	case *ast.TupleExpr:
		for _, el := range v.Elements {
			a.checkExpr(el)
		}
		return a.commit(e)
	case *ast.ArrayExpr:
		for _, el := range v.Elements {
			a.checkExpr(el)
		}
		return a.commit(e)
	case *ast.TupleFieldLookupExpr:
		return a.checkTupleFieldLookup(v)
	case *ast.PropertyRefExpr:
		return a.checkPropertyRef(v, v, nil)
	case *ast.SubscriptExpr:
		return a.checkSubscript(v)
	case *ast.FuncCallExpr:
		return a.checkCall(v)
	case *ast.PrefixOperatorExpr:
		return a.checkPrefix(v)
	case *ast.InfixOperatorExpr:
		return a.checkInfix(v)
	case *ast.TernaryExpr:
		condType := a.checkExpr(v.Cond)
		a.requireBool(condType, v.Cond)
		a.checkExpr(v.Then)
		a.checkExpr(v.Else)
		return a.commit(e)
	case *ast.ClosureExpr:
		return a.checkClosure(v)
	case *ast.SizeofExpr:
		return a.commit(e)
	case *ast.CoercionExpr:
		return a.checkCoercion(v)
	case *ast.IsExpr:
		a.checkExpr(v.Value)
		return a.commit(e)
	case *ast.PromotionExpr:
		a.checkExpr(v.Value)
		return a.commit(e)
	default:
		panic("sema: unhandled expr variant")
	}
}

// commit runs a fresh, self-contained Generator/Solver pair over e and
// writes the resolved type onto e's write-once Type cell. It is safe to
// call repeatedly across sibling subtrees because Generator.Goal only
// reads already-committed Decl()/Type() values on descendants, never
// mutates them.
func (a *Analyzer) commit(e ast.Expr) dtype.Type {
	gen := constraint.NewGenerator()
	goal := gen.Goal(e)
	sol, err := constraint.NewSolver(a.ctx).SolveSystem(gen.Constraints)
	if err != nil {
		a.ctx.Diagnostics.Errorf(codes.TYPE001, primaryLoc(e), "%s", err)
		e.SetType(&dtype.ErrorType{})
		return &dtype.ErrorType{}
	}
	resolved := sol.Sub.Apply(goal)
	e.SetType(resolved)
	return resolved
}

func (a *Analyzer) requireBool(t dtype.Type, at ast.Node) {
	if _, ok := a.ctx.Canonicalize(t).(*dtype.Bool); !ok {
		a.ctx.Diagnostics.Errorf(codes.TYPE009, primaryLoc(at), "expected a Bool, got %s", t)
	}
}

// checkVarExpr resolves a bare name in the order local -> global -> free
// function overload set -> type name, accumulating a closure capture
// when resolution crosses a closure boundary.
func (a *Analyzer) checkVarExpr(v *ast.VarExpr) dtype.Type {
	var decl any
	if scope := a.stack.Current().CurrentScope; scope != nil {
		if local, ok := scope.Lookup(v.Name.Name); ok {
			decl = local
		}
	}
	if decl == nil {
		if g, ok := a.ctx.LookupGlobal(v.Name.Name); ok {
			decl = g
		}
	}
	if decl == nil {
		if fns := a.ctx.LookupFuncs(v.Name.Name); len(fns) > 0 {
			decl = fns
		}
	}
	if decl == nil {
		if td, ok := a.ctx.LookupTypeDecl(v.Name.Name); ok {
			decl = td
		}
	}
	if decl == nil {
		a.ctx.Diagnostics.Errorf(codes.LOOKUP003, primaryLoc(v), "no variable, function, or type named %q", v.Name.Name)
		v.SetType(&dtype.ErrorType{})
		return &dtype.ErrorType{}
	}
	v.SetDecl(decl)
	a.recordCapture(decl)
	return a.commit(v)
}

func (a *Analyzer) recordCapture(decl any) {
	closure := a.stack.Current().CurrentClosure
	if closure == nil {
		return
	}
	switch decl.(type) {
	case *ast.VarAssignDecl, *ast.ParamDecl:
		closure.Captures = append(closure.Captures, decl)
	}
}

func (a *Analyzer) checkTupleFieldLookup(t *ast.TupleFieldLookupExpr) dtype.Type {
	recvType := a.checkExpr(t.Receiver)
	switch canon := a.ctx.Canonicalize(recvType).(type) {
	case *dtype.Tuple:
		if t.Index < 0 || t.Index >= len(canon.Fields) {
			a.ctx.Diagnostics.Errorf(codes.TYPE001, primaryLoc(t), "tuple has no field at index %d", t.Index)
		}
	default:
		a.ctx.Diagnostics.Errorf(codes.TYPE010, primaryLoc(t), "cannot look up a tuple field on a value of type %s", recvType)
	}
	return a.commit(t)
}

// checkPropertyRef resolves receiver.Name against the receiver's stored
// fields, computed properties, and methods (including extension methods,
// which resolveExtensionSignature has moved into TypeDecl.Methods), in
// that order. root is the node whose Goal computation exercises a
// candidate during overload trial-solving: p itself for a bare
// reference, or the enclosing FuncCallExpr for a method call. callArgs
// is nil for a bare reference (any arity matches) or the call's actual
// argument list for a method call.
func (a *Analyzer) checkPropertyRef(p *ast.PropertyRefExpr, root ast.Expr, callArgs []ast.Arg) dtype.Type {
	receiverType := a.checkExpr(p.Receiver)
	canonical := a.ctx.Canonicalize(receiverType)
	custom, ok := canonical.(*dtype.Custom)
	if !ok {
		switch canonical.(type) {
		case *dtype.Pointer, *dtype.Tuple:
			a.ctx.Diagnostics.Errorf(codes.TYPE010, primaryLoc(p), "cannot access %q on a value of type %s", p.Name.Name, receiverType)
		case *dtype.Function:
			a.ctx.Diagnostics.Errorf(codes.TYPE011, primaryLoc(p), "cannot access field %q on a function type", p.Name.Name)
		default:
			a.ctx.Diagnostics.Errorf(codes.TYPE001, primaryLoc(p), "cannot access %q on a value of type %s", p.Name.Name, receiverType)
		}
		p.SetType(&dtype.ErrorType{})
		return &dtype.ErrorType{}
	}

	td, ok := a.ctx.LookupTypeDecl(custom.Name)
	if !ok {
		a.ctx.Diagnostics.Errorf(codes.LOOKUP004, primaryLoc(p), "unknown property %q", p.Name.Name)
		p.SetType(&dtype.ErrorType{})
		return &dtype.ErrorType{}
	}

	for _, f := range td.Fields {
		if f.Name.Name == p.Name.Name {
			p.SetDecl(f)
			return a.commit(p)
		}
	}
	for _, prop := range td.Properties {
		if prop.Name.Name == p.Name.Name {
			p.SetDecl(prop)
			return a.commit(p)
		}
	}

	var candidates []ast.Decl
	for _, m := range td.Methods {
		if m.Name.Name == p.Name.Name {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		a.ctx.Diagnostics.Errorf(codes.LOOKUP004, primaryLoc(p), "%s has no property or method named %q", custom, p.Name.Name)
		p.SetType(&dtype.ErrorType{})
		return &dtype.ErrorType{}
	}

	result := overload.Resolve(a.ctx, overload.Call{Root: root, TrialNode: p, Args: callArgs}, candidates)
	switch result.Outcome {
	case overload.Resolved:
		p.SetDecl(result.Decl)
		a.checkMutatingReceiver(result.Decl, p.Receiver)
	case overload.NoMatchingCandidates:
		a.ctx.Diagnostics.Errorf(codes.SIG009, primaryLoc(p), "no overload of %q matches this call", p.Name.Name).
			WithNote(candidatesNote(result.Considered))
	case overload.Ambiguity:
		a.ctx.Diagnostics.Errorf(codes.SIG010, primaryLoc(p), "reference to %q is ambiguous among %d overloads", p.Name.Name, len(result.Ambiguous)).
			WithNote(candidatesNote(result.Ambiguous))
	case overload.NoCandidates:
		a.ctx.Diagnostics.Errorf(codes.LOOKUP004, primaryLoc(p), "unknown property %q", p.Name.Name)
	}
	if p.Decl() == nil {
		p.SetType(&dtype.ErrorType{})
		return &dtype.ErrorType{}
	}
	return a.commit(p)
}

func (a *Analyzer) checkMutatingReceiver(decl ast.Decl, receiver ast.Expr) {
	m, ok := decl.(*ast.MethodDecl)
	if !ok || !m.Modifiers.Has(ast.ModMutating) {
		return
	}
	if v, ok := receiver.(*ast.VarExpr); ok {
		if local, ok := v.Decl().(*ast.VarAssignDecl); ok && local.IsConstant {
			a.ctx.Diagnostics.Errorf(codes.DECL009, primaryLoc(receiver),
				"cannot call mutating method %q on an immutable receiver", m.Name.Name)
		}
	}
}

func (a *Analyzer) checkSubscript(s *ast.SubscriptExpr) dtype.Type {
	receiverType := a.checkExpr(s.Receiver)
	a.checkExpr(s.Index)
	canonical := a.ctx.Canonicalize(receiverType)
	switch recv := canonical.(type) {
	case *dtype.Pointer:
		s.SetType(recv.Elem)
		return recv.Elem
	case *dtype.Array:
		s.SetType(recv.Elem)
		return recv.Elem
	case *dtype.Custom:
		td, ok := a.ctx.LookupTypeDecl(recv.Name)
		if !ok || len(td.Subscripts) == 0 {
			a.ctx.Diagnostics.Errorf(codes.TYPE005, primaryLoc(s), "type %s does not support subscripting", recv)
			s.SetType(&dtype.ErrorType{})
			return &dtype.ErrorType{}
		}
		var candidates []ast.Decl
		for _, sub := range td.Subscripts {
			candidates = append(candidates, sub)
		}
		result := overload.Resolve(a.ctx, overload.Call{Root: s, TrialNode: s, Args: []ast.Arg{{Value: s.Index}}}, candidates)
		switch result.Outcome {
		case overload.Resolved:
			s.SetDecl(result.Decl)
		case overload.NoMatchingCandidates:
			a.ctx.Diagnostics.Errorf(codes.SIG009, primaryLoc(s), "no subscript on %s matches this index type", recv).
				WithNote(candidatesNote(result.Considered))
		case overload.Ambiguity:
			a.ctx.Diagnostics.Errorf(codes.SIG010, primaryLoc(s), "subscript on %s is ambiguous", recv).
				WithNote(candidatesNote(result.Ambiguous))
		case overload.NoCandidates:
			a.ctx.Diagnostics.Errorf(codes.TYPE005, primaryLoc(s), "type %s does not support subscripting", recv)
		}
		if s.Decl() == nil {
			s.SetType(&dtype.ErrorType{})
			return &dtype.ErrorType{}
		}
		return a.commit(s)
	default:
		a.ctx.Diagnostics.Errorf(codes.TYPE005, primaryLoc(s), "cannot subscript a value of type %s", receiverType)
		s.SetType(&dtype.ErrorType{})
		return &dtype.ErrorType{}
	}
}

// checkCall dispatches on the callee's shape: a PropertyRefExpr callee is
// a method call resolved against the receiver's type; a VarExpr callee
// is resolved against the local/global/function-overload/initializer
// resolution order; anything else is an arbitrary function-typed value.
func (a *Analyzer) checkCall(f *ast.FuncCallExpr) dtype.Type {
	switch callee := f.Callee.(type) {
	case *ast.PropertyRefExpr:
		for _, arg := range f.Args {
			a.checkExpr(arg.Value)
		}
		a.checkPropertyRef(callee, f, f.Args)
		if callee.Decl() != nil {
			f.SetDecl(callee.Decl())
			a.propagateCallArgs(f, callee.Decl())
		}
		return a.commit(f)
	case *ast.VarExpr:
		for _, arg := range f.Args {
			a.checkExpr(arg.Value)
		}
		candidates := a.gatherVarCallCandidates(callee)
		if candidates == nil {
			a.checkVarExpr(callee)
			return a.commit(f)
		}
		result := overload.Resolve(a.ctx, overload.Call{Root: f, TrialNode: callee, Args: f.Args}, candidates)
		switch result.Outcome {
		case overload.Resolved:
			callee.SetDecl(result.Decl)
			f.SetDecl(result.Decl)
			a.propagateCallArgs(f, result.Decl)
		case overload.NoMatchingCandidates:
			a.ctx.Diagnostics.Errorf(codes.SIG009, primaryLoc(f), "no overload of %q matches this call", callee.Name.Name).
				WithNote(candidatesNote(result.Considered))
		case overload.Ambiguity:
			a.ctx.Diagnostics.Errorf(codes.SIG010, primaryLoc(f), "call to %q is ambiguous among %d overloads", callee.Name.Name, len(result.Ambiguous)).
				WithNote(candidatesNote(result.Ambiguous))
		case overload.NoCandidates:
			a.ctx.Diagnostics.Errorf(codes.LOOKUP002, primaryLoc(f), "no function named %q", callee.Name.Name)
		}
		return a.commit(f)
	default:
		a.checkExpr(f.Callee)
		for _, arg := range f.Args {
			a.checkExpr(arg.Value)
		}
		return a.commit(f)
	}
}

// gatherVarCallCandidates returns the free-function overload set (or a
// type's initializers, for a `TypeName(args)` construction call) a
// VarExpr callee should be resolved against, or nil when the name is
// shadowed by a local/global binding (checkVarExpr then reports the
// plain lookup failure or resolves it as an ordinary value reference).
func (a *Analyzer) gatherVarCallCandidates(callee *ast.VarExpr) []ast.Decl {
	name := callee.Name.Name
	if scope := a.stack.Current().CurrentScope; scope != nil {
		if _, ok := scope.Lookup(name); ok {
			return nil
		}
	}
	if _, ok := a.ctx.LookupGlobal(name); ok {
		return nil
	}
	var candidates []ast.Decl
	for _, fn := range a.ctx.LookupFuncs(name) {
		candidates = append(candidates, fn)
	}
	if len(candidates) > 0 {
		return candidates
	}
	if td, ok := a.ctx.LookupTypeDecl(name); ok {
		for _, init := range td.Initializers {
			candidates = append(candidates, init)
		}
		return candidates
	}
	return nil
}

func (a *Analyzer) propagateCallArgs(f *ast.FuncCallExpr, decl ast.Decl) {
	params, hasSelf, _ := ast.CandidateSignature(decl)
	if hasSelf && len(params) > 0 {
		params = params[1:]
	}
	for i := range f.Args {
		if i < len(params) && params[i].ResolvedType != nil {
			f.Args[i].Value = a.propagateAssign(f.Args[i].Value, params[i].ResolvedType)
		}
	}
}

func (a *Analyzer) checkPrefix(p *ast.PrefixOperatorExpr) dtype.Type {
	a.checkExpr(p.Operand)
	if p.Operator == ast.OpAddr && !isLValue(p.Operand) {
		a.ctx.Diagnostics.Errorf(codes.DECL006, primaryLoc(p), "cannot take the address of an r-value")
	}
	return a.commit(p)
}

func isLValue(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.VarExpr, *ast.PropertyRefExpr, *ast.SubscriptExpr:
		return true
	case *ast.ParenExpr:
		return isLValue(v.Inner)
	case *ast.PrefixOperatorExpr:
		return v.Operator == ast.OpDeref
	default:
		return false
	}
}

func (a *Analyzer) checkInfix(i *ast.InfixOperatorExpr) dtype.Type {
	lhsType := a.checkExpr(i.LHS)
	rhsType := a.checkExpr(i.RHS)

	if ast.IsAssignment(i.Operator) {
		return a.checkAssignment(i, lhsType, rhsType)
	}

	if i.Operator == ast.OpEq || i.Operator == ast.OpNe {
		_, lhsNil := lhsType.(*dtype.NilLiteral)
		_, rhsNil := rhsType.(*dtype.NilLiteral)
		if lhsNil || rhsNil {
			other := lhsType
			if lhsNil {
				other = rhsType
			}
			if !a.ctx.CanBeNil(other) {
				a.ctx.Diagnostics.Errorf(codes.TYPE012, primaryLoc(i), "cannot compare nil against a value of type %s", other)
			}
			i.SetType(&dtype.Bool{})
			return &dtype.Bool{}
		}
	}

	if i.Operator == ast.OpShl || i.Operator == ast.OpShr {
		a.checkShiftAmount(i, lhsType)
	}

	candidates, isNilComparison := a.ctx.InfixOperatorCandidate(i.Operator, lhsType, rhsType)
	if isNilComparison {
		i.SetType(&dtype.Bool{})
		return &dtype.Bool{}
	}
	declCandidates := make([]ast.Decl, len(candidates))
	for idx, c := range candidates {
		declCandidates[idx] = c
	}
	result := overload.Resolve(a.ctx, overload.Call{Root: i, TrialNode: i}, declCandidates)
	switch result.Outcome {
	case overload.Resolved:
		i.SetDecl(result.Decl)
	case overload.NoMatchingCandidates, overload.NoCandidates:
		a.ctx.Diagnostics.Errorf(codes.TYPE002, primaryLoc(i), "operator %q is not defined for operand types %s and %s", i.Operator, lhsType, rhsType)
	case overload.Ambiguity:
		a.ctx.Diagnostics.Errorf(codes.TYPE002, primaryLoc(i), "operator %q is ambiguous for operand types %s and %s", i.Operator, lhsType, rhsType)
	}
	return a.commit(i)
}

func (a *Analyzer) checkShiftAmount(i *ast.InfixOperatorExpr, lhsType dtype.Type) {
	lhsInt, ok := a.ctx.Canonicalize(lhsType).(*dtype.Int)
	if !ok {
		return
	}
	num, ok := i.RHS.(*ast.NumExpr)
	if !ok {
		return
	}
	if num.Value < 0 || num.Value >= int64(lhsInt.Width) {
		a.ctx.Diagnostics.Errorf(codes.TYPE008, primaryLoc(i),
			"shift amount %d exceeds the %d-bit operand width", num.Value, lhsInt.Width)
	}
}

// checkAssignment validates and types an assignment/compound-assignment
// infix. A compound assignment (`+=` etc.) is checked by resolving the
// operator overload set for its underlying binary operator, the same way
// the plain binary form is; a plain `=` is checked by simple coercion.
func (a *Analyzer) checkAssignment(i *ast.InfixOperatorExpr, lhsType, rhsType dtype.Type) dtype.Type {
	if v, ok := i.LHS.(*ast.VarExpr); ok {
		if local, ok := v.Decl().(*ast.VarAssignDecl); ok && local.IsConstant {
			a.ctx.Diagnostics.Errorf(codes.DECL005, primaryLoc(i), "cannot assign to constant %q", v.Name.Name)
		}
	}

	if op, ok := ast.UnderlyingOp(i.Operator); ok {
		candidates, _ := a.ctx.InfixOperatorCandidate(op, lhsType, rhsType)
		declCandidates := make([]ast.Decl, len(candidates))
		for idx, c := range candidates {
			declCandidates[idx] = c
		}
		synthetic := &ast.InfixOperatorExpr{Operator: op, LHS: i.LHS, RHS: i.RHS}
		result := overload.Resolve(a.ctx, overload.Call{Root: synthetic, TrialNode: synthetic}, declCandidates)
		if result.Outcome != overload.Resolved {
			a.ctx.Diagnostics.Errorf(codes.TYPE002, primaryLoc(i), "operator %q is not defined for operand types %s and %s", op, lhsType, rhsType)
		}
	} else if a.isImplicitAnyDowncast(rhsType, lhsType) {
		a.ctx.Diagnostics.Errorf(codes.TYPE004, primaryLoc(i), "cannot downcast from Any to %s without an explicit cast", lhsType).
			WithNote("addExplicitCast(to: " + lhsType.String() + ")")
	} else if !a.ctx.CanCoerce(rhsType, lhsType) {
		a.ctx.Diagnostics.Errorf(codes.TYPE003, primaryLoc(i), "cannot assign a value of type %s to a target of type %s", rhsType, lhsType)
	}

	i.RHS = a.propagateAssign(i.RHS, lhsType)
	i.SetType(lhsType)
	return lhsType
}

func (a *Analyzer) checkClosure(c *ast.ClosureExpr) dtype.Type {
	restoreScope := a.stack.WithScope()
	restoreClosure := a.stack.WithClosure(c)
	defer restoreScope()
	defer restoreClosure()

	for _, p := range c.Params {
		if p.TypeRef != nil {
			p.ResolvedType = a.ctx.ResolveTypeRef(p.TypeRef)
		}
	}
	if c.ReturnType != nil {
		a.ctx.ResolveTypeRef(c.ReturnType)
	}
	a.declareParams(c.Params)
	a.checkCompound(c.Body)
	a.checkReturnPaths("closure", c.ReturnType != nil, c.Body)

	args := make([]dtype.Type, len(c.Params))
	for i, p := range c.Params {
		args[i] = p.ResolvedType
	}
	var ret dtype.Type = &dtype.Void{}
	if c.ReturnType != nil && c.ReturnType.Resolved() != nil {
		ret = c.ReturnType.Resolved()
	}
	ft := &dtype.Function{Args: args, Return: ret}
	c.SetType(ft)
	return ft
}

func (a *Analyzer) checkCoercion(c *ast.CoercionExpr) dtype.Type {
	valueType := a.checkExpr(c.Value)
	target := a.ctx.ResolveTypeRef(c.Target)
	if !a.ctx.CanCoerce(valueType, target) {
		a.ctx.Diagnostics.Errorf(codes.TYPE003, primaryLoc(c), "cannot coerce a value of type %s to %s", valueType, target)
	}
	c.SetType(target)
	return target
}

// candidatesNote renders an overload failure's "candidates" note: the
// formatted parameter list of every candidate that was considered.
func candidatesNote(candidates []ast.Decl) string {
	note := "candidates:"
	for _, c := range candidates {
		params, _, _ := ast.CandidateSignature(c)
		note += " " + c.String() + "(" + ast.FormatParamList(params) + ");"
	}
	return note
}
