package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
	"github.com/juniper-lang/frontend/internal/overload"
)

// checkCompound opens a child scope and checks every statement in order.
func (a *Analyzer) checkCompound(body *ast.CompoundStmt) {
	restore := a.stack.WithScope()
	defer restore()
	for _, s := range body.Statements {
		a.checkStmt(s)
	}
}

func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.ReturnStmt:
		a.checkReturnStmt(v)
	case *ast.BreakStmt:
		if a.stack.Current().BreakTarget == nil {
			a.ctx.Diagnostics.Errorf(codes.FLOW001, primaryLoc(v), "break used outside any loop or switch")
		}
	case *ast.ContinueStmt:
		if a.stack.Current().BreakTarget == nil {
			a.ctx.Diagnostics.Errorf(codes.FLOW002, primaryLoc(v), "continue used outside any loop")
		}
	case *ast.CompoundStmt:
		a.checkCompound(v)
	case *ast.IfStmt:
		condType := a.checkExpr(v.Cond)
		a.requireBool(condType, v.Cond)
		a.checkCompound(v.Then)
		if v.Else != nil {
			a.checkStmt(v.Else)
		}
	case *ast.WhileStmt:
		condType := a.checkExpr(v.Cond)
		a.requireBool(condType, v.Cond)
		restore := a.stack.WithBreakTarget(v)
		a.checkCompound(v.Body)
		restore()
	case *ast.ForStmt:
		restoreScope := a.stack.WithScope()
		if v.Init != nil {
			a.checkStmt(v.Init)
		}
		if v.Cond != nil {
			condType := a.checkExpr(v.Cond)
			a.requireBool(condType, v.Cond)
		}
		restoreBreak := a.stack.WithBreakTarget(v)
		a.checkCompound(v.Body)
		if v.Post != nil {
			a.checkStmt(v.Post)
		}
		restoreBreak()
		restoreScope()
	case *ast.SwitchStmt:
		a.checkSwitch(v)
	case *ast.ExprStmt:
		a.checkExpr(v.Value)
	case *ast.DeclStmt:
		a.checkDeclStmt(v)
	case *ast.PoundDiagnosticStmt:
		if a.stack.Current().CurrentFunc == nil && a.stack.Current().CurrentClosure == nil {
			a.ctx.Diagnostics.Errorf(codes.FLOW005, primaryLoc(v), "#%s used outside any function body", v.Name.Name)
		}
	default:
		panic("sema: unhandled stmt variant")
	}
}

func (a *Analyzer) checkReturnStmt(r *ast.ReturnStmt) {
	var retType dtype.Type = &dtype.Void{}
	if closure := a.stack.Current().CurrentClosure; closure != nil {
		if closure.ReturnType != nil && closure.ReturnType.Resolved() != nil {
			retType = closure.ReturnType.Resolved()
		}
	} else if fn := a.stack.Current().CurrentFunc; fn != nil && fn.ReturnType != nil {
		if resolved := fn.ReturnType.Resolved(); resolved != nil {
			retType = resolved
		}
	}
	if r.Value == nil {
		return
	}
	valType := a.checkExpr(r.Value)
	if !a.ctx.CanCoerce(valType, retType) {
		a.ctx.Diagnostics.Errorf(codes.TYPE003, primaryLoc(r),
			"cannot return a value of type %s from a function returning %s", valType, retType)
	}
	r.Value = a.propagateAssign(r.Value, retType)
}

func (a *Analyzer) checkSwitch(sw *ast.SwitchStmt) {
	scrutType := a.checkExpr(sw.Scrutinee)
	hasEquality := a.hasEqualityOperator(scrutType)
	// A nilable type (pointer, indirect) with no genuine `==` overload
	// still switches, but only via the synthesised nil comparison: every
	// case constant must itself be nil, checked case-by-case below.
	nilOnly := !hasEquality && a.ctx.CanBeNil(scrutType)
	if !hasEquality && !nilOnly {
		a.ctx.Diagnostics.Errorf(codes.TYPE006, primaryLoc(sw), "values of type %s cannot be compared with ==", scrutType)
	}
	restore := a.stack.WithBreakTarget(sw)
	defer restore()
	for _, c := range sw.Cases {
		a.checkCase(c, scrutType, nilOnly)
	}
}

// hasEqualityOperator reports whether scrutType has a genuine `==`
// overload (builtin or user-declared) that actually accepts two operands
// of that type, trial-resolved the same way an infix `==` expression
// would be — not merely whether the operator name has any candidate at
// all, since the implicit operator table is seeded across every numeric
// width regardless of scrutType.
func (a *Analyzer) hasEqualityOperator(scrutType dtype.Type) bool {
	candidates, isNilComparison := a.ctx.InfixOperatorCandidate(ast.OpEq, scrutType, scrutType)
	if isNilComparison {
		return true
	}
	declCandidates := make([]ast.Decl, len(candidates))
	for idx, c := range candidates {
		declCandidates[idx] = c
	}
	// VisitVoidExpr always yields dtype.Void regardless of any committed
	// type, so the operands are synthesised as VarExprs bound to a
	// throwaway VarAssignDecl instead — VisitVarExpr reads ResolvedType
	// off the decl, which is how the generator actually learns scrutType.
	lhsOperand := syntheticOperand(scrutType)
	rhsOperand := syntheticOperand(scrutType)
	synthetic := &ast.InfixOperatorExpr{Operator: ast.OpEq, LHS: lhsOperand, RHS: rhsOperand}
	result := overload.Resolve(a.ctx, overload.Call{Root: synthetic, TrialNode: synthetic}, declCandidates)
	return result.Outcome == overload.Resolved
}

func syntheticOperand(t dtype.Type) *ast.VarExpr {
	decl := &ast.VarAssignDecl{Name: ident.New("_"), ResolvedType: t, Kind: ast.VarKindLocal}
	v := &ast.VarExpr{Name: ident.New("_")}
	v.SetDecl(decl)
	return v
}

func (a *Analyzer) checkCase(c *ast.CaseStmt, scrutType dtype.Type, nilOnly bool) {
	for _, constExpr := range c.Consts {
		constType := a.checkExpr(constExpr)
		if nilOnly {
			if _, isNil := constExpr.(*ast.NilExpr); !isNil {
				a.ctx.Diagnostics.Errorf(codes.TYPE006, primaryLoc(constExpr),
					"values of type %s cannot be compared with ==", scrutType)
			}
			continue
		}
		if !a.ctx.CanCoerce(constType, scrutType) && !a.ctx.CanCoerce(scrutType, constType) {
			a.ctx.Diagnostics.Errorf(codes.TYPE001, primaryLoc(constExpr),
				"case constant of type %s cannot match a scrutinee of type %s", constType, scrutType)
		}
	}
	a.checkCompound(c.Body)
}

func (a *Analyzer) checkDeclStmt(d *ast.DeclStmt) {
	decl := d.Decl
	var declaredType dtype.Type
	if decl.TypeRef != nil {
		declaredType = a.ctx.ResolveTypeRef(decl.TypeRef)
	}
	if decl.RHS != nil {
		rhsType := a.checkExpr(decl.RHS)
		if declaredType == nil {
			declaredType = rhsType
		} else if a.isImplicitAnyDowncast(rhsType, declaredType) {
			a.ctx.Diagnostics.Errorf(codes.TYPE004, primaryLoc(decl),
				"cannot downcast %q from Any to %s without an explicit cast", decl.Name.Name, declaredType).
				WithNote("addExplicitCast(to: " + declaredType.String() + ")")
		} else if !a.ctx.CanCoerce(rhsType, declaredType) {
			a.ctx.Diagnostics.Errorf(codes.TYPE003, primaryLoc(decl),
				"cannot initialize %q of type %s with a value of type %s", decl.Name.Name, declaredType, rhsType)
		}
		decl.RHS = a.propagateAssign(decl.RHS, declaredType)
	}
	decl.ResolvedType = declaredType
	if scope := a.stack.Current().CurrentScope; scope != nil {
		scope.Declare(decl.Name.Name, decl)
	}
}
