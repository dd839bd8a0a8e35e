package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
)

// checkReturnPaths runs dead-code/path-return analysis over body and, for
// a non-void signature, reports FLOW004 when some path falls off the end
// without returning.
func (a *Analyzer) checkReturnPaths(name string, nonVoid bool, body *ast.CompoundStmt) {
	if body == nil {
		return
	}
	terminates := a.analyzeFlow(body)
	if nonVoid && !terminates {
		a.ctx.Diagnostics.Errorf(codes.FLOW004, primaryLoc(body), "not all paths in %q return a value", name)
	}
}

// analyzeFlow reports FLOW003 for any statement following one that always
// terminates its enclosing block, and returns whether body itself always
// terminates (via return/break/continue/a call to a noreturn function on
// every path). The result is also recorded on body.HasReturn.
func (a *Analyzer) analyzeFlow(body *ast.CompoundStmt) bool {
	terminated := false
	reportedDead := false
	for _, stmt := range body.Statements {
		if terminated && !reportedDead {
			a.ctx.Diagnostics.Errorf(codes.FLOW003, primaryLoc(stmt), "unreachable code")
			reportedDead = true
		}
		if a.stmtTerminates(stmt) {
			terminated = true
		}
	}
	body.HasReturn = terminated
	return terminated
}

func (a *Analyzer) stmtTerminates(s ast.Stmt) bool {
	switch v := s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	case *ast.CompoundStmt:
		return a.analyzeFlow(v)
	case *ast.IfStmt:
		thenTerm := a.analyzeFlow(v.Then)
		if v.Else == nil {
			return false
		}
		return thenTerm && a.stmtTerminates(v.Else)
	case *ast.WhileStmt:
		a.analyzeFlow(v.Body)
		return false
	case *ast.ForStmt:
		a.analyzeFlow(v.Body)
		return false
	case *ast.SwitchStmt:
		hasDefault := false
		allTerminate := true
		for _, c := range v.Cases {
			if c.IsDefault {
				hasDefault = true
			}
			if !a.analyzeFlow(c.Body) {
				allTerminate = false
			}
		}
		return hasDefault && allTerminate
	case *ast.ExprStmt:
		if call, ok := v.Value.(*ast.FuncCallExpr); ok {
			return a.calleeIsNoReturn(call)
		}
		return false
	default:
		return false
	}
}

func (a *Analyzer) calleeIsNoReturn(call *ast.FuncCallExpr) bool {
	decl := call.Decl()
	if decl == nil {
		switch callee := call.Callee.(type) {
		case *ast.VarExpr:
			decl = callee.Decl()
		case *ast.PropertyRefExpr:
			decl = callee.Decl()
		}
	}
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return d.Modifiers.Has(ast.ModNoReturn)
	case *ast.MethodDecl:
		return d.Modifiers.Has(ast.ModNoReturn)
	default:
		return false
	}
}
