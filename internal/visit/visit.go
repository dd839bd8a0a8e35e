// Package visit implements the generic Visitor/Transformer: polymorphic
// dispatch over every AST variant, plus the scoped-state helpers
// (current function, type, scope, break target, closure) that the
// Semantic Analyser threads through a depth-first walk. Dispatch is a
// per-node-kind switch generalized to a Go generic interface so each
// concrete transformer only overrides the node kinds it cares about.
package visit

import "github.com/juniper-lang/frontend/internal/ast"

// Transformer is implemented by a tree walker that maps every AST
// variant to a result of type R. BaseTransformer supplies a default
// no-op body for every method so a concrete transformer need only
// override the handful of node kinds its pass actually cares about.
type Transformer[R any] interface {
	VisitFuncDecl(*ast.FuncDecl) R
	VisitOperatorDecl(*ast.OperatorDecl) R
	VisitInitializerDecl(*ast.InitializerDecl) R
	VisitDeinitializerDecl(*ast.DeinitializerDecl) R
	VisitMethodDecl(*ast.MethodDecl) R
	VisitSubscriptDecl(*ast.SubscriptDecl) R
	VisitPropertyDecl(*ast.PropertyDecl) R
	VisitParamDecl(*ast.ParamDecl) R
	VisitVarAssignDecl(*ast.VarAssignDecl) R
	VisitTypeDecl(*ast.TypeDecl) R
	VisitTypeAliasDecl(*ast.TypeAliasDecl) R
	VisitProtocolDecl(*ast.ProtocolDecl) R
	VisitExtensionDecl(*ast.ExtensionDecl) R
	VisitGenericParamDecl(*ast.GenericParamDecl) R

	VisitReturnStmt(*ast.ReturnStmt) R
	VisitBreakStmt(*ast.BreakStmt) R
	VisitContinueStmt(*ast.ContinueStmt) R
	VisitCompoundStmt(*ast.CompoundStmt) R
	VisitIfStmt(*ast.IfStmt) R
	VisitWhileStmt(*ast.WhileStmt) R
	VisitForStmt(*ast.ForStmt) R
	VisitSwitchStmt(*ast.SwitchStmt) R
	VisitCaseStmt(*ast.CaseStmt) R
	VisitExprStmt(*ast.ExprStmt) R
	VisitDeclStmt(*ast.DeclStmt) R
	VisitPoundDiagnosticStmt(*ast.PoundDiagnosticStmt) R

	VisitNumExpr(*ast.NumExpr) R
	VisitFloatExpr(*ast.FloatExpr) R
	VisitCharExpr(*ast.CharExpr) R
	VisitBoolExpr(*ast.BoolExpr) R
	VisitStringExpr(*ast.StringExpr) R
	VisitNilExpr(*ast.NilExpr) R
	VisitVoidExpr(*ast.VoidExpr) R
	VisitVarExpr(*ast.VarExpr) R
	VisitParenExpr(*ast.ParenExpr) R
	VisitTupleExpr(*ast.TupleExpr) R
	VisitArrayExpr(*ast.ArrayExpr) R
	VisitTupleFieldLookupExpr(*ast.TupleFieldLookupExpr) R
	VisitPropertyRefExpr(*ast.PropertyRefExpr) R
	VisitSubscriptExpr(*ast.SubscriptExpr) R
	VisitFuncCallExpr(*ast.FuncCallExpr) R
	VisitPrefixOperatorExpr(*ast.PrefixOperatorExpr) R
	VisitInfixOperatorExpr(*ast.InfixOperatorExpr) R
	VisitTernaryExpr(*ast.TernaryExpr) R
	VisitClosureExpr(*ast.ClosureExpr) R
	VisitSizeofExpr(*ast.SizeofExpr) R
	VisitCoercionExpr(*ast.CoercionExpr) R
	VisitIsExpr(*ast.IsExpr) R
	VisitPromotionExpr(*ast.PromotionExpr) R
}

// VisitExpr dispatches a generic Transformer over any Expr variant; it is
// the single switch every transformer's callers use instead of a type
// switch at every call site.
func VisitExpr[R any](t Transformer[R], e ast.Expr) R {
	switch v := e.(type) {
	case *ast.NumExpr:
		return t.VisitNumExpr(v)
	case *ast.FloatExpr:
		return t.VisitFloatExpr(v)
	case *ast.CharExpr:
		return t.VisitCharExpr(v)
	case *ast.BoolExpr:
		return t.VisitBoolExpr(v)
	case *ast.StringExpr:
		return t.VisitStringExpr(v)
	case *ast.NilExpr:
		return t.VisitNilExpr(v)
	case *ast.VoidExpr:
		return t.VisitVoidExpr(v)
	case *ast.VarExpr:
		return t.VisitVarExpr(v)
	case *ast.ParenExpr:
		return t.VisitParenExpr(v)
	case *ast.TupleExpr:
		return t.VisitTupleExpr(v)
	case *ast.ArrayExpr:
		return t.VisitArrayExpr(v)
	case *ast.TupleFieldLookupExpr:
		return t.VisitTupleFieldLookupExpr(v)
	case *ast.PropertyRefExpr:
		return t.VisitPropertyRefExpr(v)
	case *ast.SubscriptExpr:
		return t.VisitSubscriptExpr(v)
	case *ast.FuncCallExpr:
		return t.VisitFuncCallExpr(v)
	case *ast.PrefixOperatorExpr:
		return t.VisitPrefixOperatorExpr(v)
	case *ast.InfixOperatorExpr:
		return t.VisitInfixOperatorExpr(v)
	case *ast.TernaryExpr:
		return t.VisitTernaryExpr(v)
	case *ast.ClosureExpr:
		return t.VisitClosureExpr(v)
	case *ast.SizeofExpr:
		return t.VisitSizeofExpr(v)
	case *ast.CoercionExpr:
		return t.VisitCoercionExpr(v)
	case *ast.IsExpr:
		return t.VisitIsExpr(v)
	case *ast.PromotionExpr:
		return t.VisitPromotionExpr(v)
	default:
		panic("visit: unhandled expr variant")
	}
}

// VisitStmt is VisitExpr's statement counterpart.
func VisitStmt[R any](t Transformer[R], s ast.Stmt) R {
	switch v := s.(type) {
	case *ast.ReturnStmt:
		return t.VisitReturnStmt(v)
	case *ast.BreakStmt:
		return t.VisitBreakStmt(v)
	case *ast.ContinueStmt:
		return t.VisitContinueStmt(v)
	case *ast.CompoundStmt:
		return t.VisitCompoundStmt(v)
	case *ast.IfStmt:
		return t.VisitIfStmt(v)
	case *ast.WhileStmt:
		return t.VisitWhileStmt(v)
	case *ast.ForStmt:
		return t.VisitForStmt(v)
	case *ast.SwitchStmt:
		return t.VisitSwitchStmt(v)
	case *ast.CaseStmt:
		return t.VisitCaseStmt(v)
	case *ast.ExprStmt:
		return t.VisitExprStmt(v)
	case *ast.DeclStmt:
		return t.VisitDeclStmt(v)
	case *ast.PoundDiagnosticStmt:
		return t.VisitPoundDiagnosticStmt(v)
	default:
		panic("visit: unhandled stmt variant")
	}
}

// VisitDecl is VisitExpr's declaration counterpart.
func VisitDecl[R any](t Transformer[R], d ast.Decl) R {
	switch v := d.(type) {
	case *ast.FuncDecl:
		return t.VisitFuncDecl(v)
	case *ast.OperatorDecl:
		return t.VisitOperatorDecl(v)
	case *ast.InitializerDecl:
		return t.VisitInitializerDecl(v)
	case *ast.DeinitializerDecl:
		return t.VisitDeinitializerDecl(v)
	case *ast.MethodDecl:
		return t.VisitMethodDecl(v)
	case *ast.SubscriptDecl:
		return t.VisitSubscriptDecl(v)
	case *ast.PropertyDecl:
		return t.VisitPropertyDecl(v)
	case *ast.ParamDecl:
		return t.VisitParamDecl(v)
	case *ast.VarAssignDecl:
		return t.VisitVarAssignDecl(v)
	case *ast.TypeDecl:
		return t.VisitTypeDecl(v)
	case *ast.TypeAliasDecl:
		return t.VisitTypeAliasDecl(v)
	case *ast.ProtocolDecl:
		return t.VisitProtocolDecl(v)
	case *ast.ExtensionDecl:
		return t.VisitExtensionDecl(v)
	case *ast.GenericParamDecl:
		return t.VisitGenericParamDecl(v)
	default:
		panic("visit: unhandled decl variant")
	}
}
