package visit

import "github.com/juniper-lang/frontend/internal/ast"

// BaseTransformer implements Transformer[R] with a no-op body (the zero
// value of R) for every node kind. Embed it in a concrete transformer
// struct and override only the methods that pass cares about.
type BaseTransformer[R any] struct{}

func (BaseTransformer[R]) VisitFuncDecl(*ast.FuncDecl) (r R)                         { return }
func (BaseTransformer[R]) VisitOperatorDecl(*ast.OperatorDecl) (r R)                 { return }
func (BaseTransformer[R]) VisitInitializerDecl(*ast.InitializerDecl) (r R)           { return }
func (BaseTransformer[R]) VisitDeinitializerDecl(*ast.DeinitializerDecl) (r R)       { return }
func (BaseTransformer[R]) VisitMethodDecl(*ast.MethodDecl) (r R)                     { return }
func (BaseTransformer[R]) VisitSubscriptDecl(*ast.SubscriptDecl) (r R)               { return }
func (BaseTransformer[R]) VisitPropertyDecl(*ast.PropertyDecl) (r R)                 { return }
func (BaseTransformer[R]) VisitParamDecl(*ast.ParamDecl) (r R)                       { return }
func (BaseTransformer[R]) VisitVarAssignDecl(*ast.VarAssignDecl) (r R)               { return }
func (BaseTransformer[R]) VisitTypeDecl(*ast.TypeDecl) (r R)                         { return }
func (BaseTransformer[R]) VisitTypeAliasDecl(*ast.TypeAliasDecl) (r R)               { return }
func (BaseTransformer[R]) VisitProtocolDecl(*ast.ProtocolDecl) (r R)                 { return }
func (BaseTransformer[R]) VisitExtensionDecl(*ast.ExtensionDecl) (r R)               { return }
func (BaseTransformer[R]) VisitGenericParamDecl(*ast.GenericParamDecl) (r R)         { return }

func (BaseTransformer[R]) VisitReturnStmt(*ast.ReturnStmt) (r R)                     { return }
func (BaseTransformer[R]) VisitBreakStmt(*ast.BreakStmt) (r R)                       { return }
func (BaseTransformer[R]) VisitContinueStmt(*ast.ContinueStmt) (r R)                 { return }
func (BaseTransformer[R]) VisitCompoundStmt(*ast.CompoundStmt) (r R)                 { return }
func (BaseTransformer[R]) VisitIfStmt(*ast.IfStmt) (r R)                             { return }
func (BaseTransformer[R]) VisitWhileStmt(*ast.WhileStmt) (r R)                       { return }
func (BaseTransformer[R]) VisitForStmt(*ast.ForStmt) (r R)                           { return }
func (BaseTransformer[R]) VisitSwitchStmt(*ast.SwitchStmt) (r R)                     { return }
func (BaseTransformer[R]) VisitCaseStmt(*ast.CaseStmt) (r R)                         { return }
func (BaseTransformer[R]) VisitExprStmt(*ast.ExprStmt) (r R)                         { return }
func (BaseTransformer[R]) VisitDeclStmt(*ast.DeclStmt) (r R)                         { return }
func (BaseTransformer[R]) VisitPoundDiagnosticStmt(*ast.PoundDiagnosticStmt) (r R)   { return }

func (BaseTransformer[R]) VisitNumExpr(*ast.NumExpr) (r R)                           { return }
func (BaseTransformer[R]) VisitFloatExpr(*ast.FloatExpr) (r R)                       { return }
func (BaseTransformer[R]) VisitCharExpr(*ast.CharExpr) (r R)                         { return }
func (BaseTransformer[R]) VisitBoolExpr(*ast.BoolExpr) (r R)                         { return }
func (BaseTransformer[R]) VisitStringExpr(*ast.StringExpr) (r R)                     { return }
func (BaseTransformer[R]) VisitNilExpr(*ast.NilExpr) (r R)                           { return }
func (BaseTransformer[R]) VisitVoidExpr(*ast.VoidExpr) (r R)                         { return }
func (BaseTransformer[R]) VisitVarExpr(*ast.VarExpr) (r R)                           { return }
func (BaseTransformer[R]) VisitParenExpr(*ast.ParenExpr) (r R)                       { return }
func (BaseTransformer[R]) VisitTupleExpr(*ast.TupleExpr) (r R)                       { return }
func (BaseTransformer[R]) VisitArrayExpr(*ast.ArrayExpr) (r R)                       { return }
func (BaseTransformer[R]) VisitTupleFieldLookupExpr(*ast.TupleFieldLookupExpr) (r R) { return }
func (BaseTransformer[R]) VisitPropertyRefExpr(*ast.PropertyRefExpr) (r R)           { return }
func (BaseTransformer[R]) VisitSubscriptExpr(*ast.SubscriptExpr) (r R)               { return }
func (BaseTransformer[R]) VisitFuncCallExpr(*ast.FuncCallExpr) (r R)                 { return }
func (BaseTransformer[R]) VisitPrefixOperatorExpr(*ast.PrefixOperatorExpr) (r R)     { return }
func (BaseTransformer[R]) VisitInfixOperatorExpr(*ast.InfixOperatorExpr) (r R)       { return }
func (BaseTransformer[R]) VisitTernaryExpr(*ast.TernaryExpr) (r R)                   { return }
func (BaseTransformer[R]) VisitClosureExpr(*ast.ClosureExpr) (r R)                   { return }
func (BaseTransformer[R]) VisitSizeofExpr(*ast.SizeofExpr) (r R)                     { return }
func (BaseTransformer[R]) VisitCoercionExpr(*ast.CoercionExpr) (r R)                 { return }
func (BaseTransformer[R]) VisitIsExpr(*ast.IsExpr) (r R)                             { return }
func (BaseTransformer[R]) VisitPromotionExpr(*ast.PromotionExpr) (r R)               { return }
