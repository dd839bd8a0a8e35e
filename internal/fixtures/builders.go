package fixtures

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/compctx"
	"github.com/juniper-lang/frontend/internal/diag"
	"github.com/juniper-lang/frontend/internal/ident"
)

// BuilderFunc constructs a fully-registered Context ready for
// sema.New(ctx).Run(), standing in for a parsed source file since this
// module has no surface parser.
type BuilderFunc func() *compctx.Context

// Builders maps a scenario's builder name (from the YAML suite) to the
// Go code that constructs its AST. Keyed by the ID under testdata's
// scenarios.yaml entries named after spec.md §8's ten literal-input
// scenarios.
var Builders = map[string]BuilderFunc{
	"main-exit-code":         buildMainExitCode,
	"main-args":              buildMainArgs,
	"main-invalid-return":    buildMainInvalidReturn,
	"main-duplicate":         buildMainDuplicate,
	"type-self-reference":    buildTypeSelfReference,
	"alias-cycle":            buildAliasCycle,
	"overload-int-literal":   buildOverloadIntLiteral,
	"overload-double-literal": buildOverloadDoubleLiteral,
	"overload-no-viable":     buildOverloadNoViable,
	"assign-to-constant":     buildAssignToConstant,
	"any-implicit-downcast":  buildAnyImplicitDowncast,
	"any-explicit-cast":      buildAnyExplicitCast,
	"switch-nil-case":        buildSwitchNilCase,
	"switch-literal-case":    buildSwitchLiteralCase,
}

func namedRef(name string) *ast.NamedTypeRef { return &ast.NamedTypeRef{Name: ident.New(name)} }

func ptrRef(elem ast.TypeRefExpr) *ast.PointerTypeRef { return &ast.PointerTypeRef{Elem: elem} }

func numLit(v int64) *ast.NumExpr { return &ast.NumExpr{Raw: "lit", Value: v} }

func newContext() *compctx.Context { return compctx.New(diag.NewEngine()) }

// Scenario 1: `func main() -> Int { return 0 }` — accepted, exit-code form.
func buildMainExitCode() *compctx.Context {
	ctx := newContext()
	body := &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{Value: numLit(0)}}}
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("main"), ReturnType: namedRef("Int"), Body: body})
	return ctx
}

// Scenario 2: `func main(argc: Int, argv: **Int8) { }` — accepted, args form.
func buildMainArgs() *compctx.Context {
	ctx := newContext()
	params := []*ast.ParamDecl{
		{ExternalName: "argc", Name: ident.New("argc"), TypeRef: namedRef("Int")},
		{ExternalName: "argv", Name: ident.New("argv"), TypeRef: ptrRef(ptrRef(namedRef("Int8")))},
	}
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("main"), Params: params, Body: &ast.CompoundStmt{}})
	return ctx
}

// Scenario 3: `func main() -> String { return "" }` — rejected, SIG008.
func buildMainInvalidReturn() *compctx.Context {
	ctx := newContext()
	body := &ast.CompoundStmt{Statements: []ast.Stmt{
		&ast.ReturnStmt{Value: &ast.StringExpr{}},
	}}
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("main"), ReturnType: namedRef("String"), Body: body})
	return ctx
}

// Scenario 4: `func main() { } func main() { }` — second rejected, REDECL007.
func buildMainDuplicate() *compctx.Context {
	ctx := newContext()
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("main"), Body: &ast.CompoundStmt{}})
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("main"), Body: &ast.CompoundStmt{}})
	return ctx
}

// Scenario 5: `type Foo { let x: Foo }` — rejected, SIG007.
func buildTypeSelfReference() *compctx.Context {
	ctx := newContext()
	td := &ast.TypeDecl{Name: ident.New("Foo")}
	td.Fields = []*ast.VarAssignDecl{
		{Name: ident.New("x"), TypeRef: namedRef("Foo"), Kind: ast.VarKindProperty, EnclosingType: td},
	}
	ctx.AddType(td)
	return ctx
}

// Scenario 6: `type alias A = B; type alias B = A` — second rejected, SIG006.
func buildAliasCycle() *compctx.Context {
	ctx := newContext()
	ctx.AddAlias(&ast.TypeAliasDecl{Name: ident.New("A"), Aliased: namedRef("B")})
	ctx.AddAlias(&ast.TypeAliasDecl{Name: ident.New("B"), Aliased: namedRef("A")})
	return ctx
}

// overloadPair registers `func f(_ x: Int) -> Int` and
// `func f(_ x: Double) -> Int`, then a `caller` function whose single
// statement calls f(arg), for scenario 7's three call-site variants.
func overloadPair(arg ast.Expr) *compctx.Context {
	ctx := newContext()
	intParam := &ast.ParamDecl{ExternalName: "_", Name: ident.New("x"), TypeRef: namedRef("Int")}
	dblParam := &ast.ParamDecl{ExternalName: "_", Name: ident.New("x"), TypeRef: namedRef("Double")}
	ctx.AddFunc(&ast.FuncDecl{
		Name: ident.New("f"), Params: []*ast.ParamDecl{intParam}, ReturnType: namedRef("Int"),
		Body: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{Value: numLit(0)}}},
	})
	ctx.AddFunc(&ast.FuncDecl{
		Name: ident.New("f"), Params: []*ast.ParamDecl{dblParam}, ReturnType: namedRef("Int"),
		Body: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{Value: numLit(0)}}},
	})
	call := &ast.FuncCallExpr{Callee: &ast.VarExpr{Name: ident.New("f")}, Args: []ast.Arg{{Value: arg}}}
	caller := &ast.FuncDecl{
		Name: ident.New("caller"),
		Body: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ExprStmt{Value: call}}},
	}
	ctx.AddFunc(caller)
	return ctx
}

// Scenario 7a: `f(1)` resolves to the Int overload.
func buildOverloadIntLiteral() *compctx.Context { return overloadPair(numLit(1)) }

// Scenario 7b: `f(1.0)` resolves to the Double overload.
func buildOverloadDoubleLiteral() *compctx.Context {
	return overloadPair(&ast.FloatExpr{Raw: "1.0", Value: 1.0})
}

// Scenario 7c: `f("")` has no viable overload, SIG009 with both candidates.
func buildOverloadNoViable() *compctx.Context {
	return overloadPair(&ast.StringExpr{})
}

// Scenario 8: `let x = 1; x = 2` — rejected, DECL005.
func buildAssignToConstant() *compctx.Context {
	ctx := newContext()
	decl := &ast.VarAssignDecl{Name: ident.New("x"), RHS: numLit(1), IsConstant: true, Kind: ast.VarKindLocal}
	assign := &ast.InfixOperatorExpr{
		Operator: ast.OpAssign,
		LHS:      &ast.VarExpr{Name: ident.New("x")},
		RHS:      numLit(2),
	}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{
		&ast.DeclStmt{Decl: decl},
		&ast.ExprStmt{Value: assign},
	}}
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("f"), Body: body})
	return ctx
}

// Scenario 9a: `var a: Any = 1; let b: Int = a` — rejected, TYPE004.
func buildAnyImplicitDowncast() *compctx.Context {
	ctx := newContext()
	aDecl := &ast.VarAssignDecl{Name: ident.New("a"), TypeRef: namedRef("Any"), RHS: numLit(1), Kind: ast.VarKindLocal}
	bDecl := &ast.VarAssignDecl{
		Name: ident.New("b"), TypeRef: namedRef("Int"),
		RHS: &ast.VarExpr{Name: ident.New("a")}, IsConstant: true, Kind: ast.VarKindLocal,
	}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{
		&ast.DeclStmt{Decl: aDecl},
		&ast.DeclStmt{Decl: bDecl},
	}}
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("f"), Body: body})
	return ctx
}

// Scenario 9b: `var a: Any = 1; let b: Int = a as Int` — accepted.
func buildAnyExplicitCast() *compctx.Context {
	ctx := newContext()
	aDecl := &ast.VarAssignDecl{Name: ident.New("a"), TypeRef: namedRef("Any"), RHS: numLit(1), Kind: ast.VarKindLocal}
	bDecl := &ast.VarAssignDecl{
		Name: ident.New("b"), TypeRef: namedRef("Int"),
		RHS:        &ast.CoercionExpr{Value: &ast.VarExpr{Name: ident.New("a")}, Target: namedRef("Int")},
		IsConstant: true, Kind: ast.VarKindLocal,
	}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{
		&ast.DeclStmt{Decl: aDecl},
		&ast.DeclStmt{Decl: bDecl},
	}}
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("f"), Body: body})
	return ctx
}

// switchOnPointer registers `p: *Int` as a global and a function whose
// body switches on it with the given scrutinee-comparable case, for
// scenario 10's two variants.
func switchOnPointer(caseConst ast.Expr) *compctx.Context {
	ctx := newContext()
	g := &ast.VarAssignDecl{Name: ident.New("p"), TypeRef: ptrRef(namedRef("Int")), Kind: ast.VarKindGlobal}
	ctx.AddGlobal(g)
	sw := &ast.SwitchStmt{
		Scrutinee: &ast.VarExpr{Name: ident.New("p")},
		Cases: []*ast.CaseStmt{
			{Consts: []ast.Expr{caseConst}, Body: &ast.CompoundStmt{}},
			{IsDefault: true, Body: &ast.CompoundStmt{}},
		},
	}
	ctx.AddFunc(&ast.FuncDecl{Name: ident.New("f"), Body: &ast.CompoundStmt{Statements: []ast.Stmt{sw}}})
	return ctx
}

// Scenario 10a: `switch p { case nil: ... }` — accepted, pointer equality
// synthesised without consulting the operator overload set.
func buildSwitchNilCase() *compctx.Context { return switchOnPointer(&ast.NilExpr{}) }

// Scenario 10b: `switch p { case 0: ... }` — rejected, TYPE006: pointers
// are not comparable against a non-pointer literal.
func buildSwitchLiteralCase() *compctx.Context { return switchOnPointer(numLit(0)) }
