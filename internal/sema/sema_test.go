package sema

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/compctx"
	"github.com/juniper-lang/frontend/internal/diag"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

func newTestContext() *compctx.Context {
	return compctx.New(diag.NewEngine())
}

func namedRef(name string) *ast.NamedTypeRef {
	return &ast.NamedTypeRef{Name: ident.New(name)}
}

func numLit(v int64) *ast.NumExpr {
	return &ast.NumExpr{Raw: "lit", Value: v}
}

func hasCode(ctx *compctx.Context, code string) bool {
	for _, d := range ctx.Diagnostics.All() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// TestAnalyzerRunResolvesAndChecksAFunction exercises the full Run
// pipeline over a single free function: signature resolution, then body
// checking, committing a concrete type onto the return expression.
func TestAnalyzerRunResolvesAndChecksAFunction(t *testing.T) {
	ctx := newTestContext()
	sum := &ast.InfixOperatorExpr{Operator: ast.OpAdd, LHS: numLit(1), RHS: numLit(2)}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{Value: sum}}}
	f := &ast.FuncDecl{
		Name:       ident.New("add"),
		Params:     nil,
		ReturnType: namedRef("Int"),
		Body:       body,
	}
	ctx.AddFunc(f)

	New(ctx).Run()

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics.All())
	}
	if sum.Type() == nil {
		t.Fatal("expected the return expression to carry a resolved type")
	}
	if _, ok := sum.Type().(*dtype.Int); !ok {
		t.Fatalf("expected Int, got %s", sum.Type())
	}
	if !body.HasReturn {
		t.Error("expected the body to be marked as always returning")
	}
}

// TestAnalyzerRunFlagsMissingReturn exercises the cross-cutting path from
// Run through resolveSignatures, checkDeclBodies, and analyzeFlow for a
// non-void function whose body never returns.
func TestAnalyzerRunFlagsMissingReturn(t *testing.T) {
	ctx := newTestContext()
	body := &ast.CompoundStmt{Statements: []ast.Stmt{
		&ast.ExprStmt{Value: numLit(1)},
	}}
	f := &ast.FuncDecl{Name: ident.New("broken"), ReturnType: namedRef("Int"), Body: body}
	ctx.AddFunc(f)

	New(ctx).Run()

	if !hasCode(ctx, "FLOW004") {
		t.Fatalf("expected FLOW004, got %v", ctx.Diagnostics.All())
	}
}

// TestValidateMainSignatureRejectsBadShape confirms Run wires
// resolveSignatures' resolved param/return types through to
// ValidateMain, not just the unresolved parse-time syntax.
func TestValidateMainSignatureRejectsBadShape(t *testing.T) {
	ctx := newTestContext()
	body := &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}}
	f := &ast.FuncDecl{
		Name:       ident.New("main"),
		Params:     []*ast.ParamDecl{{ExternalName: "_", Name: ident.New("x"), TypeRef: namedRef("Bool")}},
		ReturnType: nil,
		Body:       body,
	}
	ctx.AddFunc(f)

	New(ctx).Run()

	if !hasCode(ctx, "SIG008") {
		t.Fatalf("expected SIG008 for an invalid main signature, got %v", ctx.Diagnostics.All())
	}
}
