package sema

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

func paramOf(name string, t dtype.Type) *ast.ParamDecl {
	return &ast.ParamDecl{ExternalName: "_", Name: ident.New(name), ResolvedType: t}
}

func TestCheckConformancesRecordsASatisfiedRequirement(t *testing.T) {
	ctx := newTestContext()
	drawReq := &ast.MethodDecl{Name: ident.New("draw"), Params: []*ast.ParamDecl{paramOf("self", int64Type())}}
	proto := &ast.ProtocolDecl{Name: ident.New("Drawable"), Requirements: []*ast.MethodDecl{drawReq}}
	ctx.AddProtocol(proto)

	drawImpl := &ast.MethodDecl{Name: ident.New("draw"), Params: []*ast.ParamDecl{paramOf("self", int64Type())}}
	td := &ast.TypeDecl{
		Name:         ident.New("Widget"),
		Conformances: []ident.Identifier{ident.New("Drawable")},
		Methods:      []*ast.MethodDecl{drawImpl},
	}
	ctx.AddType(td)

	New(ctx).checkConformances()

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics.All())
	}
	if len(drawImpl.Conforms) != 1 || drawImpl.Conforms[0] != proto {
		t.Fatalf("expected draw to record conformance to Drawable, got %v", drawImpl.Conforms)
	}
}

func TestCheckConformancesRecordsASatisfiedRequirementViaExtension(t *testing.T) {
	ctx := newTestContext()
	drawReq := &ast.MethodDecl{Name: ident.New("draw"), Params: []*ast.ParamDecl{paramOf("self", int64Type())}}
	proto := &ast.ProtocolDecl{Name: ident.New("Drawable"), Requirements: []*ast.MethodDecl{drawReq}}
	ctx.AddProtocol(proto)

	td := &ast.TypeDecl{Name: ident.New("Widget"), Conformances: []ident.Identifier{ident.New("Drawable")}}
	ctx.AddType(td)

	drawImpl := &ast.MethodDecl{
		Name:   ident.New("draw"),
		Params: []*ast.ParamDecl{paramOf("self", int64Type())},
		Body:   &ast.CompoundStmt{},
	}
	ctx.Extensions = append(ctx.Extensions, &ast.ExtensionDecl{TypeName: ident.New("Widget"), Methods: []*ast.MethodDecl{drawImpl}})

	a := New(ctx)
	a.resolveSignatures()
	a.checkConformances()

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics.All())
	}
	if len(drawImpl.Conforms) != 1 || drawImpl.Conforms[0] != proto {
		t.Fatalf("expected the extension's draw to record conformance to Drawable, got %v", drawImpl.Conforms)
	}
	if len(td.Methods) != 1 || td.Methods[0] != drawImpl {
		t.Fatalf("expected the extension method to be transferred onto Widget.Methods, got %v", td.Methods)
	}
}

func TestCheckConformancesReportsAMissingRequirement(t *testing.T) {
	ctx := newTestContext()
	drawReq := &ast.MethodDecl{Name: ident.New("draw")}
	proto := &ast.ProtocolDecl{Name: ident.New("Drawable"), Requirements: []*ast.MethodDecl{drawReq}}
	ctx.AddProtocol(proto)

	td := &ast.TypeDecl{Name: ident.New("Widget"), Conformances: []ident.Identifier{ident.New("Drawable")}}
	ctx.AddType(td)

	New(ctx).checkConformances()

	if !hasCode(ctx, "TYPE013") {
		t.Fatalf("expected TYPE013, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckConformancesReportsAnUnknownProtocol(t *testing.T) {
	ctx := newTestContext()
	td := &ast.TypeDecl{Name: ident.New("Widget"), Conformances: []ident.Identifier{ident.New("Ghost")}}
	ctx.AddType(td)

	New(ctx).checkConformances()

	if !hasCode(ctx, "LOOKUP005") {
		t.Fatalf("expected LOOKUP005, got %v", ctx.Diagnostics.All())
	}
}

func TestSignatureMatchesComparesResolvedParamTypesOnly(t *testing.T) {
	have := &ast.MethodDecl{Params: []*ast.ParamDecl{paramOf("x", int64Type())}}
	want := &ast.MethodDecl{Params: []*ast.ParamDecl{paramOf("x", int64Type())}}
	if !signatureMatches(have, want) {
		t.Error("expected identical resolved parameter types to match")
	}

	mismatched := &ast.MethodDecl{Params: []*ast.ParamDecl{paramOf("x", int8Type())}}
	if signatureMatches(mismatched, want) {
		t.Error("expected differing resolved parameter types not to match")
	}

	arityMismatch := &ast.MethodDecl{Params: nil}
	if signatureMatches(arityMismatch, want) {
		t.Error("expected differing arity not to match")
	}
}

func TestSignatureMatchesAllowsAnyInEitherDirection(t *testing.T) {
	concreteWant := &ast.MethodDecl{Params: []*ast.ParamDecl{paramOf("x", int64Type())}}
	anyHave := &ast.MethodDecl{Params: []*ast.ParamDecl{paramOf("x", &dtype.Any{})}}
	if !signatureMatches(anyHave, concreteWant) {
		t.Error("expected an Any-typed implementation parameter to satisfy a concrete requirement parameter")
	}

	anyWant := &ast.MethodDecl{Params: []*ast.ParamDecl{paramOf("x", &dtype.Any{})}}
	concreteHave := &ast.MethodDecl{Params: []*ast.ParamDecl{paramOf("x", int64Type())}}
	if !signatureMatches(concreteHave, anyWant) {
		t.Error("expected a concrete-typed implementation parameter to satisfy an Any requirement parameter")
	}
}
