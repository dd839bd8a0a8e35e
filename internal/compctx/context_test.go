package compctx

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/diag"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

func newTestContext() *Context {
	return New(diag.NewEngine())
}

func TestSeedBuiltinTypesRegistered(t *testing.T) {
	c := newTestContext()
	for _, name := range dtype.BuiltinNames() {
		if _, ok := c.LookupTypeDecl(name); !ok {
			t.Errorf("expected builtin %q to be seeded", name)
		}
	}
}

func TestSeedImplicitOperatorsCoversArithmetic(t *testing.T) {
	c := newTestContext()
	ops := c.LookupOperators(ast.OpAdd)
	if len(ops) == 0 {
		t.Fatal("expected implicit + overloads to be seeded")
	}
}

func TestAddFuncRegistersOverloadSet(t *testing.T) {
	c := newTestContext()
	f1 := &ast.FuncDecl{Name: ident.New("f")}
	f2 := &ast.FuncDecl{Name: ident.New("f")}
	c.AddFunc(f1)
	c.AddFunc(f2)
	if len(c.LookupFuncs("f")) != 2 {
		t.Fatalf("expected 2 overloads, got %d", len(c.LookupFuncs("f")))
	}
}

func TestAddFuncSetsMain(t *testing.T) {
	c := newTestContext()
	main := &ast.FuncDecl{Name: ident.New("main")}
	c.AddFunc(main)
	got, flags := c.MainFunction()
	if got != main {
		t.Fatal("expected main to be registered as entry point")
	}
	if flags.Args || flags.ExitCode {
		t.Error("expected zero-arg, void-return flags for a bare main()")
	}
}

func TestAddFuncDuplicateMainReportsRedecl(t *testing.T) {
	c := newTestContext()
	c.AddFunc(&ast.FuncDecl{Name: ident.New("main")})
	c.AddFunc(&ast.FuncDecl{Name: ident.New("main")})
	if !c.Diagnostics.HasErrors() {
		t.Fatal("expected a diagnostic for duplicate main")
	}
	if c.Diagnostics.All()[0].Code != codes.REDECL007 {
		t.Errorf("expected REDECL007, got %s", c.Diagnostics.All()[0].Code)
	}
}

func TestAddTypeRejectsNameCollisionWithBuiltin(t *testing.T) {
	c := newTestContext()
	c.AddType(&ast.TypeDecl{Name: ident.New("Bool")})
	if !c.Diagnostics.HasErrors() {
		t.Fatal("expected redeclaration of builtin Bool to be rejected")
	}
}

func TestAddAliasDetectsCircularChain(t *testing.T) {
	c := newTestContext()
	c.AddAlias(&ast.TypeAliasDecl{
		Name:    ident.New("A"),
		Aliased: &ast.NamedTypeRef{Name: ident.New("B")},
	})
	c.AddAlias(&ast.TypeAliasDecl{
		Name:    ident.New("B"),
		Aliased: &ast.NamedTypeRef{Name: ident.New("A")},
	})
	found := false
	for _, d := range c.Diagnostics.All() {
		if d.Code == codes.SIG006 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected SIG006 circular alias diagnostic")
	}
}

func TestResolveTypeRefBuiltin(t *testing.T) {
	c := newTestContext()
	ref := &ast.NamedTypeRef{Name: ident.New("Int8")}
	got := c.ResolveTypeRef(ref)
	want := &dtype.Int{Width: dtype.Width8, Signed: true}
	if !got.Equals(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestResolveTypeRefUnknownReportsLookupError(t *testing.T) {
	c := newTestContext()
	ref := &ast.NamedTypeRef{Name: ident.New("Nonexistent")}
	got := c.ResolveTypeRef(ref)
	if _, ok := got.(*dtype.ErrorType); !ok {
		t.Errorf("expected ErrorType, got %s", got)
	}
	if !c.Diagnostics.HasErrors() {
		t.Fatal("expected LOOKUP001 diagnostic")
	}
}

func TestResolveTypeRefIsWriteOnce(t *testing.T) {
	c := newTestContext()
	ref := &ast.NamedTypeRef{Name: ident.New("Bool")}
	first := c.ResolveTypeRef(ref)
	second := c.ResolveTypeRef(ref)
	if first != second {
		t.Error("expected the same resolved type on repeated calls")
	}
}

func TestCanonicalizeFollowsAlias(t *testing.T) {
	c := newTestContext()
	c.AddAlias(&ast.TypeAliasDecl{
		Name:    ident.New("MyInt"),
		Aliased: &ast.NamedTypeRef{Name: ident.New("Int")},
	})
	canon := c.Canonicalize(&dtype.Custom{Name: "MyInt"})
	if !canon.Equals(&dtype.Int{Width: dtype.Width64, Signed: true}) {
		t.Errorf("expected alias to canonicalize to Int64, got %s", canon)
	}
}

func TestCheckLayoutCyclesDetectsSelfContainment(t *testing.T) {
	c := newTestContext()
	node := &ast.TypeDecl{
		Name: ident.New("Node"),
		Fields: []*ast.VarAssignDecl{
			{Name: ident.New("next"), TypeRef: &ast.NamedTypeRef{Name: ident.New("Node")}},
		},
	}
	c.AddType(node)
	c.CheckLayoutCycles()
	found := false
	for _, d := range c.Diagnostics.All() {
		if d.Code == codes.SIG007 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected SIG007 for a non-indirect self-containing type")
	}
}

func TestCheckLayoutCyclesAllowsIndirectSelfReference(t *testing.T) {
	c := newTestContext()
	node := &ast.TypeDecl{
		Name:      ident.New("Node"),
		Modifiers: ast.NewModifierSet(ast.ModIndirect),
		Fields: []*ast.VarAssignDecl{
			{Name: ident.New("next"), TypeRef: &ast.NamedTypeRef{Name: ident.New("Node")}},
		},
	}
	c.AddType(node)
	c.CheckLayoutCycles()
	if c.Diagnostics.HasErrors() {
		t.Fatal("indirect self-reference must not be flagged as a layout cycle")
	}
}

func TestCanBeNil(t *testing.T) {
	c := newTestContext()
	indirect := &ast.TypeDecl{Name: ident.New("Box"), Modifiers: ast.NewModifierSet(ast.ModIndirect)}
	c.AddType(indirect)
	if !c.CanBeNil(&dtype.Pointer{Elem: &dtype.Bool{}}) {
		t.Error("pointers should always be nil-able")
	}
	if !c.CanBeNil(&dtype.Custom{Name: "Box"}) {
		t.Error("indirect types should be nil-able")
	}
	if c.CanBeNil(&dtype.Bool{}) {
		t.Error("Bool should not be nil-able")
	}
}

func TestInfixOperatorCandidateSynthesizesNilComparison(t *testing.T) {
	c := newTestContext()
	_, isNil := c.InfixOperatorCandidate(ast.OpEq, &dtype.NilLiteral{}, &dtype.Pointer{Elem: &dtype.Bool{}})
	if !isNil {
		t.Error("expected nil == *Bool to synthesize a structural nil comparison")
	}
}

func TestMatchRankRecursesIntoTuples(t *testing.T) {
	c := newTestContext()
	t1 := &dtype.Tuple{Fields: []dtype.Type{&dtype.Bool{}, &dtype.Int{Width: dtype.Width64, Signed: true}}}
	t2 := &dtype.Tuple{Fields: []dtype.Type{&dtype.Bool{}, &dtype.Any{}}}
	if rank := c.MatchRank(t1, t2); rank != dtype.RankAny {
		t.Errorf("expected RankAny from the Any field, got %v", rank)
	}
}

func TestPropagateContextualTypeSynthesizesPromotion(t *testing.T) {
	c := newTestContext()
	lit := &ast.NumExpr{Raw: "1", Value: 1}
	lit.SetType(&dtype.Int{Width: dtype.Width64, Signed: true})
	result := c.PropagateContextualType(lit, &dtype.Any{})
	if _, ok := result.(*ast.PromotionExpr); !ok {
		t.Fatalf("expected a PromotionExpr wrapper, got %T", result)
	}
}

func TestPropagateContextualTypeLeavesNonAnyContextAlone(t *testing.T) {
	c := newTestContext()
	lit := &ast.NumExpr{Raw: "1", Value: 1}
	lit.SetType(&dtype.Int{Width: dtype.Width64, Signed: true})
	result := c.PropagateContextualType(lit, &dtype.Int{Width: dtype.Width64, Signed: true})
	if result != lit {
		t.Error("expected no promotion when the contextual type is not Any")
	}
}
