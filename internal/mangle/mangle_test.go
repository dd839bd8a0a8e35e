package mangle

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

func intParam(name string, w dtype.IntWidth) *ast.ParamDecl {
	return &ast.ParamDecl{
		ExternalName: name,
		Name:         ident.New(name),
		ResolvedType: &dtype.Int{Width: w, Signed: true},
	}
}

func TestTypeMangling(t *testing.T) {
	cases := []struct {
		name string
		typ  dtype.Type
		want string
	}{
		{"int64", &dtype.Int{Width: dtype.Width64, Signed: true}, "si64"},
		{"uint8", &dtype.Int{Width: dtype.Width8, Signed: false}, "su8"},
		{"double", &dtype.Floating{Kind: dtype.FloatDouble}, "sd"},
		{"bool", &dtype.Bool{}, "sb"},
		{"void", &dtype.Void{}, "sv"},
		{"any", &dtype.Any{}, "sa"},
		{"ptr-ptr-int", &dtype.Pointer{Elem: &dtype.Pointer{Elem: &dtype.Int{Width: dtype.Width8, Signed: true}}}, "P2Tsi8"},
		{"custom", &dtype.Custom{Name: "Foo"}, "3Foo"},
		{"tuple", &dtype.Tuple{Fields: []dtype.Type{&dtype.Bool{}, &dtype.Void{}}}, "tsbsvT"},
		{"array", &dtype.Array{Elem: &dtype.Bool{}}, "Asb"},
		{"func", &dtype.Function{Args: []dtype.Type{&dtype.Bool{}}, Return: &dtype.Void{}}, "FsbRsv"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Type(c.typ); got != c.want {
				t.Errorf("Type(%s) = %q, want %q", c.typ, got, c.want)
			}
		})
	}
}

func TestFuncReturnMangling(t *testing.T) {
	f := &ast.FuncDecl{
		Name:   ident.New("add"),
		Params: []*ast.ParamDecl{intParam("x", dtype.Width64), intParam("y", dtype.Width64)},
	}
	got := FuncReturn(f, &dtype.Int{Width: dtype.Width64, Signed: true})
	want := "_WF3add1xsi641ysi64Rsi64"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDistinctOverloadsManglesDistinctly(t *testing.T) {
	f1 := &ast.FuncDecl{Name: ident.New("f"), Params: []*ast.ParamDecl{intParam("x", dtype.Width64)}}
	f2 := &ast.FuncDecl{Name: ident.New("f"), Params: []*ast.ParamDecl{{
		ExternalName: "x",
		Name:         ident.New("x"),
		ResolvedType: &dtype.Floating{Kind: dtype.FloatDouble},
	}}}
	m1 := FuncReturn(f1, &dtype.Void{})
	m2 := FuncReturn(f2, &dtype.Void{})
	if m1 == m2 {
		t.Errorf("distinct overloads must mangle distinctly, both got %q", m1)
	}
}

func TestInitializerAndDeinitializerMangling(t *testing.T) {
	ty := &ast.TypeDecl{Name: ident.New("Widget")}
	init := Initializer(ty, []*ast.ParamDecl{
		{ExternalName: "", Name: ident.New("self"), ResolvedType: &dtype.Pointer{Elem: &dtype.Custom{Name: "Widget"}}},
		intParam("count", dtype.Width64),
	})
	if init == "" {
		t.Fatal("expected non-empty initializer mangling")
	}
	deinit := Deinitializer(ty)
	if init == deinit {
		t.Error("init and deinit must mangle distinctly")
	}
}

func TestMethodManglingDropsImplicitSelf(t *testing.T) {
	ty := &ast.TypeDecl{Name: ident.New("Widget")}
	selfParam := &ast.ParamDecl{Name: ident.New("self"), ResolvedType: &dtype.Pointer{Elem: &dtype.Custom{Name: "Widget"}}}
	m := &ast.MethodDecl{
		Name:       ident.New("area"),
		ParentType: ty,
		Kind:       ast.FuncKind{Tag: ast.KindMethod, ParentType: ty},
		Params:     []*ast.ParamDecl{selfParam},
	}
	got := Method(m, &dtype.Int{Width: dtype.Width64, Signed: true})
	want := "_WFM6Widget4areaRsi64"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
