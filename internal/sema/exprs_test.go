package sema

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

func int8Type() *dtype.Int  { return &dtype.Int{Width: dtype.Width8, Signed: true} }
func int64Type() *dtype.Int { return &dtype.Int{Width: dtype.Width64, Signed: true} }

func TestCheckVarExprReportsUnknownName(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	v := &ast.VarExpr{Name: ident.New("nope")}
	a.checkVarExpr(v)
	if !hasCode(ctx, "LOOKUP003") {
		t.Fatalf("expected LOOKUP003, got %v", ctx.Diagnostics.All())
	}
	if _, ok := v.Type().(*dtype.ErrorType); !ok {
		t.Errorf("expected an ErrorType sentinel, got %s", v.Type())
	}
}

func TestCheckAssignmentRejectsConstantTarget(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	local := &ast.VarAssignDecl{Name: ident.New("x"), ResolvedType: int64Type(), IsConstant: true}
	lhs := &ast.VarExpr{Name: ident.New("x")}
	lhs.SetDecl(local)
	i := &ast.InfixOperatorExpr{Operator: ast.OpAssign, LHS: lhs, RHS: numLit(1)}

	a.checkAssignment(i, int64Type(), int64Type())

	if !hasCode(ctx, "DECL005") {
		t.Fatalf("expected DECL005, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckAssignmentTypesAsLHS(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	local := &ast.VarAssignDecl{Name: ident.New("x"), ResolvedType: int64Type()}
	lhs := &ast.VarExpr{Name: ident.New("x")}
	lhs.SetDecl(local)
	i := &ast.InfixOperatorExpr{Operator: ast.OpAssign, LHS: lhs, RHS: numLit(1)}

	result := a.checkAssignment(i, int64Type(), int64Type())

	if !result.Equals(int64Type()) {
		t.Fatalf("expected the assignment's type to be the LHS type, got %s", result)
	}
	if !i.Type().Equals(int64Type()) {
		t.Fatalf("expected the infix node's committed type to be the LHS type, got %s", i.Type())
	}
}

func TestCheckAssignmentRejectsImplicitAnyDowncast(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	local := &ast.VarAssignDecl{Name: ident.New("b"), ResolvedType: int64Type()}
	lhs := &ast.VarExpr{Name: ident.New("b")}
	lhs.SetDecl(local)
	i := &ast.InfixOperatorExpr{Operator: ast.OpAssign, LHS: lhs, RHS: &ast.VarExpr{Name: ident.New("a")}}

	a.checkAssignment(i, int64Type(), &dtype.Any{})

	if !hasCode(ctx, "TYPE004") {
		t.Fatalf("expected TYPE004 for an implicit downcast out of Any, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckAssignmentAllowsAssigningIntoAny(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	local := &ast.VarAssignDecl{Name: ident.New("a"), ResolvedType: &dtype.Any{}}
	lhs := &ast.VarExpr{Name: ident.New("a")}
	lhs.SetDecl(local)
	i := &ast.InfixOperatorExpr{Operator: ast.OpAssign, LHS: lhs, RHS: numLit(1)}

	a.checkAssignment(i, &dtype.Any{}, int64Type())

	if hasCode(ctx, "TYPE004") {
		t.Fatalf("did not expect TYPE004 when widening into Any, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckTupleFieldLookupRejectsOutOfRangeIndex(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	tupleType := &dtype.Tuple{Fields: []dtype.Type{int64Type(), int64Type()}}
	g := &ast.VarAssignDecl{Name: ident.New("t"), ResolvedType: tupleType, Kind: ast.VarKindGlobal}
	ctx.AddGlobal(g)
	receiver := &ast.VarExpr{Name: ident.New("t")}

	lookup := &ast.TupleFieldLookupExpr{Receiver: receiver, Index: 5}
	a.checkTupleFieldLookup(lookup)

	if !hasCode(ctx, "TYPE001") {
		t.Fatalf("expected TYPE001, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckSubscriptOnPointerYieldsElementType(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	ptrType := &dtype.Pointer{Elem: int64Type()}
	g := &ast.VarAssignDecl{Name: ident.New("p"), ResolvedType: ptrType, Kind: ast.VarKindGlobal}
	ctx.AddGlobal(g)
	receiver := &ast.VarExpr{Name: ident.New("p")}

	s := &ast.SubscriptExpr{Receiver: receiver, Index: numLit(0)}
	result := a.checkSubscript(s)

	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics.All())
	}
	if !result.Equals(int64Type()) {
		t.Fatalf("expected the pointer's element type, got %s", result)
	}
}

func TestCheckShiftAmountFlagsExcessiveShift(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	i := &ast.InfixOperatorExpr{Operator: ast.OpShl, RHS: numLit(10)}
	a.checkShiftAmount(i, int8Type())
	if !hasCode(ctx, "TYPE008") {
		t.Fatalf("expected TYPE008, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckShiftAmountAllowsInRangeShift(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	i := &ast.InfixOperatorExpr{Operator: ast.OpShl, RHS: numLit(4)}
	a.checkShiftAmount(i, int8Type())
	if hasCode(ctx, "TYPE008") {
		t.Fatalf("did not expect TYPE008, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckCoercionAllowsAnExplicitCastOutOfAny(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	g := &ast.VarAssignDecl{Name: ident.New("a"), ResolvedType: &dtype.Any{}, Kind: ast.VarKindGlobal}
	ctx.AddGlobal(g)
	c := &ast.CoercionExpr{Value: &ast.VarExpr{Name: ident.New("a")}, Target: namedRef("Int")}

	result := a.checkCoercion(c)

	if hasCode(ctx, "TYPE004") {
		t.Fatalf("an explicit cast should never trigger TYPE004, got %v", ctx.Diagnostics.All())
	}
	if !result.Equals(int64Type()) {
		t.Fatalf("expected the coercion to resolve to Int, got %s", result)
	}
}

func TestCheckPrefixRejectsAddressOfRValue(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	p := &ast.PrefixOperatorExpr{Operator: ast.OpAddr, Operand: numLit(1)}
	a.checkPrefix(p)
	if !hasCode(ctx, "DECL006") {
		t.Fatalf("expected DECL006, got %v", ctx.Diagnostics.All())
	}
}
