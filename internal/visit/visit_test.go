package visit

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/ident"
)

type countingTransformer struct {
	BaseTransformer[int]
	numCount int
}

func (c *countingTransformer) VisitNumExpr(n *ast.NumExpr) int {
	c.numCount++
	return int(n.Value)
}

func TestVisitExprDispatchesToOverride(t *testing.T) {
	ct := &countingTransformer{}
	got := VisitExpr[int](ct, &ast.NumExpr{Raw: "5", Value: 5})
	if got != 5 || ct.numCount != 1 {
		t.Fatalf("expected dispatch to VisitNumExpr, got %d count=%d", got, ct.numCount)
	}
}

func TestVisitExprFallsBackToNoOp(t *testing.T) {
	ct := &countingTransformer{}
	got := VisitExpr[int](ct, &ast.BoolExpr{Value: true})
	if got != 0 {
		t.Fatalf("expected zero-value no-op result, got %d", got)
	}
}

func TestStackWithFuncRestoresOnExit(t *testing.T) {
	s := NewStack()
	fn := &ast.FuncDecl{Name: ident.New("f")}
	func() {
		restore := s.WithFunc(fn)
		defer restore()
		if s.Current().CurrentFunc != fn {
			t.Fatal("expected CurrentFunc set inside the frame")
		}
	}()
	if s.Current().CurrentFunc != nil {
		t.Fatal("expected CurrentFunc restored to nil after the frame exits")
	}
}

func TestScopeLookupWalksParents(t *testing.T) {
	outer := NewScope(nil)
	x := &ast.VarAssignDecl{Name: ident.New("x")}
	outer.Declare("x", x)
	inner := NewScope(outer)
	got, ok := inner.Lookup("x")
	if !ok || got != x {
		t.Fatal("expected inner scope to find x via its parent")
	}
}

func TestScopeShadowing(t *testing.T) {
	outer := NewScope(nil)
	outerX := &ast.VarAssignDecl{Name: ident.New("x")}
	outer.Declare("x", outerX)
	inner := NewScope(outer)
	innerX := &ast.VarAssignDecl{Name: ident.New("x")}
	inner.Declare("x", innerX)
	got, _ := inner.Lookup("x")
	if got != innerX {
		t.Fatal("expected inner binding to shadow outer")
	}
}

func TestWithBreakTargetNesting(t *testing.T) {
	s := NewStack()
	loop1 := &ast.WhileStmt{}
	loop2 := &ast.WhileStmt{}
	r1 := s.WithBreakTarget(loop1)
	r2 := s.WithBreakTarget(loop2)
	if s.Current().BreakTarget != loop2 {
		t.Fatal("expected innermost loop as break target")
	}
	r2()
	if s.Current().BreakTarget != loop1 {
		t.Fatal("expected restore to outer loop after inner exits")
	}
	r1()
	if s.Current().BreakTarget != nil {
		t.Fatal("expected nil break target after all loops exit")
	}
}
