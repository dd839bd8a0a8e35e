package sema

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/ast"
)

func TestAnalyzeFlowFlagsDeadCodeAfterReturn(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	body := &ast.CompoundStmt{Statements: []ast.Stmt{
		&ast.ReturnStmt{},
		&ast.ExprStmt{Value: numLit(1)},
	}}
	terminates := a.analyzeFlow(body)
	if !terminates {
		t.Error("expected the block to be marked as terminating")
	}
	if !hasCode(ctx, "FLOW003") {
		t.Fatalf("expected FLOW003 for the statement after return, got %v", ctx.Diagnostics.All())
	}
}

func TestAnalyzeFlowOnlyReportsDeadCodeOnce(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	body := &ast.CompoundStmt{Statements: []ast.Stmt{
		&ast.ReturnStmt{},
		&ast.ExprStmt{Value: numLit(1)},
		&ast.ExprStmt{Value: numLit(2)},
	}}
	a.analyzeFlow(body)
	count := 0
	for _, d := range ctx.Diagnostics.All() {
		if d.Code == "FLOW003" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one FLOW003, got %d", count)
	}
}

func TestAnalyzeFlowIfTerminatesOnlyWithElseOnBothArms(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	ifStmt := &ast.IfStmt{
		Cond: &ast.BoolExpr{Value: true},
		Then: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}},
		Else: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ExprStmt{Value: numLit(1)}}},
	}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{ifStmt}}
	if terminates := a.analyzeFlow(body); terminates {
		t.Error("expected the if to not terminate: the else branch falls through")
	}
}

func TestAnalyzeFlowIfTerminatesWhenBothArmsReturn(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	ifStmt := &ast.IfStmt{
		Cond: &ast.BoolExpr{Value: true},
		Then: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}},
		Else: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}},
	}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{ifStmt}}
	if terminates := a.analyzeFlow(body); !terminates {
		t.Error("expected the if to terminate: both branches return")
	}
}

func TestAnalyzeFlowSwitchRequiresDefaultAndAllCasesTerminating(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	sw := &ast.SwitchStmt{
		Scrutinee: numLit(1),
		Cases: []*ast.CaseStmt{
			{Consts: []ast.Expr{numLit(1)}, Body: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}}},
			{IsDefault: true, Body: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}}},
		},
	}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{sw}}
	if terminates := a.analyzeFlow(body); !terminates {
		t.Error("expected the switch to terminate: every case returns and a default is present")
	}
}

func TestAnalyzeFlowSwitchWithoutDefaultDoesNotTerminate(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	sw := &ast.SwitchStmt{
		Scrutinee: numLit(1),
		Cases: []*ast.CaseStmt{
			{Consts: []ast.Expr{numLit(1)}, Body: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}}},
		},
	}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{sw}}
	if terminates := a.analyzeFlow(body); terminates {
		t.Error("expected no default case to mean the switch does not terminate")
	}
}

func TestAnalyzeFlowLoopsNeverTerminateTheEnclosingBlock(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	loop := &ast.WhileStmt{Cond: &ast.BoolExpr{Value: true}, Body: &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ReturnStmt{}}}}
	body := &ast.CompoundStmt{Statements: []ast.Stmt{loop}}
	if terminates := a.analyzeFlow(body); terminates {
		t.Error("a while loop's body returning does not make the enclosing block terminate: the condition may be false immediately")
	}
}

func TestCalleeIsNoReturnReadsTheModifierOffTheResolvedDecl(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	fatal := &ast.FuncDecl{Modifiers: ast.NewModifierSet(ast.ModNoReturn)}
	callee := &ast.VarExpr{}
	callee.SetDecl(fatal)
	call := &ast.FuncCallExpr{Callee: callee}
	if !a.calleeIsNoReturn(call) {
		t.Error("expected a call to a noreturn-marked function to report true")
	}
}

func TestCheckReturnPathsFlagsAFunctionThatFallsOffTheEnd(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	body := &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ExprStmt{Value: numLit(1)}}}
	a.checkReturnPaths("f", true, body)
	if !hasCode(ctx, "FLOW004") {
		t.Fatalf("expected FLOW004, got %v", ctx.Diagnostics.All())
	}
}

func TestCheckReturnPathsAllowsVoidFunctionsToFallOffTheEnd(t *testing.T) {
	ctx := newTestContext()
	a := New(ctx)
	body := &ast.CompoundStmt{Statements: []ast.Stmt{&ast.ExprStmt{Value: numLit(1)}}}
	a.checkReturnPaths("f", false, body)
	if hasCode(ctx, "FLOW004") {
		t.Fatalf("did not expect FLOW004 for a void function, got %v", ctx.Diagnostics.All())
	}
}
