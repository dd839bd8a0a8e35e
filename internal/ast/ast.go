// Package ast implements the AST node family: a closed sum of
// declarations, statements, and expressions, each a small struct
// implementing a shared Node interface, one struct per variant with a
// String/Position pair satisfying a common interface.
package ast

import (
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

// Node is the base interface every declaration, statement, and expression
// satisfies.
type Node interface {
	String() string
	Position() *ident.SourceRange
}

// Meta holds the fields every node carries: an optional source range
// used only for diagnostics. Embed it in every node struct.
type Meta struct {
	Range *ident.SourceRange
}

func (m Meta) Position() *ident.SourceRange { return m.Range }

// Decl is the closed sum of declaration nodes.
type Decl interface {
	Node
	isDecl()
}

// Stmt is the closed sum of statement nodes.
type Stmt interface {
	Node
	isStmt()
}

// Expr is the closed sum of expression nodes. Every expression carries a
// write-once Type cell, populated by the semantic analyser, and most also
// carry a write-once Decl back-reference.
type Expr interface {
	Node
	isExpr()
	// Type returns the resolved type, or nil before semantic analysis has
	// visited this node.
	Type() dtype.Type
	// SetType performs the write-once assignment: it panics if called
	// twice with a non-nil prior value.
	SetType(dtype.Type)
}

// ExprMeta is embedded by every expression node; it implements the
// Type()/SetType() half of the Expr interface so each concrete expression
// struct need only embed ExprMeta and Meta.
type ExprMeta struct {
	Meta
	resolvedType dtype.Type
}

func (e *ExprMeta) Type() dtype.Type { return e.resolvedType }

func (e *ExprMeta) SetType(t dtype.Type) {
	if e.resolvedType != nil {
		panic("ast: Expr.Type set twice (write-once violation)")
	}
	e.resolvedType = t
}

// DeclRef is embedded by expression nodes that carry a `decl` back-
// reference (VarExpr, PropertyRefExpr, InfixOperatorExpr, FuncCallExpr,
// SubscriptExpr, TupleFieldLookupExpr). The referenced
// value is an opaque `any` here to avoid an import cycle with the
// compctx package that owns the declaration tables; sema casts it back
// to the concrete Decl type it expects.
type DeclRef struct {
	resolvedDecl any
}

func (d *DeclRef) Decl() any { return d.resolvedDecl }

func (d *DeclRef) SetDecl(decl any) {
	if d.resolvedDecl != nil {
		panic("ast: Expr.Decl set twice (write-once violation)")
	}
	d.resolvedDecl = decl
}
