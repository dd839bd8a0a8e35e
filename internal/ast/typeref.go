package ast

import (
	"strings"

	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

// TypeRefExpr is type syntax written in source (a parameter's declared
// type, a cast target, a variable's annotation). Every variant carries a
// write-once cell for the dtype.Type it resolves to, populated by the
// semantic analyser's type-reference resolution: type refs are the
// syntax side of "carries a type" for positions that are not themselves
// value expressions.
type TypeRefExpr interface {
	Node
	isTypeRef()
	Resolved() dtype.Type
	SetResolved(dtype.Type)
}

type typeRefMeta struct {
	Meta
	resolved dtype.Type
}

func (t *typeRefMeta) Resolved() dtype.Type { return t.resolved }
func (t *typeRefMeta) SetResolved(d dtype.Type) {
	if t.resolved != nil {
		panic("ast: TypeRefExpr.Resolved set twice (write-once violation)")
	}
	t.resolved = d
}

func (*NamedTypeRef) isTypeRef()     {}
func (*PointerTypeRef) isTypeRef()   {}
func (*FunctionTypeRef) isTypeRef()  {}
func (*ArrayTypeRef) isTypeRef()     {}
func (*TupleTypeRef) isTypeRef()     {}
func (*GenericTypeRef) isTypeRef()   {}

// NamedTypeRef is a bare name reference: a builtin scalar, a type decl,
// a type alias, or a generic parameter in scope.
type NamedTypeRef struct {
	typeRefMeta
	Name ident.Identifier
}

func (n *NamedTypeRef) String() string { return n.Name.Name }

// PointerTypeRef is `*T`; the level is implicit in nesting (`**T` is a
// PointerTypeRef wrapping a PointerTypeRef).
type PointerTypeRef struct {
	typeRefMeta
	Elem TypeRefExpr
}

func (p *PointerTypeRef) String() string { return "*" + p.Elem.String() }

// FunctionTypeRef is `(T1, T2) -> R`.
type FunctionTypeRef struct {
	typeRefMeta
	Args       []TypeRefExpr
	Return     TypeRefExpr
	HasVarArgs bool
}

func (f *FunctionTypeRef) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	ret := "Void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + ret
}

// ArrayTypeRef is `T[n]` or `T[]`.
type ArrayTypeRef struct {
	typeRefMeta
	Elem   TypeRefExpr
	Length *int
}

func (a *ArrayTypeRef) String() string {
	if a.Length == nil {
		return a.Elem.String() + "[]"
	}
	return a.Elem.String() + "[...]"
}

// TupleTypeRef is `(T1, T2, ...)`.
type TupleTypeRef struct {
	typeRefMeta
	Fields []TypeRefExpr
}

func (t *TupleTypeRef) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// GenericTypeRef is a generic type application, `Name<Args...>`.
type GenericTypeRef struct {
	typeRefMeta
	Name ident.Identifier
	Args []TypeRefExpr
}

func (g *GenericTypeRef) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return g.Name.Name + "<" + strings.Join(parts, ", ") + ">"
}
