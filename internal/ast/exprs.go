package ast

import (
	"fmt"
	"strings"

	"github.com/juniper-lang/frontend/internal/ident"
)

func (*NumExpr) isExpr()               {}
func (*FloatExpr) isExpr()             {}
func (*CharExpr) isExpr()              {}
func (*BoolExpr) isExpr()              {}
func (*StringExpr) isExpr()            {}
func (*NilExpr) isExpr()               {}
func (*VoidExpr) isExpr()              {}
func (*VarExpr) isExpr()               {}
func (*ParenExpr) isExpr()             {}
func (*TupleExpr) isExpr()             {}
func (*ArrayExpr) isExpr()             {}
func (*TupleFieldLookupExpr) isExpr()  {}
func (*PropertyRefExpr) isExpr()       {}
func (*SubscriptExpr) isExpr()         {}
func (*FuncCallExpr) isExpr()          {}
func (*PrefixOperatorExpr) isExpr()    {}
func (*InfixOperatorExpr) isExpr()     {}
func (*TernaryExpr) isExpr()           {}
func (*ClosureExpr) isExpr()           {}
func (*SizeofExpr) isExpr()            {}
func (*CoercionExpr) isExpr()          {}
func (*IsExpr) isExpr()                {}
func (*PromotionExpr) isExpr()         {}

// NumExpr is an integer literal. Raw preserves the literal's source
// spelling, used for overflow/underflow diagnostics; Value is the
// parsed magnitude.
type NumExpr struct {
	ExprMeta
	Raw   string
	Value int64
}

func (n *NumExpr) String() string { return n.Raw }

// FloatExpr is a floating-point literal.
type FloatExpr struct {
	ExprMeta
	Raw   string
	Value float64
}

func (f *FloatExpr) String() string { return f.Raw }

// CharExpr is a single-character literal.
type CharExpr struct {
	ExprMeta
	Value rune
}

func (c *CharExpr) String() string { return fmt.Sprintf("'%c'", c.Value) }

// BoolExpr is `true`/`false`.
type BoolExpr struct {
	ExprMeta
	Value bool
}

func (b *BoolExpr) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// StringSegment is one piece of an interpolated string literal: either a
// literal text run or an interpolated expression (`\(expr)`).
type StringSegment struct {
	Literal string
	Interp  Expr // nil when this segment is a literal run
}

// StringExpr is a (possibly interpolated) string literal.
type StringExpr struct {
	ExprMeta
	Segments []StringSegment
}

func (s *StringExpr) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, seg := range s.Segments {
		if seg.Interp != nil {
			b.WriteString("\\(")
			b.WriteString(seg.Interp.String())
			b.WriteByte(')')
		} else {
			b.WriteString(seg.Literal)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// IsSimple reports whether the string has no interpolated segments.
func (s *StringExpr) IsSimple() bool {
	for _, seg := range s.Segments {
		if seg.Interp != nil {
			return false
		}
	}
	return true
}

// NilExpr is the `nil` literal.
type NilExpr struct{ ExprMeta }

func (*NilExpr) String() string { return "nil" }

// VoidExpr is the `()` / void value.
type VoidExpr struct{ ExprMeta }

func (*VoidExpr) String() string { return "()" }

// VarExpr is a bare name reference: a local, a global, a function
// overload set, or a type name used as a value.
type VarExpr struct {
	ExprMeta
	DeclRef
	Name ident.Identifier
}

func (v *VarExpr) String() string { return v.Name.Name }

// ParenExpr is a parenthesized expression, kept as its own node so
// source ranges and l-value analysis see through to Inner without
// collapsing it during parsing.
type ParenExpr struct {
	ExprMeta
	Inner Expr
}

func (p *ParenExpr) String() string { return "(" + p.Inner.String() + ")" }

// TupleExpr is a tuple literal `(a, b, c)`.
type TupleExpr struct {
	ExprMeta
	Elements []Expr
}

func (t *TupleExpr) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ArrayExpr is an array literal `[a, b, c]`.
type ArrayExpr struct {
	ExprMeta
	Elements []Expr
}

func (a *ArrayExpr) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleFieldLookupExpr is `tupleExpr.0`.
type TupleFieldLookupExpr struct {
	ExprMeta
	DeclRef
	Receiver Expr
	Index    int
}

func (t *TupleFieldLookupExpr) String() string { return fmt.Sprintf("%s.%d", t.Receiver.String(), t.Index) }

// PropertyRefExpr is `receiver.name`: a stored property, computed
// property, method reference, or static-method reference.
type PropertyRefExpr struct {
	ExprMeta
	DeclRef
	Receiver Expr
	Name     ident.Identifier
}

func (p *PropertyRefExpr) String() string { return p.Receiver.String() + "." + p.Name.Name }

// SubscriptExpr is `receiver[index]`.
type SubscriptExpr struct {
	ExprMeta
	DeclRef
	Receiver Expr
	Index    Expr
}

func (s *SubscriptExpr) String() string { return fmt.Sprintf("%s[%s]", s.Receiver.String(), s.Index.String()) }

// FuncCallExpr is a call `callee(args...)`. Callee's shape (PropertyRefExpr,
// VarExpr, or an arbitrary function-typed expression) determines how
// candidates are gathered.
type FuncCallExpr struct {
	ExprMeta
	DeclRef
	Callee Expr
	Args   []Arg
}

// Arg is one call-site argument: an optional external label plus the
// value expression.
type Arg struct {
	Label string // "" when unlabeled
	Value Expr
}

func (f *FuncCallExpr) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		if a.Label != "" {
			parts[i] = a.Label + ": " + a.Value.String()
		} else {
			parts[i] = a.Value.String()
		}
	}
	return fmt.Sprintf("%s(%s)", f.Callee.String(), strings.Join(parts, ", "))
}

// PrefixOperatorExpr is `!x`, `~x`, `-x`, `*x`, `&x`.
type PrefixOperatorExpr struct {
	ExprMeta
	Operator BuiltinOperator
	Operand  Expr
}

func (p *PrefixOperatorExpr) String() string { return string(p.Operator) + p.Operand.String() }

// InfixOperatorExpr is `lhs op rhs`, including assignment and compound
// assignment forms.
type InfixOperatorExpr struct {
	ExprMeta
	DeclRef
	Operator BuiltinOperator
	LHS      Expr
	RHS      Expr
}

func (i *InfixOperatorExpr) String() string {
	return fmt.Sprintf("%s %s %s", i.LHS.String(), i.Operator, i.RHS.String())
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	ExprMeta
	Cond Expr
	Then Expr
	Else Expr
}

func (t *TernaryExpr) String() string {
	return fmt.Sprintf("%s ? %s : %s", t.Cond.String(), t.Then.String(), t.Else.String())
}

// ClosureExpr is an anonymous function literal. Captures accumulates the
// outer declarations referenced from the body as VarExpr resolution
// finds them.
type ClosureExpr struct {
	ExprMeta
	Params     []*ParamDecl
	ReturnType TypeRefExpr
	Body       *CompoundStmt
	Captures   []any // VarAssignDecl/ParamDecl/FuncDecl back-references
}

func (c *ClosureExpr) String() string { return "{ ... }" }

// SizeofExpr is `sizeof(T)`.
type SizeofExpr struct {
	ExprMeta
	Target TypeRefExpr
}

func (s *SizeofExpr) String() string { return "sizeof(" + s.Target.String() + ")" }

// CoercionExpr is `expr as T`.
type CoercionExpr struct {
	ExprMeta
	Value  Expr
	Target TypeRefExpr
}

func (c *CoercionExpr) String() string { return c.Value.String() + " as " + c.Target.String() }

// IsExpr is `expr is T`.
type IsExpr struct {
	ExprMeta
	Value  Expr
	Target TypeRefExpr
}

func (i *IsExpr) String() string { return i.Value.String() + " is " + i.Target.String() }

// PromotionExpr wraps a value being implicitly promoted into an
// existential (`Any`) context: when a non-existential value flows into
// an Any context, an implicit promotion wrapper is introduced. It is
// synthesized by the analyser, never produced by the parser.
type PromotionExpr struct {
	ExprMeta
	Value Expr
}

func (p *PromotionExpr) String() string { return p.Value.String() }
func (p *PromotionExpr) Position() *ident.SourceRange {
	if p.Range != nil {
		return p.Range
	}
	return p.Value.Position()
}
