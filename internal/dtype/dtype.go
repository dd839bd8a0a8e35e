// Package dtype implements the type algebra: a closed sum type over the
// language's value types, plus coercion predicates and equality.
// Canonicalisation needs the alias and type-decl tables, so it lives in
// compctx (Context.Canonicalize). Every variant is a small struct
// implementing the Type interface, one struct per variant.
package dtype

import (
	"fmt"
	"strings"
)

// Type is the closed sum of all DataType variants. Each
// variant implements String, Equals, and a private marker method so no
// type outside this package can satisfy the interface.
type Type interface {
	String() string
	Equals(Type) bool
	isType()
}

// IntWidth enumerates the supported integer widths.
type IntWidth int

const (
	Width8  IntWidth = 8
	Width16 IntWidth = 16
	Width32 IntWidth = 32
	Width64 IntWidth = 64
)

// FloatKind enumerates floating-point variants.
type FloatKind int

const (
	FloatSingle FloatKind = iota
	FloatDouble
	Float80
)

func (k FloatKind) String() string {
	switch k {
	case FloatSingle:
		return "Float"
	case FloatDouble:
		return "Double"
	case Float80:
		return "Float80"
	default:
		return "Float?"
	}
}

// Int is a fixed-width integer, signed or unsigned.
type Int struct {
	Width  IntWidth
	Signed bool
}

func (t *Int) isType() {}
func (t *Int) String() string {
	prefix := "Int"
	if !t.Signed {
		prefix = "UInt"
	}
	return fmt.Sprintf("%s%d", prefix, t.Width)
}
func (t *Int) Equals(other Type) bool {
	o, ok := other.(*Int)
	return ok && o.Width == t.Width && o.Signed == t.Signed
}

// Floating is a floating-point type.
type Floating struct {
	Kind FloatKind
}

func (t *Floating) isType()        {}
func (t *Floating) String() string { return t.Kind.String() }
func (t *Floating) Equals(other Type) bool {
	o, ok := other.(*Floating)
	return ok && o.Kind == t.Kind
}

// Bool is the boolean type.
type Bool struct{}

func (t *Bool) isType()            {}
func (t *Bool) String() string     { return "Bool" }
func (t *Bool) Equals(o Type) bool { _, ok := o.(*Bool); return ok }

// Void is the empty/unit type.
type Void struct{}

func (t *Void) isType()            {}
func (t *Void) String() string     { return "Void" }
func (t *Void) Equals(o Type) bool { _, ok := o.(*Void); return ok }

// Any is the universal existential type: it matches any canonical type in
// equality and coercion.
type Any struct{}

func (t *Any) isType()            {}
func (t *Any) String() string     { return "Any" }
func (t *Any) Equals(o Type) bool { return true }

// NilLiteral is the type of the `nil` literal before it is reshaped to a
// contextual pointer/indirect type.
type NilLiteral struct{}

func (t *NilLiteral) isType()            {}
func (t *NilLiteral) String() string     { return "<nil literal>" }
func (t *NilLiteral) Equals(o Type) bool { _, ok := o.(*NilLiteral); return ok }

// ErrorType is the sentinel type attached to an expression whose type
// could not be resolved, so that a single bad subtree does not panic
// every later consumer that reads `.Type()`: an expression's type is
// either set or a diagnostic was emitted, and ErrorType marks the
// latter without requiring a nil check everywhere.
type ErrorType struct{}

func (t *ErrorType) isType()            {}
func (t *ErrorType) String() string     { return "<error type>" }
func (t *ErrorType) Equals(o Type) bool { _, ok := o.(*ErrorType); return ok }

// Custom is a nominal reference to a user type or protocol, resolved
// through the Context's type-decl or alias tables.
type Custom struct {
	Name string
}

func (t *Custom) isType()            {}
func (t *Custom) String() string     { return t.Name }
func (t *Custom) Equals(o Type) bool { c, ok := o.(*Custom); return ok && c.Name == t.Name }

// Pointer is T*.
type Pointer struct {
	Elem Type
}

func (t *Pointer) isType()        {}
func (t *Pointer) String() string { return "*" + t.Elem.String() }
func (t *Pointer) Equals(o Type) bool {
	p, ok := o.(*Pointer)
	return ok && t.Elem.Equals(p.Elem)
}

// Array is T[n] (fixed length) or T[] (incomplete, Length == nil).
type Array struct {
	Elem   Type
	Length *int
}

func (t *Array) isType() {}
func (t *Array) String() string {
	if t.Length == nil {
		return t.Elem.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", t.Elem.String(), *t.Length)
}
func (t *Array) Equals(o Type) bool {
	a, ok := o.(*Array)
	if !ok || !t.Elem.Equals(a.Elem) {
		return false
	}
	if (t.Length == nil) != (a.Length == nil) {
		return false
	}
	return t.Length == nil || *t.Length == *a.Length
}

// Tuple is a fixed-arity heterogeneous product.
type Tuple struct {
	Fields []Type
}

func (t *Tuple) isType() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) Equals(o Type) bool {
	tup, ok := o.(*Tuple)
	if !ok || len(tup.Fields) != len(t.Fields) {
		return false
	}
	for i := range t.Fields {
		if !t.Fields[i].Equals(tup.Fields[i]) {
			return false
		}
	}
	return true
}

// Function is (args...) -> ret, possibly variadic.
type Function struct {
	Args       []Type
	Return     Type
	HasVarArgs bool
}

func (t *Function) isType() {}
func (t *Function) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	variadic := ""
	if t.HasVarArgs {
		variadic = "..."
	}
	ret := "Void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return fmt.Sprintf("(%s%s) -> %s", strings.Join(args, ", "), variadic, ret)
}
func (t *Function) Equals(o Type) bool {
	f, ok := o.(*Function)
	if !ok || len(f.Args) != len(t.Args) || f.HasVarArgs != t.HasVarArgs {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(f.Args[i]) {
			return false
		}
	}
	return t.Return.Equals(f.Return)
}

// TypeVariable is a placeholder introduced by a generic parameter.
type TypeVariable struct {
	Name string
}

func (t *TypeVariable) isType()        {}
func (t *TypeVariable) String() string { return "$" + t.Name }
func (t *TypeVariable) Equals(o Type) bool {
	v, ok := o.(*TypeVariable)
	return ok && v.Name == t.Name
}

// MetaVariable is a placeholder introduced by constraint generation.
type MetaVariable struct {
	Name string
}

func (t *MetaVariable) isType()        {}
func (t *MetaVariable) String() string { return "?" + t.Name }
func (t *MetaVariable) Equals(o Type) bool {
	v, ok := o.(*MetaVariable)
	return ok && v.Name == t.Name
}

// IsNumeric reports whether t is an Int or Floating variant.
func IsNumeric(t Type) bool {
	switch t.(type) {
	case *Int, *Floating:
		return true
	default:
		return false
	}
}

// IsAny reports whether t is the universal existential type.
func IsAny(t Type) bool {
	_, ok := t.(*Any)
	return ok
}

// Builtin scalar type name table, used by the Context when seeding its
// type-decl map and by the type-name resolver.
var builtinNames = map[string]Type{
	"Int":     &Int{Width: Width64, Signed: true},
	"Int8":    &Int{Width: Width8, Signed: true},
	"Int16":   &Int{Width: Width16, Signed: true},
	"Int32":   &Int{Width: Width32, Signed: true},
	"UInt":    &Int{Width: Width64, Signed: false},
	"UInt8":   &Int{Width: Width8, Signed: false},
	"UInt16":  &Int{Width: Width16, Signed: false},
	"UInt32":  &Int{Width: Width32, Signed: false},
	"Bool":    &Bool{},
	"Void":    &Void{},
	"Float":   &Floating{Kind: FloatSingle},
	"Double":  &Floating{Kind: FloatDouble},
	"Float80": &Floating{Kind: Float80},
	"Any":     &Any{},
}

// LookupBuiltin returns the scalar type named by a builtin type-namespace
// identifier, or false if name does not name a builtin.
func LookupBuiltin(name string) (Type, bool) {
	t, ok := builtinNames[name]
	return t, ok
}

// BuiltinNames returns every recognised builtin type name, used to seed
// the Context's type-decl map deterministically (insertion order fixed by
// this slice, not Go's randomized map order).
func BuiltinNames() []string {
	return []string{"Int", "Int8", "Int16", "Int32", "UInt", "UInt8", "UInt16", "UInt32", "Bool", "Void", "Float", "Double", "Float80", "Any"}
}
