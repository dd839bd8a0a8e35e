package ast

// Modifier is one tag from a closed set. Declarations carry a set of
// these; validity per declaration kind is enforced by the semantic
// analyser (internal/sema), not by this package.
type Modifier string

const (
	ModForeign   Modifier = "foreign"
	ModStatic    Modifier = "static"
	ModMutating  Modifier = "mutating"
	ModIndirect  Modifier = "indirect"
	ModNoReturn  Modifier = "noreturn"
	ModImplicit  Modifier = "implicit"
)

// ModifierSet is an order-independent set of Modifier tags.
type ModifierSet map[Modifier]bool

func NewModifierSet(mods ...Modifier) ModifierSet {
	s := make(ModifierSet, len(mods))
	for _, m := range mods {
		s[m] = true
	}
	return s
}

func (s ModifierSet) Has(m Modifier) bool { return s[m] }

// FuncKind tags what role a function/method declaration plays.
// ParentType is nil for Free and the operator variants.
type FuncKindTag int

const (
	KindFree FuncKindTag = iota
	KindInitializer
	KindDeinitializer
	KindMethod
	KindStaticMethod
	KindSubscript
	KindProperty
	KindOperator
)

// FuncKind pairs the tag with its parent type (for member-shaped kinds)
// or builtin operator (for KindOperator).
type FuncKind struct {
	Tag        FuncKindTag
	ParentType *TypeDecl
	Operator   BuiltinOperator
}

// HasImplicitSelf reports whether a function of this kind receives a
// synthetic `self` first parameter.
func (k FuncKind) HasImplicitSelf() bool {
	switch k.Tag {
	case KindInitializer, KindDeinitializer, KindMethod, KindSubscript, KindProperty:
		return true
	default:
		return false
	}
}

// IsStaticLike reports whether the kind has no implicit self and no
// enclosing-instance requirement beyond name resolution (free functions,
// static methods, operators).
func (k FuncKind) IsStaticLike() bool {
	return !k.HasImplicitSelf()
}
