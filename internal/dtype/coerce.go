package dtype

// CanCoerceTo implements the context-free part of the canCoerceTo relation:
// reflexive; int<->int, int<->floating, int<->pointer,
// pointer<->pointer; Any coerces in either direction. Coercions that
// require consulting the Context (an `indirect` type decl standing in for
// a pointer) are layered on top by compctx.CanCoerce, which falls back to
// this function for the scalar cases.
func CanCoerceTo(from, to Type) bool {
	if from.Equals(to) {
		return true
	}
	if IsAny(from) || IsAny(to) {
		return true
	}
	switch from.(type) {
	case *Int:
		switch to.(type) {
		case *Int, *Floating, *Pointer:
			return true
		}
	case *Floating:
		switch to.(type) {
		case *Int, *Floating:
			return true
		}
	case *Pointer:
		switch to.(type) {
		case *Pointer, *Int:
			return true
		}
	case *NilLiteral:
		switch to.(type) {
		case *Pointer:
			return true
		}
	}
	return false
}

// TypeRank is the outcome of comparing two canonical types for
// compatibility.
type TypeRank int

const (
	RankNone TypeRank = iota
	RankEqual
	RankAny
)

// MatchRank is the context-free core of Context.MatchRank: structural
// equality, Any-compatibility, or incompatibility. A nil literal on either
// side ranks RankNone unless the other side is Any (deliberately NOT
// RankEqual; see DESIGN.md's Open Question resolution). Tuple recursion
// lives in compctx, since tuple element matching must itself call back
// into MatchRank recursively with access to canonicalisation.
func MatchRank(t1, t2 Type) TypeRank {
	if IsAny(t1) || IsAny(t2) {
		return RankAny
	}
	if _, ok := t1.(*NilLiteral); ok {
		return RankNone
	}
	if _, ok := t2.(*NilLiteral); ok {
		return RankNone
	}
	if t1.Equals(t2) {
		return RankEqual
	}
	return RankNone
}
