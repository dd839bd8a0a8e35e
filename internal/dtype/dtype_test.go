package dtype

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEqualsByVariant(t *testing.T) {
	i1 := &Int{Width: Width32, Signed: true}
	i2 := &Int{Width: Width32, Signed: true}
	i3 := &Int{Width: Width32, Signed: false}
	if !i1.Equals(i2) {
		t.Error("expected equal signed Int32 types to be equal")
	}
	if i1.Equals(i3) {
		t.Error("expected signed and unsigned Int32 to differ")
	}
}

func TestAnyMatchesEverything(t *testing.T) {
	any := &Any{}
	if !any.Equals(&Bool{}) || !any.Equals(&Void{}) {
		t.Error("Any must Equals() every other type")
	}
}

func TestArrayEqualityHandlesIncompleteLength(t *testing.T) {
	l := 4
	complete := &Array{Elem: &Bool{}, Length: &l}
	incomplete := &Array{Elem: &Bool{}}
	if complete.Equals(incomplete) {
		t.Error("a complete array type must not equal an incomplete one")
	}
	if !incomplete.Equals(&Array{Elem: &Bool{}}) {
		t.Error("two incomplete arrays of the same element should be equal")
	}
}

func TestTupleEqualityElementwise(t *testing.T) {
	a := &Tuple{Fields: []Type{&Bool{}, &Int{Width: Width64, Signed: true}}}
	b := &Tuple{Fields: []Type{&Bool{}, &Int{Width: Width64, Signed: true}}}
	c := &Tuple{Fields: []Type{&Bool{}}}
	if !a.Equals(b) {
		t.Error("structurally identical tuples should be equal")
	}
	if a.Equals(c) {
		t.Error("tuples of differing arity must not be equal")
	}
	if diff := cmp.Diff(a, b, cmpopts.IgnoreUnexported()); diff != "" {
		t.Errorf("unexpected structural diff (-a +b):\n%s", diff)
	}
}

func TestCanCoerceTo(t *testing.T) {
	i32 := &Int{Width: Width32, Signed: true}
	f64 := &Floating{Kind: FloatDouble}
	p := &Pointer{Elem: i32}
	if !CanCoerceTo(i32, f64) {
		t.Error("int should coerce to floating")
	}
	if !CanCoerceTo(i32, p) {
		t.Error("int should coerce to pointer")
	}
	if CanCoerceTo(&Bool{}, i32) {
		t.Error("bool must not coerce to int")
	}
	if !CanCoerceTo(&Any{}, i32) || !CanCoerceTo(i32, &Any{}) {
		t.Error("Any must coerce in either direction")
	}
}

func TestMatchRankNilIsNotEqual(t *testing.T) {
	// Deliberately does not treat nil as equal-ranked against a pointer
	// type; that quirk is not worth preserving.
	if MatchRank(&NilLiteral{}, &Pointer{Elem: &Int{Width: Width64, Signed: true}}) == RankEqual {
		t.Error("nil must not be treated as matching a pointer type by matchRank")
	}
}

func TestMatchRankSymmetric(t *testing.T) {
	i1 := &Int{Width: Width64, Signed: true}
	i2 := &Int{Width: Width64, Signed: true}
	if MatchRank(i1, i2) != MatchRank(i2, i1) {
		t.Error("matchRank must be symmetric")
	}
	any := &Any{}
	if MatchRank(any, i1) != MatchRank(i1, any) {
		t.Error("matchRank with Any must be symmetric")
	}
}

func TestLookupBuiltin(t *testing.T) {
	typ, ok := LookupBuiltin("Int32")
	if !ok {
		t.Fatal("Int32 should be a recognised builtin")
	}
	if typ.String() != "Int32" {
		t.Errorf("got %s, want Int32", typ.String())
	}
	if _, ok := LookupBuiltin("Frobnicator"); ok {
		t.Error("unknown name should not resolve as builtin")
	}
}
