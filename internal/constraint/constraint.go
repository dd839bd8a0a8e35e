// Package constraint implements the Constraint System: a generator that
// walks an expression computing its goal type while emitting
// equality/conformance obligations, and a solver that discharges those
// obligations by unification with an occurs check. The shape follows a
// classic Hindley-Milner-style unification pass (Substitution,
// Solver.solveEqual, occurs, Compose), simplified from
// row-polymorphic record types down to this language's structural
// equality and protocol conformance.
package constraint

import (
	"fmt"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// Kind distinguishes the two constraint shapes the generator emits.
type Kind int

const (
	KindEqual Kind = iota
	KindConforms
)

func (k Kind) String() string {
	if k == KindConforms {
		return "conforms"
	}
	return "equal"
}

// Constraint is one obligation the solver must discharge: either a
// structural equality or a protocol-conformance requirement. Every
// constraint records the AST node that produced it and a caller tag
// (e.g. "call", "infix", "subscript") so a failed solve can point a
// diagnostic at the right place and phrase.
type Constraint struct {
	Kind   Kind
	T1, T2 dtype.Type
	Node   ast.Node
	Caller string
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s(%s, %s)", c.Kind, c.T1, c.T2)
}

// Equal builds an equal(T1, T2) constraint.
func Equal(t1, t2 dtype.Type, node ast.Node, caller string) Constraint {
	return Constraint{Kind: KindEqual, T1: t1, T2: t2, Node: node, Caller: caller}
}

// Conforms builds a conforms(T1, T2) constraint: T1 must name a type
// decl conforming to the protocol T2 names.
func Conforms(t1, t2 dtype.Type, node ast.Node, caller string) Constraint {
	return Constraint{Kind: KindConforms, T1: t1, T2: t2, Node: node, Caller: caller}
}

// Substitution maps a metavariable or type-variable name to the type it
// was bound to during unification. Stored flat as a map — Apply below
// plays the path-compression role by resolving a binding chain to a
// fixed point on every read.
type Substitution map[string]dtype.Type

// Apply rewrites t by replacing every bound variable it mentions,
// recursing to a fixed point so a chain var1 -> var2 -> Int resolves to
// Int in one call.
func (s Substitution) Apply(t dtype.Type) dtype.Type {
	for {
		next, changed := s.applyOnce(t)
		if !changed {
			return next
		}
		t = next
	}
}

func (s Substitution) applyOnce(t dtype.Type) (dtype.Type, bool) {
	switch v := t.(type) {
	case *dtype.MetaVariable:
		if bound, ok := s[v.Name]; ok {
			return bound, true
		}
		return t, false
	case *dtype.TypeVariable:
		if bound, ok := s[v.Name]; ok {
			return bound, true
		}
		return t, false
	case *dtype.Pointer:
		elem, changed := s.applyOnce(v.Elem)
		if !changed {
			return t, false
		}
		return &dtype.Pointer{Elem: elem}, true
	case *dtype.Array:
		elem, changed := s.applyOnce(v.Elem)
		if !changed {
			return t, false
		}
		return &dtype.Array{Elem: elem, Length: v.Length}, true
	case *dtype.Tuple:
		fields := make([]dtype.Type, len(v.Fields))
		changed := false
		for i, f := range v.Fields {
			nf, c := s.applyOnce(f)
			fields[i] = nf
			changed = changed || c
		}
		if !changed {
			return t, false
		}
		return &dtype.Tuple{Fields: fields}, true
	case *dtype.Function:
		args := make([]dtype.Type, len(v.Args))
		changed := false
		for i, a := range v.Args {
			na, c := s.applyOnce(a)
			args[i] = na
			changed = changed || c
		}
		ret := v.Return
		if ret != nil {
			nr, c := s.applyOnce(ret)
			if c {
				ret = nr
				changed = true
			}
		}
		if !changed {
			return t, false
		}
		return &dtype.Function{Args: args, Return: ret, HasVarArgs: v.HasVarArgs}, true
	default:
		return t, false
	}
}

// Compose unions s1 and s2, applying s2 to every value already bound in
// s1. A name bound to two non-equal types by the two sides is a
// conflict, reported via ok=false.
func Compose(s1, s2 Substitution) (result Substitution, ok bool) {
	result = make(Substitution, len(s1)+len(s2))
	for k, v := range s1 {
		result[k] = s2.Apply(v)
	}
	for k, v := range s2 {
		if existing, already := result[k]; already {
			if !existing.Equals(v) {
				return nil, false
			}
			continue
		}
		result[k] = v
	}
	return result, true
}

// CoercionKind tags one coercion step the solver (or the generator, when
// substituting a literal's type) had to introduce to make two types
// equal. The constants are declared worst-first, matching the severity
// order punishments are ranked by.
type CoercionKind int

const (
	AnyPromotion CoercionKind = iota
	ExistentialPromotion
	GenericPromotion
	StringLiteralPromotion
	NumericLiteralPromotion
	numCoercionKinds
)

func (k CoercionKind) String() string {
	switch k {
	case AnyPromotion:
		return "anyPromotion"
	case ExistentialPromotion:
		return "existentialPromotion"
	case GenericPromotion:
		return "genericPromotion"
	case StringLiteralPromotion:
		return "stringLiteralPromotion"
	case NumericLiteralPromotion:
		return "numericLiteralPromotion"
	default:
		return "unknownPromotion"
	}
}

// Punishments is the multiset of coercion steps a solution required,
// one counter per severity level.
type Punishments [numCoercionKinds]int

// Add increments the counter for kind.
func (p *Punishments) Add(kind CoercionKind) { p[kind]++ }

// Merge folds o's counts into p in place.
func (p *Punishments) Merge(o Punishments) {
	for i := range p {
		p[i] += o[i]
	}
}

// Compare reports whether p is the better solution (-1), the worse one
// (+1), or a tie (0) against o: a solution is better than another iff,
// at the first severity level where their counts differ, it has a
// strictly lower count. Absence of punishment at a level is lower than
// any presence.
func (p Punishments) Compare(o Punishments) int {
	for i := range p {
		if p[i] != o[i] {
			if p[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
