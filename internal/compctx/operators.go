package compctx

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// numericBuiltinWidths lists every Int/Floating builtin the implicit
// operator overload set is seeded over: every arithmetic/comparison
// operator over every numeric type, every bitwise operator over the Int
// types only, plus && / || / == / != over Bool.
var numericBuiltinWidths = []dtype.Type{
	&dtype.Int{Width: dtype.Width8, Signed: true},
	&dtype.Int{Width: dtype.Width16, Signed: true},
	&dtype.Int{Width: dtype.Width32, Signed: true},
	&dtype.Int{Width: dtype.Width64, Signed: true},
	&dtype.Int{Width: dtype.Width8, Signed: false},
	&dtype.Int{Width: dtype.Width16, Signed: false},
	&dtype.Int{Width: dtype.Width32, Signed: false},
	&dtype.Int{Width: dtype.Width64, Signed: false},
	&dtype.Floating{Kind: dtype.FloatSingle},
	&dtype.Floating{Kind: dtype.FloatDouble},
	&dtype.Floating{Kind: dtype.Float80},
}

var arithmeticOps = []ast.BuiltinOperator{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod}
var bitwiseOps = []ast.BuiltinOperator{ast.OpShl, ast.OpShr, ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor}
var comparisonOps = []ast.BuiltinOperator{ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNe}

// implicitOperator is a synthetic OperatorDecl with no body, standing in
// for a compiler-builtin operator overload over scalar operand types; the
// overload resolver treats it exactly like a user declaration except
// that sema never type-checks a body for it (Body == nil).
type implicitOperator = ast.OperatorDecl

// seedImplicitOperators registers the built-in arithmetic and comparison
// operators over every numeric width, the bitwise operators over every
// Int width (never over Floating), plus the boolean
// logical/equality operators: a fixed set of primitive instances seeded
// ahead of any user declaration.
func (c *Context) seedImplicitOperators() {
	for _, t := range numericBuiltinWidths {
		_, isFloat := t.(*dtype.Floating)
		ops := arithmeticOps
		if !isFloat {
			ops = append(append([]ast.BuiltinOperator{}, arithmeticOps...), bitwiseOps...)
		}
		for _, op := range ops {
			c.seedBinaryOp(op, t, t, t)
		}
		for _, op := range comparisonOps {
			c.seedBinaryOp(op, t, t, &dtype.Bool{})
		}
	}
	boolT := dtype.Type(&dtype.Bool{})
	c.seedBinaryOp(ast.OpAnd, boolT, boolT, boolT)
	c.seedBinaryOp(ast.OpOr, boolT, boolT, boolT)
	c.seedBinaryOp(ast.OpEq, boolT, boolT, boolT)
	c.seedBinaryOp(ast.OpNe, boolT, boolT, boolT)
}

func (c *Context) seedBinaryOp(op ast.BuiltinOperator, lhs, rhs, ret dtype.Type) {
	decl := &implicitOperator{
		Operator: op,
		Params: []*ast.ParamDecl{
			{ExternalName: "lhs", ResolvedType: lhs},
			{ExternalName: "rhs", ResolvedType: rhs},
		},
	}
	c.operatorMap[op] = append(c.operatorMap[op], decl)
}

// MatchRank is the context-aware extension of dtype.MatchRank: it
// canonicalises both operands first (resolving aliases) and recurses
// structurally into tuples field-by-field, since two tuple types match
// only if every field matches and neither side may short-circuit through
// Any at the tuple level alone.
func (c *Context) MatchRank(t1, t2 dtype.Type) dtype.TypeRank {
	t1 = c.Canonicalize(t1)
	t2 = c.Canonicalize(t2)
	tup1, ok1 := t1.(*dtype.Tuple)
	tup2, ok2 := t2.(*dtype.Tuple)
	if ok1 && ok2 {
		if len(tup1.Fields) != len(tup2.Fields) {
			return dtype.RankNone
		}
		best := dtype.RankEqual
		for i := range tup1.Fields {
			r := c.MatchRank(tup1.Fields[i], tup2.Fields[i])
			if r == dtype.RankNone {
				return dtype.RankNone
			}
			if r == dtype.RankAny {
				best = dtype.RankAny
			}
		}
		return best
	}
	return dtype.MatchRank(t1, t2)
}

// CanBeNil reports whether a value of type t may be compared against or
// assigned the `nil` literal: pointers always can; nominal types can
// only when declared `indirect`.
func (c *Context) CanBeNil(t dtype.Type) bool {
	switch v := c.Canonicalize(t).(type) {
	case *dtype.Pointer:
		return true
	case *dtype.Custom:
		td, ok := c.typeDeclMap[v.Name]
		return ok && td.IsIndirect()
	default:
		return false
	}
}

// CanCoerce layers the Context-aware `indirect` special case on top of
// dtype.CanCoerceTo: an `indirect` nominal type accepts `nil` exactly
// like a pointer does, since its instances already live behind one.
func (c *Context) CanCoerce(from, to dtype.Type) bool {
	from = c.Canonicalize(from)
	to = c.Canonicalize(to)
	if _, isNil := from.(*dtype.NilLiteral); isNil && c.CanBeNil(to) {
		return true
	}
	return dtype.CanCoerceTo(from, to)
}

// InfixOperatorCandidate gathers the overload set for op, synthesizing a
// nil-equality pseudo-candidate when op is == or != and one operand can
// be nil: nil == somePointer is resolved without consulting the
// operator overload set at all. That case returns no candidates and
// isNilComparison == true; callers (sema's checkInfix and
// hasEqualityOperator) then treat the comparison as a Bool-typed
// structural nil check without running overload resolution.
func (c *Context) InfixOperatorCandidate(op ast.BuiltinOperator, lhsType, rhsType dtype.Type) (candidates []*ast.OperatorDecl, isNilComparison bool) {
	if op == ast.OpEq || op == ast.OpNe {
		_, lhsNil := lhsType.(*dtype.NilLiteral)
		_, rhsNil := rhsType.(*dtype.NilLiteral)
		if lhsNil && c.CanBeNil(rhsType) {
			return nil, true
		}
		if rhsNil && c.CanBeNil(lhsType) {
			return nil, true
		}
	}
	return c.operatorMap[op], false
}
