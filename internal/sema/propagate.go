package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// propagateAssign is the Type Propagator's entry point: it runs after
// contextual's own slot already demanded valueType coerce into it, and
// wraps the expression (or one of its structurally transparent
// descendants — a parenthesized value, a ternary's arms, an array
// literal's elements) in an implicit Any-promotion where the Constraint
// System left one implicit, plus flags an integer literal that overflows
// the width it is being propagated into.
func (a *Analyzer) propagateAssign(e ast.Expr, contextual dtype.Type) ast.Expr {
	return a.propagateExpr(e, contextual)
}

func (a *Analyzer) propagateExpr(e ast.Expr, contextual dtype.Type) ast.Expr {
	if contextual == nil || e == nil {
		return e
	}
	switch v := e.(type) {
	case *ast.NumExpr:
		if it, ok := a.ctx.Canonicalize(contextual).(*dtype.Int); ok && !fitsWidth(v.Value, it) {
			a.ctx.Diagnostics.Errorf(codes.TYPE007, primaryLoc(v), "integer literal %q overflows %s", v.Raw, it)
		}
	case *ast.ParenExpr:
		v.Inner = a.propagateExpr(v.Inner, contextual)
		return v
	case *ast.TernaryExpr:
		v.Then = a.propagateExpr(v.Then, contextual)
		v.Else = a.propagateExpr(v.Else, contextual)
		return v
	case *ast.ArrayExpr:
		if arr, ok := a.ctx.Canonicalize(contextual).(*dtype.Array); ok {
			for i, el := range v.Elements {
				v.Elements[i] = a.propagateExpr(el, arr.Elem)
			}
			return v
		}
	}
	return a.ctx.PropagateContextualType(e, contextual)
}

// fitsWidth reports whether value fits within it's declared width,
// accounting for sign. Every int64 value fits a signed Width64; an
// unsigned Width64 rejects only negative values.
func fitsWidth(value int64, it *dtype.Int) bool {
	switch it.Width {
	case dtype.Width8:
		if it.Signed {
			return value >= -128 && value <= 127
		}
		return value >= 0 && value <= 255
	case dtype.Width16:
		if it.Signed {
			return value >= -32768 && value <= 32767
		}
		return value >= 0 && value <= 65535
	case dtype.Width32:
		if it.Signed {
			return value >= -2147483648 && value <= 2147483647
		}
		return value >= 0 && value <= 4294967295
	case dtype.Width64:
		if it.Signed {
			return true
		}
		return value >= 0
	default:
		return true
	}
}
