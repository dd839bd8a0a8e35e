package compctx

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// PropagateContextualType applies the contextual (expected) type demanded
// by expr's parent to expr's already-committed type, synthesizing a
// PromotionExpr wrapper when a non-Any expression flows into an Any
// context. It returns the node the caller should keep in the tree in
// expr's place: either expr itself, or the freshly wrapped
// PromotionExpr.
//
// PropagateContextualType must run after the constraint solver has
// already committed expr's own type via SetType once; it commits no new
// cell on expr itself, only on the returned wrapper (if any), preserving
// the one-write-per-cell discipline.
func (c *Context) PropagateContextualType(expr ast.Expr, contextual dtype.Type) ast.Expr {
	if contextual == nil {
		return expr
	}
	exprType := expr.Type()
	if exprType == nil {
		return expr
	}
	if _, wantsAny := c.Canonicalize(contextual).(*dtype.Any); !wantsAny {
		return expr
	}
	if dtype.IsAny(exprType) {
		return expr
	}
	promo := &ast.PromotionExpr{Value: expr}
	promo.SetType(&dtype.Any{})
	return promo
}
