package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

// primaryLoc extracts a diagnostic's primary location from any node,
// tolerating the nil range synthetic nodes carry.
func primaryLoc(n ast.Node) *ident.SourceLocation {
	r := n.Position()
	if r == nil {
		return nil
	}
	return &r.Start
}

// isImplicitAnyDowncast reports whether assigning a value of type from
// into a binding of type to is a downcast out of Any that was not
// spelled with an explicit `as`: CanCoerce treats Any as coercible to
// anything, so this check runs alongside it wherever an implicit
// coercion (as opposed to checkCoercion's explicit cast) is accepted.
func (a *Analyzer) isImplicitAnyDowncast(from, to dtype.Type) bool {
	if to == nil {
		return false
	}
	return dtype.IsAny(a.ctx.Canonicalize(from)) && !dtype.IsAny(a.ctx.Canonicalize(to))
}

// ptrOrValue is the type `self` binds to inside a method/initializer:
// a plain nominal type normally, or the same nominal type (instances of
// an indirect type are already reference-like, so self never becomes a
// dtype.Pointer wrapper — the indirection is a storage detail the
// backend owns, not a surface-level type difference).
func ptrOrValue(t *ast.TypeDecl) dtype.Type {
	return &dtype.Custom{Name: t.Name.Name}
}
