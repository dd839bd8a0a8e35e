package compctx

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// ResolveTypeRef resolves a parsed TypeRefExpr to a canonical dtype.Type,
// committing the result to the ref's write-once cell exactly once. A
// failure reports a LOOKUP001 diagnostic and resolves to
// dtype.ErrorType so the caller can keep walking.
func (c *Context) ResolveTypeRef(ref ast.TypeRefExpr) dtype.Type {
	if already := ref.Resolved(); already != nil {
		return already
	}
	t := c.resolveTypeRefKind(ref)
	ref.SetResolved(t)
	return t
}

func (c *Context) resolveTypeRefKind(ref ast.TypeRefExpr) dtype.Type {
	switch r := ref.(type) {
	case *ast.NamedTypeRef:
		return c.resolveNamedType(r.Name.Name, r)
	case *ast.GenericTypeRef:
		return c.resolveNamedType(r.Name.Name, r)
	case *ast.PointerTypeRef:
		return &dtype.Pointer{Elem: c.ResolveTypeRef(r.Elem)}
	case *ast.FunctionTypeRef:
		args := make([]dtype.Type, len(r.Args))
		for i, a := range r.Args {
			args[i] = c.ResolveTypeRef(a)
		}
		ret := dtype.Type(&dtype.Void{})
		if r.Return != nil {
			ret = c.ResolveTypeRef(r.Return)
		}
		return &dtype.Function{Args: args, Return: ret, HasVarArgs: r.HasVarArgs}
	case *ast.ArrayTypeRef:
		return &dtype.Array{Elem: c.ResolveTypeRef(r.Elem), Length: r.Length}
	case *ast.TupleTypeRef:
		fields := make([]dtype.Type, len(r.Fields))
		for i, f := range r.Fields {
			fields[i] = c.ResolveTypeRef(f)
		}
		return &dtype.Tuple{Fields: fields}
	default:
		return &dtype.ErrorType{}
	}
}

// resolveNamedType looks up name as, in order, a builtin scalar, a
// user-declared nominal type, or a type alias (resolved by recursing into
// ResolveTypeRef on the aliased reference). An unknown name reports
// LOOKUP001.
func (c *Context) resolveNamedType(name string, ref ast.Node) dtype.Type {
	if builtin, ok := dtype.LookupBuiltin(name); ok {
		return builtin
	}
	if _, ok := c.typeDeclMap[name]; ok {
		return &dtype.Custom{Name: name}
	}
	if alias, ok := c.typeAliasMap[name]; ok {
		return c.ResolveTypeRef(alias.Aliased)
	}
	c.Diagnostics.Errorf(codes.LOOKUP001, primaryLoc(ref), "unknown type %q", name)
	return &dtype.ErrorType{}
}

// IsValidType reports whether t, after canonicalisation, names a real
// type: a builtin scalar, a registered nominal type, or a structural
// composition of valid types. dtype.ErrorType is never valid, so one bad
// subtree does not cascade into spurious "invalid type" diagnostics
// elsewhere.
func (c *Context) IsValidType(t dtype.Type) bool {
	switch v := c.Canonicalize(t).(type) {
	case *dtype.ErrorType:
		return false
	case *dtype.Custom:
		_, ok := c.typeDeclMap[v.Name]
		return ok
	case *dtype.Pointer:
		return c.IsValidType(v.Elem)
	case *dtype.Array:
		return c.IsValidType(v.Elem)
	case *dtype.Tuple:
		for _, f := range v.Fields {
			if !c.IsValidType(f) {
				return false
			}
		}
		return true
	case *dtype.Function:
		if !c.IsValidType(v.Return) {
			return false
		}
		for _, a := range v.Args {
			if !c.IsValidType(a) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Canonicalize resolves a Custom type that actually names a type alias
// down to the alias's target, repeatedly, until reaching a type-decl-
// backed or scalar type. Types that already name a TypeDecl (not an
// alias) are returned unchanged, since aliases and nominal types share no
// namespace collisions (AddAlias/AddType both check nameCollides).
func (c *Context) Canonicalize(t dtype.Type) dtype.Type {
	for {
		custom, ok := t.(*dtype.Custom)
		if !ok {
			return t
		}
		alias, isAlias := c.typeAliasMap[custom.Name]
		if !isAlias {
			return t
		}
		t = c.ResolveTypeRef(alias.Aliased)
	}
}

// CheckLayoutCycles reports SIG007 for every non-indirect type whose
// fields recursively contain itself by value: a type is layout-circular
// if, following its non-indirect stored-property chain, it reaches
// itself. Indirect types break the cycle because their instances live
// behind a pointer.
func (c *Context) CheckLayoutCycles() {
	for _, t := range c.Types {
		if t.IsIndirect() {
			continue
		}
		if c.reachesSelfByValue(t, t.Name.Name, map[string]bool{}) {
			c.Diagnostics.Errorf(codes.SIG007, primaryLoc(t),
				"type %q is circular by layout", t.Name.Name)
		}
	}
}

func (c *Context) reachesSelfByValue(origin *ast.TypeDecl, name string, seen map[string]bool) bool {
	if seen[name] {
		return name == origin.Name.Name
	}
	seen[name] = true
	td, ok := c.typeDeclMap[name]
	if !ok || td.IsIndirect() {
		return false
	}
	for _, field := range td.Fields {
		fieldTypeName := directFieldTypeName(field)
		if fieldTypeName == "" {
			continue
		}
		if fieldTypeName == origin.Name.Name {
			return true
		}
		if c.reachesSelfByValue(origin, fieldTypeName, seen) {
			return true
		}
	}
	return false
}

// directFieldTypeName returns the nominal type name a stored property's
// declared type refers to directly (not through a pointer/array/tuple
// wrapper, which already break value-layout containment).
func directFieldTypeName(field *ast.VarAssignDecl) string {
	if field.TypeRef == nil {
		return ""
	}
	switch r := field.TypeRef.(type) {
	case *ast.NamedTypeRef:
		return r.Name.Name
	case *ast.GenericTypeRef:
		return r.Name.Name
	default:
		return ""
	}
}
