package compctx

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
	"github.com/juniper-lang/frontend/internal/mangle"
)

// primaryLoc extracts the start location from a node's range for use as a
// diagnostic's primary location, or nil for synthetic nodes with no range.
func primaryLoc(n ast.Node) *ident.SourceLocation {
	r := n.Position()
	if r == nil {
		return nil
	}
	return &r.Start
}

// AddSourceFile appends a parsed file and registers every top-level
// declaration it carries, in source order.
func (c *Context) AddSourceFile(f *ast.SourceFile) {
	c.SourceFiles = append(c.SourceFiles, f)
	for _, g := range f.Globals {
		c.AddGlobal(g)
	}
	for _, a := range f.TypeAliases {
		c.AddAlias(a)
	}
	for _, p := range f.Protocols {
		c.AddProtocol(p)
	}
	for _, t := range f.Types {
		c.AddType(t)
	}
	for _, fn := range f.Funcs {
		c.AddFunc(fn)
	}
	for _, o := range f.Operators {
		c.AddOperator(o)
	}
	for _, e := range f.Extensions {
		c.Extensions = append(c.Extensions, e)
	}
}

// AddFunc registers a free function into its name's overload set.
// Signature collisions within the set are not detected here — they
// require a resolved return type, which sema supplies later via
// CheckFuncSignature once the declaration has been type-checked.
func (c *Context) AddFunc(f *ast.FuncDecl) {
	c.Funcs = append(c.Funcs, f)
	c.funcDeclMap[f.Name.Name] = append(c.funcDeclMap[f.Name.Name], f)
	if f.Name.Name == "main" {
		if c.mainFunction != nil {
			c.Diagnostics.Errorf(codes.REDECL007, primaryLoc(f),
				"redeclaration of main (first declared at %s)", c.mainFunction.Position())
			return
		}
		c.setMain(f)
	}
}

// setMain records f as the program entry point, inferring its calling
// convention from its parameter count: either `(Int, **Int8) -> _` or
// `_ -> Int`.
func (c *Context) setMain(f *ast.FuncDecl) {
	c.mainFunction = f
	c.mainFlags = MainFuncFlags{
		Args:     len(f.Params) == 2,
		ExitCode: f.ReturnType != nil,
	}
}

// AddOperator registers an operator overload into its operator's set.
func (c *Context) AddOperator(o *ast.OperatorDecl) {
	c.Operators = append(c.Operators, o)
	c.operatorMap[o.Operator] = append(c.operatorMap[o.Operator], o)
}

// AddType registers a nominal type declaration, reporting REDECL002 if
// the name collides with an existing type, protocol, or alias.
func (c *Context) AddType(t *ast.TypeDecl) {
	if c.nameCollides(t.Name.Name) {
		c.Diagnostics.Errorf(codes.REDECL002, primaryLoc(t),
			"redeclaration of type %q", t.Name.Name)
		return
	}
	c.Types = append(c.Types, t)
	c.typeDeclMap[t.Name.Name] = t
}

// AddProtocol registers a protocol declaration.
func (c *Context) AddProtocol(p *ast.ProtocolDecl) {
	if c.nameCollides(p.Name.Name) {
		c.Diagnostics.Errorf(codes.REDECL002, primaryLoc(p),
			"redeclaration of %q as a protocol", p.Name.Name)
		return
	}
	c.Protocols = append(c.Protocols, p)
	c.protocolDeclMap[p.Name.Name] = p
}

// AddGlobal registers a top-level `let`/`var` binding.
func (c *Context) AddGlobal(g *ast.VarAssignDecl) {
	if existing, ok := c.globalDeclMap[g.Name.Name]; ok {
		c.Diagnostics.Errorf(codes.REDECL001, primaryLoc(g),
			"redeclaration of global %q (first declared at %s)", g.Name.Name, existing.Position())
		return
	}
	c.Globals = append(c.Globals, g)
	c.globalDeclMap[g.Name.Name] = g
}

// AddAlias registers a type alias, rejecting a chain that refers back to
// itself: circular alias chains are rejected.
func (c *Context) AddAlias(a *ast.TypeAliasDecl) {
	if c.nameCollides(a.Name.Name) {
		c.Diagnostics.Errorf(codes.REDECL002, primaryLoc(a),
			"redeclaration of %q as a type alias", a.Name.Name)
		return
	}
	c.typeAliasMap[a.Name.Name] = a
	c.Aliases = append(c.Aliases, a)
	if cycleName, cyclic := c.detectAliasCycle(a.Name.Name, map[string]bool{}); cyclic {
		c.Diagnostics.Errorf(codes.SIG006, primaryLoc(a),
			"circular type alias: %q refers back to itself through %q", a.Name.Name, cycleName)
	}
}

// detectAliasCycle walks an alias chain starting at name, following
// NamedTypeRef/GenericTypeRef targets that are themselves aliases.
func (c *Context) detectAliasCycle(name string, seen map[string]bool) (string, bool) {
	if seen[name] {
		return name, true
	}
	seen[name] = true
	alias, ok := c.typeAliasMap[name]
	if !ok {
		return "", false
	}
	next := aliasTargetName(alias.Aliased)
	if next == "" {
		return "", false
	}
	return c.detectAliasCycle(next, seen)
}

func aliasTargetName(ref ast.TypeRefExpr) string {
	switch t := ref.(type) {
	case *ast.NamedTypeRef:
		return t.Name.Name
	case *ast.GenericTypeRef:
		return t.Name.Name
	default:
		return ""
	}
}

// nameCollides reports whether name is already bound to a type,
// protocol, or alias.
func (c *Context) nameCollides(name string) bool {
	if _, ok := c.typeDeclMap[name]; ok {
		return true
	}
	if _, ok := c.protocolDeclMap[name]; ok {
		return true
	}
	if _, ok := c.typeAliasMap[name]; ok {
		return true
	}
	return false
}

// CheckFuncSignature records f's mangled signature (now that ret is
// known) and reports REDECL003 if another overload in the same name's
// set mangles identically: two declarations whose mangled names
// collide are a redeclaration, not an ambiguity.
func (c *Context) CheckFuncSignature(f *ast.FuncDecl, ret dtype.Type) {
	key := mangle.FuncReturn(f, ret)
	if c.funcSignatures[key] {
		c.Diagnostics.Errorf(codes.REDECL003, primaryLoc(f),
			"function %q redeclared with an identical signature", f.Name.Name)
		return
	}
	c.funcSignatures[key] = true
}

// CheckMethodSignature is CheckFuncSignature's counterpart for instance
// and static methods; the mangled symbol already encodes the parent
// type, so two methods of the same name on different types never
// collide here.
func (c *Context) CheckMethodSignature(m *ast.MethodDecl, ret dtype.Type) {
	key := mangle.Method(m, ret)
	if c.funcSignatures[key] {
		c.Diagnostics.Errorf(codes.REDECL005, primaryLoc(m),
			"method %q redeclared on %q with an identical signature", m.Name.Name, m.ParentType.Name.Name)
		return
	}
	c.funcSignatures[key] = true
}

// CheckOperatorSignature is CheckFuncSignature's counterpart for
// operator overloads, reporting REDECL004 on collision.
func (c *Context) CheckOperatorSignature(o *ast.OperatorDecl, ret dtype.Type) {
	key := mangle.Operator(o, ret)
	if c.funcSignatures[key] {
		c.Diagnostics.Errorf(codes.REDECL004, primaryLoc(o),
			"operator %q redeclared with an identical signature", o.Operator)
		return
	}
	c.funcSignatures[key] = true
}
