// Package compctx implements the Compilation Context: the process-wide
// registry of declarations, seeded intrinsic tables, and the queries
// the semantic analyser, constraint solver, and overload resolver all
// share. It is a single value passed by reference, never a
// package-level singleton.
package compctx

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/diag"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

// MainFuncFlags records which calling convention the entry point
// uses.
type MainFuncFlags struct {
	Args     bool // (Int, **Int8) -> _
	ExitCode bool // _ -> Int
}

// Context is the single mutable store for the whole compilation. Ordered
// slices preserve insertion order for deterministic diagnostics; maps
// provide O(1) lookup by name.
type Context struct {
	Diagnostics *diag.Engine

	SourceFiles []*ast.SourceFile

	Funcs      []*ast.FuncDecl
	Operators  []*ast.OperatorDecl
	Types      []*ast.TypeDecl
	Extensions []*ast.ExtensionDecl
	Protocols  []*ast.ProtocolDecl
	Globals    []*ast.VarAssignDecl
	Aliases    []*ast.TypeAliasDecl

	funcDeclMap     map[string][]*ast.FuncDecl
	typeDeclMap     map[string]*ast.TypeDecl // keyed by canonical type name
	protocolDeclMap map[string]*ast.ProtocolDecl
	globalDeclMap   map[string]*ast.VarAssignDecl
	typeAliasMap    map[string]*ast.TypeAliasDecl
	operatorMap     map[ast.BuiltinOperator][]*ast.OperatorDecl

	mainFunction *ast.FuncDecl
	mainFlags    MainFuncFlags

	funcSignatures map[string]bool // mangled signature -> seen, for duplicate detection
}

// New creates an empty Context wired to the given diagnostic sink, with
// the type-decl map seeded for every builtin scalar type and the
// operator map seeded with the implicit overloads of every
// numeric/bool operator over all numeric types.
func New(engine *diag.Engine) *Context {
	c := &Context{
		Diagnostics:     engine,
		funcDeclMap:     make(map[string][]*ast.FuncDecl),
		typeDeclMap:     make(map[string]*ast.TypeDecl),
		protocolDeclMap: make(map[string]*ast.ProtocolDecl),
		globalDeclMap:   make(map[string]*ast.VarAssignDecl),
		typeAliasMap:    make(map[string]*ast.TypeAliasDecl),
		operatorMap:     make(map[ast.BuiltinOperator][]*ast.OperatorDecl),
		funcSignatures:  make(map[string]bool),
	}
	c.seedBuiltinTypes()
	c.seedImplicitOperators()
	return c
}

// seedBuiltinTypes gives every builtin scalar a synthetic TypeDecl entry
// so extensions and validity checks can treat builtins uniformly with
// user-declared types.
func (c *Context) seedBuiltinTypes() {
	for _, name := range dtype.BuiltinNames() {
		c.typeDeclMap[name] = &ast.TypeDecl{Name: ident.New(name)}
	}
}

// LookupTypeDecl returns the TypeDecl registered under name (builtin or
// user-declared), or false if no such type exists.
func (c *Context) LookupTypeDecl(name string) (*ast.TypeDecl, bool) {
	td, ok := c.typeDeclMap[name]
	return td, ok
}

// LookupProtocol returns the protocol registered under name.
func (c *Context) LookupProtocol(name string) (*ast.ProtocolDecl, bool) {
	p, ok := c.protocolDeclMap[name]
	return p, ok
}

// LookupGlobal returns the global variable registered under name.
func (c *Context) LookupGlobal(name string) (*ast.VarAssignDecl, bool) {
	g, ok := c.globalDeclMap[name]
	return g, ok
}

// LookupAlias returns the type alias registered under name.
func (c *Context) LookupAlias(name string) (*ast.TypeAliasDecl, bool) {
	a, ok := c.typeAliasMap[name]
	return a, ok
}

// LookupFuncs returns the overload set for a free-function name.
func (c *Context) LookupFuncs(name string) []*ast.FuncDecl {
	return c.funcDeclMap[name]
}

// LookupOperators returns the overload set for a builtin operator.
func (c *Context) LookupOperators(op ast.BuiltinOperator) []*ast.OperatorDecl {
	return c.operatorMap[op]
}

// MainFunction returns the registered entry point, or nil if none was
// declared.
func (c *Context) MainFunction() (*ast.FuncDecl, MainFuncFlags) {
	return c.mainFunction, c.mainFlags
}
