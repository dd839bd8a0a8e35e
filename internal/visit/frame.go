package visit

import "github.com/juniper-lang/frontend/internal/ast"

// Scope is a single lexical block's local bindings, chained to its
// parent for outward lookup.
type Scope struct {
	parent   *Scope
	bindings map[string]*ast.VarAssignDecl
}

// NewScope creates a child scope of parent (nil for the outermost scope
// of a function body).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, bindings: make(map[string]*ast.VarAssignDecl)}
}

// Declare binds name in this scope, shadowing any outer binding.
func (s *Scope) Declare(name string, decl *ast.VarAssignDecl) {
	s.bindings[name] = decl
}

// Lookup searches this scope and its ancestors outward.
func (s *Scope) Lookup(name string) (*ast.VarAssignDecl, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.bindings[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Frame is the scoped-state bundle threaded through a Semantic Analyser
// walk: current function, current type, current scope, current break
// target, current closure, and decl context. A BreakTarget is opaque to
// this package — the analyser supplies whatever node tags the nearest
// enclosing loop or switch.
type Frame struct {
	CurrentFunc    *ast.FuncDecl
	CurrentType    *ast.TypeDecl
	CurrentScope   *Scope
	BreakTarget    ast.Node
	CurrentClosure *ast.ClosureExpr
	DeclContext    ast.Decl
}

// Stack pushes/pops Frame snapshots in RAII style: every helper that
// installs a new value for one field returns a restore func that the
// caller `defer`s immediately, guaranteeing the prior value is restored
// on every exit path including panics.
type Stack struct {
	top Frame
}

// NewStack creates an empty scoped-state stack.
func NewStack() *Stack {
	return &Stack{}
}

// Current returns the live Frame by value; callers read it, never
// mutate it directly — all mutation goes through the With* helpers.
func (s *Stack) Current() Frame {
	return s.top
}

// WithFunc installs fn as CurrentFunc and a fresh outermost Scope for its
// body, returning a restore closure.
func (s *Stack) WithFunc(fn *ast.FuncDecl) (restore func()) {
	prevFunc, prevScope := s.top.CurrentFunc, s.top.CurrentScope
	s.top.CurrentFunc = fn
	s.top.CurrentScope = NewScope(nil)
	return func() {
		s.top.CurrentFunc = prevFunc
		s.top.CurrentScope = prevScope
	}
}

// WithType installs t as CurrentType.
func (s *Stack) WithType(t *ast.TypeDecl) (restore func()) {
	prev := s.top.CurrentType
	s.top.CurrentType = t
	return func() { s.top.CurrentType = prev }
}

// WithScope pushes a child scope of the current one.
func (s *Stack) WithScope() (restore func()) {
	prev := s.top.CurrentScope
	s.top.CurrentScope = NewScope(prev)
	return func() { s.top.CurrentScope = prev }
}

// WithBreakTarget installs target as the nearest enclosing loop/switch.
func (s *Stack) WithBreakTarget(target ast.Node) (restore func()) {
	prev := s.top.BreakTarget
	s.top.BreakTarget = target
	return func() { s.top.BreakTarget = prev }
}

// WithClosure installs c as CurrentClosure for the duration of walking
// its body, so VarExpr resolution can tell it is inside a capturing
// context and accumulate into the closure's capture set.
func (s *Stack) WithClosure(c *ast.ClosureExpr) (restore func()) {
	prev := s.top.CurrentClosure
	s.top.CurrentClosure = c
	return func() { s.top.CurrentClosure = prev }
}

// WithDeclContext installs d as the enclosing declaration being checked
// (used by diagnostics that need to name the surrounding decl).
func (s *Stack) WithDeclContext(d ast.Decl) (restore func()) {
	prev := s.top.DeclContext
	s.top.DeclContext = d
	return func() { s.top.DeclContext = prev }
}
