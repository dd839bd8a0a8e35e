// Package sema implements the Semantic Analyser (component F): the pass
// that walks a fully-registered Context, resolves every type reference,
// checks declaration and expression well-formedness, and drives the
// Constraint System and Overload Resolver to commit a concrete type and
// (where applicable) a resolved declaration onto every expression node.
// A single Analyzer value threads a scoped-state stack through a
// recursive walk, with the walk itself split across files by concern:
// declarations, expressions, statements and control flow, and protocol
// conformance.
package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/compctx"
	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/visit"
)

// Analyzer drives one full pass over a Context: resolve signatures,
// check declaration bodies, check protocol conformance. It holds no
// state of its own beyond the Context and the scoped-state Stack every
// nested check reads and restores as it descends.
type Analyzer struct {
	ctx   *compctx.Context
	stack *visit.Stack
}

// New creates an Analyzer over ctx. ctx must already have every source
// file registered (compctx.Context.AddSourceFile) before Run is called.
func New(ctx *compctx.Context) *Analyzer {
	return &Analyzer{ctx: ctx, stack: visit.NewStack()}
}

// Run executes the full analysis in phase order: resolve every declared
// signature first (so expression checking never meets an unresolved
// ParamDecl.ResolvedType), then layout-cycle and main-signature
// validation (both purely structural, no expression walking needed),
// then check every declaration's body, then check protocol conformance
// (which needs method bodies already checked so MethodDecl.Conforms
// annotations are meaningful to a future backend).
func (a *Analyzer) Run() {
	a.resolveSignatures()
	a.ctx.CheckLayoutCycles()
	a.validateMainSignature()
	a.checkDeclBodies()
	a.checkConformances()
	a.ctx.Diagnostics.Dedupe()
}

func (a *Analyzer) validateMainSignature() {
	main, _ := a.ctx.MainFunction()
	if main == nil {
		return
	}
	paramTypes := make([]dtype.Type, len(main.Params))
	for i, p := range main.Params {
		paramTypes[i] = p.ResolvedType
	}
	var ret dtype.Type
	if main.ReturnType != nil {
		ret = main.ReturnType.Resolved()
	}
	a.ctx.ValidateMain(paramTypes, ret)
}

// resolveSignatures resolves every TypeRefExpr reachable from a
// top-level declaration's signature (params, return type, field types,
// global's annotation) and records the result on the AST's write-once
// ResolvedType/Resolved() cells, then registers the now-resolvable
// mangled signature for duplicate detection — a second registration
// pass, run once every type is known.
func (a *Analyzer) resolveSignatures() {
	for _, g := range a.ctx.Globals {
		a.resolveGlobalSignature(g)
	}
	for _, t := range a.ctx.Types {
		a.resolveTypeSignature(t)
	}
	for _, f := range a.ctx.Funcs {
		ret := a.resolveParamsAndReturn(f.Params, f.ReturnType)
		a.ctx.CheckFuncSignature(f, ret)
	}
	for _, o := range a.ctx.Operators {
		if o.Body == nil {
			continue // implicit builtin operator, already a resolved dtype.Type
		}
		ret := a.resolveParamsAndReturn(o.Params, o.ReturnType)
		a.ctx.CheckOperatorSignature(o, ret)
	}
	for _, e := range a.ctx.Extensions {
		a.resolveExtensionSignature(e)
	}
}

func (a *Analyzer) resolveGlobalSignature(g *ast.VarAssignDecl) {
	if g.TypeRef != nil {
		g.ResolvedType = a.ctx.ResolveTypeRef(g.TypeRef)
	}
}

func (a *Analyzer) resolveParamsAndReturn(params []*ast.ParamDecl, ret ast.TypeRefExpr) dtype.Type {
	for _, p := range params {
		if p.TypeRef != nil {
			p.ResolvedType = a.ctx.ResolveTypeRef(p.TypeRef)
		}
	}
	if ret == nil {
		return &dtype.Void{}
	}
	return a.ctx.ResolveTypeRef(ret)
}

func (a *Analyzer) resolveTypeSignature(t *ast.TypeDecl) {
	for _, field := range t.Fields {
		a.resolveGlobalSignature(field)
	}
	for _, prop := range t.Properties {
		prop.ParentType = t
		if prop.TypeRef != nil {
			a.ctx.ResolveTypeRef(prop.TypeRef)
		}
		a.setParent(prop.Getter, t)
		a.setParent(prop.Setter, t)
		a.resolveMethodSignature(prop.Getter)
		a.resolveMethodSignature(prop.Setter)
	}
	for _, init := range t.Initializers {
		init.ParentType = t
		a.resolveParamsAndReturn(init.Params, nil)
	}
	for _, m := range t.Methods {
		ret := a.resolveParamsAndReturn(m.Params, m.ReturnType)
		a.ctx.CheckMethodSignature(m, ret)
	}
	for _, s := range t.Subscripts {
		s.ParentType = t
		a.resolveParamsAndReturn(s.Params, s.ReturnType)
		a.setParent(s.Getter, t)
		a.setParent(s.Setter, t)
		a.resolveMethodSignature(s.Getter)
		a.resolveMethodSignature(s.Setter)
	}
}

func (a *Analyzer) setParent(m *ast.MethodDecl, t *ast.TypeDecl) {
	if m != nil {
		m.ParentType = t
	}
}

func (a *Analyzer) resolveMethodSignature(m *ast.MethodDecl) {
	if m == nil {
		return
	}
	ret := a.resolveParamsAndReturn(m.Params, m.ReturnType)
	a.ctx.CheckMethodSignature(m, ret)
}

// resolveExtensionSignature resolves e's members against their target
// type, then transfers them into target.Methods/target.Subscripts as
// spec.md requires: once transferred, a type's structural view (conformance
// checking, duplicate-name detection, body checking) already accounts for
// everything declared on it through an extension, with no special-casing
// anywhere else.
func (a *Analyzer) resolveExtensionSignature(e *ast.ExtensionDecl) {
	target, ok := a.ctx.LookupTypeDecl(e.TypeName.Name)
	if !ok {
		return // LOOKUP001 already reported by whichever pass first referenced TypeName
	}
	e.Resolved = target
	for _, m := range e.Methods {
		m.ParentType = target
		a.resolveMethodSignature(m)
	}
	for _, s := range e.Subscripts {
		s.ParentType = target
		a.resolveParamsAndReturn(s.Params, s.ReturnType)
		a.setParent(s.Getter, target)
		a.setParent(s.Setter, target)
		a.resolveMethodSignature(s.Getter)
		a.resolveMethodSignature(s.Setter)
	}
	target.Methods = append(target.Methods, e.Methods...)
	target.Subscripts = append(target.Subscripts, e.Subscripts...)
}
