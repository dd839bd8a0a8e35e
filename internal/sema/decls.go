package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
)

// checkDeclBodies walks every declaration that owns a body (or whose
// absence of one is itself meaningful) and enforces declaration-shape
// rules before descending into statement/expression checking.
func (a *Analyzer) checkDeclBodies() {
	for _, g := range a.ctx.Globals {
		a.checkGlobal(g)
	}
	for _, f := range a.ctx.Funcs {
		a.checkFunc(f)
	}
	for _, o := range a.ctx.Operators {
		a.checkOperator(o)
	}
	for _, t := range a.ctx.Types {
		a.checkType(t)
	}
	// Extension methods/subscripts were transferred onto their target
	// TypeDecl in resolveExtensionSignature, so checkType above already
	// checks their bodies — checking them again here would re-run a
	// write-once SetType/SetDecl commit a second time and panic.
}

func (a *Analyzer) checkGlobal(g *ast.VarAssignDecl) {
	if g.RHS == nil {
		return
	}
	restore := a.stack.WithDeclContext(g)
	defer restore()
	valueType := a.checkExpr(g.RHS)
	if g.ResolvedType == nil {
		g.ResolvedType = valueType
		return
	}
	if a.isImplicitAnyDowncast(valueType, g.ResolvedType) {
		a.ctx.Diagnostics.Errorf(codes.TYPE004, primaryLoc(g.RHS),
			"cannot downcast %q from Any to %s without an explicit cast", g.Name.Name, g.ResolvedType).
			WithNote("addExplicitCast(to: " + g.ResolvedType.String() + ")")
	} else if !a.ctx.CanCoerce(valueType, g.ResolvedType) {
		a.ctx.Diagnostics.Errorf(codes.TYPE003, primaryLoc(g.RHS),
			"cannot assign a value of type %s to %q of type %s", valueType, g.Name.Name, g.ResolvedType)
	}
	g.RHS = a.propagateAssign(g.RHS, g.ResolvedType)
}

func (a *Analyzer) checkFunc(f *ast.FuncDecl) {
	if !a.checkBodyModifiers(f.Modifiers, f.Body, f) {
		return
	}
	if f.HasVarArgs && !f.Modifiers.Has(ast.ModForeign) {
		a.ctx.Diagnostics.Errorf(codes.DECL003, primaryLoc(f),
			"variadic parameters are only valid on a foreign function")
	}
	if f.Body == nil {
		return
	}
	restoreFunc := a.stack.WithFunc(f)
	restoreDecl := a.stack.WithDeclContext(f)
	defer restoreFunc()
	defer restoreDecl()
	a.declareParams(f.Params)
	a.checkCompound(f.Body)
	a.checkReturnPaths(f.Name.Name, f.ReturnType != nil, f.Body)
	f.HasReturn = f.Body.HasReturn
}

func (a *Analyzer) checkOperator(o *ast.OperatorDecl) {
	if o.Body == nil && o.Params == nil {
		return // implicit builtin seeded by compctx; never type-checked
	}
	if !a.checkBodyModifiers(o.Modifiers, o.Body, o) {
		return
	}
	if len(o.Params) != 2 {
		a.ctx.Diagnostics.Errorf(codes.DECL008, primaryLoc(o),
			"operator %q must declare exactly two parameters, got %d", o.Operator, len(o.Params))
	}
	if ast.IsAssignment(o.Operator) {
		a.ctx.Diagnostics.Errorf(codes.DECL007, primaryLoc(o),
			"operator %q cannot be overloaded; assignment operators are never user-definable", o.Operator)
	}
	if o.Body == nil {
		return
	}
	restoreDecl := a.stack.WithDeclContext(o)
	restoreScope := a.stack.WithScope()
	defer restoreDecl()
	defer restoreScope()
	a.declareParams(o.Params)
	a.checkCompound(o.Body)
}

func (a *Analyzer) checkType(t *ast.TypeDecl) {
	restoreType := a.stack.WithType(t)
	defer restoreType()
	for _, field := range t.Fields {
		a.checkGlobal(field)
	}
	for _, init := range t.Initializers {
		a.checkInitializer(init)
	}
	if t.Deinitializer != nil {
		a.checkDeinitializer(t.Deinitializer, t)
	}
	for _, m := range t.Methods {
		a.checkMethod(m)
	}
	for _, prop := range t.Properties {
		a.checkMethod(prop.Getter)
		a.checkMethod(prop.Setter)
	}
	for _, s := range t.Subscripts {
		a.checkMethod(s.Getter)
		a.checkMethod(s.Setter)
	}
}

func (a *Analyzer) checkInitializer(init *ast.InitializerDecl) {
	if !a.checkBodyModifiers(init.Modifiers, init.Body, init) {
		return
	}
	if init.Body == nil {
		return
	}
	restoreDecl := a.stack.WithDeclContext(init)
	restoreScope := a.stack.WithScope()
	defer restoreDecl()
	defer restoreScope()
	a.declareParams(init.Params)
	a.declareImplicitSelf(init.ParentType)
	a.checkCompound(init.Body)
}

func (a *Analyzer) checkDeinitializer(d *ast.DeinitializerDecl, parent *ast.TypeDecl) {
	if !parent.IsIndirect() {
		a.ctx.Diagnostics.Errorf(codes.DECL004, primaryLoc(d),
			"deinit is only valid on a type declared indirect")
	}
	if d.Body == nil {
		a.ctx.Diagnostics.Errorf(codes.DECL002, primaryLoc(d), "deinit requires a body")
		return
	}
	restoreDecl := a.stack.WithDeclContext(d)
	restoreScope := a.stack.WithScope()
	defer restoreDecl()
	defer restoreScope()
	a.declareImplicitSelf(parent)
	a.checkCompound(d.Body)
}

func (a *Analyzer) checkMethod(m *ast.MethodDecl) {
	if m == nil {
		return
	}
	if !a.checkBodyModifiers(m.Modifiers, m.Body, m) {
		return
	}
	if m.Body == nil {
		return
	}
	// visit.Stack.WithFunc wants a *ast.FuncDecl; methods carry their own
	// scoped state through a MethodDecl instead, so a throwaway FuncDecl
	// stands in purely to thread Name/Kind into the Frame.
	restoreFunc := a.stack.WithFunc(&ast.FuncDecl{Name: m.Name, Kind: m.Kind})
	restoreDecl := a.stack.WithDeclContext(m)
	defer restoreFunc()
	defer restoreDecl()
	a.declareParams(m.Params)
	if m.Kind.HasImplicitSelf() {
		a.declareImplicitSelf(m.ParentType)
	}
	a.checkCompound(m.Body)
	a.checkReturnPaths(m.Name.Name, m.ReturnType != nil, m.Body)
	m.HasReturn = m.Body.HasReturn
}

// checkBodyModifiers enforces DECL001/DECL002: a foreign declaration
// never carries a body, and a non-foreign one always must. It returns
// false when the declaration is malformed enough that descending into a
// (non-existent or erroneous) body would be meaningless.
func (a *Analyzer) checkBodyModifiers(mods ast.ModifierSet, body *ast.CompoundStmt, node ast.Node) bool {
	foreign := mods.Has(ast.ModForeign)
	if foreign && body != nil {
		a.ctx.Diagnostics.Errorf(codes.DECL001, primaryLoc(node), "a foreign declaration may not have a body")
		return false
	}
	if !foreign && body == nil {
		a.ctx.Diagnostics.Errorf(codes.DECL002, primaryLoc(node), "missing body for a non-foreign declaration")
		return false
	}
	if mods.Has(ast.ModStatic) && mods.Has(ast.ModMutating) {
		a.ctx.Diagnostics.Errorf(codes.DECL010, primaryLoc(node), "a static declaration cannot also be mutating")
		return false
	}
	return true
}

func (a *Analyzer) declareParams(params []*ast.ParamDecl) {
	scope := a.stack.Current().CurrentScope
	for _, p := range params {
		scope.Declare(p.Name.Name, &ast.VarAssignDecl{
			Name: p.Name, ResolvedType: p.ResolvedType, IsConstant: true, Kind: ast.VarKindLocal,
		})
	}
}

func (a *Analyzer) declareImplicitSelf(parent *ast.TypeDecl) {
	if parent == nil {
		return
	}
	scope := a.stack.Current().CurrentScope
	scope.Declare("self", &ast.VarAssignDecl{
		Name: parent.Name, ResolvedType: ptrOrValue(parent), IsConstant: false, Kind: ast.VarKindImplicitSelf,
	})
}
