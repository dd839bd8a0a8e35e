package ast

import (
	"fmt"
	"strings"

	"github.com/juniper-lang/frontend/internal/dtype"
	"github.com/juniper-lang/frontend/internal/ident"
)

func (*FuncDecl) isDecl()          {}
func (*OperatorDecl) isDecl()      {}
func (*InitializerDecl) isDecl()   {}
func (*DeinitializerDecl) isDecl() {}
func (*MethodDecl) isDecl()        {}
func (*SubscriptDecl) isDecl()     {}
func (*PropertyDecl) isDecl()      {}
func (*ParamDecl) isDecl()         {}
func (*VarAssignDecl) isDecl()     {}
func (*TypeDecl) isDecl()          {}
func (*TypeAliasDecl) isDecl()     {}
func (*ProtocolDecl) isDecl()      {}
func (*ExtensionDecl) isDecl()     {}
func (*GenericParamDecl) isDecl()  {}

// ParamDecl is a function/method parameter. ExternalName may differ from
// Name (the local binding) to support argument labels; ExternalName ==
// "_" means the label is suppressed at call sites.
type ParamDecl struct {
	Meta
	ExternalName string
	Name         ident.Identifier
	TypeRef      TypeRefExpr
	ResolvedType dtype.Type // set by sema
}

func (p *ParamDecl) String() string {
	if p.ExternalName == p.Name.Name {
		return fmt.Sprintf("%s: %s", p.Name.Name, p.TypeRef.String())
	}
	return fmt.Sprintf("%s %s: %s", p.ExternalName, p.Name.Name, p.TypeRef.String())
}

// GenericParamDecl introduces a type-variable binder on a function or
// type declaration.
type GenericParamDecl struct {
	Meta
	Name ident.Identifier
}

func (g *GenericParamDecl) String() string { return g.Name.Name }

// FuncDecl is a free function declaration.
type FuncDecl struct {
	Meta
	Name       ident.Identifier
	Generics   []*GenericParamDecl
	Params     []*ParamDecl
	ReturnType TypeRefExpr // nil means Void
	Modifiers  ModifierSet
	Body       *CompoundStmt // nil for foreign/protocol-requirement decls
	Kind       FuncKind
	HasReturn  bool // set by path-return analysis
	// HasVarArgs marks the last parameter as an unlabelled variadic tail;
	// only valid combined with ModForeign.
	HasVarArgs bool
}

func (f *FuncDecl) String() string {
	return fmt.Sprintf("func %s(...)", f.Name.Name)
}

// OperatorDecl declares an overload of a builtin operator; exactly two
// parameters, never an assignment-family operator.
type OperatorDecl struct {
	Meta
	Operator   BuiltinOperator
	Params     []*ParamDecl
	ReturnType TypeRefExpr
	Modifiers  ModifierSet
	Body       *CompoundStmt
}

func (o *OperatorDecl) String() string { return fmt.Sprintf("operator %s", o.Operator) }

// InitializerDecl is a type's `init`.
type InitializerDecl struct {
	Meta
	Params     []*ParamDecl
	Modifiers  ModifierSet
	Body       *CompoundStmt
	ParentType *TypeDecl
}

func (i *InitializerDecl) String() string { return "init(...)" }

// DeinitializerDecl is a type's `deinit`; only valid on indirect types.
type DeinitializerDecl struct {
	Meta
	Body       *CompoundStmt
	ParentType *TypeDecl
}

func (d *DeinitializerDecl) String() string { return "deinit" }

// MethodDecl is an instance or static method on a type (or contributed by
// an extension).
type MethodDecl struct {
	Meta
	Name       ident.Identifier
	Generics   []*GenericParamDecl
	Params     []*ParamDecl
	ReturnType TypeRefExpr
	Modifiers  ModifierSet
	Body       *CompoundStmt
	ParentType *TypeDecl
	Kind       FuncKind
	HasReturn  bool
	// Conforms records the protocols whose requirement this method
	// satisfies, populated by conformance checking.
	Conforms []*ProtocolDecl
}

func (m *MethodDecl) String() string {
	return fmt.Sprintf("func %s(...)", m.Name.Name)
}

// SubscriptDecl is a type's `subscript(...)`.
type SubscriptDecl struct {
	Meta
	Params     []*ParamDecl
	ReturnType TypeRefExpr
	Modifiers  ModifierSet
	Getter     *MethodDecl
	Setter     *MethodDecl
	ParentType *TypeDecl
}

func (s *SubscriptDecl) String() string { return "subscript(...)" }

// PropertyDecl is a computed or stored property; a stored property has
// nil Getter/Setter and is instead backed by a VarAssignDecl field.
type PropertyDecl struct {
	Meta
	Name       ident.Identifier
	TypeRef    TypeRefExpr
	Modifiers  ModifierSet
	Getter     *MethodDecl
	Setter     *MethodDecl
	ParentType *TypeDecl
}

func (p *PropertyDecl) String() string { return fmt.Sprintf("property %s", p.Name.Name) }

// VarAssignDeclKind tags where a variable binding lives.
type VarAssignDeclKind int

const (
	VarKindLocal VarAssignDeclKind = iota
	VarKindGlobal
	VarKindProperty
	VarKindImplicitSelf
)

// VarAssignDecl is `let`/`var` (constant vs. mutable tracked via
// IsConstant), a global, a stored property field, or the synthetic
// implicit-self binding inside an initializer.
type VarAssignDecl struct {
	Meta
	Name           ident.Identifier
	TypeRef        TypeRefExpr // may be nil when inferred from RHS
	ResolvedType   dtype.Type  // set by sema
	RHS            Expr        // nil for foreign vars and implicit self
	IsConstant     bool
	Modifiers      ModifierSet
	Kind           VarAssignDeclKind
	EnclosingFunc  *FuncDecl   // set when Kind == VarKindLocal/ImplicitSelf
	EnclosingType  *TypeDecl   // set when Kind == VarKindProperty/ImplicitSelf
}

func (v *VarAssignDecl) String() string {
	kw := "var"
	if v.IsConstant {
		kw = "let"
	}
	return fmt.Sprintf("%s %s", kw, v.Name.Name)
}

// TypeDecl declares a nominal type: its stored properties, initializers,
// methods, subscripts, and (for indirect types) a deinitializer.
type TypeDecl struct {
	Meta
	Name           ident.Identifier
	Generics       []*GenericParamDecl
	Modifiers      ModifierSet
	Properties     []*PropertyDecl
	Fields         []*VarAssignDecl // stored properties (Kind == VarKindProperty)
	Initializers   []*InitializerDecl
	Deinitializer  *DeinitializerDecl
	Methods        []*MethodDecl
	Subscripts     []*SubscriptDecl
	Conformances   []ident.Identifier // protocol names declared at the type
}

func (t *TypeDecl) String() string { return fmt.Sprintf("type %s", t.Name.Name) }

// IsIndirect reports whether this type decl carries the `indirect`
// modifier: instances live behind a pointer and may declare a
// deinitializer.
func (t *TypeDecl) IsIndirect() bool { return t.Modifiers.Has(ModIndirect) }

// TypeAliasDecl binds a name to another type reference; cycles are
// detected at registration time by the Context.
type TypeAliasDecl struct {
	Meta
	Name    ident.Identifier
	Aliased TypeRefExpr
}

func (a *TypeAliasDecl) String() string { return fmt.Sprintf("type alias %s = %s", a.Name.Name, a.Aliased.String()) }

// ProtocolDecl declares a set of method requirements plus parent
// protocols it refines.
type ProtocolDecl struct {
	Meta
	Name         ident.Identifier
	Parents      []ident.Identifier
	Requirements []*MethodDecl // bodies are nil; protocol requirements
}

func (p *ProtocolDecl) String() string { return fmt.Sprintf("protocol %s", p.Name.Name) }

// ExtensionDecl contributes methods/subscripts to an existing TypeDecl,
// located by name during the registration phase.
type ExtensionDecl struct {
	Meta
	TypeName   ident.Identifier
	Methods    []*MethodDecl
	Subscripts []*SubscriptDecl
	Resolved   *TypeDecl // set once the extended type is located
}

func (e *ExtensionDecl) String() string { return fmt.Sprintf("extension %s", e.TypeName.Name) }

// CandidateSignature returns the parameter list, implicit-self flag, and
// variadic-tail flag for any declaration the overload resolver may
// consider as a call candidate; implicit-self parameters are skipped.
func CandidateSignature(d Decl) (params []*ParamDecl, hasImplicitSelf, hasVarArgs bool) {
	switch v := d.(type) {
	case *FuncDecl:
		return v.Params, v.Kind.HasImplicitSelf(), v.HasVarArgs
	case *MethodDecl:
		return v.Params, v.Kind.HasImplicitSelf(), false
	case *InitializerDecl:
		return v.Params, true, false
	case *OperatorDecl:
		return v.Params, false, false
	case *SubscriptDecl:
		return v.Params, true, false
	default:
		return nil, false, false
	}
}

// FormatParamList renders a parameter list the way overload-candidate
// diagnostics present it in a "candidates" note: external name, local
// name, and type, comma-separated.
func FormatParamList(params []*ParamDecl) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
