// Package mangle implements the name mangler: a deterministic,
// collision-free encoding from declarations and types to unique symbol
// strings consumed by the (out-of-scope) code generator and linker.
package mangle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// lengthPrefixed encodes a name as its UTF-8 rune length followed by the
// name itself, so that concatenated fields never need a separator and
// two different decompositions can never collide: mangle(d1) ==
// mangle(d2) iff d1, d2 are the same declaration.
func lengthPrefixed(name string) string {
	return fmt.Sprintf("%d%s", utf8.RuneCountInString(name), name)
}

// Type mangles a resolved DataType according to the type grammar.
func Type(t dtype.Type) string {
	switch v := t.(type) {
	case *dtype.Function:
		var b strings.Builder
		b.WriteByte('F')
		for _, a := range v.Args {
			b.WriteString(Type(a))
		}
		b.WriteByte('R')
		b.WriteString(Type(v.Return))
		return b.String()
	case *dtype.Tuple:
		var b strings.Builder
		b.WriteByte('t')
		for _, f := range v.Fields {
			b.WriteString(Type(f))
		}
		b.WriteByte('T')
		return b.String()
	case *dtype.Array:
		return "A" + Type(v.Elem)
	case *dtype.Int:
		sigil := "i"
		if !v.Signed {
			sigil = "u"
		}
		return fmt.Sprintf("s%s%d", sigil, v.Width)
	case *dtype.Floating:
		switch v.Kind {
		case dtype.FloatSingle:
			return "sf"
		case dtype.FloatDouble:
			return "sd"
		default:
			return "sF"
		}
	case *dtype.Bool:
		return "sb"
	case *dtype.Void:
		return "sv"
	case *dtype.Any:
		return "sa"
	case *dtype.Pointer:
		depth := 0
		cur := t
		for {
			p, ok := cur.(*dtype.Pointer)
			if !ok {
				break
			}
			depth++
			cur = p.Elem
		}
		return fmt.Sprintf("P%dT%s", depth, Type(cur))
	case *dtype.Custom:
		return lengthPrefixed(v.Name)
	default:
		return lengthPrefixed(t.String())
	}
}

// argTag encodes one non-implicit-self parameter: its external-name tag
// (or "_" when unlabeled) followed by its type.
func argTag(p *ast.ParamDecl) string {
	label := p.ExternalName
	if label == "" {
		label = "_"
	}
	return lengthPrefixed(label) + Type(p.ResolvedType)
}

// nonSelfParams drops the first parameter when it is the synthetic
// implicit-self receiver.
func nonSelfParams(params []*ast.ParamDecl, hasImplicitSelf bool) []*ast.ParamDecl {
	if hasImplicitSelf && len(params) > 0 {
		return params[1:]
	}
	return params
}

func returnSuffix(ret dtype.Type) string {
	if ret == nil {
		return ""
	}
	if _, isVoid := ret.(*dtype.Void); isVoid {
		return ""
	}
	return "R" + Type(ret)
}

// FuncReturn mangles a free function declaration: "_WF" + length-prefixed
// name + argument tags + optional return. FuncDecl.ReturnType is
// parse-time syntax (ast.TypeRefExpr), not a resolved dtype.Type, so the
// caller (sema, once types are known) supplies the resolved return type
// explicitly.
func FuncReturn(f *ast.FuncDecl, ret dtype.Type) string {
	var b strings.Builder
	b.WriteString("_WF")
	b.WriteString(lengthPrefixed(f.Name.Name))
	for _, p := range f.Params {
		b.WriteString(argTag(p))
	}
	b.WriteString(returnSuffix(ret))
	return b.String()
}

// Operator mangles an operator overload declaration.
func Operator(o *ast.OperatorDecl, ret dtype.Type) string {
	var b strings.Builder
	b.WriteString("_WF")
	b.WriteByte('O')
	b.WriteString(lengthPrefixed(string(o.Operator)))
	for _, p := range o.Params {
		b.WriteString(argTag(p))
	}
	b.WriteString(returnSuffix(ret))
	return b.String()
}

// Initializer mangles a type's initializer.
func Initializer(parent *ast.TypeDecl, params []*ast.ParamDecl) string {
	var b strings.Builder
	b.WriteString("_WF")
	b.WriteByte('I')
	b.WriteString(Type(&dtype.Custom{Name: parent.Name.Name}))
	b.WriteString(lengthPrefixed("init"))
	for _, p := range nonSelfParams(params, true) {
		b.WriteString(argTag(p))
	}
	return b.String()
}

// Deinitializer mangles a type's deinitializer.
func Deinitializer(parent *ast.TypeDecl) string {
	var b strings.Builder
	b.WriteString("_WF")
	b.WriteByte('D')
	b.WriteString(Type(&dtype.Custom{Name: parent.Name.Name}))
	b.WriteString(lengthPrefixed("deinit"))
	return b.String()
}

// Method mangles an instance or static method.
func Method(m *ast.MethodDecl, ret dtype.Type) string {
	var b strings.Builder
	b.WriteString("_WF")
	if m.Kind.Tag == ast.KindStaticMethod {
		b.WriteByte('m')
	} else {
		b.WriteByte('M')
	}
	b.WriteString(Type(&dtype.Custom{Name: m.ParentType.Name.Name}))
	b.WriteString(lengthPrefixed(m.Name.Name))
	for _, p := range nonSelfParams(m.Params, m.Kind.HasImplicitSelf()) {
		b.WriteString(argTag(p))
	}
	b.WriteString(returnSuffix(ret))
	return b.String()
}

// PropertyAccessor mangles a property's getter or setter.
func PropertyAccessor(p *ast.PropertyDecl, isSetter bool, valueType dtype.Type) string {
	var b strings.Builder
	b.WriteString("_WF")
	if isSetter {
		b.WriteByte('s')
	} else {
		b.WriteByte('g')
	}
	b.WriteString(Type(&dtype.Custom{Name: p.ParentType.Name.Name}))
	b.WriteString(lengthPrefixed(p.Name.Name))
	if isSetter {
		b.WriteString(returnSuffix(nil))
	} else {
		b.WriteString(returnSuffix(valueType))
	}
	return b.String()
}

// Subscript mangles a type's subscript.
func Subscript(s *ast.SubscriptDecl, ret dtype.Type) string {
	var b strings.Builder
	b.WriteString("_WF")
	b.WriteByte('S')
	b.WriteString(Type(&dtype.Custom{Name: s.ParentType.Name.Name}))
	for _, p := range nonSelfParams(s.Params, true) {
		b.WriteString(argTag(p))
	}
	b.WriteString(returnSuffix(ret))
	return b.String()
}

// TypeDeclSymbol mangles a nominal type declaration symbol.
func TypeDeclSymbol(t *ast.TypeDecl) string {
	return "_WT" + lengthPrefixed(t.Name.Name)
}

// Protocol mangles a protocol declaration symbol.
func Protocol(p *ast.ProtocolDecl) string {
	return "_WP" + lengthPrefixed(p.Name.Name)
}

// GlobalInitializer mangles a global variable's one-time initializer
// symbol.
func GlobalInitializer(g *ast.VarAssignDecl) string {
	return "_WG" + lengthPrefixed(g.Name.Name)
}

// GlobalAccessor mangles a global variable's lazy-accessor symbol.
func GlobalAccessor(g *ast.VarAssignDecl) string {
	return "_Wg" + lengthPrefixed(g.Name.Name)
}

// WitnessTable mangles the symbol for a type's protocol conformance
// witness table: a mapping from a protocol's method requirements to
// the concrete methods of a conforming type.
func WitnessTable(conforming *ast.TypeDecl, protocol *ast.ProtocolDecl) string {
	return "_WW" + Type(&dtype.Custom{Name: conforming.Name.Name}) + lengthPrefixed(protocol.Name.Name)
}
