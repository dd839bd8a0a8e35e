package sema

import (
	"github.com/juniper-lang/frontend/internal/ast"
	"github.com/juniper-lang/frontend/internal/codes"
	"github.com/juniper-lang/frontend/internal/dtype"
)

// checkConformances walks every type's declared conformance list, resolves
// each named protocol, and matches every requirement against a method of
// the same name and parameter shape declared on the type. A satisfying
// method has the protocol appended to its Conforms list so a later pass
// can build a witness table without re-deriving the match.
func (a *Analyzer) checkConformances() {
	for _, t := range a.ctx.Types {
		for _, name := range t.Conformances {
			proto, ok := a.ctx.LookupProtocol(name.Name)
			if !ok {
				a.ctx.Diagnostics.Errorf(codes.LOOKUP005, primaryLoc(t), "unknown protocol %q", name.Name)
				continue
			}
			a.checkConformance(t, proto)
		}
	}
}

func (a *Analyzer) checkConformance(t *ast.TypeDecl, proto *ast.ProtocolDecl) {
	for _, req := range proto.Requirements {
		m := a.findConformingMethod(t, req)
		if m == nil {
			a.ctx.Diagnostics.Errorf(codes.TYPE013, primaryLoc(t),
				"type %q does not conform to protocol %q: missing %s", t.Name.Name, proto.Name.Name, req.String()).
				WithNote("missingImplementation: " + req.String())
			continue
		}
		m.Conforms = append(m.Conforms, proto)
	}
}

func (a *Analyzer) findConformingMethod(t *ast.TypeDecl, req *ast.MethodDecl) *ast.MethodDecl {
	for _, m := range t.Methods {
		if m.Name.Name == req.Name.Name && signatureMatches(m, req) {
			return m
		}
	}
	return nil
}

// signatureMatches compares arity and, pairwise, each parameter's type —
// including Any-compatibility in either direction, per spec.md's
// "pairwise matching parameter types including any-compatibility": a
// requirement parameter typed Any is satisfied by any concrete
// implementation parameter, and a requirement with a concrete type is
// satisfied by an implementation parameter typed Any. It deliberately
// ignores the requirement's (always-nil) body and trusts ResolvedType,
// which resolveSignatures has already populated on both sides by the
// time checkConformances runs.
func signatureMatches(have, want *ast.MethodDecl) bool {
	if len(have.Params) != len(want.Params) {
		return false
	}
	for i, p := range want.Params {
		hp := have.Params[i]
		if hp.ResolvedType == nil || p.ResolvedType == nil {
			continue
		}
		if dtype.IsAny(hp.ResolvedType) || dtype.IsAny(p.ResolvedType) {
			continue
		}
		if !hp.ResolvedType.Equals(p.ResolvedType) {
			return false
		}
	}
	return true
}
