package ast

// SourceFile groups the top-level declarations parsed from one input
// file (UTF-8 text, any path accepted; <stdin> handled as a
// pseudo-path). The parser appends each declaration to a Context via
// its `add` operations; this struct exists only to let the Context
// report which file a declaration came from and to preserve per-file
// ordering for diagnostics.
type SourceFile struct {
	Path  string
	Funcs        []*FuncDecl
	Operators    []*OperatorDecl
	Types        []*TypeDecl
	Extensions   []*ExtensionDecl
	Protocols    []*ProtocolDecl
	Globals      []*VarAssignDecl
	TypeAliases  []*TypeAliasDecl
}
