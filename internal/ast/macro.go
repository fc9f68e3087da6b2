package ast

import "github.com/kestrel-lang/kestrelc/internal/token"

// GroupDelimiter names the bracket kind enclosing a TokenGroup.
type GroupDelimiter int

const (
	Parens GroupDelimiter = iota
	Brackets
	Braces
)

// TokenTree is either a single captured token (Leaf) or a nested
// bracket-delimited group (Group) — the grammar-agnostic payload a macro
// invocation's arguments are captured as, mirroring ferra_parser's
// TokenTree without committing to any macro's internal grammar.
type TokenTree struct {
	IsGroup bool
	Leaf    token.Token
	Group   *TokenGroup
}

type TokenGroup struct {
	Delimiter GroupDelimiter
	Contents  []TokenTree
	Sp        token.Span
}

// MacroInvocation is `name!(...)`/`name![...]`/`name!{...}` with its
// argument token trees captured but not expanded — expansion is out of
// scope for this front end (see SPEC_FULL.md's Non-goals).
type MacroInvocation struct {
	Name string
	Args TokenGroup
	Sp   token.Span
}
