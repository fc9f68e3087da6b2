package ast

import "github.com/kestrel-lang/kestrelc/internal/token"

// Pattern is the sealed interface for the fixed-precedence pattern grammar:
// `|` alternation loosest, then `@` bindings, then ranges, then atoms.
type Pattern interface {
	patternNode()
	Span() token.Span
}

type LiteralPattern struct {
	Value any
	Sp    token.Span
}

func (LiteralPattern) patternNode()       {}
func (p LiteralPattern) Span() token.Span { return p.Sp }

type IdentifierPattern struct {
	Name string
	Sp   token.Span
}

func (IdentifierPattern) patternNode()       {}
func (p IdentifierPattern) Span() token.Span { return p.Sp }

type WildcardPattern struct {
	Sp token.Span
}

func (WildcardPattern) patternNode()       {}
func (p WildcardPattern) Span() token.Span { return p.Sp }

type FieldPattern struct {
	Name    string
	Pattern PatternRef
	Sp      token.Span
}

// DataClassPattern destructures `Name(p1, p2, ...)` or `Name { f: p, ... }`.
type DataClassPattern struct {
	Name   string
	Fields []FieldPattern
	Sp     token.Span
}

func (DataClassPattern) patternNode()       {}
func (p DataClassPattern) Span() token.Span { return p.Sp }

// RangePattern is `lo..hi` or `lo..=hi`.
type RangePattern struct {
	Low, High ExprRef
	Inclusive bool
	Sp        token.Span
}

func (RangePattern) patternNode()       {}
func (p RangePattern) Span() token.Span { return p.Sp }

// SlicePattern destructures `[p1, p2, rest @ .., p3]` (or a bare `..`).
type SlicePattern struct {
	Elements []PatternRef
	RestAt   int // number of Elements before the `..` rest, or -1 when absent
	RestName string
	Sp       token.Span
}

func (SlicePattern) patternNode()       {}
func (p SlicePattern) Span() token.Span { return p.Sp }

// OrPattern is `p1 | p2 | ...`, the loosest-binding pattern form.
type OrPattern struct {
	Alternatives []PatternRef
	Sp           token.Span
}

func (OrPattern) patternNode()       {}
func (p OrPattern) Span() token.Span { return p.Sp }

// GuardPattern attaches an `if` condition to a pattern, used outside match
// arms (match arms carry their guard on MatchArm directly).
type GuardPattern struct {
	Pattern   PatternRef
	Condition ExprRef
	Sp        token.Span
}

func (GuardPattern) patternNode()       {}
func (p GuardPattern) Span() token.Span { return p.Sp }

// BindingPattern is `name @ pattern`.
type BindingPattern struct {
	Name    string
	Pattern PatternRef
	Sp      token.Span
}

func (BindingPattern) patternNode()       {}
func (p BindingPattern) Span() token.Span { return p.Sp }

// RecoveredPattern stands in for a pattern the parser could not parse.
type RecoveredPattern struct {
	Synthetic bool
	Sp        token.Span
}

func (RecoveredPattern) patternNode()       {}
func (p RecoveredPattern) Span() token.Span { return p.Sp }
