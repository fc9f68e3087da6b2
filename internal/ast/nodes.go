package ast

import "github.com/kestrel-lang/kestrelc/internal/token"

// CompilationUnit is the root node produced by ParseCompilationUnit.
type CompilationUnit struct {
	Items []ItemRef
	Span  token.Span
}

// Item is the sealed interface for top-level declarations, mirroring
// ferra_parser's Item enum (FunctionDecl/VariableDecl/DataClassDecl/
// ExternBlock).
type Item interface {
	itemNode()
	Span() token.Span
}

type Modifiers struct {
	Pub    bool
	Unsafe bool
	Async  bool
	Static bool
}

// Attribute is `#[name(arg1, arg2, ...)]`. Args holds each top-level
// argument's reconstructed source text verbatim — spec.md's "free-form
// stringified" array, not a single joined string — so `#[cfg(target = "x86")]`
// round-trips as Args: []string{`target = "x86"`}.
type Attribute struct {
	Name string
	Args []string
	Sp   token.Span
}

type Parameter struct {
	Name string
	Type TypeRef // an InferredType placeholder when the annotation is omitted, see DESIGN.md
	Sp   token.Span
}

type GenericParam struct {
	Name   string
	Bounds []TypeBound
	Sp     token.Span
}

type TypeBound struct {
	Name string
	Sp   token.Span
}

type WhereClause struct {
	Subject TypeRef
	Bounds  []TypeBound
	Sp      token.Span
}

type GenericParams struct {
	Params []GenericParam
	Where  []WhereClause
}

// FunctionDecl is `fn name(params) -> ret { body }` (or indent-delimited
// body), with optional generics, attributes, and modifiers.
type FunctionDecl struct {
	Modifiers  Modifiers
	Attributes AttrsRef
	Name       string
	Generics   GenericParams
	Params     []Parameter
	ReturnType TypeRef // invalid when omitted (inferred unit)
	Body       BlockRef
	Sp         token.Span
}

func (FunctionDecl) itemNode()          {}
func (d FunctionDecl) Span() token.Span { return d.Sp }

// VariableDecl is a top-level or statement-level `let`/`var` binding.
type VariableDecl struct {
	Mutable    bool // true for `var`, false for `let`
	Modifiers  Modifiers
	Attributes AttrsRef
	Pattern    PatternRef
	Type       TypeRef // invalid when the type is inferred
	Init       ExprRef // invalid when there is no initializer
	Sp         token.Span
}

func (VariableDecl) itemNode()          {}
func (d VariableDecl) Span() token.Span { return d.Sp }

// Field is one member of a data class.
type Field struct {
	Name string
	Type TypeRef
	Sp   token.Span
}

// DataClassDecl is `data Name(fields...)` or `data Name { fields... }`.
type DataClassDecl struct {
	Modifiers  Modifiers
	Attributes AttrsRef
	Name       string
	Generics   GenericParams
	Fields     []Field
	Sp         token.Span
}

func (DataClassDecl) itemNode()          {}
func (d DataClassDecl) Span() token.Span { return d.Sp }

// ExternItem is a member of an extern block: a function signature or a
// variable declaration with no body/initializer.
type ExternItem interface {
	externItemNode()
	Span() token.Span
}

type ExternFunction struct {
	Name       string
	Params     []Parameter
	ReturnType TypeRef
	Sp         token.Span
}

func (ExternFunction) externItemNode()    {}
func (e ExternFunction) Span() token.Span { return e.Sp }

type ExternVariable struct {
	Name string
	Type TypeRef
	Sp   token.Span
}

func (ExternVariable) externItemNode()    {}
func (e ExternVariable) Span() token.Span { return e.Sp }

// ExternBlock is `extern "ABI" { ... }`.
type ExternBlock struct {
	ABI   string
	Items []ExternItem
	Sp    token.Span
}

func (ExternBlock) itemNode()          {}
func (d ExternBlock) Span() token.Span { return d.Sp }

// MacroDefinition lets a top-level macro definition (§4.3) participate in
// the Item sum type. No parser production constructs it: parseItem does not
// recognize macro definitions.
type MacroDefinition struct {
	Name  string
	Rules []MacroRule
	Sp    token.Span
}

func (MacroDefinition) itemNode()          {}
func (d MacroDefinition) Span() token.Span { return d.Sp }

type MacroRule struct {
	Pattern []TokenTree
	Body    []TokenTree
}

// RecoveredItem stands in for a top-level construct the parser could not
// make sense of; Synthetic is always true. Grounded on the spec's §9
// recommendation that recovery nodes be flagged rather than silently
// omitted.
type RecoveredItem struct {
	Synthetic bool
	Sp        token.Span
}

func (RecoveredItem) itemNode()          {}
func (d RecoveredItem) Span() token.Span { return d.Sp }
