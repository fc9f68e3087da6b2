package ast

import "github.com/kestrel-lang/kestrelc/internal/token"

// Type is the sealed interface for type expressions.
type Type interface {
	typeNode()
	Span() token.Span
}

type IdentifierType struct {
	Name string
	Sp   token.Span
}

func (IdentifierType) typeNode()       {}
func (t IdentifierType) Span() token.Span { return t.Sp }

// GenericType is `Name<Arg1, Arg2>`.
type GenericType struct {
	Name string
	Args []TypeRef
	Sp   token.Span
}

func (GenericType) typeNode()       {}
func (t GenericType) Span() token.Span { return t.Sp }

type TupleType struct {
	Elements []TypeRef
	Sp       token.Span
}

func (TupleType) typeNode()       {}
func (t TupleType) Span() token.Span { return t.Sp }

// ArrayType is `[ElementType]` or `[ElementType; N]`.
type ArrayType struct {
	Element TypeRef
	Length  ExprRef // invalid for a slice (unsized) array type
	Sp      token.Span
}

func (ArrayType) typeNode()       {}
func (t ArrayType) Span() token.Span { return t.Sp }

// FunctionType is `fn(Params) -> Ret`, used in type position (e.g. a
// parameter whose type is itself a function).
type FunctionType struct {
	Params     []TypeRef
	ReturnType TypeRef
	Sp         token.Span
}

func (FunctionType) typeNode()       {}
func (t FunctionType) Span() token.Span { return t.Sp }

// PointerType is `*T` or `*unsafe T` depending on the language's pointer
// sigil rules; Unsafe distinguishes the two.
type PointerType struct {
	Pointee TypeRef
	Unsafe  bool
	Sp      token.Span
}

func (PointerType) typeNode()       {}
func (t PointerType) Span() token.Span { return t.Sp }

// InferredType stands in for an omitted type annotation — e.g. an untyped
// function parameter (§8 scenario 3) — rather than leaving the TypeRef
// invalid, so downstream passes can see that inference, not absence, is
// intended.
type InferredType struct {
	Sp token.Span
}

func (InferredType) typeNode()       {}
func (t InferredType) Span() token.Span { return t.Sp }
