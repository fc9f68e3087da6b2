package ast

import "github.com/kestrel-lang/kestrelc/internal/token"

// Expr is the sealed interface for expressions, mirroring ferra_parser's
// Expression enum (src/ast/nodes.rs) one variant at a time.
type Expr interface {
	exprNode()
	Span() token.Span
}

// LiteralExpr wraps a scanned literal token's already-decoded value
// (int64, float64, string, rune, or bool).
type LiteralExpr struct {
	Value any
	Sp    token.Span
}

func (LiteralExpr) exprNode()          {}
func (e LiteralExpr) Span() token.Span { return e.Sp }

type IdentifierExpr struct {
	Name string
	Sp   token.Span
}

func (IdentifierExpr) exprNode()          {}
func (e IdentifierExpr) Span() token.Span { return e.Sp }

// QualifiedIdentifierExpr is `a::b::c`.
type QualifiedIdentifierExpr struct {
	Segments []string
	Sp       token.Span
}

func (QualifiedIdentifierExpr) exprNode()          {}
func (e QualifiedIdentifierExpr) Span() token.Span { return e.Sp }

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpCoalesce
	OpRange
	OpRangeInclusive
)

type BinaryExpr struct {
	Operator BinaryOp
	Left     ExprRef
	Right    ExprRef
	Sp       token.Span
}

func (BinaryExpr) exprNode()          {}
func (e BinaryExpr) Span() token.Span { return e.Sp }

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpRef
)

type UnaryExpr struct {
	Operator UnaryOp
	Operand  ExprRef
	Sp       token.Span
}

func (UnaryExpr) exprNode()          {}
func (e UnaryExpr) Span() token.Span { return e.Sp }

// AssignExpr covers `=` and the compound assignment operators; IsPlain is
// true for plain `=` (Compound is then left at its zero value and carries no
// meaning), and otherwise Compound is OpAdd etc. for `+=`.
type AssignExpr struct {
	Target   ExprRef
	Compound BinaryOp
	IsPlain  bool
	Value    ExprRef
	Sp       token.Span
}

func (AssignExpr) exprNode()          {}
func (e AssignExpr) Span() token.Span { return e.Sp }

type CallExpr struct {
	Callee ExprRef
	Args   []ExprRef
	Sp     token.Span
}

func (CallExpr) exprNode()          {}
func (e CallExpr) Span() token.Span { return e.Sp }

type MemberAccessExpr struct {
	Object ExprRef
	Member string
	Sp     token.Span
}

func (MemberAccessExpr) exprNode()          {}
func (e MemberAccessExpr) Span() token.Span { return e.Sp }

type IndexExpr struct {
	Object ExprRef
	Index  ExprRef
	Sp     token.Span
}

func (IndexExpr) exprNode()          {}
func (e IndexExpr) Span() token.Span { return e.Sp }

// AwaitExpr is `expr.await`, parsed as a postfix operator at member-access
// precedence per the Ferra grammar.
type AwaitExpr struct {
	Operand ExprRef
	Sp      token.Span
}

func (AwaitExpr) exprNode()          {}
func (e AwaitExpr) Span() token.Span { return e.Sp }

type ArrayExpr struct {
	Elements []ExprRef
	Sp       token.Span
}

func (ArrayExpr) exprNode()          {}
func (e ArrayExpr) Span() token.Span { return e.Sp }

type TupleExpr struct {
	Elements []ExprRef
	Sp       token.Span
}

func (TupleExpr) exprNode()          {}
func (e TupleExpr) Span() token.Span { return e.Sp }

type IfExpr struct {
	Condition ExprRef
	Then      BlockRef
	Else      BlockRef // invalid (zero Stmts, zero span) when there is no else
	ElseIf    ExprRef  // invalid unless the else branch is itself `else if`; holds an IfExpr
	Sp        token.Span
}

func (IfExpr) exprNode()          {}
func (e IfExpr) Span() token.Span { return e.Sp }

type MatchArm struct {
	Pattern PatternRef
	Guard   ExprRef // invalid when there is no `if` guard
	Body    ExprRef
	Sp      token.Span
}

type MatchExpr struct {
	Scrutinee ExprRef
	Arms      []MatchArm
	Sp        token.Span
}

func (MatchExpr) exprNode()          {}
func (e MatchExpr) Span() token.Span { return e.Sp }

// GroupedExpr preserves an explicit `(...)` grouping so pretty-printing and
// diagnostics can distinguish it from an unparenthesized child. The parser
// also wraps the operand of a postfix `expr?` in a GroupedExpr (whose span is
// then that of the `?` token alone).
type GroupedExpr struct {
	Inner ExprRef
	Sp    token.Span
}

func (GroupedExpr) exprNode()          {}
func (e GroupedExpr) Span() token.Span { return e.Sp }

// BlockExpr lets a block be used in expression position (the value of its
// last statement, if that statement is an expression with no terminator).
type BlockExpr struct {
	Block BlockRef
	Sp    token.Span
}

func (BlockExpr) exprNode()          {}
func (e BlockExpr) Span() token.Span { return e.Sp }

// MacroExpr is `name!(...)` used in expression position; Invocation carries
// the captured, unexpanded token trees.
type MacroExpr struct {
	Invocation MacroInvocation
	Sp         token.Span
}

func (MacroExpr) exprNode()          {}
func (e MacroExpr) Span() token.Span { return e.Sp }

// RecoveredExpr stands in for an expression the parser could not parse.
type RecoveredExpr struct {
	Synthetic bool
	Sp        token.Span
}

func (RecoveredExpr) exprNode()          {}
func (e RecoveredExpr) Span() token.Span { return e.Sp }
