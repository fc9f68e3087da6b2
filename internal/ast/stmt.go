package ast

import "github.com/kestrel-lang/kestrelc/internal/token"

// Block is a sequence of statements, braced or indent-delimited. It is a
// plain struct rather than a Ref-of-interface because it has no variants —
// only the modifiers that control how its body is recognized and executed.
type Block struct {
	Stmts      []StmtRef
	IsBraced   bool // true for `{ ... }`, false for an indented suite
	ScopeDepth int  // nesting depth from the enclosing function, for diagnostics
	IsUnsafe   bool
	IsAsync    bool
	IsTry      bool
	Label      string // "" when unlabeled
	Sp         token.Span
}

// Stmt is the sealed interface for statements.
type Stmt interface {
	stmtNode()
	Span() token.Span
}

type ExprStmt struct {
	Expr ExprRef
	Sp   token.Span
}

func (ExprStmt) stmtNode()          {}
func (s ExprStmt) Span() token.Span { return s.Sp }

type ItemStmt struct {
	Item ItemRef
	Sp   token.Span
}

func (ItemStmt) stmtNode()          {}
func (s ItemStmt) Span() token.Span { return s.Sp }

type ReturnStmt struct {
	Value ExprRef // invalid for a bare `return`
	Sp    token.Span
}

func (ReturnStmt) stmtNode()          {}
func (s ReturnStmt) Span() token.Span { return s.Sp }

type BreakStmt struct {
	Label string // "" when unlabeled
	Value ExprRef
	Sp    token.Span
}

func (BreakStmt) stmtNode()          {}
func (s BreakStmt) Span() token.Span { return s.Sp }

type ContinueStmt struct {
	Label string
	Sp    token.Span
}

func (ContinueStmt) stmtNode()          {}
func (s ContinueStmt) Span() token.Span { return s.Sp }

type WhileStmt struct {
	Label     string
	Condition ExprRef
	Body      BlockRef
	Sp        token.Span
}

func (WhileStmt) stmtNode()          {}
func (s WhileStmt) Span() token.Span { return s.Sp }

// ForStmt is `for pattern in iterable { body }`.
type ForStmt struct {
	Label    string
	Pattern  PatternRef
	Iterable ExprRef
	Body     BlockRef
	Sp       token.Span
}

func (ForStmt) stmtNode()          {}
func (s ForStmt) Span() token.Span { return s.Sp }

// RecoveredStmt stands in for a statement the parser could not parse after
// panic-mode recovery reached a synchronization point.
type RecoveredStmt struct {
	Synthetic bool
	Sp        token.Span
}

func (RecoveredStmt) stmtNode()          {}
func (s RecoveredStmt) Span() token.Span { return s.Sp }
