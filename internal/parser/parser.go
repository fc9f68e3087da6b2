// Package parser implements a Pratt (operator-precedence) expression parser
// combined with recursive-descent statement/declaration parsing, producing
// an arena-owned ast.CompilationUnit plus the diag.Diagnostic list of
// everything that went wrong along the way (returned in Result; building a
// diag.Report from it is left to the caller). Grounded on the teacher's Parse/ParserOpt
// pattern (runtime/parser/parser.go) for the driver shape, and on
// ferra_parser (src/pratt, src/statement, src/token/stream.rs) for the
// grammar itself.
package parser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// Option configures a parse. Grounded on the teacher's ParserOpt.
type Option func(*config)

type config struct {
	maxErrors       int
	maxRecoveryHops int
	recursionLimit  int
	logger          *slog.Logger
}

func defaultConfig() *config {
	return &config{
		maxErrors:       diag.DefaultMaxErrors,
		maxRecoveryHops: 10000,
		recursionLimit:  256,
		logger:          slog.New(discardHandler{}),
	}
}

// WithMaxErrors overrides how many diagnostics are collected before the
// parse gives up (see diag.Collector).
func WithMaxErrors(n int) Option { return func(c *config) { c.maxErrors = n } }

// WithMaxRecoveryHops bounds how many tokens panic-mode recovery may skip
// across the whole parse, guarding against pathological inputs that are
// nothing but unmatched synchronization tokens.
func WithMaxRecoveryHops(n int) Option { return func(c *config) { c.maxRecoveryHops = n } }

// WithRecursionLimit bounds nested expression/statement depth, converting a
// stack overflow into a Fatal diagnostic.
func WithRecursionLimit(n int) Option { return func(c *config) { c.recursionLimit = n } }

// WithLogger overrides the default (discarding) debug logger.
func WithLogger(logger *slog.Logger) Option { return func(c *config) { c.logger = logger } }

type parser struct {
	stream TokenStream
	arena  *ast.Arena
	diags  *diag.Collector
	cfg    *config
	depth  int
	hops   int
	fatal  bool // set once the diagnostic budget (cfg.maxErrors) is exhausted or the recursion limit is exceeded

	// blockStyle records whether the enclosing function body (or nearest
	// ancestor block) is brace- or indent-delimited, so a mismatched style
	// nested inside it can be flagged (§7 MixedBlockStyles).
	blockStyle blockStyleState
}

type blockStyleState int

const (
	blockStyleUnset blockStyleState = iota
	blockStyleBraced
	blockStyleIndented
)

func newParser(toks []token.Token, opts []Option) *parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &parser{
		stream: NewTokenStream(toks),
		arena:  ast.NewArena(),
		diags:  diag.NewCollector(cfg.maxErrors),
		cfg:    cfg,
	}
}

// Result is returned by every public entry point: the arena owning every
// node the parse produced, plus the accumulated diagnostics.
type Result struct {
	Arena *ast.Arena
	Diags []diag.Diagnostic
}

// ParseCompilationUnit parses a full file's worth of pre-lexed tokens.
func ParseCompilationUnit(toks []token.Token, opts ...Option) (ast.CompilationUnit, Result) {
	p := newParser(toks, opts)
	unit := p.parseCompilationUnit()
	return unit, Result{Arena: p.arena, Diags: p.diags.Diagnostics()}
}

// ParseExpression parses a single expression, for use by tests and tools
// that don't need a whole compilation unit (e.g. a REPL).
func ParseExpression(toks []token.Token, opts ...Option) (ast.ExprRef, Result) {
	p := newParser(toks, opts)
	expr := p.parseExpression(0)
	return expr, Result{Arena: p.arena, Diags: p.diags.Diagnostics()}
}

// ParseStatement parses a single statement.
func ParseStatement(toks []token.Token, opts ...Option) (ast.StmtRef, Result) {
	p := newParser(toks, opts)
	stmt := p.parseStatement()
	return stmt, Result{Arena: p.arena, Diags: p.diags.Diagnostics()}
}

// ParsePattern parses a single pattern.
func ParsePattern(toks []token.Token, opts ...Option) (ast.PatternRef, Result) {
	p := newParser(toks, opts)
	pat := p.parsePatternWithGuard()
	return pat, Result{Arena: p.arena, Diags: p.diags.Diagnostics()}
}

func (p *parser) parseCompilationUnit() ast.CompilationUnit {
	start := p.stream.Peek().Span
	var items []ast.ItemRef
	p.skipNewlines()
	for !p.done() {
		items = append(items, p.parseItem())
		p.skipNewlines()
	}
	end := p.stream.Peek().Span
	return ast.CompilationUnit{Items: items, Span: token.Cover(start, end)}
}

func (p *parser) skipNewlines() {
	for p.stream.Peek().Kind == token.NEWLINE {
		p.stream.Consume()
	}
}

func (p *parser) peekKind() token.Kind { return p.stream.Peek().Kind }

func (p *parser) at(k token.Kind) bool { return p.peekKind() == k }

func (p *parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.stream.Consume(), true
	}
	got := p.stream.Peek()
	d := diag.Diagnostic{
		Severity:   diag.Error,
		Code:       diag.CodeMissingToken,
		Message:    fmt.Sprintf("expected %s, got %s", what, got),
		Span:       got.Span,
		Suggestion: fmt.Sprintf("insert %s here", what),
	}
	p.report(d)
	return got, false
}

// done reports whether the parser must stop making progress, either because
// the token stream is exhausted or because a Fatal diagnostic was reported
// (the diagnostic budget cfg.maxErrors was spent, or the recursion limit was
// exceeded) — per spec.md's "after reaching the bound, parsing stops" policy.
func (p *parser) done() bool {
	return p.stream.IsAtEnd() || p.fatal
}

func (p *parser) errorf(span token.Span, code, format string, args ...any) {
	p.report(diag.Diagnostic{Severity: diag.Error, Code: code, Message: fmt.Sprintf(format, args...), Span: span})
}

// errorfSuggest is errorf plus a concrete fix suggested to the user,
// grounded on the teacher's habit of populating ParseError.Suggestion at
// every missing-delimiter/missing-name call site (runtime/parser/parser.go).
func (p *parser) errorfSuggest(span token.Span, code, suggestion, format string, args ...any) {
	p.report(diag.Diagnostic{Severity: diag.Error, Code: code, Message: fmt.Sprintf(format, args...), Span: span, Suggestion: suggestion})
}

// report records d unless the parser has already gone fatal. Once the
// collector's error budget is spent, it appends a single Fatal diagnostic
// noting the cutoff and flips p.fatal so every remaining loop (done) winds
// down instead of continuing to accumulate diagnostics past maxErrors.
func (p *parser) report(d diag.Diagnostic) {
	if p.fatal {
		return
	}
	if !p.diags.Add(d) {
		p.fatal = true
		p.diags.Add(diag.Diagnostic{
			Severity:   diag.Fatal,
			Code:       diag.CodeInternal,
			Message:    fmt.Sprintf("diagnostic budget (%d) exhausted; parsing stopped early", p.cfg.maxErrors),
			Span:       d.Span,
			Suggestion: "fix the reported errors and re-run; raise WithMaxErrors to see more at once",
		})
	}
}

// enterRecursion increments the recursion counter and reports (once) if the
// configured limit is exceeded, returning false so callers can bail out
// instead of overflowing the Go call stack on pathological input.
func (p *parser) enterRecursion() (exitFn func(), ok bool) {
	p.depth++
	if p.depth > p.cfg.recursionLimit {
		p.depth--
		p.report(diag.Diagnostic{
			Severity: diag.Fatal,
			Code:     diag.CodeInternal,
			Message:  fmt.Sprintf("maximum nesting depth (%d) exceeded", p.cfg.recursionLimit),
			Span:     p.stream.Peek().Span,
		})
		p.fatal = true
		return func() {}, false
	}
	return func() { p.depth-- }, true
}

// discardHandler is the zero-cost default slog handler, mirroring the
// lexer's.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool   { return false }
func (discardHandler) Handle(context.Context, slog.Record) error  { return nil }
func (discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler   { return discardHandler{} }
func (discardHandler) WithGroup(name string) slog.Handler         { return discardHandler{} }
