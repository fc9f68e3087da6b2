// Package lexer converts UTF-8 source text into a token sequence, including
// synthetic layout tokens (INDENT/DEDENT/NEWLINE), following the scanning
// contract of a single forward pass with bounded lookahead.
package lexer

import (
	"context"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/kestrel-lang/kestrelc/internal/token"
	"golang.org/x/text/unicode/norm"
)

// Option configures a Lexer. Grounded on the teacher's functional-options
// pattern for the parser (ParserOpt).
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger overrides the default (discarding) debug logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

const eofRune rune = -1

type lexer struct {
	src    string
	offset int // byte offset of l.ch
	rdOff  int // byte offset of next rune
	ch     rune
	line   int
	column int

	logger *slog.Logger

	indents     []int // indentation-width stack, starts at [0]
	atLineStart bool  // next token must re-measure indentation
	inMultiline bool  // suppresses layout tracking inside a multiline string
	braceDepth  int   // suppresses layout tracking inside a `{ }` block

	tokens []token.Token
}

// Lex scans source into a complete token sequence terminated by exactly one
// EOF token. The lexer never fails: malformed constructs produce ERROR
// tokens and scanning resumes at the next plausible boundary.
func Lex(source string, opts ...Option) []token.Token {
	cfg := &config{logger: slog.New(discardHandler{})}
	for _, opt := range opts {
		opt(cfg)
	}

	l := &lexer{
		src:     source,
		line:    1,
		column:  0,
		logger:  cfg.logger,
		indents: []int{0},
		tokens:  make([]token.Token, 0, len(source)/4+8),
	}
	l.advance()
	l.skipShebang()
	l.run()
	return l.tokens
}

func (l *lexer) run() {
	l.atLineStart = true
	for {
		if l.atLineStart && !l.inMultiline && l.braceDepth == 0 {
			l.handleLayout()
		}
		tok := l.scanToken()
		switch tok.Kind {
		case token.LBRACE:
			l.braceDepth++
		case token.RBRACE:
			if l.braceDepth > 0 {
				l.braceDepth--
			}
		}
		if tok.Kind == token.EOF {
			l.emitPendingDedents()
			l.emit(tok)
			return
		}
		l.emit(tok)
	}
}

func (l *lexer) emit(t token.Token) { l.tokens = append(l.tokens, t) }

func (l *lexer) emitPendingDedents() {
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(token.Token{Kind: token.DEDENT, Span: l.pointSpan()})
	}
}

// skipShebang discards a leading `#!...` line, per §4.1 pre-processing.
func (l *lexer) skipShebang() {
	if l.ch == '#' && l.peekByte() == '!' {
		for l.ch != '\n' && l.ch != eofRune {
			l.advance()
		}
		if l.ch == '\n' {
			l.advance()
		}
	}
}

// handleLayout measures the current line's leading whitespace and emits
// INDENT/DEDENT tokens relative to the indentation stack. Blank lines and
// comment-only lines are skipped without altering the stack. The caller
// only invokes this while braceDepth == 0: an indented body line inside a
// `{ }` block is not a layout change, and running this unconditionally
// there would emit a stray INDENT that the braced block parser never
// consumes, since '}' — not DEDENT — closes it.
func (l *lexer) handleLayout() {
	for {
		width := 0
		for l.ch == ' ' || l.ch == '\t' {
			width++
			l.advance()
		}

		if l.ch == eofRune {
			l.atLineStart = false
			return
		}
		if l.ch == '\n' {
			// Blank line: consume it here so it never reaches scanToken as
			// a spurious NEWLINE-triggered layout change, but still emit a
			// NEWLINE token for it per §4.1.
			l.emit(token.Token{Kind: token.NEWLINE, Span: l.pointSpan()})
			l.advance()
			continue
		}
		if l.ch == '/' && l.peekByte() == '/' {
			// Comment-only line: scan and discard the comment, then retry.
			l.scanLineComment()
			continue
		}

		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.emit(token.Token{Kind: token.INDENT, Span: l.pointSpan()})
		case width < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.emit(token.Token{Kind: token.DEDENT, Span: l.pointSpan()})
			}
			if l.indents[len(l.indents)-1] != width {
				l.indents = append(l.indents, width)
				l.emit(l.errorToken(l.pointSpan(), "inconsistent indentation: no enclosing block matches this indent width"))
			}
		}
		l.atLineStart = false
		return
	}
}

func (l *lexer) pos() token.Position {
	return token.Position{Offset: l.offset, Line: l.line, Column: l.column}
}

func (l *lexer) pointSpan() token.Span {
	p := l.pos()
	return token.Span{StartOffset: p.Offset, EndOffset: p.Offset, StartLine: p.Line, StartColumn: p.Column}
}

func (l *lexer) spanFrom(start token.Position) token.Span {
	return token.Span{
		StartOffset: start.Offset,
		EndOffset:   l.offset,
		StartLine:   start.Line,
		StartColumn: start.Column,
	}
}

// advance moves to the next rune, updating line/column. Column counts
// Unicode scalar values, not bytes.
func (l *lexer) advance() {
	if l.rdOff >= len(l.src) {
		l.offset = len(l.src)
		l.ch = eofRune
		return
	}
	r, w := utf8.DecodeRuneInString(l.src[l.rdOff:])
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.offset = l.rdOff
	l.rdOff += w
	l.ch = r
	l.column++
}

func (l *lexer) peekByte() byte {
	if l.rdOff >= len(l.src) {
		return 0
	}
	return l.src[l.rdOff]
}

func (l *lexer) peekRune() rune {
	if l.rdOff >= len(l.src) {
		return eofRune
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.rdOff:])
	return r
}

func (l *lexer) errorToken(span token.Span, msg string) token.Token {
	return token.Token{Kind: token.ERROR, Literal: msg, Span: span}
}

// normalizeIdent applies NFC normalization, treating unicode/norm as the
// external library contract for normalize_nfc per the design notes.
func normalizeIdent(s string) string {
	return norm.NFC.String(s)
}

// scanToken returns the next significant token, skipping intra-line
// whitespace and comments first. Newlines are returned as NEWLINE tokens
// since they are significant to the layout algorithm.
func (l *lexer) scanToken() token.Token {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.advance()
		}
		if l.ch == '/' && l.peekByte() == '/' {
			l.scanLineComment()
			continue
		}
		if l.ch == '/' && l.peekByte() == '*' {
			start := l.pos()
			if tok, unterminated := l.scanBlockComment(start); unterminated {
				return tok
			}
			continue
		}
		break
	}

	start := l.pos()

	if l.ch == eofRune {
		return token.Token{Kind: token.EOF, Span: l.spanFrom(start)}
	}
	if l.ch == '\n' {
		l.advance()
		l.atLineStart = true
		return token.Token{Kind: token.NEWLINE, Span: l.spanFrom(start)}
	}

	switch {
	case l.ch == 'r' && l.isRawStringPrefix():
		return l.scanRawString(start)
	case isIdentStart(l.ch):
		return l.scanIdentifier(start)
	case isDigit(l.ch), l.ch == '.' && isDigit(l.peekRune()):
		return l.scanNumber(start)
	case l.ch == '"':
		return l.scanString(start)
	case l.ch == '\'':
		return l.scanChar(start)
	default:
		return l.scanOperator(start)
	}
}

// isRawStringPrefix reports whether the lexer is positioned at 'r' followed
// by zero-or-more '#' and then '"' — the raw-string opening delimiter.
func (l *lexer) isRawStringPrefix() bool {
	i := l.rdOff
	for i < len(l.src) && l.src[i] == '#' {
		i++
	}
	return i < len(l.src) && l.src[i] == '"'
}

func (l *lexer) scanIdentifier(start token.Position) token.Token {
	for isIdentContinue(l.ch) {
		l.advance()
	}
	raw := l.src[start.Offset:l.offset]
	normalized := normalizeIdent(raw)
	if kind, ok := token.Keywords[normalized]; ok {
		return token.Token{Kind: kind, Lexeme: normalized, Span: l.spanFrom(start)}
	}
	return token.Token{Kind: token.IDENT, Lexeme: normalized, Span: l.spanFrom(start)}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// discardHandler is the zero-cost default slog handler used when the caller
// does not supply one via WithLogger.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler   { return discardHandler{} }
func (discardHandler) WithGroup(name string) slog.Handler         { return discardHandler{} }
