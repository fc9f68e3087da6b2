package parser

import "github.com/kestrel-lang/kestrelc/internal/token"

// TokenStream abstracts over a token sequence with bounded lookahead,
// grounded on ferra_parser's VecTokenStream (src/token/stream.rs): peek,
// peek_ahead(k), consume, is_at_end, position. Past EOF, every peek clamps
// to the trailing EOF token rather than panicking.
type TokenStream interface {
	Peek() token.Token
	PeekAhead(k int) token.Token
	Consume() token.Token
	IsAtEnd() bool
	Position() int
}

// sliceTokenStream is the only TokenStream implementation: a pre-lexed
// token slice with a cursor.
type sliceTokenStream struct {
	toks []token.Token
	pos  int
}

func NewTokenStream(toks []token.Token) TokenStream {
	return &sliceTokenStream{toks: toks}
}

func (s *sliceTokenStream) clampIndex(i int) int {
	if i >= len(s.toks) {
		return len(s.toks) - 1
	}
	return i
}

func (s *sliceTokenStream) Peek() token.Token {
	if len(s.toks) == 0 {
		return token.Token{Kind: token.EOF}
	}
	return s.toks[s.clampIndex(s.pos)]
}

func (s *sliceTokenStream) PeekAhead(k int) token.Token {
	if len(s.toks) == 0 {
		return token.Token{Kind: token.EOF}
	}
	return s.toks[s.clampIndex(s.pos+k)]
}

func (s *sliceTokenStream) Consume() token.Token {
	t := s.Peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return t
}

func (s *sliceTokenStream) IsAtEnd() bool {
	return s.Peek().Kind == token.EOF
}

func (s *sliceTokenStream) Position() int {
	return s.pos
}
