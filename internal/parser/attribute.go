package parser

import (
	"strings"

	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// parseAttributes parses zero or more `#[name(arg1, arg2, ...)]` annotations
// preceding a declaration. Each argument's source text is reconstructed from
// token Lexemes (not Token.String, which is a diagnostic-display format like
// `IDENT("a")` and was never meant for round-tripping source) and split on
// top-level, paren-depth-aware commas per spec.md's arguments[] data model —
// attribute grammars are themselves per-attribute and out of scope for this
// front end (see SPEC_FULL.md).
func (p *parser) parseAttributes() ast.AttrsRef {
	var attrs []ast.Attribute
	for p.at(token.HASH) {
		start := p.stream.Consume()
		p.expect(token.LBRACKET, "'[' after '#'")
		name, _ := p.expect(token.IDENT, "attribute name")

		var args []string
		end := name.Span
		if p.at(token.LPAREN) {
			p.stream.Consume()
			var current []string
			depth := 1
			for depth > 0 && !p.done() {
				tok := p.stream.Peek()
				switch tok.Kind {
				case token.LPAREN:
					depth++
				case token.RPAREN:
					depth--
					if depth == 0 {
						end = tok.Span
						p.stream.Consume()
					}
				case token.COMMA:
					if depth == 1 {
						args = append(args, strings.Join(current, " "))
						current = nil
						p.stream.Consume()
						continue
					}
				}
				if depth == 0 {
					break
				}
				current = append(current, tokenText(tok))
				p.stream.Consume()
			}
			if len(current) > 0 {
				args = append(args, strings.Join(current, " "))
			}
		}

		closeTok, _ := p.expect(token.RBRACKET, "']'")
		end = closeTok.Span
		attrs = append(attrs, ast.Attribute{Name: name.Lexeme, Args: args, Sp: token.Cover(start.Span, end)})
		p.skipNewlines()
	}
	return p.arena.AllocAttrs(attrs)
}

// tokenText returns a token's source text for reconstruction purposes,
// falling back to the token kind's name only for the (layout/EOF) tokens
// that never carry a Lexeme.
func tokenText(t token.Token) string {
	if t.Lexeme != "" {
		return t.Lexeme
	}
	return t.Kind.String()
}
