package parser

import (
	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// parseMacroInvocation parses `name!(...)`/`name![...]`/`name!{...}`,
// capturing the argument token trees without interpreting them — macro
// expansion is out of scope for this front end.
func (p *parser) parseMacroInvocation(name token.Token) ast.MacroInvocation {
	p.stream.Consume() // '!'
	group := p.parseTokenGroup()
	return ast.MacroInvocation{Name: name.Lexeme, Args: group, Sp: token.Cover(name.Span, group.Sp)}
}

func (p *parser) parseTokenGroup() ast.TokenGroup {
	open := p.stream.Peek()
	var delim ast.GroupDelimiter
	var closeKind token.Kind
	switch open.Kind {
	case token.LPAREN:
		delim, closeKind = ast.Parens, token.RPAREN
	case token.LBRACKET:
		delim, closeKind = ast.Brackets, token.RBRACKET
	case token.LBRACE:
		delim, closeKind = ast.Braces, token.RBRACE
	default:
		return ast.TokenGroup{Sp: open.Span}
	}
	p.stream.Consume()

	var contents []ast.TokenTree
	for !p.at(closeKind) && !p.done() {
		tok := p.stream.Peek()
		if tok.Kind == token.LPAREN || tok.Kind == token.LBRACKET || tok.Kind == token.LBRACE {
			nested := p.parseTokenGroup()
			contents = append(contents, ast.TokenTree{IsGroup: true, Group: &nested})
			continue
		}
		contents = append(contents, ast.TokenTree{Leaf: p.stream.Consume()})
	}
	closeTok, _ := p.expect(closeKind, "closing delimiter")
	return ast.TokenGroup{Delimiter: delim, Contents: contents, Sp: token.Cover(open.Span, closeTok.Span)}
}
