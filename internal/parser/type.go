package parser

import (
	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// parseType parses a type expression: identifiers, generic instantiations,
// tuples, arrays, function types, and pointer types.
func (p *parser) parseType() ast.TypeRef {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.IDENT:
		p.stream.Consume()
		if !p.at(token.LT) {
			return p.arena.AllocType(ast.IdentifierType{Name: tok.Lexeme, Sp: tok.Span})
		}
		p.stream.Consume()
		var args []ast.TypeRef
		for !p.at(token.GT) && !p.done() {
			args = append(args, p.parseType())
			if p.at(token.COMMA) {
				p.stream.Consume()
				continue
			}
			break
		}
		closeTok, _ := p.expect(token.GT, "'>'")
		return p.arena.AllocType(ast.GenericType{Name: tok.Lexeme, Args: args, Sp: token.Cover(tok.Span, closeTok.Span)})

	case token.LPAREN:
		p.stream.Consume()
		var elements []ast.TypeRef
		for !p.at(token.RPAREN) && !p.done() {
			elements = append(elements, p.parseType())
			if p.at(token.COMMA) {
				p.stream.Consume()
				continue
			}
			break
		}
		closeTok, _ := p.expect(token.RPAREN, "')'")
		return p.arena.AllocType(ast.TupleType{Elements: elements, Sp: token.Cover(tok.Span, closeTok.Span)})

	case token.LBRACKET:
		p.stream.Consume()
		elem := p.parseType()
		var length ast.ExprRef
		if p.at(token.SEMI) {
			p.stream.Consume()
			length = p.parseExpression(0)
		}
		closeTok, _ := p.expect(token.RBRACKET, "']'")
		return p.arena.AllocType(ast.ArrayType{Element: elem, Length: length, Sp: token.Cover(tok.Span, closeTok.Span)})

	case token.FN:
		p.stream.Consume()
		p.expect(token.LPAREN, "'('")
		var params []ast.TypeRef
		for !p.at(token.RPAREN) && !p.done() {
			params = append(params, p.parseType())
			if p.at(token.COMMA) {
				p.stream.Consume()
				continue
			}
			break
		}
		closeParen, _ := p.expect(token.RPAREN, "')'")
		end := closeParen.Span
		var retType ast.TypeRef
		if p.at(token.ARROW) {
			p.stream.Consume()
			retType = p.parseType()
			end = p.arena.Type(retType).Span()
		}
		return p.arena.AllocType(ast.FunctionType{Params: params, ReturnType: retType, Sp: token.Cover(tok.Span, end)})

	case token.STAR:
		p.stream.Consume()
		unsafe := false
		if p.at(token.UNSAFE) {
			unsafe = true
			p.stream.Consume()
		}
		pointee := p.parseType()
		return p.arena.AllocType(ast.PointerType{Pointee: pointee, Unsafe: unsafe, Sp: token.Cover(tok.Span, p.arena.Type(pointee).Span())})

	default:
		p.errorfSuggest(tok.Span, diag.CodeUnexpectedToken, "add a type name, '[', '(', or '*' to start a type here", "expected a type, got %s", tok)
		if !p.isSyncToken(tok.Kind) {
			p.stream.Consume()
		}
		return p.arena.AllocType(ast.InferredType{Sp: tok.Span})
	}
}
