package parser

import (
	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// parsePrefix implements the Pratt parser's NUD (null denotation): every
// token kind that can start an expression.
func (p *parser) parsePrefix() ast.ExprRef {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.INTEGER, token.FLOAT, token.STRING, token.RAW_STRING, token.MULTILINE_STRING, token.CHAR:
		p.stream.Consume()
		return p.arena.AllocExpr(ast.LiteralExpr{Value: tok.Literal, Sp: tok.Span})
	case token.TRUE:
		p.stream.Consume()
		return p.arena.AllocExpr(ast.LiteralExpr{Value: true, Sp: tok.Span})
	case token.FALSE:
		p.stream.Consume()
		return p.arena.AllocExpr(ast.LiteralExpr{Value: false, Sp: tok.Span})

	case token.IDENT:
		return p.parseIdentifierOrQualified()

	case token.MINUS:
		return p.parseUnary(ast.OpNeg)
	case token.BANG:
		return p.parseUnary(ast.OpNot)
	case token.TILDE:
		return p.parseUnary(ast.OpBitNot)
	case token.AMP:
		return p.parseUnary(ast.OpRef)

	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.LBRACKET:
		return p.parseArrayLiteral()

	case token.IF:
		return p.parseIfExpr()
	case token.MATCH:
		return p.parseMatchExpr()
	case token.LBRACE:
		return p.parseBlockExpr(false, false, false, "")
	case token.UNSAFE, token.ASYNC:
		return p.parseModifiedBlockExpr()

	default:
		p.errorfSuggest(tok.Span, diag.CodeUnexpectedToken, "add a value, identifier, or '(' to start an expression here", "expected an expression, got %s", tok)
		recovered := p.arena.AllocExpr(ast.RecoveredExpr{Synthetic: true, Sp: tok.Span})
		if !p.isSyncToken(tok.Kind) {
			p.stream.Consume()
		}
		return recovered
	}
}

func (p *parser) parseIdentifierOrQualified() ast.ExprRef {
	first := p.stream.Consume()
	if p.at(token.BANG) {
		switch p.stream.PeekAhead(1).Kind {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			inv := p.parseMacroInvocation(first)
			return p.arena.AllocExpr(ast.MacroExpr{Invocation: inv, Sp: inv.Sp})
		}
	}
	if !p.at(token.COLONCOLON) {
		return p.arena.AllocExpr(ast.IdentifierExpr{Name: first.Lexeme, Sp: first.Span})
	}
	segments := []string{first.Lexeme}
	end := first.Span
	for p.at(token.COLONCOLON) {
		p.stream.Consume()
		seg, ok := p.expect(token.IDENT, "identifier after '::'")
		if !ok {
			break
		}
		segments = append(segments, seg.Lexeme)
		end = seg.Span
	}
	return p.arena.AllocExpr(ast.QualifiedIdentifierExpr{Segments: segments, Sp: token.Cover(first.Span, end)})
}

func (p *parser) parseUnary(op ast.UnaryOp) ast.ExprRef {
	tok := p.stream.Consume()
	operand := p.parseExpression(bpUnary)
	span := token.Cover(tok.Span, p.arena.Expr(operand).Span())
	return p.arena.AllocExpr(ast.UnaryExpr{Operator: op, Operand: operand, Sp: span})
}

// parseParenOrTuple disambiguates `(expr)` grouping from `(e1, e2, ...)`
// tuple construction, including the single-element-tuple case `(e,)`.
func (p *parser) parseParenOrTuple() ast.ExprRef {
	open := p.stream.Consume()
	if p.at(token.RPAREN) {
		closeTok := p.stream.Consume()
		return p.arena.AllocExpr(ast.TupleExpr{Sp: token.Cover(open.Span, closeTok.Span)})
	}

	first := p.parseExpression(0)
	if !p.at(token.COMMA) {
		closeTok, _ := p.expect(token.RPAREN, "')'")
		return p.arena.AllocExpr(ast.GroupedExpr{Inner: first, Sp: token.Cover(open.Span, closeTok.Span)})
	}

	elements := []ast.ExprRef{first}
	for p.at(token.COMMA) {
		p.stream.Consume()
		if p.at(token.RPAREN) {
			break
		}
		elements = append(elements, p.parseExpression(0))
	}
	closeTok, _ := p.expect(token.RPAREN, "')'")
	return p.arena.AllocExpr(ast.TupleExpr{Elements: elements, Sp: token.Cover(open.Span, closeTok.Span)})
}

func (p *parser) parseArrayLiteral() ast.ExprRef {
	open := p.stream.Consume()
	var elements []ast.ExprRef
	for !p.at(token.RBRACKET) && !p.done() {
		elements = append(elements, p.parseExpression(0))
		if p.at(token.COMMA) {
			p.stream.Consume()
			continue
		}
		break
	}
	closeTok, _ := p.expect(token.RBRACKET, "']'")
	return p.arena.AllocExpr(ast.ArrayExpr{Elements: elements, Sp: token.Cover(open.Span, closeTok.Span)})
}

func (p *parser) parseIfExpr() ast.ExprRef {
	start := p.stream.Consume() // 'if'
	cond := p.parseExpression(0)
	thenBlock := p.parseBlock(false, false, "")
	var elseBlock ast.BlockRef
	var elseIf ast.ExprRef
	end := p.arena.Block(thenBlock).Sp
	if p.at(token.ELSE) {
		p.stream.Consume()
		if p.at(token.IF) {
			elseIf = p.parseIfExpr()
			end = p.arena.Expr(elseIf).Span()
		} else {
			elseBlock = p.parseBlock(false, false, "")
			end = p.arena.Block(elseBlock).Sp
		}
	}
	return p.arena.AllocExpr(ast.IfExpr{
		Condition: cond, Then: thenBlock, Else: elseBlock, ElseIf: elseIf,
		Sp: token.Cover(start.Span, end),
	})
}

func (p *parser) parseMatchExpr() ast.ExprRef {
	start := p.stream.Consume() // 'match'
	scrutinee := p.parseExpression(0)

	braced := p.at(token.LBRACE)
	if braced {
		p.stream.Consume()
	} else {
		p.skipNewlines()
		p.expectIndent()
	}

	var arms []ast.MatchArm
	for {
		p.skipNewlines()
		if p.done() {
			break
		}
		if braced && p.at(token.RBRACE) {
			break
		}
		if !braced && (p.at(token.DEDENT) || p.stream.IsAtEnd()) {
			break
		}
		arms = append(arms, p.parseMatchArm())
		if p.at(token.COMMA) {
			p.stream.Consume()
		}
	}

	var end token.Span
	if braced {
		closeTok, _ := p.expect(token.RBRACE, "'}'")
		end = closeTok.Span
	} else {
		dedentTok, _ := p.expect(token.DEDENT, "dedent to close match")
		end = dedentTok.Span
	}

	return p.arena.AllocExpr(ast.MatchExpr{Scrutinee: scrutinee, Arms: arms, Sp: token.Cover(start.Span, end)})
}

func (p *parser) parseMatchArm() ast.MatchArm {
	start := p.stream.Peek().Span
	pat := p.parsePattern(0)
	var guard ast.ExprRef
	if p.at(token.IF) {
		p.stream.Consume()
		guard = p.parseExpression(0)
	}
	p.expect(token.FAT_ARROW, "'=>'")
	body := p.parseExpression(0)
	return ast.MatchArm{Pattern: pat, Guard: guard, Body: body, Sp: token.Cover(start, p.arena.Expr(body).Span())}
}

func (p *parser) parseModifiedBlockExpr() ast.ExprRef {
	start := p.stream.Peek()
	isUnsafe, isAsync := false, false
	for p.at(token.UNSAFE) || p.at(token.ASYNC) {
		if p.at(token.UNSAFE) {
			isUnsafe = true
		} else {
			isAsync = true
		}
		p.stream.Consume()
	}
	block := p.parseBlock(isUnsafe, isAsync, "")
	return p.arena.AllocExpr(ast.BlockExpr{Block: block, Sp: token.Cover(start.Span, p.arena.Block(block).Sp)})
}

func (p *parser) parseBlockExpr(isUnsafe, isAsync, isTry bool, label string) ast.ExprRef {
	block := p.parseBlock(isUnsafe, isAsync, label)
	return p.arena.AllocExpr(ast.BlockExpr{Block: block, Sp: p.arena.Block(block).Sp})
}

// isSyncToken reports whether k is one of the panic-mode synchronization
// tokens (see recovery.go); parsePrefix's error path must not blindly
// consume one, or statement-level recovery can't resume there.
func (p *parser) isSyncToken(k token.Kind) bool {
	return syncSet[k]
}
