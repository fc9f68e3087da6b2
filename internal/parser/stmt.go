package parser

import (
	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// parseBlock parses either a `{ ... }` block or an INDENT/DEDENT-delimited
// suite, detecting the style from the next token. Per §7, once a function
// (or other block-bearing construct) commits to one style its nested
// blocks must not switch to the other — MixedBlockStyles is reported but
// parsing continues on a best-effort basis.
func (p *parser) parseBlock(isUnsafe, isAsync bool, label string) ast.BlockRef {
	p.skipNewlines()

	braced := p.at(token.LBRACE)
	indented := p.at(token.INDENT)

	if !braced && !indented {
		tok := p.stream.Peek()
		p.errorfSuggest(tok.Span, diag.CodeMissingToken, "add '{' or indent the next line to open a block", "expected a block ('{' or an indented suite), got %s", tok)
		return p.arena.AllocBlock(ast.Block{Sp: tok.Span})
	}

	style := blockStyleBraced
	if indented {
		style = blockStyleIndented
	}
	if p.blockStyle != blockStyleUnset && p.blockStyle != style {
		p.errorfSuggest(p.stream.Peek().Span, diag.CodeMixedBlockStyles,
			"use the same block style ('{'...'}' or indentation) as the enclosing function",
			"this block mixes brace-delimited and indentation-delimited styles within the same function")
	}
	prevStyle := p.blockStyle
	p.blockStyle = style
	defer func() { p.blockStyle = prevStyle }()

	open := p.stream.Consume()
	var stmts []ast.StmtRef
	if braced {
		p.skipNewlines()
		for !p.at(token.RBRACE) && !p.done() {
			stmts = append(stmts, p.parseStatement())
			p.skipNewlines()
		}
		closeTok, _ := p.expect(token.RBRACE, "'}'")
		return p.arena.AllocBlock(ast.Block{
			Stmts: stmts, IsBraced: true, IsUnsafe: isUnsafe, IsAsync: isAsync, Label: label,
			Sp: token.Cover(open.Span, closeTok.Span),
		})
	}

	for !p.at(token.DEDENT) && !p.done() {
		stmts = append(stmts, p.parseStatement())
		p.skipNewlines()
	}
	closeTok, _ := p.expect(token.DEDENT, "dedent to close block")
	return p.arena.AllocBlock(ast.Block{
		Stmts: stmts, IsBraced: false, IsUnsafe: isUnsafe, IsAsync: isAsync, Label: label,
		Sp: token.Cover(open.Span, closeTok.Span),
	})
}

func (p *parser) expectIndent() {
	if _, ok := p.expect(token.INDENT, "an indented suite"); !ok {
		return
	}
}

// parseStatement parses a single statement. A malformed statement yields
// Recovered* placeholder nodes from the productions it calls; parseStatement
// itself does not call syncTo, so it does not skip ahead to a
// synchronization token.
func (p *parser) parseStatement() ast.StmtRef {
	exit, ok := p.enterRecursion()
	defer exit()
	if !ok {
		return p.arena.AllocStmt(ast.RecoveredStmt{Synthetic: true, Sp: p.stream.Peek().Span})
	}

	tok := p.stream.Peek()
	switch tok.Kind {
	case token.LET, token.VAR:
		return p.parseVariableStatement()
	case token.FN, token.DATA, token.EXTERN:
		item := p.parseItem()
		return p.arena.AllocStmt(ast.ItemStmt{Item: item, Sp: p.arena.Item(item).Span()})
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		p.stream.Consume()
		label := ""
		if p.at(token.IDENT) {
			label = p.stream.Consume().Lexeme
		}
		return p.arena.AllocStmt(ast.ContinueStmt{Label: label, Sp: tok.Span})
	case token.WHILE:
		return p.parseWhileStatement("")
	case token.FOR:
		return p.parseForStatement("")
	default:
		if tok.Kind == token.IDENT && p.stream.PeekAhead(1).Kind == token.COLON {
			return p.parseLabeledStatement()
		}
		return p.parseExprStatement()
	}
}

func (p *parser) parseVariableStatement() ast.StmtRef {
	start := p.stream.Consume() // let/var
	mutable := start.Kind == token.VAR

	pat := p.parsePatternWithGuard()

	var typeRef ast.TypeRef
	if p.at(token.COLON) {
		p.stream.Consume()
		typeRef = p.parseType()
	}

	var initExpr ast.ExprRef
	if p.at(token.EQ) {
		p.stream.Consume()
		initExpr = p.parseExpression(0)
	}

	end := p.arena.Pattern(pat).Span()
	if initExpr.Valid() {
		end = p.arena.Expr(initExpr).Span()
	}
	decl := ast.VariableDecl{Mutable: mutable, Pattern: pat, Type: typeRef, Init: initExpr, Sp: token.Cover(start.Span, end)}
	itemRef := p.arena.AllocItem(decl)
	return p.arena.AllocStmt(ast.ItemStmt{Item: itemRef, Sp: decl.Sp})
}

func (p *parser) parseReturnStatement() ast.StmtRef {
	start := p.stream.Consume()
	var value ast.ExprRef
	end := start.Span
	if !p.atStatementTerminator() {
		value = p.parseExpression(0)
		end = p.arena.Expr(value).Span()
	}
	return p.arena.AllocStmt(ast.ReturnStmt{Value: value, Sp: token.Cover(start.Span, end)})
}

func (p *parser) parseBreakStatement() ast.StmtRef {
	start := p.stream.Consume()
	label := ""
	if p.at(token.IDENT) {
		label = p.stream.Consume().Lexeme
	}
	var value ast.ExprRef
	end := start.Span
	if !p.atStatementTerminator() {
		value = p.parseExpression(0)
		end = p.arena.Expr(value).Span()
	}
	return p.arena.AllocStmt(ast.BreakStmt{Label: label, Value: value, Sp: token.Cover(start.Span, end)})
}

func (p *parser) parseLabeledStatement() ast.StmtRef {
	label := p.stream.Consume().Lexeme
	p.stream.Consume() // ':'
	switch p.peekKind() {
	case token.WHILE:
		return p.parseWhileStatement(label)
	case token.FOR:
		return p.parseForStatement(label)
	default:
		tok := p.stream.Peek()
		p.errorfSuggest(tok.Span, diag.CodeUnexpectedToken, "follow the label with 'while' or 'for'", "expected 'while' or 'for' after label, got %s", tok)
		return p.arena.AllocStmt(ast.RecoveredStmt{Synthetic: true, Sp: tok.Span})
	}
}

func (p *parser) parseWhileStatement(label string) ast.StmtRef {
	start := p.stream.Consume() // 'while'
	cond := p.parseExpression(0)
	body := p.parseBlock(false, false, label)
	return p.arena.AllocStmt(ast.WhileStmt{Label: label, Condition: cond, Body: body, Sp: token.Cover(start.Span, p.arena.Block(body).Sp)})
}

func (p *parser) parseForStatement(label string) ast.StmtRef {
	start := p.stream.Consume() // 'for'
	pat := p.parsePatternWithGuard()
	p.expect(token.IN, "'in'")
	iterable := p.parseExpression(0)
	body := p.parseBlock(false, false, label)
	return p.arena.AllocStmt(ast.ForStmt{Label: label, Pattern: pat, Iterable: iterable, Body: body, Sp: token.Cover(start.Span, p.arena.Block(body).Sp)})
}

func (p *parser) parseExprStatement() ast.StmtRef {
	start := p.stream.Peek().Span
	expr := p.parseExpression(0)
	end := p.arena.Expr(expr).Span()
	if p.at(token.SEMI) {
		end = p.stream.Consume().Span
	}
	return p.arena.AllocStmt(ast.ExprStmt{Expr: expr, Sp: token.Cover(start, end)})
}

func (p *parser) atStatementTerminator() bool {
	switch p.peekKind() {
	case token.NEWLINE, token.SEMI, token.DEDENT, token.RBRACE, token.EOF:
		return true
	default:
		return false
	}
}
