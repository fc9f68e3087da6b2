package parser

import (
	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// parseItem parses one top-level (or nested, via ItemStmt) declaration:
// attributes and modifiers, then the declaration keyword itself.
func (p *parser) parseItem() ast.ItemRef {
	exit, ok := p.enterRecursion()
	defer exit()
	if !ok {
		return p.arena.AllocItem(ast.RecoveredItem{Synthetic: true, Sp: p.stream.Peek().Span})
	}

	start := p.stream.Peek().Span
	attrs := p.parseAttributes()
	mods := p.parseModifiers()

	switch p.peekKind() {
	case token.FN:
		return p.parseFunctionDecl(start, attrs, mods)
	case token.DATA:
		return p.parseDataClassDecl(start, attrs, mods)
	case token.EXTERN:
		return p.parseExternBlock(start)
	case token.LET, token.VAR:
		return p.parseVariableItem(start, attrs, mods)
	default:
		tok := p.stream.Peek()
		p.errorfSuggest(tok.Span, diag.CodeUnexpectedToken, "start the item with 'fn', 'data', 'let', 'var', or 'extern'", "expected a declaration (fn/data/let/var/extern), got %s", tok)
		p.syncTo(statementStartSet)
		return p.arena.AllocItem(ast.RecoveredItem{Synthetic: true, Sp: token.Cover(start, tok.Span)})
	}
}

// modifierRank fixes the only order §4.5 accepts: `pub unsafe async static`.
// Any later modifier ranked lower than one already seen is an error.
func modifierRank(k token.Kind) int {
	switch k {
	case token.PUB:
		return 0
	case token.UNSAFE:
		return 1
	case token.ASYNC:
		return 2
	case token.STATIC:
		return 3
	default:
		return -1
	}
}

func (p *parser) parseModifiers() ast.Modifiers {
	var m ast.Modifiers
	lastRank := -1
	for {
		tok := p.stream.Peek()
		rank := modifierRank(tok.Kind)
		if rank < 0 {
			return m
		}
		if rank < lastRank {
			p.errorfSuggest(tok.Span, diag.CodeUnexpectedToken,
				"reorder modifiers as 'pub unsafe async static'",
				"modifier %s is out of order; modifiers must appear as 'pub unsafe async static'", tok)
		} else {
			lastRank = rank
		}
		switch tok.Kind {
		case token.PUB:
			m.Pub = true
		case token.UNSAFE:
			m.Unsafe = true
		case token.ASYNC:
			m.Async = true
		case token.STATIC:
			m.Static = true
		}
		p.stream.Consume()
	}
}

func (p *parser) parseFunctionDecl(start token.Span, attrs ast.AttrsRef, mods ast.Modifiers) ast.ItemRef {
	p.stream.Consume() // 'fn'
	name, _ := p.expect(token.IDENT, "function name")

	generics := p.parseGenericParamsOpt()

	p.expect(token.LPAREN, "'('")
	var params []ast.Parameter
	for !p.at(token.RPAREN) && !p.done() {
		params = append(params, p.parseParameter())
		if p.at(token.COMMA) {
			p.stream.Consume()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "')'")

	var retType ast.TypeRef
	if p.at(token.ARROW) {
		p.stream.Consume()
		retType = p.parseType()
	}

	where := p.parseWhereClauseOpt()
	generics.Where = append(generics.Where, where...)

	body := p.parseBlock(mods.Unsafe, mods.Async, "")

	decl := ast.FunctionDecl{
		Modifiers: mods, Attributes: attrs, Name: name.Lexeme, Generics: generics,
		Params: params, ReturnType: retType, Body: body,
		Sp: token.Cover(start, p.arena.Block(body).Sp),
	}
	return p.arena.AllocItem(decl)
}

// parseParameter parses `name: Type` or a bare `name` with no annotation.
// Per §8 scenario 3, an untyped parameter is not an error: its Type is an
// ast.InferredType placeholder rather than an invalid TypeRef, so later
// passes can tell "inferred" apart from "missing".
func (p *parser) parseParameter() ast.Parameter {
	name, _ := p.expect(token.IDENT, "parameter name")
	var typeRef ast.TypeRef
	if p.at(token.COLON) {
		p.stream.Consume()
		typeRef = p.parseType()
	} else {
		typeRef = p.arena.AllocType(ast.InferredType{Sp: name.Span})
	}
	return ast.Parameter{Name: name.Lexeme, Type: typeRef, Sp: name.Span}
}

func (p *parser) parseVariableItem(start token.Span, attrs ast.AttrsRef, mods ast.Modifiers) ast.ItemRef {
	stmt := p.parseVariableStatement()
	decl := p.arena.Stmt(stmt).(ast.ItemStmt)
	vd := p.arena.Item(decl.Item).(ast.VariableDecl)
	vd.Modifiers = mods
	vd.Attributes = attrs
	vd.Sp = token.Cover(start, vd.Sp)
	return p.arena.AllocItem(vd)
}

func (p *parser) parseDataClassDecl(start token.Span, attrs ast.AttrsRef, mods ast.Modifiers) ast.ItemRef {
	p.stream.Consume() // 'data'
	name, _ := p.expect(token.IDENT, "data class name")
	generics := p.parseGenericParamsOpt()

	var fields []ast.Field
	var end token.Span = name.Span

	braced := p.at(token.LBRACE)
	parenthesized := p.at(token.LPAREN)
	switch {
	case braced:
		p.stream.Consume()
		for !p.at(token.RBRACE) && !p.done() {
			fields = append(fields, p.parseField())
			if p.at(token.COMMA) {
				p.stream.Consume()
				continue
			}
			break
		}
		closeTok, _ := p.expect(token.RBRACE, "'}'")
		end = closeTok.Span
	case parenthesized:
		p.stream.Consume()
		for !p.at(token.RPAREN) && !p.done() {
			fields = append(fields, p.parseField())
			if p.at(token.COMMA) {
				p.stream.Consume()
				continue
			}
			break
		}
		closeTok, _ := p.expect(token.RPAREN, "')'")
		end = closeTok.Span
	}

	decl := ast.DataClassDecl{
		Modifiers: mods, Attributes: attrs, Name: name.Lexeme, Generics: generics,
		Fields: fields, Sp: token.Cover(start, end),
	}
	return p.arena.AllocItem(decl)
}

func (p *parser) parseField() ast.Field {
	name, _ := p.expect(token.IDENT, "field name")
	p.expect(token.COLON, "':'")
	typeRef := p.parseType()
	return ast.Field{Name: name.Lexeme, Type: typeRef, Sp: token.Cover(name.Span, p.arena.Type(typeRef).Span())}
}

func (p *parser) parseExternBlock(start token.Span) ast.ItemRef {
	p.stream.Consume() // 'extern'
	abi := ""
	if p.at(token.STRING) {
		abi, _ = p.stream.Consume().Literal.(string)
	}
	p.expect(token.LBRACE, "'{'")

	var items []ast.ExternItem
	p.skipNewlines()
	for !p.at(token.RBRACE) && !p.done() {
		items = append(items, p.parseExternItem())
		p.skipNewlines()
	}
	closeTok, _ := p.expect(token.RBRACE, "'}'")

	return p.arena.AllocItem(ast.ExternBlock{ABI: abi, Items: items, Sp: token.Cover(start, closeTok.Span)})
}

func (p *parser) parseExternItem() ast.ExternItem {
	if p.at(token.FN) {
		start := p.stream.Consume()
		name, _ := p.expect(token.IDENT, "function name")
		p.expect(token.LPAREN, "'('")
		var params []ast.Parameter
		for !p.at(token.RPAREN) && !p.done() {
			params = append(params, p.parseParameter())
			if p.at(token.COMMA) {
				p.stream.Consume()
				continue
			}
			break
		}
		p.expect(token.RPAREN, "')'")
		var retType ast.TypeRef
		end := name.Span
		if p.at(token.ARROW) {
			p.stream.Consume()
			retType = p.parseType()
			end = p.arena.Type(retType).Span()
		}
		return ast.ExternFunction{Name: name.Lexeme, Params: params, ReturnType: retType, Sp: token.Cover(start.Span, end)}
	}

	start := p.stream.Peek()
	if p.at(token.STATIC) {
		p.stream.Consume()
	}
	name, _ := p.expect(token.IDENT, "variable name")
	p.expect(token.COLON, "':'")
	typeRef := p.parseType()
	return ast.ExternVariable{Name: name.Lexeme, Type: typeRef, Sp: token.Cover(start.Span, p.arena.Type(typeRef).Span())}
}

func (p *parser) parseGenericParamsOpt() ast.GenericParams {
	var gp ast.GenericParams
	if !p.at(token.LT) {
		return gp
	}
	p.stream.Consume()
	for !p.at(token.GT) && !p.done() {
		name, _ := p.expect(token.IDENT, "generic parameter name")
		param := ast.GenericParam{Name: name.Lexeme, Sp: name.Span}
		if p.at(token.COLON) {
			p.stream.Consume()
			param.Bounds = append(param.Bounds, p.parseTypeBound())
			for p.at(token.PLUS) {
				p.stream.Consume()
				param.Bounds = append(param.Bounds, p.parseTypeBound())
			}
		}
		gp.Params = append(gp.Params, param)
		if p.at(token.COMMA) {
			p.stream.Consume()
			continue
		}
		break
	}
	p.expect(token.GT, "'>'")
	return gp
}

func (p *parser) parseTypeBound() ast.TypeBound {
	name, _ := p.expect(token.IDENT, "trait bound name")
	return ast.TypeBound{Name: name.Lexeme, Sp: name.Span}
}

func (p *parser) parseWhereClauseOpt() []ast.WhereClause {
	if !p.at(token.WHERE) {
		return nil
	}
	p.stream.Consume()
	var clauses []ast.WhereClause
	for {
		subject := p.parseType()
		p.expect(token.COLON, "':'")
		bounds := []ast.TypeBound{p.parseTypeBound()}
		for p.at(token.PLUS) {
			p.stream.Consume()
			bounds = append(bounds, p.parseTypeBound())
		}
		clauses = append(clauses, ast.WhereClause{Subject: subject, Bounds: bounds, Sp: p.arena.Type(subject).Span()})
		if p.at(token.COMMA) {
			p.stream.Consume()
			continue
		}
		break
	}
	return clauses
}
