package parser

import (
	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

// Pattern binding powers, fixed by the grammar rather than driven by a
// table: `|` alternation loosest, then `@` bindings, then ranges, then
// atoms. parsePattern(level) only descends through levels >= level.
const (
	patLevelOr = iota
	patLevelBinding
	patLevelRange
	patLevelAtom
)

// parsePatternWithGuard parses a full pattern followed by an optional
// `if expr` guard (§4.7's `p if expr` form), producing a GuardPattern. Used
// at `let`/`var`/`for` pattern positions — match arms carry their guard on
// MatchArm.Guard instead (see ast.GuardPattern's doc comment), so
// parseMatchArm calls parsePattern directly rather than this wrapper.
func (p *parser) parsePatternWithGuard() ast.PatternRef {
	pat := p.parsePattern(0)
	if !p.at(token.IF) {
		return pat
	}
	p.stream.Consume()
	cond := p.parseExpression(0)
	span := token.Cover(p.arena.Pattern(pat).Span(), p.arena.Expr(cond).Span())
	return p.arena.AllocPattern(ast.GuardPattern{Pattern: pat, Condition: cond, Sp: span})
}

func (p *parser) parsePattern(level int) ast.PatternRef {
	exit, ok := p.enterRecursion()
	defer exit()
	if !ok {
		return p.arena.AllocPattern(ast.RecoveredPattern{Synthetic: true, Sp: p.stream.Peek().Span})
	}

	if level <= patLevelOr {
		first := p.parsePattern(patLevelBinding)
		if !p.at(token.PIPE) {
			return first
		}
		alts := []ast.PatternRef{first}
		for p.at(token.PIPE) {
			p.stream.Consume()
			alts = append(alts, p.parsePattern(patLevelBinding))
		}
		span := token.Cover(p.arena.Pattern(first).Span(), p.arena.Pattern(alts[len(alts)-1]).Span())
		return p.arena.AllocPattern(ast.OrPattern{Alternatives: alts, Sp: span})
	}

	if level <= patLevelBinding {
		if p.at(token.IDENT) && p.stream.PeekAhead(1).Kind == token.AT {
			name := p.stream.Consume()
			p.stream.Consume() // '@'
			inner := p.parsePattern(patLevelRange)
			return p.arena.AllocPattern(ast.BindingPattern{Name: name.Lexeme, Pattern: inner, Sp: token.Cover(name.Span, p.arena.Pattern(inner).Span())})
		}
		return p.parsePattern(patLevelRange)
	}

	if level <= patLevelRange {
		atom := p.parsePattern(patLevelAtom)
		if p.at(token.DOTDOT) || p.at(token.DOTDOTEQ) {
			inclusive := p.at(token.DOTDOTEQ)
			p.stream.Consume()
			hi := p.parsePatternRangeBound()
			lo := p.patternAsExpr(atom)
			span := token.Cover(p.arena.Pattern(atom).Span(), p.arena.Expr(hi).Span())
			return p.arena.AllocPattern(ast.RangePattern{Low: lo, High: hi, Inclusive: inclusive, Sp: span})
		}
		return atom
	}

	return p.parsePatternAtom()
}

// parsePatternRangeBound parses the upper bound of a range pattern as a
// plain expression (only literals and paths are meaningful there).
func (p *parser) parsePatternRangeBound() ast.ExprRef {
	return p.parseExpression(bpUnary)
}

// patternAsExpr extracts the expression form of a literal/identifier
// pattern used as a range's lower bound. Anything else is a malformed
// range and yields a recovered expression.
func (p *parser) patternAsExpr(pat ast.PatternRef) ast.ExprRef {
	switch n := p.arena.Pattern(pat).(type) {
	case ast.LiteralPattern:
		return p.arena.AllocExpr(ast.LiteralExpr{Value: n.Value, Sp: n.Sp})
	case ast.IdentifierPattern:
		return p.arena.AllocExpr(ast.IdentifierExpr{Name: n.Name, Sp: n.Sp})
	default:
		return p.arena.AllocExpr(ast.RecoveredExpr{Synthetic: true, Sp: n.Span()})
	}
}

func (p *parser) parsePatternAtom() ast.PatternRef {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.INTEGER, token.FLOAT, token.STRING, token.RAW_STRING, token.MULTILINE_STRING, token.CHAR:
		p.stream.Consume()
		return p.arena.AllocPattern(ast.LiteralPattern{Value: tok.Literal, Sp: tok.Span})
	case token.TRUE:
		p.stream.Consume()
		return p.arena.AllocPattern(ast.LiteralPattern{Value: true, Sp: tok.Span})
	case token.FALSE:
		p.stream.Consume()
		return p.arena.AllocPattern(ast.LiteralPattern{Value: false, Sp: tok.Span})
	case token.MINUS:
		p.stream.Consume()
		inner := p.parsePatternAtom()
		lit, ok := p.arena.Pattern(inner).(ast.LiteralPattern)
		if !ok {
			return inner
		}
		negated := negateLiteral(lit.Value)
		return p.arena.AllocPattern(ast.LiteralPattern{Value: negated, Sp: token.Cover(tok.Span, lit.Sp)})

	case token.IDENT:
		if tok.Lexeme == "_" {
			p.stream.Consume()
			return p.arena.AllocPattern(ast.WildcardPattern{Sp: tok.Span})
		}
		name := p.stream.Consume()
		if p.at(token.LPAREN) || p.at(token.LBRACE) {
			return p.parseDataClassPattern(name)
		}
		return p.arena.AllocPattern(ast.IdentifierPattern{Name: name.Lexeme, Sp: name.Span})

	case token.LBRACKET:
		return p.parseSlicePattern()

	default:
		p.errorfSuggest(tok.Span, diag.CodeUnexpectedToken, "add a binding name, literal, or '[' to start a pattern here", "expected a pattern, got %s", tok)
		if !p.isSyncToken(tok.Kind) {
			p.stream.Consume()
		}
		return p.arena.AllocPattern(ast.RecoveredPattern{Synthetic: true, Sp: tok.Span})
	}
}

func negateLiteral(v any) any {
	switch n := v.(type) {
	case int64:
		return -n
	case float64:
		return -n
	default:
		return v
	}
}

func (p *parser) parseDataClassPattern(name token.Token) ast.PatternRef {
	braced := p.at(token.LBRACE)
	open := p.stream.Consume()
	var fields []ast.FieldPattern
	closeKind := token.RPAREN
	if braced {
		closeKind = token.RBRACE
	}
	for !p.at(closeKind) && !p.done() {
		if braced {
			fieldName, _ := p.expect(token.IDENT, "field name")
			p.expect(token.COLON, "':'")
			sub := p.parsePattern(0)
			fields = append(fields, ast.FieldPattern{Name: fieldName.Lexeme, Pattern: sub, Sp: fieldName.Span})
		} else {
			sub := p.parsePattern(0)
			fields = append(fields, ast.FieldPattern{Pattern: sub, Sp: p.arena.Pattern(sub).Span()})
		}
		if p.at(token.COMMA) {
			p.stream.Consume()
			continue
		}
		break
	}
	closeTok, _ := p.expect(closeKind, "closing delimiter")
	_ = open
	return p.arena.AllocPattern(ast.DataClassPattern{Name: name.Lexeme, Fields: fields, Sp: token.Cover(name.Span, closeTok.Span)})
}

// parseSlicePattern parses `[p1, p2, name @ .., p3]` per §4.7: the rest
// binding is name-first (`name @ ..`), not `.. name` — the name, when
// present, is the element that precedes '@', mirroring the general
// `name @ pattern` binding form parsePattern(patLevelBinding) already
// handles for every other pattern kind.
func (p *parser) parseSlicePattern() ast.PatternRef {
	open := p.stream.Consume()
	var elements []ast.PatternRef
	restAt := -1
	restName := ""
	for !p.at(token.RBRACKET) && !p.done() {
		switch {
		case p.at(token.IDENT) && p.stream.PeekAhead(1).Kind == token.AT && p.stream.PeekAhead(2).Kind == token.DOTDOT:
			restAt = len(elements)
			restName = p.stream.Consume().Lexeme // name
			p.stream.Consume()                   // '@'
			p.stream.Consume()                   // '..'
		case p.at(token.DOTDOT):
			restAt = len(elements)
			p.stream.Consume()
		default:
			elements = append(elements, p.parsePattern(0))
		}
		if p.at(token.COMMA) {
			p.stream.Consume()
			continue
		}
		break
	}
	closeTok, _ := p.expect(token.RBRACKET, "']'")
	return p.arena.AllocPattern(ast.SlicePattern{Elements: elements, RestAt: restAt, RestName: restName, Sp: token.Cover(open.Span, closeTok.Span)})
}
