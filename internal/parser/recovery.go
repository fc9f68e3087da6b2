package parser

import "github.com/kestrel-lang/kestrelc/internal/token"

// The synchronization sets panic-mode recovery resumes at, grounded on the
// teacher's BracketTracker-driven resumption (runtime/parser/errors.go)
// generalized from brackets to the full statement/expression/block grammar.
// syncTo consumes at least one token unless the current token is already in
// the target set; a sync token it stops at is left unconsumed for the
// enclosing production.

var statementStartSet = map[token.Kind]bool{
	token.LET: true, token.VAR: true, token.FN: true, token.DATA: true,
	token.EXTERN: true, token.RETURN: true, token.BREAK: true, token.CONTINUE: true,
	token.WHILE: true, token.FOR: true, token.IF: true, token.MATCH: true,
	token.PUB: true, token.UNSAFE: true, token.ASYNC: true, token.STATIC: true,
}

var expressionStartSet = map[token.Kind]bool{
	token.IDENT: true, token.INTEGER: true, token.FLOAT: true, token.STRING: true,
	token.RAW_STRING: true, token.MULTILINE_STRING: true, token.CHAR: true,
	token.TRUE: true, token.FALSE: true, token.LPAREN: true, token.LBRACKET: true,
	token.MINUS: true, token.BANG: true, token.TILDE: true, token.AMP: true,
	token.IF: true, token.MATCH: true,
}

var expressionTerminatorSet = map[token.Kind]bool{
	token.SEMI: true, token.NEWLINE: true, token.COMMA: true,
	token.RPAREN: true, token.RBRACKET: true, token.RBRACE: true,
}

var blockBoundarySet = map[token.Kind]bool{
	token.LBRACE: true, token.RBRACE: true, token.INDENT: true, token.DEDENT: true,
}

// syncSet is the union consulted by parsePrefix/parseType/parsePatternAtom
// before consuming a token on the error path, so a genuinely-unexpected
// boundary token (like a stray '}') is left for an enclosing parse to
// consume rather than silently swallowed.
var syncSet = unionSets(statementStartSet, expressionTerminatorSet, blockBoundarySet, map[token.Kind]bool{token.EOF: true})

func unionSets(sets ...map[token.Kind]bool) map[token.Kind]bool {
	out := map[token.Kind]bool{}
	for _, s := range sets {
		for k, v := range s {
			if v {
				out[k] = true
			}
		}
	}
	return out
}

// syncTo advances the stream until it reaches a token in set, EOF, or the
// recovery-hop budget is exhausted — whichever comes first. It always
// consumes at least the current token unless that token is itself already
// in set, guaranteeing forward progress.
func (p *parser) syncTo(set map[token.Kind]bool) {
	if set[p.peekKind()] || p.stream.IsAtEnd() {
		return
	}
	p.stream.Consume()
	p.hops++
	for !set[p.peekKind()] && !p.stream.IsAtEnd() && p.hops < p.cfg.maxRecoveryHops {
		p.stream.Consume()
		p.hops++
	}
}
