package lexer

import "github.com/kestrel-lang/kestrelc/internal/token"

// threeCharOps and twoCharOps are checked longest-match-first, mirroring the
// teacher's TwoCharTokens lookup table approach (runtime/lexer/tokens.go)
// extended with a third tier for this language's richer operator set.
var threeCharOps = map[string]token.Kind{
	"<<=": token.SHL_EQ,
	">>=": token.SHR_EQ,
	"..=": token.DOTDOTEQ,
}

var twoCharOps = map[string]token.Kind{
	"->": token.ARROW,
	"=>": token.FAT_ARROW,
	"::": token.COLONCOLON,
	"??": token.COALESCE,
	"==": token.EQ_EQ,
	"!=": token.BANG_EQ,
	"<=": token.LT_EQ,
	">=": token.GT_EQ,
	"&&": token.AND_AND,
	"||": token.OR_OR,
	"<<": token.SHL,
	">>": token.SHR,
	"+=": token.PLUS_EQ,
	"-=": token.MINUS_EQ,
	"*=": token.STAR_EQ,
	"/=": token.SLASH_EQ,
	"%=": token.PERCENT_EQ,
	"&=": token.AMP_EQ,
	"|=": token.PIPE_EQ,
	"^=": token.CARET_EQ,
	"..": token.DOTDOT,
}

var oneCharOps = map[rune]token.Kind{
	'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH, '%': token.PERCENT,
	'<': token.LT, '>': token.GT, '=': token.EQ, '!': token.BANG,
	'&': token.AMP, '|': token.PIPE, '^': token.CARET, '~': token.TILDE,
	'?': token.QUESTION, '.': token.DOT, ',': token.COMMA, ':': token.COLON,
	';': token.SEMI, '@': token.AT, '#': token.HASH, '\'': token.QUOTE,
	'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
	'[': token.LBRACKET, ']': token.RBRACKET,
}

func (l *lexer) scanOperator(start token.Position) token.Token {
	if len(l.src)-l.offset >= 3 {
		lexeme := l.src[l.offset : l.offset+3]
		if kind, ok := threeCharOps[lexeme]; ok {
			l.advance()
			l.advance()
			l.advance()
			return token.Token{Kind: kind, Lexeme: lexeme, Span: l.spanFrom(start)}
		}
	}
	if len(l.src)-l.offset >= 2 {
		lexeme := l.src[l.offset : l.offset+2]
		if kind, ok := twoCharOps[lexeme]; ok {
			l.advance()
			l.advance()
			return token.Token{Kind: kind, Lexeme: lexeme, Span: l.spanFrom(start)}
		}
	}
	if kind, ok := oneCharOps[l.ch]; ok {
		lexeme := string(l.ch)
		l.advance()
		return token.Token{Kind: kind, Lexeme: lexeme, Span: l.spanFrom(start)}
	}

	bad := l.ch
	l.advance()
	return l.errorToken(l.spanFrom(start), "unexpected character "+quoteRune(bad))
}

func quoteRune(r rune) string {
	if r == eofRune {
		return "<eof>"
	}
	return "'" + string(r) + "'"
}
