package lexer

import "github.com/kestrel-lang/kestrelc/internal/token"

// scanLineComment discards a `// ...` comment up to (not including) the
// terminating newline. No token is produced.
func (l *lexer) scanLineComment() {
	l.advance() // first '/'
	l.advance() // second '/'
	for l.ch != '\n' && l.ch != eofRune {
		l.advance()
	}
}

// scanBlockComment discards a `/* ... */` comment, tracking nesting depth.
// An unterminated comment at EOF yields an ERROR token whose span covers
// from the opening delimiter to EOF.
func (l *lexer) scanBlockComment(start token.Position) (token.Token, bool) {
	l.advance() // '/'
	l.advance() // '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.ch == eofRune:
			return l.errorToken(l.spanFrom(start), "unterminated block comment"), true
		case l.ch == '/' && l.peekByte() == '*':
			l.advance()
			l.advance()
			depth++
		case l.ch == '*' && l.peekByte() == '/':
			l.advance()
			l.advance()
			depth--
		default:
			l.advance()
		}
	}
	return token.Token{}, false
}
