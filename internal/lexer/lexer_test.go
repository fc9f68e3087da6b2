package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kestrel-lang/kestrelc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

// TestLexNeverFails is the universal property that the lexer always
// terminates with exactly one EOF token and never panics, regardless of
// how malformed the input is.
func TestLexNeverFails(t *testing.T) {
	inputs := []string{
		"", "   ", "\n\n\n", "@@@", "\"unterminated",
		"/* unterminated", "'", "''", "0x", "1.2.3", "r#\"no close",
	}
	for _, in := range inputs {
		toks := Lex(in)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("Lex(%q): expected a trailing EOF token, got %v", in, kinds(toks))
		}
		eofCount := 0
		for _, tok := range toks {
			if tok.Kind == token.EOF {
				eofCount++
			}
		}
		if eofCount != 1 {
			t.Errorf("Lex(%q): expected exactly one EOF token, got %d", in, eofCount)
		}
	}
}

// TestHashRawStringRoundTrip is scenario 1 from §8: a raw string using two
// '#' delimiters, containing an embedded quote and a lone '#', round-trips
// to its exact literal content with no escape processing.
func TestHashRawStringRoundTrip(t *testing.T) {
	const src = `r##"He said "hi" and #hash#"##`
	toks := Lex(src)

	if len(toks) != 2 { // RAW_STRING, EOF
		t.Fatalf("expected 2 tokens, got %d: %v", len(toks), kinds(toks))
	}
	if toks[0].Kind != token.RAW_STRING {
		t.Fatalf("expected RAW_STRING, got %s", toks[0].Kind)
	}
	want := `He said "hi" and #hash#`
	if got := toks[0].Literal.(string); got != want {
		t.Errorf("raw string literal = %q, want %q", got, want)
	}
}

// TestIndentationLayout is scenario 2 from §8.
func TestIndentationLayout(t *testing.T) {
	const src = "a\n  b\n    c\n  d\ne"
	toks := Lex(src)

	want := []token.Kind{
		token.IDENT, token.NEWLINE,
		token.INDENT, token.IDENT, token.NEWLINE,
		token.INDENT, token.IDENT, token.NEWLINE,
		token.DEDENT, token.IDENT, token.NEWLINE,
		token.DEDENT, token.IDENT,
		token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestIndentationInconsistentProducesError(t *testing.T) {
	const src = "if x\n  y\n    z\n w" // dedent to width 1 matches no enclosing level
	toks := Lex(src)

	sawError := false
	for _, tok := range toks {
		if tok.Kind == token.ERROR {
			sawError = true
		}
	}
	if !sawError {
		t.Errorf("expected an ERROR token for the inconsistent dedent, got %v", kinds(toks))
	}
}

// TestBracesSuppressLayoutTracking guards against the hang a brace-agnostic
// layout algorithm causes: an indented line inside `{ }` must not emit a
// spurious INDENT/DEDENT pair, since '}' (not DEDENT) closes the block.
func TestBracesSuppressLayoutTracking(t *testing.T) {
	const src = "x {\n  y\n}\nz"
	toks := Lex(src)

	want := []token.Kind{
		token.IDENT, token.LBRACE, token.NEWLINE,
		token.IDENT, token.NEWLINE,
		token.RBRACE, token.NEWLINE,
		token.IDENT, token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestBlankAndCommentLinesDoNotAffectIndentStack(t *testing.T) {
	const src = "a\n  b\n\n  // comment\n  c\nd"
	toks := Lex(src)
	want := []token.Kind{
		token.IDENT, token.NEWLINE,
		token.INDENT, token.IDENT, token.NEWLINE,
		token.NEWLINE, // the blank line's own terminator
		token.NEWLINE, // the comment-only line's own terminator
		token.IDENT, token.NEWLINE,
		token.DEDENT, token.IDENT,
		token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		src      string
		wantKind token.Kind
		want     any
	}{
		{"42", token.INTEGER, int64(42)},
		{"3.14", token.FLOAT, float64(3.14)},
		{".5", token.FLOAT, float64(0.5)},
		{"7.", token.FLOAT, float64(7)},
		{"1_000_000", token.INTEGER, int64(1000000)},
		{"1e10", token.FLOAT, float64(1e10)},
		{"0x1F", token.INTEGER, int64(31)},
		{"0o17", token.INTEGER, int64(15)},
		{"0b101", token.INTEGER, int64(5)},
		{"0xFF_FF", token.INTEGER, int64(0xFFFF)},
	}
	for _, tt := range tests {
		toks := Lex(tt.src)
		if toks[0].Kind != tt.wantKind {
			t.Errorf("Lex(%q)[0].Kind = %s, want %s", tt.src, toks[0].Kind, tt.wantKind)
			continue
		}
		if toks[0].Literal != tt.want {
			t.Errorf("Lex(%q)[0].Literal = %#v, want %#v", tt.src, toks[0].Literal, tt.want)
		}
	}
}

func TestMalformedNumericLiteralsProduceErrorToken(t *testing.T) {
	for _, src := range []string{"0x", "0b", "0o", "1_"} {
		toks := Lex(src)
		if toks[0].Kind != token.ERROR {
			t.Errorf("Lex(%q)[0].Kind = %s, want ERROR", src, toks[0].Kind)
		}
	}
}

func TestMultilineStringDedent(t *testing.T) {
	src := "\"\"\"\n    first\n    second\n    \"\"\""
	toks := Lex(src)
	if toks[0].Kind != token.MULTILINE_STRING {
		t.Fatalf("expected MULTILINE_STRING, got %s", toks[0].Kind)
	}
	want := "first\nsecond\n"
	if got := toks[0].Literal.(string); got != want {
		t.Errorf("multiline string literal = %q, want %q", got, want)
	}
}

func TestMultilineStringPreservesIndentWhenFirstLineNotEmpty(t *testing.T) {
	src := "\"\"\"first\n    second\"\"\""
	toks := Lex(src)
	want := "first\n    second"
	if got := toks[0].Literal.(string); got != want {
		t.Errorf("multiline string literal = %q, want %q", got, want)
	}
}

func TestIdentifierNFCNormalization(t *testing.T) {
	// "e" + combining acute accent (NFD) should normalize to the same
	// identifier as the precomposed "é" (NFC).
	nfd := "é"
	nfc := "é"
	gotNFD := Lex(nfd)[0].Lexeme
	gotNFC := Lex(nfc)[0].Lexeme
	if gotNFD != gotNFC {
		t.Errorf("NFD identifier %q normalized to %q, NFC identifier %q normalized to %q; want equal", nfd, gotNFD, nfc, gotNFC)
	}
}

func TestKeywordsAndAndOrMapToLogicalOperators(t *testing.T) {
	toks := Lex("a and b or c")
	want := []token.Kind{token.IDENT, token.AND_AND, token.IDENT, token.OR_OR, token.IDENT, token.EOF}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestShebangIsSkipped(t *testing.T) {
	toks := Lex("#!/usr/bin/env kestrel\nlet x = 1")
	if toks[0].Kind != token.LET {
		t.Errorf("first token = %s, want LET (shebang line should be discarded)", toks[0].Kind)
	}
}

func TestBlockCommentNesting(t *testing.T) {
	toks := Lex("/* outer /* inner */ still-outer */ x")
	if toks[0].Kind != token.IDENT || toks[0].Lexeme != "x" {
		t.Errorf("expected a single IDENT(x) after the nested comment, got %v", kinds(toks))
	}
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	toks := Lex("/* never closed")
	if toks[0].Kind != token.ERROR {
		t.Errorf("expected ERROR for unterminated block comment, got %s", toks[0].Kind)
	}
}

func FuzzLex(f *testing.F) {
	seeds := []string{
		"let x = 1", "fn f(a, b: Int) -> Int { a + b }",
		"r##\"raw\"##", "\"\"\"\nmulti\nline\"\"\"",
		"0x1F_FF", "a\n  b\n    c\n", "/* nested /* comment */ */",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		toks := Lex(src)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("Lex(%q) did not end in an EOF token", src)
		}
	})
}
