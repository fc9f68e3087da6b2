package parser

import (
	"testing"

	"github.com/kestrel-lang/kestrelc/internal/ast"
	"github.com/kestrel-lang/kestrelc/internal/diag"
	"github.com/kestrel-lang/kestrelc/internal/lexer"
)

func lexAndParse(src string, opts ...Option) (ast.CompilationUnit, Result) {
	toks := lexer.Lex(src)
	return ParseCompilationUnit(toks, opts...)
}

func firstFunc(t *testing.T, unit ast.CompilationUnit, a *ast.Arena) ast.FunctionDecl {
	t.Helper()
	if len(unit.Items) == 0 {
		t.Fatal("expected at least one item")
	}
	fn, ok := a.Item(unit.Items[0]).(ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected a FunctionDecl, got %T", a.Item(unit.Items[0]))
	}
	return fn
}

// TestUntypedParameterGetsInferredPlaceholder is scenario 3 from §8: a
// parameter with no type annotation must not be a parse error — it gets an
// ast.InferredType placeholder.
func TestUntypedParameterGetsInferredPlaceholder(t *testing.T) {
	unit, result := lexAndParse("fn add(a, b) -> Int {\n  a + b\n}")
	if result.Diags != nil && len(result.Diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diags)
	}
	fn := firstFunc(t, unit, result.Arena)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	for _, param := range fn.Params {
		if _, ok := result.Arena.Type(param.Type).(ast.InferredType); !ok {
			t.Errorf("parameter %q: expected InferredType, got %T", param.Name, result.Arena.Type(param.Type))
		}
	}
}

// TestOperatorPrecedence is scenario 4 from §8: `1 + 2 * 3` must parse so
// that `*` binds tighter than `+`.
func TestOperatorPrecedence(t *testing.T) {
	exprRef, result := ParseExpression(lexer.Lex("1 + 2 * 3"))
	top, ok := result.Arena.Expr(exprRef).(ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level BinaryExpr, got %T", result.Arena.Expr(exprRef))
	}
	if top.Operator != ast.OpAdd {
		t.Fatalf("expected top-level operator to be +, got %v", top.Operator)
	}
	right, ok := result.Arena.Expr(top.Right).(ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected right-hand side to be a BinaryExpr (2 * 3), got %T", result.Arena.Expr(top.Right))
	}
	if right.Operator != ast.OpMul {
		t.Fatalf("expected right-hand operator to be *, got %v", right.Operator)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	// a = b = c should parse as a = (b = c)
	exprRef, result := ParseExpression(lexer.Lex("a = b = c"))
	outer, ok := result.Arena.Expr(exprRef).(ast.AssignExpr)
	if !ok {
		t.Fatalf("expected top-level AssignExpr, got %T", result.Arena.Expr(exprRef))
	}
	if _, ok := result.Arena.Expr(outer.Target).(ast.IdentifierExpr); !ok {
		t.Fatalf("expected target to be identifier 'a', got %T", result.Arena.Expr(outer.Target))
	}
	if _, ok := result.Arena.Expr(outer.Value).(ast.AssignExpr); !ok {
		t.Fatalf("expected value to itself be an assignment (b = c), got %T", result.Arena.Expr(outer.Value))
	}
}

// TestComparisonChainRejected is scenario 5 from §8: `a < b < c` must
// produce a diagnostic rather than silently parsing as (a < b) < c.
func TestComparisonChainRejected(t *testing.T) {
	_, result := ParseExpression(lexer.Lex("a < b < c"))
	found := false
	for _, d := range result.Diags {
		if d.Code == diag.CodeUnexpectedToken {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic rejecting the comparison chain, got %v", result.Diags)
	}
}

// TestMultiErrorRecovery is scenario 6 from §8: a file with several
// independent malformed statements should report multiple diagnostics
// rather than stopping at the first, and still produce a best-effort tree.
func TestMultiErrorRecovery(t *testing.T) {
	src := "let = \nlet y = 1\nlet = \nlet z = 2"
	_, result := lexAndParse(src)
	if len(result.Diags) < 2 {
		t.Errorf("expected at least 2 diagnostics from independently malformed statements, got %d: %v", len(result.Diags), result.Diags)
	}
}

func TestDataClassDeclaration(t *testing.T) {
	unit, result := lexAndParse("data Point(x: Int, y: Int)")
	if len(unit.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(unit.Items))
	}
	decl, ok := result.Arena.Item(unit.Items[0]).(ast.DataClassDecl)
	if !ok {
		t.Fatalf("expected DataClassDecl, got %T", result.Arena.Item(unit.Items[0]))
	}
	if decl.Name != "Point" || len(decl.Fields) != 2 {
		t.Fatalf("unexpected data class shape: %+v", decl)
	}
}

func TestIfElseExpression(t *testing.T) {
	unit, result := lexAndParse("fn f() {\n  if x { 1 } else { 2 }\n}")
	fn := firstFunc(t, unit, result.Arena)
	body := result.Arena.Block(fn.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body.Stmts))
	}
}

func TestMatchExpressionBraced(t *testing.T) {
	src := "fn f() {\n  match x {\n    1 => a,\n    _ => b,\n  }\n}"
	unit, result := lexAndParse(src)
	fn := firstFunc(t, unit, result.Arena)
	body := result.Arena.Block(fn.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body.Stmts))
	}
	exprStmt, ok := result.Arena.Stmt(body.Stmts[0]).(ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", result.Arena.Stmt(body.Stmts[0]))
	}
	blockExpr, ok := result.Arena.Expr(exprStmt.Expr).(ast.BlockExpr)
	_ = blockExpr
	if ok {
		t.Fatalf("unexpected BlockExpr wrapping a match expression")
	}
	matchExpr, ok := result.Arena.Expr(exprStmt.Expr).(ast.MatchExpr)
	if !ok {
		t.Fatalf("expected MatchExpr, got %T", result.Arena.Expr(exprStmt.Expr))
	}
	if len(matchExpr.Arms) != 2 {
		t.Fatalf("expected 2 match arms, got %d", len(matchExpr.Arms))
	}
}

func TestMacroInvocationParse(t *testing.T) {
	unit, result := lexAndParse(`fn f() {
  println!("hi")
}`)
	fn := firstFunc(t, unit, result.Arena)
	body := result.Arena.Block(fn.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body.Stmts))
	}
	exprStmt := result.Arena.Stmt(body.Stmts[0]).(ast.ExprStmt)
	if _, ok := result.Arena.Expr(exprStmt.Expr).(ast.MacroExpr); !ok {
		t.Fatalf("expected MacroExpr, got %T", result.Arena.Expr(exprStmt.Expr))
	}
}

// TestMixedBlockStylesDiagnostic covers the §7 MixedBlockStyles rule: a function body that
// is indent-delimited but whose nested `if` switches to brace delimiting
// must be flagged with CodeMixedBlockStyles, not silently accepted.
func TestMixedBlockStylesDiagnostic(t *testing.T) {
	src := "fn f()\n  if x { 1 } else { 0 }\n"
	_, result := lexAndParse(src)
	found := false
	for _, d := range result.Diags {
		if d.Code == diag.CodeMixedBlockStyles {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a %s diagnostic from the braced if nested inside an indented function body, got %v", diag.CodeMixedBlockStyles, result.Diags)
	}
}

// TestMaxErrorsBoundStopsParsing is Testable Property 7 from §8: the
// collector never accumulates more diagnostics than WithMaxErrors allows,
// and the parser stops making further progress once the budget is spent.
func TestMaxErrorsBoundStopsParsing(t *testing.T) {
	var src string
	for i := 0; i < 40; i++ {
		src += "let = \n"
	}
	const maxErrors = 10
	_, result := lexAndParse(src, WithMaxErrors(maxErrors))
	if len(result.Diags) > maxErrors+1 {
		t.Fatalf("expected at most %d diagnostics plus one Fatal cutoff marker, got %d: %v", maxErrors, len(result.Diags), result.Diags)
	}
	last := result.Diags[len(result.Diags)-1]
	if last.Severity != diag.Fatal {
		t.Fatalf("expected the last diagnostic to be Fatal once the budget is exhausted, got %v", last)
	}
}

// TestAttributeArgumentsSplitOnTopLevelCommas covers attribute argument lists: a
// `#[name(arg1, arg2)]` attribute's Args must be the per-argument source
// text `["arg1", "arg2"]`, not a single string mangling operator tokens into
// their diagnostic Kind names.
func TestAttributeArgumentsSplitOnTopLevelCommas(t *testing.T) {
	unit, result := lexAndParse(`#[cfg(target = "x86", value(1, 2))]
fn f() {
  0
}`)
	fn := firstFunc(t, unit, result.Arena)
	attrs := result.Arena.Attrs(fn.Attributes)
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	attr := attrs[0]
	if attr.Name != "cfg" {
		t.Fatalf("expected attribute name 'cfg', got %q", attr.Name)
	}
	want := []string{`target = "x86"`, "value ( 1 , 2 )"}
	if len(attr.Args) != len(want) {
		t.Fatalf("Args = %#v, want %d entries", attr.Args, len(want))
	}
	if attr.Args[0] != want[0] {
		t.Errorf("Args[0] = %q, want %q", attr.Args[0], want[0])
	}
	if attr.Args[1] != want[1] {
		t.Errorf("Args[1] = %q, want %q", attr.Args[1], want[1])
	}
}

// TestModifierOrderingValidated covers §4.5's modifier ordering: modifiers must
// appear as `pub unsafe async static`; any other order is a diagnostic.
func TestModifierOrderingValidated(t *testing.T) {
	_, result := lexAndParse("unsafe pub fn f() {\n  0\n}")
	found := false
	for _, d := range result.Diags {
		if d.Code == diag.CodeUnexpectedToken {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic for out-of-order modifiers, got %v", result.Diags)
	}

	_, cleanResult := lexAndParse("pub unsafe async fn f() {\n  0\n}")
	for _, d := range cleanResult.Diags {
		if d.Code == diag.CodeUnexpectedToken {
			t.Errorf("unexpected diagnostic for correctly-ordered modifiers: %v", d)
		}
	}
}

// TestLetPatternGuard covers §4.7's guard pattern: `p if expr` outside a
// match arm produces a GuardPattern wrapping the bound pattern.
func TestLetPatternGuard(t *testing.T) {
	stmtRef, result := ParseStatement(lexer.Lex("let x if x > 0 = y"))
	itemStmt, ok := result.Arena.Stmt(stmtRef).(ast.ItemStmt)
	if !ok {
		t.Fatalf("expected ItemStmt, got %T", result.Arena.Stmt(stmtRef))
	}
	decl, ok := result.Arena.Item(itemStmt.Item).(ast.VariableDecl)
	if !ok {
		t.Fatalf("expected VariableDecl, got %T", result.Arena.Item(itemStmt.Item))
	}
	guard, ok := result.Arena.Pattern(decl.Pattern).(ast.GuardPattern)
	if !ok {
		t.Fatalf("expected GuardPattern, got %T", result.Arena.Pattern(decl.Pattern))
	}
	if _, ok := result.Arena.Pattern(guard.Pattern).(ast.IdentifierPattern); !ok {
		t.Fatalf("expected inner IdentifierPattern, got %T", result.Arena.Pattern(guard.Pattern))
	}
	if !guard.Condition.Valid() {
		t.Fatal("expected a valid guard condition")
	}
}

func FuzzParseCompilationUnit(f *testing.F) {
	seeds := []string{
		"fn f(a, b: Int) -> Int { a + b }",
		"data Point(x: Int, y: Int)",
		"let x = 1\nlet y = x + 2",
		"fn f() {\n  match x {\n    1 => a,\n    _ => b,\n  }\n}",
		"extern \"C\" {\n  fn puts(s: Str) -> Int\n}",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		const maxErrors = 50
		toks := lexer.Lex(src)
		_, result := ParseCompilationUnit(toks, WithRecursionLimit(64), WithMaxErrors(maxErrors))
		// Testable Property 7 (§8): the collector never exceeds max_errors —
		// allow one extra slot for the Fatal cutoff marker itself.
		if len(result.Diags) > maxErrors+1 {
			t.Fatalf("diagnostic count %d exceeded max_errors=%d (+1 cutoff marker) for input %q", len(result.Diags), maxErrors, src)
		}
	})
}
