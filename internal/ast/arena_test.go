package ast

import "testing"

func TestArenaAllocAndFetchRoundTrip(t *testing.T) {
	a := NewArena()
	ref := a.AllocExpr(IdentifierExpr{Name: "x"})
	got, ok := a.Expr(ref).(IdentifierExpr)
	if !ok || got.Name != "x" {
		t.Fatalf("Expr(ref) = %#v, want IdentifierExpr{Name: \"x\"}", a.Expr(ref))
	}
}

func TestZeroValueRefIsInvalid(t *testing.T) {
	var ref ExprRef
	if ref.Valid() {
		t.Fatal("zero-value ExprRef should be invalid (used as the 'no expression' marker)")
	}
	a := NewArena()
	if a.Expr(ref) != nil {
		t.Fatal("Expr(zero-value ref) should return nil without panicking")
	}
}

// TestResetInvalidatesOutstandingRefs is the core generational-safety
// invariant: dropping the arena (or reusing it via Reset) must make every
// previously-issued ref panic loudly rather than silently return garbage.
func TestResetInvalidatesOutstandingRefs(t *testing.T) {
	a := NewArena()
	ref := a.AllocExpr(IdentifierExpr{Name: "stale"})
	a.Reset()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic when dereferencing a ref from before Reset")
		}
		if _, ok := r.(staleRefError); !ok {
			t.Fatalf("expected a staleRefError panic, got %#v", r)
		}
	}()
	a.Expr(ref)
}

func TestResetAllowsReuse(t *testing.T) {
	a := NewArena()
	a.AllocExpr(IdentifierExpr{Name: "first"})
	a.Reset()
	ref := a.AllocExpr(IdentifierExpr{Name: "second"})
	got := a.Expr(ref).(IdentifierExpr)
	if got.Name != "second" {
		t.Fatalf("Expr(ref) after Reset = %q, want %q", got.Name, "second")
	}
	if a.AllocatedNodes() != 1 {
		t.Fatalf("AllocatedNodes() after Reset+realloc = %d, want 1", a.AllocatedNodes())
	}
}

func TestWalkVisitsEveryExprInABinaryTree(t *testing.T) {
	a := NewArena()
	one := a.AllocExpr(LiteralExpr{Value: int64(1)})
	two := a.AllocExpr(LiteralExpr{Value: int64(2)})
	sum := a.AllocExpr(BinaryExpr{Operator: OpAdd, Left: one, Right: two})
	body := a.AllocBlock(Block{Stmts: []StmtRef{a.AllocStmt(ExprStmt{Expr: sum})}})
	fn := FunctionDecl{Name: "f", Body: body}
	unit := CompilationUnit{Items: []ItemRef{a.AllocItem(fn)}}

	var seen []Expr
	Walk(a, unit, Visitor{Expr: func(e Expr) { seen = append(seen, e) }})

	if len(seen) != 3 {
		t.Fatalf("expected 3 expressions visited (sum, 1, 2), got %d: %#v", len(seen), seen)
	}
	if _, ok := seen[0].(BinaryExpr); !ok {
		t.Errorf("expected the first visited node to be the BinaryExpr (pre-order), got %T", seen[0])
	}
}

func TestInspectPruningStopsDescent(t *testing.T) {
	a := NewArena()
	one := a.AllocExpr(LiteralExpr{Value: int64(1)})
	two := a.AllocExpr(LiteralExpr{Value: int64(2)})
	sum := a.AllocExpr(BinaryExpr{Operator: OpAdd, Left: one, Right: two})
	body := a.AllocBlock(Block{Stmts: []StmtRef{a.AllocStmt(ExprStmt{Expr: sum})}})
	unit := CompilationUnit{Items: []ItemRef{a.AllocItem(FunctionDecl{Name: "f", Body: body})}}

	var visited int
	Inspect(a, unit, func(node any) bool {
		visited++
		_, isBinary := node.(BinaryExpr)
		return !isBinary // prune BinaryExpr's children
	})
	// FunctionDecl, ExprStmt, BinaryExpr — but not its Left/Right literals.
	if visited != 3 {
		t.Fatalf("expected 3 nodes visited with BinaryExpr's children pruned, got %d", visited)
	}
}

func TestWalkSkipsNilCallbacks(t *testing.T) {
	a := NewArena()
	ref := a.AllocExpr(IdentifierExpr{Name: "x"})
	body := a.AllocBlock(Block{Stmts: []StmtRef{a.AllocStmt(ExprStmt{Expr: ref})}})
	unit := CompilationUnit{Items: []ItemRef{a.AllocItem(FunctionDecl{Name: "f", Body: body})}}

	// Should not panic with every callback left nil.
	Walk(a, unit, Visitor{})
}
