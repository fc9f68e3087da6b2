package ast

// Visitor receives one callback per node kind during a Walk. Any method left
// nil is simply skipped, so callers only implement what they need — the
// same "partial visitor" shape as the teacher's tree-walking utilities.
type Visitor struct {
	Expr    func(Expr)
	Stmt    func(Stmt)
	Pattern func(Pattern)
	Type    func(Type)
	Item    func(Item)
}

// Walk traverses a compilation unit depth-first, visiting every item and
// its transitive children through the arena. It does not allocate: all
// recursion reads node values already owned by a.
func Walk(a *Arena, unit CompilationUnit, v Visitor) {
	for _, ref := range unit.Items {
		walkItem(a, a.Item(ref), v)
	}
}

func walkItem(a *Arena, it Item, v Visitor) {
	if it == nil {
		return
	}
	if v.Item != nil {
		v.Item(it)
	}
	switch n := it.(type) {
	case FunctionDecl:
		for _, p := range n.Params {
			walkType(a, a.Type(p.Type), v)
		}
		walkType(a, a.Type(n.ReturnType), v)
		if n.Body.Valid() {
			walkBlock(a, a.Block(n.Body), v)
		}
	case VariableDecl:
		walkPattern(a, a.Pattern(n.Pattern), v)
		walkType(a, a.Type(n.Type), v)
		walkExpr(a, a.Expr(n.Init), v)
	case DataClassDecl:
		for _, f := range n.Fields {
			walkType(a, a.Type(f.Type), v)
		}
	case ExternBlock:
		for _, item := range n.Items {
			switch ei := item.(type) {
			case ExternFunction:
				for _, p := range ei.Params {
					walkType(a, a.Type(p.Type), v)
				}
				walkType(a, a.Type(ei.ReturnType), v)
			case ExternVariable:
				walkType(a, a.Type(ei.Type), v)
			}
		}
	}
}

func walkBlock(a *Arena, b Block, v Visitor) {
	for _, ref := range b.Stmts {
		walkStmt(a, a.Stmt(ref), v)
	}
}

func walkStmt(a *Arena, s Stmt, v Visitor) {
	if s == nil {
		return
	}
	if v.Stmt != nil {
		v.Stmt(s)
	}
	switch n := s.(type) {
	case ExprStmt:
		walkExpr(a, a.Expr(n.Expr), v)
	case ItemStmt:
		walkItem(a, a.Item(n.Item), v)
	case ReturnStmt:
		walkExpr(a, a.Expr(n.Value), v)
	case BreakStmt:
		walkExpr(a, a.Expr(n.Value), v)
	case WhileStmt:
		walkExpr(a, a.Expr(n.Condition), v)
		if n.Body.Valid() {
			walkBlock(a, a.Block(n.Body), v)
		}
	case ForStmt:
		walkPattern(a, a.Pattern(n.Pattern), v)
		walkExpr(a, a.Expr(n.Iterable), v)
		if n.Body.Valid() {
			walkBlock(a, a.Block(n.Body), v)
		}
	}
}

func walkExpr(a *Arena, e Expr, v Visitor) {
	if e == nil {
		return
	}
	if v.Expr != nil {
		v.Expr(e)
	}
	switch n := e.(type) {
	case BinaryExpr:
		walkExpr(a, a.Expr(n.Left), v)
		walkExpr(a, a.Expr(n.Right), v)
	case UnaryExpr:
		walkExpr(a, a.Expr(n.Operand), v)
	case AssignExpr:
		walkExpr(a, a.Expr(n.Target), v)
		walkExpr(a, a.Expr(n.Value), v)
	case CallExpr:
		walkExpr(a, a.Expr(n.Callee), v)
		for _, arg := range n.Args {
			walkExpr(a, a.Expr(arg), v)
		}
	case MemberAccessExpr:
		walkExpr(a, a.Expr(n.Object), v)
	case IndexExpr:
		walkExpr(a, a.Expr(n.Object), v)
		walkExpr(a, a.Expr(n.Index), v)
	case AwaitExpr:
		walkExpr(a, a.Expr(n.Operand), v)
	case ArrayExpr:
		for _, el := range n.Elements {
			walkExpr(a, a.Expr(el), v)
		}
	case TupleExpr:
		for _, el := range n.Elements {
			walkExpr(a, a.Expr(el), v)
		}
	case IfExpr:
		walkExpr(a, a.Expr(n.Condition), v)
		if n.Then.Valid() {
			walkBlock(a, a.Block(n.Then), v)
		}
		if n.Else.Valid() {
			walkBlock(a, a.Block(n.Else), v)
		}
		walkExpr(a, a.Expr(n.ElseIf), v)
	case MatchExpr:
		walkExpr(a, a.Expr(n.Scrutinee), v)
		for _, arm := range n.Arms {
			walkPattern(a, a.Pattern(arm.Pattern), v)
			walkExpr(a, a.Expr(arm.Guard), v)
			walkExpr(a, a.Expr(arm.Body), v)
		}
	case GroupedExpr:
		walkExpr(a, a.Expr(n.Inner), v)
	case BlockExpr:
		if n.Block.Valid() {
			walkBlock(a, a.Block(n.Block), v)
		}
	}
}

func walkPattern(a *Arena, p Pattern, v Visitor) {
	if p == nil {
		return
	}
	if v.Pattern != nil {
		v.Pattern(p)
	}
	switch n := p.(type) {
	case DataClassPattern:
		for _, f := range n.Fields {
			walkPattern(a, a.Pattern(f.Pattern), v)
		}
	case RangePattern:
		walkExpr(a, a.Expr(n.Low), v)
		walkExpr(a, a.Expr(n.High), v)
	case SlicePattern:
		for _, el := range n.Elements {
			walkPattern(a, a.Pattern(el), v)
		}
	case OrPattern:
		for _, alt := range n.Alternatives {
			walkPattern(a, a.Pattern(alt), v)
		}
	case GuardPattern:
		walkPattern(a, a.Pattern(n.Pattern), v)
		walkExpr(a, a.Expr(n.Condition), v)
	case BindingPattern:
		walkPattern(a, a.Pattern(n.Pattern), v)
	}
}

// Inspect traverses a compilation unit depth-first like Walk, but calls a
// single untyped callback at every node (the same concrete Expr/Stmt/
// Pattern/Type/Item structs Walk's per-kind callbacks receive) and lets the
// callback prune a subtree by returning false, mirroring go/ast.Inspect.
func Inspect(a *Arena, unit CompilationUnit, fn func(node any) bool) {
	for _, ref := range unit.Items {
		inspectItem(a, a.Item(ref), fn)
	}
}

func inspectItem(a *Arena, it Item, fn func(any) bool) {
	if it == nil || !fn(it) {
		return
	}
	switch n := it.(type) {
	case FunctionDecl:
		for _, p := range n.Params {
			inspectType(a, a.Type(p.Type), fn)
		}
		inspectType(a, a.Type(n.ReturnType), fn)
		if n.Body.Valid() {
			inspectBlock(a, a.Block(n.Body), fn)
		}
	case VariableDecl:
		inspectPattern(a, a.Pattern(n.Pattern), fn)
		inspectType(a, a.Type(n.Type), fn)
		inspectExpr(a, a.Expr(n.Init), fn)
	case DataClassDecl:
		for _, f := range n.Fields {
			inspectType(a, a.Type(f.Type), fn)
		}
	case ExternBlock:
		for _, item := range n.Items {
			switch ei := item.(type) {
			case ExternFunction:
				for _, p := range ei.Params {
					inspectType(a, a.Type(p.Type), fn)
				}
				inspectType(a, a.Type(ei.ReturnType), fn)
			case ExternVariable:
				inspectType(a, a.Type(ei.Type), fn)
			}
		}
	}
}

func inspectBlock(a *Arena, b Block, fn func(any) bool) {
	for _, ref := range b.Stmts {
		inspectStmt(a, a.Stmt(ref), fn)
	}
}

func inspectStmt(a *Arena, s Stmt, fn func(any) bool) {
	if s == nil || !fn(s) {
		return
	}
	switch n := s.(type) {
	case ExprStmt:
		inspectExpr(a, a.Expr(n.Expr), fn)
	case ItemStmt:
		inspectItem(a, a.Item(n.Item), fn)
	case ReturnStmt:
		inspectExpr(a, a.Expr(n.Value), fn)
	case BreakStmt:
		inspectExpr(a, a.Expr(n.Value), fn)
	case WhileStmt:
		inspectExpr(a, a.Expr(n.Condition), fn)
		if n.Body.Valid() {
			inspectBlock(a, a.Block(n.Body), fn)
		}
	case ForStmt:
		inspectPattern(a, a.Pattern(n.Pattern), fn)
		inspectExpr(a, a.Expr(n.Iterable), fn)
		if n.Body.Valid() {
			inspectBlock(a, a.Block(n.Body), fn)
		}
	}
}

func inspectExpr(a *Arena, e Expr, fn func(any) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case BinaryExpr:
		inspectExpr(a, a.Expr(n.Left), fn)
		inspectExpr(a, a.Expr(n.Right), fn)
	case UnaryExpr:
		inspectExpr(a, a.Expr(n.Operand), fn)
	case AssignExpr:
		inspectExpr(a, a.Expr(n.Target), fn)
		inspectExpr(a, a.Expr(n.Value), fn)
	case CallExpr:
		inspectExpr(a, a.Expr(n.Callee), fn)
		for _, arg := range n.Args {
			inspectExpr(a, a.Expr(arg), fn)
		}
	case MemberAccessExpr:
		inspectExpr(a, a.Expr(n.Object), fn)
	case IndexExpr:
		inspectExpr(a, a.Expr(n.Object), fn)
		inspectExpr(a, a.Expr(n.Index), fn)
	case AwaitExpr:
		inspectExpr(a, a.Expr(n.Operand), fn)
	case ArrayExpr:
		for _, el := range n.Elements {
			inspectExpr(a, a.Expr(el), fn)
		}
	case TupleExpr:
		for _, el := range n.Elements {
			inspectExpr(a, a.Expr(el), fn)
		}
	case IfExpr:
		inspectExpr(a, a.Expr(n.Condition), fn)
		if n.Then.Valid() {
			inspectBlock(a, a.Block(n.Then), fn)
		}
		if n.Else.Valid() {
			inspectBlock(a, a.Block(n.Else), fn)
		}
		inspectExpr(a, a.Expr(n.ElseIf), fn)
	case MatchExpr:
		inspectExpr(a, a.Expr(n.Scrutinee), fn)
		for _, arm := range n.Arms {
			inspectPattern(a, a.Pattern(arm.Pattern), fn)
			inspectExpr(a, a.Expr(arm.Guard), fn)
			inspectExpr(a, a.Expr(arm.Body), fn)
		}
	case GroupedExpr:
		inspectExpr(a, a.Expr(n.Inner), fn)
	case BlockExpr:
		if n.Block.Valid() {
			inspectBlock(a, a.Block(n.Block), fn)
		}
	}
}

func inspectPattern(a *Arena, p Pattern, fn func(any) bool) {
	if p == nil || !fn(p) {
		return
	}
	switch n := p.(type) {
	case DataClassPattern:
		for _, f := range n.Fields {
			inspectPattern(a, a.Pattern(f.Pattern), fn)
		}
	case RangePattern:
		inspectExpr(a, a.Expr(n.Low), fn)
		inspectExpr(a, a.Expr(n.High), fn)
	case SlicePattern:
		for _, el := range n.Elements {
			inspectPattern(a, a.Pattern(el), fn)
		}
	case OrPattern:
		for _, alt := range n.Alternatives {
			inspectPattern(a, a.Pattern(alt), fn)
		}
	case GuardPattern:
		inspectPattern(a, a.Pattern(n.Pattern), fn)
		inspectExpr(a, a.Expr(n.Condition), fn)
	case BindingPattern:
		inspectPattern(a, a.Pattern(n.Pattern), fn)
	}
}

func inspectType(a *Arena, t Type, fn func(any) bool) {
	if t == nil || !fn(t) {
		return
	}
	switch n := t.(type) {
	case GenericType:
		for _, arg := range n.Args {
			inspectType(a, a.Type(arg), fn)
		}
	case TupleType:
		for _, el := range n.Elements {
			inspectType(a, a.Type(el), fn)
		}
	case ArrayType:
		inspectType(a, a.Type(n.Element), fn)
		inspectExpr(a, a.Expr(n.Length), fn)
	case FunctionType:
		for _, p := range n.Params {
			inspectType(a, a.Type(p), fn)
		}
		inspectType(a, a.Type(n.ReturnType), fn)
	case PointerType:
		inspectType(a, a.Type(n.Pointee), fn)
	}
}

func walkType(a *Arena, t Type, v Visitor) {
	if t == nil {
		return
	}
	if v.Type != nil {
		v.Type(t)
	}
	switch n := t.(type) {
	case GenericType:
		for _, arg := range n.Args {
			walkType(a, a.Type(arg), v)
		}
	case TupleType:
		for _, el := range n.Elements {
			walkType(a, a.Type(el), v)
		}
	case ArrayType:
		walkType(a, a.Type(n.Element), v)
		walkExpr(a, a.Expr(n.Length), v)
	case FunctionType:
		for _, p := range n.Params {
			walkType(a, a.Type(p), v)
		}
		walkType(a, a.Type(n.ReturnType), v)
	case PointerType:
		walkType(a, a.Type(n.Pointee), v)
	}
}
