package parser

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/lexer"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
)

func parseSource(t *testing.T, src string) (*ast.File, *diagnostics.Bag) {
	t.Helper()
	bag := diagnostics.NewBag()
	toks := lexer.New("test.clt", src, bag).Tokenize(false)
	return Parse(toks, "test.clt", bag), bag
}

// parseInit parses `fn main() { let r = <expr>; }` and returns the
// initializer expression.
func parseInit(t *testing.T, expr string) (ast.Expression, *diagnostics.Bag) {
	t.Helper()
	file, bag := parseSource(t, "fn main() { let r = "+expr+"; }")
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	be.True(t, ok)
	decl, ok := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	be.True(t, ok)
	return decl.Init, bag
}

func hasCode(bag *diagnostics.Bag, code string) bool {
	for _, d := range bag.Diagnostics() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestModuleHeader(t *testing.T) {
	file, bag := parseSource(t, `
mod main;
import std.io;
import gfx.color::{red, blue as b};

fn main() {}
`)
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, file.Module.Name.Name, "main")
	be.Equal(t, len(file.Imports), 2)
	be.Equal(t, file.Imports[0].Segments, []string{"std", "io"})
	be.Equal(t, file.Imports[0].LastSegment(), "io")
	be.Equal(t, len(file.Imports[1].Items), 2)
	be.Equal(t, file.Imports[1].Items[0].Name.Name, "red")
	be.Equal(t, file.Imports[1].Items[1].Alias.Name, "b")
}

func TestImportAfterDeclaration(t *testing.T) {
	_, bag := parseSource(t, "mod m;\nfn f() {}\nimport std.io;")
	be.True(t, hasCode(bag, diagnostics.ErrInvalidDeclaration))
}

func TestPrecedenceMulBindsTighter(t *testing.T) {
	expr, bag := parseInit(t, "1 + 2 * 3")
	be.Equal(t, bag.HasErrors(), false)
	add, ok := expr.(*ast.BinaryExpr)
	be.True(t, ok)
	be.Equal(t, add.Op.Kind, tokens.PLUS_TOKEN)
	mul, ok := add.Y.(*ast.BinaryExpr)
	be.True(t, ok)
	be.Equal(t, mul.Op.Kind, tokens.MUL_TOKEN)
}

func TestPrecedenceShiftBelowComparison(t *testing.T) {
	expr, bag := parseInit(t, "1 << 2 < 3")
	be.Equal(t, bag.HasErrors(), false)
	cmp, ok := expr.(*ast.BinaryExpr)
	be.True(t, ok)
	be.Equal(t, cmp.Op.Kind, tokens.LESS_TOKEN)
	shift, ok := cmp.X.(*ast.BinaryExpr)
	be.True(t, ok)
	be.Equal(t, shift.Op.Kind, tokens.SHIFT_LEFT_TOKEN)
}

func TestPrecedenceBitwiseBelowEquality(t *testing.T) {
	expr, bag := parseInit(t, "a == b & c == d")
	be.Equal(t, bag.HasErrors(), false)
	and, ok := expr.(*ast.BinaryExpr)
	be.True(t, ok)
	be.Equal(t, and.Op.Kind, tokens.BIT_AND_TOKEN)
}

func TestTernaryRightAssociative(t *testing.T) {
	expr, bag := parseInit(t, "a ? b : c ? d : e")
	be.Equal(t, bag.HasErrors(), false)
	outer, ok := expr.(*ast.TernaryExpr)
	be.True(t, ok)
	_, ok = outer.Else.(*ast.TernaryExpr)
	be.True(t, ok)
}

func TestAssignmentChainsRight(t *testing.T) {
	file, bag := parseSource(t, "fn main() { a = b = 1; }")
	be.Equal(t, bag.HasErrors(), false)
	fn := file.Decls[0].(*ast.FuncDecl)
	stmt := fn.Body.Stmts[0].(*ast.ExpressionStmt)
	outer, ok := stmt.X.(*ast.AssignExpr)
	be.True(t, ok)
	_, ok = outer.Value.(*ast.AssignExpr)
	be.True(t, ok)
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, bag := parseSource(t, "fn main() { 1 = 2; }")
	be.True(t, hasCode(bag, diagnostics.ErrInvalidAssignTarget))
}

func TestIndexOfCallIsNotAssignable(t *testing.T) {
	_, bag := parseSource(t, "fn main() { f()[0] = 1; }")
	be.True(t, hasCode(bag, diagnostics.ErrInvalidAssignTarget))
}

func TestStructLiteral(t *testing.T) {
	expr, bag := parseInit(t, "Point{x: 1, y: 2}")
	be.Equal(t, bag.HasErrors(), false)
	lit, ok := expr.(*ast.StructLiteralExpr)
	be.True(t, ok)
	be.Equal(t, lit.TypeName.Name, "Point")
	be.Equal(t, len(lit.Fields), 2)
	be.Equal(t, lit.Fields[0].Name.Name, "x")
}

func TestEmptyStructLiteral(t *testing.T) {
	expr, bag := parseInit(t, "Empty{}")
	be.Equal(t, bag.HasErrors(), false)
	_, ok := expr.(*ast.StructLiteralExpr)
	be.True(t, ok)
}

func TestBraceAfterConditionIsABlock(t *testing.T) {
	file, bag := parseSource(t, "fn main() { while (ready) { count = count + 1; } }")
	be.Equal(t, bag.HasErrors(), false)
	fn := file.Decls[0].(*ast.FuncDecl)
	loop, ok := fn.Body.Stmts[0].(*ast.WhileStmt)
	be.True(t, ok)
	be.Equal(t, len(loop.Body.Stmts), 1)
}

func TestSelectorThenCall(t *testing.T) {
	expr, bag := parseInit(t, "obj.method(1, 2)")
	be.Equal(t, bag.HasErrors(), false)
	call, ok := expr.(*ast.CallExpr)
	be.True(t, ok)
	be.Equal(t, len(call.Args), 2)
	sel, ok := call.Fun.(*ast.SelectorExpr)
	be.True(t, ok)
	be.Equal(t, sel.Field.Name, "method")
}

func TestProjection(t *testing.T) {
	expr, bag := parseInit(t, "color.(r, g)")
	be.Equal(t, bag.HasErrors(), false)
	proj, ok := expr.(*ast.ProjectionExpr)
	be.True(t, ok)
	be.Equal(t, len(proj.Fields), 2)
	be.Equal(t, proj.Fields[0].Name, "r")
}

func TestProjectionRejectsExpressions(t *testing.T) {
	_, bag := parseInit(t, "color.(1 + 2)")
	be.True(t, hasCode(bag, diagnostics.ErrInvalidProjection))
}

func TestScopeSelector(t *testing.T) {
	expr, bag := parseInit(t, "Color::RED")
	be.Equal(t, bag.HasErrors(), false)
	sel, ok := expr.(*ast.SelectorExpr)
	be.True(t, ok)
	be.Equal(t, sel.Field.Name, "RED")
}

func TestBuiltinTypeMetadata(t *testing.T) {
	expr, bag := parseInit(t, "i32::MAX")
	be.Equal(t, bag.HasErrors(), false)
	sel, ok := expr.(*ast.SelectorExpr)
	be.True(t, ok)
	recv, ok := sel.X.(*ast.IdentifierExpr)
	be.True(t, ok)
	be.Equal(t, recv.Name, "i32")
}

func TestCastExpression(t *testing.T) {
	expr, bag := parseInit(t, "x as i64")
	be.Equal(t, bag.HasErrors(), false)
	cast, ok := expr.(*ast.CastExpr)
	be.True(t, ok)
	be.Equal(t, ast.TypeString(cast.Target), "i64")
}

func TestTypeAnnotations(t *testing.T) {
	file, bag := parseSource(t, `
fn main() {
    let s: string? = null;
    let a: []i32 = [1, 2, 3];
    let m: [][]f64 = [];
}
`)
	be.Equal(t, bag.HasErrors(), false)
	fn := file.Decls[0].(*ast.FuncDecl)
	s := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	be.Equal(t, ast.TypeString(s.TypeAnn), "string?")
	a := fn.Body.Stmts[1].(*ast.VarDeclStmt)
	be.Equal(t, ast.TypeString(a.TypeAnn), "[]i32")
	m := fn.Body.Stmts[2].(*ast.VarDeclStmt)
	be.Equal(t, ast.TypeString(m.TypeAnn), "[][]f64")
}

func TestClassMembers(t *testing.T) {
	file, bag := parseSource(t, `
class Counter {
    pub final name -> string;
    count -> i32;

    builder(start: i32) {}

    fn bump() -> i32 { ret self.count; }
}
`)
	be.Equal(t, bag.HasErrors(), false)
	cls := file.Decls[0].(*ast.ClassDecl)
	be.Equal(t, len(cls.Fields), 2)
	be.Equal(t, cls.Fields[0].Visibility, ast.VisPublic)
	be.Equal(t, cls.Fields[0].IsFinal, true)
	be.Equal(t, len(cls.Builders), 1)
	be.True(t, cls.Builders[0].Name == nil)
	be.Equal(t, len(cls.Methods), 1)
	be.Equal(t, cls.Methods[0].Name.Name, "bump")
}

func TestStructRejectsBuilder(t *testing.T) {
	_, bag := parseSource(t, `
struct Point {
    x -> i32;
    builder(x: i32) {}
}
`)
	be.True(t, hasCode(bag, diagnostics.ErrInvalidDeclaration))
}

func TestEnumCasesAndBuilder(t *testing.T) {
	file, bag := parseSource(t, `
enum Color {
    RED(255, 0, 0),
    GREEN(0, 255, 0),
    builder(r: i32, g: i32, b: i32) {}
}
`)
	be.Equal(t, bag.HasErrors(), false)
	en := file.Decls[0].(*ast.EnumDecl)
	be.Equal(t, len(en.Cases), 2)
	be.Equal(t, en.Cases[0].Name.Name, "RED")
	be.Equal(t, len(en.Cases[0].Args), 3)
	be.True(t, en.Builder != nil)
	be.Equal(t, len(en.Builder.Params), 3)
}

func TestEnumSecondBuilderRejected(t *testing.T) {
	_, bag := parseSource(t, `
enum E {
    A,
    builder(x: i32) {}
    builder(x: i32, y: i32) {}
}
`)
	be.True(t, hasCode(bag, diagnostics.ErrInvalidDeclaration))
}

func TestLoopForms(t *testing.T) {
	file, bag := parseSource(t, `
fn main() {
    loop (i: 0..10) {}
    rev loop (j: 0..=5 step 2) {}
}
`)
	be.Equal(t, bag.HasErrors(), false)
	fn := file.Decls[0].(*ast.FuncDecl)

	fwd := fn.Body.Stmts[0].(*ast.LoopStmt)
	be.Equal(t, fwd.Reverse, false)
	be.Equal(t, fwd.Inclusive, false)
	be.True(t, fwd.Step == nil)
	be.Equal(t, fwd.Var.Name, "i")

	rev := fn.Body.Stmts[1].(*ast.LoopStmt)
	be.Equal(t, rev.Reverse, true)
	be.Equal(t, rev.Inclusive, true)
	be.True(t, rev.Step != nil)
}

func TestDoWhile(t *testing.T) {
	file, bag := parseSource(t, "fn main() { do { x = x + 1; } while (x < 10); }")
	be.Equal(t, bag.HasErrors(), false)
	fn := file.Decls[0].(*ast.FuncDecl)
	_, ok := fn.Body.Stmts[0].(*ast.DoWhileStmt)
	be.True(t, ok)
}

func TestIfElifElse(t *testing.T) {
	file, bag := parseSource(t, `
fn main() {
    if (a) { ret; } elif (b) { ret; } elif (c) { ret; } else { ret; }
}
`)
	be.Equal(t, bag.HasErrors(), false)
	fn := file.Decls[0].(*ast.FuncDecl)
	cond := fn.Body.Stmts[0].(*ast.IfStmt)
	be.Equal(t, len(cond.Elifs), 2)
	be.True(t, cond.Else != nil)
}

func TestMissingSemicolon(t *testing.T) {
	_, bag := parseSource(t, "fn main() { let x = 1 }")
	be.True(t, hasCode(bag, diagnostics.ErrMissingSemiCol))
}

func TestDanglingModifier(t *testing.T) {
	_, bag := parseSource(t, "mod m;\npub ;")
	be.True(t, hasCode(bag, diagnostics.ErrDanglingModifier))
}

func TestRecoveryReachesLaterDeclarations(t *testing.T) {
	file, bag := parseSource(t, "]] )) ,,\nfn ok() {}")
	be.True(t, bag.HasErrors())
	found := false
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Name != nil && fn.Name.Name == "ok" {
			found = true
		}
	}
	be.True(t, found)
}

func TestDeepUnaryNestingRejected(t *testing.T) {
	// each ! is one prefix level; -- would lex as a single token
	_, bag := parseInit(t, strings.Repeat("!", maxExprDepth+10)+"x")
	be.True(t, hasCode(bag, diagnostics.ErrMaxNestingDepth))
}

func TestDeepParenNestingRejected(t *testing.T) {
	n := maxExprDepth + 10
	_, bag := parseInit(t, strings.Repeat("(", n)+"x"+strings.Repeat(")", n))
	be.True(t, hasCode(bag, diagnostics.ErrMaxNestingDepth))
}

func TestGarbageNeverStalls(t *testing.T) {
	// every malformed prefix must still reach the end of the stream
	srcs := []string{
		"fn",
		"fn (",
		"class {",
		"enum E { builder }",
		"fn main() { let = ; }",
		"fn main() { a.(); }",
		"struct S { x -> ; }",
	}
	for _, src := range srcs {
		file, bag := parseSource(t, src)
		be.True(t, file != nil)
		be.True(t, bag.HasErrors())
	}
}
