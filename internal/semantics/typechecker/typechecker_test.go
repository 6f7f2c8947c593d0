package typechecker

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/lexer"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/parser"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/binder"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/collector"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/typeresolver"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

// analyze runs one source string through the whole single-module
// pipeline: lex, parse, collect, resolve types, bind, check.
func analyze(t *testing.T, src string) (*context.AnalyzerContext, *context.Module) {
	t.Helper()
	ctx := context.New(&context.Config{ProjectRoot: "."})
	toks := lexer.New("test.clt", src, ctx.Diagnostics).Tokenize(false)
	file := parser.Parse(toks, "test.clt", ctx.Diagnostics)

	mod := &context.Module{
		ImportPath: "test",
		FilePath:   "test.clt",
		AST:        file,
		Phase:      context.PhaseParsed,
	}
	ctx.AddModule("test", mod)
	collector.CollectModule(ctx, mod)
	typeresolver.ResolveModule(ctx, mod)
	binder.BindModule(ctx, mod)
	CheckModule(ctx, mod)
	return ctx, mod
}

// initType analyzes `fn main() { let r = <expr>; }` and returns the
// type the declaration settled on.
func initType(t *testing.T, expr string) (types.SemType, *context.AnalyzerContext) {
	t.Helper()
	ctx, mod := analyze(t, "fn main() { let r = "+expr+"; }")
	fn := mod.AST.Decls[0].(*ast.FuncDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	return ctx.TypeOf(decl), ctx
}

func countCode(ctx *context.AnalyzerContext, code string) int {
	n := 0
	for _, d := range ctx.Diagnostics.Diagnostics() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func hasCode(ctx *context.AnalyzerContext, code string) bool {
	return countCode(ctx, code) > 0
}

// ---------- literals and arithmetic ----------

func TestIntegerWidening(t *testing.T) {
	got, ctx := initType(t, "1i8 + 2i32")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "i32")
}

func TestUntypedLiteralDefaults(t *testing.T) {
	got, _ := initType(t, "42")
	be.Equal(t, got.String(), "i32")
	got, _ = initType(t, "2.5")
	be.Equal(t, got.String(), "f64")
}

func TestDivisionAlwaysF64(t *testing.T) {
	got, ctx := initType(t, "7 / 2")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "f64")
}

func TestModuloWidensIntegers(t *testing.T) {
	got, ctx := initType(t, "7i16 % 3i64")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "i64")

	_, ctx = initType(t, "7.5 % 2.0")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidOperation))
}

func TestBitwiseKeepsLeftType(t *testing.T) {
	got, ctx := initType(t, "1i32 << 2i64")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "i32")

	_, ctx = initType(t, "1.5 & 2")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidOperation))
}

func TestStringConcatAbsorbs(t *testing.T) {
	got, ctx := initType(t, `"n=" + 1 + true`)
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "string")

	got, ctx = initType(t, `1 + "s"`)
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "string")
}

func TestBoolPlusIntRejected(t *testing.T) {
	_, ctx := initType(t, "true + 1")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidOperation))
}

func TestLiteralRange(t *testing.T) {
	_, ctx := initType(t, "127i8")
	be.Equal(t, ctx.HasErrors(), false)

	_, ctx = initType(t, "128i8")
	be.True(t, hasCode(ctx, diagnostics.ErrLiteralOutOfRange))

	_, ctx = initType(t, "70000f16")
	be.True(t, hasCode(ctx, diagnostics.ErrLiteralOutOfRange))

	_, ctx = initType(t, "300u8")
	be.True(t, hasCode(ctx, diagnostics.ErrLiteralOutOfRange))

	got, ctx := initType(t, "0xFFu8")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "u8")
}

func TestFloatWithIntegerSuffix(t *testing.T) {
	got, ctx := initType(t, "3.5i32")
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))
	be.Equal(t, got.String(), "f64")
}

// ---------- ternary ----------

func TestTernaryWidens(t *testing.T) {
	got, ctx := initType(t, "true ? 1i32 : 2.5")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "f64")
}

func TestTernaryStringDominates(t *testing.T) {
	got, ctx := initType(t, `true ? "a" : 1`)
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "string")
}

func TestTernaryIncompatibleBranches(t *testing.T) {
	got, ctx := initType(t, `true ? "a" : true`)
	be.Equal(t, countCode(ctx, diagnostics.ErrTernaryBranches), 1)
	be.True(t, types.IsUnknown(got))
}

func TestTernaryConditionMustBeBool(t *testing.T) {
	_, ctx := initType(t, "1 ? 2 : 3")
	be.True(t, hasCode(ctx, diagnostics.ErrConditionNotBool))
}

// ---------- null and nullable ----------

func TestNullNeedsNullableTarget(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { let x: i32 = null; }")
	be.True(t, hasCode(ctx, diagnostics.ErrNullAssignment))

	ctx, _ = analyze(t, "fn main() { let s: string? = null; }")
	be.Equal(t, ctx.HasErrors(), false)
}

func TestNullInitWithoutAnnotation(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { let x = null; }")
	be.True(t, hasCode(ctx, diagnostics.ErrNullAssignment))
}

func TestNullableMemberAccessRejected(t *testing.T) {
	ctx, _ := analyze(t, "fn f(s: string?) -> i32 { ret s.length; }")
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))
}

func TestNullableUnwrapCast(t *testing.T) {
	ctx, _ := analyze(t, "fn f(s: string?) -> string { ret s as string; }")
	be.Equal(t, ctx.HasErrors(), false)
}

func TestNullComparison(t *testing.T) {
	ctx, _ := analyze(t, "fn f(s: string?) -> bool { ret s == null; }")
	be.Equal(t, ctx.HasErrors(), false)

	// bit carries no null representation
	ctx, _ = analyze(t, "fn f(b: bit) -> bool { ret b == null; }")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidOperation))
}

// ---------- variables and mutability ----------

func TestLetIsImmutable(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { let x = 1; x = 2; }")
	be.True(t, hasCode(ctx, diagnostics.ErrFinalReassignment))

	ctx, _ = analyze(t, "fn main() { var x = 1; x = 2; }")
	be.Equal(t, ctx.HasErrors(), false)
}

func TestShadowingIsLegal(t *testing.T) {
	ctx, _ := analyze(t, `
fn main() {
    let x = 1;
    { let x = "inner"; print(x); }
    print(x);
}
`)
	be.Equal(t, ctx.HasErrors(), false)
}

func TestRedeclarationInSameScope(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { let x = 1; let x = 2; }")
	be.True(t, hasCode(ctx, diagnostics.ErrRedeclaredSymbol))
}

func TestUndefinedReportedOnce(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { let r = missing + missing; }")
	be.Equal(t, countCode(ctx, diagnostics.ErrUndefinedSymbol), 1)
}

func TestCompoundAssign(t *testing.T) {
	ctx, _ := analyze(t, `
fn main() {
    var s = "a";
    s += "b";
    s += 1;
    var x = 10;
    x %= 3;
}
`)
	be.Equal(t, ctx.HasErrors(), false)

	ctx, _ = analyze(t, "fn main() { var f = 1.5; f %= 2.0; }")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidOperation))
}

func TestIncDecNeedsPlace(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { var x = 1; x++; ++x; }")
	be.Equal(t, ctx.HasErrors(), false)

	ctx, _ = analyze(t, "fn main() { 5++; }")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidAssignTarget))

	ctx, _ = analyze(t, `fn main() { var s = "a"; s++; }`)
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidOperation))
}

// ---------- functions, calls, returns ----------

func TestCallChecksArity(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 { ret a + b; }
fn main() { let r = add(1); }
`
	ctx, _ := analyze(t, src)
	be.True(t, hasCode(ctx, diagnostics.ErrWrongArgumentCount))
}

func TestCallChecksArgTypes(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 { ret a + b; }
fn main() { let r = add(1, "x"); }
`
	ctx, _ := analyze(t, src)
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))
}

func TestCallResultType(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 { ret a + b; }
fn main() { let r = add(1, 2); }
`
	ctx, mod := analyze(t, src)
	be.Equal(t, ctx.HasErrors(), false)
	fn := mod.AST.Decls[1].(*ast.FuncDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	be.Equal(t, ctx.TypeOf(decl).String(), "i32")
}

func TestValueNotCallable(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { let r = 5(1); }")
	be.True(t, hasCode(ctx, diagnostics.ErrNotCallable))
}

func TestFunctionMustReturnValue(t *testing.T) {
	ctx, _ := analyze(t, "fn f() -> i32 { let x = 1; }")
	be.True(t, hasCode(ctx, diagnostics.ErrMissingReturn))
}

func TestReturnOnOneBranchSuffices(t *testing.T) {
	ctx, _ := analyze(t, "fn f(c: bool) -> i32 { if (c) { ret 1; } }")
	be.Equal(t, ctx.HasErrors(), false)

	ctx, _ = analyze(t, "fn f(c: bool) -> i32 { while (c) { ret 1; } }")
	be.Equal(t, ctx.HasErrors(), false)
}

func TestReturnOnAllBranches(t *testing.T) {
	ctx, _ := analyze(t, `
fn f(b: bool) -> i32 {
    if (b) { ret 1; } elif (!b) { ret 2; } else { ret 3; }
}
`)
	be.Equal(t, ctx.HasErrors(), false)
}

func TestVoidFunctionRejectsValue(t *testing.T) {
	ctx, _ := analyze(t, "fn f() { ret 1; }")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidReturn))
}

func TestBareReturnInTypedFunction(t *testing.T) {
	ctx, _ := analyze(t, "fn f() -> i32 { ret; }")
	be.True(t, hasCode(ctx, diagnostics.ErrMissingReturn))
}

func TestReturnTypeMismatch(t *testing.T) {
	ctx, _ := analyze(t, `fn f() -> i32 { ret "s"; }`)
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidReturn))
}

// ---------- control flow ----------

func TestConditionMustBeBool(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { if (1) {} }")
	be.True(t, hasCode(ctx, diagnostics.ErrConditionNotBool))

	ctx, _ = analyze(t, "fn main() { while (true) { break; } }")
	be.Equal(t, ctx.HasErrors(), false)
}

func TestBreakOutsideLoop(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { break; }")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidStatement))

	ctx, _ = analyze(t, "fn main() { continue; }")
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidStatement))
}

func TestLoopBoundsMustBeIntegers(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { loop (i: 0..10) { print(i); } }")
	be.Equal(t, ctx.HasErrors(), false)

	ctx, _ = analyze(t, "fn main() { loop (i: 0..true) {} }")
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))
}

func TestLoopVariableWidensToBounds(t *testing.T) {
	ctx, mod := analyze(t, "fn main() { loop (i: 0..10i64) { let r = i; } }")
	be.Equal(t, ctx.HasErrors(), false)
	fn := mod.AST.Decls[0].(*ast.FuncDecl)
	loop := fn.Body.Stmts[0].(*ast.LoopStmt)
	decl := loop.Body.Stmts[0].(*ast.VarDeclStmt)
	be.Equal(t, ctx.TypeOf(decl).String(), "i64")
}

// ---------- structs ----------

const pointSrc = `
struct Point {
    x -> i32;
    y -> i32;
}
`

func TestStructLiteralComplete(t *testing.T) {
	ctx, mod := analyze(t, pointSrc+"fn main() { let p = Point{x: 1, y: 2}; }")
	be.Equal(t, ctx.HasErrors(), false)
	fn := mod.AST.Decls[1].(*ast.FuncDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	be.Equal(t, ctx.TypeOf(decl).String(), "Point")
}

func TestStructLiteralMissingFieldPerField(t *testing.T) {
	ctx, _ := analyze(t, pointSrc+"fn main() { let p = Point{x: 1}; }")
	be.Equal(t, countCode(ctx, diagnostics.ErrMissingField), 1)

	ctx, _ = analyze(t, pointSrc+"fn main() { let p = Point{}; }")
	be.Equal(t, countCode(ctx, diagnostics.ErrMissingField), 2)
}

func TestStructLiteralExtraFieldPerField(t *testing.T) {
	ctx, _ := analyze(t, pointSrc+"fn main() { let p = Point{x: 1, y: 2, z: 3, w: 4}; }")
	be.Equal(t, countCode(ctx, diagnostics.ErrUnexpectedField), 2)
	be.Equal(t, countCode(ctx, diagnostics.ErrMissingField), 0)
}

func TestStructLiteralFieldTypes(t *testing.T) {
	ctx, _ := analyze(t, pointSrc+`fn main() { let p = Point{x: "a", y: 2}; }`)
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))
}

func TestStructNotCallable(t *testing.T) {
	ctx, _ := analyze(t, pointSrc+"fn main() { let p = Point(1, 2); }")
	be.True(t, hasCode(ctx, diagnostics.ErrNotCallable))
}

func TestProjection(t *testing.T) {
	ctx, _ := analyze(t, pointSrc+"fn main() { let p = Point{x: 1, y: 2}; let q = p.(x); }")
	be.Equal(t, ctx.HasErrors(), false)

	ctx, _ = analyze(t, pointSrc+"fn main() { let p = Point{x: 1, y: 2}; let q = p.(z); }")
	be.True(t, hasCode(ctx, diagnostics.ErrFieldNotFound))
}

// ---------- classes ----------

func TestClassBuilderSelectedByArity(t *testing.T) {
	src := `
class Box {
    v -> i32;
    builder(v: i32) { self.v = v; }
    builder(v: i32, w: i32, h: i32) { self.v = v * w * h; }
}
fn main() { let b = Box(1); let c = Box(1, 2, 3); }
`
	ctx, _ := analyze(t, src)
	be.Equal(t, ctx.HasErrors(), false)
}

func TestClassBuilderArityMismatch(t *testing.T) {
	src := `
class Box {
    v -> i32;
    builder(v: i32) {}
    builder(v: i32, w: i32, h: i32) {}
}
fn main() { let b = Box(1, 2); }
`
	ctx, _ := analyze(t, src)
	be.True(t, hasCode(ctx, diagnostics.ErrWrongArgumentCount))
}

func TestSelfInMethods(t *testing.T) {
	src := `
class Counter {
    count -> i32;
    builder(start: i32) { self.count = start; }
    fn bump() -> i32 { ret self.count + 1; }
}
`
	ctx, _ := analyze(t, src)
	be.Equal(t, ctx.HasErrors(), false)
}

func TestPrivateFieldAccess(t *testing.T) {
	src := `
class Vault {
    priv secret -> i32;
    builder() { self.secret = 0; }
}
fn peek(v: Vault) -> i32 { ret v.secret; }
`
	ctx, _ := analyze(t, src)
	be.True(t, hasCode(ctx, diagnostics.ErrAccessViolation))
}

func TestProtectedFieldAccess(t *testing.T) {
	src := `
class Gauge {
    prot level -> i32;
    builder() { self.level = 0; }
    fn read() -> i32 { ret self.level; }
}
fn peek(g: Gauge) -> i32 { ret g.level; }
`
	ctx, _ := analyze(t, src)
	be.Equal(t, countCode(ctx, diagnostics.ErrAccessViolation), 1)
}

func TestPrivateMethodAccess(t *testing.T) {
	src := `
class Vault {
    builder() {}
    priv fn open() -> bool { ret true; }
}
fn crack(v: Vault) -> bool { ret v.open(); }
`
	ctx, _ := analyze(t, src)
	be.True(t, hasCode(ctx, diagnostics.ErrAccessViolation))
}

func TestFinalFieldAssignment(t *testing.T) {
	src := `
class Tag {
    final name -> string;
    builder() {}
}
fn rename(t: Tag) { t.name = "other"; }
`
	ctx, _ := analyze(t, src)
	be.True(t, hasCode(ctx, diagnostics.ErrFinalReassignment))
}

func TestUnknownMemberReported(t *testing.T) {
	ctx, _ := analyze(t, pointSrc+"fn f(p: Point) -> i32 { ret p.z; }")
	be.True(t, hasCode(ctx, diagnostics.ErrFieldNotFound))
}

// ---------- enums ----------

func TestEnumVariantAccess(t *testing.T) {
	src := `
enum Color {
    RED(255),
    GREEN(128),
    builder(v: i32) {}
}
fn main() { let c = Color::RED; }
`
	ctx, mod := analyze(t, src)
	be.Equal(t, ctx.HasErrors(), false)
	fn := mod.AST.Decls[1].(*ast.FuncDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	be.Equal(t, ctx.TypeOf(decl).String(), "Color")
}

func TestEnumMixedArityReportedOnce(t *testing.T) {
	ctx, _ := analyze(t, `
enum Bad {
    A(1),
    B(1, 2),
    C(1, 2, 3),
}
`)
	be.Equal(t, countCode(ctx, diagnostics.ErrEnumArity), 1)
}

func TestEnumArgsRequireBuilder(t *testing.T) {
	ctx, _ := analyze(t, `
enum Color {
    RED(255, 0, 0),
    GREEN(0, 255, 0),
}
`)
	be.Equal(t, countCode(ctx, diagnostics.ErrMissingBuilder), 1)
}

func TestEnumArgumentTypes(t *testing.T) {
	ctx, _ := analyze(t, `
enum Level {
    LOW("oops"),
    builder(v: i32) {}
}
`)
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))

	ctx, _ = analyze(t, `
enum Level {
    LOW(1),
    HIGH(9),
    builder(v: i32) {}
}
`)
	be.Equal(t, ctx.HasErrors(), false)
}

const colorSrc = `
enum Color {
    RED(255, 0, 0),
    GREEN(0, 255, 0),
    builder(r: i32, g: i32, b: i32) {}
}
`

func TestEnumFieldAccess(t *testing.T) {
	ctx, mod := analyze(t, colorSrc+"fn main() { let c = Color::RED; let r = c.r; }")
	be.Equal(t, ctx.HasErrors(), false)
	fn := mod.AST.Decls[1].(*ast.FuncDecl)
	decl := fn.Body.Stmts[1].(*ast.VarDeclStmt)
	be.Equal(t, ctx.TypeOf(decl).String(), "i32")
}

func TestEnumProjection(t *testing.T) {
	ctx, _ := analyze(t, colorSrc+"fn main() { let c = Color::RED; let x = c.(r, g); }")
	be.Equal(t, ctx.HasErrors(), false)

	ctx, _ = analyze(t, colorSrc+"fn main() { let c = Color::RED; let x = c.(alpha); }")
	be.True(t, hasCode(ctx, diagnostics.ErrFieldNotFound))
}

func TestEnumUnknownVariant(t *testing.T) {
	src := `
enum Color { RED, GREEN, }
fn main() { let c = Color::BLUE; }
`
	ctx, _ := analyze(t, src)
	be.True(t, hasCode(ctx, diagnostics.ErrFieldNotFound))
}

// ---------- builtin type metadata ----------

func TestNumericMetadata(t *testing.T) {
	got, ctx := initType(t, "i64::MAX")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "i64")

	got, ctx = initType(t, "u16::BITS")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "i32")

	_, ctx = initType(t, "i32::WIDTH")
	be.True(t, hasCode(ctx, diagnostics.ErrFieldNotFound))
}

// ---------- strings, arrays, casts ----------

func TestIndexing(t *testing.T) {
	got, ctx := initType(t, `"abc"[0]`)
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "char")

	ctx, mod := analyze(t, "fn main() { let a = [1, 2, 3]; let e = a[0]; }")
	be.Equal(t, ctx.HasErrors(), false)
	fn := mod.AST.Decls[0].(*ast.FuncDecl)
	decl := fn.Body.Stmts[1].(*ast.VarDeclStmt)
	be.Equal(t, ctx.TypeOf(decl).String(), "i32")
}

func TestIndexErrors(t *testing.T) {
	ctx, _ := analyze(t, `fn main() { let a = [1, 2]; let e = a["x"]; }`)
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))

	ctx, _ = analyze(t, "fn main() { let e = true[0]; }")
	be.True(t, hasCode(ctx, diagnostics.ErrNotIndexable))
}

func TestLengthMember(t *testing.T) {
	got, ctx := initType(t, `"abc".length`)
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "i32")

	got, ctx = initType(t, "[1, 2, 3].length")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "i32")
}

func TestArrayElementWidening(t *testing.T) {
	got, ctx := initType(t, "[1i8, 2i32, 3]")
	be.Equal(t, ctx.HasErrors(), false)
	arr, ok := got.(*types.ArrayType)
	be.True(t, ok)
	be.Equal(t, arr.Element.String(), "i32")
}

func TestEmptyArrayTakesAnnotation(t *testing.T) {
	ctx, _ := analyze(t, "fn main() { let a: []string = []; }")
	be.Equal(t, ctx.HasErrors(), false)
}

func TestNumericCasts(t *testing.T) {
	got, ctx := initType(t, "5 as f64")
	be.Equal(t, ctx.HasErrors(), false)
	be.Equal(t, got.String(), "f64")

	_, ctx = initType(t, `"s" as i32`)
	be.True(t, hasCode(ctx, diagnostics.ErrInvalidCast))
}

// ---------- globals ----------

func TestGlobalVarTyping(t *testing.T) {
	src := `
let limit: i64 = 100;
fn main() { let r = limit + 1; }
`
	ctx, mod := analyze(t, src)
	be.Equal(t, ctx.HasErrors(), false)
	fn := mod.AST.Decls[1].(*ast.FuncDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDeclStmt)
	be.Equal(t, ctx.TypeOf(decl).String(), "i64")
}

func TestGlobalVarInitMismatch(t *testing.T) {
	ctx, _ := analyze(t, `let limit: i32 = "many";`)
	be.True(t, hasCode(ctx, diagnostics.ErrTypeMismatch))
}
