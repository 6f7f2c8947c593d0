package imports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/lexer"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/parser"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/binder"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/collector"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/typechecker"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/typeresolver"
)

// analyzeProject writes the given files into a temp project root and
// runs the full pipeline starting from main.clt.
func analyzeProject(t *testing.T, files map[string]string) (*context.AnalyzerContext, *context.Module) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		be.Err(t, os.MkdirAll(filepath.Dir(path), 0o755), nil)
		be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
	}

	ctx := context.New(&context.Config{ProjectRoot: root})
	entryPath := filepath.Join(root, "main.clt")
	data, err := os.ReadFile(entryPath)
	be.Err(t, err, nil)

	toks := lexer.New(entryPath, string(data), ctx.Diagnostics).Tokenize(false)
	file := parser.Parse(toks, entryPath, ctx.Diagnostics)
	mod := &context.Module{
		ImportPath: "main",
		FilePath:   entryPath,
		Content:    string(data),
		AST:        file,
		Phase:      context.PhaseParsed,
	}
	ctx.AddModule("main", mod)
	collector.CollectModule(ctx, mod)
	NewResolver(ctx).ResolveModule(mod)

	for _, p := range ctx.ModulePaths() {
		m, _ := ctx.GetModule(p)
		typeresolver.ResolveModule(ctx, m)
	}
	for _, p := range ctx.ModulePaths() {
		m, _ := ctx.GetModule(p)
		binder.BindModule(ctx, m)
	}
	for _, p := range ctx.ModulePaths() {
		m, _ := ctx.GetModule(p)
		typechecker.CheckModule(ctx, m)
	}
	return ctx, mod
}

func hasCode(ctx *context.AnalyzerContext, code string) bool {
	for _, d := range ctx.Diagnostics.Diagnostics() {
		if d.Code == code {
			return true
		}
	}
	return false
}

const utilSrc = `
mod util;

pub fn double(x: i32) -> i32 { ret x * 2; }

fn hidden() -> i32 { ret 0; }
`

func TestBareImportBindsNamespace(t *testing.T) {
	ctx, mod := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport util;\nfn main() { let r = util.double(2); }",
		"util.clt": utilSrc,
	})
	be.Equal(t, ctx.HasErrors(), false)

	sym, ok := mod.Scope.Resolve("util")
	be.True(t, ok)
	be.Equal(t, sym.Kind, symbols.SymModule)
	_, ok = sym.Exports["double"]
	be.True(t, ok)
	_, ok = sym.Exports["hidden"]
	be.Equal(t, ok, false)
}

func TestGroupImportWithAlias(t *testing.T) {
	ctx, mod := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport util::{double as d};\nfn main() { let r = d(21); }",
		"util.clt": utilSrc,
	})
	be.Equal(t, ctx.HasErrors(), false)

	_, ok := mod.Scope.Resolve("d")
	be.True(t, ok)
	_, ok = mod.Scope.Resolve("double")
	be.Equal(t, ok, false)
}

func TestNonExportedSymbol(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport util::{hidden};",
		"util.clt": utilSrc,
	})
	be.True(t, hasCode(ctx, diagnostics.ErrSymbolNotExported))
}

func TestUnknownImportedSymbol(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport util::{absent};",
		"util.clt": utilSrc,
	})
	be.True(t, hasCode(ctx, diagnostics.ErrUndefinedSymbol))
}

func TestNamespaceMemberNotExported(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport util;\nfn main() { let r = util.hidden(); }",
		"util.clt": utilSrc,
	})
	be.True(t, hasCode(ctx, diagnostics.ErrSymbolNotExported))
}

func TestModuleNotFound(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport nope;",
	})
	be.True(t, hasCode(ctx, diagnostics.ErrModuleNotFound))
}

func TestDottedImportPath(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt":       "mod main;\nimport geo.shapes;\nfn main() { let a = shapes.area(2, 3); }",
		"geo/shapes.clt": "mod shapes;\npub fn area(w: i32, h: i32) -> i32 { ret w * h; }",
	})
	be.Equal(t, ctx.HasErrors(), false)
}

func TestDirectoryFallbackPath(t *testing.T) {
	// geo/shapes.clt is absent; the loader falls back to
	// geo/shapes/shapes.clt
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt":              "mod main;\nimport geo.shapes;\nfn main() { let a = shapes.area(2, 3); }",
		"geo/shapes/shapes.clt": "mod shapes;\npub fn area(w: i32, h: i32) -> i32 { ret w * h; }",
	})
	be.Equal(t, ctx.HasErrors(), false)
}

func TestCircularImport(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport a;",
		"a.clt":    "mod a;\nimport b;",
		"b.clt":    "mod b;\nimport a;",
	})
	be.True(t, hasCode(ctx, diagnostics.ErrCyclicImport))
}

func TestDiamondImportIsNotACycle(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt": "mod main;\nimport a;\nimport b;",
		"a.clt":    "mod a;\nimport shared;",
		"b.clt":    "mod b;\nimport shared;",
		"shared.clt": `
mod shared;
pub let answer: i32 = 42;
`,
	})
	be.Equal(t, ctx.HasErrors(), false)

	// loaded once, referenced from both importers
	_, ok := ctx.GetModule("shared")
	be.True(t, ok)
}

func TestImportedTypeUsableInSignatures(t *testing.T) {
	ctx, _ := analyzeProject(t, map[string]string{
		"main.clt": `
mod main;
import geometry::{Point};

fn origin() -> Point { ret Point{x: 0, y: 0}; }
`,
		"geometry.clt": `
mod geometry;

pub struct Point {
    x -> i32;
    y -> i32;
}
`,
	})
	be.Equal(t, ctx.HasErrors(), false)
}
