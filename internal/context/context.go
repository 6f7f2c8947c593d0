// Package context holds the shared state threaded through every
// analysis pass: the module registry, the declaration arena, the
// universe scope, per node expression types, and the diagnostic bag.
// Passes receive it explicitly; nothing analyzer-wide lives in package
// globals.
package context

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/table"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

// Phase tracks how far a module has progressed. Progression is strictly
// sequential; a pass refuses to run on a module that has not completed
// the previous phase.
type Phase int

const (
	PhaseDiscovered Phase = iota
	PhaseParsed
	PhaseCollected
	PhaseResolved
	PhaseChecked
)

func (p Phase) String() string {
	switch p {
	case PhaseDiscovered:
		return "discovered"
	case PhaseParsed:
		return "parsed"
	case PhaseCollected:
		return "collected"
	case PhaseResolved:
		return "resolved"
	case PhaseChecked:
		return "checked"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Module is one source file under analysis, keyed by its dotted import
// path.
type Module struct {
	ImportPath string // dotted form, e.g. "geo.shapes"
	FilePath   string
	Content    string
	AST        *ast.File
	Phase      Phase

	// Scope holds every module-level symbol; Exports is the public
	// subset, built by the declaration collector.
	Scope   *table.Scope
	Exports map[string]*symbols.Symbol
}

// Config carries the settings the driver resolved before analysis.
type Config struct {
	ProjectRoot string
	Extension   string // source extension, ".clt"
	Debug       bool
}

// AnalyzerContext is the shared state for one analysis run.
type AnalyzerContext struct {
	Modules  map[string]*Module
	Universe *table.Scope

	Diagnostics *diagnostics.Bag
	Config      *Config

	// DepGraph maps importer path to imported paths, for cycle
	// detection and build ordering.
	DepGraph map[string][]string

	decls     []ast.Declaration
	exprTypes map[ast.Node]types.SemType
	bindings  map[ast.Node]*symbols.Symbol
	mu        sync.RWMutex
}

func New(config *Config) *AnalyzerContext {
	if config == nil {
		config = &Config{Extension: ".clt"}
	}
	if config.Extension == "" {
		config.Extension = ".clt"
	}

	universe := table.NewScope(nil)
	registerBuiltins(universe)

	return &AnalyzerContext{
		Modules:     make(map[string]*Module),
		Universe:    universe,
		Diagnostics: diagnostics.NewBag(),
		Config:      config,
		DepGraph:    make(map[string][]string),
		exprTypes:   make(map[ast.Node]types.SemType),
		bindings:    make(map[ast.Node]*symbols.Symbol),
	}
}

// registerBuiltins seeds the universe scope with the primitive type
// names and the built-in print function.
func registerBuiltins(universe *table.Scope) {
	for _, t := range types.Builtins() {
		universe.Define(&symbols.Symbol{
			Name:       string(t.GetName()),
			Kind:       symbols.SymType,
			Type:       t,
			Visibility: ast.VisPublic,
			Decl:       symbols.NoDecl,
		})
	}

	// print accepts a single value of any type
	universe.Define(&symbols.Symbol{
		Name: "print",
		Kind: symbols.SymFunction,
		Type: types.NewFunction(
			[]types.ParamType{{Name: "value", Type: types.TypeUnknown}},
			types.TypeVoid,
		),
		Visibility: ast.VisPublic,
		Decl:       symbols.NoDecl,
	})
}

// ---------- declaration arena ----------

// AddDecl interns a declaration and returns its handle.
func (ctx *AnalyzerContext) AddDecl(d ast.Declaration) symbols.DeclID {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.decls = append(ctx.decls, d)
	return symbols.DeclID(len(ctx.decls) - 1)
}

// Decl returns the declaration behind a handle, or nil for NoDecl.
func (ctx *AnalyzerContext) Decl(id symbols.DeclID) ast.Declaration {
	if id == symbols.NoDecl {
		return nil
	}
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	if int(id) >= len(ctx.decls) {
		return nil
	}
	return ctx.decls[id]
}

// ---------- expression types ----------

// SetType records the resolved type of a node. Nodes are never mutated
// after construction; types live here instead.
func (ctx *AnalyzerContext) SetType(node ast.Node, t types.SemType) {
	if node == nil || t == nil {
		return
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.exprTypes[node] = t
}

// TypeOf returns the recorded type for a node, or the unknown sentinel
// when nothing was recorded.
func (ctx *AnalyzerContext) TypeOf(node ast.Node) types.SemType {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	if t, ok := ctx.exprTypes[node]; ok {
		return t
	}
	return types.TypeUnknown
}

// ---------- name bindings ----------

// SetSymbol records which symbol an identifier resolved to.
func (ctx *AnalyzerContext) SetSymbol(node ast.Node, sym *symbols.Symbol) {
	if node == nil || sym == nil {
		return
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.bindings[node] = sym
}

// SymbolOf returns the symbol a node was bound to, if any.
func (ctx *AnalyzerContext) SymbolOf(node ast.Node) (*symbols.Symbol, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	sym, ok := ctx.bindings[node]
	return sym, ok
}

// ---------- module registry ----------

func (ctx *AnalyzerContext) AddModule(importPath string, mod *Module) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.Modules[importPath] = mod
}

func (ctx *AnalyzerContext) GetModule(importPath string) (*Module, bool) {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	mod, ok := ctx.Modules[importPath]
	return mod, ok
}

// ModulePaths returns all registered import paths, sorted for
// deterministic iteration.
func (ctx *AnalyzerContext) ModulePaths() []string {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	paths := make([]string, 0, len(ctx.Modules))
	for p := range ctx.Modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ---------- dependency graph ----------

// AddDependency records importer -> imported and rejects edges that
// would close a cycle, returning the cycle for the diagnostic.
func (ctx *AnalyzerContext) AddDependency(importer, imported string) error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if cycle := ctx.findCycle(imported, importer); cycle != nil {
		return fmt.Errorf("circular import: %s", strings.Join(cycle, " -> "))
	}
	for _, existing := range ctx.DepGraph[importer] {
		if existing == imported {
			return nil
		}
	}
	ctx.DepGraph[importer] = append(ctx.DepGraph[importer], imported)
	return nil
}

func (ctx *AnalyzerContext) findCycle(from, to string) []string {
	visited := make(map[string]bool)
	var path []string
	if ctx.walkDeps(from, to, visited, &path) {
		cycle := append([]string{to}, path...)
		return append(cycle, to)
	}
	return nil
}

func (ctx *AnalyzerContext) walkDeps(start, target string, visited map[string]bool, path *[]string) bool {
	if start == target {
		return true
	}
	if visited[start] {
		return false
	}
	visited[start] = true
	*path = append(*path, start)
	for _, dep := range ctx.DepGraph[start] {
		if ctx.walkDeps(dep, target, visited, path) {
			return true
		}
	}
	*path = (*path)[:len(*path)-1]
	return false
}

// ImportPathToFilePath maps a dotted import path to a candidate source
// file. `a.b.c` becomes `a/b/c.clt`; if that file is absent the loader
// falls back to `a/b/c/c.clt`.
func (ctx *AnalyzerContext) ImportPathToFilePath(importPath string) []string {
	rel := strings.ReplaceAll(importPath, ".", string(filepath.Separator))
	flat := filepath.Join(ctx.Config.ProjectRoot, rel+ctx.Config.Extension)
	nested := filepath.Join(ctx.Config.ProjectRoot, rel, filepath.Base(rel)+ctx.Config.Extension)
	return []string{flat, nested}
}

func (ctx *AnalyzerContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// ReportError is a convenience for passes that only need a plain error
// at a location.
func (ctx *AnalyzerContext) ReportError(message string, loc *source.Location) {
	d := diagnostics.NewError(message)
	if loc != nil {
		d = d.WithPrimaryLabel(loc, "")
	}
	ctx.Diagnostics.Add(d)
}
