// Package imports implements the second analysis pass: resolving
// import declarations. Each imported module is loaded from disk once,
// parsed, collected, and cached in the analyzer context; a visiting set
// turns circular imports into diagnostics instead of infinite
// recursion.
package imports

import (
	"fmt"
	"os"
	"strings"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/lexer"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/parser"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/collector"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

// Resolver loads and binds imported modules. A single resolver serves
// one analysis run; the visiting set tracks the import chain currently
// being expanded.
type Resolver struct {
	ctx      *context.AnalyzerContext
	visiting map[string]bool
	stack    []string
}

func NewResolver(ctx *context.AnalyzerContext) *Resolver {
	return &Resolver{
		ctx:      ctx,
		visiting: make(map[string]bool),
	}
}

// ResolveModule processes every import declaration of one module,
// loading dependencies first so their exports are available.
func (r *Resolver) ResolveModule(mod *context.Module) {
	if mod.AST == nil {
		return
	}
	r.visiting[mod.ImportPath] = true
	r.stack = append(r.stack, mod.ImportPath)
	defer func() {
		delete(r.visiting, mod.ImportPath)
		r.stack = r.stack[:len(r.stack)-1]
	}()

	for _, imp := range mod.AST.Imports {
		r.resolveImport(mod, imp)
	}

	mod.Phase = context.PhaseResolved
}

func (r *Resolver) resolveImport(mod *context.Module, imp *ast.ImportDecl) {
	path := strings.Join(imp.Segments, ".")

	if r.visiting[path] {
		chain := append(append([]string{}, r.stack...), path)
		r.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("circular import: %s", strings.Join(chain, " -> "))).
				WithCode(diagnostics.ErrCyclicImport).
				WithPrimaryLabel(imp.Loc(), "this import closes the cycle"),
		)
		return
	}

	dep, ok := r.load(path, imp)
	if !ok {
		return
	}

	if err := r.ctx.AddDependency(mod.ImportPath, path); err != nil {
		r.ctx.Diagnostics.Add(
			diagnostics.NewError(err.Error()).
				WithCode(diagnostics.ErrCyclicImport).
				WithPrimaryLabel(imp.Loc(), "this import closes the cycle"),
		)
		return
	}

	if len(imp.Items) == 0 {
		r.bindNamespace(mod, imp, dep)
	} else {
		r.bindItems(mod, imp, dep)
	}
}

// load returns the cached module for an import path, reading and
// analyzing the file on first use.
func (r *Resolver) load(path string, imp *ast.ImportDecl) (*context.Module, bool) {
	if mod, ok := r.ctx.GetModule(path); ok {
		return mod, true
	}

	var filePath, content string
	found := false
	for _, candidate := range r.ctx.ImportPathToFilePath(path) {
		data, err := os.ReadFile(candidate)
		if err == nil {
			filePath = candidate
			content = string(data)
			found = true
			break
		}
	}
	if !found {
		r.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("module %q not found", path)).
				WithCode(diagnostics.ErrModuleNotFound).
				WithPrimaryLabel(imp.Loc(), "cannot resolve this import").
				WithHelp(fmt.Sprintf("expected %s", strings.Join(r.ctx.ImportPathToFilePath(path), " or "))),
		)
		return nil, false
	}

	r.ctx.Diagnostics.AddSourceContent(filePath, content)

	lex := lexer.New(filePath, content, r.ctx.Diagnostics)
	toks := lex.Tokenize(r.ctx.Config.Debug)
	file := parser.Parse(toks, filePath, r.ctx.Diagnostics)

	dep := &context.Module{
		ImportPath: path,
		FilePath:   filePath,
		Content:    content,
		AST:        file,
		Phase:      context.PhaseParsed,
	}
	r.ctx.AddModule(path, dep)

	collector.CollectModule(r.ctx, dep)
	r.ResolveModule(dep)
	return dep, true
}

// bindNamespace handles the bare form `import a.b.c;`: the imported
// module becomes visible as a namespace under its last path segment.
func (r *Resolver) bindNamespace(mod *context.Module, imp *ast.ImportDecl, dep *context.Module) {
	name := imp.LastSegment()
	sym := &symbols.Symbol{
		Name:       name,
		Kind:       symbols.SymModule,
		Type:       types.TypeUnknown,
		Visibility: ast.VisDefault,
		Decl:       symbols.NoDecl,
		Location:   imp.Loc(),
		Exports:    dep.Exports,
	}
	if prev, ok := mod.Scope.Define(sym); !ok {
		r.ctx.Diagnostics.Add(diagnostics.RedeclaredSymbol(imp.Loc(), prevLocation(prev), name))
	}
}

// bindItems handles the group form `import a.b::{x, y as z};`: each
// named export is bound directly into the importer's scope.
func (r *Resolver) bindItems(mod *context.Module, imp *ast.ImportDecl, dep *context.Module) {
	for _, item := range imp.Items {
		exported, ok := dep.Exports[item.Name.Name]
		if !ok {
			if _, exists := dep.Scope.ResolveLocal(item.Name.Name); exists {
				r.ctx.Diagnostics.Add(
					diagnostics.NewError(fmt.Sprintf("%q is not exported by module %q", item.Name.Name, dep.ImportPath)).
						WithCode(diagnostics.ErrSymbolNotExported).
						WithPrimaryLabel(item.Name.Loc(), "not public").
						WithHelp("mark the declaration pub to export it"),
				)
			} else {
				r.ctx.Diagnostics.Add(
					diagnostics.NewError(fmt.Sprintf("module %q has no symbol %q", dep.ImportPath, item.Name.Name)).
						WithCode(diagnostics.ErrUndefinedSymbol).
						WithPrimaryLabel(item.Name.Loc(), ""),
				)
			}
			continue
		}

		name := item.Name.Name
		loc := item.Name.Loc()
		if item.Alias != nil {
			name = item.Alias.Name
			loc = item.Alias.Loc()
		}

		bound := *exported
		bound.Name = name
		if prev, ok := mod.Scope.Define(&bound); !ok {
			r.ctx.Diagnostics.Add(diagnostics.RedeclaredSymbol(loc, prevLocation(prev), name))
		}
	}
}

func prevLocation(prev *symbols.Symbol) *source.Location {
	if prev == nil {
		return nil
	}
	return prev.Location
}
