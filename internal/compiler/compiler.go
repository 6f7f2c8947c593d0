// Package compiler is the driver: it resolves the project around an
// entry file and runs the analysis passes in order over every module
// the entry pulls in.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/lexer"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/parser"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/project"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/binder"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/collector"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/imports"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/typechecker"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/typeresolver"
)

type Options struct {
	EntryFile string
	Debug     bool
}

type Result struct {
	Success bool
	Context *context.AnalyzerContext
}

// Compile analyzes the entry file and everything it imports. All
// findings end up in the result's diagnostic bag; Success reports
// whether any of them were errors.
func Compile(opts *Options) Result {
	root, manifestPath := project.FindRoot(opts.EntryFile)

	ctx := context.New(&context.Config{
		ProjectRoot: root,
		Extension:   ".clt",
		Debug:       opts.Debug,
	})

	manifest, err := project.Load(manifestPath)
	if err != nil {
		ctx.ReportError(err.Error(), nil)
		return Result{Success: false, Context: ctx}
	}
	manifest.CheckCompiler(ctx.Diagnostics)

	entry, ok := loadEntry(ctx, opts.EntryFile, root)
	if !ok {
		return Result{Success: false, Context: ctx}
	}

	collector.CollectModule(ctx, entry)
	imports.NewResolver(ctx).ResolveModule(entry)

	// whole-program passes run module by module in deterministic order
	for _, path := range ctx.ModulePaths() {
		mod, _ := ctx.GetModule(path)
		typeresolver.ResolveModule(ctx, mod)
	}
	for _, path := range ctx.ModulePaths() {
		mod, _ := ctx.GetModule(path)
		binder.BindModule(ctx, mod)
	}
	for _, path := range ctx.ModulePaths() {
		mod, _ := ctx.GetModule(path)
		typechecker.CheckModule(ctx, mod)
	}

	return Result{Success: !ctx.HasErrors(), Context: ctx}
}

func loadEntry(ctx *context.AnalyzerContext, entryFile, root string) (*context.Module, bool) {
	abs, err := filepath.Abs(entryFile)
	if err != nil {
		ctx.ReportError(fmt.Sprintf("cannot resolve path %q: %v", entryFile, err), nil)
		return nil, false
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		ctx.ReportError(fmt.Sprintf("cannot read %q: %v", entryFile, err), nil)
		return nil, false
	}
	content := string(data)
	ctx.Diagnostics.AddSourceContent(abs, content)

	lex := lexer.New(abs, content, ctx.Diagnostics)
	toks := lex.Tokenize(ctx.Config.Debug)
	file := parser.Parse(toks, abs, ctx.Diagnostics)

	mod := &context.Module{
		ImportPath: fileToImportPath(abs, root, ctx.Config.Extension),
		FilePath:   abs,
		Content:    content,
		AST:        file,
		Phase:      context.PhaseParsed,
	}
	ctx.AddModule(mod.ImportPath, mod)
	return mod, true
}

// fileToImportPath turns <root>/a/b/c.clt into the dotted path a.b.c.
func fileToImportPath(abs, root, ext string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		rel = filepath.Base(abs)
	}
	rel = strings.TrimSuffix(rel, ext)
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}
