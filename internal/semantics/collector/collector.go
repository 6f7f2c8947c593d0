// Package collector implements the first analysis pass: it walks a
// module's top level declarations and builds the module scope. Every
// symbol starts with the unknown type; the type resolver fills the real
// descriptors once all modules have been collected.
package collector

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/table"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

// CollectModule declares every top level name of a module into a fresh
// scope rooted at the universe and records the public subset in
// mod.Exports.
func CollectModule(ctx *context.AnalyzerContext, mod *context.Module) {
	if mod.Scope == nil {
		mod.Scope = table.NewScope(ctx.Universe)
	}
	if mod.Exports == nil {
		mod.Exports = make(map[string]*symbols.Symbol)
	}
	if mod.AST == nil {
		return
	}

	for _, decl := range mod.AST.Decls {
		collectDecl(ctx, mod, decl)
	}

	mod.Phase = context.PhaseCollected
}

func collectDecl(ctx *context.AnalyzerContext, mod *context.Module, decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		declare(ctx, mod, &symbols.Symbol{
			Name:       d.Name.Name,
			Kind:       symbols.SymFunction,
			Type:       types.TypeUnknown,
			Visibility: d.Visibility,
			Decl:       ctx.AddDecl(d),
			Location:   d.Loc(),
		})
	case *ast.ClassDecl:
		declare(ctx, mod, &symbols.Symbol{
			Name:       d.Name.Name,
			Kind:       symbols.SymType,
			Type:       types.TypeUnknown,
			Visibility: d.Visibility,
			Decl:       ctx.AddDecl(d),
			Location:   d.Loc(),
		})
	case *ast.StructDecl:
		declare(ctx, mod, &symbols.Symbol{
			Name:       d.Name.Name,
			Kind:       symbols.SymType,
			Type:       types.TypeUnknown,
			Visibility: d.Visibility,
			Decl:       ctx.AddDecl(d),
			Location:   d.Loc(),
		})
	case *ast.EnumDecl:
		declare(ctx, mod, &symbols.Symbol{
			Name:       d.Name.Name,
			Kind:       symbols.SymType,
			Type:       types.TypeUnknown,
			Visibility: d.Visibility,
			Decl:       ctx.AddDecl(d),
			Location:   d.Loc(),
		})
	case *ast.GlobalVarDecl:
		declare(ctx, mod, &symbols.Symbol{
			Name:       d.Name.Name,
			Kind:       symbols.SymVariable,
			Type:       types.TypeUnknown,
			Visibility: d.Visibility,
			IsFinal:    d.IsFinal,
			Mutable:    !d.IsLet && !d.IsFinal,
			Decl:       ctx.AddDecl(d),
			Location:   d.Loc(),
		})
	case *ast.InvalidDecl:
		// parse error already reported
	}
}

func declare(ctx *context.AnalyzerContext, mod *context.Module, sym *symbols.Symbol) {
	if sym.Name == "<invalid>" {
		return
	}
	if prev, ok := mod.Scope.Define(sym); !ok {
		var prevLoc *source.Location
		if prev != nil {
			prevLoc = prev.Location
		}
		ctx.Diagnostics.Add(diagnostics.RedeclaredSymbol(sym.Location, prevLoc, sym.Name))
		return
	}
	if sym.IsExported() {
		mod.Exports[sym.Name] = sym
	}
}
