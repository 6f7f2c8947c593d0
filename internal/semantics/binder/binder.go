// Package binder implements the third analysis pass: resolving every
// identifier to the symbol it names. Blocks, loops, and function bodies
// each open a fresh scope, so shadowing an outer name is legal. Member
// accesses whose resolution depends on the receiver's type are left for
// the type checker; only module namespace members are bound here.
package binder

import (
	"fmt"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/table"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

type binder struct {
	ctx    *context.AnalyzerContext
	mod    *context.Module
	scopes *table.Stack

	// reported suppresses repeat diagnostics for the same undefined
	// name inside one module.
	reported map[string]bool
}

// BindModule resolves all identifiers in a module's declarations.
func BindModule(ctx *context.AnalyzerContext, mod *context.Module) {
	if mod.AST == nil || mod.Scope == nil {
		return
	}
	b := &binder{
		ctx:      ctx,
		mod:      mod,
		scopes:   table.NewStack(mod.Scope),
		reported: make(map[string]bool),
	}

	for _, decl := range mod.AST.Decls {
		b.bindDecl(decl)
	}
}

func (b *binder) bindDecl(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		b.bindFunc(d, nil)
	case *ast.ClassDecl:
		b.bindOwnedFuncs(d.Name, d.Methods, d.Builders)
	case *ast.StructDecl:
		b.bindOwnedFuncs(d.Name, d.Methods, nil)
	case *ast.EnumDecl:
		for _, c := range d.Cases {
			for _, arg := range c.Args {
				b.bindExpr(arg)
			}
		}
		if d.Builder != nil {
			b.bindFunc(d.Builder, d.Name)
		}
	case *ast.GlobalVarDecl:
		if d.Init != nil {
			b.bindExpr(d.Init)
		}
	}
}

// bindOwnedFuncs binds methods and builders of a class or struct with a
// `self` receiver in scope.
func (b *binder) bindOwnedFuncs(owner *ast.IdentifierExpr, methods, builders []*ast.FuncDecl) {
	for _, m := range methods {
		b.bindFunc(m, owner)
	}
	for _, bd := range builders {
		b.bindFunc(bd, owner)
	}
}

func (b *binder) bindFunc(fn *ast.FuncDecl, owner *ast.IdentifierExpr) {
	b.scopes.Enter()
	defer b.scopes.Exit()

	if owner != nil {
		selfType := types.SemType(types.TypeUnknown)
		if sym, ok := b.mod.Scope.Resolve(owner.Name); ok {
			selfType = sym.Type
		}
		b.scopes.Define(&symbols.Symbol{
			Name:     "self",
			Kind:     symbols.SymParameter,
			Type:     selfType,
			Mutable:  true,
			Decl:     symbols.NoDecl,
			Location: fn.Loc(),
		})
	}

	for _, p := range fn.Params {
		sym := &symbols.Symbol{
			Name:     p.Name.Name,
			Kind:     symbols.SymParameter,
			Type:     b.ctx.TypeOf(p.Type),
			Mutable:  true,
			Decl:     symbols.NoDecl,
			Location: p.Name.Loc(),
		}
		b.defineLocal(sym)
		b.ctx.SetSymbol(p.Name, sym)
	}

	if fn.Body != nil {
		b.bindBlockStmts(fn.Body)
	}
}

// bindBlockStmts binds the statements of a block that already has a
// scope open for it.
func (b *binder) bindBlockStmts(block *ast.Block) {
	for _, stmt := range block.Stmts {
		b.bindStmt(stmt)
	}
}

func (b *binder) bindStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		b.scopes.Enter()
		b.bindBlockStmts(s)
		b.scopes.Exit()
	case *ast.VarDeclStmt:
		if s.Init != nil {
			b.bindExpr(s.Init)
		}
		sym := &symbols.Symbol{
			Name:     s.Name.Name,
			Kind:     symbols.SymVariable,
			Type:     types.TypeUnknown,
			Mutable:  !s.IsLet,
			Decl:     symbols.NoDecl,
			Location: s.Name.Loc(),
		}
		b.defineLocal(sym)
		b.ctx.SetSymbol(s.Name, sym)
		b.ctx.SetSymbol(s, sym)
	case *ast.ExpressionStmt:
		b.bindExpr(s.X)
	case *ast.ReturnStmt:
		if s.Value != nil {
			b.bindExpr(s.Value)
		}
	case *ast.IfStmt:
		b.bindExpr(s.Cond)
		b.bindNestedBlock(s.Then)
		for _, clause := range s.Elifs {
			b.bindExpr(clause.Cond)
			b.bindNestedBlock(clause.Then)
		}
		if s.Else != nil {
			b.bindNestedBlock(s.Else)
		}
	case *ast.WhileStmt:
		b.bindExpr(s.Cond)
		b.bindNestedBlock(s.Body)
	case *ast.DoWhileStmt:
		b.bindNestedBlock(s.Body)
		b.bindExpr(s.Cond)
	case *ast.LoopStmt:
		b.bindExpr(s.From)
		b.bindExpr(s.To)
		if s.Step != nil {
			b.bindExpr(s.Step)
		}
		b.scopes.Enter()
		sym := &symbols.Symbol{
			Name:     s.Var.Name,
			Kind:     symbols.SymVariable,
			Type:     types.TypeI32,
			Mutable:  false,
			Decl:     symbols.NoDecl,
			Location: s.Var.Loc(),
		}
		b.scopes.Define(sym)
		b.ctx.SetSymbol(s.Var, sym)
		b.bindBlockStmts(s.Body)
		b.scopes.Exit()
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.InvalidStmt:
		// nothing to resolve
	}
}

func (b *binder) bindNestedBlock(block *ast.Block) {
	if block == nil {
		return
	}
	b.scopes.Enter()
	b.bindBlockStmts(block)
	b.scopes.Exit()
}

func (b *binder) bindExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.IdentifierExpr:
		b.resolveIdent(e)
	case *ast.BinaryExpr:
		b.bindExpr(e.X)
		b.bindExpr(e.Y)
	case *ast.UnaryExpr:
		b.bindExpr(e.X)
	case *ast.PrefixExpr:
		b.bindExpr(e.X)
	case *ast.PostfixExpr:
		b.bindExpr(e.X)
	case *ast.AssignExpr:
		b.bindExpr(e.Target)
		b.bindExpr(e.Value)
	case *ast.TernaryExpr:
		b.bindExpr(e.Cond)
		b.bindExpr(e.Then)
		b.bindExpr(e.Else)
	case *ast.CallExpr:
		b.bindExpr(e.Fun)
		for _, arg := range e.Args {
			b.bindExpr(arg)
		}
	case *ast.IndexExpr:
		b.bindExpr(e.X)
		b.bindExpr(e.Index)
	case *ast.SelectorExpr:
		b.bindSelector(e)
	case *ast.ProjectionExpr:
		b.bindExpr(e.X)
	case *ast.CastExpr:
		b.bindExpr(e.X)
	case *ast.ArrayLiteralExpr:
		for _, el := range e.Elements {
			b.bindExpr(el)
		}
	case *ast.StructLiteralExpr:
		b.resolveIdent(e.TypeName)
		for _, f := range e.Fields {
			b.bindExpr(f.Value)
		}
	}
}

// bindSelector binds the receiver and, when the receiver names an
// imported module, binds the member to that module's export. All other
// member accesses are type dependent and resolved by the checker.
func (b *binder) bindSelector(sel *ast.SelectorExpr) {
	b.bindExpr(sel.X)

	ident, ok := sel.X.(*ast.IdentifierExpr)
	if !ok {
		return
	}
	sym, bound := b.ctx.SymbolOf(ident)
	if !bound || sym.Kind != symbols.SymModule {
		return
	}

	member, exported := sym.Exports[sel.Field.Name]
	if !exported {
		b.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("module %q has no exported symbol %q", ident.Name, sel.Field.Name)).
				WithCode(diagnostics.ErrSymbolNotExported).
				WithPrimaryLabel(sel.Field.Loc(), "").
				WithHelp("only pub declarations are visible through an import"),
		)
		return
	}
	b.ctx.SetSymbol(sel.Field, member)
	b.ctx.SetSymbol(sel, member)
}

func (b *binder) resolveIdent(ident *ast.IdentifierExpr) {
	if ident == nil || ident.Name == "<invalid>" {
		return
	}
	if sym, ok := b.scopes.Resolve(ident.Name); ok {
		b.ctx.SetSymbol(ident, sym)
		return
	}
	if !b.reported[ident.Name] {
		b.reported[ident.Name] = true
		b.ctx.Diagnostics.Add(diagnostics.UndefinedSymbol(ident.Loc(), ident.Name))
	}
}

func (b *binder) defineLocal(sym *symbols.Symbol) {
	if sym.Name == "<invalid>" {
		return
	}
	if prev, ok := b.scopes.Define(sym); !ok {
		var prevLoc *source.Location
		if prev != nil {
			prevLoc = prev.Location
		}
		b.ctx.Diagnostics.Add(diagnostics.RedeclaredSymbol(sym.Location, prevLoc, sym.Name))
	}
}
