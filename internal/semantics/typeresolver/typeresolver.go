// Package typeresolver implements the fourth analysis pass: turning
// type annotations into canonical type descriptors and filling in the
// types of every module level symbol. Unresolvable annotations become
// the unknown sentinel plus a diagnostic; downstream passes treat
// unknown as compatible with everything so one bad annotation does not
// cascade.
package typeresolver

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

type resolver struct {
	ctx *context.AnalyzerContext
	mod *context.Module

	// inProgress guards against self referential type declarations.
	// A type being filled is already visible as its shell, so a field
	// of its own type resolves to the shell instead of recursing.
	inProgress map[string]bool
}

// ResolveModule fills the type of every symbol in the module scope.
// Type declarations are resolved first so that functions and variables
// can reference them.
func ResolveModule(ctx *context.AnalyzerContext, mod *context.Module) {
	r := &resolver{ctx: ctx, mod: mod, inProgress: make(map[string]bool)}

	for _, sym := range mod.Scope.Symbols() {
		if sym.Kind == symbols.SymType {
			r.resolveTypeSymbol(sym)
		}
	}
	for _, sym := range mod.Scope.Symbols() {
		switch sym.Kind {
		case symbols.SymFunction:
			r.resolveFunctionSymbol(sym)
		case symbols.SymVariable:
			r.resolveVariableSymbol(sym)
		}
	}
}

func (r *resolver) resolveTypeSymbol(sym *symbols.Symbol) {
	if !types.IsUnknown(sym.Type) || r.inProgress[sym.Name] {
		return
	}
	decl := r.ctx.Decl(sym.Decl)
	if decl == nil {
		return
	}

	r.inProgress[sym.Name] = true
	defer delete(r.inProgress, sym.Name)

	switch d := decl.(type) {
	case *ast.StructDecl:
		st := types.NewStruct(d.Name.Name, nil)
		sym.Type = st
		for _, f := range d.Fields {
			st.Fields = append(st.Fields, types.StructField{
				Name:   f.Name.Name,
				Type:   r.ResolveTypeNode(f.Type),
				Access: memberAccess(f.Visibility),
				Final:  f.IsFinal,
			})
		}
		for _, m := range d.Methods {
			st.Methods[m.Name.Name] = types.Method{
				Sig:    r.functionType(m),
				Access: memberAccess(m.Visibility),
			}
		}
	case *ast.ClassDecl:
		ct := types.NewClass(d.Name.Name)
		sym.Type = ct
		for _, f := range d.Fields {
			ct.Fields = append(ct.Fields, types.StructField{
				Name:   f.Name.Name,
				Type:   r.ResolveTypeNode(f.Type),
				Access: memberAccess(f.Visibility),
				Final:  f.IsFinal,
			})
		}
		for _, m := range d.Methods {
			ct.Methods[m.Name.Name] = types.Method{
				Sig:    r.functionType(m),
				Access: memberAccess(m.Visibility),
			}
		}
		for _, b := range d.Builders {
			ct.Builders = append(ct.Builders, r.functionType(b))
		}
	case *ast.EnumDecl:
		variants := make([]types.EnumVariant, 0, len(d.Cases))
		for _, c := range d.Cases {
			variants = append(variants, types.EnumVariant{
				Name:     c.Name.Name,
				ArgCount: len(c.Args),
			})
		}
		var ctor *types.FunctionType
		if d.Builder != nil {
			ctor = r.functionType(d.Builder)
		}
		sym.Type = types.NewEnum(d.Name.Name, variants, ctor)
	}
}

// memberAccess maps declaration visibility to the member access level.
// Unmarked members are public within the module.
func memberAccess(v ast.Visibility) types.Access {
	switch v {
	case ast.VisPrivate:
		return types.AccessPrivate
	case ast.VisProtected:
		return types.AccessProtected
	default:
		return types.AccessPublic
	}
}

func (r *resolver) resolveFunctionSymbol(sym *symbols.Symbol) {
	if !types.IsUnknown(sym.Type) {
		return
	}
	if d, ok := r.ctx.Decl(sym.Decl).(*ast.FuncDecl); ok {
		sym.Type = r.functionType(d)
	}
}

func (r *resolver) resolveVariableSymbol(sym *symbols.Symbol) {
	if !types.IsUnknown(sym.Type) {
		return
	}
	d, ok := r.ctx.Decl(sym.Decl).(*ast.GlobalVarDecl)
	if !ok {
		return
	}
	if d.TypeAnn != nil {
		sym.Type = r.ResolveTypeNode(d.TypeAnn)
	}
	// without an annotation the checker infers from the initializer
}

// functionType builds the signature descriptor for a function, method,
// or builder declaration. A builder has no declared return type; its
// value type is the owning type and the checker supplies it.
func (r *resolver) functionType(d *ast.FuncDecl) *types.FunctionType {
	params := make([]types.ParamType, 0, len(d.Params))
	for _, p := range d.Params {
		params = append(params, types.ParamType{
			Name: p.Name.Name,
			Type: r.ResolveTypeNode(p.Type),
		})
	}
	ret := types.SemType(types.TypeVoid)
	if d.ReturnType != nil {
		ret = r.ResolveTypeNode(d.ReturnType)
	}
	return types.NewFunction(params, ret)
}

// ResolveTypeNode maps one annotation to its descriptor and records it
// in the context so later passes can look it up by node.
func (r *resolver) ResolveTypeNode(n ast.TypeNode) types.SemType {
	t := r.resolveTypeNode(n)
	r.ctx.SetType(n, t)
	return t
}

func (r *resolver) resolveTypeNode(n ast.TypeNode) types.SemType {
	switch t := n.(type) {
	case *ast.NamedType:
		if p, ok := types.LookupBuiltin(t.Name); ok {
			return p
		}
		if sym, ok := r.mod.Scope.Resolve(t.Name); ok && sym.Kind == symbols.SymType {
			r.resolveTypeSymbol(sym)
			return sym.Type
		}
		if t.Name != "<invalid>" {
			r.ctx.Diagnostics.Add(diagnostics.UnknownType(t.Loc(), t.Name))
		}
		return types.TypeUnknown
	case *ast.ArrayTypeNode:
		return &types.ArrayType{Element: r.resolveTypeNode(t.Element)}
	case *ast.NullableTypeNode:
		return types.NewNullable(r.resolveTypeNode(t.Inner))
	default:
		return types.TypeUnknown
	}
}

// Resolve exposes annotation resolution to the type checker for local
// variable declarations and casts.
func Resolve(ctx *context.AnalyzerContext, mod *context.Module, n ast.TypeNode) types.SemType {
	r := &resolver{ctx: ctx, mod: mod, inProgress: make(map[string]bool)}
	return r.ResolveTypeNode(n)
}
