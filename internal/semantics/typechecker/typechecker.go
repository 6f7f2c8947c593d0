// Package typechecker implements the final analysis pass. It infers a
// type for every expression, validates assignments, calls, conditions,
// and returns, and records results in the analyzer context. The unknown
// sentinel flows through silently so one error does not cascade into
// dozens of follow-on diagnostics.
package typechecker

import (
	"fmt"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/context"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/typeresolver"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

type checker struct {
	ctx *context.AnalyzerContext
	mod *context.Module

	// state for the function currently being checked
	returnType types.SemType
	selfType   types.SemType
	loopDepth  int
}

// CheckModule type checks every declaration of one module.
func CheckModule(ctx *context.AnalyzerContext, mod *context.Module) {
	if mod.AST == nil {
		return
	}
	c := &checker{ctx: ctx, mod: mod}

	for _, decl := range mod.AST.Decls {
		c.checkDecl(decl)
	}
	mod.Phase = context.PhaseChecked
}

func (c *checker) checkDecl(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		c.checkFunc(d, nil)
	case *ast.ClassDecl:
		c.checkClass(d)
	case *ast.StructDecl:
		c.checkStruct(d)
	case *ast.EnumDecl:
		c.checkEnum(d)
	case *ast.GlobalVarDecl:
		c.checkGlobalVar(d)
	}
}

func (c *checker) checkFunc(fn *ast.FuncDecl, self types.SemType) {
	prevReturn, prevSelf := c.returnType, c.selfType
	defer func() { c.returnType, c.selfType = prevReturn, prevSelf }()

	c.selfType = self
	c.returnType = types.TypeVoid
	if fn.IsBuilder {
		// a builder produces the owning type
		c.returnType = self
	} else if fn.ReturnType != nil {
		c.returnType = c.ctx.TypeOf(fn.ReturnType)
	}

	if fn.Body != nil {
		c.checkBlock(fn.Body)

		if !types.IsVoid(c.returnType) && !types.IsUnknown(c.returnType) &&
			!fn.IsBuilder && !hasValueReturn(fn.Body) {
			name := "function"
			if fn.Name != nil {
				name = fmt.Sprintf("function %q", fn.Name.Name)
			}
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("%s never returns a value", name)).
					WithCode(diagnostics.ErrMissingReturn).
					WithPrimaryLabel(fn.Loc(), fmt.Sprintf("expected a %s return", c.returnType.String())),
			)
		}
	}
}

func (c *checker) checkClass(d *ast.ClassDecl) {
	self := c.lookupOwnType(d.Name.Name)
	for _, b := range d.Builders {
		c.checkFunc(b, self)
	}
	for _, m := range d.Methods {
		c.checkFunc(m, self)
	}
}

func (c *checker) checkStruct(d *ast.StructDecl) {
	self := c.lookupOwnType(d.Name.Name)
	for _, m := range d.Methods {
		c.checkFunc(m, self)
	}
}

// checkEnum validates constants against the builder signature: argument
// bearing constants require a builder, every constant must match its
// arity, and each argument must be assignable to the matching
// parameter. Arity and builder mistakes yield one diagnostic per enum.
func (c *checker) checkEnum(d *ast.EnumDecl) {
	var builder *types.FunctionType
	if d.Builder != nil {
		c.checkFunc(d.Builder, c.lookupOwnType(d.Name.Name))
		if et, ok := c.lookupOwnType(d.Name.Name).(*types.EnumType); ok {
			builder = et.Constructor
		}
	}

	if builder == nil {
		for _, cs := range d.Cases {
			for _, arg := range cs.Args {
				c.typeOf(arg)
			}
		}
		c.checkBuilderlessCases(d)
		return
	}

	expected := len(builder.Params)
	for _, cs := range d.Cases {
		if len(cs.Args) != expected {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("enum %q constants must all take %d argument(s), but %q takes %d",
					d.Name.Name, expected, cs.Name.Name, len(cs.Args))).
					WithCode(diagnostics.ErrEnumArity).
					WithPrimaryLabel(cs.Name.Loc(), "").
					WithHelp("give every constant the same argument count as the builder"),
			)
			return
		}
	}

	for _, cs := range d.Cases {
		for i, arg := range cs.Args {
			want := builder.Params[i].Type
			got := c.typeOfExpected(arg, want)
			c.requireAssignable(want, got, arg)
		}
	}
}

// checkBuilderlessCases reports the first constant that carries
// arguments without a builder to receive them, or the first arity
// disagreement between constants.
func (c *checker) checkBuilderlessCases(d *ast.EnumDecl) {
	if len(d.Cases) == 0 {
		return
	}
	first := len(d.Cases[0].Args)
	for _, cs := range d.Cases {
		if len(cs.Args) != first {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("enum %q constants must all take %d argument(s), but %q takes %d",
					d.Name.Name, first, cs.Name.Name, len(cs.Args))).
					WithCode(diagnostics.ErrEnumArity).
					WithPrimaryLabel(cs.Name.Loc(), "").
					WithHelp("give every constant the same argument count"),
			)
			return
		}
	}
	if first > 0 {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("enum %q constants take arguments but the enum declares no builder", d.Name.Name)).
				WithCode(diagnostics.ErrMissingBuilder).
				WithPrimaryLabel(d.Cases[0].Name.Loc(), "").
				WithHelp("declare a builder with one parameter per argument"),
		)
	}
}

func (c *checker) checkGlobalVar(d *ast.GlobalVarDecl) {
	sym, _ := c.mod.Scope.ResolveLocal(d.Name.Name)
	c.checkVarInit(sym, d.TypeAnn, d.Init, d)
}

// checkVarInit resolves the declared or inferred type of a variable and
// validates the initializer against it. Shared by global and local
// declarations.
func (c *checker) checkVarInit(sym *symbols.Symbol, ann ast.TypeNode, init ast.Expression, node ast.Node) {
	var declared types.SemType
	if ann != nil {
		declared = c.ctx.TypeOf(ann)
		if types.IsUnknown(declared) {
			declared = typeresolver.Resolve(c.ctx, c.mod, ann)
		}
	}

	var inferred types.SemType = types.TypeUnknown
	if init != nil {
		inferred = c.typeOfExpected(init, declared)
	}

	final := declared
	if final == nil {
		final = inferred
		if types.IsNull(final) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError("cannot infer a type from null").
					WithCode(diagnostics.ErrNullAssignment).
					WithPrimaryLabel(c.loc(init), "").
					WithHelp("annotate the variable with a nullable type"),
			)
			final = types.TypeUnknown
		}
	} else if init != nil {
		c.requireAssignable(declared, inferred, init)
	}

	if sym != nil {
		sym.Type = final
	}
	if node != nil {
		c.ctx.SetType(node, final)
	}
}

// lookupOwnType fetches the descriptor a type declaration resolved to.
func (c *checker) lookupOwnType(name string) types.SemType {
	if sym, ok := c.mod.Scope.ResolveLocal(name); ok {
		return sym.Type
	}
	return types.TypeUnknown
}

// ---------- statements ----------

func (c *checker) checkBlock(b *ast.Block) {
	for _, stmt := range b.Stmts {
		c.checkStmt(stmt)
	}
}

func (c *checker) checkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		c.checkBlock(s)
	case *ast.VarDeclStmt:
		sym, _ := c.ctx.SymbolOf(s)
		c.checkVarInit(sym, s.TypeAnn, s.Init, s)
	case *ast.ExpressionStmt:
		c.typeOf(s.X)
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.IfStmt:
		c.requireBool(s.Cond, "if condition")
		c.checkBlock(s.Then)
		for _, clause := range s.Elifs {
			c.requireBool(clause.Cond, "elif condition")
			c.checkBlock(clause.Then)
		}
		if s.Else != nil {
			c.checkBlock(s.Else)
		}
	case *ast.WhileStmt:
		c.requireBool(s.Cond, "while condition")
		c.loopDepth++
		c.checkBlock(s.Body)
		c.loopDepth--
	case *ast.DoWhileStmt:
		c.loopDepth++
		c.checkBlock(s.Body)
		c.loopDepth--
		c.requireBool(s.Cond, "do-while condition")
	case *ast.LoopStmt:
		c.checkLoop(s)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError("break outside of a loop").
					WithCode(diagnostics.ErrInvalidStatement).
					WithPrimaryLabel(s.Loc(), ""),
			)
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError("continue outside of a loop").
					WithCode(diagnostics.ErrInvalidStatement).
					WithPrimaryLabel(s.Loc(), ""),
			)
		}
	}
}

func (c *checker) checkLoop(s *ast.LoopStmt) {
	c.requireInteger(s.From, "loop start")
	c.requireInteger(s.To, "loop end")
	if s.Step != nil {
		c.requireInteger(s.Step, "loop step")
	}

	// the loop variable takes the wider of the two bounds
	from := c.ctx.TypeOf(s.From)
	to := c.ctx.TypeOf(s.To)
	if sym, ok := c.ctx.SymbolOf(s.Var); ok {
		if w := types.Wider(from, to); types.IsInteger(w) {
			sym.Type = w
		}
	}

	c.loopDepth++
	c.checkBlock(s.Body)
	c.loopDepth--
}

func (c *checker) checkReturn(s *ast.ReturnStmt) {
	want := c.returnType
	if s.Value == nil {
		if !types.IsVoid(want) && !types.IsUnknown(want) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError("missing return value").
					WithCode(diagnostics.ErrMissingReturn).
					WithPrimaryLabel(s.Loc(), fmt.Sprintf("this function returns %s", want.String())),
			)
		}
		return
	}

	got := c.typeOfExpected(s.Value, want)
	if types.IsVoid(want) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError("cannot return a value from a void function").
				WithCode(diagnostics.ErrInvalidReturn).
				WithPrimaryLabel(c.loc(s.Value), "unexpected return value"),
		)
		return
	}
	if !types.IsAssignable(want, got) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("cannot return %s from a function returning %s", got.String(), want.String())).
				WithCode(diagnostics.ErrInvalidReturn).
				WithPrimaryLabel(c.loc(s.Value), ""),
		)
	}
}

// hasValueReturn reports whether any statement in the block returns a
// value. A single value return anywhere in the body satisfies a
// declared return type; per-path reachability is not analyzed.
func hasValueReturn(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, stmt := range b.Stmts {
		if stmtReturnsValue(stmt) {
			return true
		}
	}
	return false
}

func stmtReturnsValue(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return s.Value != nil
	case *ast.Block:
		return hasValueReturn(s)
	case *ast.IfStmt:
		if hasValueReturn(s.Then) || hasValueReturn(s.Else) {
			return true
		}
		for _, clause := range s.Elifs {
			if hasValueReturn(clause.Then) {
				return true
			}
		}
		return false
	case *ast.WhileStmt:
		return hasValueReturn(s.Body)
	case *ast.DoWhileStmt:
		return hasValueReturn(s.Body)
	case *ast.LoopStmt:
		return hasValueReturn(s.Body)
	default:
		return false
	}
}
