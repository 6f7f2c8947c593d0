package typechecker

import (
	"fmt"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/typeresolver"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

// typeOf infers the type of an expression, records it, and returns it.
func (c *checker) typeOf(expr ast.Expression) types.SemType {
	return c.typeOfExpected(expr, nil)
}

// typeOfExpected carries an expected type downward for the few forms
// that are context sensitive, such as null literals and empty array
// literals.
func (c *checker) typeOfExpected(expr ast.Expression, expected types.SemType) types.SemType {
	t := c.inferExpr(expr, expected)
	c.ctx.SetType(expr, t)
	return t
}

func (c *checker) inferExpr(expr ast.Expression, expected types.SemType) types.SemType {
	switch e := expr.(type) {
	case *ast.NumberLiteralExpr:
		return c.numberLiteralType(e)
	case *ast.StringLiteralExpr:
		return types.TypeString
	case *ast.CharLiteralExpr:
		return types.TypeChar
	case *ast.BoolLiteralExpr:
		return types.TypeBool
	case *ast.NullLiteralExpr:
		return types.TypeNull
	case *ast.ArrayLiteralExpr:
		return c.arrayLiteralType(e, expected)
	case *ast.StructLiteralExpr:
		return c.structLiteralType(e)
	case *ast.IdentifierExpr:
		return c.identifierType(e)
	case *ast.BinaryExpr:
		return c.binaryType(e)
	case *ast.UnaryExpr:
		return c.unaryType(e)
	case *ast.PrefixExpr:
		return c.incDecType(e.X, e.Op.Kind, e.Loc())
	case *ast.PostfixExpr:
		return c.incDecType(e.X, e.Op.Kind, e.Loc())
	case *ast.AssignExpr:
		return c.assignType(e)
	case *ast.TernaryExpr:
		return c.ternaryType(e)
	case *ast.CallExpr:
		return c.callType(e)
	case *ast.SelectorExpr:
		return c.selectorType(e)
	case *ast.IndexExpr:
		return c.indexType(e)
	case *ast.CastExpr:
		return c.castType(e)
	case *ast.ProjectionExpr:
		return c.projectionType(e)
	case *ast.InvalidExpr:
		return types.TypeUnknown
	default:
		return types.TypeUnknown
	}
}

func (c *checker) identifierType(e *ast.IdentifierExpr) types.SemType {
	sym, ok := c.ctx.SymbolOf(e)
	if !ok {
		// undefined, already reported by the binder
		return types.TypeUnknown
	}
	if e.Name == "self" && sym.Kind == symbols.SymParameter && types.IsUnknown(sym.Type) {
		return c.selfType
	}
	return sym.Type
}

func (c *checker) arrayLiteralType(e *ast.ArrayLiteralExpr, expected types.SemType) types.SemType {
	var elemExpected types.SemType
	if arr, ok := expected.(*types.ArrayType); ok {
		elemExpected = arr.Element
	}

	if len(e.Elements) == 0 {
		if elemExpected != nil {
			return &types.ArrayType{Element: elemExpected}
		}
		return &types.ArrayType{Element: types.TypeUnknown}
	}

	elem := c.typeOfExpected(e.Elements[0], elemExpected)
	for _, el := range e.Elements[1:] {
		t := c.typeOfExpected(el, elem)
		if types.IsUnknown(elem) {
			elem = t
			continue
		}
		if types.IsNumeric(elem) && types.IsNumeric(t) {
			elem = types.Wider(elem, t)
			continue
		}
		if !types.IsAssignable(elem, t) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("array element is %s, expected %s", t.String(), elem.String())).
					WithCode(diagnostics.ErrTypeMismatch).
					WithPrimaryLabel(c.loc(el), ""),
			)
		}
	}
	return &types.ArrayType{Element: elem}
}

// structLiteralType validates a struct literal against its declared
// type: every declared field present, no extras. Each missing or
// unexpected field produces its own diagnostic.
func (c *checker) structLiteralType(e *ast.StructLiteralExpr) types.SemType {
	sym, ok := c.ctx.SymbolOf(e.TypeName)
	if !ok || types.IsUnknown(sym.Type) {
		for _, f := range e.Fields {
			c.typeOf(f.Value)
		}
		return types.TypeUnknown
	}

	st, isStruct := sym.Type.(*types.StructType)
	if !isStruct {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("%s is not a struct type", e.TypeName.Name)).
				WithCode(diagnostics.ErrTypeMismatch).
				WithPrimaryLabel(e.TypeName.Loc(), "struct literal requires a struct"),
		)
		for _, f := range e.Fields {
			c.typeOf(f.Value)
		}
		return types.TypeUnknown
	}

	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		decl, found := st.Field(f.Name.Name)
		if !found {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("struct %s has no field %q", st.Name, f.Name.Name)).
					WithCode(diagnostics.ErrUnexpectedField).
					WithPrimaryLabel(f.Name.Loc(), ""),
			)
			c.typeOf(f.Value)
			continue
		}
		if seen[f.Name.Name] {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("field %q set more than once", f.Name.Name)).
					WithCode(diagnostics.ErrUnexpectedField).
					WithPrimaryLabel(f.Name.Loc(), ""),
			)
		}
		seen[f.Name.Name] = true
		got := c.typeOfExpected(f.Value, decl.Type)
		c.requireAssignable(decl.Type, got, f.Value)
	}

	for _, f := range st.Fields {
		if !seen[f.Name] {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("missing field %q in literal of struct %s", f.Name, st.Name)).
					WithCode(diagnostics.ErrMissingField).
					WithPrimaryLabel(e.Loc(), "").
					WithHelp("every declared field must be set"),
			)
		}
	}

	return st
}

func (c *checker) ternaryType(e *ast.TernaryExpr) types.SemType {
	c.requireBool(e.Cond, "ternary condition")

	thenT := c.typeOf(e.Then)
	elseT := c.typeOf(e.Else)

	if t, ok := unifyBranches(thenT, elseT); ok {
		return t
	}
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("ternary branches have incompatible types %s and %s", thenT.String(), elseT.String())).
			WithCode(diagnostics.ErrTernaryBranches).
			WithPrimaryLabel(e.Loc(), "").
			WithHelp("both branches must produce a common type"),
	)
	return types.TypeUnknown
}

// unifyBranches finds the common type of the two arms of a ternary:
// exact match, numeric widening, or string concatenation dominance.
func unifyBranches(a, b types.SemType) (types.SemType, bool) {
	if types.IsUnknown(a) || types.IsUnknown(b) {
		return types.TypeUnknown, true
	}
	if a.Equals(b) {
		return a, true
	}
	if types.IsNumeric(a) && types.IsNumeric(b) {
		return types.Wider(a, b), true
	}
	if (types.IsString(a) && types.IsNumeric(b)) || (types.IsNumeric(a) && types.IsString(b)) {
		return types.TypeString, true
	}
	if types.IsNull(a) && types.IsNullable(b) {
		return b, true
	}
	if types.IsNullable(a) && types.IsNull(b) {
		return a, true
	}
	return nil, false
}

func (c *checker) assignType(e *ast.AssignExpr) types.SemType {
	targetT := c.typeOf(e.Target)
	valueT := c.typeOfExpected(e.Value, targetT)

	c.checkMutable(e.Target)

	switch e.Op.Kind {
	case tokens.EQUALS_TOKEN:
		c.requireAssignable(targetT, valueT, e.Value)
	case tokens.PLUS_EQUALS_TOKEN:
		// += additionally allows appending to a string
		if types.IsString(targetT) && (types.IsString(valueT) || types.IsNumeric(valueT) || types.IsUnknown(valueT)) {
			break
		}
		c.requireNumericPair(targetT, valueT, "+=", e.Loc())
	case tokens.MOD_EQUALS_TOKEN:
		if !bothIntegerOrUnknown(targetT, valueT) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("operator %%= requires integer operands, got %s and %s", targetT.String(), valueT.String())).
					WithCode(diagnostics.ErrInvalidOperation).
					WithPrimaryLabel(e.Loc(), ""),
			)
		}
	default: // -= *= /=
		c.requireNumericPair(targetT, valueT, string(e.Op.Kind), e.Loc())
	}

	return targetT
}

// checkMutable reports assignment to immutable bindings and final
// fields.
func (c *checker) checkMutable(target ast.Expression) {
	switch t := target.(type) {
	case *ast.IdentifierExpr:
		sym, ok := c.ctx.SymbolOf(t)
		if !ok {
			return
		}
		if sym.IsFinal || (!sym.Mutable && sym.Kind == symbols.SymVariable) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("cannot assign to immutable binding %q", t.Name)).
					WithCode(diagnostics.ErrFinalReassignment).
					WithPrimaryLabel(t.Loc(), "declared immutable").
					WithHelp("declare the variable with var to allow reassignment"),
			)
		}
	case *ast.SelectorExpr:
		recv := c.ctx.TypeOf(t.X)
		if f, ok := fieldOf(recv, t.Field.Name); ok && f.Final {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("cannot assign to final field %q", f.Name)).
					WithCode(diagnostics.ErrFinalReassignment).
					WithPrimaryLabel(t.Field.Loc(), ""),
			)
		}
	}
}

func (c *checker) callType(e *ast.CallExpr) types.SemType {
	calleeT := c.typeOf(e.Fun)

	argTypes := make([]types.SemType, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = c.typeOf(arg)
	}

	// calling a type name constructs a value
	if sym, ok := c.ctx.SymbolOf(calleeNode(e.Fun)); ok && sym.Kind == symbols.SymType {
		return c.constructType(e, sym, argTypes)
	}

	fn, ok := calleeT.(*types.FunctionType)
	if !ok {
		if !types.IsUnknown(calleeT) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("%s is not callable", calleeT.String())).
					WithCode(diagnostics.ErrNotCallable).
					WithPrimaryLabel(c.loc(e.Fun), ""),
			)
		}
		return types.TypeUnknown
	}

	c.checkArgTypes(e, fn, argTypes)
	return fn.Return
}

// constructType handles Class(...) and enum constructor calls. Class
// builders are selected by arity.
func (c *checker) constructType(e *ast.CallExpr, sym *symbols.Symbol, argTypes []types.SemType) types.SemType {
	switch t := sym.Type.(type) {
	case *types.ClassType:
		for _, b := range t.Builders {
			if len(b.Params) == len(argTypes) {
				c.checkArgTypes(e, b, argTypes)
				return t
			}
		}
		c.ctx.Diagnostics.Add(
			diagnostics.WrongArgumentCount(e.Loc(), t.Name, builderArities(t), len(argTypes)))
		return t
	case *types.EnumType:
		if t.Constructor != nil {
			c.checkArgTypes(e, t.Constructor, argTypes)
		}
		return t
	case *types.StructType:
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("struct %s is constructed with a literal, not a call", t.Name)).
				WithCode(diagnostics.ErrNotCallable).
				WithPrimaryLabel(e.Loc(), "").
				WithHelp(fmt.Sprintf("write %s{...} instead", t.Name)),
		)
		return t
	default:
		return types.TypeUnknown
	}
}

func (c *checker) checkArgTypes(e *ast.CallExpr, fn *types.FunctionType, argTypes []types.SemType) {
	if len(argTypes) != len(fn.Params) {
		c.ctx.Diagnostics.Add(
			diagnostics.WrongArgumentCount(e.Loc(), calleeName(e.Fun), fmt.Sprintf("%d", len(fn.Params)), len(argTypes)))
		return
	}
	for i, at := range argTypes {
		want := fn.Params[i].Type
		if !types.IsAssignable(want, at) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("argument %d is %s, expected %s", i+1, at.String(), want.String())).
					WithCode(diagnostics.ErrTypeMismatch).
					WithPrimaryLabel(c.loc(e.Args[i]), ""),
			)
		}
	}
}

func (c *checker) selectorType(e *ast.SelectorExpr) types.SemType {
	// module members were bound during name resolution
	if sym, ok := c.ctx.SymbolOf(e); ok {
		c.typeOf(e.X)
		c.ctx.SetType(e.X, types.TypeUnknown)
		return sym.Type
	}

	// Type::member accesses: enum variants and numeric metadata
	if base, ok := e.X.(*ast.IdentifierExpr); ok {
		if sym, bound := c.ctx.SymbolOf(base); bound && sym.Kind == symbols.SymType {
			return c.typeMemberType(e, sym)
		}
	}

	recvT := c.typeOf(e.X)
	if types.IsUnknown(recvT) {
		return types.TypeUnknown
	}
	if types.IsNullable(recvT) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("cannot access member of nullable type %s", recvT.String())).
				WithCode(diagnostics.ErrTypeMismatch).
				WithPrimaryLabel(c.loc(e.X), "may be null here").
				WithHelp("check the value against null and assign it to a plain binding first"),
		)
		return types.TypeUnknown
	}

	if f, ok := fieldOf(recvT, e.Field.Name); ok {
		if f.Access != types.AccessPublic && !isSelfAccess(e.X) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("field %q is %s", f.Name, f.Access.String())).
					WithCode(diagnostics.ErrAccessViolation).
					WithPrimaryLabel(e.Field.Loc(), "not accessible here"),
			)
		}
		return f.Type
	}
	if m, ok := methodOf(recvT, e.Field.Name); ok {
		if m.Access != types.AccessPublic && !isSelfAccess(e.X) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("method %q is %s", e.Field.Name, m.Access.String())).
					WithCode(diagnostics.ErrAccessViolation).
					WithPrimaryLabel(e.Field.Loc(), "not accessible here"),
			)
		}
		return m.Sig
	}
	if types.IsString(recvT) && e.Field.Name == "length" {
		return types.TypeI32
	}
	if arr, ok := recvT.(*types.ArrayType); ok && e.Field.Name == "length" {
		_ = arr
		return types.TypeI32
	}

	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("%s has no member %q", recvT.String(), e.Field.Name)).
			WithCode(diagnostics.ErrFieldNotFound).
			WithPrimaryLabel(e.Field.Loc(), ""),
	)
	return types.TypeUnknown
}

// typeMemberType resolves Enum::Variant and primitive metadata such as
// i32::MAX.
func (c *checker) typeMemberType(e *ast.SelectorExpr, sym *symbols.Symbol) types.SemType {
	switch t := sym.Type.(type) {
	case *types.EnumType:
		if _, ok := t.Variant(e.Field.Name); ok {
			c.ctx.SetSymbol(e.Field, sym)
			return t
		}
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("enum %s has no constant %q", t.Name, e.Field.Name)).
				WithCode(diagnostics.ErrFieldNotFound).
				WithPrimaryLabel(e.Field.Loc(), ""),
		)
		return t
	case *types.PrimitiveType:
		if types.IsNumeric(t) {
			switch e.Field.Name {
			case "MIN", "MAX":
				return t
			case "BITS", "BYTES":
				return types.TypeI32
			}
		}
	}
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("%s has no member %q", sym.Name, e.Field.Name)).
			WithCode(diagnostics.ErrFieldNotFound).
			WithPrimaryLabel(e.Field.Loc(), ""),
	)
	return types.TypeUnknown
}

func (c *checker) indexType(e *ast.IndexExpr) types.SemType {
	recvT := c.typeOf(e.X)
	idxT := c.typeOf(e.Index)

	if !types.IsInteger(idxT) && !types.IsUnknown(idxT) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("index must be an integer, got %s", idxT.String())).
				WithCode(diagnostics.ErrTypeMismatch).
				WithPrimaryLabel(c.loc(e.Index), ""),
		)
	}

	switch t := recvT.(type) {
	case *types.ArrayType:
		return t.Element
	case *types.PrimitiveType:
		if types.IsString(t) {
			return types.TypeChar
		}
		if types.IsUnknown(t) {
			return types.TypeUnknown
		}
	}
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("%s cannot be indexed", recvT.String())).
			WithCode(diagnostics.ErrNotIndexable).
			WithPrimaryLabel(c.loc(e.X), ""),
	)
	return types.TypeUnknown
}

func (c *checker) castType(e *ast.CastExpr) types.SemType {
	from := c.typeOf(e.X)
	to := typeresolver.Resolve(c.ctx, c.mod, e.Target)

	if types.IsUnknown(from) || types.IsUnknown(to) {
		return to
	}
	if from.Equals(to) {
		return to
	}
	if types.IsNumeric(from) && types.IsNumeric(to) {
		return to
	}
	// unwrapping a nullable requires an explicit cast
	if n, ok := from.(*types.NullableType); ok && n.Inner.Equals(to) {
		return to
	}
	if n, ok := to.(*types.NullableType); ok && types.IsAssignable(n, from) {
		return to
	}

	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("cannot cast %s to %s", from.String(), to.String())).
			WithCode(diagnostics.ErrInvalidCast).
			WithPrimaryLabel(e.Loc(), ""),
	)
	return to
}

// projectionType narrows a struct, class, or enum value to a subset of
// its fields, producing an anonymous struct type. Enum fields are the
// builder parameters each constructed variant carries.
func (c *checker) projectionType(e *ast.ProjectionExpr) types.SemType {
	recvT := c.typeOf(e.X)
	if types.IsUnknown(recvT) {
		return types.TypeUnknown
	}

	result := types.NewStruct("", nil)
	ok := true
	for _, fieldName := range e.Fields {
		f, found := fieldOf(recvT, fieldName.Name)
		if !found {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("%s has no field %q", recvT.String(), fieldName.Name)).
					WithCode(diagnostics.ErrFieldNotFound).
					WithPrimaryLabel(fieldName.Loc(), ""),
			)
			ok = false
			continue
		}
		result.Fields = append(result.Fields, f)
	}
	if !ok {
		return types.TypeUnknown
	}
	return result
}

// ---------- shared helpers ----------

func (c *checker) requireBool(cond ast.Expression, what string) {
	t := c.typeOf(cond)
	if !types.IsBool(t) && !types.IsUnknown(t) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("%s must be bool, got %s", what, t.String())).
				WithCode(diagnostics.ErrConditionNotBool).
				WithPrimaryLabel(c.loc(cond), ""),
		)
	}
}

func (c *checker) requireInteger(expr ast.Expression, what string) {
	t := c.typeOf(expr)
	if !types.IsInteger(t) && !types.IsUnknown(t) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("%s must be an integer, got %s", what, t.String())).
				WithCode(diagnostics.ErrTypeMismatch).
				WithPrimaryLabel(c.loc(expr), ""),
		)
	}
}

// requireAssignable reports a mismatch between a target type and a
// value type, distinguishing the null-to-non-nullable case.
func (c *checker) requireAssignable(target, value types.SemType, at ast.Expression) {
	if target == nil || types.IsAssignable(target, value) {
		return
	}
	if types.IsNull(value) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("null cannot be assigned to non-nullable type %s", target.String())).
				WithCode(diagnostics.ErrNullAssignment).
				WithPrimaryLabel(c.loc(at), "").
				WithHelp(fmt.Sprintf("declare the target as %s? to allow null", target.String())),
		)
		return
	}
	c.ctx.Diagnostics.Add(diagnostics.TypeMismatch(c.loc(at), target.String(), value.String()))
}

func (c *checker) requireNumericPair(a, b types.SemType, op string, loc *source.Location) {
	if bothNumericOrUnknown(a, b) {
		return
	}
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("operator %s requires numeric operands, got %s and %s", op, a.String(), b.String())).
			WithCode(diagnostics.ErrInvalidOperation).
			WithPrimaryLabel(loc, ""),
	)
}

func (c *checker) loc(node ast.Node) *source.Location {
	if node == nil {
		return nil
	}
	return node.Loc()
}

func bothNumericOrUnknown(a, b types.SemType) bool {
	okA := types.IsNumeric(a) || types.IsUnknown(a)
	okB := types.IsNumeric(b) || types.IsUnknown(b)
	return okA && okB
}

func bothIntegerOrUnknown(a, b types.SemType) bool {
	okA := types.IsInteger(a) || types.IsUnknown(a)
	okB := types.IsInteger(b) || types.IsUnknown(b)
	return okA && okB
}

func fieldOf(t types.SemType, name string) (types.StructField, bool) {
	switch v := t.(type) {
	case *types.StructType:
		return v.Field(name)
	case *types.ClassType:
		return v.Field(name)
	case *types.EnumType:
		return v.Field(name)
	}
	return types.StructField{}, false
}

func methodOf(t types.SemType, name string) (types.Method, bool) {
	switch v := t.(type) {
	case *types.StructType:
		m, ok := v.Methods[name]
		return m, ok
	case *types.ClassType:
		m, ok := v.Methods[name]
		return m, ok
	}
	return types.Method{}, false
}

func isSelfAccess(recv ast.Expression) bool {
	ident, ok := recv.(*ast.IdentifierExpr)
	return ok && ident.Name == "self"
}

// calleeNode unwraps the node whose binding decides whether a call is a
// construction.
func calleeNode(fun ast.Expression) ast.Node {
	switch f := fun.(type) {
	case *ast.IdentifierExpr:
		return f
	case *ast.SelectorExpr:
		return f
	default:
		return fun
	}
}

func calleeName(fun ast.Expression) string {
	switch f := fun.(type) {
	case *ast.IdentifierExpr:
		return f.Name
	case *ast.SelectorExpr:
		return f.Field.Name
	default:
		return "function"
	}
}

func builderArities(t *types.ClassType) string {
	if len(t.Builders) == 0 {
		return "0"
	}
	out := ""
	for i, b := range t.Builders {
		if i > 0 {
			out += " or "
		}
		out += fmt.Sprintf("%d", len(b.Params))
	}
	return out
}
