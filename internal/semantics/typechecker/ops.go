package typechecker

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

// integer literal ceilings per target type; literals are unsigned in
// source, a leading minus is a separate operator
var intLiteralMax = map[types.TYPE_NAME]uint64{
	types.TYPE_I8:   127,
	types.TYPE_I16:  32767,
	types.TYPE_I32:  2147483647,
	types.TYPE_I64:  9223372036854775807,
	types.TYPE_U8:   255,
	types.TYPE_BYTE: 255,
	types.TYPE_U16:  65535,
	types.TYPE_U32:  4294967295,
	types.TYPE_U64:  math.MaxUint64,
}

var floatLiteralMax = map[types.TYPE_NAME]float64{
	types.TYPE_F16: 65504,
	types.TYPE_F32: math.MaxFloat32,
	types.TYPE_F64: math.MaxFloat64,
}

// numberLiteralType types a numeric literal. An explicit suffix wins;
// otherwise integers default to i32 and floats to f64. Values outside
// the target type's range are reported once.
func (c *checker) numberLiteralType(e *ast.NumberLiteralExpr) types.SemType {
	lit := e.Value

	target := types.SemType(types.TypeI32)
	if lit.IsFloat {
		target = types.TypeF64
	}
	if lit.Suffix != "" {
		suffixType, ok := types.LookupBuiltin(lit.Suffix)
		if !ok {
			return target
		}
		if lit.IsFloat && !types.IsFloat(suffixType) {
			c.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("float literal cannot have integer suffix %q", lit.Suffix)).
					WithCode(diagnostics.ErrTypeMismatch).
					WithPrimaryLabel(e.Loc(), "").
					WithHelp("use a float suffix such as f32 or f64"),
			)
			return types.TypeF64
		}
		target = suffixType
	}

	if prim, ok := target.(*types.PrimitiveType); ok {
		c.checkLiteralRange(e, lit.Digits, lit.Base, lit.IsFloat, prim)
	}
	return target
}

func (c *checker) checkLiteralRange(e *ast.NumberLiteralExpr, digits string, base int, isFloat bool, target *types.PrimitiveType) {
	name := target.GetName()

	if isFloat || types.IsFloat(target) {
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return
		}
		if max, ok := floatLiteralMax[name]; ok && math.Abs(v) > max {
			c.literalOutOfRange(e, target)
		}
		return
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		// only overflow can fail here, the lexer validated the digits
		c.literalOutOfRange(e, target)
		return
	}
	if max, ok := intLiteralMax[name]; ok && v > max {
		c.literalOutOfRange(e, target)
	}
}

func (c *checker) literalOutOfRange(e *ast.NumberLiteralExpr, target *types.PrimitiveType) {
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("literal %s does not fit in %s", e.Raw, target.String())).
			WithCode(diagnostics.ErrLiteralOutOfRange).
			WithPrimaryLabel(e.Loc(), "").
			WithHelp("use a wider type suffix"),
	)
}

func (c *checker) unaryType(e *ast.UnaryExpr) types.SemType {
	t := c.typeOf(e.X)
	if types.IsUnknown(t) {
		return types.TypeUnknown
	}

	switch e.Op.Kind {
	case tokens.NOT_TOKEN:
		if types.IsBool(t) {
			return types.TypeBool
		}
	case tokens.MINUS_TOKEN:
		if types.IsNumeric(t) {
			return t
		}
	case tokens.BIT_NOT_TOKEN:
		if types.IsInteger(t) {
			return t
		}
	}

	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("operator %s cannot be applied to %s", string(e.Op.Kind), t.String())).
			WithCode(diagnostics.ErrInvalidOperation).
			WithPrimaryLabel(e.Loc(), ""),
	)
	return types.TypeUnknown
}

// incDecType checks ++ and -- in either position: the operand must be a
// mutable numeric place.
func (c *checker) incDecType(x ast.Expression, op tokens.TOKEN, loc *source.Location) types.SemType {
	t := c.typeOf(x)

	switch x.(type) {
	case *ast.IdentifierExpr, *ast.SelectorExpr, *ast.IndexExpr:
		c.checkMutable(x)
	default:
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("operator %s requires a variable or member", string(op))).
				WithCode(diagnostics.ErrInvalidAssignTarget).
				WithPrimaryLabel(loc, ""),
		)
		return types.TypeUnknown
	}

	if !types.IsNumeric(t) && !types.IsUnknown(t) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("operator %s requires a numeric operand, got %s", string(op), t.String())).
				WithCode(diagnostics.ErrInvalidOperation).
				WithPrimaryLabel(loc, ""),
		)
		return types.TypeUnknown
	}
	return t
}

func (c *checker) binaryType(e *ast.BinaryExpr) types.SemType {
	lt := c.typeOf(e.X)
	rt := c.typeOf(e.Y)
	if types.IsUnknown(lt) || types.IsUnknown(rt) {
		return c.binaryUnknownResult(e.Op.Kind)
	}

	switch e.Op.Kind {
	case tokens.PLUS_TOKEN:
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			return types.Wider(lt, rt)
		}
		// string concatenation absorbs numerics on either side
		if types.IsString(lt) && (types.IsString(rt) || types.IsNumeric(rt) || types.IsBool(rt)) {
			return types.TypeString
		}
		if types.IsString(rt) && (types.IsNumeric(lt) || types.IsBool(lt)) {
			return types.TypeString
		}

	case tokens.MINUS_TOKEN, tokens.MUL_TOKEN:
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			return types.Wider(lt, rt)
		}

	case tokens.DIV_TOKEN:
		// division always produces f64, even between integers
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			return types.TypeF64
		}

	case tokens.MOD_TOKEN:
		if types.IsInteger(lt) && types.IsInteger(rt) {
			return types.Wider(lt, rt)
		}
		return c.invalidBinary(e, lt, rt, "integer operands")

	case tokens.BIT_AND_TOKEN, tokens.BIT_OR_TOKEN, tokens.BIT_XOR_TOKEN,
		tokens.SHIFT_LEFT_TOKEN, tokens.SHIFT_RIGHT_TOKEN:
		// bitwise operators keep the left operand's type
		if types.IsInteger(lt) && types.IsInteger(rt) {
			return lt
		}
		return c.invalidBinary(e, lt, rt, "integer operands")

	case tokens.LESS_TOKEN, tokens.GREATER_TOKEN, tokens.LESS_EQUAL_TOKEN, tokens.GREATER_EQUAL_TOKEN:
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			return types.TypeBool
		}
		if lt.Equals(rt) && isOrdered(lt) {
			return types.TypeBool
		}

	case tokens.DOUBLE_EQUAL_TOKEN, tokens.NOT_EQUAL_TOKEN:
		if equalityComparable(lt, rt) {
			return types.TypeBool
		}

	case tokens.AND_TOKEN, tokens.OR_TOKEN:
		if types.IsBool(lt) && types.IsBool(rt) {
			return types.TypeBool
		}
		return c.invalidBinary(e, lt, rt, "bool operands")
	}

	return c.invalidBinary(e, lt, rt, "compatible operands")
}

// binaryUnknownResult suppresses cascades: with an unknown operand the
// result is the most plausible type for the operator.
func (c *checker) binaryUnknownResult(op tokens.TOKEN) types.SemType {
	switch op {
	case tokens.DOUBLE_EQUAL_TOKEN, tokens.NOT_EQUAL_TOKEN,
		tokens.LESS_TOKEN, tokens.GREATER_TOKEN, tokens.LESS_EQUAL_TOKEN, tokens.GREATER_EQUAL_TOKEN,
		tokens.AND_TOKEN, tokens.OR_TOKEN:
		return types.TypeBool
	case tokens.DIV_TOKEN:
		return types.TypeF64
	default:
		return types.TypeUnknown
	}
}

func (c *checker) invalidBinary(e *ast.BinaryExpr, lt, rt types.SemType, need string) types.SemType {
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("operator %s requires %s, got %s and %s",
			string(e.Op.Kind), need, lt.String(), rt.String())).
			WithCode(diagnostics.ErrInvalidOperation).
			WithPrimaryLabel(e.Loc(), ""),
	)
	return types.TypeUnknown
}

// equalityComparable mirrors the assignment rules loosened for
// comparisons: numerics compare across widths, null compares against
// anything nullable, matching types compare directly. bit never
// compares against null.
func equalityComparable(a, b types.SemType) bool {
	if types.IsNull(a) || types.IsNull(b) {
		other := a
		if types.IsNull(a) {
			other = b
		}
		if prim, ok := other.(*types.PrimitiveType); ok && prim.GetName() == types.TYPE_BIT {
			return false
		}
		return true
	}
	if types.IsNumeric(a) && types.IsNumeric(b) {
		return true
	}
	if n, ok := a.(*types.NullableType); ok {
		return n.Inner.Equals(b) || a.Equals(b)
	}
	if n, ok := b.(*types.NullableType); ok {
		return n.Inner.Equals(a)
	}
	return a.Equals(b)
}

// isOrdered reports whether a non numeric type supports relational
// comparison. Strings and chars order lexicographically.
func isOrdered(t types.SemType) bool {
	prim, ok := t.(*types.PrimitiveType)
	if !ok {
		return false
	}
	switch prim.GetName() {
	case types.TYPE_STRING, types.TYPE_CHAR:
		return true
	}
	return false
}
