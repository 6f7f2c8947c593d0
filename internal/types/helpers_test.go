package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestWider(t *testing.T) {
	tests := []struct {
		a, b, want SemType
	}{
		{TypeI8, TypeI32, TypeI32},
		{TypeI64, TypeI16, TypeI64},
		{TypeI32, TypeF64, TypeF64},
		{TypeF16, TypeF32, TypeF32},
		{TypeU8, TypeU64, TypeU64},
		{TypeByte, TypeI32, TypeI32},
		{TypeI32, TypeI32, TypeI32},
	}
	for _, tt := range tests {
		be.Equal(t, Wider(tt.a, tt.b), tt.want)
	}

	// non-numerics have no rank
	be.True(t, IsUnknown(Wider(TypeString, TypeI32)))
	be.True(t, IsUnknown(Wider(TypeBit, TypeI32)))
}

func TestAssignableNumericWidening(t *testing.T) {
	be.True(t, IsAssignable(TypeI64, TypeI8))
	be.True(t, IsAssignable(TypeF64, TypeI32))
	// narrowing also passes assignability; range checks are a literal
	// concern, not a type one
	be.True(t, IsAssignable(TypeI8, TypeI64))
	be.Equal(t, IsAssignable(TypeI32, TypeString), false)
	be.Equal(t, IsAssignable(TypeString, TypeI32), false)
}

func TestBitAcceptsOnlyBit(t *testing.T) {
	be.True(t, IsAssignable(TypeBit, TypeBit))
	be.Equal(t, IsAssignable(TypeBit, TypeI32), false)
	be.Equal(t, IsAssignable(TypeBit, TypeBool), false)
	be.Equal(t, IsAssignable(TypeBit, TypeNull), false)
}

func TestNullableAssignability(t *testing.T) {
	strOpt := NewNullable(TypeString)

	be.True(t, IsAssignable(strOpt, TypeNull))
	be.True(t, IsAssignable(strOpt, TypeString))
	be.True(t, IsAssignable(strOpt, NewNullable(TypeString)))
	be.Equal(t, IsAssignable(strOpt, NewNullable(TypeI32)), false)

	// no implicit narrowing from T? to T, and null needs a nullable target
	be.Equal(t, IsAssignable(TypeString, strOpt), false)
	be.Equal(t, IsAssignable(TypeString, TypeNull), false)
}

func TestUnknownAbsorbs(t *testing.T) {
	be.True(t, IsAssignable(TypeUnknown, TypeString))
	be.True(t, IsAssignable(TypeBool, TypeUnknown))
}

func TestArrayEquality(t *testing.T) {
	be.True(t, NewArray(TypeI32).Equals(NewArray(TypeI32)))
	be.Equal(t, NewArray(TypeI32).Equals(NewArray(TypeI64)), false)
	be.True(t, IsAssignable(NewArray(TypeI32), NewArray(TypeI32)))
	// element types do not widen inside arrays
	be.Equal(t, IsAssignable(NewArray(TypeI64), NewArray(TypeI32)), false)
}

func TestNullableStringRendering(t *testing.T) {
	be.Equal(t, NewNullable(TypeString).String(), "string?")
	be.Equal(t, NewArray(NewNullable(TypeI32)).String(), "[]i32?")
}

func TestLookupBuiltin(t *testing.T) {
	p, ok := LookupBuiltin("i32")
	be.True(t, ok)
	be.Equal(t, p, TypeI32)

	_, ok = LookupBuiltin("unknown")
	be.Equal(t, ok, false)
	_, ok = LookupBuiltin("null")
	be.Equal(t, ok, false)
}
