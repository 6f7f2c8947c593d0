package types

type TYPE_NAME string

const (
	TYPE_I8  TYPE_NAME = "i8"
	TYPE_I16 TYPE_NAME = "i16"
	TYPE_I32 TYPE_NAME = "i32"
	TYPE_I64 TYPE_NAME = "i64"
	TYPE_U8  TYPE_NAME = "u8"
	TYPE_U16 TYPE_NAME = "u16"
	TYPE_U32 TYPE_NAME = "u32"
	TYPE_U64 TYPE_NAME = "u64"
	TYPE_F16 TYPE_NAME = "f16"
	TYPE_F32 TYPE_NAME = "f32"
	TYPE_F64 TYPE_NAME = "f64"

	TYPE_BOOL   TYPE_NAME = "bool"
	TYPE_BIT    TYPE_NAME = "bit"
	TYPE_BYTE   TYPE_NAME = "byte"
	TYPE_CHAR   TYPE_NAME = "char"
	TYPE_STRING TYPE_NAME = "string"
	TYPE_VOID   TYPE_NAME = "void"
	TYPE_NULL   TYPE_NAME = "null"

	// TYPE_UNKNOWN is the sentinel for unresolved or erroneous types;
	// downstream passes treat it as compatible with everything so one
	// bad declaration does not cascade.
	TYPE_UNKNOWN TYPE_NAME = "unknown"
)

// Defaults for untyped numeric literals.
const (
	DEFAULT_INT_TYPE   TYPE_NAME = TYPE_I32
	DEFAULT_FLOAT_TYPE TYPE_NAME = TYPE_F64
)

// Package-level singletons for the built-in scalar types.
var (
	TypeI8  = NewPrimitive(TYPE_I8)
	TypeI16 = NewPrimitive(TYPE_I16)
	TypeI32 = NewPrimitive(TYPE_I32)
	TypeI64 = NewPrimitive(TYPE_I64)
	TypeU8  = NewPrimitive(TYPE_U8)
	TypeU16 = NewPrimitive(TYPE_U16)
	TypeU32 = NewPrimitive(TYPE_U32)
	TypeU64 = NewPrimitive(TYPE_U64)
	TypeF16 = NewPrimitive(TYPE_F16)
	TypeF32 = NewPrimitive(TYPE_F32)
	TypeF64 = NewPrimitive(TYPE_F64)

	TypeBool   = NewPrimitive(TYPE_BOOL)
	TypeBit    = NewPrimitive(TYPE_BIT)
	TypeByte   = NewPrimitive(TYPE_BYTE)
	TypeChar   = NewPrimitive(TYPE_CHAR)
	TypeString = NewPrimitive(TYPE_STRING)
	TypeVoid   = NewPrimitive(TYPE_VOID)
	TypeNull   = NewPrimitive(TYPE_NULL)

	TypeUnknown = NewPrimitive(TYPE_UNKNOWN)
)

var builtinsByName = map[TYPE_NAME]*PrimitiveType{
	TYPE_I8:     TypeI8,
	TYPE_I16:    TypeI16,
	TYPE_I32:    TypeI32,
	TYPE_I64:    TypeI64,
	TYPE_U8:     TypeU8,
	TYPE_U16:    TypeU16,
	TYPE_U32:    TypeU32,
	TYPE_U64:    TypeU64,
	TYPE_F16:    TypeF16,
	TYPE_F32:    TypeF32,
	TYPE_F64:    TypeF64,
	TYPE_BOOL:   TypeBool,
	TYPE_BIT:    TypeBit,
	TYPE_BYTE:   TypeByte,
	TYPE_CHAR:   TypeChar,
	TYPE_STRING: TypeString,
	TYPE_VOID:   TypeVoid,
}

// LookupBuiltin returns the singleton for a built-in type name.
func LookupBuiltin(name string) (*PrimitiveType, bool) {
	p, ok := builtinsByName[TYPE_NAME(name)]
	return p, ok
}

// Builtins returns every named built-in type singleton. The unknown
// and null sentinels are not included; they have no surface name.
func Builtins() []*PrimitiveType {
	out := make([]*PrimitiveType, 0, len(builtinsByName))
	for _, p := range builtinsByName {
		out = append(out, p)
	}
	return out
}
