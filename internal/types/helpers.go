package types

// Classification and widening rules for the numeric tower.

func IsInteger(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	if !ok {
		return false
	}
	switch p.name {
	case TYPE_I8, TYPE_I16, TYPE_I32, TYPE_I64,
		TYPE_U8, TYPE_U16, TYPE_U32, TYPE_U64,
		TYPE_BYTE, TYPE_BIT:
		return true
	}
	return false
}

func IsFloat(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	if !ok {
		return false
	}
	switch p.name {
	case TYPE_F16, TYPE_F32, TYPE_F64:
		return true
	}
	return false
}

func IsNumeric(t SemType) bool { return IsInteger(t) || IsFloat(t) }

func IsUnsigned(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	if !ok {
		return false
	}
	switch p.name {
	case TYPE_U8, TYPE_U16, TYPE_U32, TYPE_U64, TYPE_BYTE:
		return true
	}
	return false
}

func IsString(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.name == TYPE_STRING
}

func IsBool(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.name == TYPE_BOOL
}

func IsVoid(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.name == TYPE_VOID
}

func IsNull(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.name == TYPE_NULL
}

func IsUnknown(t SemType) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.name == TYPE_UNKNOWN
}

func IsNullable(t SemType) bool {
	_, ok := t.(*NullableType)
	return ok
}

// wideningRank orders the numeric tower narrowest to widest. Unsigned
// types share the rank of their signed counterpart; bit does not widen.
var wideningRank = map[TYPE_NAME]int{
	TYPE_I8:   1,
	TYPE_U8:   1,
	TYPE_BYTE: 1,
	TYPE_I16:  2,
	TYPE_U16:  2,
	TYPE_I32:  3,
	TYPE_U32:  3,
	TYPE_I64:  4,
	TYPE_U64:  4,
	TYPE_F16:  5,
	TYPE_F32:  6,
	TYPE_F64:  7,
}

// Wider returns the wider of two numeric types per the fixed hierarchy
// i8 -> i16 -> i32 -> i64 -> f32 -> f64. Both arguments must be numeric.
func Wider(a, b SemType) SemType {
	pa, aok := a.(*PrimitiveType)
	pb, bok := b.(*PrimitiveType)
	if !aok || !bok {
		return TypeUnknown
	}
	ra, aok := wideningRank[pa.name]
	rb, bok := wideningRank[pb.name]
	if !aok || !bok {
		return TypeUnknown
	}
	if ra >= rb {
		return a
	}
	return b
}

// IsAssignable reports whether a value of the given type can be assigned
// to the target without an explicit cast.
//
// Rules, in order: unknown absorbs everything (error suppression); bit
// accepts only bit; null is assignable only to a nullable target; a
// nullable target accepts its inner type, the same nullable type, or
// null; a plain target rejects nullable values (no implicit narrowing);
// numeric widens to numeric; otherwise structural equality decides.
func IsAssignable(target, value SemType) bool {
	if IsUnknown(target) || IsUnknown(value) {
		return true
	}
	if p, ok := target.(*PrimitiveType); ok && p.name == TYPE_BIT {
		pv, ok := value.(*PrimitiveType)
		return ok && pv.name == TYPE_BIT
	}
	if nt, ok := target.(*NullableType); ok {
		if IsNull(value) {
			return true
		}
		if nv, ok := value.(*NullableType); ok {
			return nt.Inner.Equals(nv.Inner)
		}
		return IsAssignable(nt.Inner, value)
	}
	if IsNull(value) || IsNullable(value) {
		return false
	}
	if target.Equals(value) {
		return true
	}
	if IsNumeric(target) && IsNumeric(value) {
		return true
	}
	return false
}
