package types

import (
	"fmt"
	"strings"
)

// SemType is the canonical type descriptor produced by type resolution.
//
// Descriptors are immutable after creation and compared structurally.
type SemType interface {
	// String returns a human-readable representation of the type
	String() string

	// Equals checks structural equality with another type
	Equals(other SemType) bool

	// isType is a marker method to prevent external implementation
	isType()
}

// PrimitiveType represents built-in scalar types (i32, string, bool, ...).
type PrimitiveType struct {
	name TYPE_NAME
}

func NewPrimitive(name TYPE_NAME) *PrimitiveType {
	return &PrimitiveType{name: name}
}

func (p *PrimitiveType) String() string { return string(p.name) }
func (p *PrimitiveType) isType()        {}
func (p *PrimitiveType) Equals(other SemType) bool {
	if o, ok := other.(*PrimitiveType); ok {
		return p.name == o.name
	}
	return false
}

func (p *PrimitiveType) GetName() TYPE_NAME { return p.name }

// ArrayType represents dynamic array types: []T
type ArrayType struct {
	Element SemType
}

func NewArray(element SemType) *ArrayType {
	return &ArrayType{Element: element}
}

func (a *ArrayType) String() string { return "[]" + a.Element.String() }
func (a *ArrayType) isType()        {}
func (a *ArrayType) Equals(other SemType) bool {
	if o, ok := other.(*ArrayType); ok {
		return a.Element.Equals(o.Element)
	}
	return false
}

// NullableType represents nullable types: T?
type NullableType struct {
	Inner SemType
}

func NewNullable(inner SemType) *NullableType {
	// collapse T?? to T?
	if n, ok := inner.(*NullableType); ok {
		return n
	}
	return &NullableType{Inner: inner}
}

func (n *NullableType) String() string { return n.Inner.String() + "?" }
func (n *NullableType) isType()        {}
func (n *NullableType) Equals(other SemType) bool {
	if o, ok := other.(*NullableType); ok {
		return n.Inner.Equals(o.Inner)
	}
	return false
}

// ParamType is one parameter of a function signature.
type ParamType struct {
	Name string
	Type SemType
}

func (p *ParamType) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Type.String())
}

// FunctionType represents function signatures: fn(T1, T2) -> R
type FunctionType struct {
	Params []ParamType
	Return SemType
}

func NewFunction(params []ParamType, ret SemType) *FunctionType {
	return &FunctionType{Params: params, Return: ret}
}

func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), f.Return.String())
}

func (f *FunctionType) isType() {}

func (f *FunctionType) Equals(other SemType) bool {
	ft, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if !f.Return.Equals(ft.Return) {
		return false
	}
	if len(f.Params) != len(ft.Params) {
		return false
	}
	// parameter names are documentation only
	for i := range f.Params {
		if !f.Params[i].Type.Equals(ft.Params[i].Type) {
			return false
		}
	}
	return true
}

// Access is the declared visibility of a member. The zero value is
// public so synthesized members need no explicit level.
type Access int

const (
	AccessPublic Access = iota
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "public"
	}
}

// StructField is a declared field of a struct or class.
type StructField struct {
	Name   string
	Type   SemType
	Access Access
	Final  bool
}

// Method is a member function together with its declared visibility.
type Method struct {
	Sig    *FunctionType
	Access Access
}

// StructType represents a declared struct.
type StructType struct {
	Name    string
	Fields  []StructField
	Methods map[string]Method
}

func NewStruct(name string, fields []StructField) *StructType {
	return &StructType{Name: name, Fields: fields, Methods: make(map[string]Method)}
}

func (s *StructType) String() string { return s.Name }
func (s *StructType) isType()        {}
func (s *StructType) Equals(other SemType) bool {
	if st, ok := other.(*StructType); ok {
		return s.Name == st.Name
	}
	return false
}

// Field returns the declared field with the given name.
func (s *StructType) Field(name string) (StructField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// ClassType represents a declared class: fields plus methods and builders.
type ClassType struct {
	Name     string
	Fields   []StructField
	Methods  map[string]Method
	Builders []*FunctionType
}

func NewClass(name string) *ClassType {
	return &ClassType{Name: name, Methods: make(map[string]Method)}
}

func (c *ClassType) String() string { return c.Name }
func (c *ClassType) isType()        {}
func (c *ClassType) Equals(other SemType) bool {
	if ct, ok := other.(*ClassType); ok {
		return c.Name == ct.Name
	}
	return false
}

func (c *ClassType) Field(name string) (StructField, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// EnumVariant is one constant of an enum, with its constructor arity.
type EnumVariant struct {
	Name     string
	ArgCount int // 0 for bare constants
}

// EnumType represents a declared enum.
type EnumType struct {
	Name        string
	Variants    []EnumVariant
	Constructor *FunctionType // nil when the enum declares no builder
}

func NewEnum(name string, variants []EnumVariant, ctor *FunctionType) *EnumType {
	return &EnumType{Name: name, Variants: variants, Constructor: ctor}
}

func (e *EnumType) String() string { return e.Name }
func (e *EnumType) isType()        {}
func (e *EnumType) Equals(other SemType) bool {
	if et, ok := other.(*EnumType); ok {
		return e.Name == et.Name
	}
	return false
}

func (e *EnumType) Variant(name string) (EnumVariant, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return EnumVariant{}, false
}

// Field exposes the builder parameters as the payload fields every
// variant of a constructed enum carries. Bare enums have no fields.
func (e *EnumType) Field(name string) (StructField, bool) {
	if e.Constructor == nil {
		return StructField{}, false
	}
	for _, p := range e.Constructor.Params {
		if p.Name == name {
			return StructField{Name: p.Name, Type: p.Type, Final: true}, true
		}
	}
	return StructField{}, false
}
