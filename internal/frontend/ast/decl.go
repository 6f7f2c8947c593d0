package ast

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
)

// Visibility of a declaration. Default is module-visible.
type Visibility int

const (
	VisDefault Visibility = iota
	VisPublic
	VisPrivate
	VisProtected
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "pub"
	case VisPrivate:
		return "priv"
	case VisProtected:
		return "prot"
	default:
		return ""
	}
}

// ModuleDecl represents `mod name;`
type ModuleDecl struct {
	Name *IdentifierExpr
	source.Location
}

func (m *ModuleDecl) INode()                {}
func (m *ModuleDecl) Decl()                 {}
func (m *ModuleDecl) Loc() *source.Location { return &m.Location }

// ImportItem is one entry of the `::{a, b as c}` group form.
type ImportItem struct {
	Name  *IdentifierExpr
	Alias *IdentifierExpr // nil when not aliased
}

// ImportDecl represents `import a.b.c;` or `import a.b::{x, y as z};`.
// A bare import binds the module namespace under its last path segment.
type ImportDecl struct {
	Segments []string
	Items    []ImportItem // empty for the bare form
	source.Location
}

func (i *ImportDecl) INode()                {}
func (i *ImportDecl) Decl()                 {}
func (i *ImportDecl) Loc() *source.Location { return &i.Location }

// LastSegment returns the final path segment, the default namespace name
// for a bare import.
func (i *ImportDecl) LastSegment() string {
	if len(i.Segments) == 0 {
		return ""
	}
	return i.Segments[len(i.Segments)-1]
}

// Param is one parameter of a function, method, or builder.
type Param struct {
	Name *IdentifierExpr
	Type TypeNode
}

// FuncDecl represents a function, method, or builder declaration.
type FuncDecl struct {
	Visibility Visibility
	IsBuilder  bool
	Name       *IdentifierExpr // nil for builders
	Params     []Param
	ReturnType TypeNode // nil means void
	Body       *Block
	source.Location
}

func (f *FuncDecl) INode()                {}
func (f *FuncDecl) Decl()                 {}
func (f *FuncDecl) Loc() *source.Location { return &f.Location }

// FieldDecl is one field of a class or struct: name -> type;
type FieldDecl struct {
	Visibility Visibility
	IsFinal    bool
	Name       *IdentifierExpr
	Type       TypeNode
	source.Location
}

func (f *FieldDecl) INode()                {}
func (f *FieldDecl) Loc() *source.Location { return &f.Location }

// ClassDecl represents class Name { fields; builders; methods }
type ClassDecl struct {
	Visibility Visibility
	Name       *IdentifierExpr
	Fields     []*FieldDecl
	Builders   []*FuncDecl
	Methods    []*FuncDecl
	source.Location
}

func (c *ClassDecl) INode()                {}
func (c *ClassDecl) Decl()                 {}
func (c *ClassDecl) Loc() *source.Location { return &c.Location }

// StructDecl represents struct Name { x -> i32; ... }
type StructDecl struct {
	Visibility Visibility
	Name       *IdentifierExpr
	Fields     []*FieldDecl
	Methods    []*FuncDecl
	source.Location
}

func (s *StructDecl) INode()                {}
func (s *StructDecl) Decl()                 {}
func (s *StructDecl) Loc() *source.Location { return &s.Location }

// EnumCase is one constant of an enum, optionally with constructor
// arguments: RED(255, 0, 0)
type EnumCase struct {
	Name *IdentifierExpr
	Args []Expression
}

// EnumDecl represents enum Name { CASES } with an optional builder.
type EnumDecl struct {
	Visibility Visibility
	Name       *IdentifierExpr
	Cases      []EnumCase
	Builder    *FuncDecl // nil when the enum declares no constructor
	source.Location
}

func (e *EnumDecl) INode()                {}
func (e *EnumDecl) Decl()                 {}
func (e *EnumDecl) Loc() *source.Location { return &e.Location }

// GlobalVarDecl represents a top-level let/var declaration.
type GlobalVarDecl struct {
	Visibility Visibility
	IsFinal    bool
	IsLet      bool
	Name       *IdentifierExpr
	TypeAnn    TypeNode
	Init       Expression
	source.Location
}

func (g *GlobalVarDecl) INode()                {}
func (g *GlobalVarDecl) Decl()                 {}
func (g *GlobalVarDecl) Loc() *source.Location { return &g.Location }

// InvalidDecl is the recovery placeholder produced after a parse error.
type InvalidDecl struct {
	source.Location
}

func (i *InvalidDecl) INode()                {}
func (i *InvalidDecl) Decl()                 {}
func (i *InvalidDecl) Loc() *source.Location { return &i.Location }
