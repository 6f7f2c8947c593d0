package ast

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
)

// NamedType is a type annotation naming a built-in or declared type.
type NamedType struct {
	Name string
	source.Location
}

func (n *NamedType) INode()                {}
func (n *NamedType) TypeExpr()             {}
func (n *NamedType) Loc() *source.Location { return &n.Location }

// ArrayTypeNode represents []T
type ArrayTypeNode struct {
	Element TypeNode
	source.Location
}

func (a *ArrayTypeNode) INode()                {}
func (a *ArrayTypeNode) TypeExpr()             {}
func (a *ArrayTypeNode) Loc() *source.Location { return &a.Location }

// NullableTypeNode represents T?
type NullableTypeNode struct {
	Inner TypeNode
	source.Location
}

func (n *NullableTypeNode) INode()                {}
func (n *NullableTypeNode) TypeExpr()             {}
func (n *NullableTypeNode) Loc() *source.Location { return &n.Location }

// TypeString renders a type annotation back to source form, for
// diagnostics.
func TypeString(t TypeNode) string {
	switch n := t.(type) {
	case *NamedType:
		return n.Name
	case *ArrayTypeNode:
		return "[]" + TypeString(n.Element)
	case *NullableTypeNode:
		return TypeString(n.Inner) + "?"
	default:
		return "<invalid>"
	}
}
