package ast

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
)

// IdentifierExpr represents an identifier
type IdentifierExpr struct {
	Name string
	source.Location
}

func (i *IdentifierExpr) INode()                {}
func (i *IdentifierExpr) Expr()                 {}
func (i *IdentifierExpr) Loc() *source.Location { return &i.Location }

// NumberLiteralExpr carries the scanner's structured numeric payload.
type NumberLiteralExpr struct {
	Raw   string
	Value tokens.NumericLiteral
	source.Location
}

func (n *NumberLiteralExpr) INode()                {}
func (n *NumberLiteralExpr) Expr()                 {}
func (n *NumberLiteralExpr) Loc() *source.Location { return &n.Location }

type StringLiteralExpr struct {
	Value string // unquoted, escapes resolved
	source.Location
}

func (s *StringLiteralExpr) INode()                {}
func (s *StringLiteralExpr) Expr()                 {}
func (s *StringLiteralExpr) Loc() *source.Location { return &s.Location }

type CharLiteralExpr struct {
	Value rune
	source.Location
}

func (c *CharLiteralExpr) INode()                {}
func (c *CharLiteralExpr) Expr()                 {}
func (c *CharLiteralExpr) Loc() *source.Location { return &c.Location }

type BoolLiteralExpr struct {
	Value bool
	source.Location
}

func (b *BoolLiteralExpr) INode()                {}
func (b *BoolLiteralExpr) Expr()                 {}
func (b *BoolLiteralExpr) Loc() *source.Location { return &b.Location }

type NullLiteralExpr struct {
	source.Location
}

func (n *NullLiteralExpr) INode()                {}
func (n *NullLiteralExpr) Expr()                 {}
func (n *NullLiteralExpr) Loc() *source.Location { return &n.Location }

// ArrayLiteralExpr represents [a, b, c]
type ArrayLiteralExpr struct {
	Elements []Expression
	source.Location
}

func (a *ArrayLiteralExpr) INode()                {}
func (a *ArrayLiteralExpr) Expr()                 {}
func (a *ArrayLiteralExpr) Loc() *source.Location { return &a.Location }

// FieldInit is one "name: value" entry of a struct literal.
type FieldInit struct {
	Name  *IdentifierExpr
	Value Expression
}

// StructLiteralExpr represents Point{x: 1, y: 2}
type StructLiteralExpr struct {
	TypeName *IdentifierExpr
	Fields   []FieldInit
	source.Location
}

func (s *StructLiteralExpr) INode()                {}
func (s *StructLiteralExpr) Expr()                 {}
func (s *StructLiteralExpr) Loc() *source.Location { return &s.Location }

// UnaryExpr represents prefix ! - ~
type UnaryExpr struct {
	Op tokens.Token
	X  Expression
	source.Location
}

func (u *UnaryExpr) INode()                {}
func (u *UnaryExpr) Expr()                 {}
func (u *UnaryExpr) Loc() *source.Location { return &u.Location }

// PrefixExpr represents ++x, --x
type PrefixExpr struct {
	Op tokens.Token
	X  Expression
	source.Location
}

func (p *PrefixExpr) INode()                {}
func (p *PrefixExpr) Expr()                 {}
func (p *PrefixExpr) Loc() *source.Location { return &p.Location }

// PostfixExpr represents x++, x--
type PostfixExpr struct {
	X  Expression
	Op tokens.Token
	source.Location
}

func (p *PostfixExpr) INode()                {}
func (p *PostfixExpr) Expr()                 {}
func (p *PostfixExpr) Loc() *source.Location { return &p.Location }

// BinaryExpr represents a binary expression
type BinaryExpr struct {
	X  Expression
	Op tokens.Token
	Y  Expression
	source.Location
}

func (b *BinaryExpr) INode()                {}
func (b *BinaryExpr) Expr()                 {}
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// AssignExpr represents assignment and compound assignment. The parser
// guarantees Target is an identifier, selector, or index expression.
type AssignExpr struct {
	Target Expression
	Op     tokens.Token // =, +=, -=, *=, /=, %=
	Value  Expression
	source.Location
}

func (a *AssignExpr) INode()                {}
func (a *AssignExpr) Expr()                 {}
func (a *AssignExpr) Loc() *source.Location { return &a.Location }

// CallExpr represents a function, method, or constructor call
type CallExpr struct {
	Fun  Expression
	Args []Expression
	source.Location
}

func (c *CallExpr) INode()                {}
func (c *CallExpr) Expr()                 {}
func (c *CallExpr) Loc() *source.Location { return &c.Location }

// SelectorExpr represents field access (x.field)
type SelectorExpr struct {
	X     Expression
	Field *IdentifierExpr
	source.Location
}

func (s *SelectorExpr) INode()                {}
func (s *SelectorExpr) Expr()                 {}
func (s *SelectorExpr) Loc() *source.Location { return &s.Location }

// ProjectionExpr selects a group of fields off an enum-variant value:
// value.(a, b). Distinct from a call; `.` followed by `(` always parses
// as a projection.
type ProjectionExpr struct {
	X      Expression
	Fields []*IdentifierExpr
	source.Location
}

func (p *ProjectionExpr) INode()                {}
func (p *ProjectionExpr) Expr()                 {}
func (p *ProjectionExpr) Loc() *source.Location { return &p.Location }

// IndexExpr represents array[index]
type IndexExpr struct {
	X     Expression
	Index Expression
	source.Location
}

func (i *IndexExpr) INode()                {}
func (i *IndexExpr) Expr()                 {}
func (i *IndexExpr) Loc() *source.Location { return &i.Location }

// CastExpr represents value as TargetType
type CastExpr struct {
	X      Expression
	Target TypeNode
	source.Location
}

func (c *CastExpr) INode()                {}
func (c *CastExpr) Expr()                 {}
func (c *CastExpr) Loc() *source.Location { return &c.Location }

// TernaryExpr represents cond ? a : b, right-associative on the false
// branch.
type TernaryExpr struct {
	Cond Expression
	Then Expression
	Else Expression
	source.Location
}

func (t *TernaryExpr) INode()                {}
func (t *TernaryExpr) Expr()                 {}
func (t *TernaryExpr) Loc() *source.Location { return &t.Location }

// InvalidExpr is the recovery placeholder produced after a parse error.
type InvalidExpr struct {
	source.Location
}

func (i *InvalidExpr) INode()                {}
func (i *InvalidExpr) Expr()                 {}
func (i *InvalidExpr) Loc() *source.Location { return &i.Location }
