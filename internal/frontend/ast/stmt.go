package ast

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
)

// Block is a braced statement list; entering one pushes a scope frame.
type Block struct {
	Stmts []Statement
	source.Location
}

func (b *Block) INode()                {}
func (b *Block) Stmt()                 {}
func (b *Block) Loc() *source.Location { return &b.Location }

// ExpressionStmt wraps an expression used in statement position.
type ExpressionStmt struct {
	X Expression
	source.Location
}

func (e *ExpressionStmt) INode()                {}
func (e *ExpressionStmt) Stmt()                 {}
func (e *ExpressionStmt) Loc() *source.Location { return &e.Location }

// VarDeclStmt represents let/var inside a body: let x: i32 = 1;
// Let declarations are immutable after initialization.
type VarDeclStmt struct {
	IsLet    bool
	Name     *IdentifierExpr
	TypeAnn  TypeNode   // nil when the type is inferred
	Init     Expression // nil when only declared
	source.Location
}

func (v *VarDeclStmt) INode()                {}
func (v *VarDeclStmt) Stmt()                 {}
func (v *VarDeclStmt) Loc() *source.Location { return &v.Location }

// ReturnStmt represents ret [expr];
type ReturnStmt struct {
	Value Expression // nil for bare ret
	source.Location
}

func (r *ReturnStmt) INode()                {}
func (r *ReturnStmt) Stmt()                 {}
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }

type BreakStmt struct {
	source.Location
}

func (b *BreakStmt) INode()                {}
func (b *BreakStmt) Stmt()                 {}
func (b *BreakStmt) Loc() *source.Location { return &b.Location }

type ContinueStmt struct {
	source.Location
}

func (c *ContinueStmt) INode()                {}
func (c *ContinueStmt) Stmt()                 {}
func (c *ContinueStmt) Loc() *source.Location { return &c.Location }

// ElseIfClause is one elif arm of an if statement.
type ElseIfClause struct {
	Cond Expression
	Then *Block
	source.Location
}

// IfStmt represents if (c) {} elif (c) {} else {}
type IfStmt struct {
	Cond  Expression
	Then  *Block
	Elifs []ElseIfClause
	Else  *Block // nil when absent
	source.Location
}

func (i *IfStmt) INode()                {}
func (i *IfStmt) Stmt()                 {}
func (i *IfStmt) Loc() *source.Location { return &i.Location }

// WhileStmt represents while (c) {}
type WhileStmt struct {
	Cond Expression
	Body *Block
	source.Location
}

func (w *WhileStmt) INode()                {}
func (w *WhileStmt) Stmt()                 {}
func (w *WhileStmt) Loc() *source.Location { return &w.Location }

// DoWhileStmt represents do {} while (c);
type DoWhileStmt struct {
	Body *Block
	Cond Expression
	source.Location
}

func (d *DoWhileStmt) INode()                {}
func (d *DoWhileStmt) Stmt()                 {}
func (d *DoWhileStmt) Loc() *source.Location { return &d.Location }

// LoopStmt represents the ranged loop:
// [rev] loop (i: from..to [step expr]) {}
// Inclusive distinguishes ..= from .. . The induction variable lives in
// the loop's own scope.
type LoopStmt struct {
	Reverse   bool
	Var       *IdentifierExpr
	From      Expression
	To        Expression
	Inclusive bool
	Step      Expression // nil means 1
	Body      *Block
	source.Location
}

func (l *LoopStmt) INode()                {}
func (l *LoopStmt) Stmt()                 {}
func (l *LoopStmt) Loc() *source.Location { return &l.Location }

// InvalidStmt is the recovery placeholder produced after a parse error.
type InvalidStmt struct {
	source.Location
}

func (i *InvalidStmt) INode()                {}
func (i *InvalidStmt) Stmt()                 {}
func (i *InvalidStmt) Loc() *source.Location { return &i.Location }
