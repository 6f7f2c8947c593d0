package ast

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
)

// Node is the base interface for all AST nodes
type Node interface {
	INode()
	Loc() *source.Location
}

// Expression represents any node that produces a value
type Expression interface {
	Node
	Expr()
}

// Statement represents any node that performs an action
type Statement interface {
	Node
	Stmt()
}

// Declaration represents a top-level declaration (module, import,
// function, class, struct, enum, global variable)
type Declaration interface {
	Node
	Decl()
}

// TypeNode represents a syntactic type annotation, kept separate from
// expressions so that types and values never mix in the tree
type TypeNode interface {
	Node
	TypeExpr()
}

// File is the root of one parsed source file and the single owner of
// every declaration in it.
type File struct {
	Filename string
	Module   *ModuleDecl
	Imports  []*ImportDecl
	Decls    []Declaration
}
