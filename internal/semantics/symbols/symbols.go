package symbols

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/frontend/ast"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

// DeclID is an index into the analyzer's declaration arena. Symbols
// refer to their declaring node through this handle rather than
// holding AST pointers, so a symbol table can outlive any single file's
// AST without keeping the whole tree reachable.
type DeclID int

// NoDecl marks symbols without a declaration site, such as builtins.
const NoDecl DeclID = -1

type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymParameter
	SymFunction
	SymType
	SymEnumVariant
	SymModule
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymParameter:
		return "parameter"
	case SymFunction:
		return "function"
	case SymType:
		return "type"
	case SymEnumVariant:
		return "enum variant"
	case SymModule:
		return "module"
	default:
		return "symbol"
	}
}

// Symbol is one named entity visible in some scope.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       types.SemType
	Visibility ast.Visibility
	IsFinal    bool
	Mutable    bool
	Decl       DeclID
	Location   *source.Location

	// Exports holds the exported members of an imported module. Only
	// set for SymModule symbols.
	Exports map[string]*Symbol
}

// IsExported reports whether the symbol can be referenced from another
// module. Default visibility is module private.
func (s *Symbol) IsExported() bool {
	return s.Visibility == ast.VisPublic
}
