package table

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
)

// Scope is one lexical frame: a map of names declared in it plus a link
// to the enclosing frame.
type Scope struct {
	parent  *Scope
	entries map[string]*symbols.Symbol
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		entries: make(map[string]*symbols.Symbol),
	}
}

// Define inserts a symbol. The previously defined symbol, if any, is
// returned so callers can report the earlier declaration site.
func (s *Scope) Define(sym *symbols.Symbol) (prev *symbols.Symbol, ok bool) {
	if existing, clash := s.entries[sym.Name]; clash {
		return existing, false
	}
	s.entries[sym.Name] = sym
	return nil, true
}

// Resolve walks outward through enclosing frames.
func (s *Scope) Resolve(name string) (*symbols.Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.entries[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ResolveLocal checks only this frame, ignoring parents. Used for
// shadowing checks where redeclaring an outer name is legal.
func (s *Scope) ResolveLocal(name string) (*symbols.Symbol, bool) {
	sym, ok := s.entries[name]
	return sym, ok
}

func (s *Scope) Parent() *Scope { return s.parent }

// Symbols returns the names defined directly in this frame.
func (s *Scope) Symbols() map[string]*symbols.Symbol { return s.entries }

// Stack manages the current lexical scope during a walk. The bottom
// frame is the one the stack was created with and cannot be popped.
type Stack struct {
	current *Scope
	bottom  *Scope
}

func NewStack(root *Scope) *Stack {
	return &Stack{current: root, bottom: root}
}

func (st *Stack) Enter() {
	st.current = NewScope(st.current)
}

func (st *Stack) Exit() {
	if st.current == st.bottom {
		panic("scope stack: exit on bottom frame")
	}
	st.current = st.current.parent
}

func (st *Stack) Current() *Scope { return st.current }

func (st *Stack) Define(sym *symbols.Symbol) (*symbols.Symbol, bool) {
	return st.current.Define(sym)
}

func (st *Stack) Resolve(name string) (*symbols.Symbol, bool) {
	return st.current.Resolve(name)
}
