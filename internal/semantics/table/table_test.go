package table

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/semantics/symbols"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/types"
)

func sym(name string) *symbols.Symbol {
	return &symbols.Symbol{Name: name, Kind: symbols.SymVariable, Type: types.TypeI32}
}

func TestDefineAndResolve(t *testing.T) {
	scope := NewScope(nil)
	prev, ok := scope.Define(sym("x"))
	be.True(t, ok)
	be.True(t, prev == nil)

	got, ok := scope.Resolve("x")
	be.True(t, ok)
	be.Equal(t, got.Name, "x")

	_, ok = scope.Resolve("y")
	be.Equal(t, ok, false)
}

func TestRedefineReturnsEarlierSymbol(t *testing.T) {
	scope := NewScope(nil)
	first := sym("x")
	scope.Define(first)

	prev, ok := scope.Define(sym("x"))
	be.Equal(t, ok, false)
	be.Equal(t, prev, first)
}

func TestResolveWalksParents(t *testing.T) {
	outer := NewScope(nil)
	outer.Define(sym("x"))
	inner := NewScope(outer)

	got, ok := inner.Resolve("x")
	be.True(t, ok)
	be.Equal(t, got.Name, "x")

	// local lookup must not see the parent frame
	_, ok = inner.ResolveLocal("x")
	be.Equal(t, ok, false)
}

func TestShadowing(t *testing.T) {
	outer := NewScope(nil)
	outerSym := sym("x")
	outer.Define(outerSym)

	inner := NewScope(outer)
	innerSym := sym("x")
	_, ok := inner.Define(innerSym)
	be.True(t, ok)

	got, _ := inner.Resolve("x")
	be.Equal(t, got, innerSym)
	got, _ = outer.Resolve("x")
	be.Equal(t, got, outerSym)
}

func TestStackEnterExit(t *testing.T) {
	root := NewScope(nil)
	root.Define(sym("global"))
	st := NewStack(root)

	st.Enter()
	st.Define(sym("local"))

	_, ok := st.Resolve("global")
	be.True(t, ok)
	_, ok = st.Resolve("local")
	be.True(t, ok)

	st.Exit()
	_, ok = st.Resolve("local")
	be.Equal(t, ok, false)
	be.Equal(t, st.Current(), root)
}

func TestStackExitOnBottomPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on exiting the bottom frame")
		}
	}()
	NewStack(NewScope(nil)).Exit()
}
