package diagnostics

import (
	"fmt"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
)

// Common diagnostic builders shared by the semantic passes.

func UndefinedSymbol(loc *source.Location, name string) *Diagnostic {
	return NewError("undefined symbol '" + name + "'").
		WithCode(ErrUndefinedSymbol).
		WithPrimaryLabel(loc, "not found in this scope").
		WithHelp("check if the symbol is declared or imported")
}

func RedeclaredSymbol(newLoc, prevLoc *source.Location, name string) *Diagnostic {
	d := NewError("'" + name + "' is already declared in this scope").
		WithCode(ErrRedeclaredSymbol).
		WithPrimaryLabel(newLoc, "redeclared here")
	if prevLoc != nil {
		d.WithSecondaryLabel(prevLoc, "previous declaration here")
	}
	return d.WithHelp("use a different name or remove one of the declarations")
}

// WrongArgumentCount reports a call arity mismatch. expected is a
// formatted count so overloaded builders can report "1 or 3".
func WrongArgumentCount(loc *source.Location, callee string, expected string, found int) *Diagnostic {
	return NewError(fmt.Sprintf("wrong number of arguments to %s", callee)).
		WithCode(ErrWrongArgumentCount).
		WithPrimaryLabel(loc, fmt.Sprintf("expected %s argument(s), found %d", expected, found))
}

func TypeMismatch(loc *source.Location, want, got string) *Diagnostic {
	return NewError(fmt.Sprintf("cannot assign %s to %s", got, want)).
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(loc, fmt.Sprintf("expected %s, found %s", want, got))
}

func UnknownType(loc *source.Location, name string) *Diagnostic {
	return NewError("unknown type '" + name + "'").
		WithCode(ErrUnknownType).
		WithPrimaryLabel(loc, "not a built-in or declared type").
		WithHelp("declare the type or import the module that provides it")
}
