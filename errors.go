package horn

import (
	"errors"
	"fmt"
)

var (
	// ErrIllFormed signifies a parse error.
	ErrIllFormed = errors.New("parse error")
	// ErrVarAlreadyAssigned signifies a variable that entered the allocator with an identifier.
	// Terms must be renamed in a fresh scope before they are reused.
	ErrVarAlreadyAssigned = errors.New("variable id already assigned")
)

// ArityMismatchError is returned when a predicate is used with an argument count
// different from the one it was first registered with.
type ArityMismatchError struct {
	Predicate string
	Expected  int
	Actual    int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("arity of predicate '%s' is expected to be %d, but is %d", e.Predicate, e.Expected, e.Actual)
}
