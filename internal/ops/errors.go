package ops

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrArity            = errors.New("wrong number of operands")
	ErrUnfedPlaceholder = errors.New("placeholder was not fed")
)

// ArityError reports a kernel invoked with the wrong operand count.
// Node/kernel pairing is fixed at construction, so this indicates a broken invariant.
type ArityError struct {
	Op   string
	Got  int
	Want int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	return fmt.Sprintf("%s requires %d operands, got %d", e.Op, e.Want, e.Got)
}

// Unwrap returns ErrArity.
func (e *ArityError) Unwrap() error {
	return ErrArity
}

func checkArity(kind Kind, operands int, want int) error {
	if operands != want {
		return &ArityError{Op: kind.String(), Got: operands, Want: want}
	}
	return nil
}
