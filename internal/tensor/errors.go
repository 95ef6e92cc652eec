package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrDataLength    = errors.New("data length does not match shape")
	ErrRagged        = errors.New("ragged nested slice")
)

// ShapeError describes two shapes that an operation cannot combine.
// Axis is the result axis of the offending pair, ADim and BDim its two sizes.
type ShapeError struct {
	Op   string // "broadcast", "dot"
	A    Shape
	B    Shape
	Axis int
	ADim int
	BDim int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: cannot combine shapes %v and %v (dimension %d: %d != %d)",
		e.Op, e.A, e.B, e.Axis, e.ADim, e.BDim)
}

// Unwrap returns ErrShapeMismatch so callers can match with errors.Is.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
