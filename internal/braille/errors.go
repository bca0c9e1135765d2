package braille

import (
	"errors"
	"fmt"
)

// Domain errors for canvas operations.
var (
	// ErrOutOfRange indicates a read of a cell that has not been allocated.
	ErrOutOfRange = errors.New("braille: index out of range")

	// ErrInvalidDimensions indicates a canvas that cannot hold a single cell row.
	ErrInvalidDimensions = errors.New("braille: invalid canvas dimensions")
)

// RangeError wraps ErrOutOfRange with the addressed pixel and cell.
type RangeError struct {
	X, Y   int
	Index  int
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: pixel (%d, %d) maps to cell %d, %d allocated", ErrOutOfRange, e.X, e.Y, e.Index, e.Length)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
