package nn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrInvalidShape  = errors.New("invalid network shape")
	ErrNilGradients  = errors.New("nil gradients")
)

// ShapeError describes a vector whose length does not match what an
// operation expects. It unwraps to ErrShapeMismatch.
type ShapeError struct {
	Op   string // Operation that rejected the input (e.g., "dot", "feed_forward")
	Want int    // Expected length
	Got  int    // Actual length
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: want length %d, got %d", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func checkLen(op string, want, got int) error {
	if want != got {
		return &ShapeError{Op: op, Want: want, Got: got}
	}
	return nil
}
