package nn

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is matched by every ShapeError.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError reports a vector whose length disagrees with the network
// topology.
type ShapeError struct {
	What string
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected %d values, got %d", e.What, e.Want, e.Got)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

func checkLen(what string, got, want int) error {
	if got != want {
		return &ShapeError{What: what, Got: got, Want: want}
	}
	return nil
}
