package domutil

import (
	"errors"
	"fmt"
)

// Causes of a BoundsResolutionError.
var (
	ErrNoElement   = errors.New("could not find an element")
	ErrNotElement  = errors.New("bound node is not an element")
	ErrNoDocument  = errors.New("node has no owner document")
	ErrUnknownMode = errors.New("unknown bounds mode")
)

// BoundsResolutionError reports that a parent or selector bound could not be
// turned into an element.
type BoundsResolutionError struct {
	Bounds Bounds
	Err    error
}

func (e *BoundsResolutionError) Error() string {
	return fmt.Sprintf("bounds %s: %v", e.Bounds, e.Err)
}

func (e *BoundsResolutionError) Unwrap() error {
	return e.Err
}
