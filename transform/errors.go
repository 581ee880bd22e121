package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is matched by every DimensionError.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrEmptyImage        = errors.New("source image has no pixels")
	ErrInvalidWidth      = errors.New("target width must be positive")

	// ErrInvariant marks a broken contract between pipeline stages. It is not
	// recoverable and callers should stop processing when they see it.
	ErrInvariant = errors.New("internal invariant violated")
)

type DimensionError struct {
	Width, Height int
	Target        int
	Err           error
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v (source %dx%d, target width %d)", e.Err, e.Width, e.Height, e.Target)
}

func (e *DimensionError) Unwrap() []error {
	return []error{ErrInvalidDimensions, e.Err}
}

type LuminanceError struct {
	X, Y  int
	Value int
}

func (e *LuminanceError) Error() string {
	if e.X < 0 || e.Y < 0 {
		return fmt.Sprintf("luminance %d outside [0,255]", e.Value)
	}
	return fmt.Sprintf("luminance %d at (%d,%d) outside [0,255]", e.Value, e.X, e.Y)
}

func (e *LuminanceError) Unwrap() error {
	return ErrInvariant
}
