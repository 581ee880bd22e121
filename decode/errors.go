package decode

import (
	"errors"
	"fmt"
)

var (
	ErrRead     = errors.New("cannot read image")
	ErrFormat   = errors.New("unsupported or malformed image")
	ErrEmpty    = errors.New("image has no pixels")
	ErrTooLarge = errors.New("image dimensions too large")
)

// DecodeError is returned for every failure to turn a source into an image.
// Source is the path or URL the bytes came from.
type DecodeError struct {
	Source string
	Kind   error
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Source, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
