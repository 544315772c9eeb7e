package model

import (
	"errors"
	"fmt"
)

// ErrMissingInput reports that a required input dataset is absent.
var ErrMissingInput = errors.New("missing input")

// MissingInputError is fatal to a run and is never retried.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("customer dataset not found at %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("customer dataset not found at %q", e.Path)
}

// Unwrap allows errors.Is(err, ErrMissingInput) as well as the cause.
func (e *MissingInputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingInput}
	}
	return []error{ErrMissingInput, e.Err}
}
