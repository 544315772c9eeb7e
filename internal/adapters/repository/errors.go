package repository

import "errors"

// ErrInvalidInput reports a malformed input dataset.
var ErrInvalidInput = errors.New("invalid input")
