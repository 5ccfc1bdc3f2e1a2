package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrMissingInput  = errors.New("missing input")
	ErrNoText        = errors.New("no text")
	ErrInvalidConfig = errors.New("invalid configuration")
)
