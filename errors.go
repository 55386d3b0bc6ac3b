package ggui

import "errors"

// ErrUnsupported is returned when a backend cannot perform a requested
// operation, for example reporting its pixel depth.
var ErrUnsupported = errors.New("ggui: operation not supported")

// PlatformError describes a failure reported by the windowing system, the
// graphics API or a surface. It carries a human-readable message and,
// when available, the underlying cause.
type PlatformError struct {
	Msg string
	Err error
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	if e.Err == nil {
		return "ggui: " + e.Msg
	}
	return "ggui: " + e.Msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewPlatformError creates a PlatformError with an optional cause.
func NewPlatformError(msg string, err error) *PlatformError {
	return &PlatformError{Msg: msg, Err: err}
}
