// Package trace defines domain-specific errors
package trace

import "errors"

var (
	// Trace validation errors
	ErrInvalidTraceID   = errors.New("invalid trace ID")
	ErrInvalidAlgorithm = errors.New("invalid algorithm name")
	ErrInvalidSessionID = errors.New("invalid session ID")
	ErrNilSteps         = errors.New("trace steps cannot be nil")
	ErrTraceNotFound    = errors.New("trace not found")

	// Filter validation errors
	ErrInvalidLimit     = errors.New("limit cannot be negative")
	ErrInvalidOffset    = errors.New("offset cannot be negative")
	ErrInvalidTimeRange = errors.New("invalid time range: since is after before")
)
