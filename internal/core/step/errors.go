// Package step defines domain-specific errors
package step

import "errors"

var (
	// Step validation errors
	ErrInvalidStepType = errors.New("invalid step type")
	ErrNegativeIndex   = errors.New("step index cannot be negative")
	ErrNilStep         = errors.New("step cannot be nil")
)
