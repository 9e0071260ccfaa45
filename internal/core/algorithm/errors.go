// Package algorithm defines domain-specific errors
package algorithm

import "errors"

var (
	// Registry errors
	ErrNotFound          = errors.New("algorithm not found")
	ErrAlreadyRegistered = errors.New("algorithm already registered")
	ErrEmptyName         = errors.New("algorithm name cannot be empty")
	ErrNilExecutor       = errors.New("executor cannot be nil")

	// Execution errors
	ErrTargetRequired = errors.New("requires a target value")
	ErrCancelled      = errors.New("execution cancelled")
)
