package dto

import "errors"

// Execution errors
var (
	ErrMissingAlgorithm = errors.New("algorithm name is required")
	ErrMissingSessionID = errors.New("session ID is required")
	ErrNilData          = errors.New("input data is required")
	ErrInvalidConfig    = errors.New("invalid execution configuration")
	ErrCancelled        = errors.New("execution cancelled")
	ErrExecutionFailed  = errors.New("algorithm execution failed")
)
