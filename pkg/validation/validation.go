// Package validation provides input-domain validation for algorithm
// execution: search inputs must be finite numbers, and binary search
// requires a sorted array. These checks run before any step is produced so
// a failed validation never leaves partial history behind.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors for the precondition kinds callers branch on.
var (
	ErrUnsortedInput    = errors.New("Array must be sorted")
	ErrNonFiniteElement = errors.New("array element must be a finite number")
	ErrNonFiniteTarget  = errors.New("target must be a finite number")
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`

	kind error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s (got: %v)", e.Field, e.Message, e.Value)
}

// Unwrap exposes the sentinel kind so callers can branch with errors.Is.
func (e ValidationError) Unwrap() error { return e.kind }

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i := range e {
		out[i] = e[i]
	}
	return out
}

// ValidateFinite rejects NaN and infinite values anywhere in data.
func ValidateFinite(data []float64) error {
	for i, v := range data {
		if !isFinite(v) {
			return fmt.Errorf("%w: index %d, got %v", ErrNonFiniteElement, i, v)
		}
	}
	return nil
}

// ValidateTarget rejects a NaN or infinite search target.
func ValidateTarget(target float64) error {
	if !isFinite(target) {
		return fmt.Errorf("%w: got %v", ErrNonFiniteTarget, target)
	}
	return nil
}

// ValidateSorted rejects arrays not sorted in ascending order. Equal
// neighbors are permitted; duplicate values are a valid binary search input.
func ValidateSorted(data []float64) error {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return fmt.Errorf("%w: found %v < %v at indices %d and %d",
				ErrUnsortedInput, data[i], data[i-1], i, i-1)
		}
	}
	return nil
}

// ValidateSearchInput bundles the finite-number checks shared by every
// search algorithm, collecting every offending value instead of stopping at
// the first. Sortedness is binary search specific and checked separately
// via ValidateSorted.
func ValidateSearchInput(data []float64, target *float64) error {
	var errs ValidationErrors
	for i, v := range data {
		if !isFinite(v) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("data[%d]", i),
				Value:   v,
				Message: "must be a finite number",
				kind:    ErrNonFiniteElement,
			})
		}
	}
	if target != nil && !isFinite(*target) {
		errs = append(errs, ValidationError{
			Field:   "target",
			Value:   *target,
			Message: "must be a finite number",
			kind:    ErrNonFiniteTarget,
		})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
