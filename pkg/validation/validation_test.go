package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSorted(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		wantErr bool
	}{
		{"sorted", []float64{1, 3, 5, 7, 9}, false},
		{"empty", []float64{}, false},
		{"single", []float64{5}, false},
		{"equal neighbors", []float64{1, 2, 2, 3}, false},
		{"all equal", []float64{4, 4, 4}, false},
		{"unsorted", []float64{3, 1, 2}, true},
		{"descending", []float64{9, 7, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSorted(tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsortedInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSorted_Message(t *testing.T) {
	err := ValidateSorted([]float64{2, 1})
	assert.EqualError(t, ErrUnsortedInput, "Array must be sorted")
	assert.Contains(t, err.Error(), "Array must be sorted")
}

func TestValidateFinite(t *testing.T) {
	assert.NoError(t, ValidateFinite([]float64{1, -2.5, 0}))
	assert.ErrorIs(t, ValidateFinite([]float64{1, math.NaN()}), ErrNonFiniteElement)
	assert.ErrorIs(t, ValidateFinite([]float64{math.Inf(-1)}), ErrNonFiniteElement)
}

func TestValidateTarget(t *testing.T) {
	assert.NoError(t, ValidateTarget(3.5))
	assert.ErrorIs(t, ValidateTarget(math.NaN()), ErrNonFiniteTarget)
	assert.ErrorIs(t, ValidateTarget(math.Inf(1)), ErrNonFiniteTarget)
}

func TestValidateSearchInput(t *testing.T) {
	target := 5.0
	assert.NoError(t, ValidateSearchInput([]float64{1, 2}, &target))
	assert.NoError(t, ValidateSearchInput([]float64{1, 2}, nil))

	bad := math.NaN()
	assert.ErrorIs(t, ValidateSearchInput([]float64{1, 2}, &bad), ErrNonFiniteTarget)
	assert.ErrorIs(t, ValidateSearchInput([]float64{math.NaN()}, &target), ErrNonFiniteElement)
}

func TestValidateSearchInput_CollectsAllFailures(t *testing.T) {
	bad := math.Inf(1)
	err := ValidateSearchInput([]float64{math.NaN(), 2, math.Inf(-1)}, &bad)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 3)

	assert.Equal(t, "data[0]", errs[0].Field)
	assert.Equal(t, "data[2]", errs[1].Field)
	assert.Equal(t, "target", errs[2].Field)

	// One aggregate still answers both kind checks.
	assert.ErrorIs(t, err, ErrNonFiniteElement)
	assert.ErrorIs(t, err, ErrNonFiniteTarget)
	assert.Contains(t, err.Error(), "data[0]")
	assert.Contains(t, err.Error(), "target")
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())

	errs := ValidationErrors{
		{Field: "data", Value: nil, Message: "is required"},
		{Field: "target", Value: "x", Message: "must be a number"},
	}
	msg := errs.Error()
	assert.Contains(t, msg, "data")
	assert.Contains(t, msg, "target")
}
