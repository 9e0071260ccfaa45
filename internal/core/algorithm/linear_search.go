package algorithm

import (
	"context"
	"fmt"

	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/pkg/validation"
)

// LinearSearch scans every element left to right, emitting a highlight and a
// compare per element. No ordering precondition; requires a target.
type LinearSearch struct{}

// NewLinearSearch creates a linear search executor.
func NewLinearSearch() *LinearSearch {
	return &LinearSearch{}
}

// Name returns the registry key for linear search.
func (l *LinearSearch) Name() string { return "linear-search" }

// Describe returns the static descriptors for linear search.
func (l *LinearSearch) Describe() Info {
	return Info{
		Name:            l.Name(),
		Description:     "Checks each element in order until the target is found",
		TimeComplexity:  "O(n)",
		SpaceComplexity: "O(1)",
	}
}

// Execute runs linear search over data and returns the step trace. The first
// matching index stops the scan.
func (l *LinearSearch) Execute(ctx context.Context, data []float64, target *float64) ([]*step.Step, error) {
	if target == nil {
		return nil, fmt.Errorf("linear search %w", ErrTargetRequired)
	}
	if err := validation.ValidateSearchInput(data, target); err != nil {
		return nil, err
	}

	t := *target
	steps := make([]*step.Step, 0, 2*len(data)+2)
	steps = append(steps, &step.Step{
		Type:    step.TypeInit,
		Indices: []int{},
		Metadata: step.Metadata{
			step.MetaTarget:      t,
			step.MetaArrayLength: len(data),
			step.MetaAlgorithm:   l.Name(),
		},
		Description: fmt.Sprintf("Initialize linear search for target %v in array of %d elements", t, len(data)),
	})

	comparisons := 0
	for i, v := range data {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		steps = append(steps, &step.Step{
			Type:    step.TypeHighlight,
			Indices: []int{i},
			Metadata: step.Metadata{
				step.MetaIndex:        i,
				step.MetaCurrentValue: v,
			},
			Description: fmt.Sprintf("Check index %d (value %v)", i, v),
		})

		comparisons++
		steps = append(steps, &step.Step{
			Type:    step.TypeCompare,
			Indices: []int{i},
			Metadata: step.Metadata{
				step.MetaIndex:           i,
				step.MetaTargetValue:     t,
				step.MetaCurrentValue:    v,
				step.MetaComparisonCount: comparisons,
			},
			Description: fmt.Sprintf("Compare: target(%v) %s element(%v)", t, comparisonSymbol(t, v), v),
		})

		if v == t {
			steps = append(steps, &step.Step{
				Type:    step.TypeFound,
				Indices: []int{i},
				Metadata: step.Metadata{
					step.MetaFound:           true,
					step.MetaFoundIndex:      i,
					step.MetaTargetValue:     t,
					step.MetaComparisonCount: comparisons,
				},
				Description: fmt.Sprintf("Found target %v at index %d after %d comparisons", t, i, comparisons),
			})
			return steps, nil
		}
	}

	steps = append(steps, &step.Step{
		Type:    step.TypeEliminate,
		Indices: []int{},
		Metadata: step.Metadata{
			step.MetaFound:           false,
			step.MetaComparisonCount: comparisons,
		},
		Description: fmt.Sprintf("Target %v not found after checking all %d elements", t, len(data)),
	})
	return steps, nil
}
