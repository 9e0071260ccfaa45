package algorithm

import (
	"context"
	"fmt"

	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/pkg/validation"
)

// BinarySearch emits the classic halving search trace: per iteration a
// highlight of the active [left, right] range, a compare against the middle
// element, then either a found step or an eliminate step over the discarded
// half. Requires sorted ascending input and a target.
type BinarySearch struct{}

// NewBinarySearch creates a binary search executor.
func NewBinarySearch() *BinarySearch {
	return &BinarySearch{}
}

// Name returns the registry key for binary search.
func (b *BinarySearch) Name() string { return "binary-search" }

// Describe returns the static descriptors for binary search.
func (b *BinarySearch) Describe() Info {
	return Info{
		Name:            b.Name(),
		Description:     "Halves the search space on every comparison of a sorted array",
		TimeComplexity:  "O(log n)",
		SpaceComplexity: "O(1)",
	}
}

// Execute runs binary search over data and returns the step trace. With
// duplicate values any matching index may be reported.
func (b *BinarySearch) Execute(ctx context.Context, data []float64, target *float64) ([]*step.Step, error) {
	if target == nil {
		return nil, fmt.Errorf("binary search %w", ErrTargetRequired)
	}
	if err := validation.ValidateSearchInput(data, target); err != nil {
		return nil, err
	}
	if err := validation.ValidateSorted(data); err != nil {
		return nil, err
	}

	t := *target
	steps := make([]*step.Step, 0, 8)
	steps = append(steps, &step.Step{
		Type:    step.TypeInit,
		Indices: []int{},
		Metadata: step.Metadata{
			step.MetaTarget:      t,
			step.MetaLeft:        0,
			step.MetaRight:       len(data) - 1,
			step.MetaArrayLength: len(data),
			step.MetaAlgorithm:   b.Name(),
		},
		Description: fmt.Sprintf("Initialize binary search for target %v in sorted array of %d elements", t, len(data)),
	})

	left, right := 0, len(data)-1
	comparisons := 0

	for left <= right {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		mid := (left + right) / 2

		steps = append(steps, &step.Step{
			Type:    step.TypeHighlight,
			Indices: step.RangeIndices(left, right),
			Metadata: step.Metadata{
				step.MetaLeft:  left,
				step.MetaRight: right,
				step.MetaMid:   mid,
			},
			Description: fmt.Sprintf("Search range: [%d, %d] (%d elements)", left, right, right-left+1),
		})

		comparisons++
		steps = append(steps, &step.Step{
			Type:    step.TypeCompare,
			Indices: []int{mid},
			Metadata: step.Metadata{
				step.MetaLeft:            left,
				step.MetaRight:           right,
				step.MetaMid:             mid,
				step.MetaTargetValue:     t,
				step.MetaMidValue:        data[mid],
				step.MetaComparisonCount: comparisons,
			},
			Description: fmt.Sprintf("Compare: target(%v) %s mid(%v)", t, comparisonSymbol(t, data[mid]), data[mid]),
		})

		switch {
		case data[mid] == t:
			steps = append(steps, &step.Step{
				Type:    step.TypeFound,
				Indices: []int{mid},
				Metadata: step.Metadata{
					step.MetaLeft:            left,
					step.MetaRight:           right,
					step.MetaMid:             mid,
					step.MetaFound:           true,
					step.MetaFoundIndex:      mid,
					step.MetaTargetValue:     t,
					step.MetaComparisonCount: comparisons,
				},
				Description: fmt.Sprintf("Found target %v at index %d after %d comparisons", t, mid, comparisons),
			})
			return steps, nil

		case data[mid] < t:
			steps = append(steps, &step.Step{
				Type:    step.TypeEliminate,
				Indices: step.RangeIndices(left, mid),
				Metadata: step.Metadata{
					step.MetaLeft:            left,
					step.MetaRight:           right,
					step.MetaMid:             mid,
					step.MetaEliminatedRange: []int{left, mid},
					step.MetaRemainingRange:  []int{mid + 1, right},
					step.MetaReason:          fmt.Sprintf("%v < %v", data[mid], t),
				},
				Description: fmt.Sprintf("%v < %v: eliminate left half [%d, %d], search [%d, %d]", data[mid], t, left, mid, mid+1, right),
			})
			left = mid + 1

		default:
			steps = append(steps, &step.Step{
				Type:    step.TypeEliminate,
				Indices: step.RangeIndices(mid, right),
				Metadata: step.Metadata{
					step.MetaLeft:            left,
					step.MetaRight:           right,
					step.MetaMid:             mid,
					step.MetaEliminatedRange: []int{mid, right},
					step.MetaRemainingRange:  []int{left, mid - 1},
					step.MetaReason:          fmt.Sprintf("%v > %v", data[mid], t),
				},
				Description: fmt.Sprintf("%v > %v: eliminate right half [%d, %d], search [%d, %d]", data[mid], t, mid, right, left, mid-1),
			})
			right = mid - 1
		}
	}

	steps = append(steps, &step.Step{
		Type:    step.TypeEliminate,
		Indices: []int{},
		Metadata: step.Metadata{
			step.MetaFound:           false,
			step.MetaComparisonCount: comparisons,
		},
		Description: fmt.Sprintf("Target %v not found after %d comparisons (search space exhausted)", t, comparisons),
	})
	return steps, nil
}

func comparisonSymbol(target, mid float64) string {
	switch {
	case target == mid:
		return "=="
	case target < mid:
		return "<"
	default:
		return ">"
	}
}
