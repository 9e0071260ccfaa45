// Package algorithm provides the executor contract and the built-in search
// algorithm implementations that emit visualization step traces.
package algorithm

import (
	"context"

	"github.com/algoviz/algoviz/internal/core/step"
)

// Executor is a pluggable algorithm implementation producing an ordered step
// trace for the given input. Executors are stateless and safe for reuse;
// step numbering is the engine's job, not the executor's.
type Executor interface {
	// Name returns the registry key for this algorithm.
	Name() string

	// Describe returns the static descriptors shown to learners.
	Describe() Info

	// Execute runs the algorithm over data and returns the emitted steps in
	// order. target is nil when the caller supplied none; search algorithms
	// reject that with ErrTargetRequired. Executors check ctx between steps
	// and abort with a wrapped ErrCancelled once it is done.
	Execute(ctx context.Context, data []float64, target *float64) ([]*step.Step, error)
}

// Info holds the static descriptors of an algorithm.
type Info struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	TimeComplexity  string `json:"timeComplexity"`
	SpaceComplexity string `json:"spaceComplexity"`
}

// Result is the outcome of a search, derived from the terminal step.
type Result struct {
	Found bool `json:"found"`
	Index int  `json:"index"`
}

// ResultOf derives the search outcome from a completed step trace: the index
// of the found step when present, -1 otherwise.
func ResultOf(steps []*step.Step) Result {
	for _, s := range steps {
		if s.Type == step.TypeFound && len(s.Indices) > 0 {
			return Result{Found: true, Index: s.Indices[0]}
		}
	}
	return Result{Found: false, Index: -1}
}
