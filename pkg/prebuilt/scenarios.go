package prebuilt

import (
	"context"
	"fmt"

	"github.com/algoviz/algoviz/pkg/algoviz"
)

// Scenario is one curated teaching input: a data set, a target, and the
// outcome the learner should observe.
type Scenario struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Algorithm   string    `json:"algorithm"`
	Data        []float64 `json:"data"`
	Target      float64   `json:"target"`
	WantFound   bool      `json:"want_found"`
	WantIndex   int       `json:"want_index"`
}

// Run executes the scenario against the runtime and verifies the outcome
// matches the expectation.
func (sc Scenario) Run(ctx context.Context, rt *algoviz.Runtime) (*algoviz.ExecutionResponse, error) {
	resp, err := rt.Run(ctx, sc.Algorithm, sc.Data, sc.Target)
	if err != nil {
		return nil, err
	}
	if resp.Found != sc.WantFound || resp.FoundIndex != sc.WantIndex {
		return resp, fmt.Errorf("scenario %q: got found=%v index=%d, want found=%v index=%d",
			sc.Name, resp.Found, resp.FoundIndex, sc.WantFound, sc.WantIndex)
	}
	return resp, nil
}

// BinarySearchScenarios returns the standard binary search lesson set, from
// the basic hit through the edge cases worth showing learners.
func BinarySearchScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "middle-hit",
			Description: "Target sits exactly at the first midpoint",
			Algorithm:   "binary-search",
			Data:        []float64{1, 3, 5, 7, 9},
			Target:      5,
			WantFound:   true,
			WantIndex:   2,
		},
		{
			Name:        "first-element",
			Description: "Target at the left boundary",
			Algorithm:   "binary-search",
			Data:        []float64{1, 3, 5, 7, 9},
			Target:      1,
			WantFound:   true,
			WantIndex:   0,
		},
		{
			Name:        "last-element",
			Description: "Target at the right boundary",
			Algorithm:   "binary-search",
			Data:        []float64{1, 3, 5, 7, 9},
			Target:      9,
			WantFound:   true,
			WantIndex:   4,
		},
		{
			Name:        "absent-target",
			Description: "Target falls between elements and is never found",
			Algorithm:   "binary-search",
			Data:        []float64{1, 3, 5, 7, 9},
			Target:      4,
			WantFound:   false,
			WantIndex:   -1,
		},
		{
			Name:        "single-element-hit",
			Description: "One element, one comparison",
			Algorithm:   "binary-search",
			Data:        []float64{5},
			Target:      5,
			WantFound:   true,
			WantIndex:   0,
		},
		{
			Name:        "empty-array",
			Description: "Nothing to search",
			Algorithm:   "binary-search",
			Data:        []float64{},
			Target:      5,
			WantFound:   false,
			WantIndex:   -1,
		},
	}
}

// LinearSearchScenarios returns the standard linear search lesson set.
func LinearSearchScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "early-hit",
			Description: "Target near the front, few comparisons",
			Algorithm:   "linear-search",
			Data:        []float64{4, 2, 7, 1, 9},
			Target:      2,
			WantFound:   true,
			WantIndex:   1,
		},
		{
			Name:        "late-hit",
			Description: "Target at the back, worst case scan",
			Algorithm:   "linear-search",
			Data:        []float64{4, 2, 7, 1, 9},
			Target:      9,
			WantFound:   true,
			WantIndex:   4,
		},
		{
			Name:        "absent-target",
			Description: "Full scan with no match",
			Algorithm:   "linear-search",
			Data:        []float64{4, 2, 7, 1, 9},
			Target:      5,
			WantFound:   false,
			WantIndex:   -1,
		},
	}
}
