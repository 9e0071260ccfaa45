// Package trace provides the core trace domain entities and interfaces:
// a trace is one completed execution's step history plus its metrics, saved
// so a lesson can be replayed without re-running the algorithm.
package trace

import (
	"time"

	"github.com/algoviz/algoviz/internal/core/step"
)

// SchemaVersion is written into every saved trace.
const SchemaVersion = "1.0"

// Trace represents one saved algorithm execution.
type Trace struct {
	ID        string       `json:"id" msgpack:"id"`
	Algorithm string       `json:"algorithm" msgpack:"algorithm"`
	SessionID string       `json:"session_id" msgpack:"session_id"`
	Data      []float64    `json:"data" msgpack:"data"`
	Target    *float64     `json:"target,omitempty" msgpack:"target,omitempty"`
	Steps     []*step.Step `json:"steps" msgpack:"steps"`
	Metrics   Metrics      `json:"metrics" msgpack:"metrics"`
	Metadata  Metadata     `json:"metadata" msgpack:"metadata"`
	Timestamp time.Time    `json:"timestamp" msgpack:"timestamp"`
	Version   string       `json:"version" msgpack:"version"`
}

// Metrics holds the performance accounting of one execution.
// ComparisonCount never exceeds TotalOperations.
type Metrics struct {
	TotalOperations int           `json:"totalOperations" msgpack:"totalOperations"`
	ComparisonCount int           `json:"comparisonCount" msgpack:"comparisonCount"`
	ActualRuntime   time.Duration `json:"actualRuntime" msgpack:"actualRuntime"`
	TimeComplexity  string        `json:"timeComplexity" msgpack:"timeComplexity"`
	SpaceComplexity string        `json:"spaceComplexity" msgpack:"spaceComplexity"`
}

// Metadata contains additional information about a trace.
type Metadata struct {
	Found      bool     `json:"found" msgpack:"found"`
	FoundIndex int      `json:"found_index" msgpack:"found_index"`
	Source     string   `json:"source,omitempty" msgpack:"source,omitempty"`
	Tags       []string `json:"tags,omitempty" msgpack:"tags,omitempty"`
}

// Validate ensures trace integrity before persistence.
func (t *Trace) Validate() error {
	if t.ID == "" {
		return ErrInvalidTraceID
	}
	if t.Algorithm == "" {
		return ErrInvalidAlgorithm
	}
	if t.SessionID == "" {
		return ErrInvalidSessionID
	}
	if t.Steps == nil {
		return ErrNilSteps
	}
	return nil
}
