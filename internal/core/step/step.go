// Package step provides the core step domain entities shared by executors,
// the execution engine, and the player, with zero external dependencies.
package step

// Type identifies the kind of visualization event a step represents.
type Type string

const (
	// TypeInit is emitted once before any comparison.
	TypeInit Type = "init"
	// TypeHighlight marks indices as the active search range or pointers.
	TypeHighlight Type = "highlight"
	// TypeCompare records a comparison between the target and an element.
	TypeCompare Type = "compare"
	// TypeEliminate marks indices as removed from the search space.
	TypeEliminate Type = "eliminate"
	// TypeFound marks the index where the target was located.
	TypeFound Type = "found"
	// TypeSwap records an element exchange (used by sorting executors).
	TypeSwap Type = "swap"
)

// Well-known metadata keys. Consumers must tolerate unknown keys; executors
// may attach additional keys freely.
const (
	MetaLeft            = "left"
	MetaRight           = "right"
	MetaMid             = "mid"
	MetaIndex           = "index"
	MetaTarget          = "target"
	MetaTargetValue     = "targetValue"
	MetaMidValue        = "midValue"
	MetaCurrentValue    = "currentValue"
	MetaArrayLength     = "arrayLength"
	MetaAlgorithm       = "algorithm"
	MetaFound           = "found"
	MetaFoundIndex      = "foundIndex"
	MetaComparisonCount = "comparisonCount"
	MetaEliminatedRange = "eliminatedRange"
	MetaRemainingRange  = "remainingRange"
	MetaReason          = "reason"
	MetaTimestamp       = "timestamp"
)

// Step represents one discrete, replayable event in an algorithm's execution
// trace. Steps are produced by executors and numbered by the engine.
type Step struct {
	Type        Type           `json:"type" msgpack:"type"`
	Indices     []int          `json:"indices" msgpack:"indices"`
	Metadata    Metadata       `json:"metadata,omitempty" msgpack:"metadata,omitempty"`
	Description string         `json:"description" msgpack:"description"`
	// OperationCount is the 1-based global ordinal assigned by the engine.
	// Zero means the step has not been through the engine yet.
	OperationCount int `json:"operationCount,omitempty" msgpack:"operationCount,omitempty"`
}

// Metadata is an open key-value bag of auxiliary step data. Unknown keys are
// ignorable; absent keys carry no meaning.
type Metadata map[string]interface{}

// Validate ensures step integrity before it enters a history.
func (s *Step) Validate() error {
	if s.Type == "" {
		return ErrInvalidStepType
	}
	for _, idx := range s.Indices {
		if idx < 0 {
			return ErrNegativeIndex
		}
	}
	return nil
}

// Clone returns a deep copy so engine-side mutation never aliases the
// executor's emitted step.
func (s *Step) Clone() *Step {
	cp := &Step{
		Type:           s.Type,
		Description:    s.Description,
		OperationCount: s.OperationCount,
	}
	if s.Indices != nil {
		cp.Indices = append([]int(nil), s.Indices...)
	}
	if s.Metadata != nil {
		cp.Metadata = make(Metadata, len(s.Metadata))
		for k, v := range s.Metadata {
			cp.Metadata[k] = v
		}
	}
	return cp
}

// Int returns the metadata value for key as an int. The second return is
// false when the key is absent or not numeric.
func (m Metadata) Int(key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	}
	return 0, false
}

// Float returns the metadata value for key as a float64.
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Bool returns the metadata value for key as a bool.
func (m Metadata) Bool(key string) (bool, bool) {
	v, ok := m[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// IntSlice returns the metadata value for key as a []int, converting from
// the decoded forms serializers produce.
func (m Metadata) IntSlice(key string) ([]int, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	switch s := v.(type) {
	case []int:
		return s, true
	case []interface{}:
		out := make([]int, 0, len(s))
		for _, e := range s {
			switch n := e.(type) {
			case int:
				out = append(out, n)
			case int64:
				out = append(out, int(n))
			case float64:
				out = append(out, int(n))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

// RangeIndices expands an inclusive [start, end] range into explicit indices.
// An inverted range yields nil.
func RangeIndices(start, end int) []int {
	if end < start {
		return nil
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
