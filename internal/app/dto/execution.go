package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/internal/core/trace"
)

// requestValidator carries the declarative field rules for incoming
// requests. Shared; validator.Validate is safe for concurrent use.
var requestValidator = validator.New()

// ExecutionRequest represents a request to run an algorithm and collect its
// step trace.
type ExecutionRequest struct {
	Algorithm string          `json:"algorithm" validate:"required"`
	SessionID string          `json:"session_id" validate:"required"`
	Data      []float64       `json:"data" validate:"required"`
	Target    *float64        `json:"target,omitempty"`
	Config    ExecutionConfig `json:"config"`
}

// ExecutionConfig contains configuration for algorithm execution
type ExecutionConfig struct {
	StepDelay time.Duration `json:"step_delay"` // Base delay between playback steps
	MaxSteps  int           `json:"max_steps"`  // Safety cap on emitted steps
	Timeout   time.Duration `json:"timeout"`    // Execution timeout
	SaveTrace bool          `json:"save_trace"` // Persist the completed trace
}

// ExecutionResponse represents the outcome of one algorithm execution.
type ExecutionResponse struct {
	ExecutionID string          `json:"execution_id"`
	Algorithm   string          `json:"algorithm"`
	SessionID   string          `json:"session_id"`
	Status      ExecutionStatus `json:"status"`
	Found       bool            `json:"found"`
	FoundIndex  int             `json:"found_index"`
	Steps       []*step.Step    `json:"steps"`
	Metrics     trace.Metrics   `json:"metrics"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	Duration    time.Duration   `json:"duration"`
	Error       string          `json:"error,omitempty"`
}

// ExecutionStatus represents the status of an execution
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusCancelled ExecutionStatus = "cancelled"
)

// Validate checks the request and applies defaults.
func (req *ExecutionRequest) Validate() error {
	if req.Algorithm == "" {
		return ErrMissingAlgorithm
	}
	if req.SessionID == "" {
		return ErrMissingSessionID
	}
	if req.Data == nil {
		return ErrNilData
	}
	if err := requestValidator.Struct(req); err != nil {
		return err
	}
	if req.Config.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must not be negative, got %d", ErrInvalidConfig, req.Config.MaxSteps)
	}
	if req.Config.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %v", ErrInvalidConfig, req.Config.Timeout)
	}
	if req.Config.StepDelay < 0 {
		return fmt.Errorf("%w: step_delay must not be negative, got %v", ErrInvalidConfig, req.Config.StepDelay)
	}
	if req.Config.MaxSteps == 0 {
		req.Config.MaxSteps = 10000 // Default safety cap
	}
	if req.Config.Timeout == 0 {
		req.Config.Timeout = time.Minute // Default timeout
	}
	if req.Config.StepDelay == 0 {
		req.Config.StepDelay = 100 * time.Millisecond // Default playback cadence
	}
	return nil
}
