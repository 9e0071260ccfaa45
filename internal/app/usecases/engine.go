package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/algoviz/algoviz/internal/app/dto"
	"github.com/algoviz/algoviz/internal/core/algorithm"
	"github.com/algoviz/algoviz/internal/core/player"
	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/internal/core/trace"
	imetrics "github.com/algoviz/algoviz/internal/infrastructure/metrics"
)

// Engine orchestrates algorithm execution: it resolves the executor, assigns
// every emitted step a strictly increasing operation count and an elapsed
// timestamp, invokes callbacks in step order, computes final metrics, and
// enforces the one-execution-per-engine rule. A new Execute call cancels any
// execution still in flight; the superseded call returns dto.ErrCancelled.
type Engine struct {
	registry AlgorithmRegistry
	traces   TraceManager

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
}

// ExecuteOptions carries the per-call collaborators of an execution.
type ExecuteOptions struct {
	// OnStep is invoked synchronously for each wrapped step, in step order.
	OnStep StepCallback
	// OnPerformance is invoked after each step with the running metrics.
	OnPerformance PerformanceCallback
	// Player, when set, receives every wrapped step via AddStep and is
	// stopped on cancellation.
	Player *player.Player
}

// NewEngine creates an execution engine. traces may be nil when trace
// persistence is not wanted.
func NewEngine(registry AlgorithmRegistry, traces TraceManager) *Engine {
	return &Engine{
		registry: registry,
		traces:   traces,
	}
}

// Execute runs the named algorithm and returns the completed response. On
// cancellation no partial result is returned, only dto.ErrCancelled.
func (e *Engine) Execute(ctx context.Context, req *dto.ExecutionRequest, opts ExecuteOptions) (*dto.ExecutionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	executor, err := e.registry.Get(req.Algorithm)
	if err != nil {
		return nil, err
	}

	// Registering this execution cancels any prior one still in flight.
	runCtx, gen := e.begin(ctx)
	defer e.end(gen)

	runCtx, cancelTimeout := context.WithTimeout(runCtx, req.Config.Timeout)
	defer cancelTimeout()

	start := time.Now()
	response := &dto.ExecutionResponse{
		ExecutionID: uuid.NewString(),
		Algorithm:   req.Algorithm,
		SessionID:   req.SessionID,
		Status:      dto.ExecutionStatusRunning,
		StartTime:   start,
	}

	if opts.Player != nil {
		opts.Player.SetData(req.Data)
		if req.Target != nil {
			opts.Player.SetTarget(*req.Target)
		}
	}

	raw, err := executor.Execute(runCtx, req.Data, req.Target)
	if err != nil {
		return nil, e.finishError(runCtx, opts, err)
	}
	if len(raw) > req.Config.MaxSteps {
		return nil, fmt.Errorf("%w: %d steps exceed the %d step cap",
			dto.ErrExecutionFailed, len(raw), req.Config.MaxSteps)
	}

	info := executor.Describe()
	metrics := trace.Metrics{
		TimeComplexity:  info.TimeComplexity,
		SpaceComplexity: info.SpaceComplexity,
	}

	steps := make([]*step.Step, 0, len(raw))
	for i, s := range raw {
		// Cancellation is observed between steps; no further steps are
		// wrapped or delivered once it is.
		if err := runCtx.Err(); err != nil {
			return nil, e.finishError(runCtx, opts, err)
		}

		wrapped := s.Clone()
		wrapped.OperationCount = i + 1
		if wrapped.Metadata == nil {
			wrapped.Metadata = step.Metadata{}
		}
		wrapped.Metadata[step.MetaTimestamp] = time.Since(start).Milliseconds()
		steps = append(steps, wrapped)

		metrics.TotalOperations = i + 1
		if wrapped.Type == step.TypeCompare {
			metrics.ComparisonCount++
		}

		if opts.OnStep != nil {
			opts.OnStep(wrapped)
		}
		if opts.Player != nil {
			if err := opts.Player.AddStep(wrapped); err != nil {
				return nil, fmt.Errorf("appending step %d: %w", i+1, err)
			}
		}
		if opts.OnPerformance != nil {
			opts.OnPerformance(metrics)
		}
	}

	metrics.ActualRuntime = time.Since(start)
	result := algorithm.ResultOf(steps)

	response.Status = dto.ExecutionStatusCompleted
	response.Found = result.Found
	response.FoundIndex = result.Index
	response.Steps = steps
	response.Metrics = metrics
	response.EndTime = time.Now()
	response.Duration = response.EndTime.Sub(response.StartTime)

	imetrics.IncExecutions(req.Algorithm)
	imetrics.AddSteps(req.Algorithm, int64(metrics.TotalOperations))
	imetrics.AddComparisons(req.Algorithm, int64(metrics.ComparisonCount))

	if req.Config.SaveTrace && e.traces != nil {
		if err := e.saveTrace(ctx, req, response); err != nil {
			return nil, fmt.Errorf("saving trace: %w", err)
		}
	}
	return response, nil
}

// Playback loads a computed step list into the player and drives it to the
// end, honoring pause and speed. stepDelay is the base inter-step delay
// before speed scaling.
func (e *Engine) Playback(ctx context.Context, p *player.Player, steps []*step.Step, stepDelay time.Duration) error {
	if p == nil {
		return fmt.Errorf("playback requires a player")
	}
	p.Reset()
	for i, s := range steps {
		if err := p.AddStep(s); err != nil {
			return fmt.Errorf("loading step %d: %w", i+1, err)
		}
	}
	imetrics.IncReplays()
	return p.Replay(ctx, stepDelay)
}

// Cancel aborts the in-flight execution, if any.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Algorithms returns the names of the registered algorithms.
func (e *Engine) Algorithms() []string {
	return e.registry.List()
}

// AlgorithmInfo returns the static descriptors of the named algorithm.
func (e *Engine) AlgorithmInfo(name string) (algorithm.Info, error) {
	return e.registry.Info(name)
}

// begin registers a new execution, cancelling the prior one.
func (e *Engine) begin(ctx context.Context) (context.Context, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.generation++
	return runCtx, e.generation
}

// end clears the registration unless a newer execution has replaced it.
func (e *Engine) end(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation == gen && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// finishError maps executor and context failures onto the engine's error
// contract and leaves an attached player stopped, never playing.
func (e *Engine) finishError(runCtx context.Context, opts ExecuteOptions, err error) error {
	if opts.Player != nil {
		opts.Player.Stop()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, algorithm.ErrCancelled) || runCtx.Err() != nil {
		imetrics.IncCancellations()
		return fmt.Errorf("%w: %v", dto.ErrCancelled, err)
	}
	return err
}

func (e *Engine) saveTrace(ctx context.Context, req *dto.ExecutionRequest, resp *dto.ExecutionResponse) error {
	t := &trace.Trace{
		ID:        resp.ExecutionID,
		Algorithm: req.Algorithm,
		SessionID: req.SessionID,
		Data:      req.Data,
		Target:    req.Target,
		Steps:     resp.Steps,
		Metrics:   resp.Metrics,
		Metadata: trace.Metadata{
			Found:      resp.Found,
			FoundIndex: resp.FoundIndex,
			Source:     "engine",
		},
		Timestamp: resp.EndTime,
		Version:   trace.SchemaVersion,
	}
	return e.traces.SaveTrace(ctx, t)
}
