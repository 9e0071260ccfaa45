package usecases

import (
	"context"

	"github.com/algoviz/algoviz/internal/core/algorithm"
	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/internal/core/trace"
)

// AlgorithmRegistry resolves algorithm names to executors. Satisfied by
// algorithm.Registry; injected so tests can supply their own.
type AlgorithmRegistry interface {
	Get(name string) (algorithm.Executor, error)
	List() []string
	Info(name string) (algorithm.Info, error)
}

// TraceManager persists completed executions for later replay.
type TraceManager interface {
	// SaveTrace stores a completed execution trace
	SaveTrace(ctx context.Context, t *trace.Trace) error

	// LoadTrace retrieves a trace by ID
	LoadTrace(ctx context.Context, id string) (*trace.Trace, error)

	// ListTraces returns traces matching the filter
	ListTraces(ctx context.Context, filter trace.Filter) ([]*trace.Trace, error)

	// DeleteTrace removes a trace by ID
	DeleteTrace(ctx context.Context, id string) error
}

// StepCallback receives each wrapped step synchronously, in step order.
type StepCallback func(*step.Step)

// PerformanceCallback receives the running metrics after each step.
type PerformanceCallback func(trace.Metrics)
