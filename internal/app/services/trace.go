// Package services provides application services bridging the engine to the
// persistence adapters.
package services

import (
	"context"
	"fmt"

	"github.com/algoviz/algoviz/internal/core/trace"
	imetrics "github.com/algoviz/algoviz/internal/infrastructure/metrics"
)

// TraceService implements the usecases.TraceManager interface on top of a
// trace.Saver, adding validation and bookkeeping.
type TraceService struct {
	saver trace.Saver
}

// NewTraceService creates a trace service backed by the given saver.
func NewTraceService(saver trace.Saver) *TraceService {
	return &TraceService{saver: saver}
}

// SaveTrace validates and persists a completed execution trace.
func (s *TraceService) SaveTrace(ctx context.Context, t *trace.Trace) error {
	if t == nil {
		return trace.ErrInvalidTraceID
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("trace validation failed: %w", err)
	}
	if err := s.saver.Save(ctx, t); err != nil {
		return fmt.Errorf("failed to save trace: %w", err)
	}
	imetrics.IncTracesSaved()
	return nil
}

// LoadTrace retrieves a trace by ID.
func (s *TraceService) LoadTrace(ctx context.Context, id string) (*trace.Trace, error) {
	if id == "" {
		return nil, trace.ErrInvalidTraceID
	}
	t, err := s.saver.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load trace: %w", err)
	}
	return t, nil
}

// ListTraces returns traces matching the filter.
func (s *TraceService) ListTraces(ctx context.Context, filter trace.Filter) ([]*trace.Trace, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter validation failed: %w", err)
	}
	return s.saver.List(ctx, filter)
}

// DeleteTrace removes a trace by ID.
func (s *TraceService) DeleteTrace(ctx context.Context, id string) error {
	if id == "" {
		return trace.ErrInvalidTraceID
	}
	return s.saver.Delete(ctx, id)
}
