// Package stream provides delivery of step events to visualization
// consumers that render at their own pace, decoupled from the engine.
package stream

import (
	"context"

	"github.com/algoviz/algoviz/internal/core/step"
)

// EventKind classifies stream events.
type EventKind string

const (
	// KindStep carries one algorithm step.
	KindStep EventKind = "step"
	// KindControl carries execution lifecycle signals (start, end, cancel).
	KindControl EventKind = "control"
)

// Control payloads carried by KindControl events.
const (
	ControlStart  = "start"
	ControlEnd    = "end"
	ControlCancel = "cancel"
)

// Event is one item on a step stream.
type Event struct {
	Seq     int        `json:"seq"`
	Kind    EventKind  `json:"kind"`
	Step    *step.Step `json:"step,omitempty"`
	Control string     `json:"control,omitempty"`
}

// Validate ensures event integrity before it enters a stream.
func (e *Event) Validate() error {
	if e.Kind == "" {
		return ErrInvalidEventKind
	}
	if e.Kind == KindStep && e.Step == nil {
		return ErrNilEventStep
	}
	return nil
}

// Stream is the delivery contract between the engine and a consumer.
type Stream interface {
	// Send appends an event to the stream.
	Send(ctx context.Context, ev Event) error

	// Receive returns the next event, blocking until one is available, the
	// context is cancelled, or the stream is closed and drained.
	Receive(ctx context.Context) (Event, error)

	// Close marks the stream complete. Buffered events remain receivable.
	Close() error
}
