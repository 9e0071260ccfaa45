// Package trace provides trace persistence interfaces
package trace

import (
	"context"
	"time"
)

// Saver is the persistence contract for traces. The core domain depends on
// this interface; the adapters package supplies memory, sqlite, and postgres
// implementations.
type Saver interface {
	// Save persists a trace
	Save(ctx context.Context, t *Trace) error

	// Load retrieves a trace by ID
	Load(ctx context.Context, id string) (*Trace, error)

	// List returns traces matching the filter
	List(ctx context.Context, filter Filter) ([]*Trace, error)

	// Delete removes a trace by ID
	Delete(ctx context.Context, id string) error
}

// Filter narrows trace queries.
type Filter struct {
	Algorithm string     `json:"algorithm,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
	Since     *time.Time `json:"since,omitempty"`
	Before    *time.Time `json:"before,omitempty"`
}

// Validate ensures filter parameters are valid
func (f *Filter) Validate() error {
	if f.Limit < 0 {
		return ErrInvalidLimit
	}
	if f.Offset < 0 {
		return ErrInvalidOffset
	}
	if f.Since != nil && f.Before != nil && f.Since.After(*f.Before) {
		return ErrInvalidTimeRange
	}
	return nil
}
