package stream

import (
	"context"
	"sync"

	imetrics "github.com/algoviz/algoviz/internal/infrastructure/metrics"
)

const defaultCapacity = 1024

// Buffered is an in-memory ring stream. When the buffer is full the oldest
// event is evicted rather than blocking the producer: the engine must never
// stall on a slow renderer, and a visualization that falls behind prefers
// fresh frames over stale ones.
type Buffered struct {
	mu     sync.Mutex
	buf    []Event
	cap    int
	closed bool
	notify chan struct{}
}

// NewBuffered creates a buffered stream. capacity <= 0 selects the default.
func NewBuffered(capacity int) *Buffered {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Buffered{
		buf:    make([]Event, 0, capacity),
		cap:    capacity,
		notify: make(chan struct{}),
	}
}

// Send appends an event, evicting the oldest when at capacity.
func (b *Buffered) Send(_ context.Context, ev Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrStreamClosed
	}
	if len(b.buf) >= b.cap {
		b.buf = b.buf[1:]
		imetrics.StreamEvicted("buffered", 1)
	}
	b.buf = append(b.buf, ev)
	imetrics.StreamSent("buffered", 1)
	b.signalLocked()
	b.mu.Unlock()
	return nil
}

// Receive returns the next event, blocking until one arrives. A closed and
// drained stream returns ErrStreamClosed.
func (b *Buffered) Receive(ctx context.Context) (Event, error) {
	for {
		b.mu.Lock()
		if len(b.buf) > 0 {
			ev := b.buf[0]
			b.buf = b.buf[1:]
			imetrics.StreamReceived("buffered", 1)
			b.mu.Unlock()
			return ev, nil
		}
		if b.closed {
			b.mu.Unlock()
			return Event{}, ErrStreamClosed
		}
		wait := b.notify
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-wait:
		}
	}
}

// Close marks the stream complete; buffered events stay receivable.
func (b *Buffered) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.signalLocked()
	return nil
}

// Len returns the number of buffered events.
func (b *Buffered) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

// signalLocked wakes all waiting receivers by rotating the notify channel.
func (b *Buffered) signalLocked() {
	close(b.notify)
	b.notify = make(chan struct{})
}
