// Package stream defines domain-specific errors
package stream

import "errors"

var (
	// Event errors
	ErrInvalidEventKind = errors.New("invalid event kind")
	ErrNilEventStep     = errors.New("step event requires a step")

	// Stream errors
	ErrStreamClosed = errors.New("stream is closed")
)
