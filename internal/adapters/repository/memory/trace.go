// Package memory provides a thread-safe in-memory trace store with TTL
// expiry, a memory cap, and LRU eviction. It is the default store for local
// usage and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/algoviz/algoviz/internal/core/trace"
	"github.com/algoviz/algoviz/pkg/serialization"
)

// InMemorySaver implements trace.Saver backed by serialized in-memory
// entries. Traces are stored serialized so memory accounting reflects their
// real footprint and loads return independent copies.
type InMemorySaver struct {
	mu      sync.Mutex
	entries map[string]*entry

	defaultTTL  time.Duration
	maxMemoryMB int64
	currentSize int64

	serializer *serialization.Serializer

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	cleanupOnce   sync.Once
}

// Config holds configuration for InMemorySaver.
type Config struct {
	DefaultTTL      time.Duration             // TTL for stored traces
	MaxMemoryMB     int64                     // Memory cap in MB
	CleanupInterval time.Duration             // Sweep interval for expired traces
	Serializer      *serialization.Serializer // Custom serializer (optional)
}

type entry struct {
	data       []byte
	size       int64
	expiresAt  time.Time
	accessedAt time.Time

	// Filter fields kept unserialized so List avoids decoding every entry.
	algorithm string
	sessionID string
	timestamp time.Time
}

// NewInMemorySaver creates an in-memory trace saver.
func NewInMemorySaver(config Config) *InMemorySaver {
	if config.DefaultTTL == 0 {
		config.DefaultTTL = 24 * time.Hour
	}
	if config.MaxMemoryMB == 0 {
		config.MaxMemoryMB = 256
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	if config.Serializer == nil {
		config.Serializer = serialization.Default()
	}

	s := &InMemorySaver{
		entries:     make(map[string]*entry),
		defaultTTL:  config.DefaultTTL,
		maxMemoryMB: config.MaxMemoryMB,
		serializer:  config.Serializer,
		stopCleanup: make(chan struct{}),
	}
	s.startCleanup(config.CleanupInterval)
	return s
}

// DefaultInMemorySaver creates an InMemorySaver with default configuration
func DefaultInMemorySaver() *InMemorySaver {
	return NewInMemorySaver(Config{})
}

// Save stores a trace, evicting least recently used entries when the memory
// cap would be exceeded.
func (s *InMemorySaver) Save(_ context.Context, t *trace.Trace) error {
	if t == nil {
		return trace.ErrInvalidTraceID
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("trace validation failed: %w", err)
	}

	data, err := s.serializer.Serialize(t)
	if err != nil {
		return fmt.Errorf("trace serialization failed: %w", err)
	}
	size := int64(len(data))

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, exists := s.entries[t.ID]; exists {
		s.currentSize -= old.size
	}
	if err := s.ensureCapacityLocked(size); err != nil {
		return err
	}

	now := time.Now()
	s.entries[t.ID] = &entry{
		data:       data,
		size:       size,
		expiresAt:  now.Add(s.defaultTTL),
		accessedAt: now,
		algorithm:  t.Algorithm,
		sessionID:  t.SessionID,
		timestamp:  t.Timestamp,
	}
	s.currentSize += size
	return nil
}

// Load retrieves a trace by ID.
func (s *InMemorySaver) Load(_ context.Context, id string) (*trace.Trace, error) {
	s.mu.Lock()
	e, exists := s.entries[id]
	if !exists || time.Now().After(e.expiresAt) {
		if exists {
			s.deleteLocked(id)
		}
		s.mu.Unlock()
		return nil, trace.ErrTraceNotFound
	}
	e.accessedAt = time.Now()
	data := e.data
	s.mu.Unlock()

	var t trace.Trace
	if err := s.serializer.Deserialize(data, &t); err != nil {
		return nil, fmt.Errorf("trace deserialization failed: %w", err)
	}
	return &t, nil
}

// List returns traces matching the filter, newest first.
func (s *InMemorySaver) List(ctx context.Context, filter trace.Filter) ([]*trace.Trace, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter validation failed: %w", err)
	}

	s.mu.Lock()
	now := time.Now()
	type candidate struct {
		id        string
		timestamp time.Time
	}
	var ids []candidate
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			continue
		}
		if filter.Algorithm != "" && e.algorithm != filter.Algorithm {
			continue
		}
		if filter.SessionID != "" && e.sessionID != filter.SessionID {
			continue
		}
		if filter.Since != nil && e.timestamp.Before(*filter.Since) {
			continue
		}
		if filter.Before != nil && e.timestamp.After(*filter.Before) {
			continue
		}
		ids = append(ids, candidate{id: id, timestamp: e.timestamp})
	}
	s.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].timestamp.After(ids[j].timestamp) })

	if filter.Offset > 0 {
		if filter.Offset >= len(ids) {
			return nil, nil
		}
		ids = ids[filter.Offset:]
	}
	if filter.Limit > 0 && len(ids) > filter.Limit {
		ids = ids[:filter.Limit]
	}

	results := make([]*trace.Trace, 0, len(ids))
	for _, c := range ids {
		t, err := s.Load(ctx, c.id)
		if err != nil {
			// Entry expired between the scan and the load.
			continue
		}
		results = append(results, t)
	}
	return results, nil
}

// Delete removes a trace by ID.
func (s *InMemorySaver) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[id]; !exists {
		return trace.ErrTraceNotFound
	}
	s.deleteLocked(id)
	return nil
}

// Stats reports memory usage.
type Stats struct {
	Count              int     `json:"count"`
	SizeBytes          int64   `json:"size_bytes"`
	MaxSizeMB          int64   `json:"max_size_mb"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// GetStats returns memory usage statistics.
func (s *InMemorySaver) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{
		Count:     len(s.entries),
		SizeBytes: s.currentSize,
		MaxSizeMB: s.maxMemoryMB,
	}
	if s.maxMemoryMB > 0 {
		st.UtilizationPercent = float64(s.currentSize) / float64(s.maxMemoryMB*1024*1024) * 100
	}
	return st
}

// Close stops the cleanup goroutine.
func (s *InMemorySaver) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
		if s.cleanupTicker != nil {
			s.cleanupTicker.Stop()
		}
	})
	return nil
}

func (s *InMemorySaver) startCleanup(interval time.Duration) {
	s.cleanupTicker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-s.cleanupTicker.C:
				s.sweepExpired()
			case <-s.stopCleanup:
				return
			}
		}
	}()
}

func (s *InMemorySaver) sweepExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			s.deleteLocked(id)
		}
	}
}

func (s *InMemorySaver) deleteLocked(id string) {
	if e, exists := s.entries[id]; exists {
		s.currentSize -= e.size
		delete(s.entries, id)
	}
}

// ensureCapacityLocked evicts least recently used entries until newSize
// fits under the memory cap.
func (s *InMemorySaver) ensureCapacityLocked(newSize int64) error {
	maxBytes := s.maxMemoryMB * 1024 * 1024
	if newSize > maxBytes {
		return fmt.Errorf("trace of %d bytes exceeds memory cap of %dMB", newSize, s.maxMemoryMB)
	}
	if s.currentSize+newSize <= maxBytes {
		return nil
	}

	type lruEntry struct {
		id         string
		accessedAt time.Time
	}
	candidates := make([]lruEntry, 0, len(s.entries))
	for id, e := range s.entries {
		candidates = append(candidates, lruEntry{id: id, accessedAt: e.accessedAt})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].accessedAt.Before(candidates[j].accessedAt)
	})

	for _, c := range candidates {
		if s.currentSize+newSize <= maxBytes {
			break
		}
		s.deleteLocked(c.id)
	}
	if s.currentSize+newSize > maxBytes {
		return fmt.Errorf("memory limit exceeded: current=%dB, max=%dMB", s.currentSize, s.maxMemoryMB)
	}
	return nil
}
