package memory

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/internal/core/trace"
	"github.com/algoviz/algoviz/pkg/serialization"
)

func newSaver(t *testing.T, config Config) *InMemorySaver {
	t.Helper()
	s := NewInMemorySaver(config)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleTrace(id, algorithm string) *trace.Trace {
	target := 5.0
	return &trace.Trace{
		ID:        id,
		Algorithm: algorithm,
		SessionID: "session-1",
		Data:      []float64{1, 3, 5, 7, 9},
		Target:    &target,
		Steps: []*step.Step{
			{Type: step.TypeInit, Indices: []int{}, OperationCount: 1},
			{Type: step.TypeFound, Indices: []int{2}, OperationCount: 2},
		},
		Metrics:   trace.Metrics{TotalOperations: 2, ComparisonCount: 1},
		Metadata:  trace.Metadata{Found: true, FoundIndex: 2},
		Timestamp: time.Now(),
		Version:   trace.SchemaVersion,
	}
}

func TestInMemorySaver_SaveLoadRoundTrip(t *testing.T) {
	s := newSaver(t, Config{})
	ctx := context.Background()

	original := sampleTrace("t1", "binary-search")
	require.NoError(t, s.Save(ctx, original))

	got, err := s.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.Algorithm, got.Algorithm)
	assert.Equal(t, original.Data, got.Data)
	require.NotNil(t, got.Target)
	assert.Equal(t, 5.0, *got.Target)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, step.TypeFound, got.Steps[1].Type)
	assert.Equal(t, 2, got.Steps[1].OperationCount)
	assert.True(t, got.Metadata.Found)
}

func TestInMemorySaver_LoadReturnsCopy(t *testing.T) {
	s := newSaver(t, Config{})
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTrace("t1", "binary-search")))

	first, err := s.Load(ctx, "t1")
	require.NoError(t, err)
	first.Algorithm = "mutated"

	second, err := s.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "binary-search", second.Algorithm)
}

func TestInMemorySaver_SaveInvalid(t *testing.T) {
	s := newSaver(t, Config{})
	ctx := context.Background()

	assert.Error(t, s.Save(ctx, nil))

	bad := sampleTrace("", "binary-search")
	assert.ErrorIs(t, s.Save(ctx, bad), trace.ErrInvalidTraceID)
}

func TestInMemorySaver_LoadMissing(t *testing.T) {
	s := newSaver(t, Config{})
	_, err := s.Load(context.Background(), "absent")
	assert.ErrorIs(t, err, trace.ErrTraceNotFound)
}

func TestInMemorySaver_Delete(t *testing.T) {
	s := newSaver(t, Config{})
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTrace("t1", "binary-search")))

	require.NoError(t, s.Delete(ctx, "t1"))
	_, err := s.Load(ctx, "t1")
	assert.ErrorIs(t, err, trace.ErrTraceNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "t1"), trace.ErrTraceNotFound)
}

func TestInMemorySaver_TTLExpiry(t *testing.T) {
	s := newSaver(t, Config{DefaultTTL: 30 * time.Millisecond})
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTrace("t1", "binary-search")))

	_, err := s.Load(ctx, "t1")
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	_, err = s.Load(ctx, "t1")
	assert.ErrorIs(t, err, trace.ErrTraceNotFound)
}

func TestInMemorySaver_ListFilters(t *testing.T) {
	s := newSaver(t, Config{})
	ctx := context.Background()

	t1 := sampleTrace("t1", "binary-search")
	t1.Timestamp = time.Now().Add(-2 * time.Hour)
	t2 := sampleTrace("t2", "linear-search")
	t2.Timestamp = time.Now().Add(-time.Hour)
	t3 := sampleTrace("t3", "binary-search")
	t3.SessionID = "session-2"
	require.NoError(t, s.Save(ctx, t1))
	require.NoError(t, s.Save(ctx, t2))
	require.NoError(t, s.Save(ctx, t3))

	all, err := s.List(ctx, trace.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "t3", all[0].ID)
	assert.Equal(t, "t1", all[2].ID)

	byAlgo, err := s.List(ctx, trace.Filter{Algorithm: "binary-search"})
	require.NoError(t, err)
	assert.Len(t, byAlgo, 2)

	bySession, err := s.List(ctx, trace.Filter{SessionID: "session-2"})
	require.NoError(t, err)
	require.Len(t, bySession, 1)
	assert.Equal(t, "t3", bySession[0].ID)

	since := time.Now().Add(-90 * time.Minute)
	recent, err := s.List(ctx, trace.Filter{Since: &since})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := s.List(ctx, trace.Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "t2", limited[0].ID)

	past, err := s.List(ctx, trace.Filter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestInMemorySaver_LRUEviction(t *testing.T) {
	// Compression off so entry sizes are predictable.
	s := newSaver(t, Config{
		MaxMemoryMB: 1,
		Serializer:  serialization.New(serialization.Config{Compression: serialization.CompressionNone}),
	})
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	// Each trace serializes to roughly half a megabyte, so the third save
	// must evict the least recently used one.
	bigTrace := func(id string) *trace.Trace {
		tr := sampleTrace(id, "binary-search")
		tr.Data = make([]float64, 60_000)
		for i := range tr.Data {
			tr.Data[i] = rng.Float64()
		}
		return tr
	}

	require.NoError(t, s.Save(ctx, bigTrace("t1")))
	require.NoError(t, s.Save(ctx, bigTrace("t2")))

	// Touch t1 so t2 becomes the eviction candidate.
	_, err := s.Load(ctx, "t1")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, bigTrace("t3")))

	_, err = s.Load(ctx, "t2")
	assert.ErrorIs(t, err, trace.ErrTraceNotFound)
	_, err = s.Load(ctx, "t3")
	assert.NoError(t, err)
}

func TestInMemorySaver_OversizedTraceRejected(t *testing.T) {
	s := newSaver(t, Config{
		MaxMemoryMB: 1,
		Serializer:  serialization.New(serialization.Config{Compression: serialization.CompressionNone}),
	})
	rng := rand.New(rand.NewSource(7))

	tr := sampleTrace("huge", "binary-search")
	tr.Data = make([]float64, 300_000)
	for i := range tr.Data {
		tr.Data[i] = rng.Float64()
	}
	assert.Error(t, s.Save(context.Background(), tr))
}

func TestInMemorySaver_GetStats(t *testing.T) {
	s := newSaver(t, Config{})
	ctx := context.Background()

	assert.Equal(t, 0, s.GetStats().Count)

	require.NoError(t, s.Save(ctx, sampleTrace("t1", "binary-search")))
	stats := s.GetStats()
	assert.Equal(t, 1, stats.Count)
	assert.Greater(t, stats.SizeBytes, int64(0))
}
