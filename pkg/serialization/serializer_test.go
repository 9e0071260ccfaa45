package serialization

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/internal/core/trace"
)

func sampleTrace() *trace.Trace {
	target := 7.0
	return &trace.Trace{
		ID:        "t1",
		Algorithm: "binary-search",
		SessionID: "session-1",
		Data:      []float64{1, 3, 5, 7, 9},
		Target:    &target,
		Steps: []*step.Step{
			{
				Type:           step.TypeCompare,
				Indices:        []int{2},
				OperationCount: 1,
				Metadata:       step.Metadata{step.MetaMid: 2, step.MetaComparisonCount: 1},
				Description:    "Compare: target(7) > mid(5)",
			},
			{Type: step.TypeFound, Indices: []int{3}, OperationCount: 2},
		},
		Metrics:   trace.Metrics{TotalOperations: 2, ComparisonCount: 1, ActualRuntime: time.Millisecond},
		Metadata:  trace.Metadata{Found: true, FoundIndex: 3},
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Version:   trace.SchemaVersion,
	}
}

func assertRoundTrip(t *testing.T, s *Serializer) {
	t.Helper()
	original := sampleTrace()

	data, err := s.Serialize(original)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var got trace.Trace
	require.NoError(t, s.Deserialize(data, &got))

	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.Data, got.Data)
	require.NotNil(t, got.Target)
	assert.Equal(t, 7.0, *got.Target)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, step.TypeCompare, got.Steps[0].Type)
	assert.Equal(t, 1, got.Steps[0].OperationCount)
	mid, ok := got.Steps[0].Metadata.Int(step.MetaMid)
	require.True(t, ok)
	assert.Equal(t, 2, mid)
	assert.Equal(t, original.Metrics, got.Metrics)
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
}

func TestSerializer_Default(t *testing.T) {
	assertRoundTrip(t, Default())
}

func TestSerializer_JSONCodec(t *testing.T) {
	assertRoundTrip(t, New(Config{Codec: NewJSONCodec()}))
}

func TestSerializer_Gzip(t *testing.T) {
	assertRoundTrip(t, New(Config{Compression: CompressionGzip}))
}

func TestSerializer_CompressionShrinksTraces(t *testing.T) {
	tr := sampleTrace()
	// Repetitive step metadata is what compression exploits.
	for i := 0; i < 200; i++ {
		tr.Steps = append(tr.Steps, &step.Step{
			Type:           step.TypeCompare,
			Indices:        []int{i % 5},
			OperationCount: i + 3,
			Metadata:       step.Metadata{step.MetaMid: i % 5, step.MetaComparisonCount: i},
			Description:    "Compare: target(7) > mid(5)",
		})
	}

	plain, err := New(Config{Compression: CompressionNone}).Serialize(tr)
	require.NoError(t, err)
	compressed, err := New(Config{Compression: CompressionZstd}).Serialize(tr)
	require.NoError(t, err)

	assert.Less(t, len(compressed), len(plain))
}

func TestSerializer_Encryption(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	s := New(Config{Compression: CompressionZstd, EncryptKey: key})
	assertRoundTrip(t, s)

	data, err := s.Serialize(sampleTrace())
	require.NoError(t, err)

	// A different key cannot open the payload.
	other := New(Config{Compression: CompressionZstd, EncryptKey: bytes.Repeat([]byte{0x24}, 32)})
	var got trace.Trace
	assert.Error(t, other.Deserialize(data, &got))

	// Nonces differ, so identical payloads encrypt differently.
	again, err := s.Serialize(sampleTrace())
	require.NoError(t, err)
	assert.NotEqual(t, data, again)
}

func TestSerializer_TruncatedCiphertext(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	s := New(Config{EncryptKey: key})

	var got trace.Trace
	assert.Error(t, s.Deserialize([]byte{0x01, 0x02}, &got))
}

func TestSerializer_CorruptInput(t *testing.T) {
	var got trace.Trace
	err := Default().Deserialize([]byte("not a trace"), &got)
	assert.Error(t, err)
}
