package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_Validate(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr error
	}{
		{
			name: "valid compare step",
			step: Step{Type: TypeCompare, Indices: []int{2}},
		},
		{
			name: "valid step with empty indices",
			step: Step{Type: TypeInit, Indices: []int{}},
		},
		{
			name:    "missing type",
			step:    Step{Indices: []int{0}},
			wantErr: ErrInvalidStepType,
		},
		{
			name:    "negative index",
			step:    Step{Type: TypeHighlight, Indices: []int{0, -1}},
			wantErr: ErrNegativeIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.step.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStep_Clone(t *testing.T) {
	orig := &Step{
		Type:        TypeCompare,
		Indices:     []int{2},
		Metadata:    Metadata{MetaMid: 2, MetaTargetValue: 5.0},
		Description: "Compare: target(5) == mid(5)",
	}

	cp := orig.Clone()
	cp.OperationCount = 7
	cp.Indices[0] = 99
	cp.Metadata[MetaMid] = 99

	assert.Equal(t, 0, orig.OperationCount)
	assert.Equal(t, []int{2}, orig.Indices)
	mid, ok := orig.Metadata.Int(MetaMid)
	require.True(t, ok)
	assert.Equal(t, 2, mid)
}

func TestMetadata_Int(t *testing.T) {
	m := Metadata{
		"int":     3,
		"int64":   int64(4),
		"float64": 5.0,
		"string":  "six",
	}

	for key, want := range map[string]int{"int": 3, "int64": 4, "float64": 5} {
		got, ok := m.Int(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got)
	}

	_, ok := m.Int("string")
	assert.False(t, ok)
	_, ok = m.Int("missing")
	assert.False(t, ok)
}

func TestMetadata_Bool(t *testing.T) {
	m := Metadata{MetaFound: false}

	found, ok := m.Bool(MetaFound)
	require.True(t, ok)
	assert.False(t, found)

	_, ok = m.Bool("missing")
	assert.False(t, ok)
}

func TestMetadata_IntSlice(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []int
		ok    bool
	}{
		{name: "native ints", value: []int{1, 2}, want: []int{1, 2}, ok: true},
		{name: "decoded json floats", value: []interface{}{1.0, 2.0}, want: []int{1, 2}, ok: true},
		{name: "decoded msgpack int64s", value: []interface{}{int64(1), int64(2)}, want: []int{1, 2}, ok: true},
		{name: "mixed garbage", value: []interface{}{1, "x"}, ok: false},
		{name: "wrong type", value: "nope", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metadata{MetaEliminatedRange: tt.value}
			got, ok := m.IntSlice(MetaEliminatedRange)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRangeIndices(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, RangeIndices(2, 4))
	assert.Equal(t, []int{3}, RangeIndices(3, 3))
	assert.Nil(t, RangeIndices(4, 2))
}
