package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionRequest_Validate(t *testing.T) {
	target := 5.0

	t.Run("valid request gets defaults", func(t *testing.T) {
		req := &ExecutionRequest{
			Algorithm: "binary-search",
			SessionID: "session-1",
			Data:      []float64{1, 3, 5},
			Target:    &target,
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, 10000, req.Config.MaxSteps)
		assert.Equal(t, time.Minute, req.Config.Timeout)
		assert.Equal(t, 100*time.Millisecond, req.Config.StepDelay)
	})

	t.Run("explicit config is kept", func(t *testing.T) {
		req := &ExecutionRequest{
			Algorithm: "binary-search",
			SessionID: "session-1",
			Data:      []float64{1},
			Config: ExecutionConfig{
				StepDelay: 10 * time.Millisecond,
				MaxSteps:  50,
				Timeout:   5 * time.Second,
				SaveTrace: true,
			},
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, 50, req.Config.MaxSteps)
		assert.Equal(t, 5*time.Second, req.Config.Timeout)
		assert.Equal(t, 10*time.Millisecond, req.Config.StepDelay)
	})

	t.Run("empty data array is accepted", func(t *testing.T) {
		req := &ExecutionRequest{
			Algorithm: "binary-search",
			SessionID: "session-1",
			Data:      []float64{},
			Target:    &target,
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing algorithm", func(t *testing.T) {
		req := &ExecutionRequest{SessionID: "s", Data: []float64{1}}
		assert.ErrorIs(t, req.Validate(), ErrMissingAlgorithm)
	})

	t.Run("missing session", func(t *testing.T) {
		req := &ExecutionRequest{Algorithm: "binary-search", Data: []float64{1}}
		assert.ErrorIs(t, req.Validate(), ErrMissingSessionID)
	})

	t.Run("nil data", func(t *testing.T) {
		req := &ExecutionRequest{Algorithm: "binary-search", SessionID: "s"}
		assert.ErrorIs(t, req.Validate(), ErrNilData)
	})

	t.Run("negative config values rejected", func(t *testing.T) {
		configs := []ExecutionConfig{
			{MaxSteps: -1},
			{Timeout: -time.Second},
			{StepDelay: -10 * time.Millisecond},
		}
		for _, cfg := range configs {
			req := &ExecutionRequest{
				Algorithm: "binary-search",
				SessionID: "session-1",
				Data:      []float64{1},
				Config:    cfg,
			}
			assert.ErrorIs(t, req.Validate(), ErrInvalidConfig)
		}
	})
}
