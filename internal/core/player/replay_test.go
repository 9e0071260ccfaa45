package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_RunsToEnd(t *testing.T) {
	p := New()
	loadSteps(t, p, 5)
	p.SetCurrentStep(3)

	err := p.Replay(context.Background(), time.Millisecond)
	require.NoError(t, err)

	// Replay restarts from the beginning and walks the full trace.
	assert.Equal(t, 4, p.CurrentStep())
	assert.True(t, p.AtEnd())

	snap := p.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.False(t, snap.IsRunning)
}

func TestReplay_EmptyHistory(t *testing.T) {
	p := New()
	err := p.Replay(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, p.Snapshot().State)
}

func TestReplay_StopHalts(t *testing.T) {
	p := New()
	loadSteps(t, p, 200)

	done := make(chan error, 1)
	go func() {
		done <- p.Replay(context.Background(), 5*time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)
	p.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("replay did not halt after Stop")
	}

	// Halted mid-trace, not at the end.
	assert.Less(t, p.CurrentStep(), 199)
	assert.False(t, p.Snapshot().IsRunning)
}

func TestReplay_PauseAndResume(t *testing.T) {
	p := New()
	loadSteps(t, p, 200)

	done := make(chan error, 1)
	go func() {
		done <- p.Replay(context.Background(), time.Millisecond)
	}()

	time.Sleep(10 * time.Millisecond)
	p.Pause()
	time.Sleep(2 * pollInterval)
	frozen := p.CurrentStep()
	time.Sleep(2 * pollInterval)

	// Position does not advance while paused.
	assert.Equal(t, frozen, p.CurrentStep())
	assert.Equal(t, StatePaused, p.Snapshot().State)

	p.Resume()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("replay did not finish after Resume")
	}
	assert.True(t, p.AtEnd())
}

func TestReplay_ContextCancel(t *testing.T) {
	p := New()
	loadSteps(t, p, 200)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Replay(ctx, 5*time.Millisecond)
	}()

	time.Sleep(15 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("replay did not halt after context cancel")
	}
	assert.False(t, p.Snapshot().IsRunning)
}

func TestEffectiveDelay(t *testing.T) {
	tests := []struct {
		name  string
		base  time.Duration
		speed float64
		want  time.Duration
	}{
		{"normal speed", 100 * time.Millisecond, 1.0, 100 * time.Millisecond},
		{"double speed halves the delay", 100 * time.Millisecond, 2.0, 50 * time.Millisecond},
		{"half speed doubles the delay", 100 * time.Millisecond, 0.5, 200 * time.Millisecond},
		{"zero speed falls back to the minimum", 100 * time.Millisecond, 0, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, effectiveDelay(tt.base, tt.speed))
		})
	}
}

func TestReplay_SpeedChangeMidReplay(t *testing.T) {
	p := New()
	loadSteps(t, p, 20)
	p.SetSpeed(MaxSpeed)

	start := time.Now()
	err := p.Replay(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)

	// 19 advances at 2ms effective delay; well under the unscaled 190ms.
	assert.Less(t, time.Since(start), 150*time.Millisecond)
	assert.True(t, p.AtEnd())
}
