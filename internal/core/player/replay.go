package player

import (
	"context"
	"time"
)

// pollInterval bounds how long a paused or stopped replay takes to notice a
// flag change.
const pollInterval = 25 * time.Millisecond

// Replay walks the loaded history from the start to the end, waiting
// stepDelay/speed between steps and honoring pause. It halts early when the
// running flag is cleared (via Stop or Pause) or the context is cancelled,
// and does not restart itself at completion; the caller re-invokes it for
// another pass.
func (p *Player) Replay(ctx context.Context, stepDelay time.Duration) error {
	p.mu.Lock()
	if len(p.history) == 0 {
		p.mu.Unlock()
		return nil
	}
	p.current = 0
	p.applyPointersLocked(p.history[0])
	p.running = true
	p.paused = false
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)

	for {
		if err := p.waitWhilePaused(ctx); err != nil {
			return err
		}

		p.mu.Lock()
		running := p.running
		atEnd := p.current >= len(p.history)-1
		speed := p.speed
		p.mu.Unlock()

		if !running {
			return nil
		}
		if atEnd {
			p.Stop()
			return nil
		}

		if err := sleepContext(ctx, effectiveDelay(stepDelay, speed)); err != nil {
			p.Stop()
			return err
		}

		// A pause or stop that lands mid-sleep must not advance the trace.
		p.mu.Lock()
		advance := p.running
		p.mu.Unlock()
		if advance {
			p.NextStep()
		}
	}
}

// waitWhilePaused blocks while the player is paused, waking at pollInterval
// to recheck the flag, so a resume is observed within one interval.
func (p *Player) waitWhilePaused(ctx context.Context) error {
	for {
		p.mu.Lock()
		paused := p.paused
		p.mu.Unlock()
		if !paused {
			return nil
		}
		if err := sleepContext(ctx, pollInterval); err != nil {
			p.Stop()
			return err
		}
	}
}

// effectiveDelay scales the base delay by the playback speed: 2x speed
// halves the delay.
func effectiveDelay(base time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		speed = MinSpeed
	}
	return time.Duration(float64(base) / speed)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
