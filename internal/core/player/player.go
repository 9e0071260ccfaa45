// Package player provides the step-sequencing state machine: it tracks the
// current position within a step history and drives play, pause, seek, and
// replay semantics for the visualization layer.
package player

import (
	"sync"

	"github.com/algoviz/algoviz/internal/core/step"
)

// Speed bounds. Every write to the playback speed is clamped into this
// range, never silently accepted out of it.
const (
	MinSpeed = 0.1
	MaxSpeed = 5.0
)

// State is the playback state of the player.
type State string

const (
	// StateIdle means no steps are loaded.
	StateIdle State = "idle"
	// StateReady means steps are loaded but playback is not running.
	StateReady State = "ready"
	// StatePlaying means playback is advancing.
	StatePlaying State = "playing"
	// StatePaused means playback is suspended mid-trace.
	StatePaused State = "paused"
)

// Pointers holds the algorithm pointers derived from step metadata. A nil
// field means that pointer has not been set by any step so far.
type Pointers struct {
	Left  *int `json:"left,omitempty"`
	Right *int `json:"right,omitempty"`
	Mid   *int `json:"mid,omitempty"`
}

// Snapshot is a consistent copy of the observable player state.
type Snapshot struct {
	State       State    `json:"state"`
	CurrentStep int      `json:"currentStep"`
	TotalSteps  int      `json:"totalSteps"`
	IsRunning   bool     `json:"isRunning"`
	IsPaused    bool     `json:"isPaused"`
	Speed       float64  `json:"speed"`
	Pointers    Pointers `json:"pointers"`
	Target      *float64 `json:"target,omitempty"`
}

// StepFunc receives each step as it is appended to the history.
type StepFunc func(*step.Step)

// StateFunc receives a snapshot after every observable state change.
type StateFunc func(Snapshot)

type stepObserver struct {
	id int
	fn StepFunc
}

type stateObserver struct {
	id int
	fn StateFunc
}

// Player is the step-sequencing state machine. All state lives behind a
// single mutex; observer callbacks are dispatched outside the lock so a
// callback may call back into the player without deadlocking.
type Player struct {
	mu sync.Mutex

	data    []float64
	target  *float64
	history []*step.Step
	current int

	running bool
	paused  bool
	speed   float64

	pointers Pointers

	stepObs  []stepObserver
	stateObs []stateObserver
	nextObID int
}

// New creates an idle player with normal speed.
func New() *Player {
	return &Player{speed: 1.0}
}

// SetData loads a new input array, clearing history, position, and pointers.
func (p *Player) SetData(data []float64) {
	p.mu.Lock()
	p.data = append([]float64(nil), data...)
	p.history = nil
	p.current = 0
	p.pointers = Pointers{}
	p.running = false
	p.paused = false
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// Data returns a copy of the loaded input array.
func (p *Player) Data() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]float64(nil), p.data...)
}

// SetTarget records the search target shown alongside the trace.
func (p *Player) SetTarget(target float64) {
	p.mu.Lock()
	t := target
	p.target = &t
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// AddStep appends a step to the history. The first step moves the player
// from idle to ready. Step observers fire in registration order.
func (p *Player) AddStep(s *step.Step) error {
	if s == nil {
		return step.ErrNilStep
	}
	if err := s.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	p.history = append(p.history, s)
	stepObs := append([]stepObserver(nil), p.stepObs...)
	snap, stateObs := p.snapshotLocked()
	p.mu.Unlock()

	for _, o := range stepObs {
		o.fn(s)
	}
	dispatchState(snap, stateObs)
	return nil
}

// History returns the step history. The returned slice is a copy; the steps
// themselves are shared and must be treated as immutable.
func (p *Player) History() []*step.Step {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*step.Step(nil), p.history...)
}

// Play starts playback. No-op when no steps are loaded.
func (p *Player) Play() {
	p.mu.Lock()
	if len(p.history) == 0 {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.paused = false
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// Pause suspends playback. Running and paused are mutually exclusive.
func (p *Player) Pause() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.paused = true
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// Resume continues playback after a pause. No-op unless paused.
func (p *Player) Resume() {
	p.mu.Lock()
	if !p.paused {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.paused = false
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// Stop clears the running flag without entering the paused state. Replay
// loops observe this and halt within one poll interval.
func (p *Player) Stop() {
	p.mu.Lock()
	p.running = false
	p.paused = false
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// Reset clears the history, position, and pointers, and stops playback. The
// loaded data array is kept.
func (p *Player) Reset() {
	p.mu.Lock()
	p.history = nil
	p.current = 0
	p.pointers = Pointers{}
	p.running = false
	p.paused = false
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// NextStep advances one step. No-op at the end of the history.
func (p *Player) NextStep() {
	p.mu.Lock()
	if len(p.history) == 0 || p.current >= len(p.history)-1 {
		p.mu.Unlock()
		return
	}
	p.current++
	p.applyPointersLocked(p.history[p.current])
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// PreviousStep moves back one step. No-op at the start.
func (p *Player) PreviousStep() {
	p.mu.Lock()
	if p.current == 0 {
		p.mu.Unlock()
		return
	}
	p.current--
	p.applyPointersLocked(p.history[p.current])
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// SetCurrentStep seeks to position i, clamped into [0, totalSteps-1].
func (p *Player) SetCurrentStep(i int) {
	p.mu.Lock()
	if len(p.history) == 0 {
		p.current = 0
		p.mu.Unlock()
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(p.history)-1 {
		i = len(p.history) - 1
	}
	p.current = i
	p.applyPointersLocked(p.history[p.current])
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// SetSpeed sets the playback speed multiplier, clamped into [0.1, 5].
func (p *Player) SetSpeed(speed float64) {
	p.mu.Lock()
	p.speed = clampSpeed(speed)
	snap, obs := p.snapshotLocked()
	p.mu.Unlock()
	dispatchState(snap, obs)
}

// Speed returns the current playback speed multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// CurrentStep returns the current position in the history.
func (p *Player) CurrentStep() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// TotalSteps returns the length of the loaded history.
func (p *Player) TotalSteps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.history)
}

// CurrentStepData returns the step at the current position, or nil when the
// history is empty.
func (p *Player) CurrentStepData() *step.Step {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.history) == 0 {
		return nil
	}
	return p.history[p.current]
}

// Progress reports playback completion in [0, 1]: (currentStep+1)/totalSteps,
// or 0 for an empty history.
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.history) == 0 {
		return 0
	}
	return float64(p.current+1) / float64(len(p.history))
}

// AtStart reports whether the player is at the first step.
func (p *Player) AtStart() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current == 0
}

// AtEnd reports whether the player is at or past the last step.
func (p *Player) AtEnd() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current >= len(p.history)-1
}

// Snapshot returns a consistent copy of the observable state.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap, _ := p.snapshotLocked()
	return snap
}

// OnStep registers a callback fired for every appended step, in registration
// order. The returned function unsubscribes it.
func (p *Player) OnStep(fn StepFunc) func() {
	p.mu.Lock()
	id := p.nextObID
	p.nextObID++
	p.stepObs = append(p.stepObs, stepObserver{id: id, fn: fn})
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, o := range p.stepObs {
			if o.id == id {
				p.stepObs = append(p.stepObs[:i], p.stepObs[i+1:]...)
				return
			}
		}
	}
}

// OnStateChange registers a callback fired after every state change, in
// registration order. The returned function unsubscribes it.
func (p *Player) OnStateChange(fn StateFunc) func() {
	p.mu.Lock()
	id := p.nextObID
	p.nextObID++
	p.stateObs = append(p.stateObs, stateObserver{id: id, fn: fn})
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, o := range p.stateObs {
			if o.id == id {
				p.stateObs = append(p.stateObs[:i], p.stateObs[i+1:]...)
				return
			}
		}
	}
}

// applyPointersLocked rederives pointers from a step's metadata. Keys present
// in the metadata overwrite the pointer; absent keys keep the prior value.
func (p *Player) applyPointersLocked(s *step.Step) {
	if s == nil {
		return
	}
	if v, ok := s.Metadata.Int(step.MetaLeft); ok {
		p.pointers.Left = &v
	}
	if v, ok := s.Metadata.Int(step.MetaRight); ok {
		p.pointers.Right = &v
	}
	if v, ok := s.Metadata.Int(step.MetaMid); ok {
		p.pointers.Mid = &v
	}
}

func (p *Player) stateLocked() State {
	switch {
	case p.running:
		return StatePlaying
	case p.paused:
		return StatePaused
	case len(p.history) == 0:
		return StateIdle
	default:
		return StateReady
	}
}

func (p *Player) snapshotLocked() (Snapshot, []stateObserver) {
	snap := Snapshot{
		State:       p.stateLocked(),
		CurrentStep: p.current,
		TotalSteps:  len(p.history),
		IsRunning:   p.running,
		IsPaused:    p.paused,
		Speed:       p.speed,
		Pointers:    p.pointers,
		Target:      p.target,
	}
	return snap, append([]stateObserver(nil), p.stateObs...)
}

func dispatchState(snap Snapshot, obs []stateObserver) {
	for _, o := range obs {
		o.fn(snap)
	}
}

func clampSpeed(speed float64) float64 {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}
