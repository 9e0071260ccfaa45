package algoviz

import (
	"context"
	"errors"
	"time"

	memrepo "github.com/algoviz/algoviz/internal/adapters/repository/memory"
	"github.com/algoviz/algoviz/internal/app/dto"
	"github.com/algoviz/algoviz/internal/app/services"
	"github.com/algoviz/algoviz/internal/app/usecases"
	"github.com/algoviz/algoviz/internal/core/algorithm"
	"github.com/algoviz/algoviz/internal/core/player"
	"github.com/algoviz/algoviz/internal/core/step"
	"github.com/algoviz/algoviz/internal/core/stream"
	"github.com/algoviz/algoviz/internal/core/trace"
)

// Re-export core types for convenience
type Step = step.Step
type StepType = step.Type
type Metadata = step.Metadata
type FrameDiff = step.FrameDiff
type AlgorithmInfo = algorithm.Info
type Player = player.Player
type Snapshot = player.Snapshot
type Trace = trace.Trace
type Metrics = trace.Metrics
type ExecutionRequest = dto.ExecutionRequest
type ExecutionResponse = dto.ExecutionResponse
type StreamEvent = stream.Event
type StreamEventKind = stream.EventKind
type StepStream = stream.Buffered

// Stream event kinds and control payloads emitted by RunWithStream.
const (
	StreamKindStep      = stream.KindStep
	StreamKindControl   = stream.KindControl
	StreamControlStart  = stream.ControlStart
	StreamControlEnd    = stream.ControlEnd
	StreamControlCancel = stream.ControlCancel
)

// ErrStreamClosed reports that a step stream is closed and drained.
var ErrStreamClosed = stream.ErrStreamClosed

// Diff re-exports the incremental animation diff of two consecutive steps.
func Diff(prev, next *Step) FrameDiff { return step.Diff(prev, next) }

// Runtime is a simple façade to run algorithms and drive playback without
// importing internal packages directly. The default runtime uses the
// built-in algorithm registry, a shared player, and an in-memory trace
// store, and is suitable for local usage and tests.
type Runtime struct {
	registry *algorithm.Registry
	engine   *usecases.Engine
	traces   *services.TraceService
	player   *player.Player
	store    *memrepo.InMemorySaver
}

// NewRuntime constructs a default runtime with in-memory services.
func NewRuntime() *Runtime {
	registry := algorithm.NewDefaultRegistry()
	store := memrepo.DefaultInMemorySaver()
	traces := services.NewTraceService(store)
	engine := usecases.NewEngine(registry, traces)

	return &Runtime{
		registry: registry,
		engine:   engine,
		traces:   traces,
		player:   player.New(),
		store:    store,
	}
}

// Player returns the shared player driven by RunWithPlayback and Replay.
func (rt *Runtime) Player() *player.Player {
	return rt.player
}

// Register adds a custom algorithm executor to the runtime registry.
func (rt *Runtime) Register(e algorithm.Executor) error {
	return rt.registry.Register(e)
}

// Run executes the named algorithm over data and returns the completed
// response with the full step trace and metrics.
func (rt *Runtime) Run(ctx context.Context, name string, data []float64, target float64) (*dto.ExecutionResponse, error) {
	req := &dto.ExecutionRequest{
		Algorithm: name,
		SessionID: "local",
		Data:      data,
		Target:    &target,
		Config: dto.ExecutionConfig{
			SaveTrace: true,
		},
	}
	return rt.engine.Execute(ctx, req, usecases.ExecuteOptions{})
}

// RunWithPlayback executes the named algorithm, loads the trace into the
// shared player, and plays it through with stepDelay between steps.
func (rt *Runtime) RunWithPlayback(ctx context.Context, name string, data []float64, target float64, stepDelay time.Duration) (*dto.ExecutionResponse, error) {
	req := &dto.ExecutionRequest{
		Algorithm: name,
		SessionID: "local",
		Data:      data,
		Target:    &target,
		Config: dto.ExecutionConfig{
			StepDelay: stepDelay,
			SaveTrace: true,
		},
	}
	resp, err := rt.engine.Execute(ctx, req, usecases.ExecuteOptions{Player: rt.player})
	if err != nil {
		return nil, err
	}
	if err := rt.engine.Playback(ctx, rt.player, resp.Steps, stepDelay); err != nil {
		return nil, err
	}
	return resp, nil
}

// RunWithStream executes the named algorithm and publishes the run to the
// returned step stream: a start control event, every step in order, then a
// terminal end control event. A cancelled or superseded run terminates the
// stream with a cancel control event instead. The stream is closed before
// this method returns; buffered events stay receivable until drained, so a
// renderer can consume at its own pace.
func (rt *Runtime) RunWithStream(ctx context.Context, name string, data []float64, target float64) (*dto.ExecutionResponse, *stream.Buffered, error) {
	events := stream.NewBuffered(0)
	seq := 0
	send := func(ev stream.Event) {
		seq++
		ev.Seq = seq
		_ = events.Send(ctx, ev)
	}

	send(stream.Event{Kind: stream.KindControl, Control: stream.ControlStart})

	req := &dto.ExecutionRequest{
		Algorithm: name,
		SessionID: "local",
		Data:      data,
		Target:    &target,
		Config: dto.ExecutionConfig{
			SaveTrace: true,
		},
	}
	resp, err := rt.engine.Execute(ctx, req, usecases.ExecuteOptions{
		OnStep: func(s *step.Step) {
			send(stream.Event{Kind: stream.KindStep, Step: s})
		},
	})
	if err != nil {
		if errors.Is(err, dto.ErrCancelled) {
			send(stream.Event{Kind: stream.KindControl, Control: stream.ControlCancel})
		}
		_ = events.Close()
		return nil, events, err
	}

	send(stream.Event{Kind: stream.KindControl, Control: stream.ControlEnd})
	_ = events.Close()
	return resp, events, nil
}

// Execute runs a fully specified request with per-call options.
func (rt *Runtime) Execute(ctx context.Context, req *dto.ExecutionRequest, opts usecases.ExecuteOptions) (*dto.ExecutionResponse, error) {
	return rt.engine.Execute(ctx, req, opts)
}

// Cancel aborts the in-flight execution, if any.
func (rt *Runtime) Cancel() {
	rt.engine.Cancel()
}

// Algorithms returns the available algorithm names.
func (rt *Runtime) Algorithms() []string {
	return rt.engine.Algorithms()
}

// Info returns the descriptors of the named algorithm.
func (rt *Runtime) Info(name string) (algorithm.Info, error) {
	return rt.engine.AlgorithmInfo(name)
}

// LoadTrace retrieves a saved trace by execution ID.
func (rt *Runtime) LoadTrace(ctx context.Context, id string) (*trace.Trace, error) {
	return rt.traces.LoadTrace(ctx, id)
}

// Replay loads a saved trace into the shared player and plays it through.
func (rt *Runtime) Replay(ctx context.Context, id string, stepDelay time.Duration) error {
	t, err := rt.traces.LoadTrace(ctx, id)
	if err != nil {
		return err
	}
	rt.player.SetData(t.Data)
	if t.Target != nil {
		rt.player.SetTarget(*t.Target)
	}
	return rt.engine.Playback(ctx, rt.player, t.Steps, stepDelay)
}

// Close releases runtime resources.
func (rt *Runtime) Close() error {
	return rt.store.Close()
}
