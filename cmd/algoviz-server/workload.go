package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/algoviz/algoviz/pkg/algoviz"
)

type workloadManager struct {
	mu           sync.Mutex
	engCancel    context.CancelFunc
	replayCancel context.CancelFunc
}

var wm workloadManager

func (m *workloadManager) startEngine(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engCancel != nil {
		http.Error(w, "engine workload already running", http.StatusConflict)
		return
	}
	rate := 200 * time.Millisecond
	if v := r.URL.Query().Get("rate_ms"); v != "" {
		if ms, err := time.ParseDuration(v + "ms"); err == nil {
			rate = ms
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.engCancel = cancel
	go func() { runEngineLoop(ctx, rate) }()
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, "engine workload started at %v\n", rate)
}

func (m *workloadManager) stopEngine(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engCancel != nil {
		m.engCancel()
		m.engCancel = nil
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "engine workload stopped\n")
}

func (m *workloadManager) startReplay(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replayCancel != nil {
		http.Error(w, "replay workload already running", http.StatusConflict)
		return
	}
	rate := 50 * time.Millisecond
	if v := r.URL.Query().Get("rate_ms"); v != "" {
		if ms, err := time.ParseDuration(v + "ms"); err == nil {
			rate = ms
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.replayCancel = cancel
	go func() { runReplayLoop(ctx, rate) }()
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, "replay workload started at %v\n", rate)
}

func (m *workloadManager) stopReplay(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replayCancel != nil {
		m.replayCancel()
		m.replayCancel = nil
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "replay workload stopped\n")
}

// runEngineLoop executes randomized searches to keep the execution and
// stream counters moving. Each run is published to a step stream and
// drained, the way a renderer would consume it.
func runEngineLoop(ctx context.Context, hz time.Duration) {
	ticker := time.NewTicker(hz)
	defer ticker.Stop()
	rt := algoviz.NewRuntime()
	defer rt.Close()

	algorithms := rt.Algorithms()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			data := sortedData(16)
			target := data[rand.Intn(len(data))]
			name := algorithms[rand.Intn(len(algorithms))]
			_, events, err := rt.RunWithStream(ctx, name, data, target)
			if err != nil && ctx.Err() == nil {
				log.Printf("engine workload error: %v", err)
			}
			drainStream(ctx, events)
		}
	}
}

// drainStream consumes a closed step stream to completion.
func drainStream(ctx context.Context, events *algoviz.StepStream) {
	if events == nil {
		return
	}
	for {
		if _, err := events.Receive(ctx); err != nil {
			return
		}
	}
}

// runReplayLoop runs one execution and replays its trace repeatedly.
func runReplayLoop(ctx context.Context, hz time.Duration) {
	rt := algoviz.NewRuntime()
	defer rt.Close()

	data := sortedData(16)
	resp, err := rt.Run(ctx, "binary-search", data, data[len(data)/2])
	if err != nil {
		log.Printf("replay workload setup error: %v", err)
		return
	}
	for {
		if ctx.Err() != nil {
			return
		}
		if err := rt.Replay(ctx, resp.ExecutionID, hz); err != nil && ctx.Err() == nil {
			log.Printf("replay workload error: %v", err)
			return
		}
	}
}

func sortedData(n int) []float64 {
	data := make([]float64, n)
	v := 0.0
	for i := range data {
		v += float64(rand.Intn(5) + 1)
		data[i] = v
	}
	return data
}
