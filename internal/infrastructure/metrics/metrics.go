package metrics

import (
	"expvar"
)

// Execution metrics (counters) using expvar maps keyed by algorithm name.
var (
	executionsTotal  = expvar.NewMap("algoviz_executions_total")
	stepsTotal       = expvar.NewMap("algoviz_steps_total")
	comparisonsTotal = expvar.NewMap("algoviz_comparisons_total")
)

// Engine / trace metrics.
var (
	cancellationsTotal = new(expvar.Int)
	tracesSavedTotal   = new(expvar.Int)
	replaysTotal       = new(expvar.Int)
)

// Stream metrics keyed by implementation kind.
var (
	streamSent     = expvar.NewMap("algoviz_stream_sent_total")
	streamReceived = expvar.NewMap("algoviz_stream_received_total")
	streamEvicted  = expvar.NewMap("algoviz_stream_evicted_total")
)

func init() {
	expvar.Publish("algoviz_cancellations_total", cancellationsTotal)
	expvar.Publish("algoviz_traces_saved_total", tracesSavedTotal)
	expvar.Publish("algoviz_replays_total", replaysTotal)
}

// Execution helpers
func IncExecutions(algorithm string)           { executionsTotal.Add(algorithm, 1) }
func AddSteps(algorithm string, n int64)       { stepsTotal.Add(algorithm, n) }
func AddComparisons(algorithm string, n int64) { comparisonsTotal.Add(algorithm, n) }
func IncCancellations()                        { cancellationsTotal.Add(1) }
func IncTracesSaved()                          { tracesSavedTotal.Add(1) }
func IncReplays()                              { replaysTotal.Add(1) }

// Stream helpers
func StreamSent(kind string, n int64)     { streamSent.Add(kind, n) }
func StreamReceived(kind string, n int64) { streamReceived.Add(kind, n) }
func StreamEvicted(kind string, n int64)  { streamEvicted.Add(kind, n) }
