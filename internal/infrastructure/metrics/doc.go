// Package metrics exposes expvar-published counters used by the AlgoViz
// engine, player, and step streams. It intentionally avoids external
// dependencies and is consumed by the optional algoviz-server for
// /debug/vars and /metrics endpoints.
package metrics
