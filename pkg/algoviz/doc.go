// Package algoviz provides a minimal public façade for running algorithms
// and driving step playback without importing internal packages. It
// re-exports the core step and player types for convenience and exposes a
// Runtime with simple methods to run, replay, and inspect executions.
package algoviz
