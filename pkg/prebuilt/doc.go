// Package prebuilt provides ready-made lesson scenarios for the built-in
// search algorithms: curated data sets with targets and expected outcomes.
// Each scenario can be run directly against a runtime, giving tutorials and
// demos a consistent set of teaching inputs.
package prebuilt
