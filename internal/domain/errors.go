package domain

import "errors"

// Error categories for the generation pipeline. A run is a one-shot batch
// job: none of these are retried, and all of them abort the run.
var (
	// ErrConfiguration marks invalid run parameters (bad scale factor, row
	// override below a fixed table's size, unknown table). Detected before
	// any generation starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrGeneration marks a failure inside a column primitive, derived-field
	// computation, or table generator (overflow, length mismatch).
	ErrGeneration = errors.New("generation error")

	// ErrDependency marks a stage invoked before its upstream tables were
	// generated. This is a programming error in pipeline wiring, never an
	// expected runtime condition.
	ErrDependency = errors.New("dependency error")
)
