// Package llm defines the generation-backend boundary of the pipeline.
//
// The pipeline only ever needs one operation: turn an assembled prompt into
// generated text. Any OpenAI-compatible endpoint can back it (see the openai
// subpackage); when no backend is configured the Simulated implementation
// keeps the whole pipeline runnable offline.
package llm

import "context"

// Sentinel is the fixed output of the simulated backend. Callers can compare
// against it to detect simulated mode; it is a first-class operating mode,
// not an error.
const Sentinel = "[Simulated AI summary]"

// Generator turns a fully assembled prompt into generated text. Generate is a
// blocking I/O operation: implementations must honor ctx cancellation and
// carry their own per-call timeout.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend for logs, e.g. "openai-compatible (gpt-4o)".
	Name() string
}
