// Package infer defines the boundary to the on-device generation engine.
//
// The engine is loaded from a model artifact on local disk (see
// internal/model for how the artifact gets there) and then answers free-form
// prompts without any network round trip. Loading is expensive and happens
// once; generation is serial per engine.
package infer

import "context"

// GenerationConfig tunes the sampling behaviour of a loaded engine.
type GenerationConfig struct {
	// MaxTokens caps the length of a single generation.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64

	// TopK restricts sampling to the k most likely tokens. Zero disables
	// the restriction.
	TopK int

	// Seed fixes the sampler seed for reproducible output. Zero means the
	// engine picks one.
	Seed int
}

// DefaultGenerationConfig returns the tuning used for the bundled
// instruction model.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxTokens:   512,
		TopK:        40,
		Temperature: 0.8,
		Seed:        42,
	}
}

// Engine is the abstraction over any local generation backend.
//
// Implementations must be safe for concurrent use; concurrent Generate calls
// may be serialised internally.
type Engine interface {
	// Load initialises the engine from the model artifact at path. It
	// blocks until the engine is ready to generate or fails. Calling Load
	// on an already loaded engine returns an error.
	Load(ctx context.Context, path string, cfg GenerationConfig) error

	// Generate produces a completion for prompt. It returns an error if
	// the engine is not loaded, generation fails, or ctx is cancelled.
	Generate(ctx context.Context, prompt string) (string, error)

	// Close releases the engine and its model memory. Safe to call
	// multiple times; Generate after Close returns an error.
	Close() error
}
