// Package synth defines the boundary to the text-to-speech synthesizer.
//
// The synthesizer is a sink: it accepts strings and speaks them in submission
// order. Engines may take time to initialise; [Synthesizer.Ready] exposes the
// readiness signal so callers can buffer until the engine's own ready
// callback fires rather than dropping early utterances.
//
// Implementations must be safe for concurrent use.
package synth

import "context"

// Synthesizer is the abstraction over any TTS backend.
type Synthesizer interface {
	// Speak synthesises and plays text. It blocks until the utterance has
	// been handed to the audio device (not necessarily until playback ends)
	// and returns an error if synthesis fails or ctx is cancelled first.
	// Calls must be serialised by the caller to guarantee playback order.
	Speak(ctx context.Context, text string) error

	// Ready returns a channel that is closed once the engine is initialised
	// and Speak may be called. The same channel is returned on every call.
	Ready() <-chan struct{}

	// Close stops any in-progress utterance and releases the engine.
	// Safe to call multiple times.
	Close() error
}
