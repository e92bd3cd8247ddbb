// Package recognizer defines the boundary to the external speech recognition
// engine.
//
// The engine is treated as a black box: a [Session] accepts one listen request
// at a time and reports back a stream of [Event] values: zero or more partial
// transcripts, then exactly one final transcript or one typed error. Engines
// that become unusable are signalled with [CodeEngineFatal]; the caller is
// expected to discard the session and create a fresh one via [Engine].
//
// Implementations must be safe for concurrent use.
package recognizer

import (
	"context"
	"time"
)

// ErrorCode classifies a recognition failure. The set is closed: engines must
// map their native error values onto one of these codes (unknown values map to
// [CodeOther]).
type ErrorCode int

const (
	// CodeNoMatch means audio was captured but no transcript could be produced.
	CodeNoMatch ErrorCode = iota

	// CodeTimeout means no speech was detected before the engine gave up.
	CodeTimeout

	// CodeBusy means the engine rejected the listen request because a prior
	// one is still in flight.
	CodeBusy

	// CodeNetwork means the engine could not reach its backing service.
	CodeNetwork

	// CodeNetworkTimeout means the backing service was reached but too slow.
	CodeNetworkTimeout

	// CodePermission means audio capture is not permitted.
	CodePermission

	// CodeServer means the backing service returned an error.
	CodeServer

	// CodeEngineFatal means the session object itself is unusable and must be
	// destroyed and recreated before listening can resume.
	CodeEngineFatal

	// CodeOther covers engine-specific errors with no better mapping.
	CodeOther
)

// String returns the wire/logging name of the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeNoMatch:
		return "no-match"
	case CodeTimeout:
		return "timeout"
	case CodeBusy:
		return "busy"
	case CodeNetwork:
		return "network"
	case CodeNetworkTimeout:
		return "network-timeout"
	case CodePermission:
		return "insufficient-permission"
	case CodeServer:
		return "server"
	case CodeEngineFatal:
		return "engine-fatal"
	default:
		return "other"
	}
}

// EventKind discriminates the values emitted during a listen turn.
type EventKind int

const (
	// KindPartial is an interim transcript. Advisory only: partials drive
	// status display and are never dispatched.
	KindPartial EventKind = iota

	// KindFinal is the authoritative transcript that ends the turn.
	KindFinal

	// KindError ends the turn with a typed failure.
	KindError
)

// Event is a single recognition outcome. A turn consists of zero or more
// KindPartial events followed by exactly one KindFinal or KindError event,
// after which the event channel is closed.
type Event struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind EventKind

	// Text is the transcript for KindPartial and KindFinal events.
	Text string

	// Confidence is the engine's confidence in Text (0.0–1.0). May be zero
	// for engines that do not report confidence.
	Confidence float64

	// Code is the failure class for KindError events.
	Code ErrorCode

	// Timestamp marks when the engine produced this event.
	Timestamp time.Time
}

// ListenConfig carries per-turn recognition hints. Engines apply what they
// support and ignore the rest.
type ListenConfig struct {
	// Language is the BCP-47 language tag for recognition (e.g., "hi-IN").
	// Empty lets the engine auto-detect, if supported.
	Language string

	// CompleteSilence is how long the engine waits after speech stops before
	// committing a final transcript.
	CompleteSilence time.Duration

	// PossiblySilence is the shorter pause after which the engine may start
	// treating the utterance as possibly complete.
	PossiblySilence time.Duration

	// MinSpeechLength is the minimum utterance duration the engine should
	// accept before reporting a result.
	MinSpeechLength time.Duration

	// Partials requests interim transcripts when true.
	Partials bool
}

// Session is one live connection to the recognition engine.
//
// Listen starts one recognition turn and returns a channel that emits the
// turn's events. The channel is closed after the terminal event (final or
// error) or when ctx is cancelled. A second Listen call while a turn is in
// flight returns an error; callers serialise turns.
type Session interface {
	Listen(ctx context.Context, cfg ListenConfig) (<-chan Event, error)

	// Close releases the session. After Close, Listen returns an error.
	// Close is safe to call multiple times.
	Close() error
}

// Engine constructs recognition sessions. Controllers hold an Engine so a
// session flagged [CodeEngineFatal] can be destroyed and replaced without
// tearing the controller down.
type Engine interface {
	NewSession(ctx context.Context) (Session, error)
}
