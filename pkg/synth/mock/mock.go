// Package mock provides a test double for the synth.Synthesizer interface.
//
// The zero value is not usable; create instances with [New]. By default the
// synthesizer starts ready; use [NewNotReady] plus [Synthesizer.SetReady] to
// exercise buffering behaviour in callers.
package mock

import (
	"context"
	"sync"

	"github.com/adityaksh/sakha/pkg/synth"
)

// Synthesizer is a mock synth.Synthesizer that records spoken text.
type Synthesizer struct {
	mu     sync.Mutex
	spoken []string
	ready  chan struct{}
	once   sync.Once

	// SpeakErr, if non-nil, is returned by every Speak call.
	SpeakErr error
}

// Compile-time assertion.
var _ synth.Synthesizer = (*Synthesizer)(nil)

// New returns a mock synthesizer that is ready immediately.
func New() *Synthesizer {
	s := NewNotReady()
	s.SetReady()
	return s
}

// NewNotReady returns a mock synthesizer whose Ready channel stays open
// until SetReady is called.
func NewNotReady() *Synthesizer {
	return &Synthesizer{ready: make(chan struct{})}
}

// SetReady closes the Ready channel. Safe to call multiple times.
func (s *Synthesizer) SetReady() {
	s.once.Do(func() { close(s.ready) })
}

// Speak records text, or returns SpeakErr if set.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SpeakErr != nil {
		return s.SpeakErr
	}
	s.spoken = append(s.spoken, text)
	return nil
}

// Ready implements synth.Synthesizer.
func (s *Synthesizer) Ready() <-chan struct{} { return s.ready }

// Close implements synth.Synthesizer.
func (s *Synthesizer) Close() error { return nil }

// Spoken returns a copy of everything spoken so far, in order.
func (s *Synthesizer) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.spoken))
	copy(out, s.spoken)
	return out
}
