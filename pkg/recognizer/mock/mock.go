// Package mock provides test doubles for the recognizer boundary.
//
// Script an [Engine] with one event slice per turn; each Listen call plays the
// next slice and closes the channel. Call records let tests assert how many
// turns ran and how many sessions were created.
package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/adityaksh/sakha/pkg/recognizer"
)

// ErrClosed is returned by Listen after Close.
var ErrClosed = errors.New("mock: session is closed")

// Engine is a mock recognizer.Engine that hands out [Session] values sharing
// a single script. Safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	// Turns is the scripted sequence of listen turns. Each element is the
	// full event sequence of one turn, emitted in order before the channel
	// closes. When the script is exhausted Listen blocks until ctx expires.
	Turns [][]recognizer.Event

	// NewSessionErr, if non-nil, is returned by NewSession.
	NewSessionErr error

	next     int
	sessions int
}

// Compile-time assertion.
var _ recognizer.Engine = (*Engine)(nil)

// NewSession returns a new mock session bound to the shared script.
func (e *Engine) NewSession(_ context.Context) (recognizer.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.NewSessionErr != nil {
		return nil, e.NewSessionErr
	}
	e.sessions++
	return &Session{engine: e}, nil
}

// SessionCount reports how many sessions NewSession has created.
func (e *Engine) SessionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions
}

// nextTurn pops the next scripted turn, or nil when exhausted.
func (e *Engine) nextTurn() []recognizer.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.next >= len(e.Turns) {
		return nil
	}
	t := e.Turns[e.next]
	e.next++
	return t
}

// Session is a mock recognizer.Session. Create via [Engine.NewSession].
type Session struct {
	engine *Engine

	mu      sync.Mutex
	closed  bool
	listens int
}

// Compile-time assertion.
var _ recognizer.Session = (*Session)(nil)

// Listen plays the next scripted turn. When the script is exhausted the
// returned channel stays open until ctx is cancelled, mimicking an engine
// that hears nothing.
func (s *Session) Listen(ctx context.Context, _ recognizer.ListenConfig) (<-chan recognizer.Event, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.listens++
	s.mu.Unlock()

	turn := s.engine.nextTurn()
	ch := make(chan recognizer.Event, len(turn)+1)
	if turn == nil {
		go func() {
			<-ctx.Done()
			close(ch)
		}()
		return ch, nil
	}
	for _, ev := range turn {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

// Close marks the session closed. Subsequent Listen calls fail.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ListenCount reports how many times Listen was called on this session.
func (s *Session) ListenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens
}

// Partial builds a partial-transcript event.
func Partial(text string) recognizer.Event {
	return recognizer.Event{Kind: recognizer.KindPartial, Text: text}
}

// Final builds a final-transcript event.
func Final(text string) recognizer.Event {
	return recognizer.Event{Kind: recognizer.KindFinal, Text: text, Confidence: 1}
}

// Error builds an error event with the given code.
func Error(code recognizer.ErrorCode) recognizer.Event {
	return recognizer.Event{Kind: recognizer.KindError, Code: code}
}
