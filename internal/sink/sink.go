// Package sink serialises all spoken output through one ordered queue.
//
// Every handler tier pushes phrases here instead of talking to the
// synthesizer directly, so replies are spoken strictly in submission order
// no matter which goroutine produced them. Phrases enqueued before the
// synthesizer reports ready are buffered, not dropped.
package sink

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adityaksh/sakha/pkg/synth"
)

// queueDepth bounds buffered phrases. The agent produces at most a couple
// of phrases per turn; hitting the bound means the synthesizer is wedged
// and dropping is the lesser evil.
const queueDepth = 64

// Sink is the ordered spoken-output queue. Safe for concurrent use.
type Sink struct {
	synth synth.Synthesizer
	log   *slog.Logger

	queue  chan string
	ctx    context.Context
	cancel context.CancelFunc

	stopOnce sync.Once
	done     chan struct{}
}

// Option configures a Sink.
type Option func(*Sink)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Sink) { s.log = log }
}

// New returns a running Sink speaking through sy. The consumer goroutine
// waits for sy to report ready before the first utterance.
func New(sy synth.Synthesizer, opts ...Option) *Sink {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sink{
		synth:  sy,
		log:    slog.Default(),
		queue:  make(chan string, queueDepth),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	go s.run()
	return s
}

// Enqueue queues text for speaking. It never blocks: after Stop it is a
// no-op, and if the queue is full the phrase is dropped with a warning.
func (s *Sink) Enqueue(text string) {
	if text == "" {
		return
	}
	select {
	case <-s.ctx.Done():
		return
	default:
	}
	select {
	case s.queue <- text:
	default:
		s.log.Warn("response queue full, dropping phrase", "text", text)
	}
}

// Stop discards all queued phrases, interrupts the current utterance, and
// shuts the consumer down. Safe to call multiple times. Enqueue after Stop
// is a no-op.
func (s *Sink) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *Sink) run() {
	defer close(s.done)

	// Buffer until the engine's own ready callback fires.
	select {
	case <-s.synth.Ready():
	case <-s.ctx.Done():
		return
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case text := <-s.queue:
			if err := s.synth.Speak(s.ctx, text); err != nil {
				s.log.Warn("speak failed", "error", err, "text", text)
			}
		}
	}
}
