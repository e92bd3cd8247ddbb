// Package session drives the continuous listen loop.
//
// The controller owns one recognition session at a time and runs a perpetual
// listen, await, dispatch, reschedule cycle. Recognition errors never
// terminate the loop: each error code maps to a fixed delay before the next
// listen request, and an engine-fatal error additionally destroys the
// session and builds a fresh one. The loop ends only when its context is
// cancelled or Stop is called.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adityaksh/sakha/internal/observe"
	"github.com/adityaksh/sakha/pkg/recognizer"
)

// State is the controller's position in the listen cycle.
type State int

const (
	// StateIdle means no listen request is in flight.
	StateIdle State = iota

	// StateListening means a listen request was issued and the engine is
	// waiting for speech.
	StateListening

	// StateCapturing means the engine has detected speech.
	StateCapturing

	// StateProcessing means a final transcript arrived and its intent is
	// being dispatched.
	StateProcessing

	// StateBackingOff means a recognition error mapped to a delay that has
	// not elapsed yet.
	StateBackingOff

	// StateResettingEngine means the session was destroyed after an
	// engine-fatal error and a replacement is being constructed.
	StateResettingEngine
)

// String returns the logging name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateCapturing:
		return "capturing"
	case StateProcessing:
		return "processing"
	case StateBackingOff:
		return "backing-off"
	case StateResettingEngine:
		return "resetting-engine"
	default:
		return "unknown"
	}
}

// permissionWarning is spoken when audio capture is not permitted; the loop
// keeps retrying regardless.
const permissionWarning = "Boss, microphone ki permission nahi mili. Settings me jaake allow karo!"

// Timings are the fixed delays of the listen cycle. Delays are deterministic
// per error code, not exponential; the engine rate-limits itself and the
// controller only has to avoid a tight error loop.
type Timings struct {
	// Backoff maps each recognition error code to the delay before the
	// next listen request.
	Backoff map[recognizer.ErrorCode]time.Duration

	// Settle is how long the controller waits between destroying a fatal
	// session and constructing its replacement.
	Settle time.Duration

	// AfterReset is the delay between a finished reset and the next listen
	// request.
	AfterReset time.Duration

	// AfterSuccess is the pause after a dispatched transcript, so the
	// spoken confirmation is queued before the microphone reopens.
	AfterSuccess time.Duration
}

// DefaultTimings returns the production delay table.
func DefaultTimings() Timings {
	return Timings{
		Backoff: map[recognizer.ErrorCode]time.Duration{
			recognizer.CodeNoMatch:        500 * time.Millisecond,
			recognizer.CodeTimeout:        300 * time.Millisecond,
			recognizer.CodeBusy:           2 * time.Second,
			recognizer.CodeNetwork:        3 * time.Second,
			recognizer.CodeNetworkTimeout: 3 * time.Second,
			recognizer.CodeServer:         3 * time.Second,
			recognizer.CodePermission:     5 * time.Second,
			recognizer.CodeEngineFatal:    800 * time.Millisecond,
			recognizer.CodeOther:          1 * time.Second,
		},
		Settle:       1500 * time.Millisecond,
		AfterReset:   800 * time.Millisecond,
		AfterSuccess: 800 * time.Millisecond,
	}
}

// Controller runs the listen loop. Construct with New, drive with Run, and
// end with Stop or context cancellation.
type Controller struct {
	engine   recognizer.Engine
	cfg      recognizer.ListenConfig
	dispatch func(ctx context.Context, text string)

	onPartial func(text string)
	onState   func(s State)
	onWarning func(text string)
	timings   Timings
	log       *slog.Logger
	metrics   *observe.Metrics

	stopOnce sync.Once
	stopped  chan struct{}

	mu      sync.Mutex
	state   State
	lastErr recognizer.ErrorCode
	retries int
}

// Option configures a Controller.
type Option func(*Controller)

// WithPartialHandler forwards interim transcripts. Partials are advisory and
// are never dispatched.
func WithPartialHandler(fn func(text string)) Option {
	return func(c *Controller) { c.onPartial = fn }
}

// WithStateHandler observes every state transition.
func WithStateHandler(fn func(s State)) Option {
	return func(c *Controller) { c.onState = fn }
}

// WithWarningHandler receives user-visible warnings, such as a missing
// microphone permission.
func WithWarningHandler(fn func(text string)) Option {
	return func(c *Controller) { c.onWarning = fn }
}

// WithTimings replaces the delay table. Zero-value delays are allowed and
// mean no wait, which keeps tests fast.
func WithTimings(t Timings) Option {
	return func(c *Controller) { c.timings = t }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New returns a Controller listening through engine with cfg and handing
// every final transcript to dispatch.
func New(engine recognizer.Engine, cfg recognizer.ListenConfig, dispatch func(ctx context.Context, text string), opts ...Option) *Controller {
	c := &Controller{
		engine:   engine,
		cfg:      cfg,
		dispatch: dispatch,
		timings:  DefaultTimings(),
		log:      slog.Default(),
		metrics:  observe.DefaultMetrics(),
		stopped:  make(chan struct{}),
		state:    StateIdle,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State reports the current loop state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError reports the most recent recognition error code.
func (c *Controller) LastError() recognizer.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Retries reports how many consecutive error turns have run since the last
// successful dispatch.
func (c *Controller) Retries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retries
}

// Stop ends the loop. Engine events that arrive afterwards are discarded and
// cause no dispatch or spoken output. Safe to call multiple times.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.stopped) })
}

// Run executes the listen loop until ctx is cancelled or Stop is called. It
// returns nil on a clean stop; the only error it can return is a failure to
// construct the very first recognition session.
func (c *Controller) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.stopped:
			cancel()
		case <-ctx.Done():
		}
	}()

	sess, err := c.engine.NewSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		sess.Close()
		c.setState(StateIdle)
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		c.setState(StateListening)
		turnStart := time.Now()
		events, err := sess.Listen(ctx, c.cfg)
		if err != nil {
			c.log.Warn("listen request failed, recreating session", "error", err)
			replacement, ok := c.reset(ctx, sess)
			if !ok {
				return nil
			}
			sess = replacement
			continue
		}

		text, code, ok := c.consume(ctx, events)
		if !ok {
			return nil
		}

		if code == nil {
			c.setState(StateProcessing)
			c.mu.Lock()
			c.retries = 0
			c.mu.Unlock()
			c.metrics.RecordTurn(ctx, "final", time.Since(turnStart).Seconds())
			c.dispatch(ctx, text)
			c.setState(StateIdle)
			if !c.sleep(ctx, c.timings.AfterSuccess) {
				return nil
			}
			continue
		}

		c.mu.Lock()
		c.lastErr = *code
		c.retries++
		retries := c.retries
		c.mu.Unlock()
		c.metrics.RecordTurn(ctx, "error", time.Since(turnStart).Seconds())
		c.metrics.RecordRecognitionError(ctx, code.String())
		c.log.Debug("recognition error", "code", code.String(), "consecutive", retries)

		if *code == recognizer.CodeEngineFatal {
			replacement, ok := c.reset(ctx, sess)
			if !ok {
				return nil
			}
			sess = replacement
			if !c.sleep(ctx, c.timings.AfterReset) {
				return nil
			}
			continue
		}

		if *code == recognizer.CodePermission && c.onWarning != nil {
			c.onWarning(permissionWarning)
		}

		c.setState(StateBackingOff)
		if !c.sleep(ctx, c.timings.Backoff[*code]) {
			return nil
		}
		c.setState(StateIdle)
	}
}

// consume drains one turn's event channel. It returns the final transcript,
// or a non-nil error code, or ok=false when the loop should end.
func (c *Controller) consume(ctx context.Context, events <-chan recognizer.Event) (string, *recognizer.ErrorCode, bool) {
	for {
		select {
		case <-ctx.Done():
			return "", nil, false
		case ev, open := <-events:
			if !open {
				// Channel closed without a terminal event; the engine
				// gave up on the turn. Treat like a timeout.
				code := recognizer.CodeTimeout
				return "", &code, true
			}
			switch ev.Kind {
			case recognizer.KindPartial:
				c.setState(StateCapturing)
				if c.onPartial != nil {
					c.onPartial(ev.Text)
				}
			case recognizer.KindFinal:
				return ev.Text, nil, true
			case recognizer.KindError:
				code := ev.Code
				return "", &code, true
			}
		}
	}
}

// reset destroys sess, waits the settle delay, and constructs a replacement.
// It keeps retrying construction until it succeeds or the loop ends.
func (c *Controller) reset(ctx context.Context, sess recognizer.Session) (recognizer.Session, bool) {
	c.setState(StateResettingEngine)
	sess.Close()
	for {
		if !c.sleep(ctx, c.timings.Settle) {
			return nil, false
		}
		replacement, err := c.engine.NewSession(ctx)
		if err == nil {
			c.setState(StateIdle)
			return replacement, true
		}
		c.log.Warn("session recreation failed, retrying", "error", err)
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	c.mu.Unlock()
	if changed && c.onState != nil {
		c.onState(s)
	}
}

// sleep waits d, returning false if the loop ended first.
func (c *Controller) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
