// Package agent wires the whole command pipeline together.
//
// An [Agent] owns the session controller, the intent classifier, the handler
// tiers, and the response sink. It is the single place where a transcript
// becomes a side effect: the controller hands over final text, the classifier
// picks exactly one handler, and every spoken reply flows through the ordered
// sink. Device actions and knowledge replies run synchronously inside the
// turn; the two network-bound tiers run on tracked goroutines so the listen
// loop is not held hostage by a slow model call.
//
// This package lives under internal/ because it encapsulates
// application-private orchestration logic and is not intended to be imported
// by external code.
package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/adityaksh/sakha/internal/actions"
	"github.com/adityaksh/sakha/internal/brain"
	"github.com/adityaksh/sakha/internal/intent"
	"github.com/adityaksh/sakha/internal/knowledge"
	"github.com/adityaksh/sakha/internal/model"
	"github.com/adityaksh/sakha/internal/observe"
	"github.com/adityaksh/sakha/internal/session"
	"github.com/adityaksh/sakha/internal/sink"
	"github.com/adityaksh/sakha/internal/status"
	"github.com/adityaksh/sakha/pkg/recognizer"
)

// Config carries the collaborators an Agent needs. Engine, Classifier,
// Actions, KB, and Sink are required; the rest may be nil and the matching
// tier degrades to the fallback phrase.
type Config struct {
	// Engine produces recognition sessions for the listen loop.
	Engine recognizer.Engine

	// Listen is the per-turn recognition configuration.
	Listen recognizer.ListenConfig

	// Classifier resolves transcripts to intents.
	Classifier *intent.Classifier

	// Actions executes device-action intents.
	Actions *actions.Table

	// KB supplies the fallback phrases for unrecognised input.
	KB *knowledge.Base

	// Remote is the cloud brain. A client constructed without a provider is
	// allowed and reports unconfigured.
	Remote *brain.RemoteClient

	// Local is the on-device brain. Nil when no local engine is built in.
	Local *brain.LocalClient

	// Bootstrap tracks the local model lifecycle. Nil disables the local
	// tier entirely.
	Bootstrap *model.Bootstrap

	// Sink is the ordered spoken-output queue.
	Sink *sink.Sink

	// Hub receives status events. Nil disables status projection.
	Hub *status.Hub

	// Metrics records pipeline telemetry. Defaults to
	// [observe.DefaultMetrics].
	Metrics *observe.Metrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Agent is the assembled command pipeline. Construct with New, drive with
// Run, tear down with Stop.
type Agent struct {
	cfg        Config
	controller *session.Controller
	log        *slog.Logger
	metrics    *observe.Metrics

	// asyncCtx bounds the network-bound handler goroutines so Stop can cut
	// them loose without waiting on a wedged model call.
	asyncCtx    context.Context
	asyncCancel context.CancelFunc
	asyncWG     sync.WaitGroup

	stopOnce sync.Once
}

// New assembles an Agent from cfg.
func New(cfg Config) *Agent {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observe.DefaultMetrics()
	}

	asyncCtx, asyncCancel := context.WithCancel(context.Background())
	a := &Agent{
		cfg:         cfg,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
		asyncCtx:    asyncCtx,
		asyncCancel: asyncCancel,
	}

	a.controller = session.New(cfg.Engine, cfg.Listen, a.Dispatch,
		session.WithLogger(cfg.Logger),
		session.WithPartialHandler(func(text string) {
			a.publish(status.EventPartial, text)
		}),
		session.WithStateHandler(func(s session.State) {
			a.publish(status.EventState, s.String())
		}),
		session.WithWarningHandler(func(text string) {
			a.speak(text)
		}),
	)
	return a
}

// Run drives the listen loop until ctx is cancelled or Stop is called.
func (a *Agent) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.controller.Run(gctx) })
	return g.Wait()
}

// Stop tears the pipeline down: the listen loop ends, outstanding
// network-bound handlers are cancelled and their late results discarded, and
// the response sink drops whatever it has not yet spoken.
func (a *Agent) Stop() {
	a.stopOnce.Do(func() {
		a.controller.Stop()
		// Stop the sink first so a handler racing the teardown cannot get
		// its answer spoken.
		a.cfg.Sink.Stop()
		a.asyncCancel()
		a.asyncWG.Wait()
	})
}

// Controller exposes the session controller for status reads.
func (a *Agent) Controller() *session.Controller { return a.controller }

// Dispatch classifies text and invokes exactly one handler tier. Device
// actions and knowledge replies complete before Dispatch returns; cloud and
// local model queries return immediately and speak their answer when it
// arrives.
func (a *Agent) Dispatch(ctx context.Context, text string) {
	a.publish(status.EventFinal, text)

	flags := intent.Flags{
		CloudConfigured: a.cfg.Remote != nil && a.cfg.Remote.Configured(),
		LocalModelReady: a.cfg.Bootstrap != nil && a.cfg.Bootstrap.Ready() && a.cfg.Local != nil,
	}

	start := time.Now()
	in := a.cfg.Classifier.Classify(text, flags)
	tier := tierName(in.Kind)
	a.metrics.RecordIntent(ctx, tier)
	a.log.Debug("classified transcript", "tier", tier, "rule", in.Rule, "text", text)

	switch in.Kind {
	case intent.KindDeviceAction:
		res := a.cfg.Actions.Execute(ctx, in)
		if !res.Performed {
			a.log.Warn("device action not performed", "action", string(in.Action))
		}
		a.speak(res.Phrase)
	case intent.KindKnowledge:
		a.speak(in.Reply)
	case intent.KindRemoteQuery:
		a.askAsync("cloud", in.Query, a.cfg.Remote.Ask)
	case intent.KindLocalQuery:
		a.askAsync("local", in.Query, a.cfg.Local.Ask)
	default:
		a.speak(a.cfg.KB.Fallback())
	}
	a.metrics.DispatchDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(observe.Attr("tier", tier)))
}

// askAsync runs one model call on a tracked goroutine. The answer is spoken
// when it arrives; if Stop happened in the meantime the sink discards it.
func (a *Agent) askAsync(backend, query string, ask func(ctx context.Context, text string) brain.Answer) {
	a.asyncWG.Add(1)
	go func() {
		defer a.asyncWG.Done()
		start := time.Now()
		ans := ask(a.asyncCtx, query)
		elapsed := time.Since(start).Seconds()
		if backend == "cloud" {
			a.metrics.CloudDuration.Record(a.asyncCtx, elapsed)
		} else {
			a.metrics.LocalDuration.Record(a.asyncCtx, elapsed)
		}
		if ans.IsError {
			a.metrics.RecordBrainError(a.asyncCtx, backend)
			a.log.Warn("model call failed", "backend", backend)
		}
		a.speak(ans.Text)
	}()
}

// speak queues text on the sink and mirrors it to the status hub.
func (a *Agent) speak(text string) {
	if text == "" {
		return
	}
	a.cfg.Sink.Enqueue(text)
	a.publish(status.EventReply, text)
}

func (a *Agent) publish(kind status.EventKind, text string) {
	if a.cfg.Hub == nil {
		return
	}
	a.cfg.Hub.Publish(status.Event{Kind: kind, Text: text})
}

func tierName(k intent.Kind) string {
	switch k {
	case intent.KindDeviceAction:
		return "device"
	case intent.KindKnowledge:
		return "knowledge"
	case intent.KindRemoteQuery:
		return "cloud"
	case intent.KindLocalQuery:
		return "local"
	default:
		return "unrecognized"
	}
}
