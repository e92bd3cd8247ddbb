// Command sakha is the Sakha voice command agent.
//
// It listens on a raw PCM audio stream (microphone via stdin), recognises
// Hinglish commands offline with whisper.cpp, and dispatches them to device
// actions over adb, an offline knowledge base, or a language model. An HTTP
// surface exposes health probes, Prometheus metrics, and a websocket status
// feed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/adityaksh/sakha/internal/actions"
	"github.com/adityaksh/sakha/internal/agent"
	"github.com/adityaksh/sakha/internal/automation/adb"
	"github.com/adityaksh/sakha/internal/brain"
	"github.com/adityaksh/sakha/internal/config"
	"github.com/adityaksh/sakha/internal/contacts"
	"github.com/adityaksh/sakha/internal/health"
	inferanyllm "github.com/adityaksh/sakha/internal/infer/anyllm"
	"github.com/adityaksh/sakha/internal/intent"
	"github.com/adityaksh/sakha/internal/knowledge"
	"github.com/adityaksh/sakha/internal/model"
	"github.com/adityaksh/sakha/internal/observe"
	"github.com/adityaksh/sakha/internal/sink"
	"github.com/adityaksh/sakha/internal/status"
	"github.com/adityaksh/sakha/pkg/audio"
	"github.com/adityaksh/sakha/pkg/llm"
	llmanyllm "github.com/adityaksh/sakha/pkg/llm/anyllm"
	llmopenai "github.com/adityaksh/sakha/pkg/llm/openai"
	"github.com/adityaksh/sakha/pkg/recognizer"
	"github.com/adityaksh/sakha/pkg/recognizer/whisper"
	"github.com/adityaksh/sakha/pkg/synth/espeak"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	envPath := flag.String("env", "", "path to a dotenv file with credentials (optional)")
	logOverride := flag.String("log", "", "override the configured log level (debug|info|warn|error)")
	downloadModel := flag.Bool("download-model", false, "download the local model at startup if absent")
	adbSerial := flag.String("adb-serial", "", "target a specific adb device")
	audioRate := flag.Int("audio-rate", 16000, "sample rate of the PCM stream on stdin")
	audioChannels := flag.Int("audio-channels", 1, "channel count of the PCM stream on stdin")
	flag.Parse()

	// ── Environment ───────────────────────────────────────────────────────────
	if *envPath != "" {
		if err := godotenv.Load(*envPath); err != nil {
			fmt.Fprintf(os.Stderr, "sakha: load env file %q: %v\n", *envPath, err)
			return 1
		}
	} else {
		// A .env beside the binary is optional.
		_ = godotenv.Load()
	}

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "sakha: config file %q not found\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "sakha: %v\n", err)
		}
		return 1
	}
	if *logOverride != "" {
		cfg.Server.LogLevel = config.LogLevel(*logOverride)
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("sakha starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "sakha",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()
	hub := status.NewHub()

	// ── Speech stack ──────────────────────────────────────────────────────────
	source := audio.NewCaptureSource(os.Stdin, *audioRate, *audioChannels)
	engine, err := whisper.New(cfg.Speech.ModelPath, source,
		whisper.WithLanguage(cfg.Speech.Language))
	if err != nil {
		slog.Error("failed to load recognition model", "err", err, "path", cfg.Speech.ModelPath)
		return 1
	}
	defer engine.Close()

	synthesizer := espeak.New(cfg.Synth.Language, cfg.Synth.Rate)
	defer synthesizer.Close()
	responses := sink.New(synthesizer, sink.WithLogger(logger))

	// ── Cloud brain ───────────────────────────────────────────────────────────
	provider, err := buildCloudProvider(cfg)
	if err != nil {
		slog.Error("failed to build cloud provider", "err", err)
		return 1
	}
	remote := brain.NewRemoteClient(provider,
		brain.WithSampling(cfg.Cloud.Temperature, cfg.Cloud.MaxTokens),
		brain.WithRemoteLogger(logger))
	if remote.Configured() {
		slog.Info("cloud brain configured", "provider", cfg.Cloud.Provider, "model", cfg.Cloud.Model)
	} else {
		slog.Info("cloud brain disabled, no API key configured")
	}

	// ── Local brain ───────────────────────────────────────────────────────────
	boot, local := buildLocalModel(ctx, cfg, hub, metrics, logger, *downloadModel)

	// ── Pipeline ──────────────────────────────────────────────────────────────
	kb := knowledge.New()
	directory := buildDirectory(cfg)
	capability := adb.New(adb.WithSerial(*adbSerial), adb.WithLogger(logger))

	ag := agent.New(agent.Config{
		Engine: engine,
		Listen: recognizer.ListenConfig{
			Language: cfg.Speech.Language,
			Partials: cfg.Speech.Partials,
		},
		Classifier: intent.NewClassifier(kb),
		Actions:    actions.New(capability, directory, actions.WithLogger(logger)),
		KB:         kb,
		Remote:     remote,
		Local:      local,
		Bootstrap:  boot,
		Sink:       responses,
		Hub:        hub,
		Metrics:    metrics,
		Logger:     logger,
	})
	defer ag.Stop()

	// ── HTTP surface ──────────────────────────────────────────────────────────
	checkers := []health.Checker{
		health.SynthReady(synthesizer),
		health.Backends(remote, boot),
	}
	if boot != nil {
		checkers = append(checkers, health.LocalModel(boot))
	}
	healthHandler := health.New(checkers...)

	mux := http.NewServeMux()
	healthHandler.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /events", status.NewFeed(hub, logger))

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           observe.Middleware(metrics)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("agent ready, press Ctrl+C to shut down")

	// ── Run ───────────────────────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ag.Run(gctx) })
	g.Go(func() error {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	slog.Info("shutdown signal received, stopping")
	ag.Stop()
	slog.Info("goodbye")
	return 0
}

// buildCloudProvider constructs the configured chat-completion backend, or
// nil when no API key is available. The key may come from the config file or
// from the environment (GROQ_API_KEY / OPENAI_API_KEY).
func buildCloudProvider(cfg *config.Config) (llm.Provider, error) {
	key := cfg.Cloud.APIKey
	if key == "" {
		switch cfg.Cloud.Provider {
		case config.CloudOpenAI:
			key = os.Getenv("OPENAI_API_KEY")
		default:
			key = os.Getenv("GROQ_API_KEY")
		}
	}
	if key == "" {
		return nil, nil
	}

	switch cfg.Cloud.Provider {
	case config.CloudOpenAI:
		var opts []llmopenai.Option
		if cfg.Cloud.BaseURL != "" {
			opts = append(opts, llmopenai.WithBaseURL(cfg.Cloud.BaseURL))
		}
		return llmopenai.New(key, cfg.Cloud.Model, opts...)
	default:
		opts := []anyllmlib.Option{anyllmlib.WithAPIKey(key)}
		if cfg.Cloud.BaseURL != "" {
			opts = append(opts, anyllmlib.WithBaseURL(cfg.Cloud.BaseURL))
		}
		return llmanyllm.NewGroq(cfg.Cloud.Model, opts...)
	}
}

// buildLocalModel wires the optional on-device model: the bootstrap state
// machine, its status projection, and a startup goroutine that downloads
// and/or loads the artifact. Returns nils when no model URL is configured.
func buildLocalModel(ctx context.Context, cfg *config.Config, hub *status.Hub, metrics *observe.Metrics, logger *slog.Logger, download bool) (*model.Bootstrap, *brain.LocalClient) {
	if cfg.LocalModel.URL == "" {
		return nil, nil
	}

	var iopts []anyllmlib.Option
	if cfg.LocalModel.ServerURL != "" {
		iopts = append(iopts, anyllmlib.WithBaseURL(cfg.LocalModel.ServerURL))
	}
	engine := inferanyllm.New(iopts...)

	var lastBytes int64
	boot := model.New(cfg.LocalModel.URL, cfg.LocalModel.Filename, cfg.LocalModel.SearchPaths, engine,
		model.WithLogger(logger),
		model.WithProgress(func(p model.Progress) {
			if p.DownloadedBytes < lastBytes {
				lastBytes = 0
			}
			metrics.AddDownloadedBytes(ctx, p.DownloadedBytes-lastBytes)
			lastBytes = p.DownloadedBytes
			hub.Publish(status.Event{
				Kind: status.EventDownload,
				Text: fmt.Sprintf("%d%% (%d/%d bytes)", p.Percent, p.DownloadedBytes, p.TotalBytes),
			})
		}),
		model.WithStateChange(func(r model.Record) {
			text := r.State.String()
			if r.Reason != "" {
				text += ": " + r.Reason
			}
			hub.Publish(status.Event{Kind: status.EventModel, Text: text})
		}),
	)

	go func() {
		if download {
			if err := boot.StartDownload(ctx); err != nil {
				logger.Warn("model download not started", "err", err)
			}
		}
		if boot.Record().State == model.StateDownloaded {
			if err := boot.Load(ctx); err != nil {
				logger.Warn("model load failed", "err", err)
			}
		}
	}()

	return boot, brain.NewLocalClient(engine, logger)
}

// buildDirectory converts the configured contact list.
func buildDirectory(cfg *config.Config) *contacts.Directory {
	entries := make([]contacts.Contact, 0, len(cfg.Contacts))
	for _, c := range cfg.Contacts {
		entries = append(entries, contacts.Contact{Name: c.Name, Number: c.Number})
	}
	return contacts.NewDirectory(entries)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	}))
}
