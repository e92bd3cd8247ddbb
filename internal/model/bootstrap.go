// Package model manages acquisition and readiness of the optional on-device
// language model.
//
// The lifecycle is a small state machine:
//
//	NotFound → Downloading → Downloaded → Loading → Ready
//
// with Failed reachable from Downloading and Loading, and Failed → NotFound
// via Delete. At most one of Downloading or Loading is active process-wide;
// Ready is only reachable through a completed download (or a pre-existing
// artifact) followed by a successful load.
package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adityaksh/sakha/internal/infer"
)

// State is one lifecycle phase of the model artifact.
type State int

const (
	// StateNotFound means no artifact exists at any search path.
	StateNotFound State = iota

	// StateDownloading means a download is streaming to the temp file.
	StateDownloading

	// StateDownloaded means the artifact exists but is not loaded.
	StateDownloaded

	// StateLoading means the inference engine is initialising.
	StateLoading

	// StateReady means the engine is loaded and can generate.
	StateReady

	// StateFailed means the last download or load failed; see Record.Reason.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateNotFound:
		return "not_found"
	case StateDownloading:
		return "downloading"
	case StateDownloaded:
		return "downloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Record is a snapshot of the acquisition lifecycle.
type Record struct {
	State           State
	Reason          string
	DownloadedBytes int64
	TotalBytes      int64
	StartedAt       time.Time
}

// Progress is one download progress event. Events are emitted at a bounded
// rate, not per buffer fill.
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	Percent         int
	BytesPerSec     float64
}

// ErrBusy is returned when an operation is illegal in the current state.
var ErrBusy = errors.New("model: operation not allowed in current state")

// Bootstrap owns the one process-wide model acquisition record.
type Bootstrap struct {
	url         string
	filename    string
	searchPaths []string
	engine      infer.Engine
	genCfg      infer.GenerationConfig
	log         *slog.Logger
	now         func() time.Time

	progressInterval time.Duration
	onProgress       func(Progress)
	onState          func(Record)

	mu     sync.Mutex
	rec    Record
	cancel context.CancelFunc
}

// Option configures a Bootstrap.
type Option func(*Bootstrap)

// WithProgress registers the download progress callback.
func WithProgress(fn func(Progress)) Option {
	return func(b *Bootstrap) { b.onProgress = fn }
}

// WithStateChange registers a callback invoked after every state
// transition with the new record snapshot.
func WithStateChange(fn func(Record)) Option {
	return func(b *Bootstrap) { b.onState = fn }
}

// WithProgressInterval overrides the minimum spacing between progress
// events. Default 500ms. Used by tests.
func WithProgressInterval(d time.Duration) Option {
	return func(b *Bootstrap) { b.progressInterval = d }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(b *Bootstrap) { b.log = log }
}

// WithNow overrides the clock. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(b *Bootstrap) { b.now = now }
}

// WithGenerationConfig overrides the engine tuning used on Load.
func WithGenerationConfig(cfg infer.GenerationConfig) Option {
	return func(b *Bootstrap) { b.genCfg = cfg }
}

// New returns a Bootstrap for the artifact named filename, downloaded from
// url and searched for in searchPaths order. The first search path also
// receives new downloads. The initial state is Downloaded when an artifact
// already exists at any path, NotFound otherwise.
func New(url, filename string, searchPaths []string, engine infer.Engine, opts ...Option) *Bootstrap {
	b := &Bootstrap{
		url:              url,
		filename:         filename,
		searchPaths:      searchPaths,
		engine:           engine,
		genCfg:           infer.DefaultGenerationConfig(),
		log:              slog.Default(),
		now:              time.Now,
		progressInterval: 500 * time.Millisecond,
	}
	for _, o := range opts {
		o(b)
	}

	if _, ok := b.findArtifact(); ok {
		b.rec.State = StateDownloaded
	}
	return b
}

// Record returns a snapshot of the acquisition record.
func (b *Bootstrap) Record() Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rec
}

// Ready reports whether the engine is loaded.
func (b *Bootstrap) Ready() bool {
	return b.Record().State == StateReady
}

// Path returns the first existing artifact path in search order.
func (b *Bootstrap) Path() (string, bool) {
	return b.findArtifact()
}

func (b *Bootstrap) findArtifact() (string, bool) {
	for _, dir := range b.searchPaths {
		p := filepath.Join(dir, b.filename)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// savePath is the final artifact location for new downloads.
func (b *Bootstrap) savePath() string {
	return filepath.Join(b.searchPaths[0], b.filename)
}

// StartDownload streams the artifact to a temp file and renames it into
// place. It is a no-op unless the state is NotFound or Failed; in
// particular a second call while a download is in flight does nothing. The
// call blocks until the download finishes, fails, or ctx is cancelled; run
// it on its own goroutine.
func (b *Bootstrap) StartDownload(ctx context.Context) error {
	b.mu.Lock()
	if b.rec.State != StateNotFound && b.rec.State != StateFailed {
		b.mu.Unlock()
		return nil
	}
	dctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.rec = Record{State: StateDownloading, StartedAt: b.now()}
	b.mu.Unlock()
	b.notifyState()

	err := b.download(dctx)

	b.mu.Lock()
	b.cancel = nil
	if err != nil {
		b.rec.State = StateFailed
		b.rec.Reason = err.Error()
	} else {
		b.rec.State = StateDownloaded
		b.rec.Reason = ""
	}
	b.mu.Unlock()
	b.notifyState()

	if err != nil {
		b.log.Warn("model download failed", "error", err)
		return fmt.Errorf("model: download: %w", err)
	}
	b.log.Info("model download complete", "path", b.savePath())
	return nil
}

// Cancel aborts an in-flight download, if any. Downloads are not cancelled
// by the agent's stop path; this is the explicit, separate operation.
func (b *Bootstrap) Cancel() {
	b.mu.Lock()
	cancel := b.cancel
	b.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Load initialises the inference engine from the downloaded artifact.
// Illegal unless the state is Downloaded.
func (b *Bootstrap) Load(ctx context.Context) error {
	b.mu.Lock()
	if b.rec.State != StateDownloaded {
		st := b.rec.State
		b.mu.Unlock()
		return fmt.Errorf("%w: load from %s", ErrBusy, st)
	}
	b.rec.State = StateLoading
	b.rec.Reason = ""
	b.mu.Unlock()
	b.notifyState()

	path, ok := b.findArtifact()
	if !ok {
		return b.failLoad(errors.New("artifact vanished before load"))
	}

	if err := b.engine.Load(ctx, path, b.genCfg); err != nil {
		// Discard any partially constructed engine handle.
		_ = b.engine.Close()
		return b.failLoad(err)
	}

	b.mu.Lock()
	b.rec.State = StateReady
	b.mu.Unlock()
	b.notifyState()
	b.log.Info("model loaded", "path", path)
	return nil
}

func (b *Bootstrap) failLoad(err error) error {
	b.mu.Lock()
	b.rec.State = StateFailed
	b.rec.Reason = err.Error()
	b.mu.Unlock()
	b.notifyState()
	b.log.Warn("model load failed", "error", err)
	return fmt.Errorf("model: load: %w", err)
}

// Delete removes the artifact and any temp file and resets the record to
// NotFound, enabling a retry. Illegal while downloading or loading.
func (b *Bootstrap) Delete() error {
	b.mu.Lock()
	if b.rec.State == StateDownloading || b.rec.State == StateLoading {
		b.mu.Unlock()
		return fmt.Errorf("%w: delete while %s", ErrBusy, b.rec.State)
	}
	b.rec = Record{State: StateNotFound}
	b.mu.Unlock()

	if p, ok := b.findArtifact(); ok {
		_ = os.Remove(p)
	}
	_ = os.Remove(b.savePath() + tmpSuffix)
	b.notifyState()
	return nil
}

func (b *Bootstrap) notifyState() {
	if b.onState == nil {
		return
	}
	b.onState(b.Record())
}
