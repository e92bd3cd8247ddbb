// Package observe provides application-wide observability primitives for
// Sakha: OpenTelemetry metrics, distributed tracing, structured logging, and
// HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Sakha metrics.
const meterName = "github.com/adityaksh/sakha"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use; the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// TurnDuration tracks one full listen turn, from the listen request to
	// the terminal recognition event.
	TurnDuration metric.Float64Histogram

	// DispatchDuration tracks intent classification plus handler execution.
	// Use with attribute.String("tier", ...).
	DispatchDuration metric.Float64Histogram

	// CloudDuration tracks remote inference latency.
	CloudDuration metric.Float64Histogram

	// LocalDuration tracks on-device model generation latency.
	LocalDuration metric.Float64Histogram

	// --- Counters ---

	// Turns counts completed listen turns. Use with attribute:
	//   attribute.String("outcome", "final"|<error code name>)
	Turns metric.Int64Counter

	// Intents counts classified intents by handler tier. Use with attribute:
	//   attribute.String("tier", ...)
	Intents metric.Int64Counter

	// RecognitionErrors counts recognition failures by error code.
	RecognitionErrors metric.Int64Counter

	// BrainErrors counts failed language-model calls. Use with attribute:
	//   attribute.String("backend", "cloud"|"local")
	BrainErrors metric.Int64Counter

	// DownloadedBytes accumulates model artifact bytes fetched.
	DownloadedBytes metric.Int64Counter

	// --- Gauges ---

	// FeedClients tracks the number of connected status feed clients.
	FeedClients metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// a speech turn: sub-second device actions up to multi-second model calls.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.TurnDuration, err = m.Float64Histogram("sakha.turn.duration",
		metric.WithDescription("Duration of one listen turn."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DispatchDuration, err = m.Float64Histogram("sakha.dispatch.duration",
		metric.WithDescription("Intent classification and handler latency by tier."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CloudDuration, err = m.Float64Histogram("sakha.cloud.duration",
		metric.WithDescription("Remote inference latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LocalDuration, err = m.Float64Histogram("sakha.local.duration",
		metric.WithDescription("Local model generation latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Turns, err = m.Int64Counter("sakha.turns",
		metric.WithDescription("Completed listen turns by outcome."),
	); err != nil {
		return nil, err
	}
	if met.Intents, err = m.Int64Counter("sakha.intents",
		metric.WithDescription("Classified intents by handler tier."),
	); err != nil {
		return nil, err
	}
	if met.RecognitionErrors, err = m.Int64Counter("sakha.recognition.errors",
		metric.WithDescription("Recognition failures by error code."),
	); err != nil {
		return nil, err
	}
	if met.BrainErrors, err = m.Int64Counter("sakha.brain.errors",
		metric.WithDescription("Failed language-model calls by backend."),
	); err != nil {
		return nil, err
	}
	if met.DownloadedBytes, err = m.Int64Counter("sakha.model.downloaded_bytes",
		metric.WithDescription("Model artifact bytes downloaded."),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.FeedClients, err = m.Int64UpDownCounter("sakha.feed.clients",
		metric.WithDescription("Connected status feed clients."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("sakha.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordTurn records one completed listen turn with its outcome: "final" for
// a dispatched transcript, or the recognition error code name.
func (m *Metrics) RecordTurn(ctx context.Context, outcome string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.Turns.Add(ctx, 1, attrs)
	m.TurnDuration.Record(ctx, seconds, attrs)
}

// RecordIntent records one classified intent by handler tier.
func (m *Metrics) RecordIntent(ctx context.Context, tier string) {
	m.Intents.Add(ctx, 1,
		metric.WithAttributes(attribute.String("tier", tier)),
	)
}

// RecordRecognitionError records one recognition failure by code name.
func (m *Metrics) RecordRecognitionError(ctx context.Context, code string) {
	m.RecognitionErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("code", code)),
	)
}

// RecordBrainError records one failed language-model call by backend.
func (m *Metrics) RecordBrainError(ctx context.Context, backend string) {
	m.BrainErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("backend", backend)),
	)
}

// AddDownloadedBytes accumulates model download progress.
func (m *Metrics) AddDownloadedBytes(ctx context.Context, n int64) {
	m.DownloadedBytes.Add(ctx, n)
}
