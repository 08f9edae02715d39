// Package observe provides application-wide observability primitives for the
// langdu sync server: OpenTelemetry metrics, tracing, and HTTP middleware
// that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
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

// meterName is the instrumentation scope name used for all langdu metrics.
const meterName = "github.com/langdu/langdu"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// QueryDuration tracks locator query latency, from snippet receipt to
	// the best alignment (or a miss).
	QueryDuration metric.Float64Histogram

	// CompareDuration tracks combined-similarity scoring latency for a
	// single (transcript, chunk) pair.
	CompareDuration metric.Float64Histogram

	// SyncQueries counts locator queries. Use with attribute:
	//   attribute.String("result", "hit"|"miss")
	SyncQueries metric.Int64Counter

	// Messages counts WebSocket messages handled. Use with attributes:
	//   attribute.String("type", ...), attribute.String("status", ...)
	Messages metric.Int64Counter

	// ActiveClients tracks the number of connected sync clients.
	ActiveClients metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time. Use with
	// attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Queries
// against a preprocessed script are sub-millisecond to low-millisecond, so
// the buckets skew much finer than typical HTTP buckets.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.QueryDuration, err = m.Float64Histogram("langdu.locate.query.duration",
		metric.WithDescription("Latency of locator queries."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CompareDuration, err = m.Float64Histogram("langdu.similarity.compare.duration",
		metric.WithDescription("Latency of combined-similarity comparisons."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SyncQueries, err = m.Int64Counter("langdu.locate.queries",
		metric.WithDescription("Total locator queries by result."),
	); err != nil {
		return nil, err
	}
	if met.Messages, err = m.Int64Counter("langdu.sync.messages",
		metric.WithDescription("Total WebSocket messages by type and status."),
	); err != nil {
		return nil, err
	}
	if met.ActiveClients, err = m.Int64UpDownCounter("langdu.sync.active_clients",
		metric.WithDescription("Number of connected sync clients."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("langdu.http.request.duration",
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

// RecordQuery records one locator query with its latency and hit/miss result.
func (m *Metrics) RecordQuery(ctx context.Context, seconds float64, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	attrs := metric.WithAttributes(attribute.String("result", result))
	m.SyncQueries.Add(ctx, 1, attrs)
	m.QueryDuration.Record(ctx, seconds, attrs)
}

// RecordMessage records one handled WebSocket message.
func (m *Metrics) RecordMessage(ctx context.Context, msgType, status string) {
	m.Messages.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("type", msgType),
			attribute.String("status", status),
		),
	)
}
