package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records shower metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when
// disabled.
type MetricsRecorder interface {
	// RecordRun records a completed shower run.
	RecordRun(ctx context.Context, success bool, duration time.Duration, realizations int)

	// RecordRealization records one shower realization with its
	// emission count.
	RecordRealization(ctx context.Context, emissions int, duration time.Duration)

	// RecordResultSave records a persisted run summary.
	RecordResultSave(ctx context.Context, bins int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	runs               metric.Int64Counter
	runLatency         metric.Float64Histogram
	realizations       metric.Int64Counter
	emissions          metric.Int64Histogram
	realizationLatency metric.Float64Histogram
	resultSaves        metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates the instrument set on the global meter.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("nglshower")

	runs, err := meter.Int64Counter("shower.runs",
		metric.WithDescription("Number of shower runs"),
	)
	if err != nil {
		return nil, err
	}

	runLatency, err := meter.Float64Histogram("shower.run.latency_ms",
		metric.WithDescription("Shower run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	realizations, err := meter.Int64Counter("shower.realizations",
		metric.WithDescription("Number of shower realizations evolved"),
	)
	if err != nil {
		return nil, err
	}

	emissions, err := meter.Int64Histogram("shower.realization.emissions",
		metric.WithDescription("Accepted emissions per realization"),
	)
	if err != nil {
		return nil, err
	}

	realizationLatency, err := meter.Float64Histogram("shower.realization.latency_ms",
		metric.WithDescription("Realization latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	resultSaves, err := meter.Int64Counter("shower.result.saves",
		metric.WithDescription("Number of persisted run summaries"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		runs:               runs,
		runLatency:         runLatency,
		realizations:       realizations,
		emissions:          emissions,
		realizationLatency: realizationLatency,
		resultSaves:        resultSaves,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses
// OpenTelemetry. If metrics initialization fails, returns a no-op
// recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRun records a shower run.
func (m *otelMetrics) RecordRun(ctx context.Context, success bool, duration time.Duration, realizations int) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.runs.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.runLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.realizations.Add(ctx, int64(realizations))
}

// RecordRealization records one realization.
func (m *otelMetrics) RecordRealization(ctx context.Context, emissions int, duration time.Duration) {
	m.emissions.Record(ctx, int64(emissions))
	m.realizationLatency.Record(ctx, float64(duration.Microseconds())/1000)
}

// RecordResultSave records a persisted summary.
func (m *otelMetrics) RecordResultSave(ctx context.Context, bins int) {
	m.resultSaves.Add(ctx, 1, metric.WithAttributes(attribute.Int("bins", bins)))
}
