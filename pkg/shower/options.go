package shower

import (
	"log/slog"

	"github.com/nglab/nglshower/pkg/shower/observability"
	"github.com/nglab/nglshower/pkg/shower/store"
)

// runConfig holds per-run execution options.
type runConfig struct {
	runID          string
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
	store          store.Store
}

// defaultRunConfig returns the default execution configuration:
// silent, no metrics, no tracing, no persistence.
func defaultRunConfig() runConfig {
	return runConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// RunOption configures a single Run call.
type RunOption func(*runConfig)

// WithRunID sets the run identifier used for logging, tracing, and
// persistence. A UUID is generated when not supplied.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithLogger enables structured logging for the run.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for the run.
// The global meter provider must be configured by the caller.
func WithMetrics(enabled bool) RunOption {
	return func(c *runConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing for the run.
// The global tracer provider must be configured by the caller.
func WithTracing(enabled bool) RunOption {
	return func(c *runConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithResultStore persists the accumulated result under the run ID
// when the run completes. Save failures are logged, not fatal.
func WithResultStore(s store.Store) RunOption {
	return func(c *runConfig) {
		c.store = s
	}
}
