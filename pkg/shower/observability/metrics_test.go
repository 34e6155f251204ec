package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a reader
// to collect from.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}
	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)
}

func TestRecordRun(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRun(ctx, true, 120*time.Millisecond, 1000)
	m.RecordRun(ctx, false, 5*time.Millisecond, 0)

	rm := collectMetrics(t, reader)

	runs := findMetric(rm, "shower.runs")
	require.NotNil(t, runs)
	sum, ok := runs.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	latency := findMetric(rm, "shower.run.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.NotEmpty(t, hist.DataPoints)

	realizations := findMetric(rm, "shower.realizations")
	require.NotNil(t, realizations)
	rsum, ok := realizations.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var rtotal int64
	for _, dp := range rsum.DataPoints {
		rtotal += dp.Value
	}
	assert.Equal(t, int64(1000), rtotal)
}

func TestRecordRealization(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRealization(ctx, 42, 300*time.Microsecond)
	m.RecordRealization(ctx, 17, 150*time.Microsecond)

	rm := collectMetrics(t, reader)

	emissions := findMetric(rm, "shower.realization.emissions")
	require.NotNil(t, emissions)
	hist, ok := emissions.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.NotEmpty(t, hist.DataPoints)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, int64(59), hist.DataPoints[0].Sum)

	latency := findMetric(rm, "shower.realization.latency_ms")
	require.NotNil(t, latency)
}

func TestRecordResultSave(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordResultSave(context.Background(), 50)

	rm := collectMetrics(t, reader)
	saves := findMetric(rm, "shower.result.saves")
	require.NotNil(t, saves)
	sum, ok := saves.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.NotEmpty(t, sum.DataPoints)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}
