package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/difr/internal/observability"
)

func newManualMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return mp, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func sumValue(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()

	require.NotNil(t, m)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestREDMetrics_RecordRequest(t *testing.T) {
	t.Parallel()

	mp, reader := newManualMeter(t)

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "mcp.difr_compare", observability.StatusOK, 100*time.Millisecond)

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(1), sumValue(t, findMetric(rm, "difr.requests.total")))
	assert.NotNil(t, findMetric(rm, "difr.request.duration.seconds"))
}

func TestREDMetrics_RecordRequestError(t *testing.T) {
	t.Parallel()

	mp, reader := newManualMeter(t)

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "mcp.difr_compare", observability.StatusError, time.Second)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), sumValue(t, findMetric(rm, "difr.errors.total")))
}

func TestREDMetrics_TrackInflight(t *testing.T) {
	t.Parallel()

	mp, reader := newManualMeter(t)

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	done := red.TrackInflight(context.Background(), "op")
	assert.Equal(t, int64(1), sumValue(t, findMetric(collectMetrics(t, reader), "difr.inflight.requests")))

	done()
	assert.Equal(t, int64(0), sumValue(t, findMetric(collectMetrics(t, reader), "difr.inflight.requests")))
}

func TestComparisonMetrics_RecordComparison(t *testing.T) {
	t.Parallel()

	mp, reader := newManualMeter(t)

	cm, err := observability.NewComparisonMetrics(mp.Meter("test"))
	require.NoError(t, err)

	cm.RecordComparison(context.Background(), observability.ComparisonStats{
		Strategy:   "lines",
		Equal:      false,
		Positions:  10,
		Mismatches: 3,
		BytesRead:  512,
		Duration:   2 * time.Millisecond,
	})

	rm := collectMetrics(t, reader)

	assert.Equal(t, int64(1), sumValue(t, findMetric(rm, "difr.comparisons.total")))
	assert.Equal(t, int64(10), sumValue(t, findMetric(rm, "difr.lines.compared.total")))
	assert.Equal(t, int64(3), sumValue(t, findMetric(rm, "difr.mismatches.total")))
	assert.Equal(t, int64(512), sumValue(t, findMetric(rm, "difr.bytes.read.total")))
	assert.NotNil(t, findMetric(rm, "difr.comparison.duration.seconds"))
}

func TestComparisonMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var cm *observability.ComparisonMetrics

	assert.NotPanics(t, func() {
		cm.RecordComparison(context.Background(), observability.ComparisonStats{Strategy: "digest"})
	})
}
