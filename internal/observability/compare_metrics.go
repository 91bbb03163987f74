package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricComparisonsTotal   = "difr.comparisons.total"
	metricComparisonDuration = "difr.comparison.duration.seconds"
	metricLinesCompared      = "difr.lines.compared.total"
	metricMismatchesTotal    = "difr.mismatches.total"
	metricBytesRead          = "difr.bytes.read.total"

	attrStrategy = "strategy"
	attrOutcome  = "outcome"

	outcomeEqual     = "equal"
	outcomeDifferent = "different"
)

// ComparisonMetrics holds OTel instruments describing file comparisons.
type ComparisonMetrics struct {
	comparisons   metric.Int64Counter
	duration      metric.Float64Histogram
	linesCompared metric.Int64Counter
	mismatches    metric.Int64Counter
	bytesRead     metric.Int64Counter
}

// ComparisonStats summarizes one completed comparison.
type ComparisonStats struct {
	Strategy   string
	Equal      bool
	Positions  int
	Mismatches int
	BytesRead  int64
	Duration   time.Duration
}

// NewComparisonMetrics creates comparison metric instruments from the given meter.
func NewComparisonMetrics(mt metric.Meter) (*ComparisonMetrics, error) {
	b := newMetricBuilder(mt)

	cm := &ComparisonMetrics{
		comparisons:   b.counter(metricComparisonsTotal, "Total file comparisons by strategy and outcome", "{comparison}"),
		duration:      b.histogram(metricComparisonDuration, "Comparison duration in seconds", "s", durationBucketBoundaries...),
		linesCompared: b.counter(metricLinesCompared, "Total walk positions visited by the line comparator", "{line}"),
		mismatches:    b.counter(metricMismatchesTotal, "Total mismatching positions", "{line}"),
		bytesRead:     b.counter(metricBytesRead, "Total bytes read from compared files", "By"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return cm, nil
}

// RecordComparison records one comparison. Safe to call on a nil receiver (no-op).
func (cm *ComparisonMetrics) RecordComparison(ctx context.Context, stats ComparisonStats) {
	if cm == nil {
		return
	}

	outcome := outcomeDifferent
	if stats.Equal {
		outcome = outcomeEqual
	}

	strategyAttr := attribute.String(attrStrategy, stats.Strategy)
	attrs := metric.WithAttributes(strategyAttr, attribute.String(attrOutcome, outcome))

	cm.comparisons.Add(ctx, 1, attrs)
	cm.duration.Record(ctx, stats.Duration.Seconds(), metric.WithAttributes(strategyAttr))
	cm.linesCompared.Add(ctx, int64(stats.Positions))
	cm.mismatches.Add(ctx, int64(stats.Mismatches))
	cm.bytesRead.Add(ctx, stats.BytesRead)
}
