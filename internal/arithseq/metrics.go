package arithseq

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, set once by InitMetrics.
var (
	requestCounter    metric.Int64Counter
	sequenceCounter   metric.Int64Counter
	durationHistogram metric.Float64Histogram
	errorCounter      metric.Int64Counter
	totalSumGauge     metric.Int64Gauge
)

// InitMetrics registers the OTel instruments of the arithmetic sequence domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("arithmetic_sequence")

	var err error

	requestCounter, err = meter.Int64Counter("arithmetic_sequence.requests.total",
		metric.WithDescription("Total number of arithmetic sequence requests served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	sequenceCounter, err = meter.Int64Counter("arithmetic_sequence.sequences.total",
		metric.WithDescription("Total number of sequence sums computed"),
		metric.WithUnit("{sequence}"),
	)
	if err != nil {
		return fmt.Errorf("creating sequence counter: %w", err)
	}

	durationHistogram, err = meter.Float64Histogram("arithmetic_sequence.request.duration",
		metric.WithDescription("Duration of arithmetic sequence computations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.1, 1, 10, 100, 1000, 10000),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("arithmetic_sequence.errors.total",
		metric.WithDescription("Total number of arithmetic sequence errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	totalSumGauge, err = meter.Int64Gauge("arithmetic_sequence.last_total_sum",
		metric.WithDescription("Total sum reported by the last summary request"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating total sum gauge: %w", err)
	}

	return nil
}
