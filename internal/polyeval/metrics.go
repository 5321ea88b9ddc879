package polyeval

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, set once by InitMetrics.
var (
	requestCounter    metric.Int64Counter
	treeCounter       metric.Int64Counter
	durationHistogram metric.Float64Histogram
	errorCounter      metric.Int64Counter
	degreeGauge       metric.Int64Gauge
)

// InitMetrics registers the OTel instruments of the polynomial domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("polynomial")

	var err error

	requestCounter, err = meter.Int64Counter("polynomial.requests.total",
		metric.WithDescription("Total number of polynomial evaluation requests served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	treeCounter, err = meter.Int64Counter("polynomial.trees.total",
		metric.WithDescription("Total number of evaluation trees reduced"),
		metric.WithUnit("{tree}"),
	)
	if err != nil {
		return fmt.Errorf("creating tree counter: %w", err)
	}

	durationHistogram, err = meter.Float64Histogram("polynomial.request.duration",
		metric.WithDescription("Duration of polynomial batch evaluations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.1, 1, 10, 100, 1000, 10000),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("polynomial.errors.total",
		metric.WithDescription("Total number of polynomial evaluation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	degreeGauge, err = meter.Int64Gauge("polynomial.last_degree",
		metric.WithDescription("Degree of the last reduced polynomial"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating degree gauge: %w", err)
	}

	return nil
}
