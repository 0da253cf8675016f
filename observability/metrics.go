package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Metric names.
const (
	MetricEvaluations = "arival.evaluations"
	MetricFailures    = "arival.failures"
	MetricLatency     = "arival.latency_ms"
)

// MetricsRecorder records evaluation metrics.
// Use NewMetricsRecorder for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEval records one evaluation with its outcome and duration.
	RecordEval(ctx context.Context, outcome string, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evals    metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewMetricsRecorder creates a MetricsRecorder whose instruments come from
// provider. If provider is nil, the global meter provider is used.
func NewMetricsRecorder(provider metric.MeterProvider) (MetricsRecorder, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("arival")

	evals, err := meter.Int64Counter(MetricEvaluations,
		metric.WithDescription("Number of expressions evaluated"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(MetricFailures,
		metric.WithDescription("Number of expressions which failed to evaluate"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram(MetricLatency,
		metric.WithDescription("Time to scan, parse and evaluate an expression in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evals:    evals,
		failures: failures,
		latency:  latency,
	}, nil
}

func (m *otelMetrics) RecordEval(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.evals.Add(ctx, 1, attrs)
	if outcome != OutcomeOK {
		m.failures.Add(ctx, 1, attrs)
	}
	m.latency.Record(ctx, ms(duration), attrs)
}

// Counts collects the evaluation counter from reader, keyed by outcome.
func Counts(ctx context.Context, reader *sdkmetric.ManualReader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != MetricEvaluations {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("outcome")
				counts[v.AsString()] += dp.Value
			}
		}
	}
	return counts, nil
}
