package observability

import (
	"context"
	"time"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// RecordEval does nothing.
func (NoopMetrics) RecordEval(ctx context.Context, outcome string, duration time.Duration) {}

var (
	_ MetricsRecorder = NoopMetrics{}
	_ MetricsRecorder = (*otelMetrics)(nil)
)
