package arival

import (
	"log/slog"

	"github.com/zephyrtronium/arival/observability"
)

// Option is an option used when creating an evaluator.
type Option interface {
	evalOption(*Evaluator)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt    map[string]float64
	loggeropt  struct{ logger *slog.Logger }
	metricsopt struct{ m observability.MetricsRecorder }
	spansopt   struct{ s observability.SpanManager }
)

// SetVar binds a variable name to a value.
func SetVar(name string, val float64) Option {
	return &varopt{name, val}
}

func (o *varopt) evalOption(e *Evaluator) {
	e.vars[o.name] = o.val
}

// SetVars binds any number of variables. The map is copied; later changes to
// it do not affect the evaluator.
func SetVars(vars map[string]float64) Option {
	return varsopt(vars)
}

func (o varsopt) evalOption(e *Evaluator) {
	for k, v := range o {
		e.vars[k] = v
	}
}

// WithLogger sets the logger which receives a record of each evaluation.
// Successes are logged at debug level and failures at warn level. A nil
// logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return &loggeropt{logger}
}

func (o *loggeropt) evalOption(e *Evaluator) {
	e.logger = o.logger
}

// WithMetrics sets the recorder for evaluation metrics. A nil recorder
// disables metrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return &metricsopt{m}
}

func (o *metricsopt) evalOption(e *Evaluator) {
	e.metrics = o.m
	if e.metrics == nil {
		e.metrics = observability.NoopMetrics{}
	}
}

// WithTracing sets the span manager which creates a span around each
// evaluation. A nil manager disables tracing.
func WithTracing(s observability.SpanManager) Option {
	return &spansopt{s}
}

func (o *spansopt) evalOption(e *Evaluator) {
	e.spans = o.s
	if e.spans == nil {
		e.spans = observability.NoopSpanManager{}
	}
}
