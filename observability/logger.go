// Package observability provides structured logging and metrics for
// expression evaluation.
//
// Logging goes through log/slog. Metrics go through OpenTelemetry. Both are
// opt-in: a nil logger logs nothing, and NoopMetrics records nothing.
package observability

import (
	"log/slog"
	"time"
)

// Outcomes of an evaluation, used as the outcome attribute of metrics and
// log records.
const (
	OutcomeOK        = "ok"
	OutcomeLex       = "lex"
	OutcomeEOF       = "eof"
	OutcomeToken     = "token"
	OutcomeUndefined = "undefined"
	OutcomeArity     = "arity"
	OutcomeTrailing  = "trailing"
	OutcomeNumber    = "number"
	OutcomeError     = "error"
)

// EnrichLogger adds the location of an expression to a logger.
// Returns a new logger with source and line fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "exprs.txt", 3)
//	enriched.Info("evaluating") // includes source, line
func EnrichLogger(logger *slog.Logger, source string, line int) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("source", source),
		slog.Int("line", line),
	)
}

// LogEval logs a successful evaluation.
func LogEval(logger *slog.Logger, expr string, result float64, d time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("expression evaluated",
		slog.String("expr", expr),
		slog.Float64("result", result),
		slog.Float64("duration_ms", ms(d)),
	)
}

// LogEvalError logs a failed evaluation. pos is the byte offset of the
// failure in expr.
func LogEvalError(logger *slog.Logger, expr string, err error, pos int, outcome string, d time.Duration) {
	if logger == nil {
		return
	}
	logger.Warn("expression failed",
		slog.String("expr", expr),
		slog.String("error", err.Error()),
		slog.Int("pos", pos),
		slog.String("outcome", outcome),
		slog.Float64("duration_ms", ms(d)),
	)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
