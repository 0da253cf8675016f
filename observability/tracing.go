package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// SpanEval is the name of the span around each evaluation.
const SpanEval = "arival.eval"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEvalSpan starts a span for the evaluation of one expression.
	// Returns the context with the span and the span itself.
	StartEvalSpan(ctx context.Context, expr string) (context.Context, trace.Span)

	// EndEvalSpan completes a span with the outcome of the evaluation,
	// recording err if it is not nil.
	EndEvalSpan(span trace.Span, outcome string, err error)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager whose tracer comes from provider. If
// provider is nil, the global tracer provider is used.
func NewSpanManager(provider trace.TracerProvider) SpanManager {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &otelSpanManager{tracer: provider.Tracer("arival")}
}

func (m *otelSpanManager) StartEvalSpan(ctx context.Context, expr string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, SpanEval,
		trace.WithAttributes(attribute.String("expr", expr)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndEvalSpan(span trace.Span, outcome string, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// NoopSpanManager is a SpanManager that creates no spans.
type NoopSpanManager struct{}

// StartEvalSpan returns ctx unchanged with the span already in it, which is
// a non-recording span if there is none.
func (NoopSpanManager) StartEvalSpan(ctx context.Context, expr string) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

// EndEvalSpan does nothing.
func (NoopSpanManager) EndEvalSpan(span trace.Span, outcome string, err error) {}

// LogExporter is a span exporter which writes each finished span to a logger
// at info level.
type LogExporter struct {
	logger *slog.Logger
}

// NewLogExporter creates a span exporter that logs to logger.
func NewLogExporter(logger *slog.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans logs spans.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if e.logger == nil {
		return nil
	}
	for _, s := range spans {
		attrs := []any{
			slog.String("span", s.Name()),
			slog.String("trace_id", s.SpanContext().TraceID().String()),
			slog.String("status", s.Status().Code.String()),
			slog.Float64("duration_ms", ms(s.EndTime().Sub(s.StartTime()))),
		}
		for _, kv := range s.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}
		e.logger.InfoContext(ctx, "span finished", attrs...)
	}
	return nil
}

// Shutdown does nothing.
func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}

var (
	_ SpanManager           = (*otelSpanManager)(nil)
	_ SpanManager           = NoopSpanManager{}
	_ sdktrace.SpanExporter = (*LogExporter)(nil)
)
