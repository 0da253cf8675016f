package arival

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/zephyrtronium/arival/observability"
)

// Evaluator evaluates expressions against a fixed set of variable bindings.
// Each call to Parse has its own scanner and lookahead, and the bindings are
// never modified, so an Evaluator is safe to use concurrently.
type Evaluator struct {
	vars    map[string]float64
	funcs   *funcTable
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// NewEvaluator creates a new evaluator. With no options, it has no variables,
// logs nothing, records no metrics, and creates no spans.
func NewEvaluator(opts ...Option) *Evaluator {
	e := Evaluator{
		funcs:   builtins,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	return e.Clone(opts...)
}

// Clone creates a copy of an evaluator and applies options to it. The new
// evaluator has its own copy of the variable bindings.
func (e *Evaluator) Clone(opts ...Option) *Evaluator {
	n := Evaluator{
		vars:    make(map[string]float64, len(e.vars)),
		funcs:   e.funcs,
		logger:  e.logger,
		metrics: e.metrics,
		spans:   e.spans,
	}
	for k, v := range e.vars {
		n.vars[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.evalOption(&n)
	}
	return &n
}

// Parse evaluates an expression. If the expression is invalid, the error is
// a *LexError or a *ParseError, and both implement InputError.
func (e *Evaluator) Parse(src string) (float64, error) {
	return e.ParseContext(context.Background(), src)
}

// ParseContext is like Parse, but metrics and spans for the evaluation are
// recorded under ctx. ctx is not checked for cancellation.
func (e *Evaluator) ParseContext(ctx context.Context, src string) (float64, error) {
	ctx, span := e.spans.StartEvalSpan(ctx, src)
	start := time.Now()
	p := parser{
		scan:  newScanner(src, e.funcs),
		vars:  e.vars,
		funcs: e.funcs,
	}
	r, err := p.run()
	d := time.Since(start)
	out := outcome(err)
	e.metrics.RecordEval(ctx, out, d)
	e.spans.EndEvalSpan(span, out, err)
	e.log(src, r, err, out, d)
	if err != nil {
		return 0, err
	}
	return r, nil
}

func (e *Evaluator) log(src string, r float64, err error, out string, d time.Duration) {
	if err != nil {
		pos := -1
		var ierr InputError
		if errors.As(err, &ierr) {
			pos = ierr.Pos()
		}
		observability.LogEvalError(e.logger, src, err, pos, out, d)
		return
	}
	observability.LogEval(e.logger, src, r, d)
}

// outcome classifies the result of an evaluation for metrics and logs.
func outcome(err error) string {
	var lerr *LexError
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.As(err, &lerr):
		return observability.OutcomeLex
	case errors.Is(err, ErrUnexpectedEOF):
		return observability.OutcomeEOF
	case errors.Is(err, ErrUnexpectedToken):
		return observability.OutcomeToken
	case errors.Is(err, ErrUndefined):
		return observability.OutcomeUndefined
	case errors.Is(err, ErrArity):
		return observability.OutcomeArity
	case errors.Is(err, ErrTrailingInput):
		return observability.OutcomeTrailing
	case errors.Is(err, ErrBadNumber):
		return observability.OutcomeNumber
	default:
		return observability.OutcomeError
	}
}

// Lookup returns the value of a variable. ok is false if there is no such
// variable.
func (e *Evaluator) Lookup(name string) (v float64, ok bool) {
	v, ok = e.vars[name]
	return v, ok
}

// Vars returns the names of the evaluator's variables in sorted order.
func (e *Evaluator) Vars() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Eval is a shortcut to create an evaluator and evaluate one expression.
func Eval(src string, opts ...Option) (float64, error) {
	return NewEvaluator(opts...).Parse(src)
}
