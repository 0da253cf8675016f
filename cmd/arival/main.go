package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zephyrtronium/arival"
	"github.com/zephyrtronium/arival/config"
	"github.com/zephyrtronium/arival/observability"
)

// CLI is the command line of arival.
type CLI struct {
	Exprs    []string          `arg:"" optional:"" help:"Expressions to evaluate."`
	In       string            `short:"i" help:"Input file with one expression per line, or - for stdin. The default is stdin if no expressions are given."`
	Given    map[string]string `short:"g" help:"name=value variable definition, where value is an expression (any number of times)."`
	Vars     string            `help:"YAML or JSON file of variable bindings." type:"path"`
	Fmt      string            `default:"%g" help:"Result formatting verb."`
	Tokens   bool              `help:"Print the tokens of each expression."`
	Stats    bool              `help:"Print the number of evaluations by outcome when finished."`
	Trace    bool              `help:"Log a trace span for each evaluation to stderr."`
	LogLevel string            `default:"warn" enum:"debug,info,warn,error" help:"Log level for evaluation records on stderr."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("arival"),
		kong.Description("Evaluate arithmetic expressions."),
	)
	err := cli.Run(os.Stdin, os.Stdout, os.Stderr)
	kctx.FatalIfErrorf(err)
}

// errFailed is returned from Run when any expression fails to evaluate. The
// failures themselves have already been reported.
var errFailed = errors.New("some expressions failed")

// input is an expression and where it came from.
type input struct {
	src    string
	source string
	line   int
}

// Run evaluates every input expression, writing results to stdout and
// errors to stderr.
func (c *CLI) Run(stdin io.Reader, stdout, stderr io.Writer) error {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level(c.LogLevel)}))
	opts := []arival.Option{arival.WithLogger(logger)}

	var reader *sdkmetric.ManualReader
	if c.Stats {
		reader = sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer provider.Shutdown(ctx)
		m, err := observability.NewMetricsRecorder(provider)
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
		opts = append(opts, arival.WithMetrics(m))
	}
	if c.Trace {
		exp := observability.NewLogExporter(slog.New(slog.NewTextHandler(stderr, nil)))
		provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
		defer provider.Shutdown(ctx)
		opts = append(opts, arival.WithTracing(observability.NewSpanManager(provider)))
	}

	if c.Vars != "" {
		b, err := config.FromFile(c.Vars)
		if err != nil {
			return err
		}
		opts = append(opts, b.Option())
	}
	ev := arival.NewEvaluator(opts...)

	given, err := c.given(ev)
	if err != nil {
		return err
	}
	ev = ev.Clone(given.Option())

	ins, err := c.inputs(stdin)
	if err != nil {
		return err
	}
	failed := 0
	for _, in := range ins {
		if c.Tokens {
			printTokens(stdout, in.src)
		}
		lev := ev.Clone(arival.WithLogger(observability.EnrichLogger(logger, in.source, in.line)))
		r, err := lev.ParseContext(ctx, in.src)
		if err != nil {
			report(stderr, in, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, c.Fmt+"\n", r)
	}

	if reader != nil {
		if err := printStats(ctx, stdout, reader); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFailed, failed, len(ins))
	}
	return nil
}

// given evaluates the --given definitions. Each value may use the variables
// from --vars but not other --given definitions.
func (c *CLI) given(ev *arival.Evaluator) (config.Bindings, error) {
	keys := make([]string, 0, len(c.Given))
	for k := range c.Given {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := make(config.Bindings, len(keys))
	for _, k := range keys {
		name := strings.TrimSpace(k)
		r, err := ev.Parse(c.Given[k])
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		b[name] = r
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// inputs collects the expressions to evaluate. Blank lines in files are
// skipped.
func (c *CLI) inputs(stdin io.Reader) ([]input, error) {
	var ins []input
	for i, arg := range c.Exprs {
		ins = append(ins, input{src: arg, source: "arg", line: i + 1})
	}
	f, name, err := infile(c.In, len(c.Exprs) == 0, stdin)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return ins, nil
	}
	if f, ok := f.(*os.File); ok && name != "stdin" {
		defer f.Close()
	}
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		ins = append(ins, input{src: sc.Text(), source: name, line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return ins, nil
}

func infile(inname string, std bool, stdin io.Reader) (io.Reader, string, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, "", err
		}
		return f, inname, nil
	case inname == "-", std:
		return stdin, "stdin", nil
	}
	return nil, "", nil
}

func level(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return l
}

func printTokens(w io.Writer, src string) {
	var toks []arival.Token
	for tok, err := range arival.NewScanner(src).All() {
		if err != nil {
			break
		}
		toks = append(toks, tok)
	}
	fmt.Fprintln(w, repr.String(toks, repr.Indent("  ")))
}

// report writes an evaluation error with a caret under the failing position.
func report(w io.Writer, in input, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, "%s:%d: ", in.source, in.line)
	fmt.Fprintln(w, err)
	var ierr arival.InputError
	if !errors.As(err, &ierr) {
		return
	}
	pos := ierr.Pos()
	if pos < 0 || pos > len(in.src) {
		return
	}
	fmt.Fprintf(w, "\t%s\n", in.src)
	fmt.Fprintf(w, "\t%s", strings.Repeat(" ", utf8.RuneCountInString(in.src[:pos])))
	color.New(color.FgYellow).Fprintln(w, "^")
}

func printStats(ctx context.Context, w io.Writer, reader *sdkmetric.ManualReader) error {
	counts, err := observability.Counts(ctx, reader)
	if err != nil {
		return fmt.Errorf("collecting metrics: %w", err)
	}
	outs := make([]string, 0, len(counts))
	for k := range counts {
		outs = append(outs, k)
	}
	sort.Strings(outs)
	for _, k := range outs {
		fmt.Fprintf(w, "%s\t%d\n", k, counts[k])
	}
	return nil
}
