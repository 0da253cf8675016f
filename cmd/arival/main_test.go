package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// run runs the CLI with stdin and returns its stdout and stderr.
func run(t *testing.T, c CLI, stdin string) (string, string, error) {
	t.Helper()
	if c.Fmt == "" {
		c.Fmt = "%g"
	}
	var stdout, stderr bytes.Buffer
	err := c.Run(strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunArgs(t *testing.T) {
	out, _, err := run(t, CLI{Exprs: []string{"1 + 2", "2^2^3", "-2 ^ 2 + 1"}}, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "3\n256\n-3\n", out)
}

func TestRunStdin(t *testing.T) {
	out, errs, err := run(t, CLI{}, "1+1\n\n   \nx\n2*3\n")
	assert.ErrorIs(t, err, errFailed)
	assert.ErrorContains(t, err, "1 of 3")
	assert.Equal(t, "2\n6\n", out)
	assert.Contains(t, errs, "stdin:4: 0: undefined variable \"x\"\n")
	assert.Contains(t, errs, "\tx\n\t^\n")
}

func TestRunStdinDash(t *testing.T) {
	out, _, err := run(t, CLI{Exprs: []string{"1"}, In: "-"}, "2\n")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestRunFile(t *testing.T) {
	path := tempFile(t, "exprs.txt", "max(3, 7)\nsqrt(16) / 2\n")
	out, _, err := run(t, CLI{In: path}, "")
	require.NoError(t, err)
	assert.Equal(t, "7\n2\n", out)
}

func TestRunMissingFile(t *testing.T) {
	_, _, err := run(t, CLI{In: filepath.Join(t.TempDir(), "missing")}, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCaret(t *testing.T) {
	_, errs, err := run(t, CLI{Exprs: []string{"2 + 3 * (4 - 1"}}, "")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, errs, "arg:1: 14: unexpected end of input")
	assert.Contains(t, errs, "\t2 + 3 * (4 - 1\n\t"+strings.Repeat(" ", 14)+"^\n")
}

func TestRunGiven(t *testing.T) {
	cases := []struct {
		name  string
		given map[string]string
		vars  string
		expr  string
		out   string
		err   string
	}{
		{"value", map[string]string{"r": "2"}, "", "r * 2", "4\n", ""},
		{"expression", map[string]string{"r": "sqrt(16)"}, "", "r * 2", "8\n", ""},
		{"spaces", map[string]string{" r ": "3"}, "", "r", "3\n", ""},
		{"uses-vars", map[string]string{"r": "x + 1"}, "x: 4\n", "r", "5\n", ""},
		{"overrides-vars", map[string]string{"x": "1"}, "x: 4\n", "x", "1\n", ""},
		{"function-name", map[string]string{"sin": "1"}, "", "1", "", "built-in function"},
		{"bad-name", map[string]string{"2x": "1"}, "", "1", "", "invalid variable name"},
		{"bad-value", map[string]string{"r": "1 +"}, "", "1", "", "setting r"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cli := CLI{Exprs: []string{c.expr}, Given: c.given}
			if c.vars != "" {
				cli.Vars = tempFile(t, "vars.yaml", c.vars)
			}
			out, _, err := run(t, cli, "")
			if c.err != "" {
				assert.ErrorContains(t, err, c.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.out, out)
		})
	}
}

func TestRunVars(t *testing.T) {
	path := tempFile(t, "vars.json", `{"a": 2, "b": 10}`)
	out, _, err := run(t, CLI{Exprs: []string{"max(a ^ b, b)"}, Vars: path}, "")
	require.NoError(t, err)
	assert.Equal(t, "1024\n", out)

	bad := tempFile(t, "vars.txt", "a: 1\n")
	_, _, err = run(t, CLI{Exprs: []string{"1"}, Vars: bad}, "")
	assert.ErrorContains(t, err, "unsupported")
}

func TestRunFmt(t *testing.T) {
	out, _, err := run(t, CLI{Exprs: []string{"1 / 3", "1 / 0"}, Fmt: "%.3f"}, "")
	require.NoError(t, err)
	assert.Equal(t, "0.333\n+Inf\n", out)
}

func TestRunTokens(t *testing.T) {
	out, _, err := run(t, CLI{Exprs: []string{"pow(8, 2)"}, Tokens: true}, "")
	require.NoError(t, err)
	assert.Contains(t, out, `"pow"`)
	assert.Contains(t, out, `"8"`)
	assert.True(t, strings.HasSuffix(out, "\n64\n"), out)
}

func TestRunStats(t *testing.T) {
	out, _, err := run(t, CLI{Exprs: []string{"1", "2", "x", "$"}, Stats: true}, "")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "lex\t1\n")
	assert.Contains(t, out, "ok\t2\n")
	assert.Contains(t, out, "undefined\t1\n")
}

func TestRunLogLevel(t *testing.T) {
	_, errs, err := run(t, CLI{Exprs: []string{"1 + 1"}, LogLevel: "debug"}, "")
	require.NoError(t, err)
	assert.Contains(t, errs, "expression evaluated")
	assert.Contains(t, errs, "source=arg")
	assert.Contains(t, errs, "line=1")

	_, errs, err = run(t, CLI{Exprs: []string{"1 + 1"}, LogLevel: "warn"}, "")
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestRunTrace(t *testing.T) {
	_, errs, err := run(t, CLI{Exprs: []string{"1 + 1", "1 +"}, Trace: true}, "")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, 2, strings.Count(errs, "span finished"))
	assert.Contains(t, errs, "span=arival.eval")
	assert.Contains(t, errs, "status=Ok")
	assert.Contains(t, errs, "status=Error")
	assert.Contains(t, errs, "outcome=eof")
}
