package arival_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arival"
)

func TestFuncs(t *testing.T) {
	want := []string{"cos", "log", "max", "min", "pow", "sin", "sqrt", "tan"}
	assert.Equal(t, want, arival.Funcs())
	// The result is a fresh slice each time.
	f := arival.Funcs()
	f[0] = "nope"
	assert.Equal(t, want, arival.Funcs())
}

func TestFuncArity(t *testing.T) {
	cases := []struct {
		name string
		n    int
		ok   bool
	}{
		{"sin", 1, true},
		{"cos", 1, true},
		{"tan", 1, true},
		{"sqrt", 1, true},
		{"log", 2, true},
		{"pow", 2, true},
		{"max", 2, true},
		{"min", 2, true},
		{"exp", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		n, ok := arival.FuncArity(c.name)
		assert.Equal(t, c.ok, ok, c.name)
		assert.Equal(t, c.n, n, c.name)
	}
}

func TestFuncCalls(t *testing.T) {
	// Every function accepts exactly its arity and nothing else.
	ev := arival.NewEvaluator()
	for _, name := range arival.Funcs() {
		n, _ := arival.FuncArity(name)
		for k := 0; k <= 3; k++ {
			src := name + "("
			for i := 0; i < k; i++ {
				if i > 0 {
					src += ", "
				}
				src += "2"
			}
			src += ")"
			r, err := ev.Parse(src)
			if k != n {
				assert.ErrorIs(t, err, arival.ErrArity, src)
				continue
			}
			require.NoError(t, err, src)
			assert.False(t, math.IsNaN(r), src)
		}
	}
}

func TestFuncsNotVariables(t *testing.T) {
	// Binding a function name doesn't make it usable as a variable.
	ev := arival.NewEvaluator(arival.SetVar("sin", 1))
	_, err := ev.Parse("sin + 1")
	assert.ErrorIs(t, err, arival.ErrUnexpectedToken)
	r, err := ev.Parse("sin(0)")
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)
}

func ExampleFuncArity() {
	for _, name := range arival.Funcs() {
		n, _ := arival.FuncArity(name)
		fmt.Println(name, n)
	}

	// Output:
	// cos 1
	// log 2
	// max 2
	// min 2
	// pow 2
	// sin 1
	// sqrt 1
	// tan 1
}
