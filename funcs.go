package arival

import (
	"math"
	"sort"
)

// function is a built-in function from reals to a real.
type function interface {
	// call evaluates the function. invoc has exactly arity elements.
	call(invoc []float64) float64
	// arity is the number of arguments the function takes.
	arity() int
}

type monadic func(x float64) float64

func (f monadic) call(invoc []float64) float64 {
	return f(invoc[0])
}

func (monadic) arity() int {
	return 1
}

type dyadic func(x, y float64) float64

func (f dyadic) call(invoc []float64) float64 {
	return f(invoc[0], invoc[1])
}

func (dyadic) arity() int {
	return 2
}

// funcTable is the set of function names shared by the scanner, which
// classifies them, and the parser, which calls them.
type funcTable struct {
	fns map[string]function
}

func (t *funcTable) has(name string) bool {
	_, ok := t.fns[name]
	return ok
}

func (t *funcTable) lookup(name string) function {
	return t.fns[name]
}

// builtins is the table of functions available to every expression. It is
// never modified.
var builtins = &funcTable{fns: map[string]function{
	"sin":  monadic(math.Sin),
	"cos":  monadic(math.Cos),
	"tan":  monadic(math.Tan),
	"sqrt": monadic(math.Sqrt),
	"log":  dyadic(logb),
	"pow":  dyadic(math.Pow),
	"max":  dyadic(math.Max),
	"min":  dyadic(math.Min),
}}

// logb is the logarithm of x in base b.
func logb(x, b float64) float64 {
	return math.Log(x) / math.Log(b)
}

// Funcs returns the names of the built-in functions in sorted order.
func Funcs() []string {
	names := make([]string, 0, len(builtins.fns))
	for k := range builtins.fns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FuncArity returns the number of arguments the named built-in function takes.
// ok is false if there is no such function.
func FuncArity(name string) (n int, ok bool) {
	fn := builtins.lookup(name)
	if fn == nil {
		return 0, false
	}
	return fn.arity(), true
}
