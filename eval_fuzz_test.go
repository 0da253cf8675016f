package arival_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/arival"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("2 ^ -x ^ 2")
	f.Add("max(min(2, 5), pow(3, sqrt(4))) - 1")
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		_, err := arival.Eval(s, arival.SetVar("x", 1))
		if err == nil {
			return
		}
		var ierr arival.InputError
		if !errors.As(err, &ierr) {
			t.Fatalf("%q gave %T, which is not an InputError", s, err)
		}
		if p := ierr.Pos(); p < 0 || p > len(s) {
			t.Errorf("%q gave error position %d out of range: %v", s, p, err)
		}
	})
}
