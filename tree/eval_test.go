package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpn"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "2", 2},
		{"var", "x+y", 3},
		{"prec", "3+4*2", 11},
		{"pow-right", "2^3^2", 512},
		{"neg-pow", "-2^2", 4},
		{"neg-add", "-3+5", 2},
		{"pos", "+x", 1},
		{"sub-left", "8-3-2", 3},
		{"div", "x÷4", 0.25},
		{"call", "sqrt(16)", 4},
		{"call2", "log(2, 8)", 3},
		{"bare", "sqrt 4 + 5", 3},
	}
	vars := map[string]float64{"x": 1, "y": 2}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := ParseString(c.src)
			require.NoError(t, err)
			got, err := e.Eval(vars)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-12)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
		msg  string
	}{
		{"unknown", "1 + z", rpn.ErrUnknownVariable, `5: unknown variable "z"`},
		{"div-zero", "x/(y-2)", rpn.ErrDivisionByZero, "2: 0 outside domain of / (argument 2): division by zero"},
		{"sqrt-neg", "2*sqrt(-x)", rpn.ErrNegativeArgument, "3: -1 outside domain of sqrt (argument 1): negative argument"},
		{"first", "1/0 + z", rpn.ErrDivisionByZero, "2: 0 outside domain of / (argument 2): division by zero"},
	}
	vars := map[string]float64{"x": 1, "y": 2}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := ParseString(c.src)
			require.NoError(t, err)
			_, err = e.Eval(vars)
			require.ErrorIs(t, err, c.kind)
			assert.EqualError(t, err, c.msg)
			// The postfix evaluator reports the same error.
			_, perr := rpn.EvalString(c.src, vars)
			assert.EqualError(t, perr, c.msg)
		})
	}
}
