package rpn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "empty",
			src:  "",
			want: nil,
		},
		{
			name: "space",
			src:  " \t\n ",
			want: nil,
		},
		{
			name: "sum",
			src:  "3.5+x",
			want: []Token{Num(3.5).at(1), Op('+').at(4), Var("x").at(5)},
		},
		{
			name: "spaced",
			src:  " 1 *  2",
			want: []Token{Num(1).at(2), Op('*').at(4), Num(2).at(7)},
		},
		{
			name: "neg",
			src:  "-1",
			want: []Token{Unary('-').at(1), Num(1).at(2)},
		},
		{
			name: "pos",
			src:  "+1",
			want: []Token{Unary('+').at(1), Num(1).at(2)},
		},
		{
			name: "sub",
			src:  "1-1",
			want: []Token{Num(1).at(1), Op('-').at(2), Num(1).at(3)},
		},
		{
			name: "mul-neg",
			src:  "2*-3",
			want: []Token{Num(2).at(1), Op('*').at(2), Unary('-').at(3), Num(3).at(4)},
		},
		{
			name: "sub-neg",
			src:  "x--y",
			want: []Token{Var("x").at(1), Op('-').at(2), Unary('-').at(3), Var("y").at(4)},
		},
		{
			name: "paren-neg",
			src:  "(-x)",
			want: []Token{Open().at(1), Unary('-').at(2), Var("x").at(3), Close().at(4)},
		},
		{
			name: "close-sub",
			src:  "(x)-1",
			want: []Token{Open().at(1), Var("x").at(2), Close().at(3), Op('-').at(4), Num(1).at(5)},
		},
		{
			name: "call",
			src:  "log(2,-8)",
			want: []Token{
				Fn("log", 2).at(1),
				Open().at(4),
				Num(2).at(5),
				Comma().at(6),
				Unary('-').at(7),
				Num(8).at(8),
				Close().at(9),
			},
		},
		{
			name: "bare-neg",
			src:  "sqrt -4",
			want: []Token{Fn("sqrt", 1).at(1), Unary('-').at(6), Num(4).at(7)},
		},
		{
			name: "func-prefix",
			src:  "sqrtx",
			want: []Token{Var("sqrtx").at(1)},
		},
		{
			name: "letters-digits",
			src:  "a1",
			want: []Token{Var("a").at(1), Num(1).at(2)},
		},
		{
			name: "unicode",
			src:  "π×2÷ä",
			want: []Token{Var("π").at(1), Op('×').at(2), Num(2).at(3), Op('÷').at(4), Var("ä").at(5)},
		},
		{
			name: "leading-dot",
			src:  ".5",
			want: []Token{Num(0.5).at(1)},
		},
		{
			name: "trailing-dot",
			src:  "5.",
			want: []Token{Num(5).at(1)},
		},
		{
			name: "all-ops",
			src:  "1+2-3*4/5^6",
			want: []Token{
				Num(1).at(1), Op('+').at(2), Num(2).at(3), Op('-').at(4), Num(3).at(5),
				Op('*').at(6), Num(4).at(7), Op('/').at(8), Num(5).at(9), Op('^').at(10), Num(6).at(11),
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
		text string
		col  int
	}{
		{"dollar", "2$3", ErrUnsupportedCharacter, "$", 2},
		{"percent", "%", ErrUnsupportedCharacter, "%", 1},
		{"after-unicode", "π!", ErrUnsupportedCharacter, "!", 2},
		{"dots", "1.5.2", ErrInvalidNumber, "1.5.2", 1},
		{"dot", "x+.", ErrInvalidNumber, ".", 3},
		{"double-dot", "..", ErrInvalidNumber, "..", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			assert.Nil(t, toks)
			require.ErrorIs(t, err, c.kind)
			var le *LexError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, c.text, le.Text)
			assert.Equal(t, c.col, le.Pos())
		})
	}
}

func TestTokenizeHugeNumber(t *testing.T) {
	src := "1"
	for i := 0; i < 400; i++ {
		src += "0"
	}
	toks, err := Tokenize(src)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, KindNumber, toks[0].Kind)
	assert.True(t, toks[0].Num > 1e308)
}

func TestTokenStrings(t *testing.T) {
	cases := []struct {
		tok    Token
		str    string
		gostr  string
		prec   int
		rassoc bool
	}{
		{Num(3.5), "3.5", "Number(3.5)", 0, false},
		{Var("x"), "x", `Variable("x")`, 0, false},
		{Op('+'), "+", "Operation('+')", 1, false},
		{Op('-'), "-", "Operation('-')", 1, false},
		{Op('*'), "*", "Operation('*')", 2, false},
		{Op('÷'), "÷", "Operation('÷')", 2, false},
		{Op('^'), "^", "Operation('^')", 3, true},
		{Unary('-'), "neg", "UnaryOperation('-', 4)", 4, true},
		{Unary('+'), "pos", "UnaryOperation('+', 4)", 4, true},
		{Fn("sqrt", 1), "sqrt", `Function("sqrt", 1)`, 0, false},
		{Open(), "(", "Parenthesis(true)", 0, false},
		{Close(), ")", "Parenthesis(false)", 0, false},
		{Comma(), ",", "Comma", 0, false},
	}
	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			assert.Equal(t, c.str, c.tok.String())
			assert.Equal(t, c.gostr, c.tok.GoString())
			assert.Equal(t, c.prec, c.tok.Prec())
			assert.Equal(t, c.rassoc, c.tok.RightAssoc())
		})
	}
}

func TestTokenIs(t *testing.T) {
	assert.True(t, Num(1).at(3).Is(Num(1)))
	assert.False(t, Num(1).Is(Num(2)))
	assert.False(t, Op('-').Is(Unary('-')))
	assert.False(t, Fn("sqrt", 1).Is(Var("sqrt")))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "3 neg 5 +", Join([]Token{Num(3), Unary('-'), Num(5), Op('+')}))
}
