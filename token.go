package rpn

import (
	"strconv"
	"strings"
)

// Kind is the variant of a Token.
type Kind int8

const (
	KindNone Kind = iota
	// KindNumber is a numeric literal.
	KindNumber
	// KindVariable is an identifier that does not name a function.
	KindVariable
	// KindOperator is a binary operator.
	KindOperator
	// KindUnary is a prefix + or -.
	KindUnary
	// KindFunction is an identifier that names a registered function.
	KindFunction
	// KindOpen is an open parenthesis.
	KindOpen
	// KindClose is a close parenthesis.
	KindClose
	// KindComma separates function arguments.
	KindComma
)

var kindnames = [...]string{
	KindNone:     "None",
	KindNumber:   "Number",
	KindVariable: "Variable",
	KindOperator: "Operation",
	KindUnary:    "UnaryOperation",
	KindFunction: "Function",
	KindOpen:     "Open",
	KindClose:    "Close",
	KindComma:    "Comma",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// Operators contains the runes which are binary operators. Only + and - may
// also be unary.
const Operators = "+-*/^×÷"

// unaryPrec is the priority of every unary operator. It is above all binary
// operators.
const unaryPrec = 4

// argcUnknown is the Argc of a function token whose arguments were not
// counted.
const argcUnknown = -1

// Token is a lexical unit of an expression. Tokens are values; nothing in
// this package modifies a token after creating it.
type Token struct {
	// Kind selects which of the other fields are meaningful.
	Kind Kind
	// Num is the value of a KindNumber token.
	Num float64
	// Name is the name of a KindVariable or KindFunction token.
	Name string
	// Op is the symbol of a KindOperator or KindUnary token.
	Op rune
	// Arity is the registered arity of a KindFunction token.
	Arity int
	// Argc is the number of arguments ConvertToPostfix counted for a
	// parenthesized call, or -1 if the call was not counted.
	Argc int
	// Pos is the 1-based rune column of the token in its source, or 0 if the
	// token was not scanned from a source.
	Pos int
}

// Num creates a number token.
func Num(v float64) Token {
	return Token{Kind: KindNumber, Num: v}
}

// Var creates a variable token.
func Var(name string) Token {
	return Token{Kind: KindVariable, Name: name}
}

// Op creates a binary operator token.
func Op(op rune) Token {
	return Token{Kind: KindOperator, Op: op}
}

// Unary creates a unary operator token.
func Unary(op rune) Token {
	return Token{Kind: KindUnary, Op: op}
}

// Fn creates a function token with an uncounted argument list.
func Fn(name string, arity int) Token {
	return Token{Kind: KindFunction, Name: name, Arity: arity, Argc: argcUnknown}
}

// Open creates an open parenthesis token.
func Open() Token {
	return Token{Kind: KindOpen}
}

// Close creates a close parenthesis token.
func Close() Token {
	return Token{Kind: KindClose}
}

// Comma creates a comma token.
func Comma() Token {
	return Token{Kind: KindComma}
}

// at returns a copy of t positioned at col.
func (t Token) at(col int) Token {
	t.Pos = col
	return t
}

// Prec returns the priority of an operator token: 1 for + and -, 2 for * and
// /, 3 for ^, and 4 for every unary operator. Other tokens have priority 0.
func (t Token) Prec() int {
	switch t.Kind {
	case KindUnary:
		return unaryPrec
	case KindOperator:
		switch t.Op {
		case '+', '-':
			return 1
		case '*', '/', '×', '÷':
			return 2
		case '^':
			return 3
		}
	}
	return 0
}

// RightAssoc returns whether an operator token groups right to left.
func (t Token) RightAssoc() bool {
	return t.Kind == KindUnary || t.Kind == KindOperator && t.Op == '^'
}

// Is reports whether t has the same kind and payload as u, ignoring Pos.
func (t Token) Is(u Token) bool {
	t.Pos, u.Pos = 0, 0
	return t == u
}

// String formats the token the way it is printed in reverse Polish notation.
func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case KindVariable, KindFunction:
		return t.Name
	case KindOperator:
		return string(t.Op)
	case KindUnary:
		switch t.Op {
		case '-':
			return "neg"
		case '+':
			return "pos"
		}
		return "unary" + string(t.Op)
	case KindOpen:
		return "("
	case KindClose:
		return ")"
	case KindComma:
		return ","
	default:
		return t.Kind.String()
	}
}

// GoString formats the token as its variant and payload, e.g. Number(3.5).
func (t Token) GoString() string {
	switch t.Kind {
	case KindNumber:
		return "Number(" + t.String() + ")"
	case KindVariable:
		return "Variable(" + strconv.Quote(t.Name) + ")"
	case KindOperator:
		return "Operation(" + strconv.QuoteRune(t.Op) + ")"
	case KindUnary:
		return "UnaryOperation(" + strconv.QuoteRune(t.Op) + ", " + strconv.Itoa(t.Prec()) + ")"
	case KindFunction:
		return "Function(" + strconv.Quote(t.Name) + ", " + strconv.Itoa(t.Arity) + ")"
	case KindOpen:
		return "Parenthesis(true)"
	case KindClose:
		return "Parenthesis(false)"
	case KindComma:
		return "Comma"
	default:
		return t.Kind.String()
	}
}

// Join formats a token sequence separated by single spaces.
func Join(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
