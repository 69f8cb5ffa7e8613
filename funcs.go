package rpn

import (
	"math"
	"sort"
)

// Func is a registered function of a fixed number of real arguments.
type Func struct {
	// Name is the identifier that calls the function.
	Name string
	// Arity is the number of arguments the function takes.
	Arity int

	f func(args []float64) (float64, error)
}

// Call evaluates the function. args must have length f.Arity. The error, if
// any, is a *DomainError without position information.
func (f Func) Call(args []float64) (float64, error) {
	if len(args) != f.Arity {
		return 0, &CallError{Func: f.Name, Len: len(args), Want: f.Arity}
	}
	return f.f(args)
}

// monadic wraps a function of one variable that is defined everywhere.
func monadic(name string, f func(float64) float64) Func {
	return Func{
		Name:  name,
		Arity: 1,
		f: func(args []float64) (float64, error) {
			return f(args[0]), nil
		},
	}
}

// dyadic wraps a function of two variables that is defined everywhere.
func dyadic(name string, f func(a, b float64) float64) Func {
	return Func{
		Name:  name,
		Arity: 2,
		f: func(args []float64) (float64, error) {
			return f(args[0], args[1]), nil
		},
	}
}

func sqrt(args []float64) (float64, error) {
	if args[0] < 0 {
		return 0, &DomainError{X: args[0], Arg: 1, Func: "sqrt", Err: ErrNegativeArgument}
	}
	return math.Sqrt(args[0]), nil
}

// logb is the logarithm of x to base b.
func logb(b, x float64) float64 {
	return math.Log(x) / math.Log(b)
}

// root is the n-th root of x.
func root(n, x float64) float64 {
	return math.Pow(x, 1/n)
}

func cot(x float64) float64 {
	return 1 / math.Tan(x)
}

// globalfuncs is the function registry. It is never modified.
var globalfuncs = map[string]Func{
	"sqrt": {Name: "sqrt", Arity: 1, f: sqrt},
	"sin":  monadic("sin", math.Sin),
	"cos":  monadic("cos", math.Cos),
	"tg":   monadic("tg", math.Tan),
	"ctg":  monadic("ctg", cot),
	"log":  dyadic("log", logb),
	"rt":   dyadic("rt", root),

	"tan": monadic("tan", math.Tan),
	"cot": monadic("cot", cot),
	"exp": monadic("exp", math.Exp),
	"ln":  monadic("ln", math.Log),
	"abs": monadic("abs", math.Abs),
}

// Lookup returns the registered function with the given name.
func Lookup(name string) (Func, bool) {
	f, ok := globalfuncs[name]
	return f, ok
}

// Funcs returns the names of all registered functions in sorted order.
func Funcs() []string {
	names := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// UnaryOp applies a unary operator.
func UnaryOp(op rune, a float64) (float64, error) {
	switch op {
	case '-':
		return -a, nil
	case '+':
		return a, nil
	default:
		return 0, &OperatorError{Operator: op, Unary: true}
	}
}

// BinaryOp applies a binary operator to a and b, in that order.
func BinaryOp(op rune, a, b float64) (float64, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*', '×':
		return a * b, nil
	case '/', '÷':
		if b == 0 {
			return 0, &DomainError{X: b, Arg: 2, Func: string(op), Err: ErrDivisionByZero}
		}
		return a / b, nil
	case '^':
		return math.Pow(a, b), nil
	default:
		return 0, &OperatorError{Operator: op}
	}
}
