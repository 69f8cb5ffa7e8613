package rpn

import (
	"errors"
	"strconv"
)

// Error kinds. Every error this package returns unwraps to exactly one of
// these, so callers can test the kind with errors.Is.
var (
	ErrUnsupportedCharacter = errors.New("unsupported character")
	ErrInvalidNumber        = errors.New("invalid number")
	ErrUnknownVariable      = errors.New("unknown variable")
	ErrUnsupportedFunction  = errors.New("unsupported function")
	ErrWrongArity           = errors.New("wrong number of arguments")
	ErrUnsupportedOperator  = errors.New("unsupported operator")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrNegativeArgument     = errors.New("negative argument")
	ErrInsufficientOperands = errors.New("insufficient operands")
	ErrMalformedExpression  = errors.New("malformed expression")
)

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the
	// error, or 0 if the token did not come from a scanned source.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*FuncError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*StackError)(nil)
	_ InputError = (*MalformedError)(nil)
)

// LexError indicates an invalid token.
type LexError struct {
	// Text is the text of the invalid token.
	Text string
	// Kind is "number" for a malformed numeric literal and empty for a rune
	// that cannot begin any token.
	Kind string
	// Col is the column of the first rune of the token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "unsupported character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// Unwrap returns ErrInvalidNumber or ErrUnsupportedCharacter.
func (err *LexError) Unwrap() error {
	if err.Kind == "number" {
		return ErrInvalidNumber
	}
	return ErrUnsupportedCharacter
}

// NameError is an error from a lookup for a variable that is missing from the
// bindings.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Col is the position of the variable.
	Col int
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown variable "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrUnknownVariable
}

// FuncError indicates a call to a name that is not a registered function.
type FuncError struct {
	// Func is the unknown function name.
	Func string
	// Col is the position of the function token.
	Col int
}

func (err *FuncError) Error() string {
	return errpos(err.Col, "unsupported function "+strconv.Quote(err.Func))
}

func (err *FuncError) Pos() int {
	return err.Col
}

func (err *FuncError) Unwrap() error {
	return ErrUnsupportedFunction
}

// CallError is an error indicating a function call with the wrong number of
// arguments.
type CallError struct {
	// Col is the position of the function token.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied.
	Len int
	// Want is the registered arity of the function.
	Want int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (want "+strconv.Itoa(err.Want)+")")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return ErrWrongArity
}

// OperatorError is an error indicating an operator token that is not
// understood by the evaluator.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator that was not understood.
	Operator rune
	// Unary is whether the operator was unary.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unsupported "+s+" operator "+strconv.QuoteRune(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrUnsupportedOperator
}

// DomainError is an error returned when an operator or function is applied to
// an argument outside its domain. It unwraps to ErrDivisionByZero or
// ErrNegativeArgument.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
	// Col is the position of the function or operator token.
	Col int
	// Err is the error kind.
	Err error
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	if err.Err != nil {
		r += ": " + err.Err.Error()
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

// StackError indicates an operator or function with fewer operands on the
// value stack than it consumes.
type StackError struct {
	// Col is the position of the operator or function.
	Col int
	// Op is the operator or function as printed in postfix.
	Op string
	// Need is the number of operands the token consumes.
	Need int
	// Have is the number of operands that were available.
	Have int
}

func (err *StackError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Op)+" needs "+strconv.Itoa(err.Need)+" operands but has "+strconv.Itoa(err.Have))
}

func (err *StackError) Pos() int {
	return err.Col
}

func (err *StackError) Unwrap() error {
	return ErrInsufficientOperands
}

// MalformedError indicates a postfix sequence that does not reduce to exactly
// one value, or that contains a parenthesis or comma, which happens when the
// infix brackets are unbalanced.
type MalformedError struct {
	// Col is the position of the offending token, or 0 when the error is
	// about the final stack.
	Col int
	// Depth is the number of values left on the stack.
	Depth int
	// Token is the offending token, if any.
	Token string
}

func (err *MalformedError) Error() string {
	switch {
	case err.Token != "":
		return errpos(err.Col, "unbalanced "+strconv.Quote(err.Token))
	case err.Depth == 0:
		return errpos(err.Col, "no expression")
	default:
		return errpos(err.Col, strconv.Itoa(err.Depth)+" values left after evaluation")
	}
}

func (err *MalformedError) Pos() int {
	return err.Col
}

func (err *MalformedError) Unwrap() error {
	return ErrMalformedExpression
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}
