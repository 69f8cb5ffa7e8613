package rpn

import (
	"sort"
)

// machine is the value stack for evaluating one postfix sequence.
type machine struct {
	stack []float64
}

// push pushes a value.
func (m *machine) push(v float64) {
	m.stack = append(m.stack, v)
}

// pop removes the top from the stack and returns it.
func (m *machine) pop() float64 {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// need checks that the stack holds at least n values for the token t.
func (m *machine) need(t Token, n int) error {
	if len(m.stack) < n {
		return &StackError{Col: t.Pos, Op: t.String(), Need: n, Have: len(m.stack)}
	}
	return nil
}

// EvaluatePostfix evaluates a postfix token sequence, such as one returned by
// ConvertToPostfix, with the given variable bindings. vars may be nil.
//
// Evaluation stops at the first error. The error unwraps to one of this
// package's Err kinds and implements InputError.
func EvaluatePostfix(postfix []Token, vars map[string]float64) (float64, error) {
	m := machine{stack: make([]float64, 0, len(postfix))}
	for _, t := range postfix {
		if err := m.step(t, vars); err != nil {
			return 0, err
		}
	}
	if len(m.stack) != 1 {
		return 0, &MalformedError{Depth: len(m.stack)}
	}
	return m.stack[0], nil
}

// step evaluates a single token.
func (m *machine) step(t Token, vars map[string]float64) error {
	switch t.Kind {
	case KindNumber:
		m.push(t.Num)
	case KindVariable:
		v, ok := vars[t.Name]
		if !ok {
			return &NameError{Name: t.Name, Col: t.Pos}
		}
		m.push(v)
	case KindUnary:
		if err := m.need(t, 1); err != nil {
			return err
		}
		r, err := UnaryOp(t.Op, m.pop())
		if err != nil {
			return located(err, t.Pos)
		}
		m.push(r)
	case KindOperator:
		if err := m.need(t, 2); err != nil {
			return err
		}
		b := m.pop()
		a := m.pop()
		r, err := BinaryOp(t.Op, a, b)
		if err != nil {
			return located(err, t.Pos)
		}
		m.push(r)
	case KindFunction:
		fn, ok := Lookup(t.Name)
		if !ok {
			return &FuncError{Func: t.Name, Col: t.Pos}
		}
		if t.Arity != fn.Arity {
			return &CallError{Col: t.Pos, Func: t.Name, Len: t.Arity, Want: fn.Arity}
		}
		if t.Argc != argcUnknown && t.Argc != fn.Arity {
			return &CallError{Col: t.Pos, Func: t.Name, Len: t.Argc, Want: fn.Arity}
		}
		if err := m.need(t, fn.Arity); err != nil {
			return err
		}
		args := make([]float64, fn.Arity)
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = m.pop()
		}
		r, err := fn.Call(args)
		if err != nil {
			return located(err, t.Pos)
		}
		m.push(r)
	default:
		// Parentheses and commas only survive conversion when they are
		// unbalanced.
		return &MalformedError{Col: t.Pos, Depth: len(m.stack), Token: t.String()}
	}
	return nil
}

// located sets the position of an error returned by an operator or function.
func located(err error, col int) error {
	switch err := err.(type) {
	case *DomainError:
		err.Col = col
	case *OperatorError:
		err.Col = col
	case *CallError:
		err.Col = col
	}
	return err
}

// Program is a compiled expression. It holds the postfix form of an
// expression so that it can be evaluated for many variable bindings without
// scanning the source again. A Program is never modified after Compile, so it
// is safe to evaluate concurrently.
type Program struct {
	src     string
	tokens  []Token
	postfix []Token
	names   []string
}

// Compile tokenizes and converts an expression. Beyond what the conversion
// does, Compile checks that the postfix sequence is well formed, so the only
// errors Eval can return are unknown variables and domain errors.
func Compile(src string) (*Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := Program{
		src:     src,
		tokens:  toks,
		postfix: ConvertToPostfix(toks),
	}
	if err := check(p.postfix); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, t := range p.postfix {
		if t.Kind == KindVariable && !seen[t.Name] {
			seen[t.Name] = true
			p.names = append(p.names, t.Name)
		}
	}
	sort.Strings(p.names)
	return &p, nil
}

// check simulates the stack depth of a postfix sequence and reports the
// structural errors that EvaluatePostfix would report.
func check(postfix []Token) error {
	depth := 0
	for _, t := range postfix {
		need := 0
		switch t.Kind {
		case KindNumber, KindVariable:
		case KindUnary:
			need = 1
			if _, err := UnaryOp(t.Op, 0); err != nil {
				return located(err, t.Pos)
			}
		case KindOperator:
			need = 2
			if t.Prec() == 0 {
				return &OperatorError{Col: t.Pos, Operator: t.Op}
			}
		case KindFunction:
			fn, ok := Lookup(t.Name)
			if !ok {
				return &FuncError{Func: t.Name, Col: t.Pos}
			}
			if t.Arity != fn.Arity {
				return &CallError{Col: t.Pos, Func: t.Name, Len: t.Arity, Want: fn.Arity}
			}
			if t.Argc != argcUnknown && t.Argc != fn.Arity {
				return &CallError{Col: t.Pos, Func: t.Name, Len: t.Argc, Want: fn.Arity}
			}
			need = fn.Arity
		default:
			return &MalformedError{Col: t.Pos, Depth: depth, Token: t.String()}
		}
		if depth < need {
			return &StackError{Col: t.Pos, Op: t.String(), Need: need, Have: depth}
		}
		depth += 1 - need
	}
	if depth != 1 {
		return &MalformedError{Depth: depth}
	}
	return nil
}

// Eval evaluates the program with the given variable bindings.
func (p *Program) Eval(vars map[string]float64) (float64, error) {
	return EvaluatePostfix(p.postfix, vars)
}

// Vars returns the sorted names of the variables the program uses.
func (p *Program) Vars() []string {
	return append(([]string)(nil), p.names...)
}

// Tokens returns a copy of the program's infix tokens.
func (p *Program) Tokens() []Token {
	return append(([]Token)(nil), p.tokens...)
}

// Postfix returns a copy of the program's postfix tokens.
func (p *Program) Postfix() []Token {
	return append(([]Token)(nil), p.postfix...)
}

// Source returns the expression the program was compiled from.
func (p *Program) Source() string {
	return p.src
}

// String returns the program in reverse Polish notation.
func (p *Program) String() string {
	return Join(p.postfix)
}

// EvalString is a shortcut to tokenize, convert, and evaluate an expression.
func EvalString(src string, vars map[string]float64) (float64, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return 0, err
	}
	return EvaluatePostfix(ConvertToPostfix(toks), vars)
}
