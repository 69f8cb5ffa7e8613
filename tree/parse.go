// Package tree parses token streams into expression trees by recursive
// descent and evaluates them.
//
// It accepts the same grammar as the shunting-yard converter in package rpn
// and applies the same arithmetic, so for any expression both accept, the two
// produce identical results. Tests use it as an oracle; the rpncalc command
// uses it to print parse trees.
package tree

import (
	"github.com/zephyrtronium/rpn"
)

// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')' | funcname Expr
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr
//
// Neg and Plus bind tighter than every binary operator. A call without
// brackets takes the whole remaining subexpression as its single argument.

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// scanner walks a token slice.
type scanner struct {
	toks []rpn.Token
	i    int
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
}

// peek returns the next token without consuming it. At the end of input, the
// result has KindNone.
func (s *scanner) peek() rpn.Token {
	if s.i >= len(s.toks) {
		return rpn.Token{Pos: s.end()}
	}
	return s.toks[s.i]
}

// next consumes and returns the next token.
func (s *scanner) next() rpn.Token {
	t := s.peek()
	if s.i < len(s.toks) {
		s.i++
	}
	return t
}

// end returns the position just after the last token.
func (s *scanner) end() int {
	if len(s.toks) == 0 {
		return 1
	}
	return s.toks[len(s.toks)-1].Pos + 1
}

// ParseString tokenizes and parses an expression.
func ParseString(src string) (*Expr, error) {
	toks, err := rpn.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Parse parses an infix token sequence. Errors unwrap to
// rpn.ErrMalformedExpression, or to rpn.ErrWrongArity for calls with the wrong
// number of arguments.
func Parse(toks []rpn.Token) (*Expr, error) {
	s := scanner{toks: toks, names: make(map[string]bool)}
	n, err := parseterm(&s, exprprec)
	if err != nil {
		return nil, err
	}
	if t := s.peek(); t.Kind != rpn.KindNone {
		return nil, unexpected(t)
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(s.names)),
	}
	for k := range s.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a term whose binary operators all bind more tightly than
// until. It stops without consuming the first token that cannot continue the
// term.
func parseterm(s *scanner, until operator) (*node, error) {
	n, err := parselhs(s)
	if err != nil {
		return nil, err
	}
	for {
		tok := s.peek()
		switch tok.Kind {
		case rpn.KindOperator:
			prec := binop(tok.Op)
			if prec.op == nodeNone {
				return nil, &rpn.OperatorError{Col: tok.Pos, Operator: tok.Op}
			}
			if !prec.moreBinding(until) {
				return n, nil
			}
			s.next()
			rhs, err := parseterm(s, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, pos: tok.Pos, op: tok.Op, left: n, right: rhs}
		case rpn.KindClose, rpn.KindComma, rpn.KindNone:
			// End of term.
			return n, nil
		default:
			// Two operands in a row.
			return nil, unexpected(tok)
		}
	}
}

// parselhs parses the first operand of a term, including any prefix
// operators.
func parselhs(s *scanner) (*node, error) {
	tok := s.next()
	switch tok.Kind {
	case rpn.KindNumber:
		return &node{kind: nodeNum, pos: tok.Pos, num: tok.Num}, nil
	case rpn.KindVariable:
		s.names[tok.Name] = true
		return &node{kind: nodeName, pos: tok.Pos, name: tok.Name}, nil
	case rpn.KindFunction:
		return parsecall(s, tok)
	case rpn.KindUnary:
		prec := unop(tok.Op)
		if prec.op == nodeNone {
			return nil, &rpn.OperatorError{Col: tok.Pos, Operator: tok.Op, Unary: true}
		}
		rhs, err := parseterm(s, prec)
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, pos: tok.Pos, op: tok.Op, left: rhs}, nil
	case rpn.KindOpen:
		n, err := parseterm(s, exprprec)
		if err != nil {
			return nil, err
		}
		if end := s.next(); end.Kind != rpn.KindClose {
			return nil, unexpected(end)
		}
		return n, nil
	default:
		return nil, unexpected(tok)
	}
}

// parsecall parses the arguments to a function whose token has just been
// consumed.
func parsecall(s *scanner, fn rpn.Token) (*node, error) {
	n := &node{kind: nodeCall, pos: fn.Pos, name: fn.Name}
	if s.peek().Kind != rpn.KindOpen {
		// Bare call. The argument runs to the end of the enclosing group.
		arg, err := parseterm(s, exprprec)
		if err != nil {
			return nil, err
		}
		n.args = []*node{arg}
		return n, checkcall(fn, len(n.args))
	}
	s.next()
	if s.peek().Kind == rpn.KindClose {
		s.next()
		return n, checkcall(fn, 0)
	}
	for {
		arg, err := parseterm(s, exprprec)
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		switch end := s.next(); end.Kind {
		case rpn.KindComma:
			continue
		case rpn.KindClose:
			return n, checkcall(fn, len(n.args))
		default:
			return nil, unexpected(end)
		}
	}
}

// checkcall checks the number of arguments of a call.
func checkcall(fn rpn.Token, n int) error {
	f, ok := rpn.Lookup(fn.Name)
	if !ok {
		return &rpn.FuncError{Func: fn.Name, Col: fn.Pos}
	}
	if n != f.Arity {
		return &rpn.CallError{Col: fn.Pos, Func: fn.Name, Len: n, Want: f.Arity}
	}
	return nil
}

// unexpected returns an error for a token that cannot appear where it is.
func unexpected(tok rpn.Token) error {
	if tok.Kind == rpn.KindNone {
		return &rpn.MalformedError{Col: tok.Pos, Token: "end of input"}
	}
	return &rpn.MalformedError{Col: tok.Pos, Token: tok.String()}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a symbol. If there is no such binary
// operator, then the result has an op of nodeNone. Precedences match
// rpn.Token.Prec.
func binop(op rune) operator {
	switch op {
	case '+':
		return operator{1, false, nodeAdd}
	case '-':
		return operator{1, false, nodeSub}
	case '*', '×':
		return operator{2, false, nodeMul}
	case '/', '÷':
		return operator{2, false, nodeDiv}
	case '^':
		return operator{3, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a symbol. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(op rune) operator {
	switch op {
	case '+':
		return operator{4, true, nodeNop}
	case '-':
		return operator{4, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
