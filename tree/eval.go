package tree

import (
	"github.com/zephyrtronium/rpn"
)

// Eval evaluates the expression with the given variable bindings. Operands
// are evaluated left to right, so the first error is the same one that
// rpn.EvaluatePostfix reports for the same expression.
func (e *Expr) Eval(vars map[string]float64) (float64, error) {
	return e.n.eval(vars)
}

// eval computes the node's value.
func (n *node) eval(vars map[string]float64) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok := vars[n.name]
		if !ok {
			return 0, &rpn.NameError{Name: n.name, Col: n.pos}
		}
		return v, nil
	case nodeCall:
		fn, ok := rpn.Lookup(n.name)
		if !ok {
			return 0, &rpn.FuncError{Func: n.name, Col: n.pos}
		}
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(vars)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		r, err := fn.Call(args)
		if err != nil {
			return 0, at(err, n.pos)
		}
		return r, nil
	case nodeNeg, nodeNop:
		a, err := n.left.eval(vars)
		if err != nil {
			return 0, err
		}
		r, err := rpn.UnaryOp(n.op, a)
		if err != nil {
			return 0, at(err, n.pos)
		}
		return r, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		a, err := n.left.eval(vars)
		if err != nil {
			return 0, err
		}
		b, err := n.right.eval(vars)
		if err != nil {
			return 0, err
		}
		r, err := rpn.BinaryOp(n.op, a, b)
		if err != nil {
			return 0, at(err, n.pos)
		}
		return r, nil
	default:
		panic("tree: invalid AST node " + n.kind.String())
	}
}

// at sets the position of an error from an operator or function.
func at(err error, col int) error {
	switch err := err.(type) {
	case *rpn.DomainError:
		err.Col = col
	case *rpn.OperatorError:
		err.Col = col
	case *rpn.CallError:
		err.Col = col
	}
	return err
}
