package rpn

// group is an open parenthesis waiting on the operator stack.
type group struct {
	// call is whether the parenthesis opened a function's argument list.
	call bool
	// commas counts the top-level commas inside the group.
	commas int
	// empty is whether no token has appeared inside the group.
	empty bool
}

// ConvertToPostfix reorders infix tokens into reverse Polish notation using
// the shunting-yard algorithm. It never fails: invalid sequences produce
// postfix that EvaluatePostfix rejects. In particular, a parenthesis or comma
// that does not match anything is copied to the output rather than dropped.
//
// Function tokens that end a parenthesized argument list are emitted with
// Argc set to the number of arguments in the list.
func ConvertToPostfix(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	var ops []Token
	var groups []group
	prev := Token{}
	for _, t := range tokens {
		if len(groups) > 0 && t.Kind != KindClose {
			groups[len(groups)-1].empty = false
		}
		switch t.Kind {
		case KindNumber, KindVariable:
			out = append(out, t)
		case KindFunction:
			ops = append(ops, t)
		case KindOpen:
			ops = append(ops, t)
			groups = append(groups, group{call: prev.Kind == KindFunction, empty: true})
		case KindComma:
			var ok bool
			ops, out, ok = unwind(ops, out)
			if !ok {
				out = append(out, t)
				break
			}
			groups[len(groups)-1].commas++
		case KindClose:
			var ok bool
			ops, out, ok = unwind(ops, out)
			if !ok {
				out = append(out, t)
				break
			}
			// Discard the open parenthesis.
			ops = ops[:len(ops)-1]
			g := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			if len(ops) > 0 && ops[len(ops)-1].Kind == KindFunction {
				fn := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if g.call {
					fn.Argc = g.commas + 1
					if g.empty {
						fn.Argc = 0
					}
				}
				out = append(out, fn)
			}
		case KindOperator, KindUnary:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind != KindOperator && top.Kind != KindUnary || !yields(top, t) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, t)
		default:
			// Not a token the converter understands. Pass it through so the
			// evaluator can reject it.
			out = append(out, t)
		}
		prev = t
	}
	for len(ops) > 0 {
		// Leftover open parentheses go to the output as well, where they
		// mark the expression as unbalanced.
		out = append(out, ops[len(ops)-1])
		ops = ops[:len(ops)-1]
	}
	return out
}

// unwind pops operators and functions from ops to out until the top of ops
// is an open parenthesis, which stays. If there is no open parenthesis, all
// of ops is moved and the last result is false.
func unwind(ops, out []Token) ([]Token, []Token, bool) {
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.Kind == KindOpen {
			return ops, out, true
		}
		out = append(out, top)
		ops = ops[:len(ops)-1]
	}
	return ops, out, false
}

// yields reports whether the stacked operator top must be output before the
// incoming operator t is pushed.
func yields(top, t Token) bool {
	switch {
	case t.Kind == KindUnary:
		// A prefix operator has no left operand yet, so nothing before it can
		// be complete.
		return false
	case t.RightAssoc():
		return top.Prec() > t.Prec()
	default:
		return top.Prec() >= t.Prec()
	}
}
