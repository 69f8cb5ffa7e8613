// Package rpn implements a small floating-point calculator built on the
// shunting-yard algorithm.
//
// Evaluation happens in three steps. Tokenize scans an infix expression such
// as "-x^2 + log(2, 8)" into tokens, ConvertToPostfix reorders the tokens into
// reverse Polish notation, and EvaluatePostfix runs the postfix sequence on a
// value stack with a table of variable bindings. Compile does the first two
// steps once so that a Program can be evaluated for many bindings, e.g. to
// sweep a variable across a range.
//
// Binary operators are + - * / ^ (also × and ÷). "^" is right-associative, so
// "2^3^2" is "2^(3^2)". Prefix + and - bind tighter than every binary
// operator: "-2^2" is 4.
package rpn
