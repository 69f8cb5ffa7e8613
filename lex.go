package rpn

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src  *strings.Reader
	buf  strings.Builder
	rune int
	// operand is true where the next token must start an operand, so + and -
	// are unary there.
	operand bool
}

// Tokenize scans an infix expression into tokens in a single left-to-right
// pass. Identifiers naming a registered function become KindFunction tokens
// carrying the function's arity; other identifiers become variables.
//
// A + or - is unary at the start of the input and immediately after an
// operator, open parenthesis, or comma. The returned error is a *LexError for
// a malformed number or a rune that cannot begin any token.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: strings.NewReader(src), operand: true}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of input, the result
// is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		col := l.rune
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			v, err := l.scanNum(col)
			if err != nil {
				return Token{}, err
			}
			l.operand = false
			return Num(v).at(col), nil
		case unicode.IsLetter(r):
			l.unreadRune()
			name := l.scanIdent()
			l.operand = false
			if fn, ok := Lookup(name); ok {
				// A function still needs its arguments.
				l.operand = true
				return Fn(fn.Name, fn.Arity).at(col), nil
			}
			return Var(name).at(col), nil
		case r == '(':
			l.operand = true
			return Open().at(col), nil
		case r == ')':
			l.operand = false
			return Close().at(col), nil
		case r == ',':
			l.operand = true
			return Comma().at(col), nil
		case strings.ContainsRune(Operators, r):
			tok := Op(r)
			if l.operand && (r == '+' || r == '-') {
				tok = Unary(r)
			}
			l.operand = true
			return tok.at(col), nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return Token{}, &LexError{Text: l.buf.String(), Col: col}
		}
	}
}

// scanNum scans a maximal run of digits and decimal points and parses it as a
// float64. col is the column of the first rune.
func (l *lexer) scanNum(col int) (float64, error) {
	for {
		r, err := l.readRune()
		if err != nil {
			// Only io.EOF is possible from a strings.Reader.
			break
		}
		if r != '.' && (r < '0' || '9' < r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	s := l.buf.String()
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			// Too many digits to represent. ParseFloat already rounded to
			// infinity, which is what the literal means.
			return v, nil
		}
		return 0, &LexError{Text: s, Kind: "number", Col: col}
	}
	return v, nil
}

// scanIdent scans a maximal run of letters.
func (l *lexer) scanIdent() string {
	for {
		r, err := l.readRune()
		if err != nil {
			break
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	return l.buf.String()
}
