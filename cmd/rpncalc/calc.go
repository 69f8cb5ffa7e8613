package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/internal/config"
	"github.com/zephyrtronium/rpn/sweep"
	"github.com/zephyrtronium/rpn/tree"
)

var (
	errColor  = color.New(color.FgRed)
	infoColor = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
)

// calc evaluates expressions for the command line.
type calc struct {
	vars    map[string]float64
	verb    string
	echo    bool
	showrpn bool
	check   bool
	sweep   *config.Sweep
	write   func(io.Writer, sweep.Report) error
	out     io.Writer
	log     *slog.Logger
	// prompt is the terminal input in interactive mode, used to ask for
	// missing variables. nil otherwise.
	prompt *bufio.Reader
}

// run compiles and evaluates one expression, printing the result or error.
func (c *calc) run(src string) error {
	p, err := rpn.Compile(src)
	if err != nil {
		c.fail(src, err)
		return err
	}
	logCompile(c.log, p)
	if c.showrpn {
		infoColor.Fprintf(c.out, "tokens: %s\n", rpn.Join(p.Tokens()))
		infoColor.Fprintf(c.out, "rpn:    %s\n", p)
	}
	if c.echo {
		if e, err := tree.Parse(p.Tokens()); err == nil {
			fmt.Fprintf(c.out, "%v : ", e)
		} else {
			c.log.Debug("no parse tree", slog.String("expr", src), slog.String("error", err.Error()))
		}
	}
	if c.sweep != nil {
		return c.runSweep(p)
	}
	vars, err := c.bindings(p)
	if err != nil {
		c.fail(src, err)
		return err
	}
	r, err := p.Eval(vars)
	if c.check {
		c.crosscheck(p, vars, r, err)
	}
	if err != nil {
		c.fail(src, err)
		return err
	}
	okColor.Fprintf(c.out, c.verb, r)
	return nil
}

// runSweep evaluates p across the configured range and writes the samples.
func (c *calc) runSweep(p *rpn.Program) error {
	pts, err := sweep.Sample(p, c.sweep.Var, c.sweep.Range, c.vars)
	if err != nil {
		c.fail(p.Source(), err)
		return err
	}
	if c.check {
		vars := make(map[string]float64, len(c.vars)+1)
		for k, v := range c.vars {
			vars[k] = v
		}
		for _, pt := range pts {
			vars[c.sweep.Var] = pt.X
			c.crosscheck(p, vars, pt.Y, pt.Err)
		}
	}
	logSweep(c.log, p, c.sweep.Var, pts)
	r := sweep.Report{
		Expr:   strings.TrimSpace(p.Source()),
		RPN:    p.String(),
		Var:    c.sweep.Var,
		Range:  c.sweep.Range,
		Points: pts,
	}
	if err := c.write(c.out, r); err != nil {
		return fmt.Errorf("writing sweep: %w", err)
	}
	return nil
}

// bindings returns the variable bindings for p. In interactive mode, it asks
// for the value of each variable that has no binding yet.
func (c *calc) bindings(p *rpn.Program) (map[string]float64, error) {
	if c.prompt == nil {
		return c.vars, nil
	}
	for _, name := range p.Vars() {
		if _, ok := c.vars[name]; ok {
			continue
		}
		fmt.Fprintf(c.out, "%s = ", name)
		line, err := c.prompt.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		v, err := rpn.EvalString(line, c.vars)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		c.vars[name] = v
	}
	return c.vars, nil
}

// repl reads one expression per line from the prompt until EOF.
func (c *calc) repl() {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.prompt.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			c.run(line)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Error("reading input", slog.String("error", err.Error()))
			}
			fmt.Fprintln(c.out)
			return
		}
	}
}

// fail prints an error for src, pointing at the position of the error when
// the error has one.
func (c *calc) fail(src string, err error) {
	var ie rpn.InputError
	if errors.As(err, &ie) && ie.Pos() > 0 && !strings.ContainsAny(strings.TrimRight(src, "\r\n"), "\r\n") {
		src = strings.TrimRight(src, "\r\n")
		fmt.Fprintf(c.out, "  %s\n  %s^\n", src, strings.Repeat(" ", ie.Pos()-1))
	}
	errColor.Fprintln(c.out, "error:", err)
}

// crosscheck compares a postfix evaluation result with the result of the
// parse tree evaluator and logs any difference.
func (c *calc) crosscheck(p *rpn.Program, vars map[string]float64, r float64, err error) {
	e, perr := tree.Parse(p.Tokens())
	if perr != nil {
		c.log.Warn("tree parser rejects expression",
			slog.String("expr", p.Source()),
			slog.String("error", perr.Error()),
		)
		return
	}
	tr, terr := e.Eval(vars)
	if same(r, err, tr, terr) {
		return
	}
	logMismatch(c.log, p, vars, r, err, tr, terr)
}

// same reports whether two evaluation outcomes are identical.
func same(a float64, aerr error, b float64, berr error) bool {
	if aerr != nil || berr != nil {
		return aerr != nil && berr != nil && aerr.Error() == berr.Error()
	}
	if math.IsNaN(a) {
		return math.IsNaN(b)
	}
	return a == b
}
