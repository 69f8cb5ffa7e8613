package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/rpn/internal/config"
	"github.com/zephyrtronium/rpn/sweep"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb  string
		cfgname, fmts string
		sweepdef      string
		with          []string
		nl, echo      bool
		showrpn       bool
		check         bool
		verbose       bool
		nocolor       bool
	)
	addwith := func(s string) error {
		if !strings.Contains(s, "=") {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, s)
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&showrpn, "rpn", false, "print tokens and reverse Polish notation")
	flag.StringVar(&sweepdef, "sweep", "", "name=start:end:step to evaluate across a range")
	flag.StringVar(&fmts, "format", "", "sweep output format (text, json, csv)")
	flag.StringVar(&cfgname, "config", "", "YAML or JSON configuration file")
	flag.BoolVar(&check, "check", false, "cross-check results against the parse tree evaluator")
	flag.BoolVar(&verbose, "v", false, "log debug information")
	flag.BoolVar(&nocolor, "nocolor", false, "disable colored output")
	flag.Parse()

	if nocolor {
		color.NoColor = true
	}
	logger := newLogger(os.Stderr, verbose)

	var cfg config.Config
	if cfgname != "" {
		var err error
		cfg, err = config.FromFile(cfgname)
		if err != nil {
			log.Fatal(err)
		}
		logger.Debug("loaded config", slog.String("path", cfgname))
	}
	// Flags override the configuration file.
	vars := make(map[string]float64, len(cfg.Vars)+len(with))
	for k, v := range cfg.Vars {
		vars[k] = v
	}
	for _, d := range with {
		nm, vl, err := config.ParseVar(d)
		if err != nil {
			log.Fatal(err)
		}
		vars[nm] = vl
	}
	if sweepdef != "" {
		sw, err := config.ParseSweep(sweepdef)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Sweep = &sw
	}
	if fmts != "" {
		cfg.Format = fmts
	}
	write, err := sweep.Writer(cfg.Format)
	if err != nil {
		log.Fatal(err)
	}

	c := calc{
		vars:    vars,
		verb:    verb + "\n",
		echo:    echo,
		showrpn: showrpn,
		check:   check,
		sweep:   cfg.Sweep,
		write:   write,
		out:     os.Stdout,
		log:     logger,
	}

	interactive := inname == "" && flag.NArg() == 0 && isatty.IsTerminal(os.Stdin.Fd())
	if interactive {
		// One expression per line, asking for missing variables.
		c.prompt = bufio.NewReader(os.Stdin)
		c.repl()
		return
	}
	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		s, err := readexprs(f, nl)
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, s...)
	}
	srcs = append(srcs, flag.Args()...)

	failed := 0
	for _, src := range srcs {
		if err := c.run(src); err != nil {
			failed++
		}
	}
	if failed > 0 {
		logger.Debug("finished with errors", slog.Int("failed", failed), slog.Int("total", len(srcs)))
		os.Exit(1)
	}
}

func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}

// readexprs reads expressions from r. If lines is true, each non-blank line is
// a separate expression; otherwise the whole input is one expression.
func readexprs(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := sc.Text(); strings.TrimSpace(s) != "" {
			srcs = append(srcs, s)
		}
	}
	return srcs, sc.Err()
}
