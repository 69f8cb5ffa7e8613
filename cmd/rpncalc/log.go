package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/sweep"
)

// newLogger creates the diagnostic logger. Diagnostics never go to the
// result stream.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logCompile logs a compiled program.
func logCompile(logger *slog.Logger, p *rpn.Program) {
	logger.Debug("compiled",
		slog.String("expr", strings.TrimSpace(p.Source())),
		slog.String("rpn", p.String()),
		slog.String("vars", strings.Join(p.Vars(), ",")),
	)
}

// logSweep logs a summary of a sweep.
func logSweep(logger *slog.Logger, p *rpn.Program, name string, pts []sweep.Point) {
	failed := 0
	for _, pt := range pts {
		if pt.Err != nil {
			failed++
		}
	}
	logger.Debug("sweep complete",
		slog.String("expr", strings.TrimSpace(p.Source())),
		slog.String("var", name),
		slog.Int("samples", len(pts)),
		slog.Int("failed", failed),
		slog.Int("segments", len(sweep.Segments(pts))),
	)
}

// logMismatch logs a difference between the postfix and tree evaluators.
func logMismatch(logger *slog.Logger, p *rpn.Program, vars map[string]float64, r float64, err error, tr float64, terr error) {
	attrs := []any{
		slog.String("expr", strings.TrimSpace(p.Source())),
		slog.Float64("postfix", r),
		slog.Float64("tree", tr),
	}
	for _, name := range p.Vars() {
		if v, ok := vars[name]; ok {
			attrs = append(attrs, slog.Float64(name, v))
		}
	}
	if err != nil {
		attrs = append(attrs, slog.String("postfix_error", err.Error()))
	}
	if terr != nil {
		attrs = append(attrs, slog.String("tree_error", terr.Error()))
	}
	logger.Error("evaluators disagree", attrs...)
}
