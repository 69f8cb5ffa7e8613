// Package sweep evaluates a compiled expression across a range of values of
// one variable, producing the samples of a curve.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/zephyrtronium/rpn"
)

// MaxSamples is the largest number of samples a Range may describe.
const MaxSamples = 1_000_000

// ErrRange is returned for a Range that cannot be swept.
var ErrRange = errors.New("invalid range")

// Range describes the sample points Start, Start+Step, Start+2*Step, ... up
// to and including End.
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Step  float64 `json:"step" yaml:"step"`
}

// Validate checks that the range is finite, ascending, has a positive step,
// and has at most MaxSamples points.
func (r Range) Validate() error {
	switch {
	case math.IsNaN(r.Start) || math.IsInf(r.Start, 0):
		return fmt.Errorf("%w: start %g is not finite", ErrRange, r.Start)
	case math.IsNaN(r.End) || math.IsInf(r.End, 0):
		return fmt.Errorf("%w: end %g is not finite", ErrRange, r.End)
	case !(r.Step > 0) || math.IsInf(r.Step, 0):
		return fmt.Errorf("%w: step %g must be positive", ErrRange, r.Step)
	case r.End < r.Start:
		return fmt.Errorf("%w: end %g is before start %g", ErrRange, r.End, r.Start)
	}
	if n := (r.End - r.Start) / r.Step; n >= MaxSamples {
		return fmt.Errorf("%w: %.0f samples exceeds %d", ErrRange, n+1, MaxSamples)
	}
	return nil
}

// Len returns the number of sample points in a valid range.
func (r Range) Len() int {
	// Allow a little slack so that e.g. 0:1:0.1 includes 1 despite rounding.
	return int(math.Floor((r.End-r.Start)/r.Step+1e-9)) + 1
}

// At returns the i-th sample point.
func (r Range) At(i int) float64 {
	return r.Start + float64(i)*r.Step
}

// Point is one sample of a curve.
type Point struct {
	X float64
	Y float64
	// Err is the evaluation error at X, if any. Y is 0 when Err is non-nil.
	Err error
}

// OK reports whether the sample evaluated to a finite value.
func (p Point) OK() bool {
	return p.Err == nil && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Sample evaluates p at every point of r with the variable name bound to the
// point. Other bindings come from vars, which Sample does not modify; a
// binding for name in vars is overridden. A failure at one point is recorded
// in that Point and does not stop the sweep.
func Sample(p *rpn.Program, name string, r Range, vars map[string]float64) ([]Point, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	env := make(map[string]float64, len(vars)+1)
	for k, v := range vars {
		env[k] = v
	}
	pts := make([]Point, r.Len())
	for i := range pts {
		x := r.At(i)
		env[name] = x
		y, err := p.Eval(env)
		pts[i] = Point{X: x, Y: y, Err: err}
	}
	return pts, nil
}

// Segments splits a curve into maximal runs of consecutive samples that are
// OK, dropping the rest. Each run can be drawn as one polyline.
func Segments(pts []Point) [][]Point {
	var segs [][]Point
	start := -1
	for i, p := range pts {
		switch {
		case p.OK() && start < 0:
			start = i
		case !p.OK() && start >= 0:
			segs = append(segs, pts[start:i:i])
			start = -1
		}
	}
	if start >= 0 {
		segs = append(segs, pts[start:len(pts):len(pts)])
	}
	return segs
}
