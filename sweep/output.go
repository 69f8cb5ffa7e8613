package sweep

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Report is a sweep in a form suitable for output.
type Report struct {
	Expr   string  `json:"expr"`
	RPN    string  `json:"rpn"`
	Var    string  `json:"var"`
	Range  Range   `json:"range"`
	Points []Point `json:"-"`
}

// jsonPoint is the JSON form of a Point. Non-finite values are not
// representable as JSON numbers, so Y is omitted for them and Err explains.
type jsonPoint struct {
	X   float64  `json:"x"`
	Y   *float64 `json:"y,omitempty"`
	Err string   `json:"error,omitempty"`
}

type jsonReport struct {
	Report
	Points []jsonPoint `json:"points"`
}

func fmtfloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteText writes one "x y" line per sample, with the error message in place
// of y for failed samples.
func WriteText(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "# %s  [%s]  %s from %s to %s step %s\n",
		r.Expr, r.RPN, r.Var, fmtfloat(r.Range.Start), fmtfloat(r.Range.End), fmtfloat(r.Range.Step)); err != nil {
		return err
	}
	for _, p := range r.Points {
		var err error
		if p.Err != nil {
			_, err = fmt.Fprintf(w, "%s\terror: %v\n", fmtfloat(p.X), p.Err)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", fmtfloat(p.X), fmtfloat(p.Y))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the report as an indented JSON document.
func WriteJSON(w io.Writer, r Report) error {
	jr := jsonReport{Report: r, Points: make([]jsonPoint, len(r.Points))}
	for i, p := range r.Points {
		jp := jsonPoint{X: p.X}
		switch {
		case p.Err != nil:
			jp.Err = p.Err.Error()
		case math.IsNaN(p.Y) || math.IsInf(p.Y, 0):
			jp.Err = fmtfloat(p.Y)
		default:
			y := p.Y
			jp.Y = &y
		}
		jr.Points[i] = jp
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}

// WriteCSV writes a header row and one "x,y,error" row per sample.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{r.Var, "y", "error"}); err != nil {
		return err
	}
	for _, p := range r.Points {
		row := []string{fmtfloat(p.X), "", ""}
		if p.Err != nil {
			row[2] = p.Err.Error()
		} else {
			row[1] = fmtfloat(p.Y)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Writer returns the writer function for a format name: "text", "json", or
// "csv".
func Writer(format string) (func(io.Writer, Report) error, error) {
	switch format {
	case "", "text":
		return WriteText, nil
	case "json":
		return WriteJSON, nil
	case "csv":
		return WriteCSV, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
