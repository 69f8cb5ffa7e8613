package sweep

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpn"
)

func testReport(t *testing.T) Report {
	t.Helper()
	p, err := rpn.Compile("1/x")
	require.NoError(t, err)
	r := Range{-1, 1, 1}
	pts, err := Sample(p, "x", r, nil)
	require.NoError(t, err)
	return Report{Expr: p.Source(), RPN: p.String(), Var: "x", Range: r, Points: pts}
}

func TestWriteText(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteText(&b, testReport(t)))
	want := "# 1/x  [1 x /]  x from -1 to 1 step 1\n" +
		"-1\t-1\n" +
		"0\terror: 2: 0 outside domain of / (argument 2): division by zero\n" +
		"1\t1\n"
	assert.Equal(t, want, b.String())
}

func TestWriteJSON(t *testing.T) {
	r := testReport(t)
	r.Points = append(r.Points, Point{X: 2, Y: math.Inf(1)})
	var b bytes.Buffer
	require.NoError(t, WriteJSON(&b, r))
	var got struct {
		Expr   string `json:"expr"`
		RPN    string `json:"rpn"`
		Var    string `json:"var"`
		Range  Range  `json:"range"`
		Points []struct {
			X   float64  `json:"x"`
			Y   *float64 `json:"y"`
			Err string   `json:"error"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "1/x", got.Expr)
	assert.Equal(t, "1 x /", got.RPN)
	assert.Equal(t, "x", got.Var)
	assert.Equal(t, Range{-1, 1, 1}, got.Range)
	require.Len(t, got.Points, 4)
	require.NotNil(t, got.Points[0].Y)
	assert.Equal(t, -1.0, *got.Points[0].Y)
	assert.Nil(t, got.Points[1].Y)
	assert.Contains(t, got.Points[1].Err, "division by zero")
	require.NotNil(t, got.Points[2].Y)
	assert.Equal(t, 1.0, *got.Points[2].Y)
	assert.Nil(t, got.Points[3].Y)
	assert.Equal(t, "+Inf", got.Points[3].Err)
}

func TestWriteCSV(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteCSV(&b, testReport(t)))
	rows, err := csv.NewReader(&b).ReadAll()
	require.NoError(t, err)
	want := [][]string{
		{"x", "y", "error"},
		{"-1", "-1", ""},
		{"0", "", "2: 0 outside domain of / (argument 2): division by zero"},
		{"1", "1", ""},
	}
	assert.Equal(t, want, rows)
}

func TestWriter(t *testing.T) {
	for _, f := range []string{"", "text", "json", "csv"} {
		w, err := Writer(f)
		assert.NoError(t, err, f)
		assert.NotNil(t, w, f)
	}
	w, err := Writer("xml")
	assert.Error(t, err)
	assert.Nil(t, w)
}
