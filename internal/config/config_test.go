package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/sweep"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromFileYAML(t *testing.T) {
	path := writeFile(t, "rpncalc.yaml", `
vars:
  a: 2
  b: 0.5
sweep:
  var: x
  start: -10
  end: 10
  step: 0.25
format: csv
`)
	c, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 2, "b": 0.5}, c.Vars)
	require.NotNil(t, c.Sweep)
	assert.Equal(t, "x", c.Sweep.Var)
	assert.Equal(t, sweep.Range{Start: -10, End: 10, Step: 0.25}, c.Sweep.Range)
	assert.Equal(t, "csv", c.Format)
}

func TestFromFileJSON(t *testing.T) {
	path := writeFile(t, "rpncalc.json", `{
  "vars": {"x": 3},
  "sweep": {"var": "t", "start": 0, "end": 1, "step": 0.1},
  "format": "json"
}`)
	c, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"x": 3}, c.Vars)
	require.NotNil(t, c.Sweep)
	assert.Equal(t, "t", c.Sweep.Var)
	assert.Equal(t, sweep.Range{Start: 0, End: 1, Step: 0.1}, c.Sweep.Range)
	assert.Equal(t, "json", c.Format)
}

func TestFromFileErrors(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"ext", "rpncalc.toml", "vars = {}"},
		{"yaml", "bad.yml", "vars: [1, 2"},
		{"json", "bad.json", "{"},
		{"format", "fmt.yaml", "format: xml"},
		{"sweep-var", "novar.yaml", "sweep: {start: 0, end: 1, step: 1}"},
		{"sweep-range", "range.json", `{"sweep": {"var": "x", "start": 1, "end": 0, "step": 1}}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := FromFile(writeFile(t, c.file, c.content))
			assert.Error(t, err)
		})
	}
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromYAMLEmpty(t *testing.T) {
	c, err := FromYAML(nil)
	require.NoError(t, err)
	assert.Nil(t, c.Sweep)
	assert.Empty(t, c.Vars)
	assert.Empty(t, c.Format)
}

func TestParseSweep(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Sweep
	}{
		{"plain", "x=0:1:0.5", Sweep{Var: "x", Range: sweep.Range{Start: 0, End: 1, Step: 0.5}}},
		{"spaced", " t = -1 : 1 : 0.25", Sweep{Var: "t", Range: sweep.Range{Start: -1, End: 1, Step: 0.25}}},
		{"exprs", "x=-2*2:2^2:1/4", Sweep{Var: "x", Range: sweep.Range{Start: -4, End: 4, Step: 0.25}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseSweep(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseSweepErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no-eq", "0:1:1"},
		{"parts", "x=0:1"},
		{"no-name", "=0:1:1"},
		{"bad-num", "x=0:y:1"},
		{"step", "x=0:1:0"},
		{"order", "x=1:0:1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseSweep(c.in)
			assert.Error(t, err)
		})
	}
	_, err := ParseSweep("x=0:y:1")
	assert.ErrorIs(t, err, rpn.ErrUnknownVariable)
	_, err = ParseSweep("x=0:1:0")
	assert.ErrorIs(t, err, sweep.ErrRange)
}

func TestParseVar(t *testing.T) {
	name, v, err := ParseVar("x=3")
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Equal(t, 3.0, v)

	name, v, err = ParseVar(" y = sqrt(16)/-2 ")
	require.NoError(t, err)
	assert.Equal(t, "y", name)
	assert.Equal(t, -2.0, v)

	_, _, err = ParseVar("x")
	assert.Error(t, err)
	_, _, err = ParseVar("=1")
	assert.Error(t, err)
	_, _, err = ParseVar("x=1/0")
	assert.ErrorIs(t, err, rpn.ErrDivisionByZero)
}
