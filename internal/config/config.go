// Package config loads rpncalc run configuration from YAML or JSON files.
//
// A configuration file looks like:
//
//	vars:
//	  a: 2
//	  b: 0.5
//	sweep:
//	  var: x
//	  start: -10
//	  end: 10
//	  step: 0.25
//	format: csv
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/sweep"
)

// Config is the configuration of an rpncalc run.
type Config struct {
	// Vars are variable bindings available to every expression.
	Vars map[string]float64 `json:"vars" yaml:"vars"`
	// Sweep, if set, evaluates each expression across a range instead of
	// once.
	Sweep *Sweep `json:"sweep" yaml:"sweep"`
	// Format is the sweep output format: text, json, or csv.
	Format string `json:"format" yaml:"format"`
}

// Sweep names the swept variable and its range.
type Sweep struct {
	Var         string `json:"var" yaml:"var"`
	sweep.Range `json:",inline" yaml:",inline"`
}

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return c, c.Validate()
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return c, c.Validate()
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch c.Format {
	case "", "text", "json", "csv":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Sweep != nil {
		if c.Sweep.Var == "" {
			return fmt.Errorf("sweep: missing var")
		}
		if err := c.Sweep.Validate(); err != nil {
			return fmt.Errorf("sweep %s: %w", c.Sweep.Var, err)
		}
	}
	return nil
}

// ParseSweep parses a sweep given as "name=start:end:step".
func ParseSweep(s string) (Sweep, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok {
		return Sweep{}, fmt.Errorf(`sweep must be "name=start:end:step", not %q`, s)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return Sweep{}, fmt.Errorf(`sweep must be "name=start:end:step", not %q`, s)
	}
	var v [3]float64
	for i, p := range parts {
		x, err := parseFloat(p)
		if err != nil {
			return Sweep{}, fmt.Errorf("sweep %q: %w", s, err)
		}
		v[i] = x
	}
	sw := Sweep{Var: strings.TrimSpace(name), Range: sweep.Range{Start: v[0], End: v[1], Step: v[2]}}
	if sw.Var == "" {
		return Sweep{}, fmt.Errorf("sweep %q: missing variable name", s)
	}
	if err := sw.Validate(); err != nil {
		return Sweep{}, fmt.Errorf("sweep %q: %w", s, err)
	}
	return sw, nil
}

// parseFloat evaluates a constant expression, so that e.g. "-2*3" is
// accepted where a number is expected.
func parseFloat(s string) (float64, error) {
	return rpn.EvalString(s, nil)
}

// ParseVar parses a variable definition given as "name=value". The value may
// be any expression without variables.
func ParseVar(s string) (string, float64, error) {
	name, val, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	v, err := parseFloat(val)
	if err != nil {
		return "", 0, fmt.Errorf("setting %s: %w", name, err)
	}
	return name, v, nil
}
