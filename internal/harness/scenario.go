// Package harness runs analyzer conformance scenarios: a query, a field
// set, and the diagnostics the validator must produce for it. Scenarios live
// in YAML files; golden tests render the diagnostics and compare against
// fixtures.
package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance case for the semantic validator.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files use it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the filter-expression source to analyze.
	Query string `yaml:"query"`

	// Fields declares the field metadata for this scenario. When empty,
	// the built-in field set is used.
	Fields []FieldDecl `yaml:"fields,omitempty"`

	// Variables declares the variable table. When empty, the default
	// table is used.
	Variables map[string]string `yaml:"variables,omitempty"`

	// Diagnostics lists the expected diagnostics, in order.
	Diagnostics []ExpectedDiagnostic `yaml:"diagnostics"`
}

// FieldDecl declares one field in a scenario.
type FieldDecl struct {
	Name      string `yaml:"name"`
	Reference string `yaml:"reference"`
	Type      string `yaml:"type"`
}

// ExpectedDiagnostic is one expected validator message. Start/End are
// optional; when both are zero only the message is compared.
type ExpectedDiagnostic struct {
	Message string `yaml:"message"`
	Start   int    `yaml:"start,omitempty"`
	End     int    `yaml:"end,omitempty"`
}

// LoadScenario reads a single scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Query == "" {
		return nil, fmt.Errorf("scenario %s: query is required", path)
	}
	return &s, nil
}

// LoadDir loads every .yaml scenario in a directory, sorted by file name so
// runs are deterministic.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
