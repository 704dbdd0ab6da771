package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/querytools/wiqlint/internal/fields"
	"github.com/querytools/wiqlint/internal/semantic"
	"github.com/querytools/wiqlint/internal/vartab"
	"github.com/querytools/wiqlint/internal/wiql"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when the produced diagnostics match the expectations.
	Pass bool

	// Diagnostics are the validator's actual output, in order.
	Diagnostics []semantic.Diagnostic

	// Errors lists expectation mismatches. Empty when Pass is true.
	Errors []string
}

// AddError records a mismatch and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario: build the field lookup and variable table, parse
// the query, validate it, and compare diagnostics against the expectations
// in order.
func Run(s *Scenario) (*Result, error) {
	lookup, err := buildLookup(s)
	if err != nil {
		return nil, err
	}
	vars, err := buildVariables(s)
	if err != nil {
		return nil, err
	}

	parse := wiql.Parse(s.Query)
	if len(parse.Errors) > 0 {
		return nil, fmt.Errorf("scenario %s: query has syntax errors: %s",
			s.Name, parse.Errors[0].Message)
	}

	result := &Result{
		Pass:        true,
		Diagnostics: semantic.Check(parse, lookup, vars),
	}
	compare(result, s.Diagnostics)
	return result, nil
}

func buildLookup(s *Scenario) (fields.Lookup, error) {
	if len(s.Fields) == 0 {
		return fields.BuildLookup(fields.Builtin()), nil
	}
	descriptors := make([]fields.FieldDescriptor, 0, len(s.Fields))
	for _, decl := range s.Fields {
		ft, ok := fields.ParseFieldType(decl.Type)
		if !ok {
			return nil, fmt.Errorf("scenario %s: field %s: unknown type %q",
				s.Name, decl.Reference, decl.Type)
		}
		descriptors = append(descriptors, fields.FieldDescriptor{
			Name:          decl.Name,
			ReferenceName: decl.Reference,
			Type:          ft,
		})
	}
	return fields.BuildLookup(descriptors), nil
}

func buildVariables(s *Scenario) (*vartab.Table, error) {
	if len(s.Variables) == 0 {
		return vartab.Default(), nil
	}
	// Map iteration order is not stable; sort names so the table's
	// insertion order is deterministic across runs.
	names := make([]string, 0, len(s.Variables))
	for name := range s.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]vartab.Entry, 0, len(names))
	for _, name := range names {
		ft, ok := fields.ParseFieldType(s.Variables[name])
		if !ok {
			return nil, fmt.Errorf("scenario %s: variable %s: unknown type %q",
				s.Name, name, s.Variables[name])
		}
		entries = append(entries, vartab.Entry{Name: name, Type: ft})
	}
	return vartab.New(entries...), nil
}

func compare(result *Result, expected []ExpectedDiagnostic) {
	actual := result.Diagnostics
	if len(actual) != len(expected) {
		result.AddError("expected %d diagnostic(s), got %d: %s",
			len(expected), len(actual), renderMessages(actual))
		return
	}
	for i, want := range expected {
		got := actual[i]
		if got.Message != want.Message {
			result.AddError("diagnostic %d: expected message %q, got %q",
				i, want.Message, got.Message)
		}
		if (want.Start != 0 || want.End != 0) &&
			(got.Span.Start != want.Start || got.Span.End != want.End) {
			result.AddError("diagnostic %d: expected span %d-%d, got %d-%d",
				i, want.Start, want.End, got.Span.Start, got.Span.End)
		}
	}
}

func renderMessages(diags []semantic.Diagnostic) string {
	if len(diags) == 0 {
		return "(none)"
	}
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return strings.Join(msgs, "; ")
}
