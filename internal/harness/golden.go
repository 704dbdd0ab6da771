package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/querytools/wiqlint/internal/semantic"
)

// RenderDiagnostics produces the deterministic text listing used for golden
// comparison: the query, then one "start-end: message" line per diagnostic.
func RenderDiagnostics(query string, diags []semantic.Diagnostic) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "query: %s\n", query)
	if len(diags) == 0 {
		buf.WriteString("diagnostics: none\n")
		return buf.Bytes()
	}
	fmt.Fprintf(&buf, "diagnostics: %d\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(&buf, "%d-%d: %s\n", d.Span.Start, d.Span.End, d.Message)
	}
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares the rendered diagnostics
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, RenderDiagnostics(scenario.Query, result.Diagnostics))
	return nil
}
