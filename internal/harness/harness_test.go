package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "expectation mismatches: %v", result.Errors)

			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestLoadScenarioValidation(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
}

func TestRunRejectsSyntaxErrors(t *testing.T) {
	_, err := Run(&Scenario{Name: "bad", Query: "= 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax errors")
}

func TestRunRejectsUnknownFieldType(t *testing.T) {
	_, err := Run(&Scenario{
		Name:   "bad_type",
		Query:  "[X] = 1",
		Fields: []FieldDecl{{Name: "X", Reference: "Custom.X", Type: "frobnicate"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestCompareReportsMismatches(t *testing.T) {
	s := &Scenario{
		Name:  "mismatch",
		Query: "[Effort] = 'abc'",
		Diagnostics: []ExpectedDiagnostic{
			{Message: "some other message"},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "expected message")
}

func TestCompareCountMismatch(t *testing.T) {
	s := &Scenario{Name: "count", Query: "[Effort] = 'abc'"}
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected 0 diagnostic(s), got 1")
}

func TestRenderDiagnostics(t *testing.T) {
	out := RenderDiagnostics("[Id] = 1", nil)
	assert.Equal(t, "query: [Id] = 1\ndiagnostics: none\n", string(out))
}

func TestScenarioRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	src := "name: bad\nquery: \"[Id] = 1\"\nbogus: true\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bogus") ||
		strings.Contains(err.Error(), "not found"), "got: %v", err)
}
