package config

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querytools/wiqlint/internal/fields"
)

func fromSource(t *testing.T, src string) (*Config, error) {
	t.Helper()
	value := cuecontext.New().CompileString(src)
	require.NoError(t, value.Err())
	return FromValue(value)
}

func TestFromValueVariables(t *testing.T) {
	cfg, err := fromSource(t, `
variables: {
	"@me":     "string"
	"@sprint": "treepath"
}
`)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Variables.Len())

	ft, ok := cfg.Variables.TypeOf("@me")
	require.True(t, ok)
	assert.Equal(t, fields.TypeString, ft)

	ft, ok = cfg.Variables.TypeOf("@sprint")
	require.True(t, ok)
	assert.Equal(t, fields.TypeTreePath, ft)
}

func TestFromValueEmptyVariablesGetsDefaults(t *testing.T) {
	cfg, err := fromSource(t, `fields: []`)
	require.NoError(t, err)

	_, ok := cfg.Variables.TypeOf("@today")
	assert.True(t, ok)
	assert.Equal(t, 4, cfg.Variables.Len())
}

func TestFromValueFields(t *testing.T) {
	cfg, err := fromSource(t, `
fields: [
	{name: "Severity", reference: "Custom.Severity", type: "integer"},
	{name: "Owner", reference: "Custom.Owner", type: "string"},
]
`)
	require.NoError(t, err)
	require.Len(t, cfg.Fields, 2)
	assert.Equal(t, fields.FieldDescriptor{
		Name:          "Severity",
		ReferenceName: "Custom.Severity",
		Type:          fields.TypeInteger,
	}, cfg.Fields[0])
}

func TestFromValueUnknownVariableType(t *testing.T) {
	_, err := fromSource(t, `variables: {"@x": "frobnicate"}`)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "variables.@x", loadErr.Field)
	assert.Contains(t, loadErr.Error(), "unknown field type")
}

func TestFromValueFieldMissingReference(t *testing.T) {
	_, err := fromSource(t, `fields: [{name: "Severity", type: "integer"}]`)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "fields.reference", loadErr.Field)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	src := `
variables: {
	"@release": "string"
}
fields: [
	{name: "Release", reference: "Custom.Release", type: "string"},
]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "analyzer.cue"), []byte(src), 0o644))

	cfg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Variables.Len())
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, "Custom.Release", cfg.Fields[0].ReferenceName)
}

func TestLoadDirErrors(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory not found")

	empty := t.TempDir()
	_, err = LoadDir(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CUE files found")
}
