package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldTypeRoundTrip(t *testing.T) {
	for _, ft := range AllFieldTypes {
		parsed, ok := ParseFieldType(ft.ConfigName())
		require.True(t, ok, "field type %s", ft)
		assert.Equal(t, ft, parsed)
	}
}

func TestParseFieldTypeNormalization(t *testing.T) {
	parsed, ok := ParseFieldType("  DateTime ")
	require.True(t, ok)
	assert.Equal(t, TypeDateTime, parsed)

	_, ok = ParseFieldType("frobnicate")
	assert.False(t, ok)
	_, ok = ParseFieldType("")
	assert.False(t, ok)
}

func TestFieldTypeDisplayNames(t *testing.T) {
	assert.Equal(t, "TreePath", TypeTreePath.String())
	assert.Equal(t, "PlainText", TypePlainText.String())
	assert.Equal(t, "unknown", FieldType(99).String())
}
