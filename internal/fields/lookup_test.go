package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querytools/wiqlint/internal/wiql"
)

func TestLookupByDisplayAndReferenceName(t *testing.T) {
	lookup := BuildLookup(Builtin())

	byRef, ok := lookup.Get("System.Id")
	require.True(t, ok)
	assert.Equal(t, TypeInteger, byRef.Type)

	byName, ok := lookup.Get("ID")
	require.True(t, ok)
	assert.Equal(t, byRef, byName)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	lookup := BuildLookup(Builtin())

	for _, name := range []string{"assigned to", "ASSIGNED TO", "Assigned To", "system.assignedto"} {
		info, ok := lookup.Get(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, TypeString, info.Type)
	}

	_, ok := lookup.Get("No Such Field")
	assert.False(t, ok)
}

func TestLookupLinkTypeEntry(t *testing.T) {
	lookup := BuildLookup(Builtin())

	info, ok := lookup.Get("System.Links.LinkType")
	require.True(t, ok)
	assert.Equal(t, TypeString, info.Type)
	assert.Equal(t, []wiql.OperatorKind{wiql.OpEquals, wiql.OpNotEquals}, info.LiteralOps)
	assert.Empty(t, info.FieldOps)
	assert.Empty(t, info.GroupOps)
}

func TestLookupCollisionLastWriteWins(t *testing.T) {
	lookup := BuildLookup([]FieldDescriptor{
		{Name: "Priority", ReferenceName: "System.Priority", Type: TypeInteger},
		{Name: "Priority", ReferenceName: "Custom.Priority", Type: TypeString},
	})

	// The shared display name resolves to the later descriptor; the
	// reference names stay distinct.
	info, ok := lookup.Get("Priority")
	require.True(t, ok)
	assert.Equal(t, TypeString, info.Type)

	info, ok = lookup.Get("System.Priority")
	require.True(t, ok)
	assert.Equal(t, TypeInteger, info.Type)
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, FoldName("System.Title"), FoldName("SYSTEM.title"))
	assert.NotEqual(t, FoldName("System.Title"), FoldName("System.State"))
}
