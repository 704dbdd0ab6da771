package catalog

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querytools/wiqlint/internal/fields"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func TestSeedAndFetchFields(t *testing.T) {
	cat := openTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Seed(ctx))

	got, err := cat.FetchFields(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(fields.Builtin()))

	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].ReferenceName < got[j].ReferenceName
	}))

	byRef := make(map[string]fields.FieldDescriptor, len(got))
	for _, d := range got {
		byRef[d.ReferenceName] = d
	}
	assert.Equal(t, fields.TypeInteger, byRef["System.Id"].Type)
	assert.Equal(t, fields.TypeDouble, byRef["Microsoft.VSTS.Scheduling.Effort"].Type)
	assert.Equal(t, "Link Type", byRef["System.Links.LinkType"].Name)
}

func TestSeedIsIdempotent(t *testing.T) {
	cat := openTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Seed(ctx))
	require.NoError(t, cat.Seed(ctx))

	got, err := cat.FetchFields(ctx)
	require.NoError(t, err)
	assert.Len(t, got, len(fields.Builtin()))
}

func TestSeedKeepsExistingRows(t *testing.T) {
	cat := openTestCatalog(t)
	ctx := context.Background()

	custom := fields.FieldDescriptor{
		Name:          "Identifier",
		ReferenceName: "System.Id",
		Type:          fields.TypeString,
	}
	require.NoError(t, cat.UpsertField(ctx, custom))
	require.NoError(t, cat.Seed(ctx))

	got, err := cat.FetchFields(ctx)
	require.NoError(t, err)
	for _, d := range got {
		if d.ReferenceName == "System.Id" {
			assert.Equal(t, custom, d)
			return
		}
	}
	t.Fatal("System.Id not found")
}

func TestUpsertFieldInsertAndUpdate(t *testing.T) {
	cat := openTestCatalog(t)
	ctx := context.Background()

	d := fields.FieldDescriptor{
		Name:          "Severity",
		ReferenceName: "Custom.Severity",
		Type:          fields.TypeInteger,
	}
	require.NoError(t, cat.UpsertField(ctx, d))

	d.Type = fields.TypeString
	d.Name = "Severity Level"
	require.NoError(t, cat.UpsertField(ctx, d))

	got, err := cat.FetchFields(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d, got[0])
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	cat, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, cat.Seed(context.Background()))
	require.NoError(t, cat.Close())

	cat, err = Open(path)
	require.NoError(t, err)
	defer cat.Close()

	got, err := cat.FetchFields(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, len(fields.Builtin()))
}
