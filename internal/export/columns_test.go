package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllIsOrderedAndUnique(t *testing.T) {
	all := DefaultRegistry().All()
	require.NotEmpty(t, all)
	assert.Equal(t, "manage_no", all[0].ID)
	assert.Equal(t, "お客様管理番号", all[0].Title)

	seen := map[string]bool{}
	for _, c := range all {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Title)
	}

	// callers get a copy
	all[0].Title = "changed"
	assert.Equal(t, "お客様管理番号", DefaultRegistry().All()[0].Title)
}

func TestRegistry_ResolveKeepsRegistryOrder(t *testing.T) {
	reg := DefaultRegistry()

	cols, err := reg.Resolve([]string{"dest_name", "manage_no"})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "manage_no", cols[0].ID)
	assert.Equal(t, "dest_name", cols[1].ID)

	cols, err = reg.Resolve([]string{"note", "note", " ", "slip_type"})
	require.NoError(t, err)
	assert.Equal(t, []string{"slip_type", "note"}, []string{cols[0].ID, cols[1].ID})
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	_, err := DefaultRegistry().Resolve([]string{"manage_no", "bogus", "also_bogus"})
	require.Error(t, err)

	var uc *UnknownColumnError
	require.ErrorAs(t, err, &uc)
	assert.Equal(t, []string{"bogus", "also_bogus"}, uc.IDs)
	assert.Equal(t, "UNKNOWN_COLUMN", uc.Code())
}

func TestRegistry_ResolveEmpty(t *testing.T) {
	cols, err := DefaultRegistry().Resolve([]string{})
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestNewRegistry_PanicsOnDuplicateID(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry([]ColumnDefinition{{ID: "a"}, {ID: "a"}})
	})
}
