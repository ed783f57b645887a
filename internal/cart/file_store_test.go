package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cart.json"))

	lines, err := store.Load()

	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "cart.json"))
	saved := []Line{
		{Product: product("1", 2500), Quantity: 3},
		{Product: product("2", 120), Quantity: 1},
	}

	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := NewFileStore(path)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load()

	assert.Error(t, err)
}
