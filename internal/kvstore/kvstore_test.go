package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeConformance runs the same behavioral checks against any Store
// implementation.
func storeConformance(t *testing.T, store Store) {
	t.Helper()

	// Missing key
	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// Set and get
	require.NoError(t, store.Set("k1", "v1"))
	value, ok, err := store.Get("k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", value)

	// Overwrite
	require.NoError(t, store.Set("k1", "v2"))
	value, _, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	// Keys
	require.NoError(t, store.Set("k2", "x"))
	keys, err := store.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"k1", "k2"}, keys)

	// Delete, including a key that is already gone
	require.NoError(t, store.Delete("k1"))
	_, ok, err = store.Get("k1")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Delete("k1"))

	// Clear
	require.NoError(t, store.Clear())
	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryStore(t *testing.T) {
	storeConformance(t, NewMemory())
}

func TestGormStore(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	storeConformance(t, store)
}

func TestGormStorePersistsAcrossHandles(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/store.db"

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("theme", "dark"))

	reopened, err := Open(path)
	require.NoError(t, err)
	value, ok, err := reopened.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", value)
}
