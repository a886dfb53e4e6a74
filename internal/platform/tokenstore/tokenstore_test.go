package tokenstore_test

import (
	"path/filepath"
	"testing"

	"github.com/MichalMitros/crm-console/internal/platform/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := tokenstore.Open(path)
	require.NoError(t, err, "shouldn't return any error")

	token, err := store.Load()
	require.NoError(t, err, "shouldn't return any error")
	assert.Empty(t, token, "should be empty before first save")

	require.NoError(t, store.Save("first"), "shouldn't return any error")
	require.NoError(t, store.Save("second"), "shouldn't return any error")

	token, err = store.Load()
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, "second", token, "should return last saved token")

	require.NoError(t, store.Close(), "shouldn't return any error")

	// token survives reopening.
	store, err = tokenstore.Open(path)
	require.NoError(t, err, "shouldn't return any error")
	t.Cleanup(func() {
		_ = store.Close()
	})

	token, err = store.Load()
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, "second", token, "should load persisted token")

	require.NoError(t, store.Clear(), "shouldn't return any error")
	require.NoError(t, store.Clear(), "should clear missing token")

	token, err = store.Load()
	require.NoError(t, err, "shouldn't return any error")
	assert.Empty(t, token, "should be empty after clear")
}

func TestUnitOpenError(t *testing.T) {
	_, err := tokenstore.Open(filepath.Join(t.TempDir(), "missing", "session.db"))

	require.Error(t, err, "should fail for missing directory")
}
