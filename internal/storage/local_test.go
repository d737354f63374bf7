package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalFixture(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	store := newLocalFixture(t)
	ctx := context.Background()
	path := "screenshots/sub-1/evidence.png"

	require.NoError(t, store.Save(ctx, path, strings.NewReader("image-bytes"), "image/png"))

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	file, err := store.Open(ctx, path)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, "image-bytes", string(content))

	require.NoError(t, store.Delete(ctx, path))
	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingFileIsNoError(t *testing.T) {
	store := newLocalFixture(t)
	assert.NoError(t, store.Delete(context.Background(), "never/saved.png"))
}

func TestLocalStorage_URL(t *testing.T) {
	withBase, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.test"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/a/b.png", withBase.URL("a/b.png"))

	withoutBase := newLocalFixture(t)
	assert.Equal(t, "/files/a/b.png", withoutBase.URL("a/b.png"))
}

func TestNewStorage_DefaultsToLocal(t *testing.T) {
	store, err := NewStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	_, ok := store.(*LocalStorage)
	assert.True(t, ok)
}
