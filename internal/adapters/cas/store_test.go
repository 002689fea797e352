package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tape/internal/adapters/cas"
	"go.trai.ch/tape/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	record := domain.DependencyRecord{
		CacheKey: "app/main.o",
		Values:   "0123456789abcdef",
		Files: map[string]domain.FileStamp{
			"src/main.c": {Hash: "aaaa"},
		},
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, store.Put(record))

		got, err := store.Get("app/main.o")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, record, *got)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, err := store.Get("missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_PutReplaces(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.DependencyRecord{CacheKey: "k", Values: "old"}))
	require.NoError(t, store.Put(domain.DependencyRecord{CacheKey: "k", Values: "new"}))

	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Values)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestStore_GetCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(domain.DependencyRecord{CacheKey: "k"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), 0o600))

	_, err = store.Get("k")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestNewStore_ResolvesRelativeDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	store, err := cas.NewStore(domain.DefaultDependPath())
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(store.Dir()))
	assert.Equal(t, filepath.Join(".tape", "depend"), filepath.Join(filepath.Base(filepath.Dir(store.Dir())), filepath.Base(store.Dir())))
}
