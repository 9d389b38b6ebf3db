package manifest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.Bootstrap(context.Background()))
	return repo
}

func TestUpsertAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry := Entry{
		Path:      "docs/readme.md",
		Hash:      "ab12cd34",
		Size:      512,
		ScannedAt: time.Now(),
	}
	require.NoError(t, repo.Upsert(ctx, entry))

	loaded, err := repo.Get(ctx, entry.Path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, entry.Path, loaded.Path)
	assert.Equal(t, entry.Hash, loaded.Hash)
	assert.Equal(t, entry.Size, loaded.Size)

	// Upsert replaces the existing row.
	entry.Hash = "ff99ee88"
	require.NoError(t, repo.Upsert(ctx, entry))

	loaded, err = repo.Get(ctx, entry.Path)
	require.NoError(t, err)
	assert.Equal(t, "ff99ee88", loaded.Hash)
}

func TestGetAbsentReturnsNil(t *testing.T) {
	repo := newTestRepository(t)

	loaded, err := repo.Get(context.Background(), "never/recorded.txt")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestListOrdersByPath(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, path := range []string{"c.txt", "a.txt", "b.txt"} {
		require.NoError(t, repo.Upsert(ctx, Entry{Path: path, Hash: "00", ScannedAt: time.Now()}))
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.txt", entries[0].Path)
	assert.Equal(t, "b.txt", entries[1].Path)
	assert.Equal(t, "c.txt", entries[2].Path)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, Entry{Path: "x.txt", Hash: "00", ScannedAt: time.Now()}))
	require.NoError(t, repo.Delete(ctx, "x.txt"))
	require.NoError(t, repo.Delete(ctx, "x.txt"))

	loaded, err := repo.Get(ctx, "x.txt")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestPrune(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, path := range []string{"keep.txt", "stale1.txt", "stale2.txt"} {
		require.NoError(t, repo.Upsert(ctx, Entry{Path: path, Hash: "00", ScannedAt: time.Now()}))
	}

	removed, err := repo.Prune(ctx, []string{"keep.txt"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.txt", entries[0].Path)
}

func TestPruneWithEmptyKeepClearsEverything(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, Entry{Path: "only.txt", Hash: "00", ScannedAt: time.Now()}))

	removed, err := repo.Prune(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
