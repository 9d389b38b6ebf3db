package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"filewarden/internal/logger"
	"filewarden/internal/manifest"
	"filewarden/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T) (*Scanner, string, *logger.MockLogger) {
	t.Helper()

	workspace := t.TempDir()
	log := logger.NewMockLogger()

	repo, err := manifest.OpenSQLite(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.Bootstrap(context.Background()))

	store := storage.NewLocal(log)
	return New(store, repo, log, 8), workspace, log
}

func writeWorkspaceFile(t *testing.T, workspace, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(workspace, name), []byte(content), 0o644))
}

func TestScanRecordsMatchingFiles(t *testing.T) {
	sc, workspace, _ := newTestScanner(t)
	ctx := context.Background()

	writeWorkspaceFile(t, workspace, "a.txt", "alpha")
	writeWorkspaceFile(t, workspace, "b.txt", "beta")
	writeWorkspaceFile(t, workspace, "noext", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(workspace, "sub.d"), 0o755))

	report, err := sc.Scan(ctx, workspace, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 2, report.Recorded)

	entries, err := sc.manifest.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Path)
	assert.Len(t, entries[0].Hash, 8)
	assert.Equal(t, int64(len("alpha")), entries[0].Size)
}

func TestVerifyCleanWorkspace(t *testing.T) {
	sc, workspace, _ := newTestScanner(t)
	ctx := context.Background()

	writeWorkspaceFile(t, workspace, "a.txt", "alpha")
	writeWorkspaceFile(t, workspace, "b.txt", "beta")

	_, err := sc.Scan(ctx, workspace, nil)
	require.NoError(t, err)

	report, err := sc.Verify(ctx, workspace, nil)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, report.Ok)
}

func TestVerifyClassifiesDifferences(t *testing.T) {
	sc, workspace, log := newTestScanner(t)
	ctx := context.Background()

	writeWorkspaceFile(t, workspace, "modified.txt", "original")
	writeWorkspaceFile(t, workspace, "missing.txt", "going away")

	_, err := sc.Scan(ctx, workspace, nil)
	require.NoError(t, err)

	writeWorkspaceFile(t, workspace, "modified.txt", "tampered")
	require.NoError(t, os.Remove(filepath.Join(workspace, "missing.txt")))
	writeWorkspaceFile(t, workspace, "untracked.txt", "new arrival")

	report, err := sc.Verify(ctx, workspace, nil)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, []string{"modified.txt"}, report.Modified)
	assert.Equal(t, []string{"missing.txt"}, report.Missing)
	assert.Equal(t, []string{"untracked.txt"}, report.Untracked)

	assert.True(t, log.HasEntry(logger.LevelWarn, "modified.txt"))
	assert.True(t, log.HasEntry(logger.LevelWarn, "missing.txt"))
}

func TestVerifyHonoursExplicitPatterns(t *testing.T) {
	sc, workspace, _ := newTestScanner(t)
	ctx := context.Background()

	writeWorkspaceFile(t, workspace, "code.go", "package main")
	writeWorkspaceFile(t, workspace, "notes.txt", "ignored by pattern")

	_, err := sc.Scan(ctx, workspace, []string{"*.go"})
	require.NoError(t, err)

	report, err := sc.Verify(ctx, workspace, []string{"*.go"})
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, []string{"code.go"}, report.Ok)
}

func TestPruneRemovesStaleEntries(t *testing.T) {
	sc, workspace, _ := newTestScanner(t)
	ctx := context.Background()

	writeWorkspaceFile(t, workspace, "keep.txt", "kept")
	writeWorkspaceFile(t, workspace, "gone.txt", "deleted later")

	_, err := sc.Scan(ctx, workspace, nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(workspace, "gone.txt")))

	removed, err := sc.Prune(ctx, workspace, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := sc.manifest.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.txt", entries[0].Path)
}

func TestScanPropagatesVisitorFailure(t *testing.T) {
	sc, workspace, _ := newTestScanner(t)
	ctx := context.Background()

	writeWorkspaceFile(t, workspace, "early.txt", "ok")

	// Closing the repository forces the manifest upsert inside the visitor
	// to fail, which must abort the scan.
	require.NoError(t, sc.manifest.Close())

	_, err := sc.Scan(ctx, workspace, nil)
	require.Error(t, err)
}
