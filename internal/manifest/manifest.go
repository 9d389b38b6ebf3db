// Package manifest persists recorded file checksums for a workspace.
package manifest

import (
	"context"
	"time"
)

// Entry is one recorded checksum: a workspace-relative path, its truncated
// content hash and the size observed when it was scanned.
type Entry struct {
	Path      string
	Hash      string
	Size      int64
	ScannedAt time.Time
}

// Repository describes the persistence contract for manifest entries.
type Repository interface {
	// Bootstrap prepares the backing store (create schema, open handles).
	Bootstrap(ctx context.Context) error

	// Upsert records or replaces the entry for its path.
	Upsert(ctx context.Context, entry Entry) error

	// Get returns the entry recorded for path, or nil when absent.
	Get(ctx context.Context, path string) (*Entry, error)

	// List returns every recorded entry ordered by path.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes the entry for path. Absence is success.
	Delete(ctx context.Context, path string) error

	// Prune removes every entry whose path is not in keep and reports how
	// many rows were removed.
	Prune(ctx context.Context, keep []string) (int, error)

	// Close releases the underlying store.
	Close() error
}
