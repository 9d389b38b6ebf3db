package manifest

import (
	"context"
	"database/sql"
	"strings"
	"time"

	apperrors "filewarden/internal/errors"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	path       TEXT PRIMARY KEY,
	hash       TEXT NOT NULL,
	size       INTEGER NOT NULL,
	scanned_at INTEGER NOT NULL
);
`

// SQLiteRepository persists manifest entries in a SQLite database file.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the manifest database at path.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.ManifestError(
			apperrors.CodeManifestGeneric,
			"failed to open manifest database",
			err,
		).WithField("path", path)
	}
	return NewSQLiteRepository(db), nil
}

// NewSQLiteRepository wires a SQLite-backed implementation of Repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Bootstrap creates the schema and prepares the store for use.
func (r *SQLiteRepository) Bootstrap(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return wrapManifestError("manifest.Bootstrap", "failed to create manifest schema", err)
	}
	return nil
}

// Upsert records or replaces the entry for its path.
func (r *SQLiteRepository) Upsert(ctx context.Context, entry Entry) error {
	const stmt = `
INSERT INTO entries (path, hash, size, scanned_at) VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
	hash = excluded.hash,
	size = excluded.size,
	scanned_at = excluded.scanned_at
`
	_, err := r.db.ExecContext(ctx, stmt, entry.Path, entry.Hash, entry.Size, entry.ScannedAt.Unix())
	if err != nil {
		return wrapManifestError("manifest.Upsert", "failed to record entry", err).
			WithField("path", entry.Path)
	}
	return nil
}

// Get returns the entry recorded for path, or nil when absent.
func (r *SQLiteRepository) Get(ctx context.Context, path string) (*Entry, error) {
	const stmt = `SELECT path, hash, size, scanned_at FROM entries WHERE path = ?`

	var (
		entry   Entry
		scanned int64
	)
	err := r.db.QueryRowContext(ctx, stmt, path).Scan(&entry.Path, &entry.Hash, &entry.Size, &scanned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapManifestError("manifest.Get", "failed to load entry", err).
			WithField("path", path)
	}

	entry.ScannedAt = time.Unix(scanned, 0)
	return &entry, nil
}

// List returns every recorded entry ordered by path.
func (r *SQLiteRepository) List(ctx context.Context) ([]Entry, error) {
	const stmt = `SELECT path, hash, size, scanned_at FROM entries ORDER BY path`

	rows, err := r.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, wrapManifestError("manifest.List", "failed to list entries", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			scanned int64
		)
		if err := rows.Scan(&entry.Path, &entry.Hash, &entry.Size, &scanned); err != nil {
			return nil, wrapManifestError("manifest.List", "failed to scan entry row", err)
		}
		entry.ScannedAt = time.Unix(scanned, 0)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapManifestError("manifest.List", "failed to iterate entries", err)
	}
	return entries, nil
}

// Delete removes the entry for path. Absence is success.
func (r *SQLiteRepository) Delete(ctx context.Context, path string) error {
	const stmt = `DELETE FROM entries WHERE path = ?`
	if _, err := r.db.ExecContext(ctx, stmt, path); err != nil {
		return wrapManifestError("manifest.Delete", "failed to delete entry", err).
			WithField("path", path)
	}
	return nil
}

// Prune removes every entry whose path is not in keep.
func (r *SQLiteRepository) Prune(ctx context.Context, keep []string) (int, error) {
	if len(keep) == 0 {
		result, err := r.db.ExecContext(ctx, `DELETE FROM entries`)
		if err != nil {
			return 0, wrapManifestError("manifest.Prune", "failed to prune entries", err)
		}
		removed, _ := result.RowsAffected()
		return int(removed), nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keep)), ", ")
	stmt := `DELETE FROM entries WHERE path NOT IN (` + placeholders + `)`

	args := make([]interface{}, len(keep))
	for i, path := range keep {
		args[i] = path
	}

	result, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, wrapManifestError("manifest.Prune", "failed to prune entries", err)
	}
	removed, _ := result.RowsAffected()
	return int(removed), nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func wrapManifestError(operation, message string, err error) *apperrors.AppError {
	return apperrors.ManifestError(apperrors.CodeManifestGeneric, message, err).
		WithModule("manifest.sqlite").
		WithOperation(operation)
}

var _ Repository = (*SQLiteRepository)(nil)
