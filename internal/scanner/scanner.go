// Package scanner walks a workspace through the storage facade, records
// content hashes in the manifest and verifies the workspace against it.
package scanner

import (
	"context"
	"path/filepath"
	"time"

	"filewarden/internal/logger"
	"filewarden/internal/manifest"
	"filewarden/internal/storage"

	"github.com/pkg/errors"
)

// Scanner coordinates enumeration, hashing and manifest bookkeeping.
//
// Enumeration is strictly sequential: the manifest handle is shared by
// every visitor invocation, so concurrent visits would race on it.
type Scanner struct {
	storage    storage.Storage
	manifest   manifest.Repository
	logger     logger.Logger
	hashLength int
}

// New creates a Scanner recording hashes truncated to hashLength characters.
func New(store storage.Storage, repo manifest.Repository, log logger.Logger, hashLength int) *Scanner {
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &Scanner{
		storage:    store,
		manifest:   repo,
		logger:     log,
		hashLength: hashLength,
	}
}

// Report summarises the outcome of a scan or verification pass.
type Report struct {
	Scanned   int
	Recorded  int
	Ok        []string
	Modified  []string
	Missing   []string
	Untracked []string
}

// Clean reports whether a verification pass found no differences.
func (r *Report) Clean() bool {
	return len(r.Modified) == 0 && len(r.Missing) == 0 && len(r.Untracked) == 0
}

// Scan enumerates dir with the given patterns, hashes every matched file
// and records the result in the manifest.
func (s *Scanner) Scan(ctx context.Context, dir string, patterns []string) (*Report, error) {
	report := &Report{}

	err := s.storage.ForEachFileIn(dir, func(path string) error {
		report.Scanned++

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return errors.Wrapf(err, "failed to relativise path: %s", path)
		}

		hash, err := s.storage.HashFile(path, s.hashLength)
		if err != nil {
			return err
		}

		content, err := s.storage.ReadFile(path)
		if err != nil {
			return err
		}

		entry := manifest.Entry{
			Path:      rel,
			Hash:      hash,
			Size:      int64(len(content)),
			ScannedAt: time.Now(),
		}
		if err := s.manifest.Upsert(ctx, entry); err != nil {
			return err
		}

		s.logger.Debug("recorded %s (%s)", rel, hash)
		report.Recorded++
		return nil
	}, patterns...)
	if err != nil {
		return nil, err
	}

	s.logger.Info("scan complete: %d file(s) recorded in %s", report.Recorded, dir)
	return report, nil
}

// Verify re-hashes dir and classifies every path as ok, modified, missing
// or untracked relative to the manifest.
func (s *Scanner) Verify(ctx context.Context, dir string, patterns []string) (*Report, error) {
	recorded, err := s.manifest.List(ctx)
	if err != nil {
		return nil, err
	}

	current := make(map[string]string)
	report := &Report{Recorded: len(recorded)}

	err = s.storage.ForEachFileIn(dir, func(path string) error {
		report.Scanned++

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return errors.Wrapf(err, "failed to relativise path: %s", path)
		}

		hash, err := s.storage.HashFile(path, s.hashLength)
		if err != nil {
			return err
		}
		current[rel] = hash
		return nil
	}, patterns...)
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]struct{}, len(recorded))
	for _, entry := range recorded {
		tracked[entry.Path] = struct{}{}

		hash, present := current[entry.Path]
		switch {
		case !present:
			s.logger.Warn("missing: %s", entry.Path)
			report.Missing = append(report.Missing, entry.Path)
		case hash != entry.Hash:
			s.logger.Warn("modified: %s (recorded %s, current %s)", entry.Path, entry.Hash, hash)
			report.Modified = append(report.Modified, entry.Path)
		default:
			report.Ok = append(report.Ok, entry.Path)
		}
	}

	for rel := range current {
		if _, present := tracked[rel]; !present {
			report.Untracked = append(report.Untracked, rel)
		}
	}

	s.logger.Info("verify complete: %d ok, %d modified, %d missing, %d untracked",
		len(report.Ok), len(report.Modified), len(report.Missing), len(report.Untracked))
	return report, nil
}

// Prune drops manifest entries whose files are no longer present in dir.
func (s *Scanner) Prune(ctx context.Context, dir string, patterns []string) (int, error) {
	var keep []string

	err := s.storage.ForEachFileIn(dir, func(path string) error {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return errors.Wrapf(err, "failed to relativise path: %s", path)
		}
		keep = append(keep, rel)
		return nil
	}, patterns...)
	if err != nil {
		return 0, err
	}

	removed, err := s.manifest.Prune(ctx, keep)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("pruned %d stale manifest entr(ies)", removed)
	}
	return removed, nil
}
