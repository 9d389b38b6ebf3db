// Package storage mediates every filesystem interaction behind one narrow
// contract: existence and permission predicates, directory lifecycle, file
// I/O, pattern-based enumeration and content hashing.
//
// The layer is a stateless facade over the host filesystem. Nothing is
// cached between calls because the filesystem is an external mutable
// resource; exists-then-act sequences are therefore not atomic (TOCTOU),
// which is accepted rather than hidden.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filewarden/internal/logger"

	"golang.org/x/sys/unix"
)

// DefaultPattern matches every entry carrying a file extension.
const DefaultPattern = "*.*"

// Visitor is invoked once per matched path during enumeration.
// A non-nil return aborts the remaining iterations.
type Visitor func(path string) error

// Storage is the contract every filesystem interaction goes through.
// Implementations hold no state between calls and perform no retries;
// retry policy belongs to the caller.
type Storage interface {
	// Exists reports whether a filesystem entry exists at path.
	// Any metadata query failure maps to false, never an error.
	Exists(path string) bool

	// IsDirectory reports whether the existing entry at path is a directory.
	// Querying an absent path is a hard failure.
	IsDirectory(path string) (bool, error)

	// IsFile reports whether the existing entry at path is a regular file.
	// Querying an absent path is a hard failure.
	IsFile(path string) (bool, error)

	// IsReadable probes the host read permission bit for the current
	// process. Probe failures are logged and reported as false.
	IsReadable(path string) bool

	// IsWritable probes the host write permission bit for the current
	// process. Probe failures are logged and reported as false.
	IsWritable(path string) bool

	// IsFileReadable reports exists && regular file && readable.
	IsFileReadable(path string) bool

	// IsDirectoryReadable reports exists && directory && readable.
	IsDirectoryReadable(path string) bool

	// IsDirectoryWritable reports exists && directory && writable.
	IsDirectoryWritable(path string) bool

	// CreateDirectory creates path and all missing ancestors.
	// Succeeds when the directory already exists.
	CreateDirectory(path string) error

	// EnsureDirectory guarantees that path exists as a directory. When
	// recursive creation fails because an ancestor segment is occupied by a
	// file, the returned error identifies the specific blocking ancestor.
	EnsureDirectory(path string) error

	// RemoveDirectory removes path recursively. Absence is success.
	RemoveDirectory(path string) error

	// ReadFile returns the full content of path as UTF-8 text.
	// Fails when path is absent, is a directory, or access is denied.
	ReadFile(path string) (string, error)

	// ReadStream opens path for incremental reading. The caller owns the
	// returned reader and must close it on every exit path.
	ReadStream(path string) (io.ReadCloser, error)

	// WriteFile writes data to path, creating or truncating the file.
	// Missing parent directories are not created; callers must
	// EnsureDirectory the parent first.
	WriteFile(path string, data []byte) error

	// Rename moves oldPath to newPath at the host level. On a single
	// volume the move is atomic; cross-volume behaviour is host-defined.
	Rename(oldPath, newPath string) error

	// DeleteFile removes the file at path. Absence is success.
	DeleteFile(path string) error

	// ListFiles returns the immediate entry names of directory in host
	// order. Fails when directory is absent or not a directory.
	ListFiles(directory string) ([]string, error)

	// ForEachFileIn expands the glob patterns (default "*.*") under
	// directory and invokes visitor once per matched file, strictly
	// sequentially in enumeration order. Directories are excluded from the
	// match set even when a pattern would match their name. The first
	// visitor error aborts the enumeration and propagates unmodified.
	ForEachFileIn(directory string, visitor Visitor, patterns ...string) error

	// HashFile computes the SHA-256 digest of the file's decoded text,
	// rendered as lowercase hex and truncated to length characters.
	// A length beyond the digest's hex length yields the full digest.
	//
	// Hashing the decoded text rather than the raw bytes is a preserved
	// contract: for files that are not valid UTF-8 the digest does not
	// correspond to the raw byte content.
	HashFile(path string, length int) (string, error)
}

// Local implements Storage against the host filesystem.
type Local struct {
	logger logger.Logger
}

// NewLocal builds a Local storage facade narrating diagnostics to log.
func NewLocal(log logger.Logger) *Local {
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &Local{logger: log}
}

var _ Storage = (*Local)(nil)

// classify maps a host error to the closed kind set, keeping path and cause.
func classify(op, path, message string, err error) *Error {
	switch {
	case os.IsNotExist(err):
		return newError(KindNotFound, op, path, message, err)
	case os.IsPermission(err):
		return newError(KindPermissionDenied, op, path, message, err)
	default:
		return newError(KindIO, op, path, message, err)
	}
}

// Exists reports whether any entry is present at path.
func (s *Local) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory reports whether the entry at path is a directory.
func (s *Local) IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, classify("stat", path, "failed to query metadata", err)
	}
	return info.IsDir(), nil
}

// IsFile reports whether the entry at path is a regular file.
func (s *Local) IsFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, classify("stat", path, "failed to query metadata", err)
	}
	return info.Mode().IsRegular(), nil
}

// IsReadable probes the read permission bit for the current process.
func (s *Local) IsReadable(path string) bool {
	if err := unix.Access(path, unix.R_OK); err != nil {
		s.logger.Debug("path %s is not readable: %v", path, err)
		return false
	}
	return true
}

// IsWritable probes the write permission bit for the current process.
func (s *Local) IsWritable(path string) bool {
	if err := unix.Access(path, unix.W_OK); err != nil {
		s.logger.Debug("path %s is not writable: %v", path, err)
		return false
	}
	return true
}

// IsFileReadable reports whether path exists as a readable regular file.
func (s *Local) IsFileReadable(path string) bool {
	if !s.Exists(path) {
		return false
	}
	isFile, err := s.IsFile(path)
	if err != nil || !isFile {
		return false
	}
	return s.IsReadable(path)
}

// IsDirectoryReadable reports whether path exists as a readable directory.
func (s *Local) IsDirectoryReadable(path string) bool {
	if !s.Exists(path) {
		return false
	}
	isDir, err := s.IsDirectory(path)
	if err != nil || !isDir {
		return false
	}
	return s.IsReadable(path)
}

// IsDirectoryWritable reports whether path exists as a writable directory.
func (s *Local) IsDirectoryWritable(path string) bool {
	if !s.Exists(path) {
		return false
	}
	isDir, err := s.IsDirectory(path)
	if err != nil || !isDir {
		return false
	}
	return s.IsWritable(path)
}

// CreateDirectory creates path and all missing ancestor segments.
func (s *Local) CreateDirectory(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return classify("mkdir", path, "failed to create directory", err)
	}
	return nil
}

// EnsureDirectory guarantees that path exists as a directory.
//
// The existence check and the subsequent create are two separate host
// calls; a concurrent process can still race between them (TOCTOU).
func (s *Local) EnsureDirectory(path string) error {
	if !s.Exists(path) {
		err := os.MkdirAll(path, 0o755)
		if err == nil {
			return nil
		}

		// Plain recursive creation only reports the low-level error code.
		// Walk the path from its root segment forward to localise which
		// ancestor is the obstruction.
		if blocking, found := s.findObstruction(path); found {
			s.logger.Debug("directory creation for %s blocked by file at %s", path, blocking)
			return &Error{
				Kind:    KindObstruction,
				Op:      "ensure",
				Path:    blocking,
				Message: "ancestor segment is occupied by a file, cannot create directory " + path,
				Err:     err,
			}
		}
		return classify("ensure", path, "failed to create directory", err)
	}

	isDir, err := s.IsDirectory(path)
	if err != nil {
		return err
	}
	if isDir {
		return nil
	}

	return newError(KindTypeMismatch, "ensure", path, "a file already occupies the target location", nil)
}

// findObstruction re-checks each prefix of path and returns the first one
// that exists as a non-directory entry.
func (s *Local) findObstruction(path string) (string, bool) {
	clean := filepath.Clean(path)
	segments := strings.Split(clean, string(filepath.Separator))

	prefix := ""
	for _, segment := range segments {
		if segment == "" {
			prefix = string(filepath.Separator)
			continue
		}
		prefix = filepath.Join(prefix, segment)

		info, err := os.Stat(prefix)
		if err != nil {
			// Missing or unreadable prefix: nothing further to localise.
			return "", false
		}
		if !info.IsDir() {
			return prefix, true
		}
	}
	return "", false
}

// RemoveDirectory removes path and everything beneath it. Absence is success.
func (s *Local) RemoveDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return classify("remove", path, "failed to remove directory", err)
	}
	return nil
}

// ReadFile returns the full content of path as UTF-8 text.
func (s *Local) ReadFile(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", newError(KindTypeMismatch, "read", path, "path is a directory, not a file", nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify("read", path, "failed to read file", err)
	}
	return string(data), nil
}

// ReadStream opens path for forward-only incremental reading.
func (s *Local) ReadStream(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, classify("open", path, "failed to open file for reading", err)
	}
	return file, nil
}

// WriteFile writes data to path, creating or truncating the file.
func (s *Local) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return classify("write", path, "failed to write file", err)
	}
	return nil
}

// Rename moves oldPath to newPath at the host level.
func (s *Local) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return classify("rename", oldPath, "failed to rename to "+newPath, err)
	}
	return nil
}

// DeleteFile removes the file at path. Absence is success.
func (s *Local) DeleteFile(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return classify("delete", path, "failed to delete file", err)
}

// ListFiles returns the immediate entry names of directory in host order.
func (s *Local) ListFiles(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if notDir(err) {
			return nil, newError(KindTypeMismatch, "list", directory, "path is not a directory", err)
		}
		return nil, classify("list", directory, "failed to list directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// ForEachFileIn expands patterns under directory and visits each matched
// file sequentially, awaiting each visitor before starting the next.
func (s *Local) ForEachFileIn(directory string, visitor Visitor, patterns ...string) error {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	seen := make(map[string]struct{})
	var matched []string

	for _, pattern := range patterns {
		expansion, err := filepath.Glob(filepath.Join(directory, pattern))
		if err != nil {
			return &Error{
				Kind:    KindPatternExpansion,
				Op:      "enumerate",
				Path:    directory,
				Pattern: pattern,
				Message: "failed to expand pattern",
				Err:     err,
			}
		}

		for _, match := range expansion {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}

			info, err := os.Stat(match)
			if err != nil {
				// Entry vanished between expansion and stat.
				s.logger.Debug("skipping %s: %v", match, err)
				continue
			}
			if info.IsDir() {
				continue
			}
			matched = append(matched, match)
		}
	}

	s.logger.Debug("enumerating %d file(s) in %s", len(matched), directory)

	for _, path := range matched {
		if err := visitor(path); err != nil {
			return err
		}
	}
	return nil
}

// HashFile returns the truncated lowercase hex SHA-256 digest of the
// file's decoded text content.
func (s *Local) HashFile(path string, length int) (string, error) {
	text, err := s.ReadFile(path)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(sum[:])
	if length > 0 && length < len(digest) {
		return digest[:length], nil
	}
	return digest, nil
}

func notDir(err error) bool {
	return errors.Is(err, unix.ENOTDIR)
}
