package storage

import (
	"errors"
	"fmt"
)

// Kind classifies a storage failure into one of a closed set of variants.
// Handling sites switch on the kind instead of matching error types.
type Kind int

const (
	// KindIO covers hard failures that carry only a wrapped host cause.
	KindIO Kind = iota
	// KindNotFound marks operations that require existence on an absent path.
	KindNotFound
	// KindTypeMismatch marks a path that exists as the wrong entry kind.
	KindTypeMismatch
	// KindPermissionDenied marks a host permission rejection.
	KindPermissionDenied
	// KindObstruction marks an ancestor segment occupied by a file,
	// blocking directory creation beneath it.
	KindObstruction
	// KindPatternExpansion marks a glob expansion failure during enumeration.
	KindPatternExpansion
)

// String renders the textual representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNotFound:
		return "not-found"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindPermissionDenied:
		return "permission-denied"
	case KindObstruction:
		return "obstruction"
	case KindPatternExpansion:
		return "pattern-expansion"
	default:
		return "unknown"
	}
}

// Error is the single failure type raised by the storage layer.
// It carries the failing operation, the path(s) involved and the original
// host cause. Visitor callback failures are never wrapped into an Error;
// they propagate to the caller unmodified.
type Error struct {
	Kind    Kind
	Op      string
	Path    string
	Pattern string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}

	switch {
	case e.Pattern != "" && e.Err != nil:
		return fmt.Sprintf("storage: %s %s (pattern %q): %s: %v", e.Op, e.Path, e.Pattern, msg, e.Err)
	case e.Pattern != "":
		return fmt.Sprintf("storage: %s %s (pattern %q): %s", e.Op, e.Path, e.Pattern, msg)
	case e.Err != nil:
		return fmt.Sprintf("storage: %s %s: %s: %v", e.Op, e.Path, msg, e.Err)
	default:
		return fmt.Sprintf("storage: %s %s: %s", e.Op, e.Path, msg)
	}
}

// Unwrap exposes the wrapped host cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// As unwraps an error chain to a storage Error when possible.
func As(err error) (*Error, bool) {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}

// IsKind reports whether err is a storage Error with the given kind.
func IsKind(err error, kind Kind) bool {
	storeErr, ok := As(err)
	return ok && storeErr.Kind == kind
}

func newError(kind Kind, op, path, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}
