package sqlstore

import (
	"errors"
	"fmt"
)

// ErrConflict matches a StorageError caused by a unique-key violation.
var ErrConflict = errors.New("unique constraint conflict")

// StorageError wraps a failure reported by the SQL engine.
type StorageError struct {
	Op    string
	Table string
	Err   error

	conflict bool
}

func (e *StorageError) Error() string {
	if e.conflict {
		return fmt.Sprintf("sqlstore %s %s: %v: %v", e.Op, e.Table, ErrConflict, e.Err)
	}
	return fmt.Sprintf("sqlstore %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrConflict for unique-key violations.
func (e *StorageError) Is(target error) bool {
	return target == ErrConflict && e.conflict
}

// Conflict reports whether the failure was a unique-key violation.
func (e *StorageError) Conflict() bool { return e.conflict }

// IsConflict reports whether err carries ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
