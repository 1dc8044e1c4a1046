package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by point lookups, updates and deletes that match no
// stored record. Updates and deletes that return it have not changed any state
// and have not republished a snapshot.
var ErrNotFound = errors.New("storage: record not found")

// PersistenceError wraps a failed durable-storage operation. The operation's
// effects are absent: no row was changed and no snapshot was republished.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
