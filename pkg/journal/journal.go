package journal

import (
	"context"
	"fmt"
	"time"
)

// Entry status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// defaultQueryLimit bounds List results when the query does not.
const defaultQueryLimit = 100

// Entry is one recorded import session.
type Entry struct {
	// ID is assigned on record when empty.
	ID string `json:"id"`

	// Source identifies what was imported (file path, or repo URL plus
	// in-repo path for git sources).
	Source string `json:"source"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration covers the whole run, parse through assembly.
	Duration time.Duration `json:"duration"`

	// Status is StatusSuccess or StatusError.
	Status string `json:"status"`

	// Error holds the failure message for error entries.
	Error string `json:"error,omitempty"`

	// Nodes is the number of document nodes parsed.
	Nodes int `json:"nodes"`

	// Solids, Groups, and Lights count the objects created.
	Solids int `json:"solids"`
	Groups int `json:"groups"`
	Lights int `json:"lights"`

	// Pruned counts group placeholders destroyed after assembly.
	Pruned int `json:"pruned"`

	// Skipped counts entities dropped by per-entity failures.
	Skipped int `json:"skipped"`
}

// Query filters List and Count. Zero fields match everything.
type Query struct {
	// Source filters on the exact source string.
	Source string

	// Status filters on entry status.
	Status string

	// Since and Until bound StartedAt. Zero times are open ends.
	Since time.Time
	Until time.Time

	// Limit caps results, newest first. Zero means defaultQueryLimit.
	Limit int
}

// Journal stores import session entries. Implementations are safe for
// concurrent use.
type Journal interface {
	// Record persists an entry, assigning Entry.ID when empty.
	Record(ctx context.Context, entry *Entry) error

	// List returns matching entries, newest first.
	List(ctx context.Context, q Query) ([]*Entry, error)

	// Count returns the number of matching entries.
	Count(ctx context.Context, q Query) (int64, error)

	// Close releases backend resources.
	Close() error
}

// StorageError wraps a backend failure with enough context to tell which
// store and operation produced it.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("journal error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// matches reports whether an entry satisfies every set filter.
func (q Query) matches(e *Entry) bool {
	if q.Source != "" && e.Source != q.Source {
		return false
	}
	if q.Status != "" && e.Status != q.Status {
		return false
	}
	if !q.Since.IsZero() && e.StartedAt.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && e.StartedAt.After(q.Until) {
		return false
	}
	return true
}
