package journal

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryJournal keeps entries in process, in record order. Suited to tests
// and one-shot imports where history does not need to outlive the run.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryJournal creates an empty in-memory journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Record appends a copy of entry, assigning an id when needed.
func (j *MemoryJournal) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	stored := *entry
	j.entries = append(j.entries, &stored)
	return nil
}

// List returns matching entries, newest first.
func (j *MemoryJournal) List(ctx context.Context, q Query) ([]*Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	results := []*Entry{}
	for i := len(j.entries) - 1; i >= 0 && len(results) < limit; i-- {
		if !q.matches(j.entries[i]) {
			continue
		}
		entry := *j.entries[i]
		results = append(results, &entry)
	}
	return results, nil
}

// Count returns the number of matching entries.
func (j *MemoryJournal) Count(ctx context.Context, q Query) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var count int64
	for _, entry := range j.entries {
		if q.matches(entry) {
			count++
		}
	}
	return count, nil
}

// Close is a no-op for the in-memory backend.
func (j *MemoryJournal) Close() error {
	return nil
}
