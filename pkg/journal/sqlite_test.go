package journal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func newTestJournal(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	j, err := NewSQLiteJournal(&SQLiteConfig{Path: path, BusyTimeout: time.Second}, logger)
	if err != nil {
		t.Fatalf("NewSQLiteJournal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j, path
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()

	want := &Entry{
		Source:    "maps/arena.vmf",
		StartedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Duration:  150 * time.Millisecond,
		Status:    StatusError,
		Error:     "parse failed: unbalanced braces",
		Nodes:     128,
		Solids:    40,
		Groups:    3,
		Lights:    7,
		Pruned:    1,
		Skipped:   2,
	}
	if err := j.Record(ctx, want); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if want.ID == "" {
		t.Fatal("Record left Entry.ID empty")
	}

	entries, err := j.List(ctx, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List returned %d entries, want 1", len(entries))
	}

	got := entries[0]
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
	if got.Source != want.Source {
		t.Errorf("Source = %q, want %q", got.Source, want.Source)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
	if got.Duration != want.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, want.Duration)
	}
	if got.Status != want.Status || got.Error != want.Error {
		t.Errorf("Status/Error = %q/%q, want %q/%q", got.Status, got.Error, want.Status, want.Error)
	}
	if got.Nodes != want.Nodes || got.Solids != want.Solids || got.Groups != want.Groups ||
		got.Lights != want.Lights || got.Pruned != want.Pruned || got.Skipped != want.Skipped {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}

func TestSQLiteJournalNullError(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()

	entry := sampleEntry("maps/arena.vmf", StatusSuccess, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	if err := j.Record(ctx, entry); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := j.List(ctx, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries[0].Error != "" {
		t.Errorf("Error = %q, want empty", entries[0].Error)
	}
}

func TestSQLiteJournalFilters(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	fixtures := []*Entry{
		sampleEntry("maps/arena.vmf", StatusSuccess, base),
		sampleEntry("maps/arena.vmf", StatusError, base.Add(time.Hour)),
		sampleEntry("maps/depot.vmf", StatusSuccess, base.Add(2*time.Hour)),
	}
	for _, e := range fixtures {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	tests := []struct {
		name  string
		query Query
		want  int
	}{
		{name: "all", query: Query{}, want: 3},
		{name: "by source", query: Query{Source: "maps/arena.vmf"}, want: 2},
		{name: "by status", query: Query{Status: StatusError}, want: 1},
		{name: "since", query: Query{Since: base.Add(30 * time.Minute)}, want: 2},
		{name: "limit", query: Query{Limit: 1}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := j.List(ctx, tt.query)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("List returned %d entries, want %d", len(entries), tt.want)
			}
		})
	}

	count, err := j.Count(ctx, Query{Source: "maps/arena.vmf"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestSQLiteJournalNewestFirst(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		e := sampleEntry("maps/arena.vmf", StatusSuccess, base.Add(time.Duration(i)*time.Minute))
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := j.List(ctx, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].StartedAt.After(entries[i-1].StartedAt) {
			t.Errorf("entries[%d] is newer than entries[%d]", i, i-1)
		}
	}
}

func TestSQLiteJournalPersistsAcrossReopen(t *testing.T) {
	j, path := newTestJournal(t)
	ctx := context.Background()

	if err := j.Record(ctx, sampleEntry("maps/arena.vmf", StatusSuccess, time.Now())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteJournal(&SQLiteConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx, Query{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count after reopen = %d, want 1", count)
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("sqlite", "record", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to find the cause")
	}
	if err.Error() == "" {
		t.Error("empty error message")
	}
}
