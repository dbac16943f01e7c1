package main

import (
	"strings"
	"testing"
	"time"

	"mapforge/strata/pkg/cli"
	"mapforge/strata/pkg/journal"
)

func TestParseTimeFlagDuration(t *testing.T) {
	before := time.Now().Add(-24 * time.Hour)
	got, err := parseTimeFlag("24h")
	if err != nil {
		t.Fatalf("parseTimeFlag() error = %v", err)
	}
	after := time.Now().Add(-24 * time.Hour)

	if got.Before(before) || got.After(after) {
		t.Errorf("parseTimeFlag(\"24h\") = %v, want between %v and %v", got, before, after)
	}
}

func TestParseTimeFlagRFC3339(t *testing.T) {
	got, err := parseTimeFlag("2026-08-01T12:00:00Z")
	if err != nil {
		t.Fatalf("parseTimeFlag() error = %v", err)
	}

	want := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseTimeFlag() = %v, want %v", got, want)
	}
}

func TestParseTimeFlagInvalid(t *testing.T) {
	if _, err := parseTimeFlag("yesterday"); err == nil {
		t.Error("parseTimeFlag(\"yesterday\") should return error")
	}
}

func TestHistoryTableCSV(t *testing.T) {
	entries := historyTable{
		&journal.Entry{
			ID:        "imp-1",
			Source:    "maps/arena.vmf",
			StartedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
			Duration:  1500 * time.Millisecond,
			Status:    journal.StatusSuccess,
			Nodes:     42,
			Solids:    12,
			Groups:    2,
			Lights:    3,
			Pruned:    1,
			Skipped:   0,
		},
	}

	var sb strings.Builder
	if err := cli.NewFormatter(cli.FormatCSV).FormatTo(&sb, entries); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	got := sb.String()
	wantHeader := "id,started_at,duration_ms,status,source,nodes,solids,groups,lights,pruned,skipped,error\n"
	if !strings.HasPrefix(got, wantHeader) {
		t.Errorf("CSV output = %q, want header %q", got, wantHeader)
	}
	wantRow := "imp-1,2026-08-20T10:00:00Z,1500,success,maps/arena.vmf,42,12,2,3,1,0,\n"
	if !strings.HasSuffix(got, wantRow) {
		t.Errorf("CSV output = %q, want row %q", got, wantRow)
	}
}

func TestOutputHistoryTextTruncates(t *testing.T) {
	entries := make([]*journal.Entry, 15)
	for i := range entries {
		entries[i] = &journal.Entry{
			ID:        "imp",
			Source:    "maps/arena.vmf",
			StartedAt: time.Now(),
			Status:    journal.StatusSuccess,
		}
	}

	var sb strings.Builder
	if err := outputHistoryText(&sb, entries, 30); err != nil {
		t.Fatalf("outputHistoryText() error = %v", err)
	}

	got := sb.String()
	if !strings.Contains(got, "Showing 15 of 30 matching entries") {
		t.Errorf("output missing entry counts: %q", got)
	}
	if !strings.Contains(got, "... and 5 more entries") {
		t.Errorf("output missing truncation notice: %q", got)
	}
}
