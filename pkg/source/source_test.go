package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceFetch(t *testing.T) {
	root := t.TempDir()
	mapsDir := filepath.Join(root, "maps")
	if err := os.MkdirAll(mapsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mapPath := filepath.Join(mapsDir, "arena.vmf")
	if err := os.WriteFile(mapPath, []byte("world\n{\n}\n"), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	s := NewFileSource(root)
	got, err := s.Fetch(context.Background(), filepath.Join("maps", "arena.vmf"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != mapPath {
		t.Errorf("Fetch = %q, want %q", got, mapPath)
	}
}

func TestFileSourceFetchErrors(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "maps"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := NewFileSource(root)

	tests := []struct {
		name    string
		mapName string
	}{
		{name: "empty name", mapName: ""},
		{name: "missing file", mapName: "maps/ghost.vmf"},
		{name: "directory", mapName: "maps"},
		{name: "escape", mapName: "../outside.vmf"},
		{name: "absolute", mapName: "/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Fetch(context.Background(), tt.mapName); err == nil {
				t.Errorf("Fetch(%q) error = nil, want error", tt.mapName)
			}
		})
	}
}

func TestFileSourceDescribe(t *testing.T) {
	if got := NewFileSource("").Describe(); got != "." {
		t.Errorf("Describe = %q, want %q", got, ".")
	}
	if got := NewFileSource("maps").Describe(); got != "maps" {
		t.Errorf("Describe = %q, want %q", got, "maps")
	}
}
