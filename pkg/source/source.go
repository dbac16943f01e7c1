package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Source resolves map names to readable local paths.
type Source interface {
	// Fetch makes the named map available locally and returns its path.
	// Names are relative to the source root; escaping the root is an error.
	Fetch(ctx context.Context, name string) (string, error)

	// Describe identifies the source for logs and journal entries.
	Describe() string
}

// FileSource serves maps from a directory.
type FileSource struct {
	root string
}

// NewFileSource creates a source rooted at dir. An empty dir means the
// current directory.
func NewFileSource(dir string) *FileSource {
	if dir == "" {
		dir = "."
	}
	return &FileSource{root: dir}
}

// Fetch returns the path of name under the root. The name must stay inside
// the root and refer to a regular file.
func (s *FileSource) Fetch(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("map name is empty")
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("map name %q escapes the source root", name)
	}

	path := filepath.Join(s.root, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("map %q not available: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("map %q is a directory", name)
	}
	return path, nil
}

// Describe returns the root directory.
func (s *FileSource) Describe() string {
	return s.root
}
