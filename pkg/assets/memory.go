package assets

import (
	"context"
	"sync"
)

// MemoryRepository is a thread-safe in-memory material repository.
type MemoryRepository struct {
	mu        sync.RWMutex
	materials map[string]*Material
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		materials: make(map[string]*Material),
	}
}

// Register adds or replaces a material, keyed by its path.
func (r *MemoryRepository) Register(mat *Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials[mat.Path] = mat
}

// Resolve returns the material at path, or ErrNotFound.
func (r *MemoryRepository) Resolve(_ context.Context, path string) (*Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mat, ok := r.materials[path]
	if !ok {
		return nil, ErrNotFound
	}
	return mat, nil
}

// Len returns the number of registered materials.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.materials)
}
