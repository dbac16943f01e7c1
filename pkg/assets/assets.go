// Package assets resolves material references from parsed maps to concrete
// material handles.
//
// The importer assigns one placeholder material to every solid it builds, so
// the only hard requirement on a Repository is resolving that configured
// path. Resolution failures are recoverable: callers fall back to
// Placeholder() and keep going rather than aborting an import over a missing
// material.
//
// Two implementations ship with the package: an in-memory repository for
// tests and embedding, and a SQLite-backed catalog for tooling that shares
// material databases between runs.
package assets

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no material exists at the requested path.
var ErrNotFound = errors.New("assets: material not found")

// Material is a resolved material handle.
type Material struct {
	// Path is the reference used by map sources, e.g. "dev/blockout".
	Path string

	// Shader names the host-side shader the material binds.
	Shader string

	// BaseTexture is the albedo texture reference.
	BaseTexture string
}

// Repository resolves material paths to handles.
type Repository interface {
	// Resolve returns the material at path, or ErrNotFound.
	Resolve(ctx context.Context, path string) (*Material, error)
}

// PlaceholderPath is the material assigned to imported solids when the
// configured material cannot be resolved.
const PlaceholderPath = "dev/placeholder"

// Placeholder returns the built-in fallback material. It is always
// resolvable regardless of repository contents.
func Placeholder() *Material {
	return &Material{
		Path:        PlaceholderPath,
		Shader:      "LightmappedGeneric",
		BaseTexture: "dev/dev_measuregeneric01",
	}
}
