package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"mapforge/strata/pkg/vmf/ast"
)

// Builder turns a solid's raw side data into a triangle mesh in world
// coordinates. Build must be deterministic for identical solid data.
type Builder interface {
	Build(solid *ast.Solid) (*Mesh, error)
}

// BlockoutBuilder approximates each solid by the axis-aligned box spanned by
// the plane points of its sides. The box is exact for the axis-aligned
// brushes blockout maps consist of; angled brushes come out as their
// bounding volume.
type BlockoutBuilder struct{}

// NewBlockoutBuilder creates a blockout geometry builder.
func NewBlockoutBuilder() *BlockoutBuilder {
	return &BlockoutBuilder{}
}

// Build derives the solid's box mesh from its side planes.
func (b *BlockoutBuilder) Build(solid *ast.Solid) (*Mesh, error) {
	sides := solid.Sides()
	if len(sides) == 0 {
		return nil, fmt.Errorf("solid %d has no sides", solid.ID)
	}

	var (
		box   AABB
		first = true
	)
	for _, side := range sides {
		raw := side.Property("plane")
		if raw == "" {
			return nil, fmt.Errorf("solid %d: side at line %d has no plane", solid.ID, side.Line())
		}
		points, err := ParsePlane(raw)
		if err != nil {
			return nil, fmt.Errorf("solid %d: %w", solid.ID, err)
		}
		for _, p := range points {
			if first {
				box = AABB{Min: p, Max: p}
				first = false
				continue
			}
			for i := 0; i < 3; i++ {
				if p[i] < box.Min[i] {
					box.Min[i] = p[i]
				}
				if p[i] > box.Max[i] {
					box.Max[i] = p[i]
				}
			}
		}
	}

	return boxMesh(box), nil
}

// ParsePlane decodes a side's plane property, three points of the form
// "(x y z) (x y z) (x y z)".
func ParsePlane(raw string) ([3]mgl32.Vec3, error) {
	var points [3]mgl32.Vec3

	cleaned := strings.NewReplacer("(", " ", ")", " ").Replace(raw)
	fields := strings.Fields(cleaned)
	if len(fields) != 9 {
		return points, fmt.Errorf("plane %q has %d coordinates, want 9", raw, len(fields))
	}

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return points, fmt.Errorf("plane %q: bad coordinate %q", raw, f)
		}
		points[i/3][i%3] = float32(v)
	}
	return points, nil
}

// boxMesh builds the 8-vertex, 12-triangle mesh of an axis-aligned box with
// outward-facing counter-clockwise winding.
func boxMesh(box AABB) *Mesh {
	lo, hi := box.Min, box.Max
	m := &Mesh{
		Vertices: []mgl32.Vec3{
			{lo[0], lo[1], lo[2]},
			{hi[0], lo[1], lo[2]},
			{hi[0], hi[1], lo[2]},
			{lo[0], hi[1], lo[2]},
			{lo[0], lo[1], hi[2]},
			{hi[0], lo[1], hi[2]},
			{hi[0], hi[1], hi[2]},
			{lo[0], hi[1], hi[2]},
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // bottom
			4, 5, 6, 4, 6, 7, // top
			0, 1, 5, 0, 5, 4, // front
			2, 3, 7, 2, 7, 6, // back
			3, 0, 4, 3, 4, 7, // left
			1, 2, 6, 1, 6, 5, // right
		},
		Bounds: box,
	}
	return m
}
