// Package geometry builds and manipulates triangle meshes for map solids.
//
// Meshes come out of a Builder in absolute world coordinates. Before a mesh
// is attached to a scene object it gets recentered: the vertex mean becomes
// the owning object's position and the vertices become pivot-relative. That
// split keeps mesh data small and reusable while preserving placement.
package geometry

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Size returns the box's extent along each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box's midpoint.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Size().Mul(0.5))
}

// Mesh is indexed triangle geometry for one solid.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
	Bounds   AABB
}

// Center returns the arithmetic mean of the mesh's vertices.
func (m *Mesh) Center() mgl32.Vec3 {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float32(len(m.Vertices)))
}

// Recenter shifts the mesh so its vertex mean sits at the origin, recomputes
// the bounds, and returns the former mean. The caller places the owning
// object at the returned pivot to preserve absolute placement.
func (m *Mesh) Recenter() mgl32.Vec3 {
	pivot := m.Center()
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Sub(pivot)
	}
	m.RecomputeBounds()
	return pivot
}

// RecomputeBounds refreshes the bounding box from the current vertex data.
func (m *Mesh) RecomputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = AABB{}
		return
	}
	box := AABB{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < box.Min[i] {
				box.Min[i] = v[i]
			}
			if v[i] > box.Max[i] {
				box.Max[i] = v[i]
			}
		}
	}
	m.Bounds = box
}
