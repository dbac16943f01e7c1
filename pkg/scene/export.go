package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Export types describe the JSON hand-off format consumed by engine-side
// ingesters. Objects appear in creation order with parent references, so the
// file replays into any scene graph in one pass.

type exportMesh struct {
	VertexCount   int          `json:"vertex_count"`
	TriangleCount int          `json:"triangle_count"`
	Vertices      []mgl32.Vec3 `json:"vertices"`
	Indices       []uint32     `json:"indices"`
	BoundsMin     mgl32.Vec3   `json:"bounds_min"`
	BoundsMax     mgl32.Vec3   `json:"bounds_max"`
}

type exportLight struct {
	Kind      string     `json:"kind"`
	Color     mgl32.Vec3 `json:"color"`
	Intensity float32    `json:"intensity"`
	Range     float32    `json:"range"`
	ConeAngle float32    `json:"cone_angle,omitempty"`
}

type exportObject struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Parent   string       `json:"parent,omitempty"`
	Position mgl32.Vec3   `json:"position"`
	Rotation mgl32.Vec3   `json:"rotation"`
	Static   bool         `json:"static,omitempty"`
	Material string       `json:"material,omitempty"`
	Mesh     *exportMesh  `json:"mesh,omitempty"`
	Collider bool         `json:"collider,omitempty"`
	Light    *exportLight `json:"light,omitempty"`
}

type exportScene struct {
	Objects []exportObject `json:"objects"`
}

// ExportJSON writes the scene as indented JSON in creation order.
func (h *MemoryHost) ExportJSON(w io.Writer) error {
	scene := exportScene{Objects: []exportObject{}}

	for _, obj := range h.Objects() {
		out := exportObject{
			ID:       string(obj.ID),
			Name:     obj.Name,
			Parent:   string(obj.Parent),
			Position: obj.Position,
			Rotation: obj.Rotation,
			Static:   obj.Static,
			Collider: obj.Collider != nil,
		}
		if obj.Material != nil {
			out.Material = obj.Material.Path
		}
		if obj.Mesh != nil {
			out.Mesh = &exportMesh{
				VertexCount:   len(obj.Mesh.Vertices),
				TriangleCount: len(obj.Mesh.Indices) / 3,
				Vertices:      obj.Mesh.Vertices,
				Indices:       obj.Mesh.Indices,
				BoundsMin:     obj.Mesh.Bounds.Min,
				BoundsMax:     obj.Mesh.Bounds.Max,
			}
		}
		if obj.Light != nil {
			out.Light = &exportLight{
				Kind:      obj.Light.Kind.String(),
				Color:     obj.Light.Color,
				Intensity: obj.Light.Intensity,
				Range:     obj.Light.Range,
				ConeAngle: obj.Light.ConeAngle,
			}
		}
		scene.Objects = append(scene.Objects, out)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scene)
}

// ExportFile writes the scene JSON to path, replacing any existing file.
func (h *MemoryHost) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := h.ExportJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
