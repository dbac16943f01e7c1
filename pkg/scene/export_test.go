package scene

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"mapforge/strata/pkg/assets"
	"mapforge/strata/pkg/geometry"
)

func buildExportScene(t *testing.T) *MemoryHost {
	t.Helper()
	ctx := context.Background()
	h := NewMemoryHost()

	group := mustCreate(t, h, "group_1")

	solid := mustCreate(t, h, "solid_2")
	mesh := &geometry.Mesh{
		Vertices: []mgl32.Vec3{{-1, -1, -1}, {1, 1, 1}},
		Indices:  []uint32{0, 1, 0},
		Bounds:   geometry.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
	}
	if err := h.SetTransform(ctx, solid, mgl32.Vec3{10, 0, 0}, mgl32.Vec3{}); err != nil {
		t.Fatal(err)
	}
	if err := h.AttachMesh(ctx, solid, mesh); err != nil {
		t.Fatal(err)
	}
	if err := h.AttachMaterial(ctx, solid, assets.Placeholder()); err != nil {
		t.Fatal(err)
	}
	if err := h.AttachConvexCollider(ctx, solid, mesh); err != nil {
		t.Fatal(err)
	}
	if err := h.SetStatic(ctx, solid, true); err != nil {
		t.Fatal(err)
	}
	if err := h.SetParent(ctx, solid, group); err != nil {
		t.Fatal(err)
	}

	light := mustCreate(t, h, "light_3")
	if err := h.AttachLight(ctx, light, Light{
		Kind:      LightSpot,
		Color:     mgl32.Vec3{1, 0.5, 0.25},
		Intensity: 1.5,
		Range:     25,
		ConeAngle: 45,
	}); err != nil {
		t.Fatal(err)
	}

	return h
}

func TestExportJSON(t *testing.T) {
	h := buildExportScene(t)

	var buf bytes.Buffer
	if err := h.ExportJSON(&buf); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var scene exportScene
	if err := json.Unmarshal(buf.Bytes(), &scene); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if len(scene.Objects) != 3 {
		t.Fatalf("exported %d objects, want 3", len(scene.Objects))
	}

	group, solid, light := scene.Objects[0], scene.Objects[1], scene.Objects[2]

	if group.Name != "group_1" {
		t.Errorf("objects out of creation order: first is %q", group.Name)
	}
	if group.Parent != "" {
		t.Errorf("root object has parent %q", group.Parent)
	}

	if solid.Parent != group.ID {
		t.Errorf("solid parent = %q, want group id %q", solid.Parent, group.ID)
	}
	if !solid.Static {
		t.Error("solid not exported as static")
	}
	if !solid.Collider {
		t.Error("solid collider flag missing")
	}
	if solid.Material != assets.PlaceholderPath {
		t.Errorf("solid material = %q, want %q", solid.Material, assets.PlaceholderPath)
	}
	if solid.Mesh == nil {
		t.Fatal("solid mesh missing from export")
	}
	if solid.Mesh.VertexCount != 2 || solid.Mesh.TriangleCount != 1 {
		t.Errorf("mesh counts = %d/%d, want 2/1", solid.Mesh.VertexCount, solid.Mesh.TriangleCount)
	}
	if want := (mgl32.Vec3{10, 0, 0}); solid.Position != want {
		t.Errorf("solid position = %v, want %v", solid.Position, want)
	}

	if light.Light == nil {
		t.Fatal("light payload missing from export")
	}
	if light.Light.Kind != "spot" {
		t.Errorf("light kind = %q, want spot", light.Light.Kind)
	}
	if light.Light.ConeAngle != 45 {
		t.Errorf("light cone = %v, want 45", light.Light.ConeAngle)
	}
}

func TestExportFile(t *testing.T) {
	h := buildExportScene(t)
	path := filepath.Join(t.TempDir(), "scene.json")

	if err := h.ExportFile(path); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var scene exportScene
	if err := json.Unmarshal(data, &scene); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if len(scene.Objects) != 3 {
		t.Errorf("exported %d objects, want 3", len(scene.Objects))
	}
}
