// Package vmftest provides canned map sources and host doubles shared by
// importer and command tests.
package vmftest

import (
	"context"
	"fmt"
	"strings"

	"mapforge/strata/pkg/geometry"
	"mapforge/strata/pkg/scene"
)

// CubeSolid renders a solid block whose six planes span the box min..max on
// every axis.
func CubeSolid(id, min, max int) string {
	pt := func(x, y, z int) string { return fmt.Sprintf("(%d %d %d)", x, y, z) }
	planes := []string{
		pt(min, min, min) + " " + pt(max, min, min) + " " + pt(max, max, min),
		pt(min, min, max) + " " + pt(max, max, max) + " " + pt(max, min, max),
		pt(min, min, min) + " " + pt(min, max, min) + " " + pt(min, max, max),
		pt(max, min, min) + " " + pt(max, min, max) + " " + pt(max, max, max),
		pt(min, min, min) + " " + pt(min, min, max) + " " + pt(max, min, max),
		pt(min, max, min) + " " + pt(max, max, min) + " " + pt(max, max, max),
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "solid\n{\n\t\"id\" \"%d\"\n", id)
	for _, p := range planes {
		fmt.Fprintf(&sb, "\tside\n\t{\n\t\t\"plane\" \"%s\"\n\t\t\"material\" \"DEV/DEV_MEASUREGENERIC01\"\n\t}\n", p)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// BasicWorld returns a minimal map: a version header, one world solid, and
// one point light.
func BasicWorld() string {
	return "versioninfo\n{\n\t\"editorversion\" \"400\"\n}\n" +
		"world\n{\n\t\"id\" \"1\"\n\t\"classname\" \"worldspawn\"\n" +
		CubeSolid(10, 0, 64) +
		"}\n" +
		"entity\n{\n\t\"id\" \"20\"\n\t\"classname\" \"light\"\n\t\"origin\" \"32 32 48\"\n\t\"_light\" \"255 255 255 200\"\n}\n"
}

// GroupedWorld returns a map whose group gains two members through a detail
// entity, so the placeholder survives pruning.
func GroupedWorld() string {
	return "world\n{\n\t\"id\" \"1\"\n\tgroup\n\t{\n\t\t\"id\" \"7\"\n\t}\n}\n" +
		"entity\n{\n\t\"id\" \"30\"\n\t\"classname\" \"func_detail\"\n" +
		"editor\n{\n\t\"groupid\" \"7\"\n}\n" +
		CubeSolid(11, 0, 64) +
		CubeSolid(12, 128, 192) +
		"}\n"
}

// Unbalanced fails parsing with a structural error: the world block never
// closes.
const Unbalanced = `world
{
	"id" "1"
	solid
	{
		"id" "2"
`

// FailingHost wraps a MemoryHost and rejects one named operation. The zero
// FailOp fails nothing.
type FailingHost struct {
	*scene.MemoryHost

	// FailOp names the operation to reject: "CreateObject", "AttachMesh",
	// or "SetParent".
	FailOp string
}

// NewFailingHost creates a failing host around a fresh MemoryHost.
func NewFailingHost(failOp string) *FailingHost {
	return &FailingHost{MemoryHost: scene.NewMemoryHost(), FailOp: failOp}
}

func (h *FailingHost) CreateObject(ctx context.Context, name string) (scene.ObjectID, error) {
	if h.FailOp == "CreateObject" {
		return scene.RootID, fmt.Errorf("host rejected CreateObject(%q)", name)
	}
	return h.MemoryHost.CreateObject(ctx, name)
}

func (h *FailingHost) AttachMesh(ctx context.Context, id scene.ObjectID, mesh *geometry.Mesh) error {
	if h.FailOp == "AttachMesh" {
		return fmt.Errorf("host rejected AttachMesh(%v)", id)
	}
	return h.MemoryHost.AttachMesh(ctx, id, mesh)
}

func (h *FailingHost) SetParent(ctx context.Context, child, parent scene.ObjectID) error {
	if h.FailOp == "SetParent" {
		return fmt.Errorf("host rejected SetParent(%v, %v)", child, parent)
	}
	return h.MemoryHost.SetParent(ctx, child, parent)
}
