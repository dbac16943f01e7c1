package scene

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"mapforge/strata/pkg/geometry"
	"mapforge/strata/pkg/vmf/ast"
)

// importSolids imports the configured solid set. Failures are
// isolated per solid.
func (a *Assembler) importSolids(ctx context.Context, r *run, world *ast.World) {
	var solids []*ast.Solid
	if a.settings.ImportWorldBrushes && world != nil {
		solids = append(solids, world.Solids()...)
	}
	if a.settings.ImportDetailBrushes {
		for _, e := range r.doc.Entities() {
			solids = append(solids, e.Solids()...)
		}
	}

	for _, solid := range solids {
		if err := a.importSolid(ctx, r, solid); err != nil {
			a.logger.Warn("skipping solid",
				"id", solid.ID, "line", solid.Line(), "error", err)
			r.result.SkippedSolids++
			continue
		}
		r.result.Solids++
	}
}

// importSolid materializes one solid: mesh, recentering, material, static
// flag, collider, and group reparenting.
func (a *Assembler) importSolid(ctx context.Context, r *run, solid *ast.Solid) error {
	mesh, err := a.builder.Build(solid)
	if err != nil {
		return err
	}

	id, err := a.host.CreateObject(ctx, fmt.Sprintf("solid_%d", solid.ID))
	if err != nil {
		return err
	}
	if err := a.configureSolid(ctx, r, solid, id, mesh); err != nil {
		if derr := a.host.DestroyObject(ctx, id); derr != nil {
			a.logger.Warn("cleanup of failed solid object failed",
				"id", solid.ID, "error", derr)
		}
		return err
	}
	return nil
}

func (a *Assembler) configureSolid(ctx context.Context, r *run, solid *ast.Solid, id ObjectID, mesh *geometry.Mesh) error {
	// Mesh vertices arrive in world coordinates. The vertex mean becomes
	// the object's position and the mesh turns pivot-relative, which keeps
	// placement exact while the data stays origin-centered.
	pivot := mesh.Recenter()
	if err := a.host.SetTransform(ctx, id, pivot, mgl32.Vec3{}); err != nil {
		return err
	}
	if err := a.host.AttachMesh(ctx, id, mesh); err != nil {
		return err
	}
	if err := a.host.AttachMaterial(ctx, id, r.material); err != nil {
		return err
	}
	if err := a.host.SetStatic(ctx, id, true); err != nil {
		return err
	}
	if err := a.host.AttachConvexCollider(ctx, id, mesh); err != nil {
		return err
	}

	if placeholder, ok := a.groupTarget(r, solid); ok {
		if err := a.host.SetParent(ctx, id, placeholder); err != nil {
			return err
		}
	}
	return nil
}

// groupTarget resolves the placeholder a solid belongs under. Direct
// nesting inside a group wins; otherwise the solid's parent may carry an
// editor child whose groupid names the group. A groupid naming no known
// group is a silent miss.
func (a *Assembler) groupTarget(r *run, solid *ast.Solid) (ObjectID, bool) {
	parent := solid.Parent()

	if g, ok := parent.(*ast.Group); ok {
		if id, ok := r.groupByNode(g); ok {
			return id, true
		}
		return RootID, false
	}

	if ed := ast.EditorOf(parent); ed != nil && ed.GroupID != 0 {
		if id, ok := r.groupByID(ed.GroupID); ok {
			return id, true
		}
		a.logger.Debug("groupid names no known group",
			"groupid", ed.GroupID, "solid", solid.ID)
	}
	return RootID, false
}
