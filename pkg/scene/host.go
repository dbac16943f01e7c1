package scene

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"

	"mapforge/strata/pkg/assets"
	"mapforge/strata/pkg/geometry"
)

// ObjectID identifies one object inside a Host.
type ObjectID string

// RootID is the parent of top-level objects.
const RootID ObjectID = ""

// LightKind enumerates the light types a host can place.
type LightKind int

const (
	// LightDefault leaves the host's default kind in place. Light classes
	// the importer does not recognize keep this kind.
	LightDefault LightKind = iota
	LightPoint
	LightSpot
)

// String returns the kind's name for logs and exports.
func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	default:
		return "default"
	}
}

// Light carries the decoded parameters applied to a light object.
type Light struct {
	Kind      LightKind
	Color     mgl32.Vec3 // normalized RGB in [0,1]
	Intensity float32
	Range     float32
	ConeAngle float32 // degrees, spot lights only
}

// Host is the scene-object system the assembler drives. Implementations
// must tolerate being called from a single goroutine per import; the
// assembler never calls a Host concurrently.
type Host interface {
	// CreateObject creates an empty named object at the scene root.
	CreateObject(ctx context.Context, name string) (ObjectID, error)

	// DestroyObject removes an object. Remaining children move to the root.
	DestroyObject(ctx context.Context, id ObjectID) error

	// SetParent moves child under parent's transform. RootID detaches.
	SetParent(ctx context.Context, child, parent ObjectID) error

	// Parent returns the object's current parent, RootID at top level.
	Parent(ctx context.Context, id ObjectID) (ObjectID, error)

	// Children returns the object's direct children.
	Children(ctx context.Context, id ObjectID) ([]ObjectID, error)

	// SetTransform places the object at position with the given rotation
	// in pitch/yaw/roll degrees.
	SetTransform(ctx context.Context, id ObjectID, position, rotation mgl32.Vec3) error

	// SetStatic marks the object as non-moving, a hint consumed by
	// downstream lighting and physics.
	SetStatic(ctx context.Context, id ObjectID, static bool) error

	// AttachMesh gives the object a renderer bound to mesh.
	AttachMesh(ctx context.Context, id ObjectID, mesh *geometry.Mesh) error

	// AttachMaterial assigns the renderer's material.
	AttachMaterial(ctx context.Context, id ObjectID, mat *assets.Material) error

	// AttachConvexCollider derives a convex collision volume from mesh.
	AttachConvexCollider(ctx context.Context, id ObjectID, mesh *geometry.Mesh) error

	// AttachLight turns the object into a light emitter.
	AttachLight(ctx context.Context, id ObjectID, light Light) error

	// DescendantCount returns the number of transforms in the object's
	// subtree, the object itself included.
	DescendantCount(ctx context.Context, id ObjectID) (int, error)
}
