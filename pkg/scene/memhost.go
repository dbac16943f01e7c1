package scene

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"mapforge/strata/pkg/assets"
	"mapforge/strata/pkg/geometry"
)

// Object is the memory host's record of one scene object.
type Object struct {
	ID       ObjectID
	Name     string
	Parent   ObjectID
	Children []ObjectID
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Static   bool
	Mesh     *geometry.Mesh
	Material *assets.Material
	Collider *geometry.Mesh
	Light    *Light
}

// MemoryHost implements Host in memory. It backs tests and the JSON export
// path; engine bindings implement Host directly instead.
type MemoryHost struct {
	mu      sync.RWMutex
	objects map[ObjectID]*Object
	order   []ObjectID // creation order, kept for deterministic export
}

// NewMemoryHost creates an empty in-memory scene.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		objects: make(map[ObjectID]*Object),
	}
}

// CreateObject creates an empty named object at the scene root.
func (h *MemoryHost) CreateObject(_ context.Context, name string) (ObjectID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := ObjectID(uuid.NewString())
	h.objects[id] = &Object{ID: id, Name: name, Parent: RootID}
	h.order = append(h.order, id)
	return id, nil
}

// DestroyObject removes an object. Remaining children move to the root.
func (h *MemoryHost) DestroyObject(_ context.Context, id ObjectID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(id)
	if err != nil {
		return err
	}

	for _, child := range obj.Children {
		h.objects[child].Parent = RootID
	}
	if obj.Parent != RootID {
		h.detachLocked(obj)
	}

	delete(h.objects, id)
	for i, oid := range h.order {
		if oid == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetParent moves child under parent's transform. RootID detaches.
func (h *MemoryHost) SetParent(_ context.Context, child, parent ObjectID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(child)
	if err != nil {
		return err
	}
	if parent != RootID {
		if _, err := h.get(parent); err != nil {
			return err
		}
	}

	if obj.Parent != RootID {
		h.detachLocked(obj)
	}
	obj.Parent = parent
	if parent != RootID {
		p := h.objects[parent]
		p.Children = append(p.Children, child)
	}
	return nil
}

// Parent returns the object's current parent, RootID at top level.
func (h *MemoryHost) Parent(_ context.Context, id ObjectID) (ObjectID, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	obj, err := h.get(id)
	if err != nil {
		return RootID, err
	}
	return obj.Parent, nil
}

// Children returns the object's direct children.
func (h *MemoryHost) Children(_ context.Context, id ObjectID) ([]ObjectID, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	obj, err := h.get(id)
	if err != nil {
		return nil, err
	}
	out := make([]ObjectID, len(obj.Children))
	copy(out, obj.Children)
	return out, nil
}

// SetTransform places the object at position with the given rotation.
func (h *MemoryHost) SetTransform(_ context.Context, id ObjectID, position, rotation mgl32.Vec3) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(id)
	if err != nil {
		return err
	}
	obj.Position = position
	obj.Rotation = rotation
	return nil
}

// SetStatic marks the object as non-moving.
func (h *MemoryHost) SetStatic(_ context.Context, id ObjectID, static bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(id)
	if err != nil {
		return err
	}
	obj.Static = static
	return nil
}

// AttachMesh gives the object a renderer bound to mesh.
func (h *MemoryHost) AttachMesh(_ context.Context, id ObjectID, mesh *geometry.Mesh) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(id)
	if err != nil {
		return err
	}
	obj.Mesh = mesh
	return nil
}

// AttachMaterial assigns the renderer's material.
func (h *MemoryHost) AttachMaterial(_ context.Context, id ObjectID, mat *assets.Material) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(id)
	if err != nil {
		return err
	}
	obj.Material = mat
	return nil
}

// AttachConvexCollider derives a convex collision volume from mesh.
func (h *MemoryHost) AttachConvexCollider(_ context.Context, id ObjectID, mesh *geometry.Mesh) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(id)
	if err != nil {
		return err
	}
	obj.Collider = mesh
	return nil
}

// AttachLight turns the object into a light emitter.
func (h *MemoryHost) AttachLight(_ context.Context, id ObjectID, light Light) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	obj, err := h.get(id)
	if err != nil {
		return err
	}
	obj.Light = &light
	return nil
}

// DescendantCount returns the number of transforms in the object's subtree,
// the object itself included.
func (h *MemoryHost) DescendantCount(_ context.Context, id ObjectID) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	obj, err := h.get(id)
	if err != nil {
		return 0, err
	}
	return h.countLocked(obj), nil
}

// Get returns the object's record, or false when id is unknown.
func (h *MemoryHost) Get(id ObjectID) (*Object, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	obj, ok := h.objects[id]
	return obj, ok
}

// Objects returns every live object in creation order.
func (h *MemoryHost) Objects() []*Object {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Object, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.objects[id])
	}
	return out
}

// Len returns the number of live objects.
func (h *MemoryHost) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.objects)
}

// FindByName returns the first object with the given name in creation order,
// or false. Names are not unique; this is a convenience for tests and
// tooling.
func (h *MemoryHost) FindByName(name string) (*Object, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range h.order {
		if h.objects[id].Name == name {
			return h.objects[id], true
		}
	}
	return nil, false
}

func (h *MemoryHost) get(id ObjectID) (*Object, error) {
	obj, ok := h.objects[id]
	if !ok {
		return nil, fmt.Errorf("scene: no object %q", id)
	}
	return obj, nil
}

// detachLocked removes obj from its parent's child list.
func (h *MemoryHost) detachLocked(obj *Object) {
	parent, ok := h.objects[obj.Parent]
	if !ok {
		return
	}
	for i, c := range parent.Children {
		if c == obj.ID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
}

// countLocked counts obj and every transform below it.
func (h *MemoryHost) countLocked(obj *Object) int {
	n := 1
	for _, child := range obj.Children {
		if c, ok := h.objects[child]; ok {
			n += h.countLocked(c)
		}
	}
	return n
}
