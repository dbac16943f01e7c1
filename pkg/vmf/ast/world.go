package ast

// World is the map's world block. Its solids form the static level geometry;
// groups under it act as containers that VMF editors use to organize brushes.
type World struct {
	Base

	// ID is the world's numeric id from the "id" key.
	ID int
}

func (w *World) Parse(key, value string) {
	w.Base.Parse(key, value)
	if key == "id" {
		w.ID = atoi(value)
	}
}

// Solids returns every solid beneath the world in source order, descending
// through group containers but never into entities.
func (w *World) Solids() []*Solid {
	return collectSolids(w)
}

// Groups returns every group beneath the world in source order, including
// nested groups.
func (w *World) Groups() []*Group {
	var out []*Group
	Walk(w, func(n Node) bool {
		if _, ok := n.(*Entity); ok {
			return false
		}
		if g, ok := n.(*Group); ok {
			out = append(out, g)
		}
		return true
	})
	return out
}

// collectSolids gathers solids depth-first from root's subtree, skipping
// entity subtrees so world and entity geometry stay separate.
func collectSolids(root Node) []*Solid {
	var out []*Solid
	Walk(root, func(n Node) bool {
		if _, ok := n.(*Entity); ok && n != root {
			return false
		}
		if s, ok := n.(*Solid); ok {
			out = append(out, s)
			return false
		}
		return true
	})
	return out
}
