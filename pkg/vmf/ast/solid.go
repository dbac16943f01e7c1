package ast

// Solid is one convex brush. Its side blocks stay generic; geometry
// collaborators read plane and material keys straight from their property
// storage.
type Solid struct {
	Base

	// ID is the solid's numeric id from the "id" key.
	ID int
}

func (s *Solid) Parse(key, value string) {
	s.Base.Parse(key, value)
	if key == "id" {
		s.ID = atoi(value)
	}
}

// Sides returns the solid's side blocks in source order.
func (s *Solid) Sides() []Node {
	var out []Node
	for _, c := range s.children {
		if c.Key() == "side" {
			out = append(out, c)
		}
	}
	return out
}

// Editor returns the solid's editor block, or nil when absent.
func (s *Solid) Editor() *Editor {
	return editorChild(s)
}
