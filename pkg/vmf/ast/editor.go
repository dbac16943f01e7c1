package ast

// Editor is the per-block editor metadata VMF tools attach to solids and
// entities. Group membership travels through its groupid key.
type Editor struct {
	Base

	// GroupID is the id of the group the enclosing block belongs to, or 0
	// when ungrouped.
	GroupID int
}

func (e *Editor) Parse(key, value string) {
	e.Base.Parse(key, value)
	if key == "groupid" {
		e.GroupID = atoi(value)
	}
}

// editorChild returns n's first editor child, or nil when it has none.
func editorChild(n Node) *Editor {
	if n == nil {
		return nil
	}
	for _, c := range n.Children() {
		if e, ok := c.(*Editor); ok {
			return e
		}
	}
	return nil
}

// EditorOf returns the first editor child of n, or nil when n is nil or has
// none. Assemblers use it to resolve group membership of a solid's parent.
func EditorOf(n Node) *Editor {
	return editorChild(n)
}
