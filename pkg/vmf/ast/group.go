package ast

// Group is a VMF editor grouping of brushes. Solids reference their group
// through the groupid key of an editor block rather than by nesting, though
// some exporters nest solids under the group directly.
type Group struct {
	Base

	// ID is the group's numeric id from the "id" key. Editor blocks point
	// at it via their groupid key.
	ID int
}

func (g *Group) Parse(key, value string) {
	g.Base.Parse(key, value)
	if key == "id" {
		g.ID = atoi(value)
	}
}
