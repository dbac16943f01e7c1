package ast

// Walk performs a depth-first, pre-order traversal of the subtree rooted at
// n, calling fn for every node including n itself. Returning false prunes
// the node's subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Visitor receives typed callbacks during Accept. Unregistered and untyped
// nodes land on VisitNode.
type Visitor interface {
	VisitWorld(*World) error
	VisitEntity(*Entity) error
	VisitSolid(*Solid) error
	VisitGroup(*Group) error
	VisitEditor(*Editor) error
	VisitNode(Node) error
}

// Accept walks the subtree rooted at n depth-first, dispatching every node
// to the visitor method matching its variant. The walk stops at the first
// error, which is returned.
func Accept(n Node, v Visitor) error {
	if n == nil {
		return nil
	}
	var err error
	switch t := n.(type) {
	case *World:
		err = v.VisitWorld(t)
	case *Entity:
		err = v.VisitEntity(t)
	case *Solid:
		err = v.VisitSolid(t)
	case *Group:
		err = v.VisitGroup(t)
	case *Editor:
		err = v.VisitEditor(t)
	default:
		err = v.VisitNode(t)
	}
	if err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := Accept(c, v); err != nil {
			return err
		}
	}
	return nil
}

// BaseVisitor is a no-op Visitor for embedding, so visitors only implement
// the callbacks they care about.
type BaseVisitor struct{}

func (BaseVisitor) VisitWorld(*World) error   { return nil }
func (BaseVisitor) VisitEntity(*Entity) error { return nil }
func (BaseVisitor) VisitSolid(*Solid) error   { return nil }
func (BaseVisitor) VisitGroup(*Group) error   { return nil }
func (BaseVisitor) VisitEditor(*Editor) error { return nil }
func (BaseVisitor) VisitNode(Node) error      { return nil }
