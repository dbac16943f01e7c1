package ast

// Property is one raw key/value pair from a node's block, in source order.
type Property struct {
	Key   string
	Value string
}

// Node is the interface implemented by every element of a parsed map tree.
//
// All variants embed Base, which supplies the generic behavior; typed
// variants additionally override Parse to decode the keys they understand.
type Node interface {
	// Key returns the raw block header that introduced the node. The
	// document root has an empty key.
	Key() string

	// Line returns the 1-based source line of the block header, or 0 when
	// the node was built programmatically.
	Line() int

	// Parent returns the enclosing node, or nil for the document root.
	Parent() Node

	// Children returns the node's children in source order. Callers must
	// not mutate the returned slice.
	Children() []Node

	// Parse interprets one key/value pair from the node's block. The raw
	// pair is always retained in property storage; typed variants
	// additionally decode the keys they claim.
	Parse(key, value string)

	// Property returns the raw value stored for key, or "" when absent.
	Property(key string) string

	// HasProperty reports whether key is present in property storage.
	HasProperty(key string) bool

	// Properties returns the node's raw pairs in first-seen order.
	Properties() []Property

	base() *Base
}

// Base carries the behavior shared by every node variant: the raw block
// header, tree wiring, and ordered key/value storage. Variants embed it by
// value and override Parse for the keys they decode.
type Base struct {
	key      string
	line     int
	parent   Node
	children []Node
	props    map[string]string
	order    []string
}

// Key returns the raw block header that introduced the node.
func (b *Base) Key() string { return b.key }

// Line returns the 1-based source line of the block header.
func (b *Base) Line() int { return b.line }

// Parent returns the enclosing node, or nil at the root.
func (b *Base) Parent() Node { return b.parent }

// Children returns the node's children in source order.
func (b *Base) Children() []Node { return b.children }

// Parse stores the pair in property storage. Re-parsing an existing key
// overwrites its value and keeps the original position.
func (b *Base) Parse(key, value string) {
	if b.props == nil {
		b.props = make(map[string]string)
	}
	if _, seen := b.props[key]; !seen {
		b.order = append(b.order, key)
	}
	b.props[key] = value
}

// Property returns the raw value stored for key, or "" when absent.
func (b *Base) Property(key string) string { return b.props[key] }

// HasProperty reports whether key is present in property storage.
func (b *Base) HasProperty(key string) bool {
	_, ok := b.props[key]
	return ok
}

// Properties returns the node's raw pairs in first-seen order.
func (b *Base) Properties() []Property {
	out := make([]Property, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, Property{Key: k, Value: b.props[k]})
	}
	return out
}

func (b *Base) base() *Base { return b }

// Append adds child to the end of parent's child list and points the child's
// parent reference back at parent. It is the only way tree edges are formed,
// so a node appears exactly once in its parent's list.
func Append(parent, child Node) {
	child.base().parent = parent
	pb := parent.base()
	pb.children = append(pb.children, child)
}

// Generic is the fallback for block names with no registered variant. It has
// no typed fields; every pair lands in property storage.
type Generic struct {
	Base
}

// Document is the root of one parsed map file. It is never introduced by a
// block header; the parser creates one per parse and appends all top-level
// blocks beneath it.
type Document struct {
	Base

	// SourceFile is the path the document was parsed from, or "" for
	// in-memory input.
	SourceFile string
}

// NewDocument returns an empty document root for the given source path.
func NewDocument(sourceFile string) *Document {
	return &Document{SourceFile: sourceFile}
}

// World returns the document's world node, or nil when the source had none.
// When several exist, the first in source order wins.
func (d *Document) World() *World {
	for _, c := range d.children {
		if w, ok := c.(*World); ok {
			return w
		}
	}
	return nil
}

// Entities returns the document's top-level entities in source order.
func (d *Document) Entities() []*Entity {
	var out []*Entity
	for _, c := range d.children {
		if e, ok := c.(*Entity); ok {
			out = append(out, e)
		}
	}
	return out
}

// Location resolves a node's position against the document's source path.
func (d *Document) Location(n Node) Location {
	return Location{File: d.SourceFile, Line: n.Line()}
}
