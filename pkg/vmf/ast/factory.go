package ast

import "strings"

// Constructor builds an empty node variant ready for Parse calls.
type Constructor func() Node

// constructors maps lowercased block names to their variants. Names missing
// here produce a Generic node, which keeps unknown block types traversable
// instead of failing the parse.
var constructors = map[string]Constructor{
	"world":  func() Node { return &World{} },
	"entity": func() Node { return &Entity{} },
	"solid":  func() Node { return &Solid{} },
	"group":  func() Node { return &Group{} },
	"editor": func() Node { return &Editor{} },
}

// Register installs a constructor for the given block name, replacing any
// existing registration. Names match case-insensitively. Register during
// init; the registry is not synchronized.
func Register(name string, ctor Constructor) {
	constructors[strings.ToLower(name)] = ctor
}

// New builds the node variant registered for the block header, preserving
// the raw header as the node's key. Unregistered headers get a Generic node.
func New(header string, line int) Node {
	ctor, ok := constructors[strings.ToLower(header)]
	if !ok {
		ctor = func() Node { return &Generic{} }
	}
	n := ctor()
	b := n.base()
	b.key = header
	b.line = line
	return n
}
