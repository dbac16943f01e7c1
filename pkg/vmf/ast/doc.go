// Package ast defines the typed document tree produced by parsing a VMF
// (Valve Map Format) level source.
//
// Every brace-delimited block in the source becomes one Node. Block names
// with a registered variant (world, entity, solid, group, editor) parse into
// typed nodes; everything else falls back to a generic node that keeps its
// key/value pairs in raw property storage. Variants also keep the raw
// properties, so a parsed tree can be written back out losslessly.
//
// # Core Types
//
// Document: root of one parsed map file
//
// Node: interface implemented by every tree element
//
// Base: generic behavior (tree wiring, property storage) embedded by variants
//
// World, Entity, Solid, Group, Editor: typed variants with decoded fields
//
// # Basic Usage
//
// Walk a parsed document:
//
//	doc, err := parser.NewParser().Parse("maps/arena.vmf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	world := doc.World()
//	for _, solid := range world.Solids() {
//	    fmt.Println("solid", solid.ID)
//	}
//
//	ast.Walk(doc, func(n ast.Node) bool {
//	    fmt.Println(n.Key())
//	    return true
//	})
//
// # Ownership
//
// Children are owned by their parent and appear exactly once in the parent's
// child list; the Parent reference is a non-owning back-pointer used for
// upward traversal. Trees are not shared across parses.
//
// # Extending the Variant Set
//
// New variants embed Base and register a constructor:
//
//	type Camera struct{ ast.Base }
//
//	func init() {
//	    ast.Register("cameras", func() ast.Node { return &Camera{} })
//	}
//
// Registration is expected to happen during init; the registry is not
// synchronized for concurrent mutation.
package ast
