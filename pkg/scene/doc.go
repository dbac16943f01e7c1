// Package scene materializes parsed map documents into scene objects.
//
// The Assembler walks a finished document tree and drives a Host, the
// abstraction over whatever object system the import targets. Assembly runs
// in a fixed order because later steps depend on the side effects of earlier
// ones:
//
// 1. Groups: one placeholder object per group under the world
//
// 2. Solids: mesh-bearing objects, recentered, static, with material and
// convex collider, reparented under their group's placeholder
//
// 3. Lights: point and spot lights decoded from light entities
//
// 4. Pruning: placeholders holding fewer than two members are destroyed and
// their sole child reparented to the placeholder's former parent
//
// Failures while materializing one solid or light are logged and skipped so
// a single malformed entity cannot abort the rest of the import. Structural
// problems belong to the parser and validator, not this package.
//
// # Hosts
//
// MemoryHost implements Host in memory and doubles as the export path: its
// scene can be serialized to JSON for hand-off to an engine-side ingester.
// Engine bindings implement Host directly.
package scene
