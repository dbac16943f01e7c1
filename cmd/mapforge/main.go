// Mapforge imports Valve-style VMF level sources into engine scenes.
//
// It drives the strata pipeline end to end: parsing map text into a typed
// document tree, assembling solids, groups, and lights through scene host
// interfaces, and recording every run in an import journal.
//
// Usage:
//
//	# Import a map into a scene and export it as JSON
//	mapforge import maps/arena.vmf --export arena.scene.json
//
//	# Import every map in a directory
//	mapforge import maps/
//
//	# Summarize a map without importing it
//	mapforge inspect maps/arena.vmf
//
//	# Validate map files
//	mapforge lint --dir maps/
//
//	# Re-import on every change, serving metrics while running
//	mapforge watch maps/ --address 127.0.0.1:9464
//
//	# Query past imports
//	mapforge history --status error --since 24h
//
// For complete documentation, see: https://github.com/mapforge/strata
package main

func main() {
	Execute()
}
