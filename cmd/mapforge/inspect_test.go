package main

import (
	"testing"

	"mapforge/strata/internal/vmftest"
	"mapforge/strata/pkg/vmf/parser"
)

func TestSummarize(t *testing.T) {
	doc, err := parser.NewParser().Parse("testdata/valid-map.vmf")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := summarize("testdata/valid-map.vmf", doc)

	if !got.HasWorld {
		t.Error("summarize() HasWorld = false, want true")
	}
	if got.WorldSolids != 1 {
		t.Errorf("summarize() WorldSolids = %d, want 1", got.WorldSolids)
	}
	if got.DetailSolids != 0 {
		t.Errorf("summarize() DetailSolids = %d, want 0", got.DetailSolids)
	}
	if got.Solids != 1 {
		t.Errorf("summarize() Solids = %d, want 1", got.Solids)
	}
	if got.Entities != 1 {
		t.Errorf("summarize() Entities = %d, want 1", got.Entities)
	}
	if got.Lights != 1 {
		t.Errorf("summarize() Lights = %d, want 1", got.Lights)
	}
	if got.Groups != 0 {
		t.Errorf("summarize() Groups = %d, want 0", got.Groups)
	}

	// versioninfo, world, one solid with six sides, one entity
	if got.Nodes != 10 {
		t.Errorf("summarize() Nodes = %d, want 10", got.Nodes)
	}
}

func TestSummarizeGroupedMap(t *testing.T) {
	doc, err := parser.NewParser().ParseBytes([]byte(vmftest.GroupedWorld()), "grouped.vmf")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	got := summarize("grouped.vmf", doc)

	if got.Groups != 1 {
		t.Errorf("summarize() Groups = %d, want 1", got.Groups)
	}
	if got.WorldSolids != 0 {
		t.Errorf("summarize() WorldSolids = %d, want 0", got.WorldSolids)
	}
	if got.DetailSolids != 2 {
		t.Errorf("summarize() DetailSolids = %d, want 2", got.DetailSolids)
	}
	if got.Lights != 0 {
		t.Errorf("summarize() Lights = %d, want 0", got.Lights)
	}
}

func TestSummarizeNoWorld(t *testing.T) {
	src := "entity\n{\n\t\"id\" \"5\"\n\t\"classname\" \"info_player_start\"\n}\n"
	doc, err := parser.NewParser().ParseBytes([]byte(src), "no-world.vmf")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	got := summarize("no-world.vmf", doc)

	if got.HasWorld {
		t.Error("summarize() HasWorld = true, want false")
	}
	if got.Entities != 1 {
		t.Errorf("summarize() Entities = %d, want 1", got.Entities)
	}
}
