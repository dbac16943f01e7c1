package writer

import (
	"os"
	"path/filepath"
	"testing"

	"mapforge/strata/pkg/vmf/ast"
	"mapforge/strata/pkg/vmf/parser"
)

const source = `world
{
	"id" "1"
	"classname" "worldspawn"
	solid
	{
		"id" "2"
		side
		{
			"plane" "(-64 -64 0) (64 -64 0) (64 64 0)"
			"material" "DEV/DEV_MEASUREGENERIC01"
		}
		editor
		{
			"groupid" "44"
		}
	}
	group
	{
		"id" "44"
	}
}
entity
{
	"id" "10"
	"classname" "light"
	"_light" "255 255 255 200"
}
`

func parse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := parser.NewParser().ParseBytes([]byte(src), "w.vmf")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	return doc
}

// equalTrees compares two subtrees by key, properties, and child order.
func equalTrees(t *testing.T, a, b ast.Node, path string) {
	t.Helper()
	if a.Key() != b.Key() {
		t.Fatalf("%s: key %q != %q", path, a.Key(), b.Key())
	}

	ap, bp := a.Properties(), b.Properties()
	if len(ap) != len(bp) {
		t.Fatalf("%s: %d properties != %d", path, len(ap), len(bp))
	}
	for i := range ap {
		if ap[i] != bp[i] {
			t.Fatalf("%s: property %d: %+v != %+v", path, i, ap[i], bp[i])
		}
	}

	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		t.Fatalf("%s: %d children != %d", path, len(ac), len(bc))
	}
	for i := range ac {
		equalTrees(t, ac[i], bc[i], path+"/"+ac[i].Key())
	}
}

func TestRoundTrip(t *testing.T) {
	doc := parse(t, source)

	out := Bytes(doc)
	reparsed, err := parser.NewParser().ParseBytes(out, "roundtrip.vmf")
	if err != nil {
		t.Fatalf("reparsing written output failed: %v\n%s", err, out)
	}

	equalTrees(t, ast.Node(doc), ast.Node(reparsed), "root")
}

func TestWriteCanonicalForm(t *testing.T) {
	// The source above is already in canonical form, so writing it back
	// reproduces it byte for byte.
	doc := parse(t, source)
	if got := string(Bytes(doc)); got != source {
		t.Errorf("Bytes() = %q, want the canonical source", got)
	}
}

func TestWriteTypedFieldsSurvive(t *testing.T) {
	doc := parse(t, source)
	reparsed, err := parser.NewParser().ParseBytes(Bytes(doc), "typed.vmf")
	if err != nil {
		t.Fatal(err)
	}

	world := reparsed.World()
	if world == nil || world.ID != 1 {
		t.Fatalf("world lost in round trip: %+v", world)
	}
	solids := world.Solids()
	if len(solids) != 1 || solids[0].ID != 2 {
		t.Fatalf("solid lost in round trip: %v", solids)
	}
	if ed := solids[0].Editor(); ed == nil || ed.GroupID != 44 {
		t.Errorf("editor groupid lost in round trip: %+v", ed)
	}

	ents := reparsed.Entities()
	if len(ents) != 1 || ents[0].ClassName != "light" {
		t.Fatalf("entity lost in round trip: %v", ents)
	}
}

func TestWriteFile(t *testing.T) {
	doc := parse(t, source)
	path := filepath.Join(t.TempDir(), "out.vmf")

	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != source {
		t.Error("file contents differ from canonical source")
	}
}
