package validator

import (
	"fmt"
	"strconv"
	"strings"

	"mapforge/strata/pkg/vmf/ast"
	vmferrors "mapforge/strata/pkg/vmf/errors"
)

// knownLightClasses are the light entity classes the assembler understands.
// Lint uses them to flag classnames that look like typos.
var knownLightClasses = []string{"light", "light_spot", "light_environment", "light_dynamic"}

// knownEditorKeys are the keys Hammer writes into editor blocks. A key
// outside this set is usually a typo, and a misspelled groupid silently
// ungroups the block that carries it.
var knownEditorKeys = []string{
	"groupid", "visgroupid", "color", "visgroupshown",
	"visgroupautoshown", "logicalpos", "comments",
}

// SemanticValidator checks references and values: id uniqueness, group
// links, classnames, and light property formats.
type SemanticValidator struct {
	doc    *ast.Document
	errors *vmferrors.ErrorList
}

// NewSemanticValidator creates a new semantic validator.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{
		errors: vmferrors.NewErrorList(),
	}
}

// Validate performs semantic validation on a document.
func (v *SemanticValidator) Validate(doc *ast.Document) error {
	v.doc = doc
	v.errors = vmferrors.NewErrorList()

	v.validateUniqueIDs()
	v.validateGroupReferences()
	v.validateEditorKeys()
	v.validateEntities()

	return v.errors.ToError()
}

// validateUniqueIDs flags duplicate ids within each variant. Downstream
// lookups are first-match, so duplicates silently shadow each other.
func (v *SemanticValidator) validateUniqueIDs() {
	type variantID struct {
		kind string
		id   int
	}
	seen := make(map[variantID]ast.Node)

	ast.Walk(v.doc, func(n ast.Node) bool {
		var key variantID
		switch t := n.(type) {
		case *ast.Solid:
			key = variantID{"solid", t.ID}
		case *ast.Entity:
			key = variantID{"entity", t.ID}
		case *ast.Group:
			key = variantID{"group", t.ID}
		default:
			return true
		}
		if key.id == 0 {
			return true
		}
		if first, dup := seen[key]; dup {
			v.errors.AddError(
				vmferrors.ErrorTypeSemantic,
				fmt.Sprintf("duplicate %s id %d; first declared at line %d", key.kind, key.id, first.Line()),
				v.doc.Location(n),
			)
			return true
		}
		seen[key] = n
		return true
	})
}

// validateGroupReferences flags editor blocks whose groupid names a group
// that does not exist. The assembler skips these silently; lint surfaces
// them.
func (v *SemanticValidator) validateGroupReferences() {
	groups := make(map[int]bool)
	if w := v.doc.World(); w != nil {
		for _, g := range w.Groups() {
			groups[g.ID] = true
		}
	}

	ast.Walk(v.doc, func(n ast.Node) bool {
		ed, ok := n.(*ast.Editor)
		if !ok {
			return true
		}
		if ed.GroupID != 0 && !groups[ed.GroupID] {
			v.errors.AddErrorWithSuggestion(
				vmferrors.ErrorTypeSemantic,
				fmt.Sprintf("editor block references group %d which does not exist", ed.GroupID),
				v.doc.Location(ed),
				"create the group under the world block or remove the groupid key",
			)
		}
		return false
	})
}

// validateEditorKeys flags editor block keys outside the set Hammer writes.
func (v *SemanticValidator) validateEditorKeys() {
	ast.Walk(v.doc, func(n ast.Node) bool {
		ed, ok := n.(*ast.Editor)
		if !ok {
			return true
		}
		for _, p := range ed.Properties() {
			if knownEditorKey(p.Key) {
				continue
			}
			v.errors.AddErrorWithSuggestion(
				vmferrors.ErrorTypeSemantic,
				fmt.Sprintf("editor block has unknown key %q", p.Key),
				v.doc.Location(ed),
				vmferrors.SuggestKey(p.Key, knownEditorKeys),
			)
		}
		return false
	})
}

func knownEditorKey(key string) bool {
	for _, k := range knownEditorKeys {
		if k == key {
			return true
		}
	}
	return false
}

// validateEntities checks classnames and light property formats.
func (v *SemanticValidator) validateEntities() {
	ast.Walk(v.doc, func(n ast.Node) bool {
		e, ok := n.(*ast.Entity)
		if !ok {
			return true
		}

		if e.ClassName == "" {
			v.errors.AddErrorWithSuggestion(
				vmferrors.ErrorTypeSemantic,
				fmt.Sprintf("entity %d has no classname", e.ID),
				v.doc.Location(e),
				`add a "classname" key`,
			)
			return false
		}

		if strings.HasPrefix(e.ClassName, "light") {
			v.validateLight(e)
		} else if s := vmferrors.SuggestClassName(e.ClassName, knownLightClasses); s != "" {
			v.errors.AddErrorWithSuggestion(
				vmferrors.ErrorTypeSemantic,
				fmt.Sprintf("classname %q is not a known light class but resembles one", e.ClassName),
				v.doc.Location(e),
				s,
			)
		}
		return false
	})
}

// validateLight checks the _light and _cone formats the assembler decodes.
func (v *SemanticValidator) validateLight(e *ast.Entity) {
	raw := e.Property("_light")
	if raw == "" {
		v.errors.AddErrorWithSuggestion(
			vmferrors.ErrorTypeSemantic,
			fmt.Sprintf("light entity %d has no _light property", e.ID),
			v.doc.Location(e),
			`add a "_light" key of the form "R G B brightness"`,
		)
	} else if !decodableLight(raw) {
		v.errors.AddErrorWithSuggestion(
			vmferrors.ErrorTypeSemantic,
			fmt.Sprintf("light entity %d has undecodable _light %q", e.ID, raw),
			v.doc.Location(e),
			`_light must hold four numbers: "R G B brightness"`,
		)
	}

	if e.ClassName == "light_spot" {
		if cone := e.Property("_cone"); cone != "" {
			if _, err := strconv.Atoi(strings.TrimSpace(cone)); err != nil {
				v.errors.AddError(
					vmferrors.ErrorTypeSemantic,
					fmt.Sprintf("light_spot entity %d has non-integer _cone %q", e.ID, cone),
					v.doc.Location(e),
				)
			}
		}
	}
}

// decodableLight reports whether raw splits into exactly four numbers.
func decodableLight(raw string) bool {
	fields := strings.Fields(raw)
	if len(fields) != 4 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}
