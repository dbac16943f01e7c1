package validator

import (
	"fmt"

	"mapforge/strata/pkg/vmf/ast"
	vmferrors "mapforge/strata/pkg/vmf/errors"
)

// StructuralValidator checks the document's shape: world presence and solids
// that can actually enclose a volume.
type StructuralValidator struct {
	doc    *ast.Document
	errors *vmferrors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{
		errors: vmferrors.NewErrorList(),
	}
}

// Validate performs structural validation on a document.
func (v *StructuralValidator) Validate(doc *ast.Document) error {
	v.doc = doc
	v.errors = vmferrors.NewErrorList()

	v.validateWorld()
	v.validateSolids()

	return v.errors.ToError()
}

// validateWorld checks that exactly one world block exists at the top level.
func (v *StructuralValidator) validateWorld() {
	var worlds []*ast.World
	for _, c := range v.doc.Children() {
		if w, ok := c.(*ast.World); ok {
			worlds = append(worlds, w)
		}
	}

	switch {
	case len(worlds) == 0:
		v.errors.AddErrorWithSuggestion(
			vmferrors.ErrorTypeStructural,
			"document has no world block",
			ast.Location{File: v.doc.SourceFile, Line: 1},
			"add a world block containing the map's brush geometry",
		)
	case len(worlds) > 1:
		for _, extra := range worlds[1:] {
			v.errors.AddErrorWithSuggestion(
				vmferrors.ErrorTypeStructural,
				"document has more than one world block; only the first is used",
				v.doc.Location(extra),
				"merge the extra world block into the first",
			)
		}
	}
}

// validateSolids checks that every solid has enough sides to enclose a
// volume. A convex volume needs at least four planes.
func (v *StructuralValidator) validateSolids() {
	ast.Walk(v.doc, func(n ast.Node) bool {
		s, ok := n.(*ast.Solid)
		if !ok {
			return true
		}
		if got := len(s.Sides()); got < 4 {
			v.errors.AddErrorWithSuggestion(
				vmferrors.ErrorTypeStructural,
				fmt.Sprintf("solid %d has %d side(s); a closed volume needs at least 4", s.ID, got),
				v.doc.Location(s),
				"re-export the map or delete the degenerate solid",
			)
		}
		return false
	})
}
