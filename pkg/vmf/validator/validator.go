package validator

import (
	"mapforge/strata/pkg/vmf/ast"
	vmferrors "mapforge/strata/pkg/vmf/errors"
)

// Validator orchestrates all lint passes over a parsed document.
type Validator struct {
	structural *StructuralValidator
	semantic   *SemanticValidator
}

// NewValidator creates a new validator with all lint passes.
func NewValidator() *Validator {
	return &Validator{
		structural: NewStructuralValidator(),
		semantic:   NewSemanticValidator(),
	}
}

// Validate runs all passes on a document. It accumulates findings from all
// passes and returns them together, or nil when the document is clean.
func (v *Validator) Validate(doc *ast.Document) error {
	errors := vmferrors.NewErrorList()

	if err := v.structural.Validate(doc); err != nil {
		if errList, ok := err.(*vmferrors.ErrorList); ok {
			errors.Errors = append(errors.Errors, errList.Errors...)
		}
	}

	// Semantic checks assume a sane document shape; skipping them under
	// structural findings keeps cascading noise out of the report.
	if !errors.HasErrorType(vmferrors.ErrorTypeStructural) {
		if err := v.semantic.Validate(doc); err != nil {
			if errList, ok := err.(*vmferrors.ErrorList); ok {
				errors.Errors = append(errors.Errors, errList.Errors...)
			}
		}
	}

	return errors.ToError()
}

// ValidateStructural runs only the document-shape pass.
func (v *Validator) ValidateStructural(doc *ast.Document) error {
	return v.structural.Validate(doc)
}

// ValidateSemantic runs only the reference and value pass.
func (v *Validator) ValidateSemantic(doc *ast.Document) error {
	return v.semantic.Validate(doc)
}
