// Package validator lints parsed map documents.
//
// Validation is separate from parsing: the parser only guarantees the block
// structure is sound, while the validator checks that the tree makes sense
// as a map. Two passes run in sequence:
//
// # Structural Validation
//
// Document shape: exactly one world block, solids with enough sides to
// enclose a volume.
//
// # Semantic Validation
//
// References and values: duplicate ids within a variant, editor blocks
// pointing at groups that do not exist or carrying keys the editor never
// writes, entities without a classname, light entities with undecodable
// light properties, and classnames that look like typos of known light
// classes.
//
// Findings accumulate into an errors.ErrorList so one run reports every
// problem. Semantic checks are skipped while structural findings exist,
// which keeps cascading noise out of the report.
//
// # Usage
//
//	v := validator.NewValidator()
//	if err := v.Validate(doc); err != nil {
//	    fmt.Println(err)
//	}
package validator
