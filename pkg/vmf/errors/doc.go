// Package errors provides rich error types for map parsing and validation.
//
// Errors carry a category, a source location, optional surrounding source
// context, and an optional suggestion. An ErrorList accumulates several
// findings so a single run can report everything wrong with a file instead
// of stopping at the first problem.
//
// # Error Categories
//
// Syntax: a line that is neither a block header, a brace, nor a quoted
// key/value pair
//
// Structural: brace imbalance or nesting beyond the depth limit
//
// Semantic: lint findings such as duplicate ids or dangling group references
//
// IO: file access failures and size-limit rejections
//
// # Usage
//
//	errs := errors.NewErrorList()
//	errs.AddError(errors.ErrorTypeStructural, "unmatched closing brace", loc)
//	if errs.HasErrors() {
//	    return errs.ToError()
//	}
package errors
