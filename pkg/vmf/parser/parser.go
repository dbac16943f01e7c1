package parser

import (
	"fmt"
	"os"

	"mapforge/strata/pkg/vmf/ast"
	vmferrors "mapforge/strata/pkg/vmf/errors"
)

// Parser parses VMF map files into document trees.
// It handles line classification, tree construction, and brace accounting.
type Parser struct {
	// Configuration
	maxFileSize int64 // Maximum file size in bytes (default: 64MB)
	maxDepth    int   // Maximum block nesting depth (default: 32)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 64 * 1024 * 1024, // 64MB
		maxDepth:    32,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum block nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// Parse parses a map file at the given path and returns the document tree.
// It returns an error if the file cannot be read, exceeds the size limit, or
// contains structural or syntax errors.
func (p *Parser) Parse(path string) (*ast.Document, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &vmferrors.Error{
			Type:    vmferrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{
				File: path,
			},
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &vmferrors.Error{
			Type:    vmferrors.ErrorTypeIO,
			Message: fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: ast.Location{
				File: path,
			},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &vmferrors.Error{
			Type:    vmferrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{
				File: path,
			},
		}
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses map text from a byte slice. This is useful for testing
// or parsing maps already held in memory.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &vmferrors.Error{
			Type:    vmferrors.ErrorTypeIO,
			Message: fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{
				File: sourcePath,
			},
		}
	}

	doc := ast.NewDocument(sourcePath)
	if errs := newBuilder(doc, p.maxDepth).run(data); errs != nil {
		// Context extraction only works when sourcePath names a real
		// file, but it is safe to call either way.
		for i, e := range errs.Errors {
			errs.Errors[i] = vmferrors.AddContextToError(e)
		}
		return nil, errs
	}

	return doc, nil
}
