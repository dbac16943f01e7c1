package parser

import (
	"bufio"
	"bytes"
	"fmt"

	"mapforge/strata/pkg/vmf/ast"
	vmferrors "mapforge/strata/pkg/vmf/errors"
)

// builder walks the classified line stream and grows the document tree
// behind a single active-node cursor.
type builder struct {
	doc      *ast.Document
	active   ast.Node
	depth    int
	maxDepth int

	// pending is set between a block header and its opening brace. Every
	// header must be followed by exactly one brace; tracking the pair is
	// what makes brace accounting exact.
	pending    bool
	pendingKey string

	errs *vmferrors.ErrorList
}

func newBuilder(doc *ast.Document, maxDepth int) *builder {
	return &builder{
		doc:      doc,
		active:   doc,
		maxDepth: maxDepth,
		errs:     vmferrors.NewErrorList(),
	}
}

func (b *builder) location(line int) ast.Location {
	return ast.Location{File: b.doc.SourceFile, Line: line}
}

// structural records a fatal tree-shape error. The cursor is untrustworthy
// past this point, so run stops immediately.
func (b *builder) structural(line int, format string, args ...any) {
	b.errs.AddError(vmferrors.ErrorTypeStructural, fmt.Sprintf(format, args...), b.location(line))
}

// run consumes the source and returns every error found. A nil return means
// the document tree is complete and well formed.
func (b *builder) run(data []byte) *vmferrors.ErrorList {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// Displacement rows produce very long lines; the default token size is
	// too small for them.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text, kind := classify(scanner.Text())

		if kind == lineSkip {
			continue
		}

		if b.pending && kind != lineOpen {
			b.structural(line, "expected '{' after block header %q", b.pendingKey)
			return b.errs
		}

		switch kind {
		case lineOpen:
			if !b.pending {
				b.structural(line, "unexpected '{' with no preceding block header")
				return b.errs
			}
			b.pending = false

		case lineClose:
			if b.active == ast.Node(b.doc) {
				b.errs.AddErrorWithSuggestion(
					vmferrors.ErrorTypeStructural,
					"unmatched '}' closes more blocks than were opened",
					b.location(line),
					"remove the extra closing brace or add the missing block header",
				)
				return b.errs
			}
			b.active = b.active.Parent()
			b.depth--

		case lineProperty:
			key, value, ok := splitProperty(text)
			if !ok {
				// Recoverable: skip the pair, keep parsing so one run
				// reports every malformed line.
				b.errs.AddErrorWithSuggestion(
					vmferrors.ErrorTypeSyntax,
					fmt.Sprintf("malformed key/value line %q", text),
					b.location(line),
					`use the form "key" "value"`,
				)
				continue
			}
			b.active.Parse(key, value)

		case lineHeader:
			if b.depth+1 > b.maxDepth {
				b.structural(line, "block %q nests deeper than the maximum depth %d", text, b.maxDepth)
				return b.errs
			}
			node := ast.New(text, line)
			ast.Append(b.active, node)
			b.active = node
			b.depth++
			b.pending = true
			b.pendingKey = text
		}
	}

	if err := scanner.Err(); err != nil {
		b.errs.AddError(vmferrors.ErrorTypeIO, fmt.Sprintf("reading input failed: %v", err), b.location(line))
		return b.errs
	}

	if b.pending {
		b.structural(line, "missing '{' after block header %q", b.pendingKey)
		return b.errs
	}
	if b.depth > 0 {
		b.structural(b.active.Line(), "%d block(s) left unclosed at end of input", b.depth)
		return b.errs
	}

	if b.errs.HasErrors() {
		return b.errs
	}
	return nil
}
