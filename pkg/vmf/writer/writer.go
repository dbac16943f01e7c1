// Package writer serializes document trees back to VMF text.
//
// Output follows the layout VMF editors produce: a block's properties come
// first in first-seen order, child blocks after, indented with tabs. Parsing
// the output yields a tree equivalent to the one written. Values containing
// a double quote are not representable in the format and will not survive a
// round trip.
package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"mapforge/strata/pkg/vmf/ast"
)

// Write serializes the document tree as VMF text to w.
func Write(w io.Writer, doc *ast.Document) error {
	bw := bufio.NewWriter(w)
	for _, c := range doc.Children() {
		writeNode(bw, c, 0)
	}
	return bw.Flush()
}

// Bytes returns the serialized document.
func Bytes(doc *ast.Document) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = Write(&buf, doc)
	return buf.Bytes()
}

// WriteFile serializes the document to path, replacing any existing file.
func WriteFile(path string, doc *ast.Document) error {
	if err := os.WriteFile(path, Bytes(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeNode(bw *bufio.Writer, n ast.Node, depth int) {
	indent := strings.Repeat("\t", depth)

	bw.WriteString(indent)
	bw.WriteString(n.Key())
	bw.WriteByte('\n')
	bw.WriteString(indent)
	bw.WriteString("{\n")

	for _, p := range n.Properties() {
		fmt.Fprintf(bw, "%s\t\"%s\" \"%s\"\n", indent, p.Key, p.Value)
	}
	for _, c := range n.Children() {
		writeNode(bw, c, depth+1)
	}

	bw.WriteString(indent)
	bw.WriteString("}\n")
}
