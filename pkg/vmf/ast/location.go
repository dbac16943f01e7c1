package ast

import "fmt"

// Location identifies a position in a map source file. The format is
// line-oriented, so a line number is as precise as positions get.
type Location struct {
	// File is the source path, or "" for in-memory input.
	File string

	// Line is the 1-based line number.
	Line int
}

// IsValid reports whether the location points at a real source line.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// String formats the location as "file:line".
func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d", file, l.Line)
}
