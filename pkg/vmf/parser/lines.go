package parser

import "strings"

// lineKind is the token class of one significant source line, decided by its
// first non-whitespace character.
type lineKind int

const (
	lineSkip     lineKind = iota // blank line or // comment
	lineOpen                     // {
	lineClose                    // }
	lineProperty                 // "key" "value"
	lineHeader                   // block header
)

// classify trims raw and reports its token kind. The returned text is the
// trimmed line, which for headers doubles as the node's key.
func classify(raw string) (text string, kind lineKind) {
	text = strings.TrimSpace(raw)
	switch {
	case text == "" || strings.HasPrefix(text, "//"):
		return text, lineSkip
	case text[0] == '{':
		return text, lineOpen
	case text[0] == '}':
		return text, lineClose
	case text[0] == '"':
		return text, lineProperty
	default:
		return text, lineHeader
	}
}

// splitProperty extracts the key and value from a trimmed property line of
// the form "key" "value". The key sits between the first two quotes, the
// value between the next quote and the line's final quote, so a stray quote
// inside the value survives extraction. ok is false when the line does not
// carry two complete quoted fields.
func splitProperty(text string) (key, value string, ok bool) {
	rest := text[1:] // classify guarantees the leading quote
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", "", false
	}
	key = rest[:end]

	rest = strings.TrimSpace(rest[end+1:])
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", "", false
	}
	return key, rest[1 : len(rest)-1], true
}
