// Package parser parses VMF map files into document trees.
//
// The format is line-oriented: each significant line is a block header, an
// opening brace, a closing brace, or a quoted "key" "value" pair. A single
// pass over the lines drives a cursor through the tree under construction.
// Block headers create a node and descend into it, closing braces pop back
// to the parent, and key/value lines feed the current node's Parse method.
// Opening braces carry no information of their own; they are checked for
// balance and otherwise skipped.
//
// # Parsing Process
//
// 1. Size check against the configured limit
//
// 2. Line classification (skip blanks and // comments)
//
// 3. Tree construction with strict brace accounting
//
// 4. Error enrichment with surrounding source context
//
// # Error Handling
//
// Brace imbalance, over-deep nesting, and a header without its opening brace
// are structural errors and abort the parse; no partial tree is returned.
// Malformed key/value lines are syntax errors; the parser records them,
// skips the pair, and keeps going so one run reports every bad line, then
// fails. All findings come back as an *errors.ErrorList.
//
// # Usage
//
//	p := parser.NewParser().WithMaxFileSize(64 << 20)
//	doc, err := p.Parse("maps/arena.vmf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.World().ID)
package parser
