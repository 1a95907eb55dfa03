// Package patch splices generated member blocks into source text at class
// closing braces, and writes the patched copies into the build directory
// mirror.
package patch

import (
	"fmt"
	"strings"

	"gcweave/internal/catalog"
	"gcweave/internal/gen"
)

// File returns source with every extent group's generated block spliced in
// immediately before the class's closing brace. Groups must be sorted
// ascending by (end line, end column) — the grouper guarantees this; File
// treats a violation as a defect, not a recoverable condition.
//
// All original bytes outside the spliced blocks are preserved in order. A
// group whose classes generate nothing (no bases, no fields, or already
// instrumented) consumes its extent and leaves the line untouched.
func File(source []byte, groups []catalog.ExtentGroup) ([]byte, error) {
	lines := splitLines(source)
	var out strings.Builder
	out.Grow(len(source))

	cursor := 0
	for i, line := range lines {
		ln := i + 1
		if cursor >= len(groups) || groups[cursor].Extent.EndLine != ln {
			out.WriteString(line)
			continue
		}

		// One or more pending extents end on this line. Each splice cuts the
		// line's remaining tail just before the closing brace; the consumed
		// prefix length shifts the cut index of every later extent on the
		// same line.
		rest := line
		consumed := 0
		for cursor < len(groups) && groups[cursor].Extent.EndLine == ln {
			group := groups[cursor]
			cursor++

			block := groupBlock(group)
			if len(block) == 0 {
				continue
			}

			cut := group.Extent.EndCol - 2 - consumed
			if cut < 0 || cut > len(rest) {
				return nil, fmt.Errorf("insertion point %d:%d outside its line", ln, group.Extent.EndCol)
			}

			out.WriteString(rest[:cut])
			for _, bl := range block {
				out.WriteString(bl)
			}
			rest = rest[cut:]
			consumed += cut
		}
		out.WriteString(rest)
	}

	if cursor < len(groups) {
		return nil, fmt.Errorf("%d insertion points beyond end of file", len(groups)-cursor)
	}
	return []byte(out.String()), nil
}

// groupBlock renders the generated blocks for every record at one extent,
// in record order. Already-instrumented classes contribute nothing.
func groupBlock(group catalog.ExtentGroup) []string {
	var block []string
	for _, rec := range group.Records {
		if rec.Instrumented {
			continue
		}
		block = append(block, gen.Block(rec.Bases, rec.Fields)...)
	}
	return block
}

// splitLines splits source into lines, each keeping its trailing newline.
func splitLines(source []byte) []string {
	lines := strings.SplitAfter(string(source), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
