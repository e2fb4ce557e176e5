package scan

import "strings"

// Position is a location in source text.
type Position struct {
	// Line is 1-based.
	Line int
	// Column is a 0-based byte offset within the line.
	Column   int
	LineText string
}

// PositionAt converts a byte offset in code to a line and column.
func PositionAt(code string, offset int) Position {
	if offset > len(code) {
		offset = len(code)
	}
	if offset < 0 {
		offset = 0
	}
	lineStart := strings.LastIndexByte(code[:offset], '\n') + 1
	lineEnd := strings.IndexByte(code[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(code)
	} else {
		lineEnd += offset
	}
	return Position{
		Line:     strings.Count(code[:lineStart], "\n") + 1,
		Column:   offset - lineStart,
		LineText: strings.TrimSuffix(code[lineStart:lineEnd], "\r"),
	}
}
