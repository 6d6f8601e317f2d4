package scan

import "strings"

// Position is a 0-based line and byte column.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// PositionOf converts a byte offset into a line/column position. Offsets past
// the end of text are clamped.
func PositionOf(text string, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}

	prefix := text[:offset]
	line := strings.Count(prefix, "\n")
	col := offset - (strings.LastIndexByte(prefix, '\n') + 1)

	return Position{Line: line, Col: col}
}

// Offset converts a line/column position into a byte offset. It returns
// false when the line does not exist. Columns past the end of the line are
// clamped to the line end.
func Offset(text string, pos Position) (int, bool) {
	if pos.Line < 0 || pos.Col < 0 {
		return 0, false
	}

	start := 0
	for range pos.Line {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return 0, false
		}
		start += i + 1
	}

	end := len(text)
	if i := strings.IndexByte(text[start:], '\n'); i >= 0 {
		end = start + i
	}

	return min(start+pos.Col, end), true
}
