// Package lineindex maps absolute byte offsets in a text to line/column
// positions and back.
//
// Lines are 1-based. Columns are 0-based byte offsets from the start of the
// line, which is the convention used by source maps. A line ends after "\n";
// "\r\n" counts as a single terminator and a lone "\r" does not end a line.
package lineindex

import (
	"fmt"
	"slices"
)

// Position is a line/column pair. Line is 1-based, Column is a 0-based byte
// column.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// OutOfRangeError reports an offset or line/column pair that cannot be
// resolved against the table.
type OutOfRangeError struct {
	Offset int
	Line   int
	Column int
	Len    int
}

func (e *OutOfRangeError) Error() string {
	if e.Line != 0 || e.Column != 0 {
		return fmt.Sprintf("position %d:%d out of range", e.Line, e.Column)
	}
	return fmt.Sprintf("offset %d out of range [0, %d]", e.Offset, e.Len)
}

// Table is an immutable index of line-start offsets.
type Table struct {
	starts []int
	size   int
}

// Build scans text once and records where every line begins.
func Build(text []byte) *Table {
	starts := make([]int, 1, 16)
	for i, c := range text {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Table{starts: starts, size: len(text)}
}

// Len returns the length of the indexed text.
func (t *Table) Len() int {
	return t.size
}

// LineCount returns the number of lines. An empty text has one line, and a
// text ending with a terminator has an empty final line.
func (t *Table) LineCount() int {
	return len(t.starts)
}

// Starts returns a copy of the sorted line-start offsets.
func (t *Table) Starts() []int {
	return slices.Clone(t.starts)
}

// Locate converts an absolute offset into a position. Offsets past the end
// of the text resolve against the last line.
func (t *Table) Locate(offset int) (Position, error) {
	if offset < 0 {
		return Position{}, &OutOfRangeError{Offset: offset, Len: t.size}
	}

	idx := t.lineIndex(offset)
	return Position{Line: idx + 1, Column: offset - t.starts[idx]}, nil
}

// LineStart returns the offset of the first byte of the line containing
// offset.
func (t *Table) LineStart(offset int) (int, error) {
	if offset < 0 {
		return 0, &OutOfRangeError{Offset: offset, Len: t.size}
	}
	return t.starts[t.lineIndex(offset)], nil
}

// Offset converts a position back into an absolute offset. The column may
// point one past the last byte of the line (the terminator position), and a
// column on the last line may point at the end of the text.
func (t *Table) Offset(line, column int) (int, error) {
	if line < 1 || line > len(t.starts) || column < 0 {
		return 0, &OutOfRangeError{Line: line, Column: column, Len: t.size}
	}

	start := t.starts[line-1]
	limit := t.size
	if line < len(t.starts) {
		limit = t.starts[line] - 1
	}

	if start+column > limit {
		return 0, &OutOfRangeError{Line: line, Column: column, Len: t.size}
	}
	return start + column, nil
}

// LineBounds returns the [start, end) range of a 1-based line, excluding its
// terminator, and the terminator itself ("", "\n" or "\r\n").
func (t *Table) LineBounds(text []byte, line int) (int, int, string) {
	if line < 1 || line > len(t.starts) {
		return 0, 0, ""
	}

	start := t.starts[line-1]
	if line == len(t.starts) {
		return start, t.size, ""
	}

	end := t.starts[line] - 1
	if end > start && end-1 < len(text) && text[end-1] == '\r' {
		return start, end - 1, "\r\n"
	}
	return start, end, "\n"
}

func (t *Table) lineIndex(offset int) int {
	idx, found := slices.BinarySearch(t.starts, offset)
	if found {
		return idx
	}
	return idx - 1
}
