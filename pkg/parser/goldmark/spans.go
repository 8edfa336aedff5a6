package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdsplice/pkg/mdast"
)

// spanLines places a block from its first and last line segments, with
// trailing whitespace and the final terminator trimmed.
func (m *mapper) spanLines(node *mdast.Node, gmNode ast.Node) {
	lines := gmNode.Lines()
	if lines.Len() == 0 {
		return
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	m.place(node, first.Start, m.trimRight(first.Start, last.Stop))
}

// spanHeading places ATX headings from the '#' marker to the end of the
// line, and setext headings from the text to the end of the underline.
func (m *mapper) spanHeading(node *mdast.Node, heading *ast.Heading) {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)

	lineStart := m.lineStart(first.Start)
	markStart := m.skipIndent(lineStart)
	if markStart < len(m.content) && m.content[markStart] == '#' {
		m.place(node, markStart, m.trimRight(markStart, m.lineEnd(lineStart)))
		return
	}

	node.Block.Setext = true
	underline := m.nextLine(m.lineStart(last.Start))
	end := m.trimRight(first.Start, last.Stop)
	if underline < len(m.content) {
		end = m.trimRight(underline, m.lineEnd(underline))
	}
	m.place(node, first.Start, end)
}

// spanChildren places a container as the union of its placed children.
// With marker set, the start extends back over a list or quote marker on
// the first line.
func (m *mapper) spanChildren(node *mdast.Node, marker bool) {
	start, end, ok := m.childUnion(node)
	if !ok {
		return
	}
	if marker {
		start = m.extendToMarker(start)
	}
	m.place(node, start, end)
}

func (m *mapper) childUnion(node *mdast.Node) (int, int, bool) {
	found := false
	var span mdast.Range
	for child := node.FirstChild; child != nil; child = child.Next {
		if !m.placed[child] {
			continue
		}
		if !found {
			span = child.Span
			found = true
			continue
		}
		span = span.Union(child.Span)
	}
	return span.Start, span.End, found
}

// spanDelimited widens the children union by up to width matching delimiter
// characters on each side.
func (m *mapper) spanDelimited(node *mdast.Node, width int) {
	start, end, ok := m.childUnion(node)
	if !ok {
		return
	}
	for range width {
		if start > 0 && isDelimiter(m.content[start-1]) {
			start--
		}
		if end < len(m.content) && isDelimiter(m.content[end]) {
			end++
		}
	}
	m.place(node, start, end)
}

// spanLink widens the label union to cover "[" (or "![") and the trailing
// destination or reference.
func (m *mapper) spanLink(node *mdast.Node, openWidth int) {
	start, end, ok := m.childUnion(node)
	if !ok {
		return
	}
	if start >= openWidth && m.content[start-1] == '[' {
		start -= openWidth
	}
	if end < len(m.content) && m.content[end] == ']' {
		end++
		if end < len(m.content) {
			switch m.content[end] {
			case '(':
				end = m.matchClose(end, '(', ')')
			case '[':
				end = m.matchClose(end, '[', ']')
			}
		}
	}
	m.place(node, start, end)
}

func (m *mapper) spanRow(node *mdast.Node) {
	start, _, ok := m.childUnion(node)
	if !ok {
		return
	}
	lineStart := m.lineStart(start)
	rowStart := m.skipIndent(lineStart)
	m.place(node, rowStart, m.trimRight(rowStart, m.lineEnd(lineStart)))
}

// placeUnresolved gives every node without a segment-derived span a
// position. Thematic breaks, empty fences and bare headings are found by
// scanning for the next non-blank line; anything else gets a zero-width
// span at cursor.
func (m *mapper) placeUnresolved(node *mdast.Node, cursor int) {
	if !m.placed[node] {
		switch {
		case node.Kind == mdast.NodeThematicBreak || node.Kind == mdast.NodeHeading:
			if line, ok := m.nextNonBlank(cursor); ok {
				start := m.skipIndent(line)
				m.place(node, start, m.trimRight(start, m.lineEnd(line)))
			}
		case node.Kind == mdast.NodeCodeBlock && node.CodeBlock() != nil && !node.CodeBlock().Indented:
			if line, ok := m.nextNonBlank(cursor); ok {
				m.spanFence(node, line, -1)
			}
		case m.autolinks[node] != nil:
			m.spanAutolink(node, cursor)
		}
		if !m.placed[node] {
			mdast.SetSpan(node, cursor, cursor)
		}
	}

	childCursor := node.Start()
	for child := node.FirstChild; child != nil; child = child.Next {
		m.placeUnresolved(child, childCursor)
		childCursor = max(childCursor, child.End())
	}
}

func (m *mapper) spanAutolink(node *mdast.Node, cursor int) {
	label := m.autolinks[node]
	rest := m.content[min(cursor, len(m.content)):]
	if idx := bytes.Index(rest, append([]byte{'<'}, label...)); idx >= 0 {
		start := cursor + idx
		end := start + 1 + len(label)
		if end < len(m.content) && m.content[end] == '>' {
			end++
		}
		m.place(node, start, end)
	} else if idx := bytes.Index(rest, label); idx >= 0 {
		m.place(node, cursor+idx, cursor+idx+len(label))
	}
	if m.placed[node] && node.FirstChild != nil {
		textStart := node.Start()
		if m.content[textStart] == '<' {
			textStart++
		}
		m.place(node.FirstChild, textStart, textStart+len(label))
	}
}

func (m *mapper) lineStart(offset int) int {
	offset = min(offset, len(m.content))
	for offset > 0 && m.content[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineEnd returns the offset of the terminator ending the line that starts
// at lineStart, or the end of content.
func (m *mapper) lineEnd(lineStart int) int {
	if idx := bytes.IndexByte(m.content[lineStart:], '\n'); idx >= 0 {
		return lineStart + idx
	}
	return len(m.content)
}

func (m *mapper) nextLine(lineStart int) int {
	end := m.lineEnd(lineStart)
	if end < len(m.content) {
		return end + 1
	}
	return len(m.content)
}

func (m *mapper) nextNonBlank(cursor int) (int, bool) {
	if cursor >= len(m.content) {
		return 0, false
	}
	for line := m.lineStart(cursor); line < len(m.content); line = m.nextLine(line) {
		from := max(line, cursor)
		if len(bytes.TrimSpace(m.content[from:m.lineEnd(line)])) > 0 {
			return line, true
		}
	}
	return 0, false
}

func (m *mapper) skipIndent(offset int) int {
	for offset < len(m.content) && (m.content[offset] == ' ' || m.content[offset] == '\t') {
		offset++
	}
	return offset
}

// trimRight moves end back over whitespace, never past start.
func (m *mapper) trimRight(start, end int) int {
	end = min(end, len(m.content))
	for end > start && isSpace(m.content[end-1]) {
		end--
	}
	return end
}

func (m *mapper) fenceAt(offset int) (byte, int) {
	if offset >= len(m.content) || (m.content[offset] != '`' && m.content[offset] != '~') {
		return 0, 0
	}
	char := m.content[offset]
	length := 0
	for offset+length < len(m.content) && m.content[offset+length] == char {
		length++
	}
	return char, length
}

// extendToMarker walks back from a container's first content byte over the
// list bullet, ordinal or quote marker on the same line.
func (m *mapper) extendToMarker(start int) int {
	lineStart := m.lineStart(start)
	pos := start
	for pos > lineStart && (m.content[pos-1] == ' ' || m.content[pos-1] == '\t') {
		pos--
	}
	if pos == lineStart {
		return start
	}
	pos--
	for pos > lineStart && m.content[pos-1] >= '0' && m.content[pos-1] <= '9' {
		pos--
	}
	return pos
}

func (m *mapper) matchClose(open int, openChar, closeChar byte) int {
	depth := 0
	for i := open; i < len(m.content); i++ {
		switch m.content[i] {
		case '\\':
			i++
		case openChar:
			depth++
		case closeChar:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return open
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDelimiter(c byte) bool {
	return c == '*' || c == '_' || c == '~'
}
