package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdsplice/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree and assigns every
// node a byte span into content.
type mapper struct {
	content []byte

	// placed marks nodes whose span came from goldmark segments. The rest
	// are positioned by placeUnresolved once their siblings are known.
	placed map[*mdast.Node]bool

	// autolinks remembers the label of autolinks, which goldmark does not
	// position.
	autolinks map[*mdast.Node][]byte
}

func newMapper(content []byte) *mapper {
	return &mapper{
		content:   content,
		placed:    make(map[*mdast.Node]bool),
		autolinks: make(map[*mdast.Node][]byte),
	}
}

func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	m.place(doc, 0, len(m.content))
	return doc
}

func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		mdast.AppendChild(parent, m.mapNode(child))
	}
}

func (m *mapper) place(node *mdast.Node, start, end int) {
	mdast.SetSpan(node, start, end)
	m.placed[node] = true
}

//nolint:cyclop,funlen // one case per goldmark node type
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = &mdast.BlockAttrs{HeadingLevel: gmn.Level}
		m.mapChildren(gmn, node)
		m.spanHeading(node, gmn)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)
		if gmNode.Kind() == ast.KindTextBlock {
			node.Ext = map[string]any{"tight": true}
		}
		m.mapChildren(gmNode, node)
		m.spanLines(node, gmNode)

	case *ast.List:
		node = mdast.NewNode(mdast.NodeList)
		attrs := &mdast.ListAttrs{
			Ordered:     gmn.IsOrdered(),
			StartNumber: gmn.Start,
			Tight:       gmn.IsTight,
		}
		if !gmn.IsOrdered() {
			attrs.BulletMarker = string(gmn.Marker)
		}
		node.Block = &mdast.BlockAttrs{List: attrs}
		m.mapChildren(gmn, node)
		m.spanChildren(node, false)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmn, node)
		m.spanChildren(node, true)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmn, node)
		m.spanChildren(node, true)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{
			Indented: true,
			Body:     m.linesValue(gmn),
		}}
		if gmn.Lines().Len() > 0 {
			first, last := gmn.Lines().At(0), gmn.Lines().At(gmn.Lines().Len()-1)
			m.place(node, m.lineStart(first.Start), m.trimRight(first.Start, last.Stop))
		}

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		m.spanLines(node, gmn)
		if gmn.HasClosure() {
			closure := gmn.ClosureLine
			start := closure.Start
			if m.placed[node] {
				start = node.Start()
			}
			m.place(node, start, m.trimRight(start, closure.Stop))
		}

	case *ast.Text:
		node = m.mapText(gmn)

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = &mdast.InlineAttrs{Text: gmn.Value}

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level >= 2 {
			kind = mdast.NodeStrong
		}
		node = mdast.NewNode(kind)
		m.mapChildren(gmn, node)
		m.spanDelimited(node, gmn.Level)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}}
		m.mapChildren(gmn, node)
		m.spanLink(node, 1)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}}
		m.mapChildren(gmn, node)
		m.spanLink(node, 2)

	case *ast.AutoLink:
		node = mdast.NewNode(mdast.NodeLink)
		label := gmn.Label(m.content)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.URL(m.content)),
			Autolink:    true,
		}}
		text := mdast.NewNode(mdast.NodeText)
		text.Inline = &mdast.InlineAttrs{Text: label}
		mdast.AppendChild(node, text)
		m.autolinks[node] = label

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		if gmn.Segments.Len() > 0 {
			first, last := gmn.Segments.At(0), gmn.Segments.At(gmn.Segments.Len()-1)
			m.place(node, first.Start, last.Stop)
		}

	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Ext = map[string]any{"strikethrough": true}
		m.mapChildren(gmn, node)
		m.spanDelimited(node, 2)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeRaw)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": gmn.IsChecked}

	case *east.Table:
		node = mdast.NewNode(mdast.NodeTable)
		node.Ext = map[string]any{"alignments": gmn.Alignments}
		m.mapChildren(gmn, node)
		m.spanChildren(node, false)

	case *east.TableHeader, *east.TableRow:
		node = mdast.NewNode(mdast.NodeRaw)
		node.Ext = map[string]any{"tableRow": true}
		m.mapChildren(gmNode, node)
		m.spanRow(node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.NodeRaw)
		node.Ext = map[string]any{"tableCell": true}
		m.mapChildren(gmn, node)
		m.spanChildren(node, false)

	default:
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
		if gmNode.Type() == ast.TypeBlock {
			m.spanLines(node, gmNode)
		}
		if !m.placed[node] {
			m.spanChildren(node, false)
		}
	}

	return node
}

func (m *mapper) mapText(textNode *ast.Text) *mdast.Node {
	seg := textNode.Segment
	node := mdast.NewNode(mdast.NodeText)
	node.Inline = &mdast.InlineAttrs{Text: seg.Value(m.content)}
	m.place(node, seg.Start, seg.Stop)

	if textNode.SoftLineBreak() || textNode.HardLineBreak() {
		node.Ext = map[string]any{"softBreak": textNode.SoftLineBreak(), "hardBreak": textNode.HardLineBreak()}
	}
	return node
}

func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	attrs := &mdast.CodeBlockAttrs{
		FenceChar:   '`',
		FenceLength: 3,
		Body:        m.linesValue(codeBlock),
	}
	if codeBlock.Info != nil {
		attrs.Info = string(codeBlock.Info.Segment.Value(m.content))
	}
	node.Block = &mdast.BlockAttrs{CodeBlock: attrs}

	lastBody := -1
	if lines := codeBlock.Lines(); lines.Len() > 0 {
		lastBody = lines.At(lines.Len() - 1).Start
	}

	openLine := -1
	switch {
	case codeBlock.Info != nil:
		openLine = m.lineStart(codeBlock.Info.Segment.Start)
	case lastBody >= 0:
		bodyStart := m.lineStart(codeBlock.Lines().At(0).Start)
		if bodyStart > 0 {
			openLine = m.lineStart(bodyStart - 1)
		}
	}
	if openLine < 0 {
		// No info string and no body: placeUnresolved scans for the fence.
		return node
	}

	m.spanFence(node, openLine, lastBody)
	return node
}

// spanFence places a fenced code block whose opening fence sits on the line
// starting at openLine. lastBody is an offset on the last body line, or -1
// for an empty block. The span ends on the closing fence when the following
// line holds one.
func (m *mapper) spanFence(node *mdast.Node, openLine, lastBody int) {
	attrs := node.Block.CodeBlock

	fenceStart := m.fenceStart(openLine)
	if fenceStart < 0 {
		fenceStart = m.skipIndent(openLine)
	} else {
		attrs.FenceChar, attrs.FenceLength = m.fenceAt(fenceStart)
	}

	end := m.trimRight(fenceStart, m.lineEnd(openLine))
	closing := m.nextLine(openLine)
	if lastBody >= 0 {
		bodyLine := m.lineStart(lastBody)
		end = max(end, m.trimRight(bodyLine, m.lineEnd(bodyLine)))
		closing = m.nextLine(bodyLine)
	}

	if closing < len(m.content) {
		if at := m.fenceStart(closing); at >= 0 {
			char, length := m.fenceAt(at)
			lineEnd := m.lineEnd(closing)
			if char == attrs.FenceChar && length >= attrs.FenceLength &&
				len(bytes.TrimSpace(m.content[at+length:lineEnd])) == 0 {
				end = m.trimRight(at, lineEnd)
			}
		}
	}

	m.place(node, fenceStart, end)
}

// fenceStart returns the offset of the first fence run on a line, or -1.
func (m *mapper) fenceStart(lineStart int) int {
	line := m.content[lineStart:m.lineEnd(lineStart)]
	best := -1
	for _, fence := range [][]byte{[]byte("```"), []byte("~~~")} {
		if idx := bytes.Index(line, fence); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return -1
	}
	return lineStart + best
}

func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	start, end := -1, -1
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			text = append(text, t.Segment.Value(m.content)...)
			if start < 0 {
				start = t.Segment.Start
			}
			end = t.Segment.Stop
		}
	}
	node.Inline = &mdast.InlineAttrs{Text: text}

	if start >= 0 {
		m.place(node, m.backticksBefore(start), m.backticksAfter(end))
	}
	return node
}

// backticksBefore moves start back over the padding space and the opening
// backtick run. Without a backtick run start is returned unchanged.
func (m *mapper) backticksBefore(start int) int {
	pos := start
	if pos > 0 && m.content[pos-1] == ' ' {
		pos--
	}
	if pos == 0 || m.content[pos-1] != '`' {
		return start
	}
	for pos > 0 && m.content[pos-1] == '`' {
		pos--
	}
	return pos
}

func (m *mapper) backticksAfter(end int) int {
	pos := end
	if pos < len(m.content) && m.content[pos] == ' ' {
		pos++
	}
	if pos >= len(m.content) || m.content[pos] != '`' {
		return end
	}
	for pos < len(m.content) && m.content[pos] == '`' {
		pos++
	}
	return pos
}

func (m *mapper) linesValue(gmNode ast.Node) []byte {
	var buf []byte
	lines := gmNode.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf = append(buf, seg.Value(m.content)...)
	}
	return buf
}
