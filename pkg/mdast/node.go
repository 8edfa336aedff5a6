package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

var kindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeTable:         "Table",
	NodeText:          "Text",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeCodeSpan:      "CodeSpan",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeSoftBreak:     "SoftBreak",
	NodeHardBreak:     "HardBreak",
	NodeHTMLInline:    "HTMLInline",
	NodeRaw:           "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseNodeKind looks a kind up by its String form.
func ParseNodeKind(name string) (NodeKind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return NodeKind(kind), true
		}
	}
	return 0, false
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the byte range of the node in File.Content.
	// Nodes the parser could not place get a zero-width span.
	Span Range

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs

	// Ext holds extension-specific attributes (e.g., GFM).
	Ext map[string]any
}

// Start returns the absolute offset where the node begins.
func (n *Node) Start() int {
	return n.Span.Start
}

// End returns the absolute offset just past the node.
func (n *Node) End() int {
	return n.Span.End
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind <= NodeTable
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind >= NodeText && n.Kind <= NodeHTMLInline
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Text returns the source bytes covered by the node, or nil when the node
// is detached from a file.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}
	return n.File.Slice(n.Span)
}

// HeadingLevel returns the heading level, or 0 for non-heading nodes.
func (n *Node) HeadingLevel() int {
	if n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// CodeBlock returns the code block attributes, or nil.
func (n *Node) CodeBlock() *CodeBlockAttrs {
	if n.Kind != NodeCodeBlock || n.Block == nil {
		return nil
	}
	return n.Block.CodeBlock
}

// PlainText concatenates the literal text of all descendant text and code
// span nodes.
func (n *Node) PlainText() string {
	var buf []byte
	for node := range All(n) {
		if (node.Kind == NodeText || node.Kind == NodeCodeSpan) && node.Inline != nil {
			buf = append(buf, node.Inline.Text...)
		}
	}
	return string(buf)
}
