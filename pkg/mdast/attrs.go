package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// Setext is true for underlined headings.
	Setext bool

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string
	StartNumber  int
	Tight        bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// FenceChar is the fence character ('`' or '~'), zero for indented blocks.
	FenceChar byte

	// FenceLength is the number of fence characters.
	FenceLength int

	// Info is the info string (language identifier, etc.).
	Info string

	// Body is the code content, without fences.
	Body []byte

	// Indented is true for indented code blocks (vs fenced).
	Indented bool
}

// Language returns the first word of the info string.
func (c *CodeBlockAttrs) Language() string {
	for i := range len(c.Info) {
		if c.Info[i] == ' ' || c.Info[i] == '\t' {
			return c.Info[:i]
		}
	}
	return c.Info
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText and NodeCodeSpan.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	Destination string
	Title       string
	Autolink    bool
}
