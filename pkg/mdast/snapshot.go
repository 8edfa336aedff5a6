// Package mdast provides the Markdown AST representation used by mdsplice.
// A FileSnapshot is an immutable view of a document at one version: its
// bytes, its line index and the node tree produced by a parser.
package mdast

import "github.com/yaklabco/mdsplice/pkg/lineindex"

// FileSnapshot is an immutable view of a Markdown file at a specific version.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines indexes line starts in Content.
	Lines *lineindex.Table

	// Root is the AST root node (Document).
	Root *Node

	// Version counts refreshes since the original parse, starting at 0.
	Version int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not parse (that requires a Parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   lineindex.Build(content),
	}
}

// Len returns the content length in bytes.
func (f *FileSnapshot) Len() int {
	return len(f.Content)
}

// Slice returns the bytes covered by r, clamped to the content.
func (f *FileSnapshot) Slice(r Range) []byte {
	start := max(0, min(r.Start, len(f.Content)))
	end := max(start, min(r.End, len(f.Content)))
	return f.Content[start:end]
}

// Position converts an offset to a line/column position.
func (f *FileSnapshot) Position(offset int) (lineindex.Position, error) {
	return f.Lines.Locate(offset)
}

// LineContent returns the content of a 1-based line number, excluding the
// terminator. Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > f.Lines.LineCount() {
		return nil
	}
	start, end, _ := f.Lines.LineBounds(f.Content, line)
	return f.Content[start:end]
}

// Bind sets the File back-reference on every node under root.
func (f *FileSnapshot) Bind() {
	for node := range All(f.Root) {
		node.File = f
	}
}
