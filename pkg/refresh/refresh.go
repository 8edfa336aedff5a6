// Package refresh rebuilds a document's AST after a single edit.
//
// Every edit produces a ChangeRange describing which span of the previous
// text was replaced and by how many bytes. Parsers that can reuse the
// previous tree implement IncrementalParser and receive that hint; others
// are asked for a full parse of the new text.
package refresh

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdsplice/pkg/mdast"
)

// ErrInvalidChange is returned when a ChangeRange does not describe the
// difference between the previous and new texts.
var ErrInvalidChange = errors.New("invalid change range")

// Parser produces a snapshot from text.
// Following the rule that interfaces belong to their consumer, the parser
// contract lives here rather than in the parser packages.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// IncrementalParser can update a previous snapshot given the edited span.
type IncrementalParser interface {
	Parser
	Reparse(ctx context.Context, prev *mdast.FileSnapshot, content []byte, change ChangeRange) (*mdast.FileSnapshot, error)
}

// ChangeRange describes one edit for a reparse.
type ChangeRange struct {
	// Span is the replaced range in the previous text.
	Span mdast.Range

	// NewLength is the number of bytes that replaced Span.
	NewLength int

	// Origin is Span mapped back to the original text.
	Origin mdast.Range
}

// Delta returns the change in text length.
func (c ChangeRange) Delta() int {
	return c.NewLength - c.Span.Len()
}

// NewSpan returns the range the replacement occupies in the new text.
func (c ChangeRange) NewSpan() mdast.Range {
	return mdast.Range{Start: c.Span.Start, End: c.Span.Start + c.NewLength}
}

func (c ChangeRange) String() string {
	return fmt.Sprintf("%s -> %d bytes (origin %s)", c.Span, c.NewLength, c.Origin)
}

// ParseError wraps a parser failure during refresh.
type ParseError struct {
	Path    string
	Version int
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s (version %d): %v", e.Path, e.Version, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Check verifies that change maps a text of prevLen bytes onto one of
// newLen bytes.
func (c ChangeRange) Check(prevLen, newLen int) error {
	if !c.Span.Valid(prevLen) || c.NewLength < 0 {
		return fmt.Errorf("%w: span %s outside text of length %d", ErrInvalidChange, c.Span, prevLen)
	}
	if prevLen+c.Delta() != newLen {
		return fmt.Errorf("%w: %s turns %d bytes into %d, got %d",
			ErrInvalidChange, c, prevLen, prevLen+c.Delta(), newLen)
	}
	return nil
}

// Refresh returns the snapshot for content, the text produced by applying
// change to prev. The result's version is one past prev's.
func Refresh(
	ctx context.Context,
	parser Parser,
	prev *mdast.FileSnapshot,
	content []byte,
	change ChangeRange,
) (*mdast.FileSnapshot, error) {
	if err := change.Check(prev.Len(), len(content)); err != nil {
		return nil, err
	}

	var (
		next *mdast.FileSnapshot
		err  error
	)
	if incremental, ok := parser.(IncrementalParser); ok {
		next, err = incremental.Reparse(ctx, prev, content, change)
	} else {
		next, err = parser.Parse(ctx, prev.Path, content)
	}
	if err != nil {
		return nil, &ParseError{Path: prev.Path, Version: prev.Version + 1, Err: err}
	}
	if next == nil || next.Root == nil {
		return nil, &ParseError{Path: prev.Path, Version: prev.Version + 1, Err: errors.New("parser returned no tree")}
	}

	next.Version = prev.Version + 1
	return next, nil
}
