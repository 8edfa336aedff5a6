// Package buffer holds a document under edit.
//
// A Buffer starts from a parsed snapshot of the original text and applies
// batches of sequential edits. After every single edit the AST is
// refreshed, and an origin index records where each byte of the current
// text came from. That index lets diagnostics and source maps produced
// against the current text be expressed in terms of the original.
package buffer

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/fix"
	"github.com/yaklabco/mdsplice/pkg/mdast"
	"github.com/yaklabco/mdsplice/pkg/origin"
	"github.com/yaklabco/mdsplice/pkg/refresh"
)

// Buffer is a mutable document. It is not safe for concurrent use.
type Buffer struct {
	parser   refresh.Parser
	original *mdast.FileSnapshot
	current  *mdast.FileSnapshot
	origin   *origin.Index
	changes  []refresh.ChangeRange
}

// New creates a buffer whose original and current text is snapshot.
// The parser is used to refresh the AST after each edit.
func New(snapshot *mdast.FileSnapshot, parser refresh.Parser) *Buffer {
	return &Buffer{
		parser:   parser,
		original: snapshot,
		current:  snapshot,
		origin:   origin.New(snapshot.Len()),
	}
}

// Code returns the current text. Callers must not modify it.
func (b *Buffer) Code() []byte {
	return b.current.Content
}

// AST returns the snapshot of the current text.
func (b *Buffer) AST() *mdast.FileSnapshot {
	return b.current
}

// Original returns the snapshot the buffer was created from.
func (b *Buffer) Original() *mdast.FileSnapshot {
	return b.original
}

// Changes returns the change ranges of every edit executed so far.
func (b *Buffer) Changes() []refresh.ChangeRange {
	out := make([]refresh.ChangeRange, len(b.changes))
	copy(out, b.changes)
	return out
}

// Execute applies edits in order. Each edit is interpreted against the text
// produced by the edits before it, and the AST is refreshed after each one.
//
// Execute is all or nothing: if any edit is out of range or a refresh
// fails, the buffer keeps its previous state and the error is returned.
func (b *Buffer) Execute(ctx context.Context, edits []fix.Edit) (*mdast.FileSnapshot, error) {
	if len(edits) == 0 {
		return b.current, nil
	}

	index := b.origin.Clone()
	snap := b.current
	changes := make([]refresh.ChangeRange, 0, len(edits))

	for i, edit := range edits {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("execute cancelled: %w", err)
		}
		if err := fix.Validate(edit, snap.Len()); err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}

		change := refresh.ChangeRange{
			Span:      mdast.Range{Start: edit.Start, End: edit.End},
			NewLength: len(edit.Text),
			Origin:    mdast.Range{Start: mustLocate(index, edit.Start), End: mustLocate(index, edit.End)},
		}

		if err := index.Splice(edit.Start, edit.End, len(edit.Text)); err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}

		next, err := refresh.Refresh(ctx, b.parser, snap, fix.Apply(snap.Content, edit), change)
		if err != nil {
			return nil, fmt.Errorf("edit %d (%s): %w", i, edit, err)
		}

		snap = next
		changes = append(changes, change)
	}

	b.current = snap
	b.origin = index
	b.changes = append(b.changes, changes...)
	return snap, nil
}

// LocateOrigin maps an offset in the current text to the original text.
// Bytes inserted by an edit map to the original offset where they were
// inserted. The end of the current text maps to the end of the original.
func (b *Buffer) LocateOrigin(offset int) (int, error) {
	return b.origin.Locate(offset)
}

// TranslateDiagnostic re-expresses a diagnostic recorded against the
// current text in original coordinates. Only Start and Length change.
func (b *Buffer) TranslateDiagnostic(d diag.Diagnostic) (diag.Diagnostic, error) {
	start, err := b.origin.Locate(d.Start)
	if err != nil {
		return diag.Diagnostic{}, fmt.Errorf("translate diagnostic start: %w", err)
	}
	end, err := b.origin.Locate(d.End())
	if err != nil {
		return diag.Diagnostic{}, fmt.Errorf("translate diagnostic end: %w", err)
	}
	if end < start {
		panic(fmt.Sprintf("buffer: origin mapping decreased from %d to %d over [%d,%d)", start, end, d.Start, d.End()))
	}

	out := d
	out.Start = start
	out.Length = end - start
	out.Location = nil
	return out, nil
}

// mustLocate is used for offsets already validated against index.
func mustLocate(index *origin.Index, offset int) int {
	got, err := index.Locate(offset)
	if err != nil {
		panic(fmt.Sprintf("buffer: %v", err))
	}
	return got
}
