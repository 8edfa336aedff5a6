package visit

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/fix"
	"github.com/yaklabco/mdsplice/pkg/mdast"
)

// ErrHalted is returned by Context methods called after the traversal was
// halted.
var ErrHalted = errors.New("visit: traversal halted")

// State is the lifecycle state of a Context.
type State int

const (
	// Open accepts edits and diagnostics.
	Open State = iota

	// Halted is terminal: the traversal is over and the context is frozen.
	Halted
)

func (s State) String() string {
	if s == Halted {
		return "halted"
	}
	return "open"
}

// Context collects what a visitor wants done to one snapshot.
//
// Positions given to Context methods are offsets in the traversed
// snapshot. The context rebases them so that Edits returns a sequential
// batch ready for buffer.Buffer.Execute.
type Context struct {
	file   *mdast.FileSnapshot
	source string
	state  State
	batch  *fix.Batch
	diags  []diag.Diagnostic
}

// NewContext creates an open context for a traversal of file. Diagnostics
// are attributed to source.
func NewContext(file *mdast.FileSnapshot, source string) *Context {
	return &Context{
		file:   file,
		source: source,
		batch:  fix.NewBatch(),
	}
}

// File returns the snapshot being traversed.
func (c *Context) File() *mdast.FileSnapshot {
	return c.file
}

// State returns the current state.
func (c *Context) State() State {
	return c.state
}

// Halted reports whether the context has been halted.
func (c *Context) Halted() bool {
	return c.state == Halted
}

// Halt ends the traversal. It is idempotent.
func (c *Context) Halt() {
	c.state = Halted
}

// InsertLine inserts text as a new line directly above the line containing
// position. The line terminator matches the one ending that line, "\n" when
// it has none.
func (c *Context) InsertLine(position int, text string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}

	pos, err := c.file.Lines.Locate(position)
	if err != nil || position > c.file.Len() {
		return fmt.Errorf("insert line at %d: position outside snapshot of length %d", position, c.file.Len())
	}
	start, _, term := c.file.Lines.LineBounds(c.file.Content, pos.Line)
	if term == "" {
		term = "\n"
	}

	return c.add(fix.Insertion(start, text+term))
}

// Insert inserts text at position.
func (c *Context) Insert(position int, text string) error {
	return c.add(fix.Insertion(position, text))
}

// Replace replaces [start, end) with text.
func (c *Context) Replace(start, end int, text string) error {
	return c.add(fix.Replacement(start, end, text))
}

// Delete removes [start, end).
func (c *Context) Delete(start, end int) error {
	return c.add(fix.Deletion(start, end))
}

// ReplaceNode replaces the source of node with text.
func (c *Context) ReplaceNode(node *mdast.Node, text string) error {
	return c.Replace(node.Start(), node.End(), text)
}

func (c *Context) add(edit fix.Edit) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := fix.Validate(edit, c.file.Len()); err != nil {
		return fmt.Errorf("enqueue %s: %w", edit, err)
	}
	c.batch.Add(edit)
	return nil
}

// ReportDiag records a diagnostic spanning node.
func (c *Context) ReportDiag(node *mdast.Node, category diag.Category, message string) error {
	return c.ReportDiagCode(node, category, "", message)
}

// ReportDiagCode records a diagnostic with a code spanning node.
func (c *Context) ReportDiagCode(node *mdast.Node, category diag.Category, code, message string) error {
	return c.ReportRange(node.Start(), node.End(), category, code, message)
}

// ReportRange records a diagnostic spanning [start, end).
func (c *Context) ReportRange(start, end int, category diag.Category, code, message string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if start < 0 || end < start || end > c.file.Len() {
		return fmt.Errorf("report [%d,%d): outside snapshot of length %d", start, end, c.file.Len())
	}

	c.diags = append(c.diags, diag.Diagnostic{
		File:     c.file.Path,
		Start:    start,
		Length:   end - start,
		Category: category,
		Message:  message,
		Code:     code,
		Source:   c.source,
	})
	return nil
}

// Edits returns the recorded edits as a sequential batch.
func (c *Context) Edits() []fix.Edit {
	return c.batch.Edits()
}

// Diagnostics returns the recorded diagnostics in snapshot coordinates.
func (c *Context) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

func (c *Context) checkOpen() error {
	if c.state == Halted {
		return ErrHalted
	}
	return nil
}
