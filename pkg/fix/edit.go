// Package fix provides the edit types applied by the rewriting engine.
//
// A batch of edits is sequential: each edit is interpreted against the text
// produced by the edits before it. Batch records edits in the coordinates
// of a fixed snapshot and rebases them into that sequential form.
package fix

import "fmt"

// Edit replaces bytes [Start, End) with Text. Start == End is an insertion.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Insertion returns an edit inserting text at pos.
func Insertion(pos int, text string) Edit {
	return Edit{Start: pos, End: pos, Text: text}
}

// Replacement returns an edit replacing [start, end) with text.
func Replacement(start, end int, text string) Edit {
	return Edit{Start: start, End: end, Text: text}
}

// Deletion returns an edit removing [start, end).
func Deletion(start, end int) Edit {
	return Edit{Start: start, End: end}
}

// IsInsertion reports whether the edit removes nothing.
func (e Edit) IsInsertion() bool {
	return e.Start == e.End
}

// Delta returns the change in text length caused by the edit.
func (e Edit) Delta() int {
	return len(e.Text) - (e.End - e.Start)
}

func (e Edit) String() string {
	if e.IsInsertion() {
		return fmt.Sprintf("insert %q at %d", e.Text, e.Start)
	}
	return fmt.Sprintf("replace [%d,%d) with %q", e.Start, e.End, e.Text)
}

// Batch accumulates edits expressed against one snapshot and produces the
// equivalent sequential edit list. Edits in a batch must not overlap; two
// insertions at the same position apply in the order they were added.
type Batch struct {
	snapshot []Edit
	edits    []Edit
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add records an edit given in snapshot coordinates and returns its
// rebased, sequential form.
func (b *Batch) Add(edit Edit) Edit {
	shift := 0
	for i, prior := range b.snapshot {
		if prior.End <= edit.Start {
			shift += b.edits[i].Delta()
		}
	}

	rebased := Edit{Start: edit.Start + shift, End: edit.End + shift, Text: edit.Text}
	b.snapshot = append(b.snapshot, edit)
	b.edits = append(b.edits, rebased)
	return rebased
}

// Insert records an insertion at pos.
func (b *Batch) Insert(pos int, text string) Edit {
	return b.Add(Insertion(pos, text))
}

// Replace records a replacement of [start, end).
func (b *Batch) Replace(start, end int, text string) Edit {
	return b.Add(Replacement(start, end, text))
}

// Delete records a deletion of [start, end).
func (b *Batch) Delete(start, end int) Edit {
	return b.Add(Deletion(start, end))
}

// Len returns the number of recorded edits.
func (b *Batch) Len() int {
	return len(b.edits)
}

// Edits returns a copy of the sequential edit list.
func (b *Batch) Edits() []Edit {
	out := make([]Edit, len(b.edits))
	copy(out, b.edits)
	return out
}
