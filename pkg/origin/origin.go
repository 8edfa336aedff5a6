// Package origin tracks where every byte of an edited text came from.
//
// An Index is a piece table over the current text. Each piece is either a
// run of bytes copied from the original text or a run of inserted bytes.
// Inserted pieces carry an anchor: the original offset of the point where
// they were inserted. Locate maps a current offset back to an original one;
// the mapping is monotonically non-decreasing.
package origin

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
)

// Piece is a contiguous run of the current text with a single origin.
type Piece struct {
	// Start and End delimit the run in current-text coordinates.
	Start int
	End   int

	// Origin is the original offset of the first byte for copied pieces,
	// and the anchor for inserted pieces.
	Origin int

	Inserted bool
}

// Len returns the length of the piece.
func (p Piece) Len() int {
	return p.End - p.Start
}

// Locate maps an offset inside the piece to its original offset.
func (p Piece) Locate(offset int) int {
	if p.Inserted {
		return p.Origin
	}
	return p.Origin + offset - p.Start
}

// OutOfRangeError reports an offset outside [0, Len()].
type OutOfRangeError struct {
	Offset int
	Len    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("offset %d out of range [0, %d]", e.Offset, e.Len)
}

// Index maps current-text offsets to original-text offsets.
// The zero value is not usable; create one with New.
type Index struct {
	// tree is keyed by each piece's exclusive end offset.
	tree    *btree.Map[int, *Piece]
	size    int
	origLen int
}

// New returns the identity index for an original text of origLen bytes.
func New(origLen int) *Index {
	ix := &Index{tree: new(btree.Map[int, *Piece]), size: origLen, origLen: origLen}
	if origLen > 0 {
		ix.tree.Set(origLen, &Piece{Start: 0, End: origLen})
	}
	return ix
}

// Len returns the current text length.
func (ix *Index) Len() int {
	return ix.size
}

// OriginalLen returns the original text length.
func (ix *Index) OriginalLen() int {
	return ix.origLen
}

// Clone returns an independent copy. The underlying tree is copied lazily.
func (ix *Index) Clone() *Index {
	return &Index{
		tree:    ix.tree.Copy(),
		size:    ix.size,
		origLen: ix.origLen,
	}
}

// Locate returns the original offset of the byte at offset in the current
// text. Offset Len() is the end of the text and resolves to OriginalLen().
func (ix *Index) Locate(offset int) (int, error) {
	if offset < 0 || offset > ix.size {
		return 0, &OutOfRangeError{Offset: offset, Len: ix.size}
	}
	if offset == ix.size {
		return ix.origLen, nil
	}

	piece := ix.pieceAt(offset)
	return piece.Locate(offset), nil
}

// pieceAt returns the piece holding offset, which must be in [0, size).
func (ix *Index) pieceAt(offset int) *Piece {
	cursor := ix.tree.Iter()
	cursor.Seek(offset + 1)
	return cursor.Value()
}

// Splice replaces the current range [start, end) with n inserted bytes.
// The inserted run is anchored at the original offset start resolved to
// before the splice.
func (ix *Index) Splice(start, end, n int) error {
	if start < 0 || start > end || end > ix.size {
		return fmt.Errorf("splice [%d,%d) out of range [0, %d]", start, end, ix.size)
	}
	if n < 0 {
		return fmt.Errorf("splice length %d is negative", n)
	}

	anchor, err := ix.Locate(start)
	if err != nil {
		return err
	}

	// Pieces ending at or before start are untouched. Everything after is
	// cut, shifted and reinserted.
	var tail []*Piece
	cursor := ix.tree.Iter()
	for ok := cursor.Seek(start + 1); ok; ok = cursor.Next() {
		tail = append(tail, cursor.Value())
	}
	for _, piece := range tail {
		ix.tree.Delete(piece.End)
	}

	delta := n - (end - start)
	if n > 0 {
		ix.set(Piece{Start: start, End: start + n, Origin: anchor, Inserted: true})
	}

	for _, piece := range tail {
		if piece.Start < start {
			ix.set(Piece{Start: piece.Start, End: start, Origin: piece.Origin, Inserted: piece.Inserted})
		}
		if piece.End > end {
			right := Piece{Start: max(piece.Start, end), End: piece.End, Origin: piece.Origin, Inserted: piece.Inserted}
			if !right.Inserted {
				right.Origin = piece.Locate(right.Start)
			}
			right.Start += delta
			right.End += delta
			ix.set(right)
		}
	}

	ix.size += delta
	return nil
}

func (ix *Index) set(p Piece) {
	if p.End > p.Start {
		ix.tree.Set(p.End, &p)
	}
}

// Pieces yields the pieces in current-text order.
func (ix *Index) Pieces() iter.Seq[Piece] {
	return func(yield func(Piece) bool) {
		ix.tree.Scan(func(_ int, piece *Piece) bool {
			return yield(*piece)
		})
	}
}
