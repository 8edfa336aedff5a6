package fix

import "fmt"

// ValidationError describes an edit whose range does not fit the text it is
// applied to.
type ValidationError struct {
	Index int
	Edit  Edit
	Size  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit #%d [%d:%d] for text of length %d",
		e.Index, e.Edit.Start, e.Edit.End, e.Size)
}

// Validate checks a single edit against a text of the given size.
func Validate(edit Edit, size int) error {
	if edit.Start < 0 || edit.End < edit.Start || edit.End > size {
		return &ValidationError{Edit: edit, Size: size}
	}
	return nil
}

// ValidateSequence checks every edit of a sequential batch against the text
// size it will see, starting from size.
func ValidateSequence(edits []Edit, size int) error {
	for i, edit := range edits {
		if edit.Start < 0 || edit.End < edit.Start || edit.End > size {
			return &ValidationError{Index: i, Edit: edit, Size: size}
		}
		size += edit.Delta()
	}
	return nil
}
