package fix

// Apply applies a single validated edit and returns a new slice.
func Apply(content []byte, edit Edit) []byte {
	out := make([]byte, 0, len(content)+edit.Delta())
	out = append(out, content[:edit.Start]...)
	out = append(out, edit.Text...)
	out = append(out, content[edit.End:]...)
	return out
}

// ApplyAll applies a sequential batch. The input slice is not modified.
func ApplyAll(content []byte, edits []Edit) ([]byte, error) {
	if err := ValidateSequence(edits, len(content)); err != nil {
		return nil, err
	}

	out := content
	for _, edit := range edits {
		out = Apply(out, edit)
	}
	if len(edits) == 0 {
		out = append([]byte(nil), content...)
	}
	return out, nil
}
