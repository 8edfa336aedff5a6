package fix

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// UnifiedDiff renders a unified diff between original and modified content.
// It returns an empty string when the contents are equal.
func UnifiedDiff(path string, original, modified []byte) (string, error) {
	if string(original) == string(modified) {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(modified)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("render diff for %s: %w", path, err)
	}
	return text, nil
}
