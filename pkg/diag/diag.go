// Package diag defines diagnostics reported while rewriting a document.
package diag

import (
	"cmp"
	"fmt"
	"slices"
)

// Category classifies a diagnostic.
type Category uint8

const (
	Error Category = iota
	Warning
	Info
	Suggestion
)

var categoryNames = [...]string{
	Error:      "error",
	Warning:    "warning",
	Info:       "info",
	Suggestion: "suggestion",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// ParseCategory parses the String form of a category.
func ParseCategory(name string) (Category, error) {
	for i, candidate := range categoryNames {
		if candidate == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown diagnostic category %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Location is a resolved 1-based line and column.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic is a message attached to a byte range of a document.
// Start and Length are absolute byte offsets; whether they refer to the
// traversed snapshot or the original text depends on where the diagnostic
// is in the pipeline. Translation keeps everything else intact.
type Diagnostic struct {
	File     string   `json:"file,omitempty"`
	Start    int      `json:"start"`
	Length   int      `json:"length"`
	Category Category `json:"category"`
	Message  string   `json:"message"`

	// Code is an optional machine-readable identifier, empty when unset.
	Code string `json:"code,omitempty"`

	// Source names the visitor that reported the diagnostic.
	Source string `json:"source,omitempty"`

	// Location is filled in once the diagnostic is resolved against the
	// original text.
	Location *Location `json:"location,omitempty"`
}

// End returns Start + Length.
func (d Diagnostic) End() int {
	return d.Start + d.Length
}

func (d Diagnostic) String() string {
	pos := fmt.Sprintf("@%d", d.Start)
	if d.Location != nil {
		pos = fmt.Sprintf(":%d:%d", d.Location.Line, d.Location.Column)
	}
	code := ""
	if d.Code != "" {
		code = " [" + d.Code + "]"
	}
	return fmt.Sprintf("%s%s: %s%s: %s", d.File, pos, d.Category, code, d.Message)
}

// Sort orders diagnostics by file, start offset, then category severity.
// The sort is stable so diagnostics at the same place keep report order.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.Category, b.Category),
		)
	})
}

// Count returns how many diagnostics have the given category.
func Count(diags []Diagnostic, category Category) int {
	n := 0
	for _, d := range diags {
		if d.Category == category {
			n++
		}
	}
	return n
}
