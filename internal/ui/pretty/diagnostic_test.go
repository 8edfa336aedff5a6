package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
	"github.com/yaklabco/mdsplice/pkg/diag"
)

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	d := diag.Diagnostic{
		File:     "docs/guide.md",
		Start:    10,
		Length:   16,
		Category: diag.Warning,
		Code:     "todo-notes",
		Message:  "TODO: write docs",
		Location: &diag.Location{Line: 1, Column: 11},
	}

	got := styles.FormatDiagnostic(d, "Fix this. TODO: write docs")
	want := "  docs/guide.md:1:11  warning  TODO: write docs  [todo-notes]\n" +
		"    Fix this. TODO: write docs\n" +
		"              ^~~~~~~~~~~~~~~~\n"
	assert.Equal(t, want, got)

	d.Location = nil
	d.Code = ""
	assert.Equal(t, "  docs/guide.md  warning  TODO: write docs\n", styles.FormatDiagnostic(d, "ignored"))
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		length int
		want   string
	}{
		{
			name:   "zero length",
			line:   "# Title",
			column: 1,
			want:   "    # Title\n    ^\n",
		},
		{
			name:   "wide characters before the marker",
			line:   "日本 TODO",
			column: 8,
			length: 4,
			want:   "    日本 TODO\n         ^~~~\n",
		},
		{
			name:   "tabs are kept",
			line:   "\tTODO",
			column: 2,
			length: 4,
			want:   "    \tTODO\n    \t^~~~\n",
		},
		{
			name:   "span clipped at line end",
			line:   "abc",
			column: 2,
			length: 10,
			want:   "    abc\n     ^~\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatSourceContext(tc.line, tc.column, tc.length))
		})
	}
}

func TestFormatCategory(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, c := range []diag.Category{diag.Error, diag.Warning, diag.Info, diag.Suggestion} {
		assert.Equal(t, c.String(), styles.FormatCategory(c))
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.md", styles.FormatFileHeader("a.md", 0))
	assert.Equal(t, "a.md (1 diagnostic)", styles.FormatFileHeader("a.md", 1))
	assert.Equal(t, "a.md (3 diagnostics)", styles.FormatFileHeader("a.md", 3))
}
