package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/mdsplice/pkg/diag"
)

const contextIndent = "    "

// FormatDiagnostic formats one diagnostic as
// "  path:line:col  category  message  [code]", followed by the source line
// and a caret marker when sourceLine is not empty.
func (s *Styles) FormatDiagnostic(d diag.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(d.File)
	if d.Location != nil {
		location = fmt.Sprintf("%s:%d:%d", location, d.Location.Line, d.Location.Column)
	}

	builder.WriteString("  " + location + "  " + s.FormatCategory(d.Category) + "  " + s.Message.Render(d.Message))
	if d.Code != "" {
		builder.WriteString("  " + s.Code.Render("["+d.Code+"]"))
	}
	builder.WriteString("\n")

	if sourceLine != "" && d.Location != nil {
		builder.WriteString(s.FormatSourceContext(sourceLine, d.Location.Column, d.Length))
	}
	return builder.String()
}

// FormatCategory returns a styled category name.
func (s *Styles) FormatCategory(c diag.Category) string {
	return s.categoryStyle(c).Render(c.String())
}

func (s *Styles) categoryStyle(c diag.Category) lipgloss.Style {
	switch c {
	case diag.Error:
		return s.Error
	case diag.Warning:
		return s.Warning
	case diag.Suggestion:
		return s.Suggestion
	default:
		return s.Info
	}
}

// FormatSourceContext renders line with a marker under the length bytes
// starting at the 1-based byte column. The marker is aligned by display
// width, so wide characters and tabs before it keep it in place.
func (s *Styles) FormatSourceContext(line string, column, length int) string {
	line = strings.TrimRight(line, "\r\n")

	start := min(max(column-1, 0), len(line))
	end := min(start+max(length, 0), len(line))

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.TabWidth(lipgloss.NoTabConversion).Render(line) + "\n")

	marker := "^" + strings.Repeat("~", max(displayWidth(line[start:end])-1, 0))
	builder.WriteString(contextIndent + padding(line[:start]) + s.Caret.Render(marker) + "\n")
	return builder.String()
}

// padding returns blanks as wide as prefix, keeping its tabs.
func padding(prefix string) string {
	var builder strings.Builder
	state := -1
	for len(prefix) > 0 {
		var cluster string
		var width int
		cluster, prefix, width, state = uniseg.FirstGraphemeClusterInString(prefix, state)
		if cluster == "\t" {
			builder.WriteByte('\t')
			continue
		}
		builder.WriteString(strings.Repeat(" ", width))
	}
	return builder.String()
}

func displayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	switch count {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 diagnostic)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d diagnostics)", count))
	}
	return header
}
