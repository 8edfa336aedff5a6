package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tablePadding     = 2
	defaultTermWidth = 100
	minDescWidth     = 20
)

// VisitorRow is one line of the visitor listing.
type VisitorRow struct {
	Name        string
	Enabled     bool
	Description string
}

// FormatVisitorTable renders rows as aligned NAME, ENABLED and DESCRIPTION
// columns. Descriptions wrap to fit termWidth; a termWidth of 0 or less
// means defaultTermWidth.
func (s *Styles) FormatVisitorTable(rows []VisitorRow, termWidth int) string {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}

	headers := [3]string{"NAME", "ENABLED", "DESCRIPTION"}
	nameWidth := lipgloss.Width(headers[0])
	for _, row := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(row.Name))
	}
	enabledWidth := lipgloss.Width(headers[1])
	descWidth := max(termWidth-nameWidth-enabledWidth-2*tablePadding, minDescWidth)

	gap := strings.Repeat(" ", tablePadding)
	var builder strings.Builder

	builder.WriteString(s.TableHeader.Render(pad(headers[0], nameWidth)) + gap +
		s.TableHeader.Render(pad(headers[1], enabledWidth)) + gap +
		s.TableHeader.Render(headers[2]) + "\n")

	for _, row := range rows {
		enabled := s.Dim.Render(pad("no", enabledWidth))
		if row.Enabled {
			enabled = s.Enabled.Render(pad("yes", enabledWidth))
		}

		lines := wrap(row.Description, descWidth)
		builder.WriteString(s.Bold.Render(pad(row.Name, nameWidth)) + gap + enabled + gap + lines[0] + "\n")

		indent := strings.Repeat(" ", nameWidth+enabledWidth+2*tablePadding)
		for _, line := range lines[1:] {
			builder.WriteString(indent + line + "\n")
		}
	}
	return builder.String()
}

func pad(text string, width int) string {
	return text + strings.Repeat(" ", max(width-lipgloss.Width(text), 0))
}

// wrap breaks text at spaces into lines no wider than width. A single word
// longer than width gets a line of its own.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder

	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && lipgloss.Width(line.String())+1+lipgloss.Width(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	return append(lines, line.String())
}
