// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Category styles
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	Suggestion lipgloss.Style

	// Diagnostic components
	FilePath   lipgloss.Style
	Code       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary and tables
	Success     lipgloss.Style
	Failure     lipgloss.Style
	TableHeader lipgloss.Style
	Enabled     lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	color := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &Styles{
		Error:      color("9").Bold(true),
		Warning:    color("11").Bold(true),
		Info:       color("12").Bold(true),
		Suggestion: color("10").Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Code:       color("8"),
		Message:    lipgloss.NewStyle(),
		SourceLine: color("7"),
		Caret:      color("9"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    color("14"),
		DiffAdd:     color("10"),
		DiffRemove:  color("9"),
		DiffContext: color("8"),

		Success:     color("10").Bold(true),
		Failure:     color("9").Bold(true),
		TableHeader: color("7").Bold(true),
		Enabled:     color("10"),

		Dim:  color("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain, Suggestion: plain,
		FilePath: plain, Code: plain, Message: plain, SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
		Success: plain, Failure: plain, TableHeader: plain, Enabled: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and
// writer. In auto mode color is enabled only when the writer is a terminal
// and NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
