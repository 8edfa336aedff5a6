package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine formats run statistics as a single line, e.g.
// "3 diagnostics (1 warning, 2 info) in 2 files, 2 files changed, 2 written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No diagnostics")+
			s.Dim.Render(fmt.Sprintf(" (%s processed)", plural(stats.FilesProcessed, "file", "files"))))
	} else {
		var byCategory []string
		for _, c := range []diag.Category{diag.Error, diag.Warning, diag.Info, diag.Suggestion} {
			n := stats.DiagnosticsByCategory[c.String()]
			if n == 0 {
				continue
			}
			label := c.String()
			if n > 1 && c != diag.Info {
				label += "s"
			}
			byCategory = append(byCategory, s.categoryStyle(c).Render(fmt.Sprintf("%d %s", n, label)))
		}
		parts = append(parts, fmt.Sprintf("%s (%s) in %s",
			plural(stats.DiagnosticsTotal, "diagnostic", "diagnostics"),
			strings.Join(byCategory, ", "),
			plural(stats.FilesWithDiagnostics, "file", "files")))
	}

	if stats.FilesChanged > 0 {
		parts = append(parts, plural(stats.FilesChanged, "file", "files")+" changed")
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}
