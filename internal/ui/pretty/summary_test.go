package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean run",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No diagnostics (1 file processed)\n",
		},
		{
			name: "mixed categories",
			stats: runner.Stats{
				FilesProcessed:       3,
				FilesWithDiagnostics: 2,
				FilesChanged:         2,
				FilesWritten:         2,
				DiagnosticsTotal:     3,
				DiagnosticsByCategory: map[string]int{
					"warning": 1,
					"info":    2,
				},
			},
			want: "3 diagnostics (1 warning, 2 info) in 2 files, 2 files changed, 2 written\n",
		},
		{
			name: "errors and failures",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesWithDiagnostics:  1,
				FilesErrored:          1,
				FilesSkipped:          1,
				DiagnosticsTotal:      2,
				DiagnosticsByCategory: map[string]int{"error": 2},
			},
			want: "2 diagnostics (2 errors) in 1 file, 1 skipped, 1 failed\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatSummaryOneLine(tc.stats))
		})
	}
}
