package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
)

const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output. Nil means os.Stdout.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the original source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints the run statistics after the results.
	ShowSummary bool

	// Compact disables JSON indentation.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       pretty.ColorAuto,
		ShowContext: true,
		ShowSummary: true,
	}
}
