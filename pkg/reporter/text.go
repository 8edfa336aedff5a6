package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
	"github.com/yaklabco/mdsplice/pkg/mdast"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

// TextReporter writes diagnostics grouped by file, each with the original
// source line and a marker under the reported span.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to rewrite."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.RelPath),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.RelPath, len(file.Result.Diagnostics)))

		var original *mdast.FileSnapshot
		if r.opts.ShowContext {
			original = mdast.NewFileSnapshot(file.RelPath, file.Result.Original)
		}
		for _, d := range file.Result.Diagnostics {
			var sourceLine string
			if original != nil && d.Location != nil {
				sourceLine = string(original.LineContent(d.Location.Line))
			}
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(d, sourceLine))
			total++
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}
