package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
	"github.com/yaklabco/mdsplice/pkg/fix"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

// DiffReporter writes a git-style unified diff for every changed file.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The count it returns is the number of
// diagnostics across the changed files, so exit codes match other formats.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.RelPath),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || !file.Result.Changed() {
			continue
		}

		text, err := fix.UnifiedDiff(file.RelPath, file.Result.Original, file.Result.Code)
		if err != nil {
			return 0, err
		}

		files++
		fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(
			fmt.Sprintf("diff --git a/%s b/%s", file.RelPath, file.RelPath)))
		inHunk := false
		for _, line := range strings.SplitAfter(text, "\n") {
			if line == "" {
				continue
			}
			inHunk = inHunk || strings.HasPrefix(line, "@@")
			add, del := r.writeLine(strings.TrimSuffix(line, "\n"), inHunk)
			additions += add
			deletions += del
		}
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}
	return result.Stats.DiagnosticsTotal, nil
}

// writeLine styles one diff line and reports whether it was an added or
// removed content line. File headers only occur before the first hunk.
func (r *DiffReporter) writeLine(line string, inHunk bool) (int, int) {
	var add, del int
	var styled string

	switch {
	case !inHunk:
		styled = r.styles.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
		add = 1
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
		del = 1
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.bw, styled)
	return add, del
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pick(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pick(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pick(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func pick(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
