package runner

import (
	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/engine"
)

// FileOutcome is the result of rewriting one file.
type FileOutcome struct {
	// Path is the absolute path of the source file.
	Path string

	// RelPath is Path relative to the working directory, in slash form. It
	// is the path reports and source maps use.
	RelPath string

	// Result is nil when the file could not be processed.
	Result *engine.Result

	// Output is where the rewritten text was or would be written. It is
	// empty in dry-run mode.
	Output string

	// Written is true when Output was written.
	Written bool

	// BackedUp is true when a sidecar backup was created before writing.
	BackedUp bool

	// MapPath is the source map written next to Output, if any.
	MapPath string

	// Skipped is true when the file changed on disk during the rewrite and
	// was left alone.
	Skipped bool

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesSkipped    int
	FilesErrored    int

	// FilesWithDiagnostics counts files that reported at least one
	// diagnostic.
	FilesWithDiagnostics int

	DiagnosticsTotal int

	// DiagnosticsByCategory is keyed by diag.Category.String().
	DiagnosticsByCategory map[string]int

	EditsTotal int
}

// Result is the outcome of a run. Files are in discovery order, which is
// sorted by path regardless of completion order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any error diagnostics were reported.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsByCategory[diag.Error.String()] > 0
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Diagnostics returns every diagnostic across all files, in file order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		if f.Result != nil {
			out = append(out, f.Result.Diagnostics...)
		}
	}
	return out
}

func newStats() Stats {
	return Stats{DiagnosticsByCategory: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Changed() {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	r.Stats.EditsTotal += outcome.Result.Edits()

	diags := outcome.Result.Diagnostics
	if len(diags) > 0 {
		r.Stats.FilesWithDiagnostics++
	}
	r.Stats.DiagnosticsTotal += len(diags)
	for _, d := range diags {
		r.Stats.DiagnosticsByCategory[d.Category.String()]++
	}
}
