package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

// JSONSchemaVersion versions the JSON report layout.
const JSONSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string            `json:"path"`
	Output      string            `json:"output,omitempty"`
	SourceMap   string            `json:"sourceMap,omitempty"`
	Changed     bool              `json:"changed"`
	Written     bool              `json:"written,omitempty"`
	Skipped     bool              `json:"skipped,omitempty"`
	Halted      bool              `json:"halted,omitempty"`
	Edits       int               `json:"edits"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`

	// Code is the rewritten text, present only when it changed.
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesProcessed   int            `json:"filesProcessed"`
	FilesChanged     int            `json:"filesChanged"`
	FilesWritten     int            `json:"filesWritten"`
	FilesErrored     int            `json:"filesErrored"`
	DiagnosticsTotal int            `json:"diagnosticsTotal"`
	ByCategory       map[string]int `json:"byCategory"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSON(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.DiagnosticsTotal, nil
}

func buildJSON(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{ByCategory: map[string]int{}},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        file.RelPath,
			Output:      file.Output,
			SourceMap:   file.MapPath,
			Written:     file.Written,
			Skipped:     file.Skipped,
			Diagnostics: []diag.Diagnostic{},
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		if res := file.Result; res != nil {
			entry.Changed = res.Changed()
			entry.Halted = res.Halted
			entry.Edits = res.Edits()
			entry.Diagnostics = append(entry.Diagnostics, res.Diagnostics...)
			if entry.Changed {
				entry.Code = string(res.Code)
			}
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesProcessed:   stats.FilesProcessed,
		FilesChanged:     stats.FilesChanged,
		FilesWritten:     stats.FilesWritten,
		FilesErrored:     stats.FilesErrored,
		DiagnosticsTotal: stats.DiagnosticsTotal,
		ByCategory:       map[string]int{},
	}
	for category, n := range stats.DiagnosticsByCategory {
		output.Summary.ByCategory[category] = n
	}
	return output
}
