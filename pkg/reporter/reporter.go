// Package reporter renders runner results as text, JSON, or unified diffs.
package reporter

import (
	"context"

	"github.com/yaklabco/mdsplice/pkg/runner"
)

// Reporter formats and writes rewrite results.
type Reporter interface {
	// Report writes output for result and returns the number of
	// diagnostics it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
