package cli

import (
	"errors"

	"github.com/yaklabco/mdsplice/pkg/runner"
)

// Exit codes for mdsplice.
const (
	// ExitSuccess indicates the run finished without error diagnostics.
	ExitSuccess = 0

	// ExitDiagnosticErrors indicates error diagnostics were reported or a
	// file could not be processed.
	ExitDiagnosticErrors = 1

	// ExitInternalError indicates the command itself failed.
	ExitInternalError = 70
)

// ErrDiagnosticsFound signals ExitDiagnosticErrors. It carries no message
// worth logging; the report already describes the problem.
var ErrDiagnosticsFound = errors.New("error diagnostics found")

// ExitCodeFromResult determines the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() || result.HasFailures() {
		return ExitDiagnosticErrors
	}
	return ExitSuccess
}

// ExitCodeFromError maps the error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnosticErrors
	default:
		return ExitInternalError
	}
}
