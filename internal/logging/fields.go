// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFlavor   = "flavor"
	FieldWrite    = "write"
	FieldOutDir   = "out_dir"
	FieldJobs     = "jobs"
	FieldVisitors = "visitors"

	// Pass fields.
	FieldVisitor = "visitor"
	FieldPass    = "pass"
	FieldEdits   = "edits"
	FieldHalted  = "halted"
	FieldVersion = "version"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesChanged     = "files_changed"
	FieldFilesWritten     = "files_written"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Build fields.
	FieldBuildVersion = "build_version"
	FieldCommit       = "commit"
	FieldBuilt        = "built"

	// Visitor registry fields.
	FieldName        = "name"
	FieldDescription = "description"
)
