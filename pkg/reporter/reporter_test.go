package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/reporter"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

const document = "# Build\n\n```\npackage main\n```\n\nTODO: ship it\n"

func runFixture(t *testing.T, files map[string]string) *runner.Result {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)
	return result
}

func report(t *testing.T, format reporter.Format, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Format = format
	opts.Color = pretty.ColorNever

	r, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := r.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), n
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"text", "json", "diff"} {
		format, err := reporter.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, format.String())
	}

	format, err := reporter.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, reporter.FormatText, format)

	_, err = reporter.ParseFormat("sarif")
	require.ErrorContains(t, err, "valid formats")

	_, err = reporter.New(reporter.Options{Format: "table"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	result := runFixture(t, map[string]string{"a.md": document, "clean.md": "Nothing here.\n"})
	out, n := report(t, reporter.FormatText, result)

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "a.md (2 diagnostics)\n")
	assert.Contains(t, out, "  a.md:3:1  info  tagged code block as go")
	assert.Contains(t, out, "    ```\n    ^~~\n")
	assert.Contains(t, out, "  a.md:7:1  warning  TODO: ship it  [todo-notes]\n"+
		"    TODO: ship it\n"+
		"    ^~~~~~~~~~~~~\n")
	assert.NotContains(t, out, "clean.md")
	assert.Contains(t, out, "2 diagnostics (1 warning, 1 info) in 1 file, 1 file changed\n")
}

func TestTextReporter_FileError(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/abs/bad.md", RelPath: "bad.md", Error: errors.New("boom")},
	}}
	out, n := report(t, reporter.FormatText, result)

	assert.Zero(t, n)
	assert.Contains(t, out, "bad.md: error: boom\n")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatText, &runner.Result{})
	assert.Zero(t, n)
	assert.Equal(t, "No files to rewrite.\n", out)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	result := runFixture(t, map[string]string{"a.md": document, "clean.md": "Nothing here.\n"})
	out, n := report(t, reporter.FormatJSON, result)
	assert.Equal(t, 2, n)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, reporter.JSONSchemaVersion, decoded.Version)
	require.Len(t, decoded.Files, 2)

	a := decoded.Files[0]
	assert.Equal(t, "a.md", a.Path)
	assert.True(t, a.Changed)
	assert.Equal(t, 1, a.Edits)
	assert.Contains(t, a.Code, "```go\n")
	require.Len(t, a.Diagnostics, 2)
	assert.Equal(t, "todo-notes", a.Diagnostics[1].Source)
	require.NotNil(t, a.Diagnostics[1].Location)
	assert.Equal(t, 7, a.Diagnostics[1].Location.Line)

	clean := decoded.Files[1]
	assert.False(t, clean.Changed)
	assert.Empty(t, clean.Code)
	assert.NotNil(t, clean.Diagnostics)

	assert.Equal(t, 2, decoded.Summary.FilesProcessed)
	assert.Equal(t, 1, decoded.Summary.FilesChanged)
	assert.Equal(t, map[string]int{"info": 1, "warning": 1}, decoded.Summary.ByCategory)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	result := runFixture(t, map[string]string{"a.md": document, "clean.md": "Nothing here.\n"})
	out, n := report(t, reporter.FormatDiff, result)

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "diff --git a/a.md b/a.md\n--- a/a.md\n+++ b/a.md\n")
	assert.Contains(t, out, "\n-```\n+```go\n")
	assert.NotContains(t, out, "clean.md")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)\n")
}
