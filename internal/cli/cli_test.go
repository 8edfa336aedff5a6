package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/internal/cli"
	"github.com/yaklabco/mdsplice/pkg/reporter"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

const document = "# Build\n\n```\npackage main\n```\n\nTODO: ship it\n"

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// writeConfig writes a config file outside the documents directory so
// that discovery never sees it.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".mdsplice.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "mdsplice", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"rewrite", "visitors", "init", "restore", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRewriteCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	rewrite, _, err := cmd.Find([]string{"rewrite"})
	require.NoError(t, err)

	for _, name := range []string{
		"write", "out-dir", "source-maps", "format", "enable", "disable",
		"jobs", "flavor", "ignore", "no-backups", "no-context", "compact",
	} {
		assert.NotNil(t, rewrite.Flags().Lookup(name), name)
	}
	assert.NoError(t, rewrite.Args(rewrite, []string{"a.md", "docs", "b.md"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestHelpIsStyled(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--color=never", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "rewrite")
	assert.Contains(t, out, "--config string")

	out, err = execute(t, "rewrite", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "-w, --write")
	assert.Contains(t, out, "Global Flags:")
}

func TestRewrite_DryRunJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "a.md", document)
	cfg := writeConfig(t, "flavor: commonmark\n")

	out, err := execute(t, "rewrite", "--config", cfg, "--format", "json", path)
	require.NoError(t, err)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Files, 1)
	assert.True(t, decoded.Files[0].Changed)
	assert.False(t, decoded.Files[0].Written)
	assert.Contains(t, decoded.Files[0].Code, "```go\n")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, document, string(content))
}

func TestRewrite_ErrorDiagnosticsExitCode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "a.md", document)
	cfg := writeConfig(t, "visitors:\n  todo-notes:\n    options:\n      category: error\n")

	out, err := execute(t, "rewrite", "--config", cfg, "--color", "never", "--no-context", path)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Equal(t, cli.ExitDiagnosticErrors, cli.ExitCodeFromError(err))
	assert.Contains(t, out, "error  TODO: ship it  [todo-notes]")
	assert.NotContains(t, out, "    ^")
}

func TestRewrite_VisitorSelection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "a.md", document)
	cfg := writeConfig(t, "flavor: commonmark\n")

	out, err := execute(t, "rewrite", "--config", cfg, "--format", "diff",
		"--disable", "fence-language,todo-notes", "--enable", "banner", path)
	require.NoError(t, err)

	assert.Contains(t, out, "+<!-- This file was rewritten by mdsplice. Edit the source instead. -->\n")
	assert.NotContains(t, out, "+```go")
}

func TestRewrite_InvalidFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "a.md", document)

	_, err := execute(t, "rewrite", "--config", writeConfig(t, ""), "--format", "sarif", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInternalError, cli.ExitCodeFromError(err))
}

func TestRewrite_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := execute(t, "rewrite", "--config", writeConfig(t, ""), dir)
	require.NoError(t, err)
}

func TestRewrite_WriteAndRestore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeDoc(t, dir, "a.md", document)
	cfg := writeConfig(t, "")

	_, err := execute(t, "rewrite", "--config", cfg, "--write", "--source-maps", "a.md")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "```go\n")
	assert.FileExists(t, filepath.Join(dir, "a.md"+runner.MapSuffix))
	assert.FileExists(t, filepath.Join(dir, "a.md.mdsplice.bak"))

	out, err := execute(t, "restore", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "restored a.md\n", out)

	content, err = os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, document, string(content))
	assert.NoFileExists(t, filepath.Join(dir, "a.md.mdsplice.bak"))
}

func TestRewrite_OutDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeDoc(t, dir, "a.md", document)

	_, err := execute(t, "rewrite", "--config", writeConfig(t, ""), "--out-dir", "build")
	require.NoError(t, err)

	mirrored, err := os.ReadFile(filepath.Join(dir, "build", "a.md"))
	require.NoError(t, err)
	assert.Contains(t, string(mirrored), "```go\n")

	original, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, document, string(original))
}

func TestVisitorsCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "visitors", "--config", writeConfig(t, ""), "--color", "never")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "NAME"))
	for _, name := range []string{"banner", "heading-anchors", "fence-language", "todo-notes"} {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "banner"), strings.Index(out, "todo-notes"))
}

func TestVisitorsCommand_JSON(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "visitors:\n  banner:\n    enabled: true\n")
	out, err := execute(t, "visitors", "--config", cfg, "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		Name           string `json:"name"`
		DefaultEnabled bool   `json:"defaultEnabled"`
		Enabled        bool   `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 4)

	assert.Equal(t, "banner", infos[0].Name)
	assert.False(t, infos[0].DefaultEnabled)
	assert.True(t, infos[0].Enabled)
	assert.Equal(t, "heading-anchors", infos[1].Name)
	assert.False(t, infos[1].Enabled)
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, ".mdsplice.yml")

	_, err := execute(t, "init", "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# mdsplice configuration")
	assert.Contains(t, string(content), "todo-notes")

	_, err = execute(t, "init", "--output", target)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--output", target, "--force")
	require.NoError(t, err)
}

func TestInitCommand_Formats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")

	_, err := execute(t, "init", "--output", target, "--format", "toml")
	require.NoError(t, err)
	assert.FileExists(t, target)

	_, err = execute(t, "init", "--output", filepath.Join(dir, "x.json"), "--format", "json")
	require.ErrorContains(t, err, "must be yaml or toml")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *runner.Result
		want   int
	}{
		{name: "nil", result: nil, want: cli.ExitSuccess},
		{
			name:   "warnings only",
			result: &runner.Result{Stats: runner.Stats{DiagnosticsByCategory: map[string]int{"warning": 3}}},
			want:   cli.ExitSuccess,
		},
		{
			name:   "errors",
			result: &runner.Result{Stats: runner.Stats{DiagnosticsByCategory: map[string]int{"error": 1}}},
			want:   cli.ExitDiagnosticErrors,
		},
		{
			name:   "failed file",
			result: &runner.Result{Stats: runner.Stats{FilesErrored: 1}},
			want:   cli.ExitDiagnosticErrors,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result))
		})
	}
}
