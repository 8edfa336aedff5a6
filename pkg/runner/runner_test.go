package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/fsutil"
	"github.com/yaklabco/mdsplice/pkg/runner"
	"github.com/yaklabco/mdsplice/pkg/sourcemap"
)

const (
	untagged = "# Build\n\n```\npackage main\n```\n"
	tagged   = "# Build\n\n```go\npackage main\n```\n"
	todo     = "Plain text.\n\nTODO: write more\n"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"b.md": todo, "a.md": untagged})

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.md", result.Files[0].RelPath)
	assert.Equal(t, "b.md", result.Files[1].RelPath)
	assert.Equal(t, tagged, string(result.Files[0].Result.Code))
	assert.False(t, result.Files[0].Written)
	assert.Empty(t, result.Files[0].Output)

	assert.Equal(t, untagged, readFile(t, filepath.Join(dir, "a.md")), "dry run leaves files alone")

	stats := result.Stats
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 1, stats.FilesChanged)
	assert.Equal(t, 0, stats.FilesWritten)
	assert.Equal(t, 2, stats.FilesWithDiagnostics)
	assert.Equal(t, 1, stats.DiagnosticsByCategory["warning"])
	assert.Equal(t, 1, stats.DiagnosticsByCategory["info"])
	assert.Equal(t, 1, stats.EditsTotal)
	assert.False(t, result.HasErrors())
	assert.Len(t, result.Diagnostics(), 2)
}

func TestRun_InPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/a.md": untagged, "b.md": todo})

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Output.SourceMaps = true

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	a := filepath.Join(dir, "docs", "a.md")
	assert.Equal(t, tagged, readFile(t, a))
	assert.Equal(t, untagged, readFile(t, fsutil.BackupPath(a)))
	assert.NoFileExists(t, fsutil.BackupPath(filepath.Join(dir, "b.md")), "unchanged files are not backed up")
	assert.NoFileExists(t, filepath.Join(dir, "b.md.map"), "unchanged files get no map")

	m, err := sourcemap.Parse([]byte(readFile(t, a+runner.MapSuffix)))
	require.NoError(t, err)
	assert.Equal(t, "a.md", m.File)
	assert.Equal(t, "../", m.SourceRoot)
	assert.Equal(t, []string{"docs/a.md"}, m.Sources)
	require.Len(t, m.SourcesContent, 1)
	assert.Equal(t, untagged, *m.SourcesContent[0])

	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.True(t, result.Files[1].BackedUp)
	assert.Equal(t, a+runner.MapSuffix, result.Files[1].MapPath)
}

func TestRun_NoBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": untagged})

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.NoBackups = true

	_, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, tagged, readFile(t, filepath.Join(dir, "a.md")))
	assert.NoFileExists(t, fsutil.BackupPath(filepath.Join(dir, "a.md")))
}

func TestRun_Mirror(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/a.md": untagged, "b.md": todo})

	cfg := config.NewConfig()
	cfg.Output.Dir = "out"
	cfg.Output.SourceMaps = true
	cfg.Output.IncludeContent = false

	opts := runner.Options{WorkingDir: dir, Config: cfg}
	assert.Equal(t, runner.Mirror, opts.Mode())

	result, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, untagged, readFile(t, filepath.Join(dir, "docs", "a.md")), "sources are untouched")
	assert.Equal(t, tagged, readFile(t, filepath.Join(dir, "out", "docs", "a.md")))
	assert.Equal(t, todo, readFile(t, filepath.Join(dir, "out", "b.md")), "unchanged files are mirrored too")
	assert.Equal(t, 2, result.Stats.FilesWritten)

	m, err := sourcemap.Parse([]byte(readFile(t, filepath.Join(dir, "out", "docs", "a.md.map"))))
	require.NoError(t, err)
	assert.Equal(t, "../../", m.SourceRoot)
	assert.Equal(t, []string{"docs/a.md"}, m.Sources)
	assert.Empty(t, m.SourcesContent)

	// A second run must not pick up the mirrored copies.
	again, err := runner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Stats.FilesDiscovered)
	assert.Equal(t, 0, again.Stats.FilesWritten, "identical output is not rewritten")
}

func TestRun_VisitorSelection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "# Intro\n\nTODO later\n"})

	cfg := config.NewConfig()
	cfg.EnableVisitors = []string{"heading-anchors"}
	cfg.DisableVisitors = []string{"todo-notes"}

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)

	assert.Equal(t, "<a id=\"intro\"></a>\n# Intro\n\nTODO later\n", string(result.Files[0].Result.Code))
	assert.Equal(t, 0, result.Stats.DiagnosticsByCategory["warning"])
}

func TestRun_FileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": untagged})

	cfg := config.NewConfig()
	cfg.Visitors["heading-anchors"] = config.VisitorConfig{Options: map[string]any{"max_level": 9}}
	cfg.EnableVisitors = []string{"heading-anchors"}

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.ErrorContains(t, result.Files[0].Error, "visitor heading-anchors")
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, runner.ErrNoFiles)
	require.NotNil(t, result)
	assert.Empty(t, result.Files)
}

func TestRestore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": untagged, "b.md": todo})

	cfg := config.NewConfig()
	cfg.Write = true
	_, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Equal(t, tagged, readFile(t, filepath.Join(dir, "a.md")))

	restored, err := runner.Restore(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, restored)
	assert.Equal(t, untagged, readFile(t, filepath.Join(dir, "a.md")))
	assert.NoFileExists(t, fsutil.BackupPath(filepath.Join(dir, "a.md")))
}

func TestWriteMode(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, runner.DryRun, runner.Options{Config: cfg}.Mode())

	cfg.Write = true
	assert.Equal(t, runner.InPlace, runner.Options{Config: cfg}.Mode())
	assert.Equal(t, "in-place", runner.InPlace.String())

	cfg.Output.Dir = "out"
	assert.Equal(t, runner.Mirror, runner.Options{Config: cfg}.Mode())
}
