package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

// writeTree creates files under dir, keyed by slash-separated relative path.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"readme.md":            "# Readme",
		"docs/guide.md":        "# Guide",
		"docs/api.markdown":    "# API",
		"docs/draft/wip.md":    "# WIP",
		"vendor/lib/readme.md": "# Vendored",
		".hidden/secret.md":    "# Hidden",
		".notes.md":            "# Hidden file",
		"src/main.go":          "package main",
		"CHANGELOG.MD":         "# Changes",
	}

	tests := []struct {
		name     string
		paths    []string
		excludes []string
		ignore   []string
		want     []string
	}{
		{
			name: "walks the working directory by default",
			want: []string{
				"CHANGELOG.MD",
				"docs/api.markdown",
				"docs/draft/wip.md",
				"docs/guide.md",
				"readme.md",
				"vendor/lib/readme.md",
			},
		},
		{
			name:     "doublestar excludes",
			excludes: []string{"vendor/**", "docs/**/wip.md"},
			want:     []string{"CHANGELOG.MD", "docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name:   "config ignore and base name patterns",
			ignore: []string{"*.markdown", "draft"},
			want:   []string{"CHANGELOG.MD", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:  "explicit files and directories are deduplicated",
			paths: []string{"docs", "docs/guide.md", "src/main.go"},
			want:  []string{"docs/api.markdown", "docs/draft/wip.md", "docs/guide.md"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			cfg := config.NewConfig()
			cfg.Ignore = tc.ignore

			files, err := runner.Discover(context.Background(), runner.Options{
				Paths:        tc.paths,
				WorkingDir:   dir,
				ExcludeGlobs: tc.excludes,
				Config:       cfg,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: dir,
	})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"docs/[a"},
	})
	require.ErrorContains(t, err, "invalid ignore pattern")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"linked.md": "# Linked"})
	writeTree(t, dir, map[string]string{"local.md": "# Local"})
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "shared")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"local.md"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(outside, "linked.md"))
}
