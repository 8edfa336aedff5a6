package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{name: "new file with default mode", wantMode: fsutil.DefaultFileMode},
		{name: "overwrites existing", existing: "old", mode: 0o644, wantMode: 0o644},
		{name: "applies mode", mode: 0o600, wantMode: 0o600},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "doc.md")
			if tc.existing != "" {
				writeFile(t, path, tc.existing)
			}

			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), tc.mode))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "new", string(got))

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantMode, stat.Mode().Perm())

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")
		})
	}
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "doc.md")
	err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestWriteMirror(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "docs", "guide.md")

	written, err := fsutil.WriteMirror(ctx, path, []byte("v1"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fsutil.WriteMirror(ctx, path, []byte("v1"), 0)
	require.NoError(t, err)
	assert.False(t, written, "identical content is not rewritten")

	written, err = fsutil.WriteMirror(ctx, path, []byte("v2"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}
