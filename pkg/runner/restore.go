package runner

import (
	"context"

	"github.com/yaklabco/mdsplice/internal/logging"
	"github.com/yaklabco/mdsplice/pkg/fsutil"
)

// Restore puts back the sidecar backups of the discovered files and
// returns the paths it restored, relative to the working directory.
func Restore(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var restored []string
	for _, path := range files {
		ok, err := fsutil.RestoreBackup(ctx, path)
		if err != nil {
			return restored, err
		}
		if ok {
			rel := relativePath(workDir, path)
			logging.FromContext(ctx).Debug("restored backup", logging.FieldPath, rel)
			restored = append(restored, rel)
		}
	}
	return restored, nil
}
