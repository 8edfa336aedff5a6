package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdsplice/internal/logging"
	"github.com/yaklabco/mdsplice/pkg/buffer"
	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/engine"
	"github.com/yaklabco/mdsplice/pkg/fsutil"
)

// MapSuffix is appended to an output path to name its source map.
const MapSuffix = ".map"

// ErrOutsideWorkDir is returned for files that cannot be mirrored because
// they do not live under the working directory.
var ErrOutsideWorkDir = errors.New("file is outside the working directory")

// Run discovers files and rewrites them concurrently. Each document is
// independent, so files are processed in parallel up to Config.Jobs at a
// time. Per-file failures are recorded in the outcome and do not stop the
// run. When nothing is discovered the empty result is returned with
// ErrNoFiles.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.config()
	mode := opts.Mode()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	opts.WorkingDir = workDir

	outDir := ""
	if mode == Mirror {
		outDir = cfg.Output.Dir
		if !filepath.IsAbs(outDir) {
			outDir = filepath.Join(workDir, outDir)
		}
		if rel := relativePath(workDir, outDir); !filepath.IsAbs(filepath.FromSlash(rel)) {
			opts.ExcludeGlobs = append(opts.ExcludeGlobs, rel, rel+"/**")
		}
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, ErrNoFiles
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	logger := logging.FromContext(ctx)
	logger.Debug("starting rewrite",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
		logging.FieldWrite, mode.String(),
		logging.FieldWorkingDir, workDir,
	)

	w := &worker{opts: opts, cfg: cfg, mode: mode, workDir: workDir, outDir: outDir}
	outcomes := make([]FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = w.process(ctx, path)
			return nil
		})
	}
	waitErr := group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	logger.Debug("rewrite finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	return result, nil
}

type worker struct {
	opts    Options
	cfg     *config.Config
	mode    WriteMode
	workDir string
	outDir  string
}

func (w *worker) process(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path, RelPath: relativePath(w.workDir, path)}
	logger := logging.FromContext(ctx).With(logging.FieldPath, outcome.RelPath)

	if err := w.rewrite(ctx, &outcome); err != nil {
		logger.Debug("file failed", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}

	if outcome.Skipped {
		logger.Warn("file changed during rewrite, skipped")
	} else {
		logger.Debug("file done",
			logging.FieldEdits, outcome.Result.Edits(),
			logging.FieldOutput, outcome.Output,
			logging.FieldWrite, outcome.Written,
		)
	}
	return outcome
}

func (w *worker) rewrite(ctx context.Context, outcome *FileOutcome) error {
	content, info, err := fsutil.ReadFile(ctx, outcome.Path)
	if err != nil {
		return err
	}

	visitors, err := w.opts.registry().Resolve(w.cfg)
	if err != nil {
		return err
	}

	outcome.Output, err = w.outputPath(outcome.Path, outcome.RelPath)
	if err != nil {
		return err
	}

	mapOpts := buffer.SourceMapOptions{OmitContent: !w.cfg.Output.IncludeContent}
	if outcome.Output != "" {
		mapOpts.File = filepath.Base(outcome.Output)
		mapOpts.SourceRoot = sourceRoot(filepath.Dir(outcome.Output), w.workDir)
	}

	res, err := engine.Rewrite(ctx, outcome.RelPath, content, visitors, engine.Options{
		Flavor:    string(w.cfg.Flavor),
		SourceMap: mapOpts,
	})
	if err != nil {
		return err
	}
	outcome.Result = res

	switch w.mode {
	case DryRun:
		return nil
	case InPlace:
		if !res.Changed() {
			return nil
		}
		if modified, err := fsutil.CheckModified(ctx, info); err != nil {
			return err
		} else if modified {
			outcome.Skipped = true
			return nil
		}
		if w.cfg.BackupsEnabled() {
			if outcome.BackedUp, err = fsutil.CreateBackup(ctx, outcome.Path); err != nil {
				return err
			}
		}
		if err := fsutil.WriteAtomic(ctx, outcome.Path, res.Code, info.Mode); err != nil {
			return err
		}
		outcome.Written = true
	case Mirror:
		if outcome.Written, err = fsutil.WriteMirror(ctx, outcome.Output, res.Code, info.Mode); err != nil {
			return err
		}
	}

	return w.writeSourceMap(ctx, outcome)
}

// outputPath returns where the file's rewritten text goes in the current
// mode.
func (w *worker) outputPath(path, rel string) (string, error) {
	switch w.mode {
	case InPlace:
		return path, nil
	case Mirror:
		if filepath.IsAbs(filepath.FromSlash(rel)) {
			return "", fmt.Errorf("%w: %s", ErrOutsideWorkDir, path)
		}
		return filepath.Join(w.outDir, filepath.FromSlash(rel)), nil
	default:
		return "", nil
	}
}

func (w *worker) writeSourceMap(ctx context.Context, outcome *FileOutcome) error {
	if !w.cfg.Output.SourceMaps || outcome.Output == "" {
		return nil
	}
	if w.mode == InPlace && !outcome.Written {
		return nil
	}

	data, err := outcome.Result.SourceMap.Encode()
	if err != nil {
		return fmt.Errorf("encode source map for %s: %w", outcome.RelPath, err)
	}

	mapPath := outcome.Output + MapSuffix
	if _, err := fsutil.WriteMirror(ctx, mapPath, data, 0); err != nil {
		return err
	}
	outcome.MapPath = mapPath
	return nil
}

// sourceRoot returns the slash-separated path from a map's directory back
// to the working directory, which the map's sources are relative to.
func sourceRoot(mapDir, workDir string) string {
	rel, err := filepath.Rel(mapDir, workDir)
	if err != nil || rel == "." {
		return ""
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), "/") + "/"
}
