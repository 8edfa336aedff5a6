// Package runner rewrites many Markdown files concurrently.
package runner

import (
	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/visitors"
)

// Options controls a multi-file rewrite.
type Options struct {
	// Paths are the files or directories to process. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ignore globs, report
	// paths, and the --out-dir mirror. Empty means the process directory.
	WorkingDir string

	// Extensions are the lowercase extensions, with leading dot, treated
	// as Markdown. Empty means DefaultExtensions.
	Extensions []string

	// ExcludeGlobs are doublestar patterns, relative to WorkingDir, for
	// files and directories to skip. They are added to Config.Ignore.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Config is the resolved configuration. It selects visitors, the
	// Markdown flavor, the write mode, and source map output.
	Config *config.Config

	// Registry supplies visitors. Nil means visitors.DefaultRegistry.
	Registry *visitors.Registry
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// WriteMode says where rewritten text goes.
type WriteMode int

const (
	// DryRun reports without writing.
	DryRun WriteMode = iota

	// InPlace replaces each file that changed.
	InPlace

	// Mirror writes every file under Config.Output.Dir, keeping its path
	// relative to the working directory.
	Mirror
)

func (m WriteMode) String() string {
	switch m {
	case InPlace:
		return "in-place"
	case Mirror:
		return "mirror"
	default:
		return "dry-run"
	}
}

// Mode returns the write mode the options select. An output directory
// wins over in-place writing.
func (o Options) Mode() WriteMode {
	switch {
	case o.config().Output.Dir != "":
		return Mirror
	case o.config().Write:
		return InPlace
	default:
		return DryRun
	}
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}

func (o Options) registry() *visitors.Registry {
	if o.Registry == nil {
		return visitors.DefaultRegistry
	}
	return o.Registry
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) excludeGlobs() []string {
	globs := make([]string, 0, len(o.ExcludeGlobs)+len(o.config().Ignore))
	globs = append(globs, o.config().Ignore...)
	return append(globs, o.ExcludeGlobs...)
}
