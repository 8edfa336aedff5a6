// Package config defines core configuration types for mdsplice.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "slices"

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how rewrite results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// VisitorConfig holds per-visitor configuration.
type VisitorConfig struct {
	Enabled *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Options map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// OutputConfig controls what a rewrite writes besides the rewritten text.
type OutputConfig struct {
	// SourceMaps writes "<output>.map" next to each written file.
	SourceMaps bool `yaml:"source_maps" toml:"source_maps"`

	// IncludeContent embeds the original text in source maps.
	IncludeContent bool `yaml:"include_content" toml:"include_content"`

	// Dir mirrors rewritten files into a directory instead of writing in place.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// BackupsConfig controls backup behavior when writing in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"`
}

// Config is the root configuration structure for mdsplice.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor" toml:"flavor"`

	// Visitors contains per-visitor configuration keyed by visitor name.
	Visitors map[string]VisitorConfig `yaml:"visitors,omitempty" toml:"visitors,omitempty"`

	// Ignore contains doublestar glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	Output  OutputConfig  `yaml:"output" toml:"output"`
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place (or into Output.Dir).
	Write bool `yaml:"-" toml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"-" toml:"-"`

	// EnableVisitors contains visitor names to explicitly enable.
	EnableVisitors []string `yaml:"-" toml:"-"`

	// DisableVisitors contains visitor names to explicitly disable.
	DisableVisitors []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when writing in place.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:   FlavorCommonMark,
		Visitors: make(map[string]VisitorConfig),
		Output: OutputConfig{
			IncludeContent: true,
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
	}
}

// VisitorEnabled resolves whether the named visitor runs. CLI disables win
// over CLI enables, which win over the config file, which wins over the
// visitor's default.
func (c *Config) VisitorEnabled(name string, defaultEnabled bool) bool {
	if c == nil {
		return defaultEnabled
	}
	if slices.Contains(c.DisableVisitors, name) {
		return false
	}
	if slices.Contains(c.EnableVisitors, name) {
		return true
	}
	if vc, ok := c.Visitors[name]; ok && vc.Enabled != nil {
		return *vc.Enabled
	}
	return defaultEnabled
}

// VisitorOptions returns the options configured for the named visitor.
func (c *Config) VisitorOptions(name string) Options {
	if c == nil {
		return nil
	}
	return Options(c.Visitors[name].Options)
}

// BackupsEnabled reports whether in-place writes keep a backup.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != BackupModeNone
}
