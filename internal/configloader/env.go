package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdsplice/pkg/config"
)

// envVarPrefix is the prefix for all mdsplice environment variables.
const envVarPrefix = "MDSPLICE_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

// envVars lists the supported environment variables.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"FLAVOR", "Markdown flavor: commonmark or gfm",
		stringVar(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	{"FORMAT", "Report format: text, json, or diff",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"JOBS", "Number of parallel workers (0 = auto)", func(c *config.Config, v string) error {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		c.Jobs = jobs
		return nil
	}},
	{"WRITE", "Write rewritten files: true or false",
		boolVar(func(c *config.Config, v bool) { c.Write = v })},
	{"OUT_DIR", "Directory to mirror rewritten files into",
		stringVar(func(c *config.Config, v string) { c.Output.Dir = v })},
	{"SOURCE_MAPS", "Write source maps next to outputs: true or false",
		boolVar(func(c *config.Config, v bool) { c.Output.SourceMaps = v })},
	{"INCLUDE_CONTENT", "Embed original text in source maps: true or false",
		boolVar(func(c *config.Config, v bool) { c.Output.IncludeContent = v })},
	{"BACKUPS_ENABLED", "Keep backups when writing in place: true or false",
		boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none",
		stringVar(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"NO_BACKUPS", "Disable backups: true or false",
		boolVar(func(c *config.Config, v bool) { c.NoBackups = v })},
	{"IGNORE", "Comma-separated list of ignore globs",
		listVar(func(c *config.Config, v []string) { c.Ignore = v })},
	{"ENABLE", "Comma-separated list of visitors to enable",
		listVar(func(c *config.Config, v []string) { c.EnableVisitors = v })},
	{"DISABLE", "Comma-separated list of visitors to disable",
		listVar(func(c *config.Config, v []string) { c.DisableVisitors = v })},
}

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadFromEnv applies MDSPLICE_* overrides from the process environment.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.LookupEnv)
}

func loadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, v := range envVars {
		out = append(out, [2]string{envVarPrefix + v.suffix, v.description})
	}
	slices.SortFunc(out, func(a, b [2]string) int {
		return strings.Compare(a[0], b[0])
	})
	return out
}
