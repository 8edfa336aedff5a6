package configloader

import "github.com/yaklabco/mdsplice/pkg/config"

// merge applies CLI flag values on top of base and returns a new config.
// The merge follows these rules:
//   - Scalars: override overwrites base if override is non-zero
//   - Booleans: only true overrides, since flags cannot express "unset"
//   - Slices: override replaces base entirely if override is non-nil
//   - Visitors: merged entry by entry
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Write = result.Write || override.Write
	result.NoBackups = result.NoBackups || override.NoBackups
	result.Output.SourceMaps = result.Output.SourceMaps || override.Output.SourceMaps

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableVisitors != nil {
		result.EnableVisitors = override.EnableVisitors
	}
	if override.DisableVisitors != nil {
		result.DisableVisitors = override.DisableVisitors
	}

	result.Visitors = config.MergeVisitors(result.Visitors, override.Visitors)
	return result
}

// MergeAll merges configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
