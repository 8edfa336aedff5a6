package config

import (
	"bytes"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Syntax is the on-disk syntax of a configuration file.
type Syntax string

const (
	SyntaxYAML Syntax = "yaml"
	SyntaxTOML Syntax = "toml"
)

// SyntaxOf picks the syntax from a file name. Anything that is not
// ".toml" is read as YAML.
func SyntaxOf(path string) Syntax {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return SyntaxTOML
	}
	return SyntaxYAML
}

// Overlay decodes data on top of c. Keys absent from data keep their
// current values, and visitor entries merge key by key so that a file can
// change one option without restating the others.
func (c *Config) Overlay(syntax Syntax, data []byte) error {
	previous := c.Visitors
	c.Visitors = nil

	var err error
	switch syntax {
	case SyntaxTOML:
		_, err = toml.Decode(string(data), c)
		if err != nil {
			err = fmt.Errorf("parse toml: %w", err)
		}
	default:
		err = yaml.Unmarshal(data, c)
		if err != nil {
			err = fmt.Errorf("parse yaml: %w", err)
		}
	}

	c.Visitors = MergeVisitors(previous, c.Visitors)
	return err
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := cfg.Overlay(SyntaxYAML, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := cfg.Overlay(SyntaxTOML, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToYAML serializes the persisted part of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToTOML serializes the persisted part of the configuration.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode serializes the configuration in the given syntax, prefixed with
// header as a comment block when it is not empty.
func (c *Config) Encode(syntax Syntax, header string) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if syntax == SyntaxTOML {
		body, err = c.ToTOML()
	} else {
		body, err = c.ToYAML()
	}
	if err != nil || header == "" {
		return body, err
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if !strings.HasSuffix(header, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// MergeVisitors merges override into base entry by entry. Options merge
// key by key; an explicit Enabled in override wins.
func MergeVisitors(base, override map[string]VisitorConfig) map[string]VisitorConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]VisitorConfig, len(base)+len(override))
	for name, vc := range base {
		result[name] = vc.clone()
	}
	for name, vc := range override {
		existing, ok := result[name]
		if !ok {
			result[name] = vc.clone()
			continue
		}
		if vc.Enabled != nil {
			enabled := *vc.Enabled
			existing.Enabled = &enabled
		}
		if vc.Options != nil {
			if existing.Options == nil {
				existing.Options = make(map[string]any, len(vc.Options))
			}
			maps.Copy(existing.Options, vc.Options)
		}
		result[name] = existing
	}
	return result
}

// Clone creates a deep copy of the configuration. Nested values inside
// visitor options are shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.EnableVisitors = slices.Clone(c.EnableVisitors)
	clone.DisableVisitors = slices.Clone(c.DisableVisitors)
	if c.Visitors != nil {
		clone.Visitors = make(map[string]VisitorConfig, len(c.Visitors))
		for name, vc := range c.Visitors {
			clone.Visitors[name] = vc.clone()
		}
	}
	return &clone
}

func (vc VisitorConfig) clone() VisitorConfig {
	out := VisitorConfig{Options: maps.Clone(vc.Options)}
	if vc.Enabled != nil {
		enabled := *vc.Enabled
		out.Enabled = &enabled
	}
	return out
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
