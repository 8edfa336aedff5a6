package config

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// VisitorInfo describes a visitor for template generation. It mirrors the
// visitor registry without importing it.
type VisitorInfo struct {
	Name           string
	Description    string
	DefaultEnabled bool
	Options        map[string]any
}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Syntax is the output syntax; YAML when empty.
	Syntax Syntax

	// Visitors are documented in the template, sorted by name.
	Visitors []VisitorInfo
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdsplice configuration
# See: https://github.com/yaklabco/mdsplice`
}

// GenerateTemplate creates a commented configuration file holding the
// defaults and one entry per visitor.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	visitors := slices.Clone(opts.Visitors)
	slices.SortFunc(visitors, func(a, b VisitorInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})

	if opts.Syntax == SyntaxTOML {
		return generateTOMLTemplate(visitors)
	}
	return generateYAMLTemplate(visitors), nil
}

func generateYAMLTemplate(visitors []VisitorInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: commonmark

# File patterns to skip (doublestar globs)
ignore:
  - "vendor/**"
  - "node_modules/**"

output:
  # Write <file>.map next to every rewritten file
  source_maps: false
  # Embed the original text in source maps
  include_content: true
  # Mirror rewritten files here instead of writing in place
  # dir: out

backups:
  enabled: true
  mode: sidecar
`)

	if len(visitors) == 0 {
		return buf.Bytes()
	}

	buf.WriteString("\nvisitors:\n")
	for _, v := range visitors {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(v.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", v.Name)
		fmt.Fprintf(&buf, "    enabled: %t\n", v.DefaultEnabled)
		if len(v.Options) == 0 {
			continue
		}
		buf.WriteString("    options:\n")
		for _, key := range sortedKeys(v.Options) {
			fmt.Fprintf(&buf, "      %s: %s\n", key, yamlScalar(v.Options[key]))
		}
	}
	return buf.Bytes()
}

func generateTOMLTemplate(visitors []VisitorInfo) ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}
	for _, v := range visitors {
		enabled := v.DefaultEnabled
		cfg.Visitors[v.Name] = VisitorConfig{Enabled: &enabled, Options: v.Options}
	}
	return cfg.Encode(SyntaxTOML, DefaultTemplateHeader())
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// yamlScalar renders simple option defaults in flow style.
func yamlScalar(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}
