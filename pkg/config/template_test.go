package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/pkg/config"
)

func templateVisitors() []config.VisitorInfo {
	return []config.VisitorInfo{
		{
			Name:           "todo-notes",
			Description:    "Reports text containing work markers such as TODO or FIXME so they can be tracked before publishing.",
			DefaultEnabled: true,
			Options:        map[string]any{"markers": []string{"TODO", "FIXME"}},
		},
		{Name: "banner", Description: "Inserts a banner line.", Options: map[string]any{"text": "<!-- x -->"}},
	}
}

func TestGenerateTemplate_YAML(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Visitors: templateVisitors()})
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# mdsplice configuration"))
	assert.Less(t, strings.Index(text, "banner:"), strings.Index(text, "todo-notes:"))

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.True(t, cfg.VisitorEnabled("todo-notes", false))
	assert.False(t, cfg.VisitorEnabled("banner", true))
	assert.Equal(t, []string{"TODO", "FIXME"}, cfg.VisitorOptions("todo-notes").Strings("markers", nil))
	assert.Equal(t, "<!-- x -->", cfg.VisitorOptions("banner").String("text", ""))
}

func TestGenerateTemplate_TOML(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{
		Syntax:   config.SyntaxTOML,
		Visitors: templateVisitors(),
	})
	require.NoError(t, err)

	cfg, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Ignore)
	assert.True(t, cfg.VisitorEnabled("todo-notes", false))
	assert.Equal(t, []string{"TODO", "FIXME"}, cfg.VisitorOptions("todo-notes").Strings("markers", nil))
}
