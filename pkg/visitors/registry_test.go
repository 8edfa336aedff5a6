package visitors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/visit"
	"github.com/yaklabco/mdsplice/pkg/visitors"
)

func recordingDefinition(name string, enabled bool, seen *[]config.Options) visitors.Definition {
	return visitors.Definition{
		Name:           name,
		Description:    name + " visitor",
		DefaultEnabled: enabled,
		Defaults:       map[string]any{"level": 1, "label": "default"},
		New: func(opts config.Options) (visit.Visitor, error) {
			*seen = append(*seen, opts)
			return visit.Funcs{VisitorName: name}, nil
		},
	}
}

func TestRegistry_OrderAndLookup(t *testing.T) {
	t.Parallel()

	var seen []config.Options
	reg := visitors.NewRegistry()
	reg.Register(recordingDefinition("zeta", true, &seen))
	reg.Register(recordingDefinition("alpha", true, &seen))
	reg.Register(recordingDefinition("zeta", false, &seen))

	defs := reg.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "zeta", defs[0].Name, "re-registering keeps the original position")
	assert.False(t, defs[0].DefaultEnabled, "re-registering replaces the definition")
	assert.Equal(t, []string{"alpha", "zeta"}, reg.Names())
	assert.True(t, reg.Has("alpha"))
	assert.False(t, reg.Has("beta"))

	info := reg.Info()
	require.Len(t, info, 2)
	assert.Equal(t, "zeta visitor", info[0].Description)
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	var seen []config.Options
	reg := visitors.NewRegistry()
	reg.Register(recordingDefinition("first", true, &seen))
	reg.Register(recordingDefinition("second", false, &seen))
	reg.Register(recordingDefinition("third", true, &seen))

	cfg := config.NewConfig()
	cfg.EnableVisitors = []string{"second"}
	cfg.DisableVisitors = []string{"third"}
	cfg.Visitors["first"] = config.VisitorConfig{Options: map[string]any{"label": "custom"}}

	resolved, err := reg.Resolve(cfg)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "first", visit.NameOf(resolved[0], ""))
	assert.Equal(t, "second", visit.NameOf(resolved[1], ""))

	require.Len(t, seen, 2)
	assert.Equal(t, "custom", seen[0].String("label", ""))
	assert.Equal(t, 1, seen[0].Int("level", 0))
	assert.Equal(t, "default", seen[1].String("label", ""))
}

func TestRegistry_ResolveError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad option")
	reg := visitors.NewRegistry()
	reg.Register(visitors.Definition{
		Name:           "broken",
		DefaultEnabled: true,
		New:            func(config.Options) (visit.Visitor, error) { return nil, boom },
	})

	_, err := reg.Resolve(config.NewConfig())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "visitor broken")
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	var names []string
	for _, def := range visitors.DefaultRegistry.Definitions() {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Description)
	}
	assert.Equal(t, []string{
		visitors.BannerName,
		visitors.HeadingAnchorsName,
		visitors.FenceLanguageName,
		visitors.TodoNotesName,
	}, names)

	resolved, err := visitors.DefaultRegistry.Resolve(config.NewConfig())
	require.NoError(t, err)

	var enabled []string
	for _, v := range resolved {
		enabled = append(enabled, visit.NameOf(v, ""))
	}
	assert.Equal(t, []string{visitors.FenceLanguageName, visitors.TodoNotesName}, enabled)
}
