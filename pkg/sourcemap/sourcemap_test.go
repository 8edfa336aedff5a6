package sourcemap_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdsplice/pkg/lineindex"
	"github.com/yaklabco/mdsplice/pkg/sourcemap"
)

func pos(line, column int) lineindex.Position {
	return lineindex.Position{Line: line, Column: column}
}

func TestGenerator_RoundTrip(t *testing.T) {
	t.Parallel()

	gen := sourcemap.NewGenerator("out.md")
	want := []sourcemap.Mapping{
		{Generated: pos(1, 0), HasOriginal: true, Source: "in.md", Original: pos(1, 0)},
		{Generated: pos(1, 4), HasOriginal: true, Source: "in.md", Original: pos(1, 2), Name: "title"},
		{Generated: pos(1, 9)},
		{Generated: pos(3, 1), HasOriginal: true, Source: "other.md", Original: pos(7, 5)},
		{Generated: pos(3, 6), HasOriginal: true, Source: "in.md", Original: pos(2, 0), Name: "title"},
	}

	// Added out of order; the generator sorts by generated position.
	for i := len(want) - 1; i >= 0; i-- {
		gen.AddMapping(want[i])
	}
	gen.SetSourceContent("in.md", "# hi\nthere")

	m := gen.Map()
	assert.Equal(t, sourcemap.Version, m.Version)
	assert.Equal(t, "out.md", m.File)
	assert.ElementsMatch(t, []string{"in.md", "other.md"}, m.Sources)

	content, ok := m.SourceContent("in.md")
	assert.True(t, ok)
	assert.Equal(t, "# hi\nthere", content)
	_, ok = m.SourceContent("other.md")
	assert.False(t, ok)

	data, err := m.Encode()
	require.NoError(t, err)
	parsed, err := sourcemap.Parse(data)
	require.NoError(t, err)

	got, err := parsed.Decode()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mappings mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerator_EmptyLines(t *testing.T) {
	t.Parallel()

	gen := sourcemap.NewGenerator("")
	gen.AddMapping(sourcemap.Mapping{Generated: pos(1, 0), HasOriginal: true, Source: "a", Original: pos(1, 0)})
	gen.AddMapping(sourcemap.Mapping{Generated: pos(2, 0), HasOriginal: true, Source: "a", Original: pos(2, 0)})
	gen.AddMapping(sourcemap.Mapping{Generated: pos(2, 0), HasOriginal: true, Source: "a", Original: pos(2, 0)})

	assert.Equal(t, "AAAA;AACA", gen.Map().Mappings)
}

func TestParse_KnownMap(t *testing.T) {
	t.Parallel()

	data := []byte(`{"version":3,"sources":["a.md"],"names":[],"mappings":"AAAA,IAAI;;AACA"}`)
	m, err := sourcemap.Parse(data)
	require.NoError(t, err)

	got, err := m.Decode()
	require.NoError(t, err)
	assert.Equal(t, []sourcemap.Mapping{
		{Generated: pos(1, 0), HasOriginal: true, Source: "a.md", Original: pos(1, 0)},
		{Generated: pos(1, 4), HasOriginal: true, Source: "a.md", Original: pos(1, 4)},
		{Generated: pos(3, 0), HasOriginal: true, Source: "a.md", Original: pos(2, 4)},
	}, got)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := sourcemap.Parse([]byte(`{"version":2,"sources":[],"mappings":""}`))
	require.ErrorIs(t, err, sourcemap.ErrUnsupported)

	_, err = sourcemap.Parse([]byte(`{"version":3,"sections":[]}`))
	require.ErrorIs(t, err, sourcemap.ErrUnsupported)

	_, err = sourcemap.Parse([]byte(`not json`))
	require.Error(t, err)

	m := &sourcemap.Map{Version: 3, Sources: []string{}, Mappings: "AAAA"}
	_, err = m.Decode()
	assert.Error(t, err, "source index out of range")

	m = &sourcemap.Map{Version: 3, Sources: []string{"a"}, Mappings: "AA"}
	_, err = m.Decode()
	assert.Error(t, err, "two-field segment")
}

func TestEachMapping_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	m := &sourcemap.Map{Version: 3, Sources: []string{"a"}, Mappings: "AAAA,CAAC,CAAC"}

	calls := 0
	err := m.EachMapping(func(sourcemap.Mapping) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
