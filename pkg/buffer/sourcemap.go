package buffer

import (
	"fmt"
	"slices"

	"github.com/yaklabco/mdsplice/pkg/sourcemap"
)

// DefaultSourceName names the original text in source maps when the
// snapshot has no path.
const DefaultSourceName = "input.md"

// SourceMapOptions controls SourceMap and TranslateMap output.
type SourceMapOptions struct {
	// File is the generated file name. SourceMap defaults it to the
	// current snapshot path.
	File string

	// SourceRoot is written verbatim to the map.
	SourceRoot string

	// OmitContent leaves sourcesContent out of the map.
	OmitContent bool
}

func (b *Buffer) sourceName() string {
	if b.original.Path != "" {
		return b.original.Path
	}
	return DefaultSourceName
}

func (b *Buffer) newGenerator(file string, opts SourceMapOptions) *sourcemap.Generator {
	gen := sourcemap.NewGenerator(file)
	gen.SetSourceRoot(opts.SourceRoot)
	if !opts.OmitContent {
		gen.SetSourceContent(b.sourceName(), string(b.original.Content))
	}
	return gen
}

// originalMapping builds the mapping from a generated position to the
// original position of current offset.
func (b *Buffer) originalMapping(offset int) (sourcemap.Mapping, error) {
	orig, err := b.origin.Locate(offset)
	if err != nil {
		return sourcemap.Mapping{}, err
	}
	pos, err := b.original.Lines.Locate(orig)
	if err != nil {
		return sourcemap.Mapping{}, err
	}
	return sourcemap.Mapping{HasOriginal: true, Source: b.sourceName(), Original: pos}, nil
}

// TranslateMap composes a map from some generated file to the current text
// with the buffer's own history, producing a map from that generated file to
// the original text. Mappings that carry no original position, or whose
// position falls outside the current text, are dropped. That includes a
// column past the end of its line, which names no byte of the current text.
// Generated positions and names are kept.
func (b *Buffer) TranslateMap(downstream *sourcemap.Map) (*sourcemap.Map, error) {
	gen := b.newGenerator(downstream.File, SourceMapOptions{SourceRoot: downstream.SourceRoot})
	lines := b.current.Lines

	err := downstream.EachMapping(func(m sourcemap.Mapping) error {
		if !m.HasOriginal {
			return nil
		}
		offset, err := lines.Offset(m.Original.Line, m.Original.Column)
		if err != nil || offset >= b.current.Len() {
			return nil
		}

		mapped, err := b.originalMapping(offset)
		if err != nil {
			return err
		}
		mapped.Generated = m.Generated
		mapped.Name = m.Name
		gen.AddMapping(mapped)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("translate source map: %w", err)
	}

	return gen.Map(), nil
}

// SourceMap returns a map from the current text to the original. There is
// a mapping at the start of every current line and at every boundary
// between runs of copied and inserted text.
func (b *Buffer) SourceMap(opts SourceMapOptions) (*sourcemap.Map, error) {
	file := opts.File
	if file == "" {
		file = b.current.Path
	}
	gen := b.newGenerator(file, opts)

	offsets := b.current.Lines.Starts()
	for piece := range b.origin.Pieces() {
		offsets = append(offsets, piece.Start)
	}
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	for _, offset := range offsets {
		if offset >= b.current.Len() {
			continue
		}
		generated, err := b.current.Lines.Locate(offset)
		if err != nil {
			return nil, fmt.Errorf("build source map: %w", err)
		}
		mapped, err := b.originalMapping(offset)
		if err != nil {
			return nil, fmt.Errorf("build source map: %w", err)
		}
		mapped.Generated = generated
		gen.AddMapping(mapped)
	}

	return gen.Map(), nil
}
