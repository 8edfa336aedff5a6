package sourcemap

import (
	"cmp"
	"slices"
)

// Generator accumulates mappings and produces a Map.
type Generator struct {
	file       string
	sourceRoot string

	sources     []string
	sourceIndex map[string]int
	contents    map[string]string

	names     []string
	nameIndex map[string]int

	mappings []Mapping
}

// NewGenerator creates a generator for the named generated file.
func NewGenerator(file string) *Generator {
	return &Generator{
		file:        file,
		sourceIndex: make(map[string]int),
		contents:    make(map[string]string),
		nameIndex:   make(map[string]int),
	}
}

// SetSourceRoot sets the sourceRoot field.
func (g *Generator) SetSourceRoot(root string) {
	g.sourceRoot = root
}

// AddMapping records a mapping. Sources and names are registered on first
// use.
func (g *Generator) AddMapping(m Mapping) {
	if m.HasOriginal {
		g.addSource(m.Source)
		if m.Name != "" {
			if _, ok := g.nameIndex[m.Name]; !ok {
				g.nameIndex[m.Name] = len(g.names)
				g.names = append(g.names, m.Name)
			}
		}
	}
	g.mappings = append(g.mappings, m)
}

// SetSourceContent embeds the text of a source.
func (g *Generator) SetSourceContent(source, content string) {
	g.addSource(source)
	g.contents[source] = content
}

func (g *Generator) addSource(source string) {
	if _, ok := g.sourceIndex[source]; !ok {
		g.sourceIndex[source] = len(g.sources)
		g.sources = append(g.sources, source)
	}
}

// Map encodes the accumulated mappings. Mappings are emitted in generated
// order; exact duplicates collapse into one segment.
func (g *Generator) Map() *Map {
	out := &Map{
		Version:    Version,
		File:       g.file,
		SourceRoot: g.sourceRoot,
		Sources:    slices.Clone(g.sources),
		Names:      slices.Clone(g.names),
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}
	if out.Names == nil {
		out.Names = []string{}
	}

	if len(g.contents) > 0 {
		out.SourcesContent = make([]*string, len(g.sources))
		for i, source := range g.sources {
			if content, ok := g.contents[source]; ok {
				out.SourcesContent[i] = &content
			}
		}
	}

	out.Mappings = g.encode()
	return out
}

func (g *Generator) encode() string {
	mappings := slices.Clone(g.mappings)
	slices.SortStableFunc(mappings, func(a, b Mapping) int {
		return cmp.Or(
			cmp.Compare(a.Generated.Line, b.Generated.Line),
			cmp.Compare(a.Generated.Column, b.Generated.Column),
		)
	})
	mappings = slices.Compact(mappings)

	var (
		buf       []byte
		line      = 1
		genCol    int
		source    int
		origLine  int
		origCol   int
		nameIndex int
		first     = true
	)

	for _, m := range mappings {
		if m.Generated.Line < 1 || m.Generated.Column < 0 {
			continue
		}
		for line < m.Generated.Line {
			buf = append(buf, ';')
			line++
			genCol = 0
			first = true
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false

		buf = appendVLQ(buf, m.Generated.Column-genCol)
		genCol = m.Generated.Column

		if !m.HasOriginal {
			continue
		}

		idx := g.sourceIndex[m.Source]
		buf = appendVLQ(buf, idx-source)
		source = idx

		buf = appendVLQ(buf, m.Original.Line-1-origLine)
		origLine = m.Original.Line - 1

		buf = appendVLQ(buf, m.Original.Column-origCol)
		origCol = m.Original.Column

		if m.Name != "" {
			idx := g.nameIndex[m.Name]
			buf = appendVLQ(buf, idx-nameIndex)
			nameIndex = idx
		}
	}

	return string(buf)
}
