// Package sourcemap reads and writes source maps in the version 3 format.
//
// Positions use a 1-based line and a 0-based column, matching lineindex.
// Internally the format stores 0-based lines; the conversion happens at the
// encoding boundary.
package sourcemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdsplice/pkg/lineindex"
)

// Version is the only source map version supported.
const Version = 3

// ErrUnsupported is returned for maps this package cannot read, such as
// index maps with sections.
var ErrUnsupported = errors.New("unsupported source map")

// Map is the JSON form of a source map.
type Map struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// Mapping relates one generated position to an optional original position.
type Mapping struct {
	Generated lineindex.Position

	// HasOriginal is false for segments that only mark a generated column.
	HasOriginal bool
	Source      string
	Original    lineindex.Position

	// Name is empty when the segment carries no name.
	Name string
}

// Parse decodes a JSON source map.
func Parse(data []byte) (*Map, error) {
	var raw struct {
		Map
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode source map: %w", err)
	}
	if raw.Sections != nil {
		return nil, fmt.Errorf("%w: index maps are not supported", ErrUnsupported)
	}
	if raw.Version != Version {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupported, raw.Version)
	}
	return &raw.Map, nil
}

// Encode returns the JSON form of the map.
func (m *Map) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// SourceContent returns the embedded content for source, if any.
func (m *Map) SourceContent(source string) (string, bool) {
	for i, candidate := range m.Sources {
		if candidate == source && i < len(m.SourcesContent) && m.SourcesContent[i] != nil {
			return *m.SourcesContent[i], true
		}
	}
	return "", false
}

// EachMapping decodes the mappings in generated order and calls fn for
// each one. A non-nil error from fn stops the iteration and is returned.
func (m *Map) EachMapping(fn func(Mapping) error) error {
	var (
		line      = 1
		source    int
		origLine  int
		origCol   int
		nameIndex int
	)

	for lineText := range strings.SplitSeq(m.Mappings, ";") {
		genCol := 0
		for segment := range strings.SplitSeq(lineText, ",") {
			if segment == "" {
				continue
			}

			fields, err := decodeSegment(segment)
			if err != nil {
				return fmt.Errorf("line %d segment %q: %w", line, segment, err)
			}

			genCol += fields[0]
			mapping := Mapping{Generated: lineindex.Position{Line: line, Column: genCol}}

			if len(fields) >= 4 {
				source += fields[1]
				origLine += fields[2]
				origCol += fields[3]
				if source < 0 || source >= len(m.Sources) {
					return fmt.Errorf("line %d: source index %d out of range", line, source)
				}
				mapping.HasOriginal = true
				mapping.Source = m.Sources[source]
				mapping.Original = lineindex.Position{Line: origLine + 1, Column: origCol}
			}
			if len(fields) == 5 {
				nameIndex += fields[4]
				if nameIndex < 0 || nameIndex >= len(m.Names) {
					return fmt.Errorf("line %d: name index %d out of range", line, nameIndex)
				}
				mapping.Name = m.Names[nameIndex]
			}

			if err := fn(mapping); err != nil {
				return err
			}
		}
		line++
	}
	return nil
}

// Decode collects every mapping in generated order.
func (m *Map) Decode() ([]Mapping, error) {
	var out []Mapping
	err := m.EachMapping(func(mapping Mapping) error {
		out = append(out, mapping)
		return nil
	})
	return out, err
}

func decodeSegment(segment string) ([]int, error) {
	fields := make([]int, 0, 5)
	for rest := segment; rest != ""; {
		var (
			value int
			err   error
		)
		value, rest, err = decodeVLQ(rest)
		if err != nil {
			return nil, err
		}
		fields = append(fields, value)
	}

	switch len(fields) {
	case 1, 4, 5:
		return fields, nil
	default:
		return nil, fmt.Errorf("segment has %d fields", len(fields))
	}
}
