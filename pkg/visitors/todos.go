package visitors

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/mdast"
	"github.com/yaklabco/mdsplice/pkg/visit"
)

// TodoNotesName identifies the todo-notes visitor.
const TodoNotesName = "todo-notes"

func todoNotesDefinition() Definition {
	return Definition{
		Name:           TodoNotesName,
		Description:    "Reports text containing work markers such as TODO or FIXME.",
		DefaultEnabled: true,
		Defaults: map[string]any{
			"markers":  []string{"TODO", "FIXME"},
			"category": diag.Warning.String(),
		},
		New: newTodoNotes,
	}
}

type todoNotes struct {
	markers  []string
	category diag.Category
}

func newTodoNotes(opts config.Options) (visit.Visitor, error) {
	markers := opts.Strings("markers", []string{"TODO", "FIXME"})
	if len(markers) == 0 || slices.Contains(markers, "") {
		return nil, errors.New("markers must be non-empty strings")
	}
	category, err := diag.ParseCategory(opts.String("category", diag.Warning.String()))
	if err != nil {
		return nil, err
	}
	return &todoNotes{markers: markers, category: category}, nil
}

func (t *todoNotes) Name() string { return TodoNotesName }

func (t *todoNotes) Filter(node *mdast.Node) bool {
	return node.Kind == mdast.NodeText
}

type todoHit struct {
	marker     string
	start, end int
}

func (t *todoNotes) Visit(node *mdast.Node, ctx *visit.Context) (visit.Action, error) {
	text := node.Text()

	var hits []todoHit
	for _, marker := range t.markers {
		for _, at := range markerIndexes(text, marker) {
			end := at + len(marker)
			if nl := bytes.IndexByte(text[end:], '\n'); nl >= 0 {
				end += nl
			} else {
				end = len(text)
			}
			end = at + len(bytes.TrimRightFunc(text[at:end], unicode.IsSpace))
			hits = append(hits, todoHit{marker: marker, start: at, end: end})
		}
	}
	slices.SortFunc(hits, func(a, b todoHit) int { return cmp.Compare(a.start, b.start) })

	for _, hit := range hits {
		// Messages always read "MARKER: note" whatever separator the source used.
		note := strings.TrimSpace(strings.TrimLeft(string(text[hit.start+len(hit.marker):hit.end]), ":"))
		message := hit.marker + " note"
		if note != "" {
			message = fmt.Sprintf("%s: %s", hit.marker, note)
		}
		err := ctx.ReportRange(node.Start()+hit.start, node.Start()+hit.end, t.category, TodoNotesName, message)
		if err != nil {
			return visit.Continue, err
		}
	}
	return visit.Continue, nil
}

// markerIndexes returns the offsets where marker occurs as a whole word.
func markerIndexes(text []byte, marker string) []int {
	var out []int
	for offset := 0; offset < len(text); {
		idx := bytes.Index(text[offset:], []byte(marker))
		if idx < 0 {
			break
		}
		at := offset + idx
		end := at + len(marker)
		if !wordByteBefore(text, at) && !wordByteAfter(text, end) {
			out = append(out, at)
		}
		offset = end
	}
	return out
}

func wordByteBefore(text []byte, at int) bool {
	if at == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRune(text[:at])
	return isWordRune(r)
}

func wordByteAfter(text []byte, end int) bool {
	if end >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRune(text[end:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
