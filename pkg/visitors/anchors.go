package visitors

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/mdast"
	"github.com/yaklabco/mdsplice/pkg/visit"
)

// HeadingAnchorsName identifies the heading-anchors visitor.
const HeadingAnchorsName = "heading-anchors"

const (
	anchorPrefix = `<a id="`
	anchorSuffix = `"></a>`
)

func headingAnchorsDefinition() Definition {
	return Definition{
		Name:        HeadingAnchorsName,
		Description: "Inserts an HTML anchor above each top-level heading that lacks one.",
		Defaults:    map[string]any{"max_level": 6},
		New:         newHeadingAnchors,
	}
}

type headingAnchors struct {
	maxLevel int
	slugs    *slugger
}

func newHeadingAnchors(opts config.Options) (visit.Visitor, error) {
	maxLevel := opts.Int("max_level", 6)
	if maxLevel < 1 || maxLevel > 6 {
		return nil, fmt.Errorf("max_level must be between 1 and 6, got %d", maxLevel)
	}
	return &headingAnchors{maxLevel: maxLevel, slugs: newSlugger()}, nil
}

func (h *headingAnchors) Name() string { return HeadingAnchorsName }

// Filter selects headings directly under the document; nested headings
// cannot take a line above them without leaving their container.
func (h *headingAnchors) Filter(node *mdast.Node) bool {
	return node.Kind == mdast.NodeHeading &&
		node.Parent != nil && node.Parent.Kind == mdast.NodeDocument &&
		node.HeadingLevel() <= h.maxLevel
}

func (h *headingAnchors) Visit(node *mdast.Node, ctx *visit.Context) (visit.Action, error) {
	file := ctx.File()
	pos, err := file.Position(node.Start())
	if err != nil {
		return visit.SkipChildren, err
	}

	if id, ok := existingAnchor(file, pos.Line); ok {
		h.slugs.reserve(id)
		return visit.SkipChildren, nil
	}

	slug := h.slugs.next(node.PlainText())
	if err := ctx.InsertLine(node.Start(), anchorPrefix+slug+anchorSuffix); err != nil {
		return visit.SkipChildren, err
	}

	// A setext heading would absorb the anchor line into its text.
	if node.Block != nil && node.Block.Setext {
		if err := ctx.InsertLine(node.Start(), ""); err != nil {
			return visit.SkipChildren, err
		}
	}

	return visit.SkipChildren, ctx.ReportDiagCode(node, diag.Info, HeadingAnchorsName,
		fmt.Sprintf("added anchor %q", slug))
}

// existingAnchor looks for an anchor line directly above line, allowing
// one blank line in between.
func existingAnchor(file *mdast.FileSnapshot, line int) (string, bool) {
	for above := line - 1; above >= 1 && above >= line-2; above-- {
		text := strings.TrimSpace(string(file.LineContent(above)))
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, anchorPrefix) && strings.HasSuffix(text, anchorSuffix) {
			return strings.TrimSuffix(strings.TrimPrefix(text, anchorPrefix), anchorSuffix), true
		}
		return "", false
	}
	return "", false
}
