package visitors

import (
	"errors"
	"strings"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/mdast"
	"github.com/yaklabco/mdsplice/pkg/visit"
)

// BannerName identifies the banner visitor.
const BannerName = "banner"

const defaultBannerText = "<!-- This file was rewritten by mdsplice. Edit the source instead. -->"

func bannerDefinition() Definition {
	return Definition{
		Name:        BannerName,
		Description: "Inserts a banner line at the top of the document.",
		Defaults:    map[string]any{"text": defaultBannerText},
		New:         newBanner,
	}
}

// banner inserts its text as the first line once, then halts.
type banner struct {
	text string
}

func newBanner(opts config.Options) (visit.Visitor, error) {
	text := opts.String("text", defaultBannerText)
	if strings.TrimSpace(text) == "" || strings.ContainsAny(text, "\r\n") {
		return nil, errors.New("text must be a single non-empty line")
	}
	return &banner{text: text}, nil
}

func (b *banner) Name() string { return BannerName }

func (b *banner) Filter(node *mdast.Node) bool {
	return node.Kind == mdast.NodeDocument
}

func (b *banner) Visit(_ *mdast.Node, ctx *visit.Context) (visit.Action, error) {
	if string(ctx.File().LineContent(1)) == b.text {
		return visit.Halt, nil
	}
	if err := ctx.InsertLine(0, b.text); err != nil {
		return visit.Halt, err
	}
	return visit.Halt, ctx.ReportRange(0, 0, diag.Info, BannerName, "inserted banner")
}
