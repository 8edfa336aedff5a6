package visitors

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/langdetect"
	"github.com/yaklabco/mdsplice/pkg/mdast"
	"github.com/yaklabco/mdsplice/pkg/visit"
)

// FenceLanguageName identifies the fence-language visitor.
const FenceLanguageName = "fence-language"

func fenceLanguageDefinition() Definition {
	return Definition{
		Name:           FenceLanguageName,
		Description:    "Fills in the info string of fenced code blocks that have none, using language detection.",
		DefaultEnabled: true,
		Defaults:       map[string]any{"fallback": ""},
		New:            newFenceLanguage,
	}
}

// fenceLanguage tags untagged fences. When detection is inconclusive it
// uses the fallback tag, or reports a warning if there is none.
type fenceLanguage struct {
	fallback string
}

func newFenceLanguage(opts config.Options) (visit.Visitor, error) {
	fallback := strings.TrimSpace(opts.String("fallback", ""))
	if strings.ContainsAny(fallback, " \t`~") {
		return nil, fmt.Errorf("fallback %q is not a valid fence tag", fallback)
	}
	return &fenceLanguage{fallback: fallback}, nil
}

func (f *fenceLanguage) Name() string { return FenceLanguageName }

func (f *fenceLanguage) Filter(node *mdast.Node) bool {
	cb := node.CodeBlock()
	return cb != nil && !cb.Indented && strings.TrimSpace(cb.Info) == ""
}

func (f *fenceLanguage) Visit(node *mdast.Node, ctx *visit.Context) (visit.Action, error) {
	cb := node.CodeBlock()

	detected := langdetect.Detect(cb.Body)
	lang := detected.Language
	if !detected.Conclusive() {
		if f.fallback == "" {
			return visit.SkipChildren, ctx.ReportDiagCode(node, diag.Warning, FenceLanguageName,
				"could not detect the language of this code block")
		}
		lang = f.fallback
	}

	if err := ctx.Insert(node.Start()+cb.FenceLength, lang); err != nil {
		return visit.SkipChildren, err
	}
	return visit.SkipChildren, ctx.ReportDiagCode(node, diag.Info, FenceLanguageName,
		fmt.Sprintf("tagged code block as %s (%s)", lang, detected.Method))
}
