package visitors

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug converts heading text to a GitHub-style anchor: accents are
// stripped, letters lowercased, spaces become hyphens and other punctuation
// is dropped.
func Slug(text string) string {
	stripAccents := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, text)
	if err != nil {
		folded = text
	}
	folded = cases.Lower(language.Und).String(folded)

	var buf strings.Builder
	buf.Grow(len(folded))

	prevHyphen := false
	for _, ch := range folded {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch) || ch == '_':
			buf.WriteRune(ch)
			prevHyphen = false
		case ch == '-' || unicode.IsSpace(ch):
			if !prevHyphen && buf.Len() > 0 {
				buf.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimRight(buf.String(), "-")
}

// slugger hands out unique slugs, suffixing repeats with -1, -2, and so on.
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

func (s *slugger) reserve(slug string) {
	s.seen[slug]++
}

func (s *slugger) next(text string) string {
	base := Slug(text)
	if base == "" {
		base = "section"
	}

	slug := base
	for n := 1; s.seen[slug] > 0; n++ {
		slug = base + "-" + strconv.Itoa(n)
	}
	s.seen[slug]++
	return slug
}
