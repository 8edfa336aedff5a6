// Package langdetect guesses the language of a code block body so that
// an info string can be filled in for fenced blocks that lack one.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is the language reported when detection is inconclusive.
const Text = "text"

// Method records which strategy produced a Result.
type Method int

const (
	// MethodNone means no strategy was conclusive.
	MethodNone Method = iota
	MethodShebang
	MethodPattern
	MethodClassifier
)

func (m Method) String() string {
	switch m {
	case MethodShebang:
		return "shebang"
	case MethodPattern:
		return "pattern"
	case MethodClassifier:
		return "classifier"
	default:
		return "none"
	}
}

// Result is a detected fence tag together with how it was found.
type Result struct {
	Language string
	Method   Method
}

// Conclusive reports whether some strategy identified the language.
func (r Result) Conclusive() bool {
	return r.Method != MethodNone
}

// classifierCandidates bounds the enry classifier to languages commonly
// fenced in documentation.
//
//nolint:gochecknoglobals // read-only table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile", "TOML",
}

// Detect returns the fence tag for content. Strategies run from most to
// least reliable: shebang, textual patterns, then the enry classifier.
func Detect(content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return Result{Language: Text}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Result{Language: FenceTag(lang), Method: MethodShebang}
	}

	s := newSample(content)
	for _, p := range patterns {
		if p.match(s) {
			return Result{Language: p.lang, Method: MethodPattern}
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Result{Language: FenceTag(lang), Method: MethodClassifier}
	}

	return Result{Language: Text}
}

// FenceTag converts an enry language name to the tag used after a fence.
func FenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
}

// sample holds the views of a code body the patterns look at.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
	upper   string
}

func newSample(content []byte) sample {
	trimmed := bytes.TrimSpace(content)
	return sample{
		raw:     content,
		trimmed: trimmed,
		text:    string(content),
		upper:   strings.ToUpper(string(trimmed)),
	}
}

type pattern struct {
	lang  string
	match func(s sample) bool
}

// patterns are checked in order of specificity.
//
//nolint:gochecknoglobals // read-only table
var patterns = []pattern{
	{"go", func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{"python", looksLikePython},
	{"html", func(s sample) bool {
		lower := bytes.ToLower(s.trimmed)
		return containsAny(string(lower), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(s sample) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`))
	}},
	{"dockerfile", func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
			(strings.Contains(s.text, "\nFROM ") && strings.Contains(s.text, "\nRUN ")) ||
			(strings.Contains(s.text, "WORKDIR ") && strings.Contains(s.text, "COPY "))
	}},
	{"sql", func(s sample) bool {
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(s.upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s sample) bool {
		return containsAny(s.text, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(s sample) bool {
		return containsAny(s.text, "=>", "const ", "let ", "console.log")
	}},
	{"yaml", looksLikeYAML},
}

func looksLikePython(s sample) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") &&
		(strings.Contains(s.text, "from ") || bytes.HasPrefix(s.trimmed, []byte("import "))) {
		return true
	}
	return containsAny(s.text, "__name__", "__main__")
}

// looksLikeYAML counts "key: value" lines and root-level list items.
func looksLikeYAML(s sample) bool {
	hits := 0
	for line := range bytes.SplitSeq(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, line[0] == '#':
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			hits++
		case bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"':
			hits++
		}
	}
	return hits >= 2
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
