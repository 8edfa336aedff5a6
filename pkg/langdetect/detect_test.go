package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdsplice/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
		method  langdetect.Method
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash", langdetect.MethodShebang},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python", langdetect.MethodShebang},
		{"shebang beats patterns", "#!/bin/bash\ndef foo():\n    pass", "bash", langdetect.MethodShebang},
		{"go", "package main\n\nfunc main() {}\n", "go", langdetect.MethodPattern},
		{"python", "def foo():\n    pass\n", "python", langdetect.MethodPattern},
		{"json", `{"key": "value", "number": 123}`, "json", langdetect.MethodPattern},
		{"yaml", "key: value\nother: 123\nlist:\n  - item1\n", "yaml", langdetect.MethodPattern},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust", langdetect.MethodPattern},
		{"sql", "select * from users;", "sql", langdetect.MethodPattern},
		{"dockerfile", "FROM golang:1.25\nWORKDIR /app\nCOPY . .\n", "dockerfile", langdetect.MethodPattern},
		{"html", "<!DOCTYPE html>\n<html></html>", "html", langdetect.MethodPattern},
		{"javascript", "const x = () => 42;\nconsole.log(x());", "javascript", langdetect.MethodPattern},
		{"empty", "", "text", langdetect.MethodNone},
		{"blank", "  \n\t\n", "text", langdetect.MethodNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Detect([]byte(tt.content))
			assert.Equal(t, tt.want, got.Language)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.method != langdetect.MethodNone, got.Conclusive())
		})
	}
}

func TestFenceTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bash", langdetect.FenceTag("Shell"))
	assert.Equal(t, "c++", langdetect.FenceTag("C++"))
	assert.Equal(t, "vim-script", langdetect.FenceTag("Vim Script"))
	assert.Equal(t, "classifier", langdetect.MethodClassifier.String())
}

func BenchmarkDetect(b *testing.B) {
	code := []byte("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n")
	for b.Loop() {
		langdetect.Detect(code)
	}
}
