// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"heading", "# Hello", `<h1 id="hello">Hello</h1>`},
		{"paragraph", "plain text", "<p>plain text</p>"},
		{"bold", "**bold**", "<strong>bold</strong>"},
		{"gfm strikethrough", "~~gone~~", "<del>gone</del>"},
		{"gfm table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"raw html passthrough", `<div class="embed">x</div>`, `<div class="embed">x</div>`},
		{"autolink", "visit https://example.com now", `<a href="https://example.com">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML(%q): %v", tt.source, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestToHTMLHighlighting(t *testing.T) {
	got, err := ToHTML("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(got, "<pre") {
		t.Errorf("fenced code block did not render a <pre> element: %q", got)
	}
}
