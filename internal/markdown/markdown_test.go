package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"paragraph", "Inclusive classrooms.", []string{"<p>Inclusive classrooms.</p>"}},
		{"emphasis", "**Equity** matters", []string{"<strong>Equity</strong>"}},
		{"heading id", "## Our Mission", []string{`<h2 id="our-mission">Our Mission</h2>`}},
		{"list", "- one\n- two", []string{"<ul>", "<li>one</li>", "<li>two</li>"}},
		{"autolink", "See https://example.org", []string{`<a href="https://example.org">`}},
		{"strikethrough", "~~old~~", []string{"<del>old</del>"}},
		{"smart quotes", `"quoted"`, []string{"&ldquo;quoted&rdquo;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToHTML(%q) = %q, missing %q", tt.input, got, w)
				}
			}
		})
	}
}

func TestRawHTMLIsOmitted(t *testing.T) {
	got := string(Render("<script>alert(1)</script>\n\nText"))
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
	if !strings.Contains(got, "<p>Text</p>") {
		t.Errorf("markdown body missing: %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want empty", got)
	}
}
