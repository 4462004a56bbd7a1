package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello world",
			expected: "Hello world\n",
		},
		{
			name:     "bold text",
			input:    "**bold**",
			expected: "<strong>bold</strong>\n",
		},
		{
			name:     "italic text",
			input:    "*italic*",
			expected: "<em>italic</em>\n",
		},
		{
			name:     "inline code",
			input:    "`code`",
			expected: "<code>code</code>\n",
		},
		{
			name:     "header tags stripped",
			input:    "# Info",
			expected: "Info\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "heading kept",
			input:    "### Perang Dunia II",
			contains: []string{"<h3", "Perang Dunia II</h3>"},
		},
		{
			name:     "ordered list kept",
			input:    "1. Churchill\n2. Roosevelt\n",
			contains: []string{"<ol>", "<li>Churchill</li>", "<li>Roosevelt</li>"},
		},
		{
			name:     "bold label kept",
			input:    "**Periode:** 1939",
			contains: []string{"<strong>Periode:</strong> 1939"},
		},
		{
			name:        "script stripped",
			input:       "<script>alert('xss')</script>hello",
			notContains: []string{"<script>", "alert("},
		},
		{
			name:        "escaped markup stays text",
			input:       `\<b\>not bold\</b\>`,
			contains:    []string{"&lt;b&gt;not bold&lt;/b&gt;"},
			notContains: []string{"<b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToHTML([]byte(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("MarkdownToHTML(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("MarkdownToHTML(%q) = %q, must not contain %q", tt.input, got, unwanted)
				}
			}
		})
	}
}

func TestHTMLToText(t *testing.T) {
	got, err := HTMLToText("<h3>Perang Dunia II</h3><p>Hello world</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<") {
		t.Errorf("HTMLToText returned markup: %q", got)
	}
	for _, want := range []string{"perang dunia ii", "hello world"} {
		if !strings.Contains(strings.ToLower(got), want) {
			t.Errorf("HTMLToText() = %q, want it to contain %q", got, want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"*bold*", `\*bold\*`},
		{"# not heading", `\# not heading`},
		{"Bahasa C #", `Bahasa C \#`},
		{"- not bullet", `\- not bullet`},
		{"1945. Merdeka", `1945\. Merdeka`},
		{"a <b> c", `a \<b\> c`},
		{"line\n2) item", "line\n2\\) item"},
		{"judul\n---", "judul\n\\---"},
		{"judul\n  ===", "judul\n  &#61;=="},
		{"***", `\*\*\*`},
		{"___", `\_\_\_`},
	}

	for _, tt := range tests {
		if got := EscapeMarkdown(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeMarkdown_NoSetextHeading(t *testing.T) {
	for _, in := range []string{"Konflik global\n---\nbagian dua", "Krisis\n==="} {
		got := MarkdownToHTML([]byte("**Label:** " + EscapeMarkdown(in)))
		for _, tag := range []string{"<h1", "<h2", "<hr"} {
			if strings.Contains(got, tag) {
				t.Errorf("MarkdownToHTML(%q) = %q, must not contain %q", in, got, tag)
			}
		}
	}
}
