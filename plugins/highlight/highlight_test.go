package highlight

// Notes:
// - Colors depend on the chroma style and are not asserted; tests check
//   structure (pre tag, language, preserved text) only.

import (
	"context"
	"strings"
	"testing"

	mdconvert "github.com/alnah/go-mdconvert"
)

func apply(t *testing.T, p *Plugin, content string) string {
	t.Helper()
	rw, err := p.BeforeConvert(context.Background(), content, mdconvert.ConversionInfo{})
	if err != nil {
		t.Fatalf("BeforeConvert() error = %v", err)
	}
	out, err := rw(content, mdconvert.Metadata{})
	if err != nil {
		t.Fatalf("rewrite error = %v", err)
	}
	return out
}

// ---------------------------------------------------------------------------
// TestPlugin
// ---------------------------------------------------------------------------

func TestPlugin_HighlightsFencedBlocks(t *testing.T) {
	t.Parallel()

	content := "# Title\n\n```go\nfunc main() {}\n```\n\nafter\n"
	out := apply(t, New(), content)

	if !strings.HasPrefix(out, "# Title\n\n<pre data-language=\"go\"") {
		t.Errorf("output does not start with the highlighted block:\n%s", out)
	}
	if strings.Contains(out, "```") {
		t.Error("fence markers left in output")
	}
	if !strings.Contains(out, "style=") {
		t.Error("highlighted block has no inline styles")
	}
	if !strings.Contains(out, "</pre>\n\nafter\n") {
		t.Errorf("text after the block not preserved:\n%s", out)
	}
	if !strings.Contains(out, "main") {
		t.Error("code text lost")
	}
}

func TestPlugin_UnknownLanguageFallsBackToText(t *testing.T) {
	t.Parallel()

	out := apply(t, New(), "```nosuchlang\nplain <words>\n```\n")
	if !strings.HasPrefix(out, `<pre data-language="nosuchlang"`) {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "plain &lt;words&gt;") {
		t.Errorf("code not escaped as text: %q", out)
	}
}

func TestPlugin_NoFences(t *testing.T) {
	t.Parallel()

	content := "just `inline` code\n\n    indented block\n"
	if out := apply(t, New(), content); out != content {
		t.Errorf("output = %q, want unchanged", out)
	}
}

func TestPlugin_Options(t *testing.T) {
	t.Parallel()

	if got := New().styleName; got != DefaultStyle {
		t.Errorf("default style = %q, want %q", got, DefaultStyle)
	}
	if got := New(WithStyle("monokai")).styleName; got != "monokai" {
		t.Errorf("style = %q, want monokai", got)
	}
	if got := New(WithStyle("")).styleName; got != DefaultStyle {
		t.Errorf("empty WithStyle changed style to %q", got)
	}
}

func TestPlugin_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().BeforeConvert(ctx, "", mdconvert.ConversionInfo{}); err == nil {
		t.Error("BeforeConvert() error = nil, want context error")
	}
}

// ---------------------------------------------------------------------------
// TestRewriteFences
// ---------------------------------------------------------------------------

func TestRewriteFences(t *testing.T) {
	t.Parallel()

	render := func(lang, code string) (string, bool) {
		if lang == "reject" {
			return "", false
		}
		return "<pre>" + lang + ":" + strings.ReplaceAll(code, "\n", "|") + "</pre>", true
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "backticks",
			content: "```go\na\nb\n```\n",
			want:    "<pre>go:a|b|</pre>\n",
		},
		{
			name:    "tildes with info string",
			content: "~~~ python title=x\nprint()\n~~~\n",
			want:    "<pre>python:print()|</pre>\n",
		},
		{
			name:    "longer closing fence",
			content: "```\nx\n`````\n",
			want:    "<pre>:x|</pre>\n",
		},
		{
			name:    "shorter fence does not close",
			content: "````\n```\n````\n",
			want:    "<pre>:```|</pre>\n",
		},
		{
			name:    "empty block",
			content: "```sh\n```\n",
			want:    "<pre>sh:</pre>\n",
		},
		{
			name:    "indented fence keeps indent on opening line",
			content: "  ```go\n  x\n  ```\n",
			want:    "  <pre>go:x|</pre>\n",
		},
		{
			name:    "four spaces is not a fence",
			content: "    ```go\n    x\n    ```\n",
			want:    "    ```go\n    x\n    ```\n",
		},
		{
			name:    "rejected block kept",
			content: "```reject\nx\n```\nrest\n",
			want:    "```reject\nx\n```\nrest\n",
		},
		{
			name:    "unterminated block kept",
			content: "text\n```go\nx\n",
			want:    "text\n```go\nx\n",
		},
		{
			name:    "two fences too short",
			content: "``not a fence``\n",
			want:    "``not a fence``\n",
		},
		{
			name:    "crlf",
			content: "```go\r\nx\r\n```\r\n",
			want:    "<pre>go:x|</pre>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := rewriteFences(tt.content, render); got != tt.want {
				t.Errorf("rewriteFences() = %q, want %q", got, tt.want)
			}
		})
	}
}
