package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors for the Markdown stages.
var (
	ErrMarkdownParse  = errors.New("markdown parsing failed")
	ErrHTMLConversion = errors.New("HTML conversion failed")
)

// documentTemplate wraps the rendered fragment in a complete HTML5 document.
// Verbs: title, body.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="generator" content="mdconvert">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// Parsed is a Markdown source together with the AST built from it.
// The AST references Source by offset; the two must stay together.
type Parsed struct {
	Source []byte
	Root   ast.Node
}

// Markdown parses and renders Markdown with goldmark.
// A Markdown is safe for concurrent use.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown creates a Markdown with GFM, footnotes, ==mark== spans,
// heading IDs and class-based syntax highlighting. Raw HTML is passed through goldmark and
// cleaned by the sanitizer afterwards.
func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			markExtension{},    // ==mark==
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &Markdown{md: md, policy: newSanitizer()}
}

// Parse builds the goldmark AST for content. goldmark has no context
// support, so cancellation is honoured through a goroutine and select.
func (m *Markdown) Parse(ctx context.Context, content string) (*Parsed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan *Parsed, 1)
	go func() {
		source := []byte(content)
		root := m.md.Parser().Parse(text.NewReader(source))
		done <- &Parsed{Source: source, Root: root}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case p := <-done:
		if p.Root == nil {
			return nil, ErrMarkdownParse
		}
		return p, nil
	}
}

// RenderFragment renders a parsed document to sanitized HTML body markup.
func (m *Markdown) RenderFragment(ctx context.Context, p *Parsed) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := m.md.Renderer().Render(&buf, p.Source, p.Root); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: m.policy.Sanitize(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// ToHTML converts Markdown content to a standalone HTML5 document titled title.
func (m *Markdown) ToHTML(ctx context.Context, content, title string) (string, error) {
	p, err := m.Parse(ctx, content)
	if err != nil {
		return "", err
	}
	body, err := m.RenderFragment(ctx, p)
	if err != nil {
		return "", err
	}
	return WrapDocument(body, title), nil
}

// WrapDocument places body markup inside the HTML5 document template.
func WrapDocument(body, title string) string {
	if title == "" {
		title = "Document"
	}
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), body)
}

// newSanitizer extends the user-generated-content policy with what the
// renderer and the highlighting plugins emit: chroma classes and inline
// styles, heading anchors, task list checkboxes and <mark>.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id", "role").Globally()
	p.AllowAttrs("style").OnElements("span", "pre", "code", "div")
	p.AllowAttrs("tabindex").OnElements("pre")
	p.AllowDataAttributes()
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.AllowElements("mark")
	return p
}
