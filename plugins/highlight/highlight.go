// Package highlight provides a plugin that replaces fenced code blocks with
// syntax-highlighted HTML rendered by chroma.
//
// The generated markup is a <pre> block with inline styles and a
// data-language attribute. html and pdf output show it as is; docx output
// reads it back as a code block of the same language.
package highlight

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	mdconvert "github.com/alnah/go-mdconvert"
)

// Name identifies the plugin in errors and logs.
const Name = "highlight"

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "github-dark"

// Plugin highlights fenced code blocks.
type Plugin struct {
	styleName string
}

var _ mdconvert.BeforeConverter = (*Plugin)(nil)

// Option configures the plugin.
type Option func(*Plugin)

// WithStyle selects a chroma style by name. Unknown names fall back to
// chroma's fallback style.
func WithStyle(name string) Option {
	return func(p *Plugin) {
		if name != "" {
			p.styleName = name
		}
	}
}

// New returns the highlight plugin.
func New(opts ...Option) *Plugin {
	p := &Plugin{styleName: DefaultStyle}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements mdconvert.Plugin.
func (p *Plugin) Name() string { return Name }

// BeforeConvert implements mdconvert.BeforeConverter. The style and
// formatter are prepared here; the rewrite highlights the blocks of the
// content it receives.
func (p *Plugin) BeforeConvert(ctx context.Context, _ string, _ mdconvert.ConversionInfo) (mdconvert.ContentRewrite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := &highlighter{
		style: styles.Get(p.styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.TabWidth(4),
		),
	}
	return func(content string, _ mdconvert.Metadata) (string, error) {
		return rewriteFences(content, h.render), nil
	}, nil
}

type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// render highlights code. ok is false when chroma fails; the block is then
// left as Markdown.
func (h *highlighter) render(lang, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Get("text")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", false
	}

	out := strings.TrimRight(sb.String(), "\n")
	// chroma opens with "<pre"; tag the block with its language.
	rest, found := strings.CutPrefix(out, "<pre")
	if !found {
		return "", false
	}
	return fmt.Sprintf(`<pre data-language="%s"`, html.EscapeString(lang)) + rest, true
}
