package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrFooterRender indicates the footer template failed to execute.
var ErrFooterRender = errors.New("footer template rendering failed")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, else after <body>,
// else at the start of the content.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos := afterBodyTag(htmlContent, lowerHTML); pos != -1 {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// FooterData feeds the footer template.
type FooterData struct {
	Title        string
	Author       string
	Date         string
	ConversionID string
}

// FooterInjection renders a footer block and injects it before </body>.
type FooterInjection struct {
	tmpl *template.Template
}

// NewFooterInjection parses the footer template.
func NewFooterInjection(tmplContent string) (*FooterInjection, error) {
	tmpl, err := template.New("footer").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing footer template: %w", err)
	}
	return &FooterInjection{tmpl: tmpl}, nil
}

// InjectFooter renders the template with data. A nil data leaves the
// content unchanged.
func (f *FooterInjection) InjectFooter(ctx context.Context, htmlContent string, data *FooterData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFooterRender, err)
	}

	footer := buf.String()
	if idx := strings.LastIndex(strings.ToLower(htmlContent), "</body>"); idx != -1 {
		return htmlContent[:idx] + footer + htmlContent[idx:], nil
	}
	return htmlContent + footer, nil
}

// afterBodyTag returns the offset just past the opening <body ...> tag, or -1.
func afterBodyTag(htmlContent, lowerHTML string) int {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}
