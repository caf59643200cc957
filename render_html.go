package mdconvert

import (
	"context"

	"github.com/alnah/go-mdconvert/internal/pipeline"
)

func (c *Converter) renderHTML(ctx context.Context, job *renderJob) (rendered, error) {
	doc, err := c.buildHTML(ctx, job)
	if err != nil {
		return rendered{}, err
	}
	return rendered{data: []byte(doc)}, nil
}

// buildHTML produces the styled standalone document shared by the html and
// pdf formats.
func (c *Converter) buildHTML(ctx context.Context, job *renderJob) (string, error) {
	parsed, err := c.markdown.Parse(ctx, pipeline.Normalize(job.content))
	if err != nil {
		return "", err
	}
	body, err := c.markdown.RenderFragment(ctx, parsed)
	if err != nil {
		return "", err
	}
	title := job.title()
	doc := pipeline.WrapDocument(body, title)

	style, err := c.styles.Resolve(job.style)
	if err != nil {
		return "", err
	}
	if style.FallbackReason != nil {
		job.warnings = append(job.warnings, &StyleWarning{Path: job.style, Err: style.FallbackReason})
	}
	doc = c.css.InjectCSS(ctx, doc, style.CSS)

	return c.footer.InjectFooter(ctx, doc, &pipeline.FooterData{
		Title:        title,
		Author:       job.metadata.String("author"),
		Date:         job.metadata.String("date"),
		ConversionID: job.info.ID.String(),
	})
}
