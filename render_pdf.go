package mdconvert

import (
	"context"
	"path/filepath"

	"github.com/alnah/go-mdconvert/internal/pipeline"
)

// renderPDF prints the html document. Conversions on one Converter share
// its browser and take turns.
func (c *Converter) renderPDF(ctx context.Context, job *renderJob) (rendered, error) {
	doc, err := c.buildHTML(ctx, job)
	if err != nil {
		return rendered{}, err
	}
	// The browser loads a temporary copy; images and links relative to the
	// Markdown file are made absolute first.
	doc, err = pipeline.ResolveAssetPaths(doc, filepath.Dir(job.info.InputPath))
	if err != nil {
		return rendered{}, err
	}

	pdf, err := c.paginate(ctx, doc)
	if err != nil {
		return rendered{}, err
	}

	out, pages, err := c.stamper.Stamp(pdf, pdfProperties(job.metadata, job.title()))
	if err != nil {
		return rendered{}, err
	}
	return rendered{data: out, pages: pages}, nil
}

func (c *Converter) paginate(ctx context.Context, doc string) ([]byte, error) {
	c.pdfMu.Lock()
	defer c.pdfMu.Unlock()
	return c.paginator.Paginate(ctx, doc)
}
