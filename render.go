package mdconvert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// renderJob carries one conversion through a renderer.
type renderJob struct {
	info     ConversionInfo
	source   *SourceDocument
	content  string // after the pre-conversion plugins
	metadata Metadata
	style    string // Options.StyleSheet

	// warnings collects non-fatal problems found while rendering.
	warnings []error
}

// title returns the document title: metadata "title", else the input file
// name without extension.
func (j *renderJob) title() string {
	if t := strings.TrimSpace(j.metadata.String("title")); t != "" {
		return t
	}
	base := filepath.Base(j.info.InputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// rendered is the output of a renderer.
type rendered struct {
	data  []byte
	pages int
}

type renderFunc func(ctx context.Context, job *renderJob) (rendered, error)

// rendererFor selects the renderer of format f. The set of formats is
// closed; an unknown value fails before any I/O.
func (c *Converter) rendererFor(f OutputFormat) (renderFunc, error) {
	switch f {
	case FormatHTML:
		return c.renderHTML, nil
	case FormatPDF:
		return c.renderPDF, nil
	case FormatDOCX:
		return c.renderDOCX, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}
