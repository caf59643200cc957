package mdconvert

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdconvert/internal/assets"
	"github.com/alnah/go-mdconvert/internal/fileutil"
	"github.com/alnah/go-mdconvert/internal/pipeline"
)

// Compile-time interface checks.
var (
	_ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)
	_ paginator            = (*rodPaginator)(nil)
	_ pdfStamper           = pdfcpuStamper{}
)

// defaultTimeout bounds one conversion when WithTimeout is not used.
const defaultTimeout = 2 * time.Minute

// Converter converts Markdown files to html, pdf or docx.
// Create with NewConverter, call Convert, and Close when done.
//
// A Converter is safe for concurrent use. pdf conversions share one headless
// browser and are serialized; use a ConverterPool to print in parallel.
type Converter struct {
	log     logrus.FieldLogger
	timeout time.Duration
	now     func() time.Time

	markdown *pipeline.Markdown
	styles   *assets.StyleResolver
	css      pipeline.CSSInjector
	footer   *pipeline.FooterInjection

	pdfMu     sync.Mutex
	paginator paginator
	stamper   pdfStamper
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout bounds each conversion, including browser startup.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdconvert: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.timeout = d
	}
}

// WithClock replaces time.Now, for document dates and processing time.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// NewConverter creates a Converter. The browser used for pdf output is
// started on first use.
func NewConverter(opts ...Option) (*Converter, error) {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Converter{
		log:      quiet,
		timeout:  defaultTimeout,
		now:      time.Now,
		markdown: pipeline.NewMarkdown(),
		styles:   assets.NewStyleResolver(DefaultStyle),
		css:      &pipeline.CSSInjection{},
		stamper:  pdfcpuStamper{},
	}
	for _, opt := range opts {
		opt(c)
	}

	tmpl, err := assets.LoadTemplate(assets.FooterTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading footer template: %w", err)
	}
	if c.footer, err = pipeline.NewFooterInjection(tmpl); err != nil {
		return nil, fmt.Errorf("initializing footer: %w", err)
	}

	if c.paginator == nil {
		c.paginator = newRodPaginator(c.timeout)
	}
	return c, nil
}

// Convert converts the Markdown file at inputPath and writes the output
// file. Stages run in order: validate options, read input, pre-conversion
// plugins, parse and render, write, post-conversion plugins.
//
// Errors match ErrInput, ErrPlugin or ErrConversion. A failed conversion may
// leave a partial output file behind. Panics are recovered into
// ErrConversion.
func (c *Converter) Convert(ctx context.Context, inputPath string, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrConversion, r)
		}
	}()

	id := uuid.New()
	log := c.log.WithFields(logrus.Fields{
		"conversion_id": id.String(),
		"input":         inputPath,
		"format":        opts.Format.String(),
	})

	render, err := c.rendererFor(opts.Format)
	if err != nil {
		log.WithError(err).Error("Invalid options")
		return nil, stageError("validating options", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	src, err := ReadSource(inputPath)
	if err != nil {
		log.WithError(err).Error("Reading input failed")
		return nil, err
	}
	log.Debug("Starting conversion")

	info := ConversionInfo{
		ID:         id,
		InputPath:  inputPath,
		OutputPath: opts.OutputPath,
		Format:     opts.Format,
	}
	if info.OutputPath == "" {
		info.OutputPath = fileutil.ReplaceExtension(inputPath, opts.Format.Extension())
	}

	content, meta, err := applyBefore(ctx, opts.Plugins, src.Content, opts.Metadata.Clone(), info)
	if err != nil {
		log.WithError(err).Error("Pre-conversion plugins failed")
		return nil, stageError("applying plugins", err)
	}
	start := c.now()

	if err := ctx.Err(); err != nil {
		return nil, stageError("rendering "+opts.Format.String(), err)
	}
	job := &renderJob{
		info:     info,
		source:   src,
		content:  content,
		metadata: meta,
		style:    opts.StyleSheet,
	}
	out, err := render(ctx, job)
	for _, w := range job.warnings {
		log.WithError(w).Warn("Conversion warning")
	}
	if err != nil {
		log.WithError(err).Error("Rendering failed")
		return nil, stageError("rendering "+opts.Format.String(), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, stageError("writing output", err)
	}
	if err := writeOutput(info.OutputPath, out.data); err != nil {
		log.WithError(err).Error("Writing output failed")
		return nil, stageError("writing output", err)
	}

	elapsed := max(c.now().Sub(start), 0)
	res := Result{
		ID:         id,
		OutputPath: info.OutputPath,
		Success:    true,
		Format:     opts.Format,
		Metadata:   meta,
		Stats: Stats{
			InputSizeBytes:  src.Size(),
			OutputSizeBytes: int64(len(out.data)),
			ProcessingTime:  elapsed,
			Pages:           out.pages,
		},
		Warnings: job.warnings,
	}
	log.WithFields(logrus.Fields{
		"output":  res.OutputPath,
		"bytes":   res.Stats.OutputSizeBytes,
		"elapsed": elapsed,
	}).Info("Output written")

	final, err := applyAfter(ctx, opts.Plugins, res)
	if err != nil {
		log.WithError(err).Error("Post-conversion plugins failed")
		return nil, stageError("applying plugins", err)
	}
	return &final, nil
}

// Close releases the headless browser, if one was started.
func (c *Converter) Close() error {
	if c.paginator != nil {
		return c.paginator.Close()
	}
	return nil
}

// writeOutput writes data to path, creating missing directories.
func writeOutput(path string, data []byte) error {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) // #nosec G306 -- output documents are meant to be shared
}
