// Package mdconvert converts Markdown documents to HTML, PDF and DOCX.
//
// # Quick Start
//
// Create a converter, convert a file, and close when done:
//
//	conv, err := mdconvert.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, "notes.md", mdconvert.Options{
//	    Format: mdconvert.FormatPDF,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath, result.Stats.Pages)
//
// # Formats
//
//   - FormatHTML: a standalone HTML5 file with the stylesheet and a footer
//     embedded.
//   - FormatPDF: the same document printed by headless Chrome (US Letter,
//     0.5 inch margins), with metadata written to the PDF info dictionary.
//   - FormatDOCX: a WordprocessingML package built from the document model
//     in package docmodel.
//
// ParseFormat also accepts the aliases "flat-markup", "paginated" and
// "structured".
//
// # Plugins
//
// Options.Plugins extend a conversion. A plugin implements BeforeConverter
// to rewrite the Markdown content and metadata, AfterConverter to rewrite
// the Result, or both. All hooks of a phase are called concurrently with
// the same input and return rewrite functions; the rewrites are then applied
// in plugin order. The outcome therefore never depends on which hook
// finishes first. The built-in ones live under plugins/.
//
// # Errors
//
// Every error returned by Convert matches one of ErrInput, ErrPlugin or
// ErrConversion:
//
//	if errors.Is(err, mdconvert.ErrInput) {
//	    // missing or unreadable source
//	}
//	var perr *mdconvert.PluginError
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Plugin, perr.Phase)
//	}
//
// A stylesheet that cannot be read is not an error: the built-in style is
// used and a *StyleWarning is added to Result.Warnings.
//
// # Parallel Processing
//
// A Converter serializes pdf printing through its one browser. For batch
// work, use a ConverterPool:
//
//	pool := mdconvert.NewConverterPool(mdconvert.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Requirements
//
// pdf output needs Chrome or Chromium. go-rod downloads one on first use
// when none is found; set ROD_BROWSER_BIN to use an installed binary.
package mdconvert
