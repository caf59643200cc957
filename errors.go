package mdconvert

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by Convert matches exactly one of
// ErrInput, ErrPlugin or ErrConversion with errors.Is.
var (
	ErrInput      = errors.New("input error")
	ErrPlugin     = errors.New("plugin error")
	ErrConversion = errors.New("conversion error")
)

// Conversion failures, each wrapped in ErrConversion.
var (
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported output format", ErrConversion)
	ErrBrowserConnect    = fmt.Errorf("%w: failed to connect to browser", ErrConversion)
	ErrPageCreate        = fmt.Errorf("%w: failed to create browser page", ErrConversion)
	ErrPageLoad          = fmt.Errorf("%w: failed to load page", ErrConversion)
	ErrPDFGeneration     = fmt.Errorf("%w: PDF generation failed", ErrConversion)
	ErrPDFMetadata       = fmt.Errorf("%w: PDF metadata update failed", ErrConversion)
)

// Plugin phases reported by PluginError.
const (
	PhasePreConversion  = "pre-conversion"
	PhasePostConversion = "post-conversion"
)

// PluginError reports a failing plugin hook. It matches ErrPlugin.
type PluginError struct {
	Phase  string // PhasePreConversion or PhasePostConversion
	Plugin string // Name() of the failing plugin
	Index  int    // position in Options.Plugins
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("%s plugin %q (#%d): %v", e.Phase, e.Plugin, e.Index, e.Err)
}

func (e *PluginError) Unwrap() []error { return []error{ErrPlugin, e.Err} }

// StyleWarning reports a stylesheet that could not be used. The conversion
// continued with the built-in style. It is never returned as an error; it
// is recorded in Result.Warnings.
type StyleWarning struct {
	Path string
	Err  error
}

func (w *StyleWarning) Error() string {
	return fmt.Sprintf("stylesheet %q not used, falling back to default: %v", w.Path, w.Err)
}

func (w *StyleWarning) Unwrap() error { return w.Err }

// inputError wraps a source read failure in ErrInput.
func inputError(path string, err error) error {
	return fmt.Errorf("%w: reading %s: %w", ErrInput, path, err)
}

// stageError wraps a stage failure in ErrConversion unless it already
// carries one of the error classes.
func stageError(stage string, err error) error {
	if errors.Is(err, ErrConversion) || errors.Is(err, ErrInput) || errors.Is(err, ErrPlugin) {
		return fmt.Errorf("%s: %w", stage, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrConversion, stage, err)
}
