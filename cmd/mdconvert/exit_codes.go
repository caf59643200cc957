package main

import (
	"errors"
	"os"

	mdconvert "github.com/alnah/go-mdconvert"
	"github.com/alnah/go-mdconvert/internal/config"
	"github.com/alnah/go-mdconvert/internal/dateutil"
)

// Exit codes for the mdconvert CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or environment
	ExitIO      = 3 // Input not found or unreadable, output not writable
	ExitBrowser = 4 // Browser/Chrome errors
	ExitPlugin  = 5 // A plugin failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdconvert.ErrBrowserConnect) ||
		errors.Is(err, mdconvert.ErrPageCreate) ||
		errors.Is(err, mdconvert.ErrPageLoad) ||
		errors.Is(err, mdconvert.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Plugin errors (exit 5)
	if errors.Is(err, mdconvert.ErrPlugin) {
		return ExitPlugin
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidMeta) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrOutputCollision) ||
		errors.Is(err, ErrDuplicateOutputs) ||
		errors.Is(err, mdconvert.ErrUnsupportedFormat) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, mdconvert.ErrInput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) ||
		errors.Is(err, ErrOutputDir) {
		return ExitIO
	}

	return ExitGeneral
}
