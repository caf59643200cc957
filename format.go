package mdconvert

import (
	"fmt"
	"strings"
)

// OutputFormat selects the output representation. The set is closed; the
// zero value is not a valid format.
type OutputFormat int

const (
	// FormatHTML is styled flat markup written as a standalone HTML file.
	FormatHTML OutputFormat = iota + 1
	// FormatPDF is the same markup paginated by headless Chrome.
	FormatPDF
	// FormatDOCX is a WordprocessingML package built from the document model.
	FormatDOCX
)

var formatNames = map[OutputFormat]string{
	FormatHTML: "html",
	FormatPDF:  "pdf",
	FormatDOCX: "docx",
}

var formatAliases = map[string]OutputFormat{
	"html":        FormatHTML,
	"pdf":         FormatPDF,
	"docx":        FormatDOCX,
	"flat-markup": FormatHTML,
	"paginated":   FormatPDF,
	"structured":  FormatDOCX,
}

// Formats returns the canonical format names.
func Formats() []string {
	return []string{"html", "pdf", "docx"}
}

// ParseFormat parses a format name or alias, case-insensitively.
func ParseFormat(s string) (OutputFormat, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// String returns the canonical name, or "OutputFormat(n)" for invalid values.
func (f OutputFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// Extension returns the file extension with its dot, or "" for invalid values.
func (f OutputFormat) Extension() string {
	if name, ok := formatNames[f]; ok {
		return "." + name
	}
	return ""
}

// Valid reports whether f is one of the defined formats.
func (f OutputFormat) Valid() bool {
	_, ok := formatNames[f]
	return ok
}
