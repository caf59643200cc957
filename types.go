package mdconvert

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Options configures one conversion.
type Options struct {
	// Format is required.
	Format OutputFormat

	// OutputPath defaults to the input path with its extension replaced by
	// Format.Extension().
	OutputPath string

	// StyleSheet is a .css file for the html and pdf formats. A stylesheet
	// that cannot be read is replaced by the built-in style and reported in
	// Result.Warnings.
	StyleSheet string

	// Metadata is carried through to the result and to document properties
	// (title, author, subject, keywords, date). The caller's map is never
	// modified; plugins work on a copy.
	Metadata Metadata

	// Plugins run in this order.
	Plugins []Plugin
}

// Metadata is an open mapping of document properties.
type Metadata map[string]any

// Clone returns a shallow copy. The copy of a nil Metadata is empty, not nil.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	maps.Copy(out, m)
	return out
}

// String returns the value for key as text. Lists are joined with ", ".
// Missing keys and nil values yield "".
func (m Metadata) String(key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}

// ConversionInfo describes the running conversion to plugins. It is passed
// by value: plugins cannot change the format or the output path.
type ConversionInfo struct {
	ID         uuid.UUID
	InputPath  string
	OutputPath string
	Format     OutputFormat
}

// Result describes a completed conversion.
type Result struct {
	ID         uuid.UUID
	OutputPath string
	Success    bool
	Format     OutputFormat
	Metadata   Metadata
	Stats      Stats

	// Warnings lists non-fatal problems, such as a *StyleWarning.
	Warnings []error
}

// Stats holds sizes and timing of a conversion.
type Stats struct {
	InputSizeBytes  int64
	OutputSizeBytes int64

	// ProcessingTime runs from the end of the pre-conversion plugins to the
	// moment the output size is known.
	ProcessingTime time.Duration

	// Pages is the page count of pdf output, 0 for other formats.
	Pages int
}

// ProcessingTimeMs returns ProcessingTime in whole milliseconds.
func (s Stats) ProcessingTimeMs() int64 {
	return s.ProcessingTime.Milliseconds()
}

// clone copies r deeply enough that plugins cannot alias each other's
// Metadata or Warnings.
func (r Result) clone() Result {
	r.Metadata = r.Metadata.Clone()
	r.Warnings = append([]error(nil), r.Warnings...)
	return r
}
