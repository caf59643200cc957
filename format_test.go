package mdconvert

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"html", FormatHTML, false},
		{"pdf", FormatPDF, false},
		{"docx", FormatDOCX, false},
		{"PDF", FormatPDF, false},
		{" docx ", FormatDOCX, false},
		{"flat-markup", FormatHTML, false},
		{"paginated", FormatPDF, false},
		{"Structured", FormatDOCX, false},
		{"", 0, true},
		{"odt", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) || !errors.Is(err, ErrConversion) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v, nil", tt.input, got, err, tt.want)
		}
	}
}

func TestOutputFormat_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format    OutputFormat
		wantName  string
		wantExt   string
		wantValid bool
	}{
		{FormatHTML, "html", ".html", true},
		{FormatPDF, "pdf", ".pdf", true},
		{FormatDOCX, "docx", ".docx", true},
		{0, "OutputFormat(0)", "", false},
		{42, "OutputFormat(42)", "", false},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.wantName {
			t.Errorf("String() = %q, want %q", got, tt.wantName)
		}
		if got := tt.format.Extension(); got != tt.wantExt {
			t.Errorf("%s: Extension() = %q, want %q", tt.wantName, got, tt.wantExt)
		}
		if got := tt.format.Valid(); got != tt.wantValid {
			t.Errorf("%s: Valid() = %v, want %v", tt.wantName, got, tt.wantValid)
		}
	}
}

func TestFormats_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range Formats() {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", name, err)
		}
		if f.String() != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, f.String())
		}
	}
}
