package assets

// Notes:
// - ReadStyleFile permission errors (ErrAssetRead) are not tested: chmod-based
//   setups are unreliable across platforms and when running as root.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{"default style", DefaultStyleName, nil, "font-family"},
		{"nonexistent", "nonexistent-style-xyz", ErrStyleNotFound, ""},
		{"empty name", "", ErrInvalidAssetName, ""},
		{"path traversal", "../secret", ErrInvalidAssetName, ""},
		{"backslash traversal", `..\secret`, ErrInvalidAssetName, ""},
		{"name with dot", "default.css", ErrInvalidAssetName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	got, err := LoadTemplate(FooterTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) unexpected error: %v", FooterTemplateName, err)
	}
	if !strings.Contains(got, "<footer") || !strings.Contains(got, "{{.Title}}") {
		t.Errorf("footer template missing expected markup:\n%s", got)
	}

	if _, err := LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"default", false},
		{"my-style", false},
		{"my_style2", false},
		{"", true},
		{"path/to", true},
		{`path\to`, true},
		{"..", true},
		{".hidden", true},
		{"style.css", true},
		{`C:style`, true},
		{"tab\tname", true},
	}

	for _, tt := range tests {
		err := ValidateAssetName(tt.input)
		if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestReadStyleFile
// ---------------------------------------------------------------------------

func TestReadStyleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := filepath.Join(dir, "custom.css")
	if err := os.WriteFile(valid, []byte("body{color:red}"), 0o600); err != nil {
		t.Fatal(err)
	}
	upper := filepath.Join(dir, "UPPER.CSS")
	if err := os.WriteFile(upper, []byte("p{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	notCSS := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notCSS, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	dirCSS := filepath.Join(dir, "folder.css")
	if err := os.Mkdir(dirCSS, 0o750); err != nil {
		t.Fatal(err)
	}
	large := filepath.Join(dir, "large.css")
	if err := os.WriteFile(large, make([]byte, MaxStyleSize+1), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{"valid file", valid, "body{color:red}", nil},
		{"extension is case-insensitive", upper, "p{}", nil},
		{"missing file", filepath.Join(dir, "missing.css"), "", ErrStyleNotFound},
		{"wrong extension", notCSS, "", ErrInvalidStylePath},
		{"directory", dirCSS, "", ErrInvalidStylePath},
		{"too large", large, "", ErrStyleTooLarge},
		{"empty path", "", "", ErrInvalidStylePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadStyleFile(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReadStyleFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadStyleFile() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadStyleFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStyleResolver
// ---------------------------------------------------------------------------

func TestStyleResolver_Resolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.css")
	if err := os.WriteFile(custom, []byte("h1{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	resolver := NewStyleResolver(func() (string, error) { return "DEFAULT", nil })

	tests := []struct {
		name       string
		path       string
		wantCSS    string
		wantCustom bool
		wantReason error
	}{
		{"no path uses default", "", "DEFAULT", false, nil},
		{"readable file is used", custom, "h1{}", true, nil},
		{"missing file falls back", filepath.Join(dir, "nope.css"), "DEFAULT", false, ErrStyleNotFound},
		{"non css falls back", filepath.Join(dir, "x.txt"), "DEFAULT", false, ErrInvalidStylePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if got.CSS != tt.wantCSS {
				t.Errorf("CSS = %q, want %q", got.CSS, tt.wantCSS)
			}
			if got.Custom != tt.wantCustom {
				t.Errorf("Custom = %v, want %v", got.Custom, tt.wantCustom)
			}
			if tt.wantReason == nil && got.FallbackReason != nil {
				t.Errorf("FallbackReason = %v, want nil", got.FallbackReason)
			}
			if tt.wantReason != nil && !errors.Is(got.FallbackReason, tt.wantReason) {
				t.Errorf("FallbackReason = %v, want %v", got.FallbackReason, tt.wantReason)
			}
		})
	}
}

func TestStyleResolver_DefaultFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	resolver := NewStyleResolver(func() (string, error) { return "", boom })

	if _, err := resolver.Resolve(""); !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want %v", err, boom)
	}
}

func TestStyleResolver_EmbeddedDefault(t *testing.T) {
	t.Parallel()

	got, err := NewStyleResolver(nil).Resolve("")
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	want, _ := LoadStyle(DefaultStyleName)
	if got.CSS != want {
		t.Error("nil default should resolve to the embedded default style")
	}
}
