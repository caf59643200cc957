package pipeline

// Notes:
// - Tests ResolveAssetPaths through its public API plus the small helpers.
// - Path traversal tests check the observable behavior (path left as is).

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testSourceDir() string {
	if runtime.GOOS == "windows" {
		return `C:\docs`
	}
	return "/docs"
}

// ---------------------------------------------------------------------------
// TestResolveAssetPaths
// ---------------------------------------------------------------------------

func TestResolveAssetPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		sourceDir    string
		wantContains []string
	}{
		{
			name:         "relative image rewritten",
			body:         `<img src="./images/logo.png">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`src="file://`, `logo.png"`},
		},
		{
			name:         "relative link rewritten",
			body:         `<a href="other.md">x</a>`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`href="file://`},
		},
		{
			name:         "anchor unchanged",
			body:         `<a href="#top">x</a>`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`href="#top"`},
		},
		{
			name:         "https unchanged",
			body:         `<img src="https://cdn.test/a.png">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`src="https://cdn.test/a.png"`},
		},
		{
			name:         "data uri unchanged",
			body:         `<img src="data:image/png;base64,AAA">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`src="data:image/png;base64,AAA"`},
		},
		{
			name:         "mailto unchanged",
			body:         `<a href="mailto:a@b.test">x</a>`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`href="mailto:a@b.test"`},
		},
		{
			name:         "traversal left alone",
			body:         `<img src="../../etc/passwd">`,
			sourceDir:    testSourceDir(),
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "empty source dir",
			body:         `<img src="./a.png">`,
			sourceDir:    "",
			wantContains: []string{`src="./a.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := WrapDocument(tt.body, "t")
			got, err := ResolveAssetPaths(doc, tt.sourceDir)
			if err != nil {
				t.Fatalf("ResolveAssetPaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ResolveAssetPaths() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestResolveAssetPaths_UnchangedReturnsInput(t *testing.T) {
	t.Parallel()

	doc := WrapDocument(`<p>no assets</p>`, "t")
	got, err := ResolveAssetPaths(doc, testSourceDir())
	if err != nil {
		t.Fatalf("ResolveAssetPaths() error = %v", err)
	}
	if got != doc {
		t.Error("document without relative assets was re-rendered")
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"#x", false},
		{"//cdn.test/a", false},
		{"http://a.test", false},
		{"file:///a", false},
		{"img/a.png", true},
		{"./a.png", true},
		{"../a.png", true},
	}
	for _, tt := range tests {
		if got := isRelativePath(tt.path); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	dir := testSourceDir()
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(dir, "a.png"), true},
		{filepath.Join(dir, "sub", "a.png"), true},
		{dir, true},
		{filepath.Join(dir, "..", "a.png"), false},
		{dir + "-other", false},
	}
	for _, tt := range tests {
		if got := isPathUnderDir(tt.path, dir); got != tt.want {
			t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
		}
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		if got := pathToFileURL(`C:\docs\a b.png`); got != "file:///C:/docs/a%20b.png" {
			t.Errorf("pathToFileURL() = %q", got)
		}
		return
	}
	if got := pathToFileURL("/docs/a b.png"); got != "file:///docs/a%20b.png" {
		t.Errorf("pathToFileURL() = %q, want %q", got, "file:///docs/a%20b.png")
	}
}
