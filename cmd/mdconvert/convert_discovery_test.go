package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveOutputTarget
// ---------------------------------------------------------------------------

func TestResolveOutputTarget(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()
	sep := string(filepath.Separator)

	tests := []struct {
		name       string
		flag       string
		defaultDir string
		want       outputTarget
	}{
		{"nothing set", "", "", outputTarget{}},
		{"config directory", "", "build", outputTarget{path: "build", dir: true}},
		{"flag file wins", "out.html", "build", outputTarget{path: "out.html"}},
		{"trailing separator", "site" + sep, "", outputTarget{path: "site" + sep, dir: true}},
		{"existing directory", existing, "", outputTarget{path: existing, dir: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputTarget(tt.flag, tt.defaultDir); got != tt.want {
				t.Errorf("resolveOutputTarget(%q, %q) = %+v, want %+v", tt.flag, tt.defaultDir, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		ext       string
		want      string
	}{
		{"next to source", filepath.Join("docs", "guide.md"), "", "", ".pdf", filepath.Join("docs", "guide.pdf")},
		{"into directory", filepath.Join("docs", "guide.md"), "out", "", ".html", filepath.Join("out", "guide.html")},
		{"keeps layout", filepath.Join("docs", "api", "ref.md"), "out", "docs", ".docx", filepath.Join("out", "api", "ref.docx")},
		{"dotted name", filepath.Join("notes", "v1.2.md"), "", "", ".html", filepath.Join("notes", "v1.2.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir, tt.ext); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := writeFile(t, filepath.Join(root, "a.md"), "# A")
	b := writeFile(t, filepath.Join(root, "b.txt"), "B")
	tree := filepath.Join(root, "tree")
	writeFile(t, filepath.Join(tree, "x.md"), "# X")
	writeFile(t, filepath.Join(tree, "deep", "y.markdown"), "# Y")
	writeFile(t, filepath.Join(tree, "ignored.txt"), "no")
	out := filepath.Join(root, "out")

	tests := []struct {
		name   string
		inputs []string
		target outputTarget
		want   []fileJob
	}{
		{
			name:   "single file next to source",
			inputs: []string{a},
			want:   []fileJob{{a, filepath.Join(root, "a.html")}},
		},
		{
			name:   "explicit file accepts any extension",
			inputs: []string{b},
			want:   []fileJob{{b, filepath.Join(root, "b.html")}},
		},
		{
			name:   "single file to output file",
			inputs: []string{a},
			target: outputTarget{path: filepath.Join(out, "final.html")},
			want:   []fileJob{{a, filepath.Join(out, "final.html")}},
		},
		{
			name:   "several files force a directory",
			inputs: []string{a, b},
			target: outputTarget{path: out},
			want: []fileJob{
				{a, filepath.Join(out, "a.html")},
				{b, filepath.Join(out, "b.html")},
			},
		},
		{
			name:   "directory walk keeps layout",
			inputs: []string{tree},
			target: outputTarget{path: out, dir: true},
			want: []fileJob{
				{filepath.Join(tree, "deep", "y.markdown"), filepath.Join(out, "deep", "y.html")},
				{filepath.Join(tree, "x.md"), filepath.Join(out, "x.html")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := discoverFiles(tt.inputs, tt.target, ".html")
			if err != nil {
				t.Fatalf("discoverFiles() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("discoverFiles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	page := writeFile(t, filepath.Join(root, "page.html"), "<p>x</p>")
	a := writeFile(t, filepath.Join(root, "one", "doc.md"), "# 1")
	b := writeFile(t, filepath.Join(root, "two", "doc.md"), "# 2")
	empty := filepath.Join(root, "empty")
	if err := os.Mkdir(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		inputs  []string
		target  outputTarget
		wantErr error
	}{
		{"no inputs", nil, outputTarget{}, ErrNoInput},
		{"missing path", []string{filepath.Join(root, "nope.md")}, outputTarget{}, os.ErrNotExist},
		{"directory without markdown", []string{empty}, outputTarget{}, ErrNoMarkdownFiles},
		{"output overwrites input", []string{page}, outputTarget{}, ErrOutputCollision},
		{"same name into one directory", []string{a, b}, outputTarget{path: filepath.Join(root, "out")}, ErrDuplicateOutputs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverFiles(tt.inputs, tt.target, ".html")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("discoverFiles() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
