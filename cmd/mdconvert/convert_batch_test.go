package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	mdconvert "github.com/alnah/go-mdconvert"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and pool
// ---------------------------------------------------------------------------

// mockConverter records calls and fails for inputs listed in fail.
type mockConverter struct {
	mu    sync.Mutex
	calls []string
	opts  []mdconvert.Options
	fail  map[string]error
	warn  error
}

func (m *mockConverter) Convert(_ context.Context, inputPath string, opts mdconvert.Options) (*mdconvert.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, inputPath)
	m.opts = append(m.opts, opts)
	m.mu.Unlock()

	if err := m.fail[inputPath]; err != nil {
		return nil, err
	}
	r := &mdconvert.Result{
		OutputPath: opts.OutputPath,
		Success:    true,
		Format:     opts.Format,
		Stats:      mdconvert.Stats{OutputSizeBytes: 2048, Pages: 3},
	}
	if m.warn != nil {
		r.Warnings = []error{m.warn}
	}
	return r, nil
}

// mockPool hands out one shared converter.
type mockPool struct {
	conv       *mockConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *mockPool) Acquire(context.Context) (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *mockPool) Release(Converter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.closed = true
	return nil
}

func jobsIn(dir string, names ...string) []fileJob {
	jobs := make([]fileJob, len(names))
	for i, n := range names {
		jobs[i] = fileJob{InputPath: n + ".md", OutputPath: filepath.Join(dir, n+".html")}
	}
	return jobs
}

// ---------------------------------------------------------------------------
// TestConvertBatch
// ---------------------------------------------------------------------------

func TestConvertBatch_OrderAndOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conv := &mockConverter{}
	pool := &mockPool{conv: conv, size: 3}
	files := jobsIn(dir, "a", "b", "c", "d", "e")
	opts := mdconvert.Options{Format: mdconvert.FormatHTML, StyleSheet: "x.css"}

	results := convertBatch(context.Background(), pool, files, opts)

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d error = %v", i, r.Err)
		}
		if r.InputPath != files[i].InputPath || r.OutputPath != files[i].OutputPath {
			t.Errorf("result %d = %s -> %s, want %s -> %s", i, r.InputPath, r.OutputPath, files[i].InputPath, files[i].OutputPath)
		}
	}
	if pool.acquired != 3 || pool.released != 3 {
		t.Errorf("acquired %d, released %d, want 3 each", pool.acquired, pool.released)
	}
	for _, o := range conv.opts {
		if o.StyleSheet != "x.css" || o.OutputPath == "" {
			t.Errorf("options = %+v, want shared stylesheet and per-file output", o)
		}
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &mockPool{size: 2}, nil, mdconvert.Options{}); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_AcquireFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("no converter")
	pool := &mockPool{size: 2, acquireErr: boom}
	results := convertBatch(context.Background(), pool, jobsIn(t.TempDir(), "a", "b", "c"), mdconvert.Options{})

	for i, r := range results {
		if !errors.Is(r.Err, boom) {
			t.Errorf("result %d error = %v, want %v", i, r.Err, boom)
		}
	}
}

func TestConvertBatch_CancelledContext(t *testing.T) {
	t.Parallel()

	conv := &mockConverter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := convertBatch(ctx, &mockPool{conv: conv, size: 1}, jobsIn(t.TempDir(), "a", "b"), mdconvert.Options{})
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, r.Err)
		}
	}
	if len(conv.calls) != 0 {
		t.Errorf("converter called %d times after cancellation", len(conv.calls))
	}
}

func TestConvertFile_OutputDirFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := writeFile(t, filepath.Join(dir, "file"), "x")
	conv := &mockConverter{}

	r := convertFile(context.Background(), conv, fileJob{
		InputPath:  "a.md",
		OutputPath: filepath.Join(blocker, "sub", "a.html"),
	}, mdconvert.Options{})

	if !errors.Is(r.Err, ErrOutputDir) {
		t.Errorf("error = %v, want ErrOutputDir", r.Err)
	}
	if len(conv.calls) != 0 {
		t.Error("converter should not run when the output directory fails")
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	ok := conversionResult{
		InputPath:  "a.md",
		OutputPath: "a.pdf",
		Result: &mdconvert.Result{
			OutputPath: "a.pdf",
			Stats:      mdconvert.Stats{OutputSizeBytes: 2048, Pages: 3},
		},
		Duration: 1500 * time.Millisecond,
	}
	warned := ok
	warned.Result = &mdconvert.Result{
		OutputPath: "a.pdf",
		Warnings:   []error{&mdconvert.StyleWarning{Path: "x.css", Err: errors.New("missing")}},
	}
	failed := conversionResult{InputPath: "b.md", Err: fmt.Errorf("reading: %w", mdconvert.ErrInput)}

	tests := []struct {
		name       string
		results    []conversionResult
		quiet      bool
		verbose    bool
		wantOut    []string
		notOut     []string
		wantErrOut []string
		wantFailed int
	}{
		{
			name:    "single success",
			results: []conversionResult{ok},
			wantOut: []string{"Conversion successful! Output saved at a.pdf"},
			notOut:  []string{"succeeded"},
		},
		{
			name:    "verbose adds size pages and time",
			results: []conversionResult{ok},
			verbose: true,
			wantOut: []string{"2.0 kB", "3 pages", "1.5s"},
		},
		{
			name:    "quiet hides successes",
			results: []conversionResult{ok},
			quiet:   true,
			notOut:  []string{"Conversion successful"},
		},
		{
			name:       "warnings go to stderr with a hint",
			results:    []conversionResult{warned},
			wantOut:    []string{"Conversion successful"},
			wantErrOut: []string{"warning: stylesheet \"x.css\"", "hint:"},
		},
		{
			name:       "single failure",
			results:    []conversionResult{failed},
			wantErrOut: []string{"Conversion failed: reading: input error"},
			wantFailed: 1,
		},
		{
			name:       "batch names files and summarizes",
			results:    []conversionResult{ok, failed},
			wantOut:    []string{"1 succeeded, 1 failed"},
			wantErrOut: []string{"Conversion failed: b.md: reading"},
			wantFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			err := printResults(tt.results, tt.quiet, tt.verbose, env)

			for _, want := range tt.wantOut {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout = %q, want %q", stdout.String(), want)
				}
			}
			for _, not := range tt.notOut {
				if strings.Contains(stdout.String(), not) {
					t.Errorf("stdout = %q, should not contain %q", stdout.String(), not)
				}
			}
			for _, want := range tt.wantErrOut {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want %q", stderr.String(), want)
				}
			}

			if tt.wantFailed == 0 {
				if err != nil {
					t.Errorf("printResults() = %v, want nil", err)
				}
				return
			}
			var batch *batchError
			if !errors.As(err, &batch) || batch.failed != tt.wantFailed {
				t.Fatalf("printResults() = %v, want batchError with %d failures", err, tt.wantFailed)
			}
			if !errors.Is(err, mdconvert.ErrInput) {
				t.Error("batchError should unwrap to the failures")
			}
		})
	}
}

func TestDescribe_SinglePage(t *testing.T) {
	t.Parallel()

	r := conversionResult{
		Result:   &mdconvert.Result{Stats: mdconvert.Stats{OutputSizeBytes: 999, Pages: 1}},
		Duration: 20 * time.Millisecond,
	}
	if got, want := describe(r), "999 B, 1 page, 20ms"; got != want {
		t.Errorf("describe() = %q, want %q", got, want)
	}

	r.Result.Stats.Pages = 0
	if got, want := describe(r), "999 B, 20ms"; got != want {
		t.Errorf("describe() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestHintFor
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"style warning", &mdconvert.StyleWarning{Path: "x.css"}, "--css"},
		{"timeout", fmt.Errorf("rendering: %w", context.DeadlineExceeded), "--timeout"},
		{"format", mdconvert.ErrUnsupportedFormat, "available: html, pdf, docx"},
		{"output dir", ErrOutputDir, "writable"},
		{"browser", mdconvert.ErrBrowserConnect, "do not need a browser"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
