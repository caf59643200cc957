package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	mdconvert "github.com/alnah/go-mdconvert"
	"github.com/alnah/go-mdconvert/internal/fileutil"
	"github.com/alnah/go-mdconvert/internal/hints"
)

// ErrOutputDir indicates the output directory could not be created.
var ErrOutputDir = errors.New("failed to create output directory")

// conversionResult holds the outcome of a single conversion.
type conversionResult struct {
	InputPath  string
	OutputPath string
	Result     *mdconvert.Result
	Err        error
	Duration   time.Duration
}

// batchError reports failed conversions whose details were already
// printed. It unwraps to every failure so exit codes can be derived.
type batchError struct {
	failed int
	total  int
	err    error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error { return e.err }

// convertBatch processes files concurrently using the converter pool.
// Results are in the order of files.
func convertBatch(ctx context.Context, pool Pool, files []fileJob, opts mdconvert.Options) []conversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]conversionResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				for idx := range jobs {
					results[idx] = conversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = conversionResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], opts)
			}
		}()
	}

	wg.Wait()
	return results
}

// convertFile converts a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, job fileJob, opts mdconvert.Options) conversionResult {
	start := time.Now()
	res := conversionResult{InputPath: job.InputPath, OutputPath: job.OutputPath}

	if err := fileutil.EnsureParentDir(job.OutputPath); err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrOutputDir, err)
		res.Duration = time.Since(start)
		return res
	}

	opts.OutputPath = job.OutputPath
	r, err := conv.Convert(ctx, job.InputPath, opts)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.Result = r
	res.OutputPath = r.OutputPath
	return res
}

// printResults writes one line per result and returns a *batchError when
// any conversion failed.
func printResults(results []conversionResult, quiet, verbose bool, env *Environment) error {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			msg := r.Err.Error()
			if len(results) > 1 {
				msg = r.InputPath + ": " + msg
			}
			fmt.Fprintf(env.Stderr, "%s%s\n", red("Conversion failed: "+msg), hintFor(r.Err))
			continue
		}

		for _, w := range r.Result.Warnings {
			fmt.Fprintf(env.Stderr, "%s%s\n", yellow("warning: "+w.Error()), hintFor(w))
		}
		if quiet {
			continue
		}

		line := "Conversion successful! Output saved at " + r.OutputPath
		fmt.Fprint(env.Stdout, green(line))
		if verbose {
			fmt.Fprintf(env.Stdout, " (%s)", describe(r))
		}
		fmt.Fprintln(env.Stdout)
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-len(errs), len(errs))
	}
	if len(errs) == 0 {
		return nil
	}
	return &batchError{failed: len(errs), total: len(results), err: errors.Join(errs...)}
}

// describe summarizes size, page count and time of a successful result.
func describe(r conversionResult) string {
	s := humanize.Bytes(uint64(max(r.Result.Stats.OutputSizeBytes, 0))) // #nosec G115 -- clamped to non-negative
	if pages := r.Result.Stats.Pages; pages > 0 {
		s += ", " + humanize.Comma(int64(pages)) + " " + plural(pages, "page")
	}
	return s + ", " + r.Duration.Round(time.Millisecond).String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var styleWarning *mdconvert.StyleWarning
	switch {
	case errors.As(err, &styleWarning):
		return hints.ForStyleFallback()
	case errors.Is(err, mdconvert.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, mdconvert.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat(mdconvert.Formats())
	case errors.Is(err, ErrOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
