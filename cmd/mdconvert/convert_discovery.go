package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdconvert/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoMarkdownFiles  = errors.New("no markdown files found")
	ErrOutputCollision  = errors.New("output would overwrite its input")
	ErrDuplicateOutputs = errors.New("two inputs map to the same output")
)

// fileJob is a single file to convert.
type fileJob struct {
	InputPath  string
	OutputPath string
}

// outputTarget is where outputs go. An empty path writes each output next
// to its source.
type outputTarget struct {
	path string
	dir  bool
}

// resolveOutputTarget picks the --output flag over the configured default
// directory. A flag value is a directory when it ends with a separator or
// names an existing directory.
func resolveOutputTarget(flagOutput, defaultDir string) outputTarget {
	if flagOutput == "" {
		return outputTarget{path: defaultDir, dir: defaultDir != ""}
	}
	dir := strings.HasSuffix(flagOutput, "/") || strings.HasSuffix(flagOutput, string(filepath.Separator))
	if info, err := os.Stat(flagOutput); err == nil && info.IsDir() {
		dir = true
	}
	return outputTarget{path: flagOutput, dir: dir}
}

// discoverFiles expands inputs into conversion jobs. Files are taken as
// given; directories are walked for Markdown files. A file target is only
// honoured for a single file input.
func discoverFiles(inputs []string, target outputTarget, ext string) ([]fileJob, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	if !target.dir && target.path != "" && len(inputs) > 1 {
		target.dir = true
	}

	var jobs []fileJob
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			out := target.path
			if target.dir || out == "" {
				out = resolveOutputPath(input, target.path, "", ext)
			}
			jobs = append(jobs, fileJob{InputPath: input, OutputPath: out})
			continue
		}

		found, err := walkMarkdown(input, target.path, ext)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, input)
		}
		jobs = append(jobs, found...)
	}

	if err := checkOutputs(jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// walkMarkdown finds the Markdown files under root.
func walkMarkdown(root, outputDir, ext string) ([]fileJob, error) {
	var jobs []fileJob
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		jobs = append(jobs, fileJob{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, root, ext),
		})
		return nil
	})
	return jobs, err
}

// resolveOutputPath determines the output path for a source file. With an
// output directory, the layout below baseInputDir is preserved.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	name := filepath.Base(fileutil.ReplaceExtension(inputPath, ext))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

// checkOutputs rejects jobs that would overwrite a source or each other.
func checkOutputs(jobs []fileJob) error {
	seen := make(map[string]string, len(jobs))
	for _, j := range jobs {
		out := filepath.Clean(j.OutputPath)
		if out == filepath.Clean(j.InputPath) {
			return fmt.Errorf("%w: %s", ErrOutputCollision, j.InputPath)
		}
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%w: %s and %s -> %s", ErrDuplicateOutputs, prev, j.InputPath, j.OutputPath)
		}
		seen[out] = j.InputPath
	}
	return nil
}
