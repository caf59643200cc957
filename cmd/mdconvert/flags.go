package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for command-line parsing.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrInvalidMeta = errors.New("invalid metadata entry")
)

// pluginFlags enables the built-in plugins.
type pluginFlags struct {
	frontmatter    bool
	highlight      bool
	highlightStyle string
}

// logFlags holds logging flags.
type logFlags struct {
	level string
	file  string
}

// cliFlags holds every flag of the command.
type cliFlags struct {
	format  string
	output  string
	css     string
	config  string
	envFile string
	meta    []string
	date    string
	timeout time.Duration
	workers int
	plugins pluginFlags
	log     logFlags
	quiet   bool
	verbose bool
	version bool
	help    bool
}

// addPluginFlags adds plugin flags to a FlagSet.
func addPluginFlags(fs *flag.FlagSet, f *pluginFlags) {
	fs.BoolVar(&f.frontmatter, "frontmatter", false, "read a leading YAML block into metadata")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code blocks")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style name (implies --highlight)")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.file, "log-file", "", "also append logs to this file")
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdconvert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{}

	fs.StringVarP(&f.format, "format", "f", "", "output format: html, pdf, docx")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.css, "css", "c", "", "CSS file for html and pdf output")
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file with MDCONVERT_* variables")
	fs.StringArrayVarP(&f.meta, "meta", "m", nil, "metadata entry key=value (repeatable)")
	fs.StringVar(&f.date, "date", "", "footer date: \"auto\", \"auto:FORMAT\", or literal")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-document timeout (e.g. 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addPluginFlags(fs, &f.plugins)
	addLogFlags(fs, &f.log)
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show sizes and timing")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.timeout < 0 {
		return nil, nil, fmt.Errorf("%w: --timeout must not be negative", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parseMeta turns key=value entries into a map. Later entries win.
func parseMeta(entries []string) (map[string]string, error) {
	meta := make(map[string]string, len(entries))
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q (want key=value)", ErrInvalidMeta, e)
		}
		meta[key] = value
	}
	return meta, nil
}
