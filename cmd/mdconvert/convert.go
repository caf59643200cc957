package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	mdconvert "github.com/alnah/go-mdconvert"
	"github.com/alnah/go-mdconvert/internal/config"
	"github.com/alnah/go-mdconvert/internal/dateutil"
	"github.com/alnah/go-mdconvert/internal/hints"
	"github.com/alnah/go-mdconvert/plugins/frontmatter"
	"github.com/alnah/go-mdconvert/plugins/highlight"
)

// runConvert resolves the configuration and converts every input.
// Precedence: flags > environment > config file > defaults.
func runConvert(ctx context.Context, flags *cliFlags, inputs []string, env *Environment) error {
	if err := loadDotenv(flags.envFile); err != nil {
		return err
	}
	envCfg, err := loadEnvConfig()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	meta, err := parseMeta(flags.meta)
	if err != nil {
		return err
	}
	mergeFlags(flags, meta, cfg)

	format := mdconvert.FormatHTML
	if cfg.Output.Format != "" {
		if format, err = mdconvert.ParseFormat(cfg.Output.Format); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg.Log, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	for _, name := range unknownEnvVars() {
		log.Warnf("Unknown environment variable %s (typo?)", name)
	}
	if env.TuneProcs != nil {
		defer env.TuneProcs(log.Debugf)()
	}

	// "auto" is resolved once so every file of a batch shows the same date
	date, err := dateutil.Resolve(cfg.Footer.Date, env.Now())
	if err != nil {
		return err
	}

	target := resolveOutputTarget(flags.output, cfg.Output.DefaultDir)
	files, err := discoverFiles(inputs, target, format.Extension())
	if err != nil {
		return err
	}

	opts := mdconvert.Options{
		Format:     format,
		StyleSheet: cfg.Style.Path,
		Metadata:   buildMetadata(cfg.Metadata, date),
		Plugins:    buildPlugins(cfg.Plugins),
	}

	size := min(mdconvert.ResolvePoolSize(cfg.Convert.Workers), len(files))
	log.WithFields(logrus.Fields{
		"files":   len(files),
		"workers": size,
		"format":  format.String(),
	}).Debug("Starting batch")

	pool := env.NewPool(size, converterOptions(log, timeout, env)...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.WithError(err).Warn("Closing converters failed")
		}
	}()

	results := convertBatch(ctx, pool, files, opts)
	return printResults(results, flags.quiet, flags.verbose, env)
}

// loadConfig loads the named config, the flag winning over the
// environment. Without either, defaults are returned.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into cfg. Flags that are set win.
func mergeFlags(flags *cliFlags, meta map[string]string, cfg *config.Config) {
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.css != "" {
		cfg.Style.Path = flags.css
	}
	if flags.date != "" {
		cfg.Footer.Date = flags.date
	}
	if len(meta) > 0 {
		if cfg.Metadata == nil {
			cfg.Metadata = make(map[string]string, len(meta))
		}
		for k, v := range meta {
			cfg.Metadata[k] = v
		}
	}

	if flags.plugins.frontmatter {
		cfg.Plugins.Frontmatter = true
	}
	if flags.plugins.highlight {
		cfg.Plugins.Highlight.Enabled = true
	}
	if flags.plugins.highlightStyle != "" {
		cfg.Plugins.Highlight.Style = flags.plugins.highlightStyle
		cfg.Plugins.Highlight.Enabled = true
	}

	switch {
	case flags.log.level != "":
		cfg.Log.Level = flags.log.level
	case flags.verbose:
		cfg.Log.Level = logrus.DebugLevel.String()
	case flags.quiet:
		cfg.Log.Level = logrus.ErrorLevel.String()
	}
	if flags.log.file != "" {
		cfg.Log.File = flags.log.file
	}

	if flags.timeout > 0 {
		cfg.Convert.Timeout = flags.timeout.String()
	}
	if flags.workers != 0 {
		cfg.Convert.Workers = flags.workers
	}
}

// buildMetadata returns the metadata shared by every file of the run.
func buildMetadata(entries map[string]string, date string) mdconvert.Metadata {
	meta := make(mdconvert.Metadata, len(entries)+1)
	for k, v := range entries {
		meta[strings.ToLower(k)] = v
	}
	if date != "" {
		meta["date"] = date
	}
	return meta
}

// buildPlugins returns the enabled plugins in their fixed order: the
// frontmatter block is removed before fences are highlighted.
func buildPlugins(cfg config.PluginsConfig) []mdconvert.Plugin {
	var plugins []mdconvert.Plugin
	if cfg.Frontmatter {
		plugins = append(plugins, frontmatter.New())
	}
	if cfg.Highlight.Enabled {
		plugins = append(plugins, highlight.New(highlight.WithStyle(cfg.Highlight.Style)))
	}
	return plugins
}

// converterOptions returns the options for every pooled converter.
func converterOptions(log logrus.FieldLogger, timeout time.Duration, env *Environment) []mdconvert.Option {
	opts := []mdconvert.Option{mdconvert.WithLogger(log), mdconvert.WithClock(env.Now)}
	if timeout > 0 {
		opts = append(opts, mdconvert.WithTimeout(timeout))
	}
	return opts
}
