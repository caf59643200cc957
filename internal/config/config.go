package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdconvert/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength          = 4096
	MaxMetadataKeys        = 64
	MaxMetadataKeyLength   = 64
	MaxMetadataValueLength = 1000
	MaxStyleNameLength     = 50
	MaxDateLength          = 30
	MaxWorkers             = 8 // mdconvert.MaxPoolSize
	MaxTimeout             = 10 * time.Minute
)

// appDir names the per-user config directory.
const appDir = "go-mdconvert"

// knownFormats mirrors the format names the converter accepts.
var knownFormats = map[string]bool{
	"html": true, "pdf": true, "docx": true,
	"flat-markup": true, "paginated": true, "structured": true,
}

// Config holds the CLI defaults loaded from a YAML file.
type Config struct {
	Output   OutputConfig      `yaml:"output"`
	Style    StyleConfig       `yaml:"style"`
	Metadata map[string]string `yaml:"metadata"`
	Plugins  PluginsConfig     `yaml:"plugins"`
	Footer   FooterConfig      `yaml:"footer"`
	Log      LogConfig         `yaml:"log"`
	Convert  ConvertConfig     `yaml:"convert"`
}

// OutputConfig defines output options.
type OutputConfig struct {
	Format     string `yaml:"format"`     // html, pdf, docx (default: html)
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// StyleConfig selects the stylesheet for markup and paginated output.
type StyleConfig struct {
	Path string `yaml:"path"` // .css file; empty or unusable = built-in default
}

// PluginsConfig enables the built-in plugins.
type PluginsConfig struct {
	Frontmatter bool            `yaml:"frontmatter"`
	Highlight   HighlightConfig `yaml:"highlight"`
}

// HighlightConfig configures the syntax highlighting plugin.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name (default: github-dark)
}

// FooterConfig defines the generated footer of markup and paginated output.
type FooterConfig struct {
	Date string `yaml:"date"` // "auto" = today; any other value is printed as is
}

// LogConfig defines CLI logging.
type LogConfig struct {
	Level string `yaml:"level"` // logrus level name (default: warn)
	File  string `yaml:"file"`  // Also log to this file
}

// ConvertConfig defines batch conversion options.
type ConvertConfig struct {
	Workers int    `yaml:"workers"` // 0 = auto
	Timeout string `yaml:"timeout"` // Go duration, per document
}

// TimeoutDuration parses Convert.Timeout. An empty value yields zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Convert.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Convert.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: convert.timeout: %v", ErrInvalidValue, err)
	}
	return d, nil
}

// Validate checks field values and lengths. Called by LoadConfig, and
// available for configs built in code.
func (c *Config) Validate() error {
	if f := c.Output.Format; f != "" && !knownFormats[strings.ToLower(f)] {
		return fmt.Errorf("%w: output.format %q (must be html, pdf, or docx)", ErrInvalidValue, f)
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.path", c.Style.Path, MaxPathLength); err != nil {
		return err
	}

	if len(c.Metadata) > MaxMetadataKeys {
		return fmt.Errorf("%w: metadata (%d keys, max %d)", ErrFieldTooLong, len(c.Metadata), MaxMetadataKeys)
	}
	keys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "" {
			return fmt.Errorf("%w: metadata key cannot be empty", ErrInvalidValue)
		}
		if err := validateFieldLength("metadata key", k, MaxMetadataKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength("metadata."+k, c.Metadata[k], MaxMetadataValueLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("plugins.highlight.style", c.Plugins.Highlight.Style, MaxStyleNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("footer.date", c.Footer.Date, MaxDateLength); err != nil {
		return err
	}

	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level)
		}
	}
	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}

	if c.Convert.Workers < 0 || c.Convert.Workers > MaxWorkers {
		return fmt.Errorf("%w: convert.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Convert.Workers)
	}
	d, err := c.TimeoutDuration()
	if err != nil {
		return err
	}
	if d < 0 || d > MaxTimeout {
		return fmt.Errorf("%w: convert.timeout must be between 0 and %s, got %s", ErrInvalidValue, MaxTimeout, d)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output:  OutputConfig{Format: "html"},
		Plugins: PluginsConfig{Highlight: HighlightConfig{Style: "github-dark"}},
		Log:     LogConfig{Level: "warn"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the files LoadConfig tries for nameOrPath, in order:
// .yaml then .yml, in the current directory then the user config
// directory. A file path is its own only candidate.
func SearchPaths(nameOrPath string) []string {
	if isFilePath(nameOrPath) {
		return []string{nameOrPath}
	}
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, nameOrPath+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, nameOrPath+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
