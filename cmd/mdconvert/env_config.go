package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-mdconvert/internal/config"
	"github.com/alnah/go-mdconvert/internal/fileutil"
)

// ErrInvalidEnv indicates an MDCONVERT_* variable with an unusable value.
var ErrInvalidEnv = errors.New("invalid environment variable")

const (
	envPrefix      = "MDCONVERT_"
	defaultEnvFile = ".env"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath     string        // MDCONVERT_CONFIG
	Format         string        // MDCONVERT_FORMAT
	CSS            string        // MDCONVERT_CSS
	OutputDir      string        // MDCONVERT_OUTPUT_DIR
	Date           string        // MDCONVERT_DATE
	HighlightStyle string        // MDCONVERT_HIGHLIGHT_STYLE
	LogLevel       string        // MDCONVERT_LOG_LEVEL
	LogFile        string        // MDCONVERT_LOG_FILE
	Timeout        time.Duration // MDCONVERT_TIMEOUT
	Workers        int           // MDCONVERT_WORKERS
}

// knownEnvVars lists valid MDCONVERT_* environment variables.
var knownEnvVars = map[string]bool{
	"MDCONVERT_CONFIG":          true,
	"MDCONVERT_FORMAT":          true,
	"MDCONVERT_CSS":             true,
	"MDCONVERT_OUTPUT_DIR":      true,
	"MDCONVERT_DATE":            true,
	"MDCONVERT_HIGHLIGHT_STYLE": true,
	"MDCONVERT_LOG_LEVEL":       true,
	"MDCONVERT_LOG_FILE":        true,
	"MDCONVERT_TIMEOUT":         true,
	"MDCONVERT_WORKERS":         true,
}

// loadDotenv loads variables from path into the process environment.
// Variables already set are kept. An empty path loads ./.env when present.
func loadDotenv(path string) error {
	if path == "" {
		if !fileutil.FileExists(defaultEnvFile) {
			return nil
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// loadEnvConfig reads the MDCONVERT_* variables.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MDCONVERT_CONFIG"),
		Format:         os.Getenv("MDCONVERT_FORMAT"),
		CSS:            os.Getenv("MDCONVERT_CSS"),
		OutputDir:      os.Getenv("MDCONVERT_OUTPUT_DIR"),
		Date:           os.Getenv("MDCONVERT_DATE"),
		HighlightStyle: os.Getenv("MDCONVERT_HIGHLIGHT_STYLE"),
		LogLevel:       os.Getenv("MDCONVERT_LOG_LEVEL"),
		LogFile:        os.Getenv("MDCONVERT_LOG_FILE"),
	}

	if v := os.Getenv("MDCONVERT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: MDCONVERT_TIMEOUT=%q (want a positive duration)", ErrInvalidEnv, v)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("MDCONVERT_WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("%w: MDCONVERT_WORKERS=%q (want a non-negative integer)", ErrInvalidEnv, v)
		}
		cfg.Workers = w
	}

	return cfg, nil
}

// unknownEnvVars returns the MDCONVERT_* variables that are set but not
// recognized, sorted.
func unknownEnvVars() []string {
	var unknown []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// applyEnvConfig copies the variables that are set onto cfg. Environment
// values win over the config file; flags are merged afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.CSS != "" {
		cfg.Style.Path = env.CSS
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Date != "" {
		cfg.Footer.Date = env.Date
	}
	if env.HighlightStyle != "" {
		cfg.Plugins.Highlight.Style = env.HighlightStyle
		cfg.Plugins.Highlight.Enabled = true
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
	if env.Timeout > 0 {
		cfg.Convert.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Convert.Workers = env.Workers
	}
}
