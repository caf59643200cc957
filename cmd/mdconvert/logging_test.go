package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdconvert/internal/config"
)

// ---------------------------------------------------------------------------
// TestNewLogger
// ---------------------------------------------------------------------------

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"", logrus.WarnLevel},
		{"debug", logrus.DebugLevel},
		{"ERROR", logrus.ErrorLevel},
	}

	for _, tt := range tests {
		log, closeLog, err := newLogger(config.LogConfig{Level: tt.level}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("newLogger(%q) error = %v", tt.level, err)
		}
		if log.GetLevel() != tt.want {
			t.Errorf("newLogger(%q) level = %v, want %v", tt.level, log.GetLevel(), tt.want)
		}
		if err := closeLog(); err != nil {
			t.Errorf("close = %v", err)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, _, err := newLogger(config.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("newLogger() error = %v, want ErrInvalidValue", err)
	}
}

func TestNewLogger_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "run.log")
	var stderr bytes.Buffer

	log, closeLog, err := newLogger(config.LogConfig{Level: "info", File: path}, &stderr)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	log.WithField("input", "a.md").Info("Output written")
	if err := closeLog(); err != nil {
		t.Fatalf("close = %v", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, out := range []string{stderr.String(), string(data)} {
		if !strings.Contains(out, "level=info") || !strings.Contains(out, `msg="Output written"`) || !strings.Contains(out, "input=a.md") {
			t.Errorf("log output = %q", out)
		}
	}
}
