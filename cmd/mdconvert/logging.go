package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdconvert/internal/config"
	"github.com/alnah/go-mdconvert/internal/fileutil"
)

// newLogger builds the CLI logger. Entries go to stderr, and are also
// appended to cfg.File when set. The returned function closes that file.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*logrus.Logger, func() error, error) {
	level := logrus.WarnLevel
	if cfg.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(cfg.Level); err != nil {
			return nil, nil, fmt.Errorf("%w: log level %q", config.ErrInvalidValue, cfg.Level)
		}
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
	log.SetOutput(stderr)

	if cfg.File == "" {
		return log, func() error { return nil }, nil
	}
	if err := fileutil.EnsureParentDir(cfg.File); err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- user-provided log path
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(stderr, f))
	return log, f.Close, nil
}
