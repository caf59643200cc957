package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	mdconvert "github.com/alnah/go-mdconvert"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the converter pool for a run.
	NewPool func(size int, opts ...mdconvert.Option) Pool

	// TuneProcs adjusts GOMAXPROCS and returns the undo function. Nil skips
	// the adjustment.
	TuneProcs func(logf func(string, ...any)) func()
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPool: func(size int, opts ...mdconvert.Option) Pool {
			return &poolAdapter{pool: mdconvert.NewConverterPool(size, opts...)}
		},
		TuneProcs: setMaxProcs,
	}
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// maxprocs.Set only fails on an invalid GOMAXPROCS variable, in which case
// the runtime default stays in place.
func setMaxProcs(logf func(string, ...any)) func() {
	undo, err := maxprocs.Set(maxprocs.Logger(logf))
	if err != nil {
		return func() {}
	}
	return undo
}
