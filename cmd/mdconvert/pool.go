package main

import (
	"context"
	"fmt"

	mdconvert "github.com/alnah/go-mdconvert"
)

// Converter is the part of *mdconvert.Converter the batch uses.
type Converter interface {
	Convert(ctx context.Context, inputPath string, opts mdconvert.Options) (*mdconvert.Result, error)
}

var _ Converter = (*mdconvert.Converter)(nil)

// Pool abstracts the converter pool for testability.
type Pool interface {
	Acquire(ctx context.Context) (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// poolAdapter exposes a *mdconvert.ConverterPool as a Pool.
type poolAdapter struct {
	pool *mdconvert.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire(ctx context.Context) (Converter, error) {
	c, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release panics when c did not come from this adapter.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*mdconvert.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int { return a.pool.Size() }

func (a *poolAdapter) Close() error { return a.pool.Close() }
