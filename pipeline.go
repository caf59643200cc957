package mdconvert

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// indexed pairs a hook with its position in Options.Plugins.
type indexed[T Plugin] struct {
	index  int
	plugin T
}

// hooksOf keeps the plugins implementing T, in order.
func hooksOf[T Plugin](plugins []Plugin) []indexed[T] {
	var out []indexed[T]
	for i, p := range plugins {
		if h, ok := p.(T); ok {
			out = append(out, indexed[T]{index: i, plugin: h})
		}
	}
	return out
}

// gather calls call for every hook concurrently and returns the rewrites
// in hook order. When several calls fail, the failure of the earliest
// plugin is reported.
func gather[T Plugin, R any](hooks []indexed[T], phase string, call func(T) (R, error)) ([]R, error) {
	rewrites := make([]R, len(hooks))
	errs := make([]error, len(hooks))

	var g errgroup.Group
	for i, h := range hooks {
		g.Go(func() error {
			errs[i] = safeCall(func() error {
				rw, err := call(h.plugin)
				rewrites[i] = rw
				return err
			})
			return errs[i]
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, pluginError(phase, hooks[i], err)
		}
	}
	return rewrites, nil
}

// applyBefore runs the pre-conversion hooks. It returns the rewritten
// content and the metadata the rewrites produced, or the unchanged inputs
// when no plugin has a before hook. Nothing is returned on failure.
func applyBefore(ctx context.Context, plugins []Plugin, content string, meta Metadata, info ConversionInfo) (string, Metadata, error) {
	hooks := hooksOf[BeforeConverter](plugins)
	if len(hooks) == 0 {
		return content, meta, nil
	}

	original := content
	rewrites, err := gather(hooks, PhasePreConversion, func(p BeforeConverter) (ContentRewrite, error) {
		return p.BeforeConvert(ctx, original, info)
	})
	if err != nil {
		return "", nil, err
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	working := meta.Clone()
	for i, rw := range rewrites {
		if rw == nil {
			continue
		}
		var next string
		err := safeCall(func() (err error) {
			next, err = rw(content, working)
			return err
		})
		if err != nil {
			return "", nil, pluginError(PhasePreConversion, hooks[i], err)
		}
		content = next
	}
	return content, working, nil
}

// applyAfter runs the post-conversion hooks. Each gather call receives its
// own copy of r; the fold threads the current result through the rewrites.
func applyAfter(ctx context.Context, plugins []Plugin, r Result) (Result, error) {
	hooks := hooksOf[AfterConverter](plugins)
	if len(hooks) == 0 {
		return r, nil
	}

	rewrites, err := gather(hooks, PhasePostConversion, func(p AfterConverter) (ResultRewrite, error) {
		return p.AfterConvert(ctx, r.clone())
	})
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	current := r.clone()
	for i, rw := range rewrites {
		if rw == nil {
			continue
		}
		var next Result
		err := safeCall(func() (err error) {
			next, err = rw(current.clone())
			return err
		})
		if err != nil {
			return Result{}, pluginError(PhasePostConversion, hooks[i], err)
		}
		current = next
	}
	return current, nil
}

func pluginError[T Plugin](phase string, h indexed[T], err error) error {
	return &PluginError{Phase: phase, Plugin: h.plugin.Name(), Index: h.index, Err: err}
}

// safeCall runs fn, turning a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
