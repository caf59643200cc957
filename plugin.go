package mdconvert

import "context"

// Plugin is the extension point of a conversion. A plugin implements
// BeforeConverter, AfterConverter, both, or neither; hooks it lacks are
// skipped.
type Plugin interface {
	Name() string
}

// ContentRewrite transforms Markdown content. meta is the conversion's
// working metadata; rewrites may add or replace keys.
type ContentRewrite func(content string, meta Metadata) (string, error)

// ResultRewrite returns a replacement result.
type ResultRewrite func(r Result) (Result, error)

// BeforeConverter rewrites content before parsing.
//
// BeforeConvert is called concurrently with the other plugins' hooks and
// receives the original content. It should do its slow work (loading
// themes, network calls) there and return a rewrite. Rewrites are then
// applied one after another in plugin order, each receiving the output of
// the previous one. A nil rewrite leaves the content unchanged.
type BeforeConverter interface {
	Plugin
	BeforeConvert(ctx context.Context, content string, info ConversionInfo) (ContentRewrite, error)
}

// AfterConverter rewrites the result after the output file is written.
// The gather and fold rules of BeforeConverter apply.
type AfterConverter interface {
	Plugin
	AfterConvert(ctx context.Context, r Result) (ResultRewrite, error)
}

// HasBeforeHook reports whether p rewrites content.
func HasBeforeHook(p Plugin) bool {
	_, ok := p.(BeforeConverter)
	return ok
}

// HasAfterHook reports whether p rewrites results.
func HasAfterHook(p Plugin) bool {
	_, ok := p.(AfterConverter)
	return ok
}

// PluginFuncs adapts plain functions to a Plugin. Its hooks do all their
// work in the sequential rewrite, so they always see the previous plugin's
// output. Nil fields are treated as identity.
type PluginFuncs struct {
	PluginName string
	Before     func(ctx context.Context, content string, meta Metadata) (string, error)
	After      func(ctx context.Context, r Result) (Result, error)
}

// Name implements Plugin.
func (f PluginFuncs) Name() string { return f.PluginName }

// BeforeConvert implements BeforeConverter.
func (f PluginFuncs) BeforeConvert(ctx context.Context, _ string, _ ConversionInfo) (ContentRewrite, error) {
	if f.Before == nil {
		return nil, nil
	}
	return func(content string, meta Metadata) (string, error) {
		return f.Before(ctx, content, meta)
	}, nil
}

// AfterConvert implements AfterConverter.
func (f PluginFuncs) AfterConvert(ctx context.Context, _ Result) (ResultRewrite, error) {
	if f.After == nil {
		return nil, nil
	}
	return func(r Result) (Result, error) {
		return f.After(ctx, r)
	}, nil
}

var (
	_ BeforeConverter = PluginFuncs{}
	_ AfterConverter  = PluginFuncs{}
)
