// Package frontmatter provides a plugin that strips a leading YAML block
// from the Markdown content and merges its keys into the metadata.
package frontmatter

import (
	"context"

	mdconvert "github.com/alnah/go-mdconvert"
	"github.com/alnah/go-mdconvert/internal/yamlutil"
)

// Name identifies the plugin in errors and logs.
const Name = "frontmatter"

// Plugin strips a frontmatter block delimited by "---" lines. Keys from
// the block overwrite metadata keys of the same name. Content without a
// block is left unchanged; a malformed block fails the conversion.
type Plugin struct{}

var _ mdconvert.BeforeConverter = Plugin{}

// New returns the frontmatter plugin.
func New() Plugin {
	return Plugin{}
}

// Name implements mdconvert.Plugin.
func (Plugin) Name() string { return Name }

// BeforeConvert implements mdconvert.BeforeConverter. The block is read in
// the rewrite, from the content left by earlier plugins.
func (Plugin) BeforeConvert(context.Context, string, mdconvert.ConversionInfo) (mdconvert.ContentRewrite, error) {
	return func(content string, meta mdconvert.Metadata) (string, error) {
		data, body, err := yamlutil.ParseFrontmatter(content)
		if err != nil {
			return "", err
		}
		for k, v := range data {
			meta[k] = v
		}
		return body, nil
	}, nil
}
