// Package plugins groups the built-in conversion plugins.
//
//   - frontmatter: moves a leading YAML block into the conversion metadata.
//   - highlight: replaces fenced code blocks with syntax-highlighted markup.
//
// Register them through mdconvert.Options.Plugins. Order matters: put
// frontmatter first so later plugins see the document body only.
package plugins
