// Package pipeline implements the Markdown stages shared by every output format.
//
// The stages are:
//   - Normalization: byte order mark and line endings
//   - Parsing to a goldmark AST (the input of the structured document builder),
//     with ==highlight== spans as Mark nodes
//   - Rendering the AST to sanitized HTML via goldmark and bluemonday
//   - Document assembly: the HTML5 wrapper, CSS injection, the generated footer
//   - Asset path resolution for browser rendering
//
// Paginated output and the structured document container are produced by the
// root mdconvert package from the results of these stages.
package pipeline
