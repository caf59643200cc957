// Package docmodel translates parsed Markdown into a flat, typed document model.
//
// A Document is an ordered sequence of blocks: headings, paragraphs, list
// items, block quotes, code blocks, and a Fallback variant that keeps the text
// of anything else. Each text-bearing block carries inline runs with their
// styling resolved.
//
// Two entry points build the same model:
//
//	doc := docmodel.FromMarkdown(source, root) // goldmark AST, walked as enter/exit events
//	doc, err := docmodel.FromHTML(r)            // rendered markup, walked as a DOM
//
// # Lists
//
// Nested lists are flattened. Every item becomes a ListItem whose IndentLevel
// counts the enclosing lists (0 for a top-level item). Consecutive items with
// the same Ordered flag belong to one list; there is no list entity.
//
// # Inline styling
//
// Nested markup resolves to the union of every enclosing style flag. When
// links nest (an image inside a link), the innermost target wins. Raw inline
// tags u, ins, b, strong, i, em, code, s, del and br are honoured; other raw
// inline HTML is dropped.
//
// Building is pure: no I/O, no goroutines.
package docmodel
