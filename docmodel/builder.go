package docmodel

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// builder consumes goldmark AST enter/exit events in a single pass.
type builder struct {
	source []byte
	blocks []Block

	// listBuf collects blocks while any list is open; listDepth counts
	// open lists and doubles as the indent of the next item plus one.
	listBuf   []Block
	listDepth int
}

// FromMarkdown builds a Document from a goldmark AST rooted at root.
// source must be the byte slice the AST was parsed from.
func FromMarkdown(source []byte, root ast.Node) Document {
	b := &builder{source: source}
	if root == nil {
		return Document{}
	}
	// visit never returns an error.
	_ = ast.Walk(root, b.visit)
	// An unbalanced walk cannot happen with goldmark, but never lose content.
	b.blocks = append(b.blocks, b.listBuf...)
	return Document{Blocks: b.blocks}
}

func (b *builder) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document:
		return ast.WalkContinue, nil

	case *ast.List:
		if entering {
			b.openList()
		} else {
			b.closeList()
		}
		return ast.WalkContinue, nil

	case *ast.ListItem:
		if entering {
			b.emit(ListItem{
				Ordered:     isOrderedItem(node),
				IndentLevel: b.listDepth - 1,
				Runs:        b.itemRuns(node),
			})
		}
		// Nested lists and non-text blocks inside the item are visited next.
		return ast.WalkContinue, nil
	}

	if !entering {
		return ast.WalkContinue, nil
	}

	switch node := n.(type) {
	case *ast.Heading:
		b.emit(Heading{Level: clampLevel(node.Level), Runs: collectRuns(b.source, node)})

	case *ast.Paragraph, *ast.TextBlock:
		if _, inItem := n.Parent().(*ast.ListItem); !inItem {
			b.emit(Paragraph{Runs: collectRuns(b.source, n)})
		}

	case *ast.Blockquote:
		b.emit(BlockQuote{Runs: b.containerRuns(node)})

	case *ast.FencedCodeBlock:
		b.emit(CodeBlock{Language: string(node.Language(b.source)), Lines: b.codeLines(node)})

	case *ast.CodeBlock:
		b.emit(CodeBlock{Lines: b.codeLines(node)})

	case *ast.HTMLBlock:
		for _, blk := range b.htmlBlocks(node) {
			b.emit(blk)
		}

	default:
		if n.Type() == ast.TypeBlock {
			b.emit(Fallback{Tag: n.Kind().String(), Text: b.textContent(n)})
		}
	}
	return ast.WalkSkipChildren, nil
}

func (b *builder) emit(blk Block) {
	if b.listDepth > 0 {
		b.listBuf = append(b.listBuf, blk)
		return
	}
	b.blocks = append(b.blocks, blk)
}

func (b *builder) openList() {
	b.listDepth++
}

// closeList flushes the buffered items once the outermost list closes.
func (b *builder) closeList() {
	if b.listDepth == 0 {
		return
	}
	b.listDepth--
	if b.listDepth == 0 {
		b.blocks = append(b.blocks, b.listBuf...)
		b.listBuf = nil
	}
}

func isOrderedItem(item *ast.ListItem) bool {
	if list, ok := item.Parent().(*ast.List); ok {
		return list.IsOrdered()
	}
	return false
}

// itemRuns returns the runs of the item's own text blocks. Paragraphs after
// the first are separated by a newline run.
func (b *builder) itemRuns(item *ast.ListItem) []Run {
	var runs []Run
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if len(runs) > 0 {
				runs = append(runs, Run{Text: "\n"})
			}
			runs = append(runs, collectRuns(b.source, child)...)
		}
	}
	return runs
}

// containerRuns flattens every block inside a container (block quote) into
// runs, separating blocks with a newline run.
func (b *builder) containerRuns(n ast.Node) []Run {
	var runs []Run
	sep := func() {
		if len(runs) > 0 {
			runs = append(runs, Run{Text: "\n"})
		}
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			sep()
			runs = append(runs, collectRuns(b.source, c)...)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			sep()
			if text := strings.Join(b.codeLines(c), "\n"); text != "" {
				runs = append(runs, Run{Text: text, Code: true})
			}
		default:
			if nested := b.containerRuns(c); len(nested) > 0 {
				sep()
				runs = append(runs, nested...)
			}
		}
	}
	return runs
}

// codeLines splits a code block's content at newline boundaries.
func (b *builder) codeLines(n ast.Node) []string {
	content := b.linesText(n)
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}
	return strings.Split(content, "\n")
}

func (b *builder) linesText(n ast.Node) string {
	lines := n.Lines()
	if lines == nil {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.source))
	}
	return sb.String()
}

// htmlBlocks maps a raw HTML block through the DOM builder, so enumerated
// tags (for example a highlighted <pre>) keep their structure. Anything the
// DOM builder cannot map becomes a Fallback with the block's visible text,
// which is empty for a comment.
func (b *builder) htmlBlocks(n *ast.HTMLBlock) []Block {
	raw := b.linesText(n)
	if n.HasClosure() {
		raw += string(n.ClosureLine.Value(b.source))
	}
	doc, err := FromHTML(strings.NewReader(raw))
	if err != nil || len(doc.Blocks) == 0 {
		return []Block{Fallback{Tag: n.Kind().String(), Text: htmlText(raw)}}
	}
	return doc.Blocks
}

// textContent returns the full text of an arbitrary block.
func (b *builder) textContent(n ast.Node) string {
	var sb strings.Builder
	b.writeText(&sb, n)
	return strings.TrimRight(sb.String(), "\n")
}

func (b *builder) writeText(sb *strings.Builder, n ast.Node) {
	switch node := n.(type) {
	case *east.Table:
		first := true
		for row := node.FirstChild(); row != nil; row = row.NextSibling() {
			if !first {
				sb.WriteByte('\n')
			}
			first = false
			cells := make([]string, 0, row.ChildCount())
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, PlainText(collectRuns(b.source, cell)))
			}
			sb.WriteString(strings.Join(cells, "\t"))
		}
		return
	case *ast.HTMLBlock, *ast.FencedCodeBlock, *ast.CodeBlock:
		sb.WriteString(b.linesText(node))
		return
	}

	if n.Type() == ast.TypeBlock && n.HasChildren() && n.FirstChild().Type() == ast.TypeInline {
		sb.WriteString(PlainText(collectRuns(b.source, n)))
		sb.WriteByte('\n')
		return
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		b.writeText(sb, child)
	}
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	}
	return level
}
