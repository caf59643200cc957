package mdconvert

import (
	"context"
	"strings"

	"github.com/alnah/go-mdconvert/docmodel"
	"github.com/alnah/go-mdconvert/internal/docx"
	"github.com/alnah/go-mdconvert/internal/pipeline"
)

func (c *Converter) renderDOCX(ctx context.Context, job *renderJob) (rendered, error) {
	parsed, err := c.markdown.Parse(ctx, pipeline.Normalize(job.content))
	if err != nil {
		return rendered{}, err
	}
	model := docmodel.FromMarkdown(parsed.Source, parsed.Root)
	if err := ctx.Err(); err != nil {
		return rendered{}, err
	}

	pkg := buildPackage(model)
	pkg.Properties = docx.Properties{
		Title:       job.title(),
		Subject:     job.metadata.String("subject"),
		Creator:     job.metadata.String("author"),
		Keywords:    job.metadata.String("keywords"),
		Description: job.metadata.String("description"),
		Created:     c.now(),
	}
	data, err := pkg.Bytes()
	if err != nil {
		return rendered{}, err
	}
	return rendered{data: data}, nil
}

// buildPackage lays out the document model as WordprocessingML paragraphs.
func buildPackage(doc docmodel.Document) *docx.Package {
	pkg := docx.New()
	lists := listNumbering{pkg: pkg}

	for _, blk := range doc.Blocks {
		if _, ok := blk.(docmodel.ListItem); !ok {
			lists.reset()
		}
		switch b := blk.(type) {
		case docmodel.Heading:
			pkg.Add(docx.Paragraph{Style: docx.HeadingStyle(b.Level), Runs: docxRuns(b.Runs)})
		case docmodel.Paragraph:
			pkg.Add(docx.Paragraph{Runs: docxRuns(b.Runs)})
		case docmodel.ListItem:
			pkg.Add(docx.Paragraph{
				Style:     docx.StyleListParagraph,
				Numbering: lists.next(b),
				Runs:      docxRuns(b.Runs),
			})
		case docmodel.BlockQuote:
			pkg.Add(docx.Paragraph{Style: docx.StyleQuote, Runs: docxRuns(b.Runs)})
		case docmodel.CodeBlock:
			pkg.Add(docx.Paragraph{
				Style: docx.StyleCode,
				Runs:  []docx.Run{{Text: strings.Join(b.Lines, "\n"), Mono: true}},
			})
		case docmodel.Fallback:
			pkg.Add(docx.Paragraph{Style: docx.StyleFallback, Runs: []docx.Run{{Text: b.Text}}})
		}
	}

	// An empty source still yields a valid, empty document.
	if len(pkg.Paragraphs) == 0 {
		pkg.Add(docx.Paragraph{})
	}
	return pkg
}

func docxRuns(runs []docmodel.Run) []docx.Run {
	out := make([]docx.Run, 0, len(runs))
	for _, r := range runs {
		out = append(out, docx.Run{
			Text:      r.Text,
			Bold:      r.Bold,
			Italic:    r.Italic,
			Underline: r.Underline,
			Strike:    r.Strike,
			Mono:      r.Code,
			Hyperlink: r.LinkTarget,
		})
	}
	return out
}

// listNumbering assigns numbering instances to consecutive list items.
// Each indent level of a group keeps its instance while the items at that
// level share the Ordered flag; a change of flag, or returning to a level
// after leaving it, starts a new list.
type listNumbering struct {
	pkg    *docx.Package
	levels []listLevel
}

type listLevel struct {
	id      int
	ordered bool
}

func (l *listNumbering) reset() {
	l.levels = l.levels[:0]
}

func (l *listNumbering) next(item docmodel.ListItem) *docx.Numbering {
	level := max(0, min(docx.MaxListLevel, item.IndentLevel))

	// Leaving deeper levels closes their lists.
	if len(l.levels) > level+1 {
		l.levels = l.levels[:level+1]
	}
	for len(l.levels) < level+1 {
		l.levels = append(l.levels, listLevel{})
	}

	cur := &l.levels[level]
	if cur.id == 0 || cur.ordered != item.Ordered {
		*cur = listLevel{id: l.pkg.AddList(item.Ordered), ordered: item.Ordered}
	}
	return &docx.Numbering{ID: cur.id, Level: level}
}
