package docmodel

// BlockKind identifies the variant of a Block.
type BlockKind int

// Block variants.
const (
	KindHeading BlockKind = iota
	KindParagraph
	KindListItem
	KindBlockQuote
	KindCodeBlock
	KindFallback
)

var blockKindNames = [...]string{
	KindHeading:    "heading",
	KindParagraph:  "paragraph",
	KindListItem:   "list-item",
	KindBlockQuote: "blockquote",
	KindCodeBlock:  "code-block",
	KindFallback:   "fallback",
}

func (k BlockKind) String() string {
	if k < 0 || int(k) >= len(blockKindNames) {
		return "unknown"
	}
	return blockKindNames[k]
}

// Document is an ordered sequence of blocks in source order.
type Document struct {
	Blocks []Block
}

// Block is one structural unit of the output document.
// The set of implementations is closed; see the Kind constants.
type Block interface {
	Kind() BlockKind
	block()
}

// Run is a span of text sharing one styling combination.
// Adjacent runs are never merged, even when identically styled.
type Run struct {
	Text       string
	Bold       bool
	Italic     bool
	Underline  bool
	Code       bool
	Strike     bool
	LinkTarget string // empty when the run is not a link
}

// Heading is a section title of level 1 to 6.
type Heading struct {
	Level int
	Runs  []Run
}

// Paragraph is a block of inline runs. A paragraph with no runs is kept.
type Paragraph struct {
	Runs []Run
}

// ListItem is one entry of a list. Nesting is flattened to IndentLevel;
// consecutive items with the same Ordered flag form one list.
type ListItem struct {
	Ordered     bool
	IndentLevel int
	Runs        []Run
}

// BlockQuote holds the inline content of a quotation.
type BlockQuote struct {
	Runs []Run
}

// CodeBlock holds source lines verbatim. Language is not interpreted.
type CodeBlock struct {
	Language string
	Lines    []string
}

// Fallback preserves the text of a block outside the enumerated set.
// Tag names the source node (e.g. "ThematicBreak", "Table", "div").
type Fallback struct {
	Tag  string
	Text string
}

func (Heading) Kind() BlockKind    { return KindHeading }
func (Paragraph) Kind() BlockKind  { return KindParagraph }
func (ListItem) Kind() BlockKind   { return KindListItem }
func (BlockQuote) Kind() BlockKind { return KindBlockQuote }
func (CodeBlock) Kind() BlockKind  { return KindCodeBlock }
func (Fallback) Kind() BlockKind   { return KindFallback }

func (Heading) block()    {}
func (Paragraph) block()  {}
func (ListItem) block()   {}
func (BlockQuote) block() {}
func (CodeBlock) block()  {}
func (Fallback) block()   {}

// PlainText concatenates the text of runs, ignoring styling.
func PlainText(runs []Run) string {
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// inlineStyle accumulates styling from enclosing inline markup.
// Booleans are the union of all ancestors; the link target comes
// from the innermost link.
type inlineStyle struct {
	bold, italic, underline, code, strike bool
	link                                  string
}

func (s inlineStyle) run(text string) Run {
	return Run{
		Text:       text,
		Bold:       s.bold,
		Italic:     s.italic,
		Underline:  s.underline,
		Code:       s.code,
		Strike:     s.strike,
		LinkTarget: s.link,
	}
}
