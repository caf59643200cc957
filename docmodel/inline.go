package docmodel

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// rawTagPattern matches a single inline HTML tag such as <u>, </strong> or <br/>.
var rawTagPattern = regexp.MustCompile(`^<\s*(/?)\s*([a-zA-Z][a-zA-Z0-9]*)[^>]*?(/?)\s*>$`)

// inlineCollector walks the inline children of one block and emits runs.
// Raw tag state lives on the collector because opening and closing raw
// tags are siblings of the text they style.
type inlineCollector struct {
	source []byte
	runs   []Run
	open   map[string]int
}

func newInlineCollector(source []byte) *inlineCollector {
	return &inlineCollector{source: source, open: make(map[string]int)}
}

// collectRuns returns the runs of n's inline children.
func collectRuns(source []byte, n ast.Node) []Run {
	c := newInlineCollector(source)
	c.children(n, inlineStyle{})
	return c.runs
}

func (c *inlineCollector) children(n ast.Node, st inlineStyle) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.inline(child, st)
	}
}

func (c *inlineCollector) inline(n ast.Node, st inlineStyle) {
	switch node := n.(type) {
	case *ast.Text:
		c.add(st, textValue(c.source, node))
	case *ast.String:
		c.add(st, string(node.Value))
	case *ast.Emphasis:
		if node.Level >= 2 {
			st.bold = true
		} else {
			st.italic = true
		}
		c.children(node, st)
	case *ast.CodeSpan:
		st.code = true
		c.add(st, codeSpanText(c.source, node))
	case *ast.Link:
		st.link = string(node.Destination)
		c.children(node, st)
	case *ast.AutoLink:
		st.link = autoLinkTarget(c.source, node)
		c.add(st, string(node.Label(c.source)))
	case *ast.Image:
		st.link = string(node.Destination)
		c.children(node, st)
	case *east.Strikethrough:
		st.strike = true
		c.children(node, st)
	case *east.TaskCheckBox:
		if node.IsChecked {
			c.add(st, "[x] ")
		} else {
			c.add(st, "[ ] ")
		}
	case *ast.RawHTML:
		c.rawHTML(node, st)
	default:
		c.children(node, st)
	}
}

// add appends a run unless text is empty.
func (c *inlineCollector) add(st inlineStyle, text string) {
	if text == "" {
		return
	}
	c.runs = append(c.runs, c.withRawTags(st).run(text))
}

// withRawTags overlays the styles of currently open raw tags.
func (c *inlineCollector) withRawTags(st inlineStyle) inlineStyle {
	if c.open["u"] > 0 || c.open["ins"] > 0 {
		st.underline = true
	}
	if c.open["b"] > 0 || c.open["strong"] > 0 {
		st.bold = true
	}
	if c.open["i"] > 0 || c.open["em"] > 0 {
		st.italic = true
	}
	if c.open["code"] > 0 {
		st.code = true
	}
	if c.open["s"] > 0 || c.open["del"] > 0 || c.open["strike"] > 0 {
		st.strike = true
	}
	return st
}

func (c *inlineCollector) rawHTML(node *ast.RawHTML, st inlineStyle) {
	var sb strings.Builder
	for i := 0; i < node.Segments.Len(); i++ {
		seg := node.Segments.At(i)
		sb.Write(seg.Value(c.source))
	}
	m := rawTagPattern.FindStringSubmatch(strings.TrimSpace(sb.String()))
	if m == nil {
		return
	}
	closing, name, selfClosing := m[1] == "/", strings.ToLower(m[2]), m[3] == "/"

	switch name {
	case "br":
		c.add(st, "\n")
		return
	case "u", "ins", "b", "strong", "i", "em", "code", "s", "del", "strike":
	default:
		return
	}

	switch {
	case selfClosing:
	case closing:
		if c.open[name] > 0 {
			c.open[name]--
		}
	default:
		c.open[name]++
	}
}

// textValue returns the text of a Text node, with a soft break rendered as
// a space and a hard break as a newline.
func textValue(source []byte, t *ast.Text) string {
	s := string(t.Segment.Value(source))
	switch {
	case t.HardLineBreak():
		s += "\n"
	case t.SoftLineBreak():
		s += " "
	}
	return s
}

// codeSpanText joins a code span's children into one string.
func codeSpanText(source []byte, n *ast.CodeSpan) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			value := t.Segment.Value(source)
			if l := len(value); l > 0 && value[l-1] == '\n' {
				sb.Write(value[:l-1])
				sb.WriteByte(' ')
				continue
			}
			sb.Write(value)
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return sb.String()
}

func autoLinkTarget(source []byte, n *ast.AutoLink) string {
	url := string(n.URL(source))
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		return "mailto:" + url
	}
	return url
}
