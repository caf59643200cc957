package docmodel

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML builds a Document from rendered markup. Tags outside the
// enumerated set become Fallback blocks carrying their text content.
func FromHTML(r io.Reader) (Document, error) {
	dom, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Document{}, fmt.Errorf("parsing html: %w", err)
	}
	w := &domWalker{}
	for _, body := range dom.Find("body").Nodes {
		w.container(body)
	}
	return Document{Blocks: w.blocks}, nil
}

type domWalker struct {
	blocks []Block
}

// container visits the block-level children of n.
func (w *domWalker) container(n *html.Node) {
	var loose []Run
	flush := func() {
		if strings.TrimSpace(PlainText(loose)) != "" {
			w.blocks = append(w.blocks, Paragraph{Runs: trimRuns(loose)})
		}
		loose = nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlockElement(c) {
			flush()
			w.block(c)
			continue
		}
		loose = append(loose, domRuns(c, inlineStyle{}, false)...)
	}
	flush()
}

func (w *domWalker) block(n *html.Node) {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		w.blocks = append(w.blocks, Heading{Level: level, Runs: trimRuns(inlineRuns(n))})
	case atom.P:
		w.blocks = append(w.blocks, Paragraph{Runs: trimRuns(inlineRuns(n))})
	case atom.Ul, atom.Ol:
		w.list(n, 0)
	case atom.Blockquote:
		w.blocks = append(w.blocks, BlockQuote{Runs: trimRuns(flowRuns(n))})
	case atom.Pre:
		w.blocks = append(w.blocks, preBlock(n))
	case atom.Body, atom.Main, atom.Article, atom.Section:
		w.container(n)
	case atom.Div:
		if hasBlockChild(n) {
			w.container(n)
			return
		}
		w.fallback(n)
	case atom.Script, atom.Style, atom.Template:
	default:
		w.fallback(n)
	}
}

// htmlText returns the visible text of an HTML fragment. Comments and
// markup are dropped.
func htmlText(raw string) string {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(dom.Text())
}

func (w *domWalker) fallback(n *html.Node) {
	text := strings.TrimSpace(goquery.NewDocumentFromNode(n).Text())
	w.blocks = append(w.blocks, Fallback{Tag: n.Data, Text: text})
}

// list flattens a ul/ol and its nested lists into ListItems.
func (w *domWalker) list(n *html.Node, indent int) {
	ordered := n.DataAtom == atom.Ol
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		var runs []Run
		var nested []*html.Node
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				nested = append(nested, c)
				continue
			}
			if c.Type == html.ElementNode && c.DataAtom == atom.P && len(runs) > 0 {
				runs = append(runs, Run{Text: "\n"})
			}
			runs = append(runs, domRuns(c, inlineStyle{}, false)...)
		}
		w.blocks = append(w.blocks, ListItem{Ordered: ordered, IndentLevel: indent, Runs: trimRuns(runs)})
		for _, sub := range nested {
			w.list(sub, indent+1)
		}
	}
}

// preBlock reads a <pre> block. The language comes from a data-language
// attribute on the pre, or a language-* class on its code child.
func preBlock(n *html.Node) CodeBlock {
	sel := goquery.NewDocumentFromNode(n).Selection
	lang, _ := sel.Attr("data-language")
	if lang == "" {
		if class, ok := sel.Find("code").First().Attr("class"); ok {
			for _, c := range strings.Fields(class) {
				if l, found := strings.CutPrefix(c, "language-"); found {
					lang = l
					break
				}
			}
		}
	}
	text := strings.TrimSuffix(sel.Text(), "\n")
	lines := []string{}
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return CodeBlock{Language: lang, Lines: lines}
}

func inlineRuns(n *html.Node) []Run {
	var runs []Run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		runs = append(runs, domRuns(c, inlineStyle{}, false)...)
	}
	return runs
}

// flowRuns flattens a container's blocks into runs separated by newlines.
func flowRuns(n *html.Node) []Run {
	var runs []Run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlockElement(c) {
			inner := trimRuns(flowRuns(c))
			if c.DataAtom == atom.Pre {
				inner = trimRuns(domRuns(c, inlineStyle{code: true}, true))
			}
			if len(inner) == 0 {
				continue
			}
			if len(runs) > 0 {
				runs = append(runs, Run{Text: "\n"})
			}
			runs = append(runs, inner...)
			continue
		}
		runs = append(runs, domRuns(c, inlineStyle{}, false)...)
	}
	return runs
}

// domRuns converts an inline subtree into runs. Whitespace collapses to a
// single space except inside preformatted text.
func domRuns(n *html.Node, st inlineStyle, pre bool) []Run {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if !pre {
			text = collapseSpace(text)
		}
		if text == "" {
			return nil
		}
		return []Run{st.run(text)}
	case html.ElementNode:
	default:
		return nil
	}

	switch n.DataAtom {
	case atom.B, atom.Strong:
		st.bold = true
	case atom.I, atom.Em:
		st.italic = true
	case atom.U, atom.Ins:
		st.underline = true
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		st.code = true
	case atom.S, atom.Del, atom.Strike:
		st.strike = true
	case atom.Pre:
		pre = true
	case atom.A:
		if href := attr(n, "href"); href != "" {
			st.link = href
		}
	case atom.Img:
		alt := attr(n, "alt")
		if alt == "" {
			return nil
		}
		st.link = attr(n, "src")
		return []Run{st.run(alt)}
	case atom.Br:
		return []Run{st.run("\n")}
	case atom.Input:
		if attr(n, "type") != "checkbox" {
			return nil
		}
		if hasAttr(n, "checked") {
			return []Run{st.run("[x] ")}
		}
		return []Run{st.run("[ ] ")}
	case atom.Script, atom.Style:
		return nil
	}

	var runs []Run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		runs = append(runs, domRuns(c, st, pre)...)
	}
	return runs
}

func isBlockElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Ul, atom.Ol, atom.Li, atom.Blockquote, atom.Pre,
		atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer,
		atom.Nav, atom.Aside, atom.Table, atom.Hr, atom.Dl, atom.Figure,
		atom.Details, atom.Form, atom.Fieldset, atom.Address,
		atom.Script, atom.Style, atom.Template:
		return true
	}
	return false
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlockElement(c) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// trimRuns strips leading whitespace from the first run and trailing
// whitespace from the last, dropping runs left empty.
func trimRuns(runs []Run) []Run {
	for len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " \t\r\n")
		if runs[0].Text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " \t\r\n")
		if runs[last].Text != "" {
			break
		}
		runs = runs[:last]
	}
	return runs
}
