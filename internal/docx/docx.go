// Package docx writes WordprocessingML packages (.docx).
//
// The package is assembled from paragraphs of styled runs. Heading, code,
// quote and list styles are predefined in the generated styles part; lists
// are numbered through numbering instances created with AddList.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Paragraph styles defined in styles.xml.
const (
	StyleNormal        = ""
	StyleCode          = "Code"
	StyleQuote         = "Quote"
	StyleListParagraph = "ListParagraph"
	StyleFallback      = "Fallback"
)

// HeadingStyle returns the style ID for a heading level, clamped to 1..6.
func HeadingStyle(level int) string {
	level = max(1, min(6, level))
	return "Heading" + strconv.Itoa(level)
}

// MaxListLevel is the deepest indent level with a numbering definition.
const MaxListLevel = 8

// ErrEmptyPackage is returned when writing a package with no paragraphs.
var ErrEmptyPackage = errors.New("docx package has no paragraphs")

// Run is a span of text with character formatting.
// A "\n" inside Text becomes a line break.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Mono      bool
	Hyperlink string
}

// Numbering attaches a paragraph to a list.
type Numbering struct {
	ID    int // returned by AddList
	Level int // 0..MaxListLevel
}

// Paragraph is one body paragraph.
type Paragraph struct {
	Style     string
	Numbering *Numbering
	Runs      []Run
}

// Properties populate docProps/core.xml.
type Properties struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    string
	Description string
	Created     time.Time
}

// Package is an in-memory document.
type Package struct {
	Properties Properties
	Paragraphs []Paragraph

	lists []bool // ordered flag per numbering instance, numId = index+1
}

// New returns an empty package.
func New() *Package {
	return &Package{}
}

// AddList creates a numbering instance and returns its ID.
// Each call restarts numbering at 1.
func (p *Package) AddList(ordered bool) int {
	p.lists = append(p.lists, ordered)
	return len(p.lists)
}

// Add appends a paragraph.
func (p *Package) Add(para Paragraph) {
	p.Paragraphs = append(p.Paragraphs, para)
}

// Bytes returns the package as a zip archive.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the zip archive to w.
func (p *Package) WriteTo(w io.Writer) error {
	if len(p.Paragraphs) == 0 {
		return ErrEmptyPackage
	}

	rels := newRelationships()
	body := p.renderBody(rels)

	modified := p.Properties.Created
	if modified.IsZero() {
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", p.coreXML()},
		{"docProps/app.xml", appXML},
		{"word/document.xml", fmt.Sprintf(documentXML, body)},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", p.numberingXML()},
		{"word/_rels/document.xml.rels", rels.xml()},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := io.WriteString(fw, part.content); err != nil {
			return fmt.Errorf("writing %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

func (p *Package) renderBody(rels *relationships) string {
	var sb strings.Builder
	for _, para := range p.Paragraphs {
		sb.WriteString("<w:p>")
		writeParagraphProps(&sb, para)
		for _, run := range para.Runs {
			if run.Hyperlink != "" {
				fmt.Fprintf(&sb, `<w:hyperlink r:id="%s">`, rels.hyperlink(run.Hyperlink))
				writeRun(&sb, run)
				sb.WriteString("</w:hyperlink>")
				continue
			}
			writeRun(&sb, run)
		}
		sb.WriteString("</w:p>")
	}
	return sb.String()
}

func writeParagraphProps(sb *strings.Builder, para Paragraph) {
	if para.Style == "" && para.Numbering == nil {
		return
	}
	sb.WriteString("<w:pPr>")
	if para.Style != "" {
		fmt.Fprintf(sb, `<w:pStyle w:val="%s"/>`, escape(para.Style))
	}
	if n := para.Numbering; n != nil {
		level := max(0, min(MaxListLevel, n.Level))
		fmt.Fprintf(sb, `<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, level, n.ID)
	}
	sb.WriteString("</w:pPr>")
}

func writeRun(sb *strings.Builder, run Run) {
	sb.WriteString("<w:r>")
	if run.Bold || run.Italic || run.Underline || run.Strike || run.Mono || run.Hyperlink != "" {
		sb.WriteString("<w:rPr>")
		if run.Hyperlink != "" {
			sb.WriteString(`<w:rStyle w:val="Hyperlink"/>`)
		}
		if run.Mono {
			sb.WriteString(`<w:rFonts w:ascii="Courier New" w:hAnsi="Courier New" w:cs="Courier New"/>`)
		}
		if run.Bold {
			sb.WriteString("<w:b/>")
		}
		if run.Italic {
			sb.WriteString("<w:i/>")
		}
		if run.Strike {
			sb.WriteString("<w:strike/>")
		}
		if run.Underline {
			sb.WriteString(`<w:u w:val="single"/>`)
		}
		sb.WriteString("</w:rPr>")
	}
	for i, line := range strings.Split(run.Text, "\n") {
		if i > 0 {
			sb.WriteString("<w:br/>")
		}
		if line == "" {
			continue
		}
		fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, escape(line))
	}
	sb.WriteString("</w:r>")
}

func (p *Package) coreXML() string {
	created := ""
	if !p.Properties.Created.IsZero() {
		ts := p.Properties.Created.UTC().Format(time.RFC3339)
		created = fmt.Sprintf(`<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`+
			`<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, ts, ts)
	}
	props := p.Properties
	return fmt.Sprintf(coreXML,
		escape(props.Title),
		escape(props.Subject),
		escape(props.Creator),
		escape(props.Keywords),
		escape(props.Description),
		created,
	)
}

func (p *Package) numberingXML() string {
	var abstract, nums strings.Builder
	for i, ordered := range p.lists {
		id := i + 1
		fmt.Fprintf(&abstract, `<w:abstractNum w:abstractNumId="%d"><w:multiLevelType w:val="hybridMultilevel"/>`, id)
		for lvl := 0; lvl <= MaxListLevel; lvl++ {
			format, text := "bullet", "•"
			if ordered {
				format, text = "decimal", fmt.Sprintf("%%%d.", lvl+1)
			}
			fmt.Fprintf(&abstract,
				`<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="%s"/><w:lvlText w:val="%s"/>`+
					`<w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`,
				lvl, format, text, 720*(lvl+1))
		}
		abstract.WriteString("</w:abstractNum>")
		fmt.Fprintf(&nums, `<w:num w:numId="%d"><w:abstractNumId w:val="%d"/></w:num>`, id, id)
	}
	return fmt.Sprintf(numberingXML, abstract.String()+nums.String())
}

// relationships tracks document part relationships. rId1..rId2 are reserved
// for styles and numbering; hyperlinks follow in first-use order.
type relationships struct {
	targets []string
	ids     map[string]string
}

func newRelationships() *relationships {
	return &relationships{ids: make(map[string]string)}
}

func (r *relationships) hyperlink(target string) string {
	if id, ok := r.ids[target]; ok {
		return id
	}
	id := "rId" + strconv.Itoa(len(r.targets)+3)
	r.ids[target] = id
	r.targets = append(r.targets, target)
	return id
}

func (r *relationships) xml() string {
	var sb strings.Builder
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	sb.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	for _, target := range r.targets {
		fmt.Fprintf(&sb,
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="%s" TargetMode="External"/>`,
			r.ids[target], escape(target))
	}
	return fmt.Sprintf(documentRelsXML, sb.String())
}

// escape returns s with XML special characters escaped. Characters not
// allowed in XML 1.0 are replaced by U+FFFD.
func escape(s string) string {
	var buf bytes.Buffer
	// xml.EscapeText only fails when the writer fails.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
