package mdconvert

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfStamper post-processes a printed PDF: it writes document properties
// and reports the page count.
type pdfStamper interface {
	Stamp(pdf []byte, props map[string]string) ([]byte, int, error)
}

// infoKeys maps metadata keys to PDF document info dictionary entries.
var infoKeys = map[string]string{
	"title":    "Title",
	"author":   "Author",
	"subject":  "Subject",
	"keywords": "Keywords",
	"creator":  "Creator",
}

// pdfProperties extracts the non-empty string properties for the info
// dictionary.
func pdfProperties(meta Metadata, title string) map[string]string {
	props := make(map[string]string, len(infoKeys))
	for key, name := range infoKeys {
		if v := strings.TrimSpace(meta.String(key)); v != "" {
			props[name] = v
		}
	}
	if _, ok := props["Title"]; !ok && title != "" {
		props["Title"] = title
	}
	return props
}

// disablePDFConfigDir stops pdfcpu from creating its config directory in
// the user's home.
var disablePDFConfigDir = sync.OnceFunc(func() {
	model.ConfigPath = "disable"
})

// pdfcpuStamper implements pdfStamper with pdfcpu.
type pdfcpuStamper struct{}

func (pdfcpuStamper) Stamp(pdf []byte, props map[string]string) ([]byte, int, error) {
	disablePDFConfigDir()
	conf := model.NewDefaultConfiguration()

	// Keywords live in their own pdfcpu command.
	fields := make(map[string]string, len(props))
	var keywords []string
	for k, v := range props {
		if k == "Keywords" {
			keywords = splitKeywords(v)
			continue
		}
		fields[k] = v
	}

	out := pdf
	if len(fields) > 0 {
		var buf bytes.Buffer
		if err := api.AddProperties(bytes.NewReader(out), &buf, fields, conf); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrPDFMetadata, err)
		}
		out = buf.Bytes()
	}
	if len(keywords) > 0 {
		var buf bytes.Buffer
		if err := api.AddKeywords(bytes.NewReader(out), &buf, keywords, conf); err != nil {
			return nil, 0, fmt.Errorf("%w: keywords: %v", ErrPDFMetadata, err)
		}
		out = buf.Bytes()
	}

	pages, err := api.PageCount(bytes.NewReader(out), conf)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: counting pages: %v", ErrPDFMetadata, err)
	}
	return out, pages, nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
