package mdconvert

import (
	"fmt"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-mdconvert/internal/assets"
)

// codeStyleName is the chroma style whose classes back the highlighted
// code blocks of the html and pdf formats.
const codeStyleName = "github"

// DefaultStyle returns the built-in stylesheet: the embedded document style
// followed by the code highlighting classes. It is computed once per process
// and never modified.
func DefaultStyle() (string, error) {
	return defaultStyle()
}

var defaultStyle = sync.OnceValues(func() (string, error) {
	base, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", fmt.Errorf("loading default style: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n")
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&sb, styles.Get(codeStyleName)); err != nil {
		return "", fmt.Errorf("generating code style: %w", err)
	}
	return sb.String(), nil
})
