package yamlutil

import (
	"fmt"
	"strings"
)

const frontmatterDelim = "---"

// SplitFrontmatter separates a leading YAML block delimited by "---" lines
// from the rest of a document. The closing delimiter may also be "...".
// found is false when the document does not start with a delimiter line or
// the block is never closed; body is then the unchanged content, so a leading
// thematic break is not mistaken for metadata.
func SplitFrontmatter(content string) (front, body string, found bool) {
	text := strings.TrimPrefix(content, "\uFEFF")
	first, rest, _ := cutLine(text)
	if first != frontmatterDelim {
		return "", content, false
	}

	var yamlLines []string
	for {
		line, next, more := cutLine(rest)
		if line == frontmatterDelim || line == "..." {
			return strings.Join(yamlLines, "\n"), next, true
		}
		if !more {
			return "", content, false
		}
		yamlLines = append(yamlLines, line)
		rest = next
	}
}

// ParseFrontmatter splits content and decodes the YAML block into a map.
// An empty block yields an empty, non-nil map.
func ParseFrontmatter(content string) (map[string]any, string, error) {
	front, body, found := SplitFrontmatter(content)
	data := map[string]any{}
	if !found || strings.TrimSpace(front) == "" {
		return data, body, nil
	}
	if err := Unmarshal([]byte(front), &data); err != nil {
		return nil, content, fmt.Errorf("frontmatter: %w", err)
	}
	return data, body, nil
}

// cutLine returns the first line without its terminator (LF or CRLF), the
// remainder, and whether a terminator was found.
func cutLine(s string) (line, rest string, found bool) {
	line, rest, found = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, found
}
