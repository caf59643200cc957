package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR      = regexp.MustCompile(`\r\n?`)
	byteOrderMark = "\uFEFF"
)

// Normalize strips a leading byte order mark and converts \r\n and \r to
// \n. Blank lines are kept as they are: inside code blocks they are content.
func Normalize(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	return crlfOrCR.ReplaceAllString(content, "\n")
}
