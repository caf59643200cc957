package highlight

import "strings"

// fence is an open fenced code block.
type fence struct {
	indent string // leading spaces of the opening line
	char   byte   // '`' or '~'
	length int
	lang   string
	start  int // index of the opening line
}

// rewriteFences replaces every top-level fenced code block with the output
// of render. Blocks render rejects and unterminated blocks are kept.
func rewriteFences(content string, render func(lang, code string) (string, bool)) string {
	lines := strings.SplitAfter(content, "\n")
	var out strings.Builder
	out.Grow(len(content))

	var open *fence
	var code []string
	for i, line := range lines {
		text := strings.TrimRight(line, "\r\n")

		if open == nil {
			if f, ok := openingFence(text); ok {
				f.start = i
				open = &f
				code = code[:0]
				continue
			}
			out.WriteString(line)
			continue
		}

		if closesFence(text, open) {
			body := strings.Join(code, "\n")
			if len(code) > 0 {
				body += "\n"
			}
			if markup, ok := render(open.lang, body); ok {
				// Only the opening tag is indented; later lines are <pre> content.
				out.WriteString(open.indent + markup + "\n")
			} else {
				for _, raw := range lines[open.start : i+1] {
					out.WriteString(raw)
				}
			}
			open = nil
			continue
		}
		code = append(code, strings.TrimPrefix(text, open.indent))
	}

	// Unterminated block: keep the source.
	if open != nil {
		for _, raw := range lines[open.start:] {
			out.WriteString(raw)
		}
	}
	return out.String()
}

// openingFence parses a line opening a fenced code block: up to three
// spaces, at least three backticks or tildes, and an optional info string
// whose first word is the language.
func openingFence(line string) (fence, bool) {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	if indent > 3 {
		return fence{}, false
	}
	rest := line[indent:]
	if len(rest) < 3 || (rest[0] != '`' && rest[0] != '~') {
		return fence{}, false
	}
	char := rest[0]
	n := 0
	for n < len(rest) && rest[n] == char {
		n++
	}
	if n < 3 {
		return fence{}, false
	}
	info := strings.TrimSpace(rest[n:])
	if char == '`' && strings.ContainsRune(info, '`') {
		return fence{}, false
	}
	lang := ""
	if fields := strings.Fields(info); len(fields) > 0 {
		lang = fields[0]
	}
	return fence{indent: line[:indent], char: char, length: n, lang: lang}, true
}

// closesFence reports whether line closes f: the same character repeated
// at least as often, followed only by spaces.
func closesFence(line string, f *fence) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == f.char {
		n++
	}
	return n >= f.length && strings.TrimSpace(trimmed[n:]) == ""
}
