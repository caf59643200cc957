package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdconvert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to HTML, PDF, or Word documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (directories are searched recursively)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: html, pdf, docx (default: html)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or directory for several inputs")
	fmt.Fprintln(w, "  -c, --css <path>          CSS file for html and pdf output")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -m, --meta <key=value>    Metadata entry, repeatable (title, author, subject, keywords)")
	fmt.Fprintln(w, "      --date <s>            Footer date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Date]: YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Plugins:")
	fmt.Fprintln(w, "      --frontmatter         Read a leading YAML block into metadata")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight fenced code blocks")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style name (default: github-dark)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "      --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file with MDCONVERT_* variables (default: ./.env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error (default: warn)")
	fmt.Fprintln(w, "      --log-file <path>     Also append logs to this file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show sizes and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDCONVERT_CONFIG, MDCONVERT_FORMAT, MDCONVERT_CSS, MDCONVERT_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MDCONVERT_DATE, MDCONVERT_HIGHLIGHT_STYLE, MDCONVERT_LOG_LEVEL,")
	fmt.Fprintln(w, "  MDCONVERT_LOG_FILE, MDCONVERT_TIMEOUT, MDCONVERT_WORKERS")
	fmt.Fprintln(w, "  Flags win over the environment, which wins over the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage, 3 I/O, 4 browser, 5 plugin")
}
