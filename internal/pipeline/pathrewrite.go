package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResolveAssetPaths rewrites relative img[src] and a[href] references in a
// full HTML document to absolute file:// URLs under sourceDir. The browser
// loads the document from a temporary file, so paths relative to the
// Markdown file would not resolve otherwise.
//
// Anchors, URLs, absolute paths and paths escaping sourceDir are left alone.
// An empty sourceDir returns the document unchanged.
func ResolveAssetPaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}
	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("resolving source directory: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	changed := false
	rewrite := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, s *goquery.Selection) {
			val, _ := s.Attr(attr)
			if !isRelativePath(val) {
				return
			}
			absPath := filepath.Join(absSourceDir, val)
			if !isPathUnderDir(absPath, absSourceDir) {
				return
			}
			s.SetAttr(attr, pathToFileURL(absPath))
			changed = true
		}
	}
	doc.Find("img[src]").Each(rewrite("src"))
	doc.Find("a[href]").Each(rewrite("href"))

	if !changed {
		return htmlContent, nil
	}
	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return out, nil
}

// isRelativePath reports whether path is a relative filesystem reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		// http, https, file, data, mailto; a one-letter scheme is a Windows drive.
		return false
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks that absPath does not escape dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letter
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
