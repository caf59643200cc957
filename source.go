package mdconvert

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// MaxSourceSize caps the size of a Markdown source file.
const MaxSourceSize = 64 << 20

// SourceDocument is a Markdown file read into memory.
type SourceDocument struct {
	Path    string
	Content string
}

// Size returns the content length in bytes.
func (d *SourceDocument) Size() int64 {
	return int64(len(d.Content))
}

// ReadSource reads the Markdown file at path. A missing, unreadable, oversized
// or non-regular file fails with ErrInput.
func ReadSource(path string) (*SourceDocument, error) {
	if path == "" {
		return nil, inputError(path, errors.New("empty path"))
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, inputError(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, inputError(path, errors.New("not a regular file"))
	}
	if info.Size() > MaxSourceSize {
		return nil, inputError(path, fmt.Errorf("file is %d bytes, max %d", info.Size(), MaxSourceSize))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is the conversion input
	if err != nil {
		return nil, inputError(path, err)
	}
	if !utf8.Valid(data) {
		return nil, inputError(path, errors.New("content is not valid UTF-8"))
	}
	return &SourceDocument{Path: path, Content: string(data)}, nil
}
