package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxStyleSize caps user stylesheets at 1 MiB.
const MaxStyleSize = 1 << 20

// ReadStyleFile reads a user stylesheet from disk.
// Returns ErrStyleNotFound if the file does not exist, ErrInvalidStylePath
// for directories and non-.css files, ErrStyleTooLarge above MaxStyleSize,
// and ErrAssetRead for other I/O failures.
func ReadStyleFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidStylePath)
	}
	if !strings.EqualFold(filepath.Ext(path), ".css") {
		return "", fmt.Errorf("%w: %q is not a .css file", ErrInvalidStylePath, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %q is a directory", ErrInvalidStylePath, path)
	}
	if info.Size() > MaxStyleSize {
		return "", fmt.Errorf("%w: %q is %d bytes (max %d)", ErrStyleTooLarge, path, info.Size(), MaxStyleSize)
	}

	f, err := os.Open(path) // #nosec G304 -- user-selected stylesheet
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxStyleSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if len(content) > MaxStyleSize {
		return "", fmt.Errorf("%w: %q", ErrStyleTooLarge, path)
	}
	return string(content), nil
}
