package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateAssetName checks that a built-in asset name is a bare identifier:
// no path separators, dots, drive colons or control characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.:`) || strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
