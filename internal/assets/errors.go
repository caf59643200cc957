package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidStylePath indicates a user stylesheet path that cannot be a
	// stylesheet: a directory, or a file without the .css extension.
	ErrInvalidStylePath = errors.New("invalid stylesheet path")

	// ErrStyleTooLarge indicates a user stylesheet above MaxStyleSize.
	ErrStyleTooLarge = errors.New("stylesheet too large")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")
)
