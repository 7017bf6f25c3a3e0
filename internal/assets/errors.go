package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrLexiconNotFound indicates the requested lexicon does not exist.
	ErrLexiconNotFound = errors.New("lexicon not found")

	// ErrStyleNotFound indicates the requested page style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)

// isNotFoundError reports whether err allows falling back to another loader.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrLexiconNotFound) || errors.Is(err, ErrStyleNotFound)
}
