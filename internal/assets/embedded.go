package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed lexicons/*.yaml
var lexicons embed.FS

//go:embed styles/*.css
var styles embed.FS

// EmbeddedLoader loads assets compiled into the binary.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadLexicon loads a lexicon from embedded assets by name.
func (e *EmbeddedLoader) LoadLexicon(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := lexicons.ReadFile("lexicons/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrLexiconNotFound, name)
	}

	return content, nil
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LexiconNames lists the built-in lexicons, sorted.
func (e *EmbeddedLoader) LexiconNames() []string {
	return embeddedNames(lexicons, "lexicons/*.yaml")
}

// StyleNames lists the built-in page styles, sorted.
func (e *EmbeddedLoader) StyleNames() []string {
	return embeddedNames(styles, "styles/*.css")
}

func embeddedNames(fsys fs.FS, pattern string) []string {
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := path.Base(m)
		names = append(names, strings.TrimSuffix(base, path.Ext(base)))
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
