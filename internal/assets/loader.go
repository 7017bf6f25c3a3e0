package assets

// DefaultLexiconName is the name of the built-in lexicon.
const DefaultLexiconName = "default"

// DefaultStyleName is the name of the built-in page style.
const DefaultStyleName = "default"

// AssetLoader defines the contract for loading lexicons and page styles.
type AssetLoader interface {
	// LoadLexicon returns the raw YAML of a lexicon by name (without .yaml).
	// Returns ErrLexiconNotFound if the lexicon doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLexicon(name string) ([]byte, error)

	// LoadStyle loads a CSS page style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)
}
