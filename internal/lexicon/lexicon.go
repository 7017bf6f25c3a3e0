// Package lexicon holds the word lists and patterns the heuristic passes
// rely on, and compiles them into matchers.
//
// Lexicons are YAML documents loaded through internal/assets. The built-in
// one is embedded; users can replace it or add entries on top of it.
package lexicon

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/alnah/go-mdnorm/internal/assets"
	"github.com/alnah/go-mdnorm/internal/yamlutil"
)

// maxWordLength bounds dictionary entries; anything longer is a typo or a
// sentence pasted into the wrong list.
const maxWordLength = 64

// Sentinel errors for lexicon operations.
var (
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrInvalidWord    = errors.New("invalid word")
	ErrParse          = errors.New("failed to parse lexicon")
)

// Loader fetches raw lexicon documents by name. Satisfied by
// assets.AssetResolver and the individual asset loaders.
type Loader interface {
	LoadLexicon(name string) ([]byte, error)
}

// Lexicon is the configurable data behind heading splitting and math
// detection. List order is significant for ProseStarters and ContentStarts.
type Lexicon struct {
	ProseStarters       []string `yaml:"proseStarters"`
	HeadingStopWords    []string `yaml:"headingStopWords"`
	ContentStarts       []string `yaml:"contentStarts"`
	MathIndicators      []string `yaml:"mathIndicators"`
	ProseParentheticals []string `yaml:"proseParentheticals"`
}

// Parse decodes a lexicon document, rejecting unknown keys.
func Parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yamlutil.UnmarshalStrict(data, &lex); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &lex, nil
}

// Marshal encodes the lexicon in the same YAML layout Parse reads.
func (l *Lexicon) Marshal() ([]byte, error) {
	return yamlutil.Marshal(l)
}

// Load reads and parses the named lexicon from loader.
func Load(loader Loader, name string) (*Lexicon, error) {
	data, err := loader.LoadLexicon(name)
	if err != nil {
		return nil, err
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %q: %w", name, err)
	}
	return lex, nil
}

// Default returns a fresh copy of the built-in lexicon.
func Default() (*Lexicon, error) {
	return Load(assets.NewEmbeddedLoader(), assets.DefaultLexiconName)
}

// Clone returns a deep copy.
func (l *Lexicon) Clone() *Lexicon {
	return &Lexicon{
		ProseStarters:       slices.Clone(l.ProseStarters),
		HeadingStopWords:    slices.Clone(l.HeadingStopWords),
		ContentStarts:       slices.Clone(l.ContentStarts),
		MathIndicators:      slices.Clone(l.MathIndicators),
		ProseParentheticals: slices.Clone(l.ProseParentheticals),
	}
}

// Merge returns a copy of l with ext's entries appended after l's own.
// Entries already present are skipped, so merging is idempotent.
func (l *Lexicon) Merge(ext *Lexicon) *Lexicon {
	out := l.Clone()
	if ext == nil {
		return out
	}
	out.ProseStarters = appendMissing(out.ProseStarters, ext.ProseStarters)
	out.HeadingStopWords = appendMissing(out.HeadingStopWords, ext.HeadingStopWords)
	out.ContentStarts = appendMissing(out.ContentStarts, ext.ContentStarts)
	out.MathIndicators = appendMissing(out.MathIndicators, ext.MathIndicators)
	out.ProseParentheticals = appendMissing(out.ProseParentheticals, ext.ProseParentheticals)
	return out
}

// IsEmpty reports whether every list is empty.
func (l *Lexicon) IsEmpty() bool {
	return len(l.ProseStarters) == 0 && len(l.HeadingStopWords) == 0 &&
		len(l.ContentStarts) == 0 && len(l.MathIndicators) == 0 &&
		len(l.ProseParentheticals) == 0
}

// Validate checks the word lists. Patterns are checked by Compile.
func (l *Lexicon) Validate() error {
	for _, list := range []struct {
		field string
		words []string
	}{
		{"proseStarters", l.ProseStarters},
		{"headingStopWords", l.HeadingStopWords},
	} {
		for i, w := range list.words {
			if err := validateWord(w); err != nil {
				return fmt.Errorf("%s[%d]: %w", list.field, i, err)
			}
		}
	}
	return nil
}

func validateWord(w string) error {
	if w == "" {
		return fmt.Errorf("%w: empty", ErrInvalidWord)
	}
	if len(w) > maxWordLength {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidWord, w, maxWordLength)
	}
	if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidWord, w)
	}
	return nil
}

func appendMissing(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
