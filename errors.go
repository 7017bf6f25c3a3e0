package mdnorm

import (
	"errors"

	"github.com/alnah/go-mdnorm/internal/assets"
	"github.com/alnah/go-mdnorm/internal/lexicon"
	"github.com/alnah/go-mdnorm/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrRender           = errors.New("rendering failed")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidLexicon   = errors.New("invalid lexicon")

	// Asset and lexicon errors, re-exported for errors.Is.
	ErrLexiconNotFound = assets.ErrLexiconNotFound
	ErrStyleNotFound   = assets.ErrStyleNotFound
	ErrInvalidPattern  = lexicon.ErrInvalidPattern
	ErrInvalidWord     = lexicon.ErrInvalidWord

	// ErrUnknownTermStyle is wrapped by ErrRender for a bad TermOptions.Style.
	ErrUnknownTermStyle = pipeline.ErrUnknownTermStyle
)
