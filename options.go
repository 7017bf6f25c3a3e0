package mdnorm

import (
	"io"
	"log/slog"

	"github.com/alnah/go-mdnorm/internal/assets"
)

// Option configures a Normalizer.
type Option func(*normalizerConfig)

// normalizerConfig holds the options applied by New.
type normalizerConfig struct {
	lexicon     *Lexicon   // replaces the named lexicon when set
	extensions  []*Lexicon // merged on top, in order
	lexiconName string
	assetPath   string
	logger      *slog.Logger
}

func defaultConfig() normalizerConfig {
	return normalizerConfig{
		lexiconName: assets.DefaultLexiconName,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLexicon replaces the built-in lexicon entirely. The value is copied.
// Panics if lex is nil (programmer error).
func WithLexicon(lex *Lexicon) Option {
	if lex == nil {
		panic("mdnorm: WithLexicon lexicon must not be nil")
	}
	return func(c *normalizerConfig) {
		c.lexicon = lex.Clone()
	}
}

// WithLexiconExtension adds entries on top of the base lexicon. Existing
// entries are kept; duplicates are ignored. May be given more than once.
func WithLexiconExtension(ext *Lexicon) Option {
	return func(c *normalizerConfig) {
		if ext != nil {
			c.extensions = append(c.extensions, ext.Clone())
		}
	}
}

// WithLexiconName selects a named lexicon from the asset path (or the
// built-in set). Ignored when WithLexicon is also given.
func WithLexiconName(name string) Option {
	return func(c *normalizerConfig) {
		if name != "" {
			c.lexiconName = name
		}
	}
}

// WithAssetPath sets a directory searched before the built-in assets.
func WithAssetPath(path string) Option {
	return func(c *normalizerConfig) {
		c.assetPath = path
	}
}

// WithLogger sets the logger that receives rule activity at debug level.
// A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *normalizerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
