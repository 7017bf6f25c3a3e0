package mdnorm

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/alnah/go-mdnorm/internal/assets"
	"github.com/alnah/go-mdnorm/internal/lexicon"
	"github.com/alnah/go-mdnorm/internal/pipeline"
)

// Lexicon is the configurable data behind heading splitting and math
// detection. See DefaultLexicon for the built-in values.
type Lexicon = lexicon.Lexicon

// Compile-time interface implementation checks.
var (
	_ lexicon.Loader         = (*assets.AssetResolver)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
)

// Normalizer applies the full and streaming passes with a fixed lexicon.
// Create with New. A Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	lex    *lexicon.Lexicon
	engine *pipeline.Normalizer
	html   pipeline.HTMLConverter
	assets assets.AssetLoader
	log    *slog.Logger
}

// New creates a Normalizer. Without options it uses the built-in lexicon.
// Returns an error if the asset path or the lexicon is invalid.
func New(opts ...Option) (*Normalizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	lex := cfg.lexicon
	if lex == nil {
		lex, err = lexicon.Load(resolver, cfg.lexiconName)
		if err != nil {
			return nil, fmt.Errorf("loading lexicon %q: %w", cfg.lexiconName, err)
		}
	}
	for _, ext := range cfg.extensions {
		lex = lex.Merge(ext)
	}

	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLexicon, err)
	}
	compiled, err := lex.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLexicon, err)
	}

	return &Normalizer{
		lex:    lex,
		engine: pipeline.NewNormalizer(compiled, cfg.logger),
		html:   pipeline.NewGoldmarkConverter(),
		assets: resolver,
		log:    cfg.logger,
	}, nil
}

// ParseLexicon decodes a lexicon from YAML. Unknown keys are rejected.
// The result is not validated until it is passed to New.
func ParseLexicon(data []byte) (*Lexicon, error) {
	lex, err := lexicon.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLexicon, err)
	}
	return lex, nil
}

// DefaultLexicon returns a copy of the built-in lexicon, suitable as a base
// for WithLexicon.
func DefaultLexicon() *Lexicon {
	lex, err := lexicon.Default()
	if err != nil {
		panic(fmt.Sprintf("mdnorm: built-in lexicon: %v", err))
	}
	return lex
}

// Lexicon returns a copy of the lexicon the Normalizer was built with,
// extensions included.
func (n *Normalizer) Lexicon() *Lexicon {
	return n.lex.Clone()
}

// Normalize runs the full pass. Call it once the text is complete.
func (n *Normalizer) Normalize(text string) (out string) {
	defer n.recoverTo(&out, text, pipeline.ModeFull)
	return n.engine.Normalize(text)
}

// NormalizeStreaming runs the streaming pass. It is safe on any prefix of
// the eventual text, including one that ends inside a code fence.
func (n *Normalizer) NormalizeStreaming(text string) (out string) {
	defer n.recoverTo(&out, text, pipeline.ModeStreaming)
	return n.engine.NormalizeStreaming(text)
}

// Rules lists the rule names applied by the full pass, or the streaming
// pass when streaming is true, in order.
func (n *Normalizer) Rules(streaming bool) []string {
	if streaming {
		return n.engine.Rules(pipeline.ModeStreaming)
	}
	return n.engine.Rules(pipeline.ModeFull)
}

// recoverTo turns an internal panic into the line-normalized input.
func (n *Normalizer) recoverTo(out *string, text string, mode pipeline.Mode) {
	if r := recover(); r != nil {
		n.log.Error("normalization failed", "mode", mode.String(), "panic", fmt.Sprint(r))
		*out = pipeline.NormalizeLineEndings(text)
	}
}

var defaultNormalizer = sync.OnceValue(func() *Normalizer {
	n, err := New()
	if err != nil {
		panic(fmt.Sprintf("mdnorm: default normalizer: %v", err))
	}
	return n
})

// Default returns the shared Normalizer used by the package-level functions.
func Default() *Normalizer {
	return defaultNormalizer()
}

// Normalize runs the full pass with the built-in lexicon.
func Normalize(text string) string {
	return defaultNormalizer().Normalize(text)
}

// NormalizeStreaming runs the streaming pass with the built-in lexicon.
func NormalizeStreaming(text string) string {
	return defaultNormalizer().NormalizeStreaming(text)
}
