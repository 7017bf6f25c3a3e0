package pipeline

import (
	"io"
	"log/slog"

	"github.com/alnah/go-mdnorm/internal/lexicon"
)

// Mode selects the pass list.
type Mode int

const (
	// ModeFull is for complete text.
	ModeFull Mode = iota
	// ModeStreaming is for a prefix of text that is still arriving.
	ModeStreaming
)

func (m Mode) String() string {
	if m == ModeStreaming {
		return "streaming"
	}
	return "full"
}

// Normalizer runs the full and streaming pass lists. It holds only compiled,
// read-only rules and is safe for concurrent use.
type Normalizer struct {
	full      []Rule
	streaming []Rule
	log       *slog.Logger
}

// NewNormalizer assembles both pass lists from a compiled lexicon. A nil
// logger discards.
func NewNormalizer(lex *lexicon.Compiled, log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	math := NewFuncRule("math-delimiters", NewMathConverter(lex).Convert)
	tables := NewFuncRule("table-fencing", FenceTables)
	split := NewFuncRule("heading-split", NewHeadingSplitter(lex).Split)

	full := []Rule{math, tables}
	full = append(full, inlineHeadingRules()...)
	full = append(full,
		split,
		boldBulletAfterSentence,
		bulletAfterSentence,
		numberedAfterSentence,
		quoteAfterSentence,
		NewFuncRule("heading-isolation", IsolateHeadings),
		NewFuncRule("strip-trailing-blanks", StripTrailingBlanks),
		NewFuncRule("collapse-blank-lines", CollapseBlankLines),
	)

	streaming := []Rule{math, tables}
	streaming = append(streaming, inlineHeadingRules()...)
	streaming = append(streaming,
		split,
		streamingBoldBullet,
		numberedAfterSentence,
		NewFuncRule("collapse-blank-lines-loose", CollapseBlankLinesLoose),
	)

	return &Normalizer{full: full, streaming: streaming, log: log}
}

// Normalize runs the full pass. Whitespace cleanup runs while code is still
// protected, so code blocks come back byte-for-byte; only the trims see the
// restored text. The input is trimmed first as well: the rules must see
// the same text a second run would.
func (n *Normalizer) Normalize(text string) string {
	text = Trim(NormalizeLineEndings(text))
	text = FixFences(text)
	protected, blocks := Protect(text)
	protected = applyRules(protected, n.full, n.log, ModeFull)
	return Trim(blocks.Restore(protected))
}

// NormalizeStreaming runs the streaming pass on a prefix of a message.
// While a fence is open only fence placement is repaired: anything else
// could rewrite code that is still arriving.
func (n *Normalizer) NormalizeStreaming(text string) string {
	text = NormalizeLineEndings(text)
	if HasOpenFence(text) {
		n.log.Debug("open fence, deferring", "mode", ModeStreaming.String(), "fences", CountFences(text))
		return FixFences(text)
	}
	protected, blocks := Protect(text)
	protected = applyRules(protected, n.streaming, n.log, ModeStreaming)
	return blocks.Restore(protected)
}

// Run dispatches on mode.
func (n *Normalizer) Run(text string, mode Mode) string {
	if mode == ModeStreaming {
		return n.NormalizeStreaming(text)
	}
	return n.Normalize(text)
}

// Rules returns the names of the rules in mode's pass list, in order.
func (n *Normalizer) Rules(mode Mode) []string {
	rules := n.full
	if mode == ModeStreaming {
		rules = n.streaming
	}
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name()
	}
	return names
}
