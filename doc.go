// Package mdnorm repairs the block structure of markdown written by language
// models so that a standard CommonMark/GFM renderer displays it as intended.
//
// # Quick Start
//
// The package-level functions use the built-in lexicon:
//
//	fixed := mdnorm.Normalize("Policy updated. ## New Rules")
//	// "Policy updated.\n\n## New Rules"
//
// While a response is still arriving, call NormalizeStreaming on every
// cumulative update and Normalize once when the message is complete:
//
//	for text := range updates {
//	    render(mdnorm.NormalizeStreaming(text))
//	}
//	render(mdnorm.Normalize(final))
//
// Stream and Follow wrap that pattern.
//
// # What Gets Repaired
//
// Normalization is a fixed, ordered list of rewrite rules over the text
// outside fenced code blocks:
//
//  1. Code fences glued to prose are moved onto their own lines
//  2. \(...\) and \[...\] math, and bare (...) / [...] spans that look like
//     equations, become $...$ and $$...$$
//  3. Pipe tables get blank lines around them
//  4. Headings glued to a preceding sentence, or to their own body text,
//     are split into a heading line and a paragraph
//  5. Bullets, numbered items and blockquotes after sentence punctuation
//     start a new block
//  6. Blank lines are collapsed and trailing whitespace stripped
//
// Fenced code is never modified. Every entry point is total: invalid input
// or an internal failure yields the line-normalized input, never a panic.
//
// # Configuration
//
// Heuristic word lists (prose starters, content-start patterns, math
// indicators) are data, not code. Use New with options to change them:
//
//	n, err := mdnorm.New(
//	    mdnorm.WithLexiconExtension(&mdnorm.Lexicon{
//	        ProseStarters: []string{"Overall"},
//	    }),
//	    mdnorm.WithLogger(slog.Default()),
//	)
//
// Custom lexicons and page styles can be loaded from a directory:
//
//	assets/
//	├── lexicons/
//	│   └── legal.yaml
//	└── styles/
//	    └── report.css
//
// # Rendering
//
// RenderHTML, RenderDocument and RenderTerminal normalize first and then
// render with goldmark (GFM tables, chroma highlighting) or glamour.
package mdnorm
