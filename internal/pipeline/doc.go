// Package pipeline implements the markdown normalization engine.
//
// Normalization is an ordered list of rewrite rules applied to text in which
// every complete fenced code block has been swapped for a placeholder:
//
//	line endings → fence repair → protect code
//	    → math delimiters → table fencing → inline heading breaks
//	    → heading splitting → inline list breaks → heading isolation
//	    → whitespace cleanup → restore code
//
// The streaming pass is a shorter, more conservative list for text that is
// still being generated. Rules never see code, so code is returned
// byte-for-byte.
//
// The package also holds the two renderers that sit after normalization,
// goldmark for HTML and glamour for terminals, and RebaseLinks for HTML
// saved away from its source document.
package pipeline
