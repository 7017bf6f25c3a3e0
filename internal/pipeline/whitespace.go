package pipeline

import (
	"regexp"
	"strings"
)

var (
	trailingBlanks = regexp.MustCompile(`(?m)[ \t]+$`)
	threeNewlines  = regexp.MustCompile(`\n{3,}`)
	fourNewlines   = regexp.MustCompile(`\n{4,}`)
)

// StripTrailingBlanks removes spaces and tabs at the end of every line.
func StripTrailingBlanks(text string) string {
	return trailingBlanks.ReplaceAllString(text, "")
}

// CollapseBlankLines allows at most one blank line in a row.
func CollapseBlankLines(text string) string {
	return threeNewlines.ReplaceAllString(text, "\n\n")
}

// CollapseBlankLinesLoose allows at most two blank lines in a row, so a
// paragraph break still being typed does not make the output jump.
func CollapseBlankLinesLoose(text string) string {
	return fourNewlines.ReplaceAllString(text, "\n\n\n")
}

// Trim removes leading and trailing whitespace from the whole text.
func Trim(text string) string {
	return strings.TrimSpace(text)
}
