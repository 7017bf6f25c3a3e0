package pipeline

import (
	"regexp"
	"strings"
)

var tableSeparator = regexp.MustCompile(`\|\s*:?-+:?\s*\|`)

// IsTableLine reports whether a line looks like a pipe-table row: it has a
// pipe and is a separator row, starts with a pipe, or splits into at least
// two non-empty cells.
func IsTableLine(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.Contains(t, "|") {
		return false
	}
	if tableSeparator.MatchString(t) || strings.HasPrefix(t, "|") {
		return true
	}
	cells := 0
	for _, cell := range strings.Split(t, "|") {
		if strings.TrimSpace(cell) != "" {
			cells++
		}
	}
	return cells >= 2
}

// FenceTables puts a blank line before and after every run of table lines
// that touches non-blank text.
func FenceTables(text string) string {
	if !strings.Contains(text, "|") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+4)
	inTable := false
	for i, line := range lines {
		isTable := IsTableLine(line)
		if isTable && !inTable && i > 0 && strings.TrimSpace(lines[i-1]) != "" {
			out = append(out, "")
		}
		if !isTable && inTable && strings.TrimSpace(line) != "" {
			out = append(out, "")
		}
		out = append(out, line)
		inTable = isTable
	}
	return strings.Join(out, "\n")
}
