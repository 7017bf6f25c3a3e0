// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdnorm/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-mdnorm) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mdnorm") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for page or terminal style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForLexiconNotFound returns hints for lexicon not found errors.
func ForLexiconNotFound(available []string) string {
	var hints []string
	if len(available) > 0 {
		hints = append(hints, "available: "+strings.Join(available, ", "))
	}
	hints = append(hints, "custom lexicons go in <assets>/lexicons/<name>.yaml")
	return formatHints(hints)
}

// ForInvalidPattern returns a hint about the regular expression dialect.
func ForInvalidPattern() string {
	return format("patterns use Go RE2 syntax: no lookahead (?=...) or backreferences")
}

// ForUnterminatedFence returns a hint for check reports that include an
// unclosed code fence, which normalization leaves as is.
func ForUnterminatedFence() string {
	return format("close the code block with ``` on its own line; it is not repaired automatically")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
