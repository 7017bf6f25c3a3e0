package pipeline

import (
	"regexp"
	"strings"
)

// Inline heading markers: a "#" run that belongs at the start of a line but
// was emitted mid-paragraph.
var (
	headingAfterPunctuation = NewReplaceRule("heading-after-punctuation",
		`([.!?:;,])\s*(#{1,6})\s+`, "${1}\n\n${2} ")
	// A ">" only counts when it closes something; at line start it is a
	// blockquote marker and "> ## Title" is a quoted heading.
	headingAfterCloser = NewReplaceRule("heading-after-closer",
		`([)\]"']|[^\s>]>)\s*(#{1,6})\s+`, "${1}\n\n${2} ")
	headingAfterWord = NewReplaceRule("heading-after-word",
		`(\w)\s+(#{1,6})\s+([A-Z0-9])`, "${1}\n\n${2} ${3}")
	headingGlued = NewFuncRule("heading-glued", breakGluedHeadings)
)

var gluedHeading = regexp.MustCompile(`([^\s#])(#{1,6})([A-Z])`)

// breakGluedHeadings handles "text##Heading". A "#" inside a URL is a
// fragment, not a heading, and is left alone.
func breakGluedHeadings(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	return replaceSubmatches(gluedHeading, text, func(start int, g []string) string {
		if inURL(text, start) {
			return g[0]
		}
		return g[1] + "\n\n" + g[2] + " " + g[3]
	})
}

// inURL reports whether the token ending at i looks like a link target.
func inURL(text string, i int) bool {
	tokenStart := strings.LastIndexAny(text[:i+1], " \t\n(<") + 1
	token := text[tokenStart : i+1]
	return strings.Contains(token, "://") || strings.HasPrefix(token, "www.")
}

// Inline list and quote markers that follow the end of a sentence.
var (
	boldBulletAfterSentence = NewReplaceRule("bold-bullet-after-sentence",
		`([.!?:;])\s+(-\s+\*\*)`, "${1}\n\n${2}")
	bulletAfterSentence = NewReplaceRule("bullet-after-sentence",
		`([.!?])\s+(-\s+[A-Z])`, "${1}\n\n${2}")
	numberedAfterSentence = NewReplaceRule("numbered-after-sentence",
		`([.!?:;])\s+(\d+\.\s+[A-Z*])`, "${1}\n\n${2}")
	quoteAfterSentence = NewReplaceRule("quote-after-sentence",
		`([.!?])\s+(>\s+)`, "${1}\n\n${2}")

	// Streaming keeps only the two list rules that are safe on partial text.
	streamingBoldBullet = NewReplaceRule("bold-bullet-after-sentence",
		`([.!?])\s+(-\s+\*\*)`, "${1}\n\n${2}")
)

// inlineHeadingRules are the four heading-marker rules, in order.
func inlineHeadingRules() []Rule {
	return []Rule{headingAfterPunctuation, headingAfterCloser, headingAfterWord, headingGlued}
}

var headingStart = regexp.MustCompile(`^ {0,3}#{1,6}\s`)

// IsHeadingLine reports whether line is an ATX heading, indented by at most
// three spaces.
func IsHeadingLine(line string) bool {
	return headingStart.MatchString(line)
}

// IsolateHeadings surrounds every heading line with blank lines, except at
// the very start or end of the text.
func IsolateHeadings(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+8)
	for i, line := range lines {
		if !IsHeadingLine(line) {
			out = append(out, line)
			continue
		}
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		out = append(out, line)
		if i+1 < len(lines) && lines[i+1] != "" {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}
