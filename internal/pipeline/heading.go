package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdnorm/internal/lexicon"
)

// Heading text limits, in characters.
const (
	minSplitLength   = 20 // shorter headings are never split
	minHeadingLength = 3
	maxHeadingLength = 60
	naturalBreakFrom = 80 // natural breaks only apply to longer headings
	minBreakContent  = 10
	minContentWords  = 3
)

var (
	headingLine = regexp.MustCompile(`^ {0,3}(#{1,6})\s+(.+)$`)
	colonBreak  = regexp.MustCompile(`^([^:]+):\s+([A-Z])`)
	dashBreak   = regexp.MustCompile(`^([^-]+)\s+-\s+([A-Z])`)
	clockTime   = regexp.MustCompile(`\d:\d`)
)

// HeadingSplitter separates body text that was fused onto a heading line,
// e.g. "## Security Protocols Based on the information provided, ...".
type HeadingSplitter struct {
	lex *lexicon.Compiled
}

// NewHeadingSplitter uses the lexicon's prose starters, stop words and
// content-start patterns.
func NewHeadingSplitter(lex *lexicon.Compiled) *HeadingSplitter {
	return &HeadingSplitter{lex: lex}
}

// Split rewrites every heading line whose text can be split as
// "<hashes> <heading>\n\n<content>". The kept heading is split again until
// nothing more comes off it, so a second run finds nothing to do. An indent
// of up to three spaces is dropped.
func (s *HeadingSplitter) Split(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	lines := strings.Split(text, "\n")
	changed := false
	for i, line := range lines {
		m := headingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		heading, rest := s.splitAll(m[2])
		if len(rest) == 0 {
			continue
		}
		lines[i] = m[1] + " " + heading + "\n\n" + strings.Join(rest, "\n\n")
		changed = true
	}
	if !changed {
		return text
	}
	return strings.Join(lines, "\n")
}

// splitAll splits text repeatedly. The content pieces come back in reading
// order.
func (s *HeadingSplitter) splitAll(text string) (string, []string) {
	var rest []string
	heading := text
	for {
		h, content, ok := s.SplitHeading(heading)
		if !ok || h == heading {
			return heading, rest
		}
		rest = append([]string{content}, rest...)
		heading = h
	}
}

// SplitHeading finds where heading text ends and body text begins. It tries
// the prose-starter dictionary, then the content-start patterns, then a
// natural break at a colon or spaced dash.
func (s *HeadingSplitter) SplitHeading(text string) (heading, content string, ok bool) {
	if runeLen(text) < minSplitLength {
		return "", "", false
	}
	if heading, content, ok = s.byStarter(text); ok {
		return heading, content, true
	}
	if heading, content, ok = s.byContentStart(text); ok {
		return heading, content, true
	}
	if runeLen(text) > naturalBreakFrom {
		return naturalBreak(text)
	}
	return "", "", false
}

// byStarter tries each starter in dictionary order, and each occurrence of
// it left to right.
func (s *HeadingSplitter) byStarter(text string) (string, string, bool) {
	for _, st := range s.lex.Starters {
		for _, at := range st.Offsets(text) {
			heading := strings.TrimSpace(text[:at])
			content := strings.TrimSpace(text[at:])
			if s.validStarterSplit(heading, content, st.Word) {
				return heading, content, true
			}
		}
	}
	return "", "", false
}

func (s *HeadingSplitter) validStarterSplit(heading, content, starter string) bool {
	if n := runeLen(heading); n < minHeadingLength || n > maxHeadingLength {
		return false
	}
	if len(strings.Fields(content)) < minContentWords {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(content), strings.ToLower(starter)) {
		return false
	}
	words := strings.Fields(heading)
	return !s.lex.IsStopWord(words[len(words)-1])
}

// byContentStart tries each pattern against the text following each word
// boundary, pattern by pattern.
func (s *HeadingSplitter) byContentStart(text string) (string, string, bool) {
	words := strings.Fields(text)
	for _, re := range s.lex.ContentStarts {
		for i := 1; i < len(words); i++ {
			content := strings.Join(words[i:], " ")
			if !re.MatchString(content) {
				continue
			}
			heading := strings.Join(words[:i], " ")
			if n := runeLen(heading); n >= minHeadingLength && n <= maxHeadingLength {
				return heading, content, true
			}
		}
	}
	return "", "", false
}

// naturalBreak looks in the first 80 characters for "Heading: Body" or
// "Heading - Body".
func naturalBreak(text string) (string, string, bool) {
	area := prefixRunes(text, naturalBreakFrom)

	if m := colonBreak.FindStringSubmatch(area); m != nil {
		head := m[1]
		if n := runeLen(head); n >= minHeadingLength && n <= maxHeadingLength && !clockTime.MatchString(head) {
			content := strings.TrimSpace(text[len(head)+1:])
			if runeLen(content) > minBreakContent {
				return strings.TrimSpace(head), content, true
			}
		}
	}

	if m := dashBreak.FindStringSubmatchIndex(area); m != nil {
		head := area[m[2]:m[3]]
		if n := runeLen(head); n >= minHeadingLength && n <= maxHeadingLength {
			content := strings.TrimSpace(text[m[4]:])
			if runeLen(content) > minBreakContent {
				return strings.TrimSpace(head), content, true
			}
		}
	}

	return "", "", false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// prefixRunes returns at most n leading runes of s.
func prefixRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
