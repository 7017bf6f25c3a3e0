package lexicon

import (
	"fmt"
	"regexp"
	"strings"
)

// Starter is a compiled prose-starter word.
type Starter struct {
	Word string
	re   *regexp.Regexp
}

// Offsets returns the byte offset of every occurrence of the word that is
// preceded and followed by whitespace, left to right.
func (s Starter) Offsets(text string) []int {
	matches := s.re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}
	offsets := make([]int, len(matches))
	for i, m := range matches {
		offsets[i] = m[2]
	}
	return offsets
}

// Compiled is a lexicon ready for matching. It is immutable and safe for
// concurrent use.
type Compiled struct {
	Starters            []Starter
	ContentStarts       []*regexp.Regexp
	MathIndicators      []*regexp.Regexp
	ProseParentheticals []*regexp.Regexp

	stopWords map[string]struct{}
}

// Compile validates l and compiles every pattern.
func (l *Lexicon) Compile() (*Compiled, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	c := &Compiled{
		Starters:  make([]Starter, 0, len(l.ProseStarters)),
		stopWords: make(map[string]struct{}, len(l.HeadingStopWords)),
	}
	for _, w := range l.ProseStarters {
		c.Starters = append(c.Starters, Starter{
			Word: w,
			re:   regexp.MustCompile(`\s(` + regexp.QuoteMeta(w) + `\s)`),
		})
	}
	for _, w := range l.HeadingStopWords {
		c.stopWords[strings.ToLower(w)] = struct{}{}
	}

	var err error
	if c.ContentStarts, err = compileAll("contentStarts", l.ContentStarts); err != nil {
		return nil, err
	}
	if c.MathIndicators, err = compileAll("mathIndicators", l.MathIndicators); err != nil {
		return nil, err
	}
	if c.ProseParentheticals, err = compileAll("proseParentheticals", l.ProseParentheticals); err != nil {
		return nil, err
	}
	return c, nil
}

// IsStopWord reports whether w may not end a heading. Case-insensitive.
func (c *Compiled) IsStopWord(w string) bool {
	_, ok := c.stopWords[strings.ToLower(w)]
	return ok
}

// AnyMatch reports whether any of res matches s.
func AnyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func compileAll(field string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		if p == "" {
			return nil, fmt.Errorf("%w: %s[%d] is empty", ErrInvalidPattern, field, i)
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d] %q: %v", ErrInvalidPattern, field, i, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
