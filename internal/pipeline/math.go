package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-mdnorm/internal/lexicon"
)

var (
	backslashDisplay = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
	backslashInline  = regexp.MustCompile(`(?s)\\\((.*?)\\\)`)

	// Innermost parenthesized span; edges trimmed by the pattern.
	parenSpan = regexp.MustCompile(`\(\s*([^()]+?)\s*\)`)

	// Spans already written in dollar notation.
	dollarSpan = regexp.MustCompile(`(?s)\$\$.*?\$\$|\$[^$\n]*?\$`)

	// Fallback shape: nothing but equation characters, plus an operator.
	equationChars = regexp.MustCompile(`^[a-zA-Z0-9\s+\-*/^=(){}\[\]\\.,]+$`)
	equationOp    = regexp.MustCompile(`[\^=]|[+\-*/]\s*[a-zA-Z]|[a-zA-Z]\s*[+\-*/]`)
)

// MathConverter rewrites LaTeX-style and bare bracket/paren formulas into
// dollar delimiters.
type MathConverter struct {
	indicators []*regexp.Regexp
	prose      []*regexp.Regexp
}

// NewMathConverter builds a converter from the lexicon's math indicators and
// prose-parenthetical patterns.
func NewMathConverter(lex *lexicon.Compiled) *MathConverter {
	return &MathConverter{indicators: lex.MathIndicators, prose: lex.ProseParentheticals}
}

// IsMath decides whether bracket or paren content is a formula.
func (m *MathConverter) IsMath(content string) bool {
	t := strings.TrimSpace(content)
	if utf8.RuneCountInString(t) < 2 {
		return false
	}
	if strings.HasPrefix(t, `\`) {
		return true
	}
	if lexicon.AnyMatch(m.indicators, t) {
		return true
	}
	return equationChars.MatchString(t) && equationOp.MatchString(t)
}

// IsProse reports whether paren content reads as a prose aside.
func (m *MathConverter) IsProse(content string) bool {
	return lexicon.AnyMatch(m.prose, strings.TrimSpace(content))
}

// Convert runs the four delimiter passes in order: \[…\], \(…\), bare
// display brackets, bare inline parens. Bare passes skip text already in
// dollar notation.
func (m *MathConverter) Convert(text string) string {
	if strings.Contains(text, `\[`) {
		text = replaceSubmatches(backslashDisplay, text, func(_ int, g []string) string {
			return "$$" + strings.TrimSpace(g[1]) + "$$"
		})
	}
	if strings.Contains(text, `\(`) {
		text = replaceSubmatches(backslashInline, text, func(_ int, g []string) string {
			return "$" + strings.TrimSpace(g[1]) + "$"
		})
	}
	if strings.Contains(text, "[") {
		text = outsideDollarSpans(text, m.convertBrackets)
	}
	if strings.Contains(text, "(") {
		text = outsideDollarSpans(text, m.convertParens)
	}
	return text
}

// outsideDollarSpans applies fn to every stretch of text between dollar
// spans. atStart and atEnd tell fn whether its segment touches the edges of
// the whole text.
func outsideDollarSpans(text string, fn func(seg string, atStart, atEnd bool) string) string {
	spans := dollarSpan.FindAllStringIndex(text, -1)
	if spans == nil {
		return fn(text, true, true)
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, sp := range spans {
		b.WriteString(fn(text[last:sp[0]], last == 0, false))
		b.WriteString(text[sp[0]:sp[1]])
		last = sp[1]
	}
	b.WriteString(fn(text[last:], last == 0, true))
	return b.String()
}

// convertBrackets turns "[ formula ]" into "$$formula$$". The opening
// bracket must start the text or follow whitespace; the closing one must end
// the text or be followed by whitespace or sentence punctuation, which keeps
// markdown links and footnote references out.
func (m *MathConverter) convertBrackets(s string, atStart, atEnd bool) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); {
		k := strings.IndexByte(s[i:], '[')
		if k < 0 {
			break
		}
		i += k

		if !spaceBefore(s, i, atStart) {
			i++
			continue
		}
		j := strings.IndexByte(s[i+1:], ']')
		if j <= 0 {
			i++
			continue
		}
		j += i + 1
		if !closesBracket(s, j+1, atEnd) {
			i++
			continue
		}

		if content := s[i+1 : j]; m.IsMath(content) {
			if b.Len() == 0 {
				b.Grow(len(s))
			}
			b.WriteString(s[last:i])
			b.WriteString("$$" + strings.TrimSpace(content) + "$$")
			last = j + 1
		}
		i = j + 1
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// convertParens turns "( formula )" into "$formula$" unless the content is
// a prose aside or the parens are a link destination.
func (m *MathConverter) convertParens(s string, _, _ bool) string {
	return replaceSubmatches(parenSpan, s, func(start int, g []string) string {
		if start > 0 && s[start-1] == ']' {
			return g[0]
		}
		if m.IsProse(g[1]) || !m.IsMath(g[1]) {
			return g[0]
		}
		return "$" + strings.TrimSpace(g[1]) + "$"
	})
}

func spaceBefore(s string, i int, atStart bool) bool {
	if i == 0 {
		return atStart
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsSpace(r)
}

func closesBracket(s string, i int, atEnd bool) bool {
	if i >= len(s) {
		return atEnd
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(r) || strings.ContainsRune(".,;:!?", r)
}
