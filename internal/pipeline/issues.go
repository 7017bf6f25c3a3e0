package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// IssueKind names a structural problem Diagnose can report.
type IssueKind string

const (
	IssueInlineHeadingPunctuation IssueKind = "inline-heading-punctuation"
	IssueInlineHeadingWord        IssueKind = "inline-heading-word"
	IssueGluedHeading             IssueKind = "glued-heading"
	IssueInlineBullet             IssueKind = "inline-bullet"
	IssueTableNotSeparated        IssueKind = "table-not-separated"
	IssueUnterminatedFence        IssueKind = "unterminated-fence"
)

// Issue is one problem found by Diagnose. Line is 1-based.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Line    int       `json:"line"`
	Excerpt string    `json:"excerpt"`
}

// Structural reports whether the issue is one Normalize repairs. An
// unterminated fence is reported but cannot be repaired.
func (i Issue) Structural() bool {
	return i.Kind != IssueUnterminatedFence
}

// Detection patterns use horizontal whitespace only, so a heading or bullet
// that already sits on its own line is not flagged.
var issuePatterns = []struct {
	kind IssueKind
	re   *regexp.Regexp
}{
	{IssueInlineHeadingPunctuation, regexp.MustCompile(`[.!?:;,][ \t]*#{1,6}[ \t]+`)},
	{IssueInlineHeadingWord, regexp.MustCompile(`\w[ \t]+#{1,6}[ \t]+[A-Z0-9]`)},
	{IssueGluedHeading, regexp.MustCompile(`[^\s#]#{1,6}[A-Z]`)},
	{IssueInlineBullet, regexp.MustCompile(`[.!?][ \t]+-[ \t]+`)},
}

const maxExcerpt = 60

// Diagnose lists structural problems in text, ordered by line. Complete
// code blocks are ignored.
func Diagnose(text string) []Issue {
	text = NormalizeLineEndings(text)
	masked := maskCode(text)
	lines := strings.Split(masked, "\n")
	starts := lineStarts(masked)

	var issues []Issue
	for _, p := range issuePatterns {
		for _, loc := range p.re.FindAllStringIndex(masked, -1) {
			ln := lineOf(starts, loc[0])
			if p.kind == IssueGluedHeading && inURL(masked, loc[0]) {
				continue
			}
			issues = append(issues, Issue{Kind: p.kind, Line: ln + 1, Excerpt: excerpt(lines[ln])})
		}
	}

	for i := 1; i < len(lines); i++ {
		prev := strings.TrimSpace(lines[i-1])
		if IsTableLine(lines[i]) && prev != "" && !IsTableLine(lines[i-1]) {
			issues = append(issues, Issue{Kind: IssueTableNotSeparated, Line: i + 1, Excerpt: excerpt(lines[i])})
		}
	}

	if HasOpenFence(text) {
		ln := lineOf(starts, strings.LastIndex(masked, fence))
		issues = append(issues, Issue{Kind: IssueUnterminatedFence, Line: ln + 1, Excerpt: excerpt(lines[ln])})
	}

	sort.SliceStable(issues, func(a, b int) bool { return issues[a].Line < issues[b].Line })
	return issues
}

// HasIssues reports whether text has any problem Normalize would repair.
func HasIssues(text string) bool {
	for _, is := range Diagnose(text) {
		if is.Structural() {
			return true
		}
	}
	return false
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf returns the 0-based line containing byte offset off.
func lineOf(starts []int, off int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > off }) - 1
}

func excerpt(line string) string {
	line = strings.TrimSpace(line)
	if runeLen(line) <= maxExcerpt {
		return line
	}
	return prefixRunes(line, maxExcerpt) + "…"
}
