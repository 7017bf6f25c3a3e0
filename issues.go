package mdnorm

import "github.com/alnah/go-mdnorm/internal/pipeline"

// Issue is one structural problem found by Diagnose. Line is 1-based.
type Issue = pipeline.Issue

// IssueKind names the rule an Issue violates.
type IssueKind = pipeline.IssueKind

// Issue kinds reported by Diagnose.
const (
	IssueInlineHeadingPunctuation = pipeline.IssueInlineHeadingPunctuation
	IssueInlineHeadingWord        = pipeline.IssueInlineHeadingWord
	IssueGluedHeading             = pipeline.IssueGluedHeading
	IssueInlineBullet             = pipeline.IssueInlineBullet
	IssueTableNotSeparated        = pipeline.IssueTableNotSeparated
	IssueUnterminatedFence        = pipeline.IssueUnterminatedFence
)

// HasIssues reports whether text violates a rule Normalize repairs: an
// inline heading, an inline bullet, or a table glued to the line before it.
// It is a diagnostic for logging, not a precondition for Normalize.
func HasIssues(text string) (found bool) {
	defer func() {
		if recover() != nil {
			found = false
		}
	}()
	return pipeline.HasIssues(pipeline.NormalizeLineEndings(text))
}

// Diagnose lists every issue in text, ordered by line, including
// unterminated code fences which Normalize cannot repair.
func Diagnose(text string) (issues []Issue) {
	defer func() {
		if recover() != nil {
			issues = nil
		}
	}()
	return pipeline.Diagnose(pipeline.NormalizeLineEndings(text))
}
