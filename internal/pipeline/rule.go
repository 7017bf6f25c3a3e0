package pipeline

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Rule is one rewrite step. Rules are pure functions of their input.
type Rule interface {
	Name() string
	Apply(text string) string
}

// ReplaceRule rewrites every match of a pattern with a regexp template.
type ReplaceRule struct {
	name     string
	pattern  *regexp.Regexp
	template string
}

// NewReplaceRule compiles pattern and panics if it is invalid. Built-in
// rules only; user-supplied patterns go through the lexicon.
func NewReplaceRule(name, pattern, template string) *ReplaceRule {
	return &ReplaceRule{name: name, pattern: regexp.MustCompile(pattern), template: template}
}

func (r *ReplaceRule) Name() string { return r.name }

func (r *ReplaceRule) Apply(text string) string {
	return r.pattern.ReplaceAllString(text, r.template)
}

// FuncRule adapts a plain function to Rule.
type FuncRule struct {
	name string
	fn   func(string) string
}

// NewFuncRule names fn as a rule.
func NewFuncRule(name string, fn func(string) string) FuncRule {
	return FuncRule{name: name, fn: fn}
}

func (r FuncRule) Name() string { return r.name }

func (r FuncRule) Apply(text string) string { return r.fn(text) }

// applyRules runs rules in order. Rules that changed the text are logged at
// debug level.
func applyRules(text string, rules []Rule, log *slog.Logger, mode Mode) string {
	debug := log.Enabled(context.Background(), slog.LevelDebug)
	for _, r := range rules {
		out := r.Apply(text)
		if debug && out != text {
			log.Debug("rule applied", "rule", r.Name(), "mode", mode.String(), "delta", len(out)-len(text))
		}
		text = out
	}
	return text
}

// replaceSubmatches calls fn with the submatches of every match of re and
// splices in its result. Unlike ReplaceAllString, the result is literal.
func replaceSubmatches(re *regexp.Regexp, s string, fn func(start int, groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range matches {
		b.WriteString(s[last:loc[0]])
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		b.WriteString(fn(loc[0], groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
