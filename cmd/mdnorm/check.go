package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/hints"
)

// ErrIssuesFound is returned by check when a repairable issue remains.
var ErrIssuesFound = errors.New("structural issues found")

// checkReport lists the issues found in one input.
type checkReport struct {
	File   string         `json:"file"`
	Issues []mdnorm.Issue `json:"issues"`
}

// runCheckCmd diagnoses stdin or markdown files without modifying them.
// Unterminated fences are reported but only repairable issues fail the
// command.
func runCheckCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseCheckFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	n, _, _, err := setupNormalizer(&flags.common, &flags.lexicon, env)
	if err != nil {
		return err
	}

	diagnose := func(text string) []mdnorm.Issue {
		if flags.normalized {
			text = n.Normalize(text)
		}
		issues := mdnorm.Diagnose(text)
		if issues == nil {
			issues = []mdnorm.Issue{}
		}
		return issues
	}

	var reports []checkReport
	if readsStdin(inputs) {
		text, err := readInput(stdinName, env)
		if err != nil {
			return err
		}
		reports = append(reports, checkReport{File: "stdin", Issues: diagnose(text)})
	} else {
		files, err := discoverFiles(inputs, "", false)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, strings.Join(inputs, ", "))
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := readInput(f.InputPath, env)
			if err != nil {
				return err
			}
			reports = append(reports, checkReport{File: f.InputPath, Issues: diagnose(text)})
		}
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	} else {
		printCheckReports(env.Stdout, reports, flags.common.quiet)
	}

	structural, unterminated := countIssues(reports)
	if unterminated > 0 && !flags.common.quiet {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForUnterminatedFence(), "\n"))
	}
	if structural > 0 {
		return fmt.Errorf("%w: %d", ErrIssuesFound, structural)
	}
	return nil
}

// printCheckReports writes one "file:line: kind: excerpt" line per issue,
// and "OK file" for clean inputs unless quiet.
func printCheckReports(w io.Writer, reports []checkReport, quiet bool) {
	for _, r := range reports {
		if len(r.Issues) == 0 {
			if !quiet {
				fmt.Fprintf(w, "OK %s\n", r.File)
			}
			continue
		}
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "%s:%d: %s: %q\n", r.File, issue.Line, issue.Kind, issue.Excerpt)
		}
	}
}

// countIssues splits issues into repairable ones and unterminated fences.
func countIssues(reports []checkReport) (structural, unterminated int) {
	for _, r := range reports {
		for _, issue := range r.Issues {
			if issue.Structural() {
				structural++
			} else {
				unterminated++
			}
		}
	}
	return structural, unterminated
}
