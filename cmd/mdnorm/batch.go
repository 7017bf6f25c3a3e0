package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	mdnorm "github.com/alnah/go-mdnorm"
)

// NormalizeResult holds the outcome of a single file.
type NormalizeResult struct {
	InputPath  string
	OutputPath string
	Changed    bool
	Err        error
	Duration   time.Duration
}

// batchParams groups parameters shared across batch/file normalization.
type batchParams struct {
	streaming bool
	workers   int
	env       *Environment
}

// normalizeBatch processes files concurrently. The Normalizer is safe for
// concurrent use, so workers share it. Results keep the order of files.
func normalizeBatch(ctx context.Context, n *mdnorm.Normalizer, files []FileToNormalize, params *batchParams) []NormalizeResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := mdnorm.ResolvePoolSize(params.workers)
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]NormalizeResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = NormalizeResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = normalizeFile(n, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// normalizeFile processes a single file and returns the result.
// A file rewritten in place is left untouched when nothing changed.
func normalizeFile(n *mdnorm.Normalizer, f FileToNormalize, params *batchParams) NormalizeResult {
	start := params.env.Now()
	result := NormalizeResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := readInput(f.InputPath, params.env)
	if err != nil {
		result.Err = err
		result.Duration = params.env.Now().Sub(start)
		return result
	}

	var out string
	if params.streaming {
		out = n.NormalizeStreaming(content)
	} else {
		out = n.Normalize(content)
	}
	result.Changed = out != content

	if result.Changed || f.OutputPath != f.InputPath {
		result.Err = writeOutput(f.OutputPath, out, params.env)
	}

	result.Duration = params.env.Now().Sub(start)
	return result
}

// ResultSummary holds the count of succeeded, failed, and changed files.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Changed   int
}

// countResults tallies the batch.
func countResults(results []NormalizeResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Changed:
			summary.Succeeded++
			summary.Changed++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports per-file status on w. Files written to stdout get
// no status line. Returns the summary.
func printResults(results []NormalizeResult, quiet, verbose bool, w io.Writer) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet || r.OutputPath == "" {
			continue
		}

		switch {
		case verbose:
			fmt.Fprintf(w, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		case r.Changed:
			fmt.Fprintf(w, "Normalized %s\n", r.OutputPath)
		default:
			fmt.Fprintf(w, "Unchanged %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(w, "\n%d succeeded, %d failed, %d changed\n", summary.Succeeded, summary.Failed, summary.Changed)
	}

	return summary
}

// firstError returns the first failure in results, or nil.
func firstError(results []NormalizeResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
