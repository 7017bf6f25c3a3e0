package main

import (
	"context"
	"fmt"
	"strings"

	mdnorm "github.com/alnah/go-mdnorm"
)

// runNormalizeCmd repairs stdin or a set of markdown files.
func runNormalizeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseNormalizeFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	n, cfg, envCfg, err := setupNormalizer(&flags.common, &flags.lexicon, env)
	if err != nil {
		return err
	}

	if readsStdin(inputs) {
		if flags.write {
			return fmt.Errorf("%w: --write needs file arguments", ErrUsage)
		}
		return normalizeStdin(n, flags, env)
	}

	outputDir := ""
	if !flags.write {
		outputDir = resolveOutputDir(flags.output, cfg.Output.DefaultDir)
	}

	files, err := discoverFiles(inputs, outputDir, flags.write)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	if err := validateOutputs(files); err != nil {
		return err
	}

	workers := resolveWorkers(flags.workers, envCfg)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", mdnorm.ResolvePoolSize(workers))
	}

	results := normalizeBatch(ctx, n, files, &batchParams{
		streaming: flags.streaming,
		workers:   workers,
		env:       env,
	})

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env.Stderr)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed: %w", summary.Failed, len(results), firstError(results))
	}
	return nil
}

// normalizeStdin reads stdin and writes to --output or stdout.
func normalizeStdin(n *mdnorm.Normalizer, flags *normalizeFlags, env *Environment) error {
	text, err := readInput(stdinName, env)
	if err != nil {
		return err
	}
	if flags.streaming {
		return writeOutput(flags.output, n.NormalizeStreaming(text), env)
	}
	return writeOutput(flags.output, n.Normalize(text), env)
}

// readsStdin reports whether the positional arguments select stdin.
func readsStdin(inputs []string) bool {
	return len(inputs) == 0 || (len(inputs) == 1 && inputs[0] == stdinName)
}
