package main

import (
	"fmt"
)

// runLexiconCmd prints the effective lexicon as YAML.
func runLexiconCmd(args []string, env *Environment) error {
	flags, rest, err := parseLexiconCmdFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: lexicon takes no arguments, got %q", ErrUsage, rest[0])
	}

	n, _, _, err := setupNormalizer(&flags.common, &flags.lexicon, env)
	if err != nil {
		return err
	}
	data, err := n.Lexicon().Marshal()
	if err != nil {
		return fmt.Errorf("encoding lexicon: %w", err)
	}

	if err := writeOutput(flags.output, string(data), env); err != nil {
		return err
	}
	if flags.output != "" && flags.output != stdinName && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", flags.output)
	}
	return nil
}
