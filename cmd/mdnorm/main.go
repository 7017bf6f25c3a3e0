package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdnorm/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run dispatches args to a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	if !isCommand(cmd) && looksLikeInput(cmd) {
		// mdnorm notes.md is shorthand for mdnorm normalize notes.md
		cmd, rest = "normalize", args
	}

	var err error
	switch cmd {
	case "normalize":
		err = runNormalizeCmd(ctx, rest, env)
	case "check":
		err = runCheckCmd(ctx, rest, env)
	case "stream":
		err = runStreamCmd(ctx, rest, env)
	case "render":
		err = runRenderCmd(ctx, rest, env)
	case "lexicon":
		err = runLexiconCmd(rest, env)
	case "doctor":
		err = runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-mdnorm %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound), errors.Is(err, ErrDoctorFailed):
		// the report has already been printed
	default:
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// commands lists every command name accepted as the first argument.
var commands = []string{"normalize", "check", "stream", "render", "lexicon", "doctor", "completion", "version", "help"}

// isCommand reports whether arg is a known command name (case sensitive).
func isCommand(arg string) bool {
	for _, c := range commands {
		if arg == c {
			return true
		}
	}
	return false
}

// looksLikeInput reports whether arg can stand in for "normalize <arg>":
// stdin ("-"), a markdown file, or an existing directory.
func looksLikeInput(arg string) bool {
	if arg == "-" || fileutil.IsMarkdownFile(arg) {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}

// hasVerboseFlag scans raw args for -v or --verbose before any flag set
// has been parsed.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
