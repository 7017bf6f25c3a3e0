package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  normalize   Repair markdown written by a language model")
	fmt.Fprintln(w, "  check       Report structural issues without changing anything")
	fmt.Fprintln(w, "  stream      Replay a document as a token stream, normalizing each frame")
	fmt.Fprintln(w, "  render      Normalize and render as markdown, HTML, or terminal text")
	fmt.Fprintln(w, "  lexicon     Print the effective lexicon as YAML")
	fmt.Fprintln(w, "  doctor      Check configuration, lexicon, and assets")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'mdnorm <file.md>' is shorthand for 'mdnorm normalize <file.md>'.")
	fmt.Fprintln(w, "Run 'mdnorm help <command>' for details on a specific command.")
}

// printLexiconUsage prints the flag block shared by the engine commands.
func printLexiconUsage(w io.Writer) {
	fmt.Fprintln(w, "Lexicon:")
	fmt.Fprintln(w, "      --lexicon <s>         Lexicon name or YAML file path (default: built-in)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with lexicons/ and styles/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log applied rules to stderr")
}

// printNormalizeUsage prints usage for the normalize command.
func printNormalizeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm normalize [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repair headings, lists, tables, math, and code fences in markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown files or directories; '-' or none reads stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: stdout)")
	fmt.Fprintln(w, "      --write               Rewrite input files in place")
	fmt.Fprintln(w, "      --streaming           Apply the streaming pass only")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printLexiconUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm check [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report structural issues. Exits with status 4 when any are found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w, "      --normalized          Check the normalized text instead of the input")
	fmt.Fprintln(w)
	printLexiconUsage(w)
}

// printStreamUsage prints usage for the stream command.
func printStreamUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm stream [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Feed a document in chunks, normalizing each partial frame with the")
	fmt.Fprintln(w, "streaming pass and the completed text with the full pass.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --chunk <n>           Characters per update (default: 16)")
	fmt.Fprintln(w, "      --delay <d>           Pause between updates, e.g. 20ms")
	fmt.Fprintln(w, "      --frames              Print every intermediate frame")
	fmt.Fprintln(w, "      --term                Redraw frames as styled terminal output")
	fmt.Fprintln(w, "      --term-style <s>      Terminal style: auto, dark, light, notty, ...")
	fmt.Fprintln(w, "      --width <n>           Terminal wrap column (default: 80)")
	fmt.Fprintln(w)
	printLexiconUsage(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm render [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize markdown, then render it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: markdown, html, term")
	fmt.Fprintln(w, "      --standalone          Emit a full HTML page with inlined CSS")
	fmt.Fprintln(w, "      --title <s>           HTML document title (default: file name)")
	fmt.Fprintln(w, "      --style <s>           Page style from <asset-path>/styles")
	fmt.Fprintln(w, "      --highlight-style <s> Code highlighting style (default: github)")
	fmt.Fprintln(w, "      --term-style <s>      Terminal style: auto, dark, light, notty, ...")
	fmt.Fprintln(w, "      --width <n>           Terminal wrap column (default: 80)")
	fmt.Fprintln(w)
	printLexiconUsage(w)
}

// printLexiconCmdUsage prints usage for the lexicon command.
func printLexiconCmdUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm lexicon [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the lexicon the other commands would use, after config extensions")
	fmt.Fprintln(w, "are merged. Save it under <assets>/lexicons/<name>.yaml to customize it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <file>       Output file (default: stdout)")
	fmt.Fprintln(w)
	printLexiconUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load the configuration and lexicon, list assets, and report problems.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printLexiconUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "normalize":
		printNormalizeUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "stream":
		printStreamUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "lexicon":
		printLexiconCmdUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdnorm version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdnorm help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
