package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing and argument errors.
var ErrUsage = errors.New("invalid usage")

// delayUnset detects if --delay was explicitly set.
// Since 0 is a valid delay (no pause), we use a negative sentinel.
const delayUnset = time.Duration(-1)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// lexiconFlags selects the lexicon and asset directory.
type lexiconFlags struct {
	name      string
	assetPath string
}

// normalizeFlags holds flags for the normalize command.
type normalizeFlags struct {
	common    commonFlags
	lexicon   lexiconFlags
	output    string
	write     bool
	streaming bool
	workers   int
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common     commonFlags
	lexicon    lexiconFlags
	json       bool
	normalized bool
}

// streamFlags holds flags for the stream command.
type streamFlags struct {
	common    commonFlags
	lexicon   lexiconFlags
	chunk     int
	delay     time.Duration
	frames    bool
	term      bool
	termStyle string
	width     int
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common         commonFlags
	lexicon        lexiconFlags
	output         string
	format         string
	title          string
	style          string
	highlightStyle string
	termStyle      string
	width          int
	standalone     bool
}

// lexiconCmdFlags holds flags for the lexicon command.
type lexiconCmdFlags struct {
	common  commonFlags
	lexicon lexiconFlags
	output  string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common  commonFlags
	lexicon lexiconFlags
	json    bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log applied rules to stderr")
}

func addLexiconFlags(fs *flag.FlagSet, f *lexiconFlags) {
	fs.StringVar(&f.name, "lexicon", "", "lexicon name or YAML file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func addTermFlags(fs *flag.FlagSet, style *string, width *int) {
	fs.StringVar(style, "term-style", "", "terminal style: auto, dark, light, notty, ...")
	fs.IntVar(width, "width", 0, "terminal wrap column (default: 80)")
}

func newNormalizeFlagSet(f *normalizeFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.write, "write", false, "rewrite input files in place")
	fs.BoolVar(&f.streaming, "streaming", false, "apply the streaming pass only")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addLexiconFlags(fs, &f.lexicon)
	return fs
}

func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.BoolVar(&f.normalized, "normalized", false, "check the normalized text instead of the input")
	addCommonFlags(fs, &f.common)
	addLexiconFlags(fs, &f.lexicon)
	return fs
}

func newStreamFlagSet(f *streamFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("stream", flag.ContinueOnError)
	fs.IntVar(&f.chunk, "chunk", 0, "characters per update (default: 16)")
	fs.DurationVar(&f.delay, "delay", delayUnset, "pause between updates, e.g. 20ms")
	fs.BoolVar(&f.frames, "frames", false, "print every intermediate frame")
	fs.BoolVar(&f.term, "term", false, "redraw frames as styled terminal output")
	addTermFlags(fs, &f.termStyle, &f.width)
	addCommonFlags(fs, &f.common)
	addLexiconFlags(fs, &f.lexicon)
	return fs
}

func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: markdown, html, term")
	fs.StringVar(&f.title, "title", "", "HTML document title (default: file name)")
	fs.StringVar(&f.style, "style", "", "page style name for --standalone")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlighting style (default: github)")
	fs.BoolVar(&f.standalone, "standalone", false, "emit a full HTML page")
	addTermFlags(fs, &f.termStyle, &f.width)
	addCommonFlags(fs, &f.common)
	addLexiconFlags(fs, &f.lexicon)
	return fs
}

func newLexiconFlagSet(f *lexiconCmdFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("lexicon", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	addCommonFlags(fs, &f.common)
	addLexiconFlags(fs, &f.lexicon)
	return fs
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addCommonFlags(fs, &f.common)
	addLexiconFlags(fs, &f.lexicon)
	return fs
}

// parseFlagSet parses args with fs. -h prints usage to w and returns
// flag.ErrHelp; any other failure is wrapped in ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v (run 'mdnorm help %s')", ErrUsage, err, fs.Name())
	}
	return fs.Args(), nil
}

func parseNormalizeFlags(args []string, w io.Writer) (*normalizeFlags, []string, error) {
	f := &normalizeFlags{}
	rest, err := parseFlagSet(newNormalizeFlagSet(f), args, w, printNormalizeUsage)
	return f, rest, err
}

func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	rest, err := parseFlagSet(newCheckFlagSet(f), args, w, printCheckUsage)
	return f, rest, err
}

func parseStreamFlags(args []string, w io.Writer) (*streamFlags, []string, error) {
	f := &streamFlags{}
	rest, err := parseFlagSet(newStreamFlagSet(f), args, w, printStreamUsage)
	return f, rest, err
}

func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	rest, err := parseFlagSet(newRenderFlagSet(f), args, w, printRenderUsage)
	return f, rest, err
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	rest, err := parseFlagSet(newDoctorFlagSet(f), args, w, printDoctorUsage)
	return f, rest, err
}

func parseLexiconCmdFlags(args []string, w io.Writer) (*lexiconCmdFlags, []string, error) {
	f := &lexiconCmdFlags{}
	rest, err := parseFlagSet(newLexiconFlagSet(f), args, w, printLexiconCmdUsage)
	return f, rest, err
}
