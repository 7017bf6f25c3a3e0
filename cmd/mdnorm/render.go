package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/config"
	"github.com/alnah/go-mdnorm/internal/fileutil"
)

// formatExtensions maps render formats to output file extensions.
var formatExtensions = map[string]string{
	config.FormatMarkdown: "md",
	config.FormatHTML:     "html",
	config.FormatTerm:     "txt",
}

// runRenderCmd normalizes one input and renders it in the configured format.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseRenderFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(inputs) > 1 {
		return fmt.Errorf("%w: render takes at most one input, got %d", ErrUsage, len(inputs))
	}

	n, cfg, _, err := setupNormalizer(&flags.common, &flags.lexicon, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	input := stdinName
	if len(inputs) == 1 {
		input = inputs[0]
	}
	text, err := readInput(input, env)
	if err != nil {
		return err
	}

	out, err := renderText(ctx, n, text, cfg, input)
	if err != nil {
		return withHint(err)
	}

	outPath, err := resolveRenderOutput(flags.output, input, renderFormat(cfg))
	if err != nil {
		return err
	}
	if renderFormat(cfg) == config.FormatHTML && input != stdinName && outPath != "" {
		if out, err = mdnorm.RebaseLinks(out, filepath.Dir(input), filepath.Dir(outPath)); err != nil {
			return err
		}
	}
	if err := writeOutput(outPath, out, env); err != nil {
		return err
	}
	if outPath != "" && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", outPath)
	}
	return nil
}

// mergeRenderFlags applies render flags to cfg (CLI wins). Without
// --format, an --output ending in .html selects HTML.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	switch {
	case f.format != "":
		cfg.Render.Format = f.format
	case strings.EqualFold(filepath.Ext(f.output), ".html"):
		cfg.Render.Format = config.FormatHTML
	}
	if f.title != "" {
		cfg.Render.Title = f.title
	}
	if f.style != "" {
		cfg.Render.PageStyle = f.style
	}
	if f.highlightStyle != "" {
		cfg.Render.HighlightStyle = f.highlightStyle
	}
	if f.termStyle != "" {
		cfg.Render.TermStyle = f.termStyle
	}
	if f.width != 0 {
		cfg.Render.Width = f.width
	}
	if f.standalone {
		cfg.Render.Standalone = true
	}
}

// renderFormat returns the lower-cased format, markdown when unset.
func renderFormat(cfg *config.Config) string {
	format := strings.ToLower(cfg.Render.Format)
	if format == "" {
		return config.FormatMarkdown
	}
	return format
}

// renderText produces the output for the configured format.
func renderText(ctx context.Context, n *mdnorm.Normalizer, text string, cfg *config.Config, input string) (string, error) {
	switch renderFormat(cfg) {
	case config.FormatHTML:
		if !cfg.Render.Standalone {
			return n.RenderHTML(ctx, text)
		}
		return n.RenderDocument(ctx, text, mdnorm.DocumentOptions{
			Title:          documentTitle(cfg.Render.Title, input),
			Style:          cfg.Render.PageStyle,
			HighlightStyle: cfg.Render.HighlightStyle,
		})
	case config.FormatTerm:
		return n.RenderTerminal(text, mdnorm.TermOptions{
			Style: cfg.Render.TermStyle,
			Width: cfg.Render.Width,
		})
	default:
		return n.Normalize(text), nil
	}
}

// documentTitle returns title, or the input file name without extension.
// Stdin gets the renderer's default title.
func documentTitle(title, input string) string {
	if title != "" {
		return title
	}
	if input == "" || input == stdinName {
		return ""
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveRenderOutput maps --output to a file path. An existing directory
// receives <input name>.<format extension>; "" means stdout.
func resolveRenderOutput(output, input, format string) (string, error) {
	if output == "" {
		return "", nil
	}
	info, err := os.Stat(output)
	if err != nil || !info.IsDir() {
		return output, nil
	}

	name := "stdin"
	if input != stdinName {
		name = filepath.Base(input)
	}
	return fileutil.WithExtension(filepath.Join(output, name), formatExtensions[format])
}
