package mdnorm

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdnorm/internal/assets"
	"github.com/alnah/go-mdnorm/internal/pipeline"
)

// Rendering defaults.
const (
	DefaultHighlightStyle = pipeline.DefaultHighlightStyle
	DefaultPageStyle      = assets.DefaultStyleName
	DefaultTermStyle      = pipeline.DefaultTermStyle
	DefaultTermWidth      = pipeline.DefaultTermWidth
)

// DocumentOptions configures RenderDocument. Zero values use the defaults.
type DocumentOptions struct {
	Title          string
	Style          string // page style name from the asset path
	HighlightStyle string // chroma style name
}

// TermOptions configures RenderTerminal. Zero values use the defaults.
type TermOptions struct {
	Style string // glamour style name: auto, dark, light, notty, ...
	Width int    // word wrap column
}

// RenderHTML normalizes md and converts it to an HTML fragment.
func (n *Normalizer) RenderHTML(ctx context.Context, md string) (string, error) {
	out, err := n.html.ToHTML(ctx, n.Normalize(md))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out, nil
}

// RenderDocument normalizes md and returns a standalone HTML page with the
// page style and code highlighting stylesheet inlined.
func (n *Normalizer) RenderDocument(ctx context.Context, md string, opts DocumentOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = DefaultPageStyle
	}
	pageCSS, err := n.assets.LoadStyle(style)
	if err != nil {
		return "", fmt.Errorf("%w: loading style %q: %w", ErrRender, style, err)
	}

	highlight := opts.HighlightStyle
	if highlight == "" {
		highlight = DefaultHighlightStyle
	}
	highlightCSS, err := pipeline.HighlightCSS(highlight)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}

	fragment, err := n.RenderHTML(ctx, md)
	if err != nil {
		return "", err
	}
	return pipeline.Document(opts.Title, pageCSS, highlightCSS, fragment), nil
}

// RenderTerminal normalizes md and renders it as styled terminal text.
func (n *Normalizer) RenderTerminal(md string, opts TermOptions) (string, error) {
	r, err := pipeline.NewTermRenderer(opts.Style, opts.Width)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	out, err := r.Render(n.Normalize(md))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out, nil
}

// RenderFrame renders a Frame from Follow or Stream as terminal text. The
// frame is already normalized for its mode, so it is rendered as is.
func (n *Normalizer) RenderFrame(f Frame, opts TermOptions) (string, error) {
	r, err := pipeline.NewTermRenderer(opts.Style, opts.Width)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	out, err := r.Render(f.Text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out, nil
}

// RenderHTML renders with the built-in lexicon.
func RenderHTML(ctx context.Context, md string) (string, error) {
	return defaultNormalizer().RenderHTML(ctx, md)
}

// RenderDocument renders a standalone page with the built-in lexicon.
func RenderDocument(ctx context.Context, md string, opts DocumentOptions) (string, error) {
	return defaultNormalizer().RenderDocument(ctx, md, opts)
}

// RenderTerminal renders for a terminal with the built-in lexicon.
func RenderTerminal(md string, opts TermOptions) (string, error) {
	return defaultNormalizer().RenderTerminal(md, opts)
}

// TermStyles lists the style names accepted by TermOptions.Style.
func TermStyles() []string {
	return pipeline.TermStyles()
}

// HighlightStyles lists the style names accepted by
// DocumentOptions.HighlightStyle.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// RebaseLinks rewrites relative image and link targets in rendered HTML
// written for a document in srcDir so they still resolve from dstDir.
func RebaseLinks(htmlContent, srcDir, dstDir string) (string, error) {
	out, err := pipeline.RebaseLinks(htmlContent, srcDir, dstDir)
	if err != nil {
		return "", fmt.Errorf("%w: rebasing links: %w", ErrRender, err)
	}
	return out, nil
}
