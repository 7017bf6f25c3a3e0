package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// Terminal rendering defaults.
const (
	DefaultTermStyle = styles.AutoStyle
	DefaultTermWidth = 80
)

var (
	ErrUnknownTermStyle = errors.New("unknown terminal style")
	ErrTermRender       = errors.New("terminal rendering failed")
)

// TermRenderer renders normalized markdown as styled terminal text.
type TermRenderer struct {
	r *glamour.TermRenderer
}

// NewTermRenderer builds a glamour renderer. width <= 0 uses
// DefaultTermWidth; an empty style uses DefaultTermStyle.
func NewTermRenderer(style string, width int) (*TermRenderer, error) {
	if style == "" {
		style = DefaultTermStyle
	}
	if width <= 0 {
		width = DefaultTermWidth
	}
	if !slices.Contains(TermStyles(), style) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTermStyle, style)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTermRender, err)
	}
	return &TermRenderer{r: r}, nil
}

// Render renders markdown.
func (t *TermRenderer) Render(markdown string) (string, error) {
	out, err := t.r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTermRender, err)
	}
	return out, nil
}

// TermStyles lists the accepted style names, sorted.
func TermStyles() []string {
	names := make([]string, 0, len(styles.DefaultStyles)+1)
	names = append(names, styles.AutoStyle)
	for name := range styles.DefaultStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
