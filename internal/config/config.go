package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdnorm/internal/fileutil"
	"github.com/alnah/go-mdnorm/internal/lexicon"
	"github.com/alnah/go-mdnorm/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength    = 64   // lexicon and style names
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxTitleLength   = 200  // HTML document title
	MaxPatternLength = 512  // one lexicon entry
	MaxListLength    = 1000 // entries per lexicon list
)

// Render and stream bounds.
const (
	MinWidth     = 20
	MaxWidth     = 500
	MaxChunkSize = 1 << 16
	MaxDelay     = 10 * time.Second
)

// Render formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatTerm     = "term"
)

// configDirName is the directory under os.UserConfigDir searched for
// named configs.
const configDirName = "go-mdnorm"

// Config holds all configuration for the CLI.
type Config struct {
	Lexicon LexiconConfig `yaml:"lexicon"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Stream  StreamConfig  `yaml:"stream"`
}

// LexiconConfig selects the heuristic word lists.
type LexiconConfig struct {
	Name   string          `yaml:"name"`   // Lexicon in assets (empty = built-in "default")
	Extend lexicon.Lexicon `yaml:"extend"` // Entries merged on top of the named lexicon
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// RenderConfig defines how the render command presents output.
type RenderConfig struct {
	Format         string `yaml:"format"`         // "markdown", "html", "term" (default: "markdown")
	Title          string `yaml:"title"`          // HTML document title
	PageStyle      string `yaml:"pageStyle"`      // CSS in assets/styles (default: "default")
	HighlightStyle string `yaml:"highlightStyle"` // chroma style (default: "github")
	TermStyle      string `yaml:"termStyle"`      // glamour style (default: "auto")
	Width          int    `yaml:"width"`          // terminal wrap column (default: 80)
	Standalone     bool   `yaml:"standalone"`     // full HTML page instead of a fragment
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = stdout or same as source)
}

// StreamConfig controls the stream command's simulated token delivery.
type StreamConfig struct {
	ChunkSize int    `yaml:"chunkSize"` // bytes per update (default: 16)
	Delay     string `yaml:"delay"`     // pause between updates, e.g. "20ms"
}

// DelayDuration parses Delay. An empty Delay is zero.
func (s StreamConfig) DelayDuration() (time.Duration, error) {
	if s.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Delay)
	if err != nil {
		return 0, fmt.Errorf("%w: stream.delay %q: %v", ErrInvalidValue, s.Delay, err)
	}
	return d, nil
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("lexicon.name", c.Lexicon.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateLexiconExtension(&c.Lexicon.Extend); err != nil {
		return err
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	// Validate render fields
	switch strings.ToLower(c.Render.Format) {
	case "", FormatMarkdown, FormatHTML, FormatTerm:
		// valid
	default:
		return fmt.Errorf("%w: render.format %q (must be markdown, html, or term)", ErrInvalidValue, c.Render.Format)
	}
	if err := validateFieldLength("render.title", c.Render.Title, MaxTitleLength); err != nil {
		return err
	}
	for field, value := range map[string]string{
		"render.pageStyle":      c.Render.PageStyle,
		"render.highlightStyle": c.Render.HighlightStyle,
		"render.termStyle":      c.Render.TermStyle,
	} {
		if err := validateFieldLength(field, value, MaxNameLength); err != nil {
			return err
		}
	}
	if c.Render.Width != 0 && (c.Render.Width < MinWidth || c.Render.Width > MaxWidth) {
		return fmt.Errorf("%w: render.width must be between %d and %d, got %d", ErrInvalidValue, MinWidth, MaxWidth, c.Render.Width)
	}

	// Validate stream fields
	if c.Stream.ChunkSize < 0 || c.Stream.ChunkSize > MaxChunkSize {
		return fmt.Errorf("%w: stream.chunkSize must be between 0 and %d, got %d", ErrInvalidValue, MaxChunkSize, c.Stream.ChunkSize)
	}
	d, err := c.Stream.DelayDuration()
	if err != nil {
		return err
	}
	if d < 0 || d > MaxDelay {
		return fmt.Errorf("%w: stream.delay must be between 0 and %s, got %s", ErrInvalidValue, MaxDelay, d)
	}

	return nil
}

// validateLexiconExtension bounds list sizes and entry lengths. Whether the
// entries are valid words and patterns is checked when the lexicon compiles.
func validateLexiconExtension(ext *lexicon.Lexicon) error {
	for _, list := range []struct {
		field   string
		entries []string
	}{
		{"lexicon.extend.proseStarters", ext.ProseStarters},
		{"lexicon.extend.headingStopWords", ext.HeadingStopWords},
		{"lexicon.extend.contentStarts", ext.ContentStarts},
		{"lexicon.extend.mathIndicators", ext.MathIndicators},
		{"lexicon.extend.proseParentheticals", ext.ProseParentheticals},
	} {
		if len(list.entries) > MaxListLength {
			return fmt.Errorf("%w: %s has %d entries, max %d", ErrInvalidValue, list.field, len(list.entries), MaxListLength)
		}
		for i, e := range list.entries {
			if err := validateFieldLength(fmt.Sprintf("%s[%d]", list.field, i), e, MaxPatternLength); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that uses every built-in default.
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{Name: ""},
		Assets:  AssetsConfig{BasePath: ""},
		Render:  RenderConfig{Format: FormatMarkdown},
		Output:  OutputConfig{DefaultDir: ""},
		Stream:  StreamConfig{ChunkSize: 0, Delay: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order:
// the current directory, then ~/.config/go-mdnorm/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
