package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdnorm/internal/config"
)

// envPrefix starts every environment variable read by the CLI.
const envPrefix = "MDNORM_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDNORM_CONFIG: config file name or path
	Lexicon    string // MDNORM_LEXICON: lexicon name or YAML path
	AssetPath  string // MDNORM_ASSET_PATH: custom asset directory
	OutputDir  string // MDNORM_OUTPUT_DIR: default output directory
	PageStyle  string // MDNORM_STYLE: page style for standalone HTML
	TermStyle  string // MDNORM_TERM_STYLE: glamour style
	Width      int    // MDNORM_WIDTH: terminal wrap column
	Workers    int    // MDNORM_WORKERS: parallel workers
}

// knownEnvVars lists valid MDNORM_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDNORM_CONFIG":     true,
	"MDNORM_LEXICON":    true,
	"MDNORM_ASSET_PATH": true,
	"MDNORM_OUTPUT_DIR": true,
	"MDNORM_STYLE":      true,
	"MDNORM_TERM_STYLE": true,
	"MDNORM_WIDTH":      true,
	"MDNORM_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDNORM_CONFIG"),
		Lexicon:    os.Getenv("MDNORM_LEXICON"),
		AssetPath:  os.Getenv("MDNORM_ASSET_PATH"),
		OutputDir:  os.Getenv("MDNORM_OUTPUT_DIR"),
		PageStyle:  os.Getenv("MDNORM_STYLE"),
		TermStyle:  os.Getenv("MDNORM_TERM_STYLE"),
	}

	if width := os.Getenv("MDNORM_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil && w > 0 {
			cfg.Width = w
		}
	}

	if workers := os.Getenv("MDNORM_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDNORM_* variables.
// Helps catch typos like MDNORM_LEXICN instead of MDNORM_LEXICON.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Lexicon != "" && cfg.Lexicon.Name == "" {
		cfg.Lexicon.Name = env.Lexicon
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageStyle != "" && cfg.Render.PageStyle == "" {
		cfg.Render.PageStyle = env.PageStyle
	}
	if env.TermStyle != "" && cfg.Render.TermStyle == "" {
		cfg.Render.TermStyle = env.TermStyle
	}
	if env.Width > 0 && cfg.Render.Width == 0 {
		cfg.Render.Width = env.Width
	}
}

// resolveWorkers picks the worker count: flag, then MDNORM_WORKERS,
// then 0 (auto).
func resolveWorkers(flagValue int, env *envConfig) int {
	if flagValue != 0 {
		return flagValue
	}
	return env.Workers
}
