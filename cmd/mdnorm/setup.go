package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/assets"
	"github.com/alnah/go-mdnorm/internal/config"
	"github.com/alnah/go-mdnorm/internal/fileutil"
	"github.com/alnah/go-mdnorm/internal/hints"
)

// Sentinel errors for CLI input and output.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdinName is the input argument that selects standard input.
const stdinName = "-"

// loadConfig resolves the effective configuration. The config file named
// by --config (or MDNORM_CONFIG) replaces env.Config; environment
// variables then fill fields the file left empty. Flags are merged by the
// caller.
func loadConfig(configFlag string, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				err = fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		if env.Config != nil {
			c := *env.Config
			cfg = &c
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// mergeLexiconFlags applies --lexicon and --asset-path (CLI wins).
func mergeLexiconFlags(f *lexiconFlags, cfg *config.Config) {
	if f.name != "" {
		cfg.Lexicon.Name = f.name
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// newLogger returns a debug-level text logger on w when verbose, else nil
// (the Normalizer default discards).
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// buildNormalizer creates a Normalizer from the lexicon and asset settings.
// A lexicon value containing a path separator is read as a YAML file and
// replaces the built-in lexicon; otherwise it names one in the assets.
func buildNormalizer(cfg *config.Config, verbose bool, env *Environment) (*mdnorm.Normalizer, error) {
	var opts []mdnorm.Option

	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdnorm.WithAssetPath(cfg.Assets.BasePath))
	}

	switch name := cfg.Lexicon.Name; {
	case fileutil.IsFilePath(name):
		data, err := os.ReadFile(name) // #nosec G304 -- user-provided lexicon path
		if err != nil {
			return nil, fmt.Errorf("%w: lexicon %s: %w", ErrReadInput, name, err)
		}
		lex, err := mdnorm.ParseLexicon(data)
		if err != nil {
			return nil, fmt.Errorf("lexicon %s: %w", name, err)
		}
		opts = append(opts, mdnorm.WithLexicon(lex))
	case name != "":
		opts = append(opts, mdnorm.WithLexiconName(name))
	}

	if !cfg.Lexicon.Extend.IsEmpty() {
		opts = append(opts, mdnorm.WithLexiconExtension(&cfg.Lexicon.Extend))
	}
	opts = append(opts, mdnorm.WithLogger(newLogger(verbose, env.Stderr)))

	n, err := mdnorm.New(opts...)
	if err != nil {
		return nil, withHint(err)
	}
	return n, nil
}

// setupNormalizer loads config, merges lexicon flags, and builds the
// Normalizer shared by every engine command.
func setupNormalizer(common *commonFlags, lex *lexiconFlags, env *Environment) (*mdnorm.Normalizer, *config.Config, *envConfig, error) {
	cfg, envCfg, err := loadConfig(common.config, env)
	if err != nil {
		return nil, nil, nil, err
	}
	mergeLexiconFlags(lex, cfg)

	n, err := buildNormalizer(cfg, common.verbose, env)
	if err != nil {
		return nil, nil, nil, err
	}
	return n, cfg, envCfg, nil
}

// withHint appends an actionable hint for errors users can fix themselves.
func withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, mdnorm.ErrLexiconNotFound):
		hint = hints.ForLexiconNotFound(assets.NewEmbeddedLoader().LexiconNames())
	case errors.Is(err, mdnorm.ErrStyleNotFound):
		hint = hints.ForStyleNotFound(assets.NewEmbeddedLoader().StyleNames())
	case errors.Is(err, mdnorm.ErrUnknownTermStyle):
		hint = hints.ForStyleNotFound(mdnorm.TermStyles())
	case errors.Is(err, mdnorm.ErrInvalidPattern):
		hint = hints.ForInvalidPattern()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// readInput reads a file, or stdin for "" and "-".
func readInput(path string, env *Environment) (string, error) {
	var data []byte
	var err error
	if path == "" || path == stdinName {
		data, err = io.ReadAll(env.Stdin)
		path = "stdin"
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided input path
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	return string(data), nil
}

// writeOutput writes text to path atomically, or to stdout when path is
// "" or "-". Missing parent directories are created.
func writeOutput(path, text string, env *Environment) error {
	if path == "" || path == stdinName {
		if _, err := io.WriteString(env.Stdout, text); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(path, []byte(text), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
