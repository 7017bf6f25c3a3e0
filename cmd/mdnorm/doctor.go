package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/assets"
	"github.com/alnah/go-mdnorm/internal/config"
	"github.com/alnah/go-mdnorm/internal/fileutil"
)

// ErrDoctorFailed is returned when doctor reports at least one error.
var ErrDoctorFailed = errors.New("doctor found errors")

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo  `json:"config"`
	Lexicon  lexiconInfo `json:"lexicon"`
	Assets   assetsInfo  `json:"assets"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// configInfo describes where configuration came from.
type configInfo struct {
	Source string `json:"source"` // "defaults" or the --config value
	Loaded bool   `json:"loaded"`
}

// lexiconInfo describes the lexicon the engine commands would use.
type lexiconInfo struct {
	Name           string `json:"name"`
	Compiled       bool   `json:"compiled"`
	Rules          int    `json:"rules"`
	StreamingRules int    `json:"streaming_rules"`
}

// assetsInfo lists built-in assets and the custom directory state.
type assetsInfo struct {
	BasePath  string   `json:"base_path,omitempty"`
	Custom    bool     `json:"custom"`
	Lexicons  []string `json:"lexicons"`
	Styles    []string `json:"styles"`
	TermStyle string   `json:"term_style"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GOMAXPROCS int    `json:"gomaxprocs"`
	Workers    int    `json:"workers"`
	NoColor    bool   `json:"no_color"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command. Warnings do not fail it.
func runDoctorCmd(args []string, env *Environment) error {
	flags, _, err := parseDoctorFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	result := runDoctor(flags, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ErrDoctorFailed
	}
	return nil
}

// runDoctor performs all diagnostic checks.
func runDoctor(flags *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GOMAXPROCS: runtime.GOMAXPROCS(0),
			NoColor:    os.Getenv("NO_COLOR") != "",
		},
	}

	cfg := checkConfig(result, flags, env)
	checkLexicon(result, cfg, env)
	checkAssets(result, cfg)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads configuration the way the engine commands do. On
// failure the defaults are used so the remaining checks still run.
func checkConfig(result *doctorResult, flags *doctorFlags, env *Environment) *config.Config {
	result.Config.Source = "defaults"
	if flags.common.config != "" {
		result.Config.Source = flags.common.config
	}

	cfg, envCfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		cfg, envCfg = config.DefaultConfig(), loadEnvConfig()
	} else {
		result.Config.Loaded = true
	}
	mergeLexiconFlags(&flags.lexicon, cfg)

	result.Env.Workers = mdnorm.ResolvePoolSize(resolveWorkers(0, envCfg))
	return cfg
}

// checkLexicon builds a Normalizer, which loads, validates, and compiles
// the lexicon.
func checkLexicon(result *doctorResult, cfg *config.Config, env *Environment) {
	result.Lexicon.Name = cfg.Lexicon.Name
	if result.Lexicon.Name == "" {
		result.Lexicon.Name = assets.DefaultLexiconName
	}

	n, err := buildNormalizer(cfg, false, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Lexicon.Compiled = true
	result.Lexicon.Rules = len(n.Rules(false))
	result.Lexicon.StreamingRules = len(n.Rules(true))
}

// checkAssets verifies the asset directory, page style, and terminal style.
func checkAssets(result *doctorResult, cfg *config.Config) {
	result.Assets.BasePath = cfg.Assets.BasePath
	result.Assets.TermStyle = cfg.Render.TermStyle
	if result.Assets.TermStyle == "" {
		result.Assets.TermStyle = mdnorm.DefaultTermStyle
	}

	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Asset path: %v", err))
		return
	}
	result.Assets.Custom = resolver.HasCustomLoader()
	result.Assets.Lexicons = resolver.LexiconNames()
	result.Assets.Styles = assets.NewEmbeddedLoader().StyleNames()

	style := cfg.Render.PageStyle
	if style == "" {
		style = assets.DefaultStyleName
	}
	if _, err := resolver.LoadStyle(style); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Page style: %v", err))
	}

	if !slices.Contains(mdnorm.TermStyles(), result.Assets.TermStyle) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Terminal style %q is unknown (available: %s)",
				result.Assets.TermStyle, strings.Join(mdnorm.TermStyles(), ", ")))
	}
}

// checkSystem verifies that atomic writes work in the temp directory.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "mdnorm-doctor-test.md")
	if err := fileutil.WriteFileAtomic(testFile, []byte("test"), filePermissions); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdnorm doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Loaded {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Lexicon")
	if r.Lexicon.Compiled {
		fmt.Fprintf(w, "  [OK] %s: %d rules (%d streaming)\n", r.Lexicon.Name, r.Lexicon.Rules, r.Lexicon.StreamingRules)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s: not usable\n", r.Lexicon.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	if r.Assets.Custom {
		fmt.Fprintf(w, "  [OK] Custom directory: %s\n", r.Assets.BasePath)
	}
	fmt.Fprintf(w, "  [OK] Built-in lexicons: %s\n", strings.Join(r.Assets.Lexicons, ", "))
	fmt.Fprintf(w, "  [OK] Built-in page styles: %s\n", strings.Join(r.Assets.Styles, ", "))
	fmt.Fprintf(w, "  [OK] Terminal style: %s\n", r.Assets.TermStyle)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Workers: %d (GOMAXPROCS %d)\n", r.Env.Workers, r.Env.GOMAXPROCS)
	if r.Env.NoColor {
		fmt.Fprintln(w, "  [OK] NO_COLOR: set")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
