package main

import (
	"errors"
	"os"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/config"
)

// Exit codes for the mdnorm CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, lexicon, or style
	ExitIO      = 3 // File not found, permission denied
	ExitIssues  = 4 // check found structural issues
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Issues reported by check (exit 4)
	if errors.Is(err, ErrIssuesFound) {
		return ExitIssues
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrAmbiguousOutput) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdnorm.ErrLexiconNotFound) ||
		errors.Is(err, mdnorm.ErrStyleNotFound) ||
		errors.Is(err, mdnorm.ErrInvalidLexicon) ||
		errors.Is(err, mdnorm.ErrInvalidAssetPath) ||
		errors.Is(err, mdnorm.ErrUnknownTermStyle) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
