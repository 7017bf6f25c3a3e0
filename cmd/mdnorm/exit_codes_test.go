package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Issues (exit 4)
		{"issues found", ErrIssuesFound, ExitIssues},
		{"wrapped issues found", fmt.Errorf("2 files: %w", ErrIssuesFound), ExitIssues},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"ambiguous output", ErrAmbiguousOutput, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"lexicon not found", mdnorm.ErrLexiconNotFound, ExitUsage},
		{"style not found", mdnorm.ErrStyleNotFound, ExitUsage},
		{"invalid lexicon", mdnorm.ErrInvalidLexicon, ExitUsage},
		{"invalid asset path", mdnorm.ErrInvalidAssetPath, ExitUsage},
		{"unknown term style", fmt.Errorf("%w: %w", mdnorm.ErrRender, mdnorm.ErrUnknownTermStyle), ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"render", mdnorm.ErrRender, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitIssues} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell reserved range", code)
		}
	}
}
