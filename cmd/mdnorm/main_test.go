package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, ExitUsage, "", "Usage: mdnorm"},
		{"unknown command", []string{"frobnicate"}, ExitUsage, "", `unknown command "frobnicate"`},
		{"version", []string{"version"}, ExitSuccess, "go-mdnorm " + Version, ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help for command", []string{"help", "check"}, ExitSuccess, "Usage: mdnorm check", ""},
		{"help unknown command", []string{"help", "nope"}, ExitSuccess, "", "Unknown command: nope"},
		{"flag help", []string{"normalize", "-h"}, ExitSuccess, "Usage: mdnorm normalize", ""},
		{"bad flag", []string{"normalize", "--bogus"}, ExitUsage, "", "invalid usage"},
		{"bad workers", []string{"normalize", "-w", "99"}, ExitUsage, "", "invalid worker count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := runCLI(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRun_MarkdownShorthand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.md")
	writeTestFile(t, path, "Policy updated. ## New Rules")

	code, stdout, stderr := runCLI(t, "", path)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout != "Policy updated.\n\n## New Rules" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"normalize", true},
		{"check", true},
		{"stream", true},
		{"render", true},
		{"doctor", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"doc.md", false},
		{"Normalize", false}, // case sensitive
	}

	for _, tt := range tests {
		if got := isCommand(tt.input); got != tt.want {
			t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLooksLikeInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"-", true},
		{"doc.md", true},
		{"DOC.MARKDOWN", true},
		{dir, true},
		{file, false},
		{"normalize", false},
	}

	for _, tt := range tests {
		if got := looksLikeInput(tt.input); got != tt.want {
			t.Errorf("looksLikeInput(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"normalize", "-v"}, true},
		{[]string{"render", "--verbose", "x.md"}, true},
		{[]string{"normalize", "x.md"}, false},
		{[]string{"normalize", "--", "-v"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}
