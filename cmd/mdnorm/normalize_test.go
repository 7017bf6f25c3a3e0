package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunNormalizeCmd_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name:  "full pass",
			args:  []string{"normalize"},
			stdin: "Policy updated. ## New Rules",
			want:  "Policy updated.\n\n## New Rules",
		},
		{
			name:  "dash reads stdin",
			args:  []string{"normalize", "-"},
			stdin: `The area is \(x^2 + y^2 = z^2\) for a circle.`,
			want:  "The area is $x^2 + y^2 = z^2$ for a circle.",
		},
		{
			name:  "streaming pass keeps open fence",
			args:  []string{"normalize", "--streaming"},
			stdin: "Here:\n```go\nx := 1",
			want:  "```go\nx := 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := runCLI(t, tt.stdin, tt.args...)
			if code != ExitSuccess {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.want)
			}
		})
	}
}

func TestRunNormalizeCmd_StdinToFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "clean.md")
	code, _, stderr := runCLI(t, "Policy updated. ## New Rules", "normalize", "-o", out)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Policy updated.\n\n## New Rules" {
		t.Errorf("file = %q", got)
	}
}

func TestRunNormalizeCmd_Batch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.md"), "Policy updated. ## New Rules")
	writeTestFile(t, filepath.Join(dir, "sub", "b.md"), "## Title\n\nBody.")
	writeTestFile(t, filepath.Join(dir, "skip.txt"), "Policy updated. ## New Rules")
	out := filepath.Join(t.TempDir(), "out")

	code, _, stderr := runCLI(t, "", "normalize", "-w", "2", "-o", out, dir)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	got, err := os.ReadFile(filepath.Join(out, "a.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Policy updated.\n\n## New Rules" {
		t.Errorf("a.md = %q", got)
	}
	if _, err := os.Stat(filepath.Join(out, "sub", "b.md")); err != nil {
		t.Errorf("sub/b.md not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "skip.txt")); !os.IsNotExist(err) {
		t.Errorf("skip.txt should not be written, stat error = %v", err)
	}
	if !strings.Contains(stderr, "2 succeeded, 0 failed, 1 changed") {
		t.Errorf("stderr = %q, want summary", stderr)
	}
}

func TestRunNormalizeCmd_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changed := filepath.Join(dir, "a.md")
	clean := filepath.Join(dir, "b.md")
	writeTestFile(t, changed, "Policy updated. ## New Rules")
	writeTestFile(t, clean, "## Title\n\nBody.")

	code, _, stderr := runCLI(t, "", "normalize", "--write", changed, clean)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	got, err := os.ReadFile(changed)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Policy updated.\n\n## New Rules" {
		t.Errorf("a.md = %q", got)
	}
	if !strings.Contains(stderr, "Normalized "+changed) {
		t.Errorf("stderr = %q, want Normalized line", stderr)
	}
	if !strings.Contains(stderr, "Unchanged "+clean) {
		t.Errorf("stderr = %q, want Unchanged line", stderr)
	}
}

func TestRunNormalizeCmd_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	writeTestFile(t, a, "x")
	writeTestFile(t, b, "y")
	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.Mkdir(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"several files to stdout", []string{"normalize", a, b}, ExitUsage, "--output"},
		{"write with stdin", []string{"normalize", "--write"}, ExitUsage, "--write needs file arguments"},
		{"missing file", []string{"normalize", filepath.Join(dir, "missing.md")}, ExitIO, "missing.md"},
		{"empty directory", []string{"normalize", empty}, ExitIO, "no markdown files"},
		{"unknown lexicon", []string{"normalize", "--lexicon", "nope", a}, ExitUsage, "hint: available: default"},
		{"missing asset path", []string{"normalize", "--asset-path", filepath.Join(dir, "nope"), a}, ExitUsage, "invalid asset path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, _, stderr := runCLI(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestReadsStdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		inputs []string
		want   bool
	}{
		{nil, true},
		{[]string{"-"}, true},
		{[]string{"a.md"}, false},
		{[]string{"-", "a.md"}, false},
	}

	for _, tt := range tests {
		if got := readsStdin(tt.inputs); got != tt.want {
			t.Errorf("readsStdin(%v) = %v, want %v", tt.inputs, got, tt.want)
		}
	}
}
