package mdnorm

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdnorm/internal/pipeline"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline heading after punctuation",
			input: "Policy updated. ## New Rules",
			want:  "Policy updated.\n\n## New Rules",
		},
		{
			name:  "heading split",
			input: "## Security Protocols Based on the information provided, employees must follow the procedure.",
			want:  "## Security Protocols\n\nBased on the information provided, employees must follow the procedure.",
		},
		{
			name:  "inline math",
			input: `The area is \(x^2 + y^2 = z^2\) for a circle.`,
			want:  "The area is $x^2 + y^2 = z^2$ for a circle.",
		},
		{
			name:  "prose parenthetical",
			input: "Please review the attached file (see above) before continuing.",
			want:  "Please review the attached file (see above) before continuing.",
		},
		{
			name:  "table fencing",
			input: "Results:\nName | Score\n---|---\nA | 1\nDone.",
			want:  "Results:\n\nName | Score\n---|---\nA | 1\n\nDone.",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "crlf",
			input: "a\r\nb",
			want:  "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_CodeBlockIntegrity(t *testing.T) {
	t.Parallel()

	input := "Use `print(1)` then:```py\ndef f():\n  pass\n```more text"
	got := Normalize(input)

	if !strings.Contains(got, "```py\ndef f():\n  pass\n```") {
		t.Errorf("Normalize() lost code block: %q", got)
	}
	if !strings.HasSuffix(got, "```\n\nmore text") {
		t.Errorf("Normalize() = %q, want \"more text\" on its own line after the fence", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Policy updated. ## New Rules",
		"Here are the steps. - First step - Second step",
		"Results:\nName | Score\n---|---\nA | 1\nDone.",
		"Use `print(1)` then:```py\ndef f():\n  pass\n```more text",
		"He said. > Quote here",
		"## Overview Of The Process In The Company The team is great",
		"## Security Protocols Based on the information provided, employees must follow the procedure.",
		"  ## Security Protocols Based on the information provided, employees must follow the procedure.",
		" ## New Rules Name | Score - **Bold** item here",
		"Intro text\n   ### Next Steps Please review the attached plan carefully.",
		"# Release Notes For the latest build The installer is smaller. ## Known Issues Some users report slow startup.",
		"The area is \\(x^2 + y^2 = z^2\\) for a circle. Summary: - **Fast** path - Slow path",
		"Intro:\n```\nx = 1\n\n\n# comment. ## not heading\n```\nAfter. ## Next Section Here are the results",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q:\nonce  %q\ntwice %q", in, once, twice)
		}
	}
}

func TestNormalizeStreaming(t *testing.T) {
	t.Parallel()

	t.Run("open fence", func(t *testing.T) {
		t.Parallel()

		input := "Here is code:\n```python\ndef f("
		if got := NormalizeStreaming(input); got != input {
			t.Errorf("NormalizeStreaming(%q) = %q, want unchanged", input, got)
		}
	})

	t.Run("inline heading", func(t *testing.T) {
		t.Parallel()

		got := NormalizeStreaming("Policy updated. ## New Rules")
		if got != "Policy updated.\n\n## New Rules" {
			t.Errorf("NormalizeStreaming() = %q", got)
		}
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	n, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(n.Rules(false)) == 0 || len(n.Rules(true)) == 0 {
		t.Error("Rules() is empty")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "unknown lexicon",
			opts:    []Option{WithLexiconName("nonexistent")},
			wantErr: ErrLexiconNotFound,
		},
		{
			name:    "invalid asset path",
			opts:    []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))},
			wantErr: ErrInvalidAssetPath,
		},
		{
			name:    "invalid word",
			opts:    []Option{WithLexicon(&Lexicon{ProseStarters: []string{"two words"}})},
			wantErr: ErrInvalidWord,
		},
		{
			name:    "invalid pattern",
			opts:    []Option{WithLexiconExtension(&Lexicon{ContentStarts: []string{`^(?=x)`}})},
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithLexiconExtension(t *testing.T) {
	t.Parallel()

	input := "## Quarterly Review Overall revenue grew strongly."

	if got := Normalize(input); got != input {
		t.Fatalf("Normalize(%q) = %q, want unchanged with the built-in lexicon", input, got)
	}

	n, err := New(WithLexiconExtension(&Lexicon{ProseStarters: []string{"Overall"}}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := "## Quarterly Review\n\nOverall revenue grew strongly."
	if got := n.Normalize(input); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
	}
}

func TestNormalizer_Lexicon(t *testing.T) {
	t.Parallel()

	n, err := New(WithLexiconExtension(&Lexicon{ProseStarters: []string{"Overall"}}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lex := n.Lexicon()
	starters := lex.ProseStarters
	if len(starters) == 0 || starters[len(starters)-1] != "Overall" {
		t.Fatalf("ProseStarters = %v, want the extension last", starters)
	}

	lex.ProseStarters[0] = "Changed"
	if n.Lexicon().ProseStarters[0] == "Changed" {
		t.Error("Lexicon() returned shared slices")
	}
}

func TestWithAssetPath_CustomLexicon(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "lexicons"), 0o750); err != nil {
		t.Fatal(err)
	}
	doc := "proseStarters: [Overall]\nheadingStopWords: [the]\n"
	if err := os.WriteFile(filepath.Join(dir, "lexicons", "tiny.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	n, err := New(WithAssetPath(dir), WithLexiconName("tiny"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Without the built-in starters the fused heading is left alone.
	input := "## Security Protocols Based on the information provided, employees must follow the procedure."
	if got := n.Normalize(input); got != input {
		t.Errorf("Normalize() = %q, want unchanged", got)
	}
	if got := n.Normalize("## Quarterly Review Overall revenue grew strongly."); !strings.Contains(got, "Review\n\nOverall") {
		t.Errorf("Normalize() = %q, want split before Overall", got)
	}
}

func TestWithLexicon_Copied(t *testing.T) {
	t.Parallel()

	lex := DefaultLexicon()
	opt := WithLexicon(lex)
	lex.ProseStarters = []string{"bad word"}

	if _, err := New(opt); err != nil {
		t.Errorf("New() error = %v, want lexicon copied at option time", err)
	}
}

func TestWithLexicon_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithLexicon(nil) did not panic")
		}
	}()
	WithLexicon(nil)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	n, err := New(WithLogger(log))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n.Normalize("Policy updated. ## New Rules")

	if !strings.Contains(buf.String(), "rule=") {
		t.Errorf("log output = %q, want rule activity", buf.String())
	}
}

func TestRecoverTo(t *testing.T) {
	t.Parallel()

	n := Default()
	got := func() (out string) {
		defer n.recoverTo(&out, "a\r\nb", pipeline.ModeFull)
		panic("boom")
	}()
	if got != "a\nb" {
		t.Errorf("recovered output = %q, want %q", got, "a\nb")
	}
}

func TestDefaultLexicon(t *testing.T) {
	t.Parallel()

	a := DefaultLexicon()
	a.ProseStarters = nil
	if b := DefaultLexicon(); len(b.ProseStarters) == 0 {
		t.Error("DefaultLexicon() shares state between calls")
	}
}

func TestParseLexicon(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		lex, err := ParseLexicon([]byte("proseStarters: [Overall]\n"))
		if err != nil {
			t.Fatalf("ParseLexicon() error = %v", err)
		}
		if len(lex.ProseStarters) != 1 || lex.ProseStarters[0] != "Overall" {
			t.Errorf("ProseStarters = %v, want [Overall]", lex.ProseStarters)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := ParseLexicon([]byte("proseStarter: [Overall]\n"))
		if !errors.Is(err, ErrInvalidLexicon) {
			t.Errorf("ParseLexicon() error = %v, want ErrInvalidLexicon", err)
		}
	})
}
