package pipeline

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

const mixedDocument = "# Report Overview The following sections summarize results.\n" +
	"Intro. ## Details\n" +
	"| a | b |\n" +
	"|---|---|\n" +
	"| 1 | 2 |\n" +
	"After table text. - Item one\n" +
	"```js\n" +
	"console.log(1)\n" +
	"```"

const mixedDocumentNormalized = "# Report Overview\n\n" +
	"The following sections summarize results.\n" +
	"Intro.\n\n" +
	"## Details\n\n" +
	"| a | b |\n" +
	"|---|---|\n" +
	"| 1 | 2 |\n\n" +
	"After table text.\n\n" +
	"- Item one\n" +
	"```js\n" +
	"console.log(1)\n" +
	"```"

// fullPassCases double as the idempotence and diagnostics corpus.
var fullPassCases = []struct {
	name     string
	input    string
	expected string
}{
	{
		name:     "heading fused with body",
		input:    "## Security Protocols Based on the information provided, employees must follow the procedure.",
		expected: "## Security Protocols\n\nBased on the information provided, employees must follow the procedure.",
	},
	{
		name:     "indented heading fused with body",
		input:    "  ## Security Protocols Based on the information provided, employees must follow the procedure.",
		expected: "## Security Protocols\n\nBased on the information provided, employees must follow the procedure.",
	},
	{
		name:     "indented heading with table cell and bullet",
		input:    " ## New Rules Name | Score - **Bold** item here",
		expected: "## New Rules Name | Score\n\n- **Bold** item here",
	},
	{
		name:     "indented heading after text",
		input:    "Intro text\n   ### Next Steps Please review the attached plan carefully.",
		expected: "Intro text\n\n### Next Steps\n\nPlease review the attached plan carefully.",
	},
	{
		name:     "heading split until stable",
		input:    "## Overview Of The Process In The Company The team is great",
		expected: "## Overview Of\n\nThe Process\n\nIn The Company\n\nThe team is great",
	},
	{
		name:     "inline heading after punctuation",
		input:    "Policy updated. ## New Rules",
		expected: "Policy updated.\n\n## New Rules",
	},
	{
		name:     "table fencing",
		input:    "Results:\nName | Score\n---|---\nA | 1\nDone.",
		expected: "Results:\n\nName | Score\n---|---\nA | 1\n\nDone.",
	},
	{
		name:     "latex inline math",
		input:    `The area is \(x^2 + y^2 = z^2\) for a circle.`,
		expected: "The area is $x^2 + y^2 = z^2$ for a circle.",
	},
	{
		name:     "prose parenthetical preserved",
		input:    "Refer to the table (see above) for details.",
		expected: "Refer to the table (see above) for details.",
	},
	{
		name:     "code block integrity",
		input:    "Use `print(1)` then:```py\ndef f():\n  pass\n```more text",
		expected: "Use `print(1)` then:\n\n```py\ndef f():\n  pass\n```\n\nmore text",
	},
	{
		name:     "code interior never rewritten",
		input:    "Intro:\n```\nx = 1   \n\n\n\n# comment. ## not heading\n```",
		expected: "Intro:\n```\nx = 1   \n\n\n\n# comment. ## not heading\n```",
	},
	{
		name:     "bullets after sentence",
		input:    "Here are the steps. - First step - Second step",
		expected: "Here are the steps.\n\n- First step - Second step",
	},
	{
		name:     "blockquote after sentence",
		input:    "He said. > Quote here",
		expected: "He said.\n\n> Quote here",
	},
	{
		name:     "heading isolation",
		input:    "Intro text\n## Title\nBody text",
		expected: "Intro text\n\n## Title\n\nBody text",
	},
	{
		name:     "whitespace cleanup",
		input:    "\n\na  \r\nb\n\n\n\nc  \n",
		expected: "a\nb\n\nc",
	},
	{
		name:     "mixed document",
		input:    mixedDocument,
		expected: mixedDocumentNormalized,
	},
	{
		name:     "empty input",
		input:    "",
		expected: "",
	},
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	for _, tt := range fullPassCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := n.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q)\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	for _, tt := range fullPassCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			once := n.Normalize(tt.input)
			if twice := n.Normalize(once); twice != once {
				t.Errorf("Normalize not idempotent:\n once: %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestNormalizer_OutputHasNoIssues(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	for _, tt := range fullPassCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := n.Normalize(tt.input)
			if HasIssues(out) {
				t.Errorf("HasIssues(Normalize(%q)) = true: %+v", tt.input, Diagnose(out))
			}
		})
	}
}

func TestNormalizer_CodeBlocksPreserved(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	blocks := []string{
		"```py\ndef f():\n  pass\n```",
		"```\n| a | b |\nText. ## Heading\n\\(x\\) (a+b)\n```",
		"```md\n# Title The rest\n\n\n\n- item. - Item\n```",
	}
	for _, block := range blocks {
		input := "Before: " + block + " after. ## Next"
		out := n.Normalize(input)
		if !strings.Contains(out, block) {
			t.Errorf("Normalize(%q) = %q, code block altered", input, out)
		}
	}
}

func TestNormalizer_NormalizeStreaming(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "open fence left alone",
			input:    "Here is code:\n```python\ndef f(",
			expected: "Here is code:\n```python\ndef f(",
		},
		{
			name:     "open fence only gets fence placement",
			input:    "Here is code:```python def f(x): ## not a heading",
			expected: "Here is code:\n\n```python\ndef f(x): ## not a heading",
		},
		{
			name:     "inline heading",
			input:    "Policy updated. ## New Rules",
			expected: "Policy updated.\n\n## New Rules",
		},
		{
			name:     "no trim",
			input:    "Hello world ",
			expected: "Hello world ",
		},
		{
			name:     "looser blank line collapse",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\n\nb",
		},
		{
			name:     "blockquotes not broken",
			input:    "He said. > Quote here",
			expected: "He said. > Quote here",
		},
		{
			name:     "plain bullets not broken",
			input:    "Steps. - First",
			expected: "Steps. - First",
		},
		{
			name:     "bold bullets broken",
			input:    "Steps. - **First**",
			expected: "Steps.\n\n- **First**",
		},
		{
			name:     "closed code protected",
			input:    "```go\nx := 1. ## y\n```\nDone. ## Next",
			expected: "```go\nx := 1. ## y\n```\nDone.\n\n## Next",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := n.NormalizeStreaming(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeStreaming(%q)\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Every prefix of a message must be safe to normalize, and once the
// message is complete the full pass gives the final form.
func TestNormalizer_StreamingPrefixes(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	message := "Intro. ## Setup\nRun this:\n```sh\nmake build. ## not heading\n```\nThen check (see above)."
	for i := 0; i <= len(message); i++ {
		prefix := message[:i]
		out := n.NormalizeStreaming(prefix)
		if !HasOpenFence(prefix) {
			continue
		}
		code := prefix[strings.Index(prefix, "```"):]
		if !strings.HasSuffix(out, code) {
			t.Fatalf("NormalizeStreaming(%q) = %q, open code block rewritten", prefix, out)
		}
	}

	want := "Intro.\n\n## Setup\n\nRun this:\n```sh\nmake build. ## not heading\n```\nThen check (see above)."
	if got := n.Normalize(message); got != want {
		t.Errorf("Normalize(message)\n got: %q\nwant: %q", got, want)
	}
}

func TestNormalizer_Run(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)
	input := "a\n\n\n\nb "

	if got := n.Run(input, ModeFull); got != "a\n\nb" {
		t.Errorf("Run(ModeFull) = %q", got)
	}
	if got := n.Run(input, ModeStreaming); got != "a\n\n\nb " {
		t.Errorf("Run(ModeStreaming) = %q", got)
	}
}

func TestNormalizer_Rules(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t)

	full := n.Rules(ModeFull)
	if !slices.Contains(full, "quote-after-sentence") || !slices.Contains(full, "heading-isolation") {
		t.Errorf("Rules(ModeFull) = %v", full)
	}
	streaming := n.Rules(ModeStreaming)
	if slices.Contains(streaming, "quote-after-sentence") || slices.Contains(streaming, "strip-trailing-blanks") {
		t.Errorf("Rules(ModeStreaming) = %v, want no blockquote or trailing-blank rules", streaming)
	}
	if full[0] != "math-delimiters" || full[1] != "table-fencing" {
		t.Errorf("Rules(ModeFull) starts with %v, want math then tables", full[:2])
	}
}

func TestNormalizer_LogsAppliedRules(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	n := NewNormalizer(defaultCompiled(t), log)

	n.Normalize("Policy updated. ## New Rules")

	out := buf.String()
	if !strings.Contains(out, "rule=heading-after-punctuation") {
		t.Errorf("log missing applied rule: %s", out)
	}
	if strings.Contains(out, "rule=table-fencing") {
		t.Errorf("log reports a rule that changed nothing: %s", out)
	}
}
