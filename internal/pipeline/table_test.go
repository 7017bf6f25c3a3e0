package pipeline

import "testing"

func TestIsTableLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"| a | b |", true},
		{"a | b", true},
		{"|---|:---:|", true},
		{"---|---", true},
		{"| single", true},
		{"  | indented |", true},
		{"a | ", false},
		{"no pipes here", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsTableLine(tt.input); got != tt.want {
			t.Errorf("IsTableLine(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFenceTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "table between prose",
			input:    "Results:\nName | Score\n---|---\nA | 1\nDone.",
			expected: "Results:\n\nName | Score\n---|---\nA | 1\n\nDone.",
		},
		{
			name:     "table at start",
			input:    "| a | b |\n|---|---|\nafter",
			expected: "| a | b |\n|---|---|\n\nafter",
		},
		{
			name:     "table at end",
			input:    "before\n| a | b |\n|---|---|",
			expected: "before\n\n| a | b |\n|---|---|",
		},
		{
			name:     "already separated",
			input:    "before\n\n| a | b |\n|---|---|\n\nafter",
			expected: "before\n\n| a | b |\n|---|---|\n\nafter",
		},
		{
			name:     "no tables",
			input:    "just text",
			expected: "just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FenceTables(tt.input); got != tt.expected {
				t.Errorf("FenceTables(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
