package ai

import "testing"

func TestUnwrapModelJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "CleanJSON",
			input:    `{"text": "hello"}`,
			expected: `{"text": "hello"}`,
		},
		{
			name:     "CleanJSONWithWhitespace",
			input:    "\n  {\"text\": \"hello\"}  \n",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "FencedWithLanguageTag",
			input:    "```json\n{\"text\": \"hello\"}\n```",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "FencedWithoutLanguageTag",
			input:    "```\n{\"text\": \"hello\"}\n```",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "FencedSingleLine",
			input:    "```{\"text\": \"hello\"}```",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "FencedWithSurroundingWhitespace",
			input:    "  ```json\n{\n  \"text\": \"hello\"\n}\n```  ",
			expected: "{\n  \"text\": \"hello\"\n}",
		},
		{
			name:     "MissingClosingFence",
			input:    "```json\n{\"text\": \"hello\"}",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "EmptyObject",
			input:    "{}",
			expected: "{}",
		},
		{
			name:     "EmptyInput",
			input:    "",
			expected: "",
		},
		{
			name:     "NonJSONPassthrough",
			input:    "the model said something else",
			expected: "the model said something else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnwrapModelJSON(tt.input)
			if got != tt.expected {
				t.Errorf("UnwrapModelJSON(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
