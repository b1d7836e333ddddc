package resolver

import (
	"strings"
	"testing"
)

func TestSanitizePrompt_SizeLimit(t *testing.T) {
	limit := DefaultMaxPromptSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Repeat("a", tt.inputSize)
			_, err := SanitizePrompt(input, 0)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SanitizePrompt() expected error for size %d, got nil", tt.inputSize)
				}
			} else {
				if err != nil {
					t.Errorf("SanitizePrompt() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestSanitizePrompt_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Buy milk tomorrow", "Buy milk tomorrow"},
		{"Safe Controls", "Line1\nLine2\tTabbed", "Line1\nLine2\tTabbed"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Bell", "Ding\x07", "Ding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePrompt(tt.input, 0)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizePrompt_CustomLimit(t *testing.T) {
	if _, err := SanitizePrompt("12345678901", 10); err == nil {
		t.Error("Expected error for input > 10")
	}
	if _, err := SanitizePrompt("12345", 10); err != nil {
		t.Error("Unexpected error for valid input")
	}
}

func TestSanitizePrompt_InvalidUTF8(t *testing.T) {
	input := "\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98"
	_, err := SanitizePrompt(input, 0)
	if err != ErrInvalidUTF8 {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}
