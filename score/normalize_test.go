package score

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "1234ABC", "1234ABC"},
		{"inner spaces", "1234 ABC", "1234ABC"},
		{"separators", "AB-123.CD", "AB123CD"},
		{"newline from OCR", " 1234ABC\n", "1234ABC"},
		{"case preserved", "ab12", "ab12"},
		{"only noise", " -|. ", ""},
		{"empty string", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
