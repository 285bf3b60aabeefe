package score

import (
	"strings"
	"unicode"
)

// Normalize prepares a prediction for scoring.
// - Drops whitespace anywhere in the string
// - Drops punctuation and symbols (plate separators, OCR noise)
// - Keeps letters and digits in their original case
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(text))

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}
