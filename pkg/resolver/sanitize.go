package resolver

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxPromptSize is 4KB (conservative default).
const DefaultMaxPromptSize = 4096

var (
	ErrPromptTooLarge = errors.New("prompt exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("prompt contains invalid UTF-8 sequences")
)

// SanitizePrompt cleans user input by enforcing a size limit,
// validating UTF-8, and stripping control characters.
// A limit <= 0 selects DefaultMaxPromptSize.
func SanitizePrompt(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxPromptSize
	}
	// Reject, never truncate.
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrPromptTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Keep \n, \t and \r. Drop ESC, NULL, BEL and the rest.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
