package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the value at maxLen
// runes. maxLen <= 0 means unbounded.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 {
		if runes := []rune(trimmed); len(runes) > maxLen {
			return string(runes[:maxLen])
		}
	}
	return trimmed
}
