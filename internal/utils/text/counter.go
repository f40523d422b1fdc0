// Package text provides utilities for text processing shared across the
// summarization providers, so character counting and truncation behave the
// same regardless of which AI backend is selected.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// It correctly handles multi-byte characters including Japanese, emoji, and
// other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")     // returns 5 (ASCII text)
//	CountRunes("こんにちは")  // returns 5 (Japanese text)
//	CountRunes("")          // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// TruncateRunes returns text shortened to at most max runes.
// Truncation is rune-aware so multi-byte characters are never split.
// A non-positive max yields the empty string.
func TruncateRunes(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
