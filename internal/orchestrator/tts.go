package orchestrator

import "strings"

const ellipsis = "…"

// ApplyTTSLimit enforces a maximum speech-text length in runes. maxChars of
// 0 means no limit. When truncation happens the text is cut to maxChars-1
// runes, trailing whitespace stripped, and a single ellipsis appended, so
// the result never exceeds maxChars.
func ApplyTTSLimit(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	truncated := strings.TrimRight(string(runes[:maxChars-1]), " \t\n\r")
	return truncated + ellipsis
}
