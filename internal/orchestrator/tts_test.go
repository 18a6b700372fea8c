package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyTTSLimit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     string
	}{
		{"zero means no limit", "довгий текст без обмеження", 0, "довгий текст без обмеження"},
		{"negative means no limit", "текст", -5, "текст"},
		{"under limit unchanged", "привіт", 10, "привіт"},
		{"exactly at limit unchanged", "привіт", 6, "привіт"},
		{"truncated with ellipsis", "привіт світ", 8, "привіт…"},
		{"trailing space trimmed before ellipsis", "один два три", 10, "один два…"},
		{"ascii text", "hello world", 7, "hello…"},
		{"limit of one", "привіт", 1, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyTTSLimit(tt.text, tt.maxChars)
			assert.Equal(t, tt.want, got)
			if tt.maxChars > 0 {
				assert.LessOrEqual(t, len([]rune(got)), tt.maxChars)
			}
		})
	}
}
