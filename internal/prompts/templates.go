// Package prompts builds the prompts forwarded to an external language
// model when the deterministic matcher delegates a request.
package prompts

import (
	"fmt"
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

const explainTemplate = "Стисло та зрозуміло поясни наступне українською мовою. " +
	"Не вигадуй фактів і дотримуйся тону для голосового озвучення.\n" +
	"Тема: %s"

const summarizeHeader = "Підсумуй наведені результати пошуку українською мовою, " +
	"не більше трьох речень, у тоні для голосового озвучення. Не вигадуй фактів.\n" +
	"Результати:\n"

// BuildExplainPrompt constructs the prompt for an open-ended explanatory
// question (llm_query).
func BuildExplainPrompt(topic string) string {
	return fmt.Sprintf(explainTemplate, topic)
}

// BuildSummarizePrompt constructs the prompt for condensing an existing
// result set (llm_summarize).
func BuildSummarizePrompt(results []models.ResultItem) string {
	var builder strings.Builder
	builder.WriteString(summarizeHeader)
	for _, item := range results {
		title := item.Title
		if title == "" {
			title = item.Name
		}
		summary := item.Snippet
		if summary == "" {
			summary = item.Summary
		}
		switch {
		case title == "":
			continue
		case summary == "":
			builder.WriteString(fmt.Sprintf("- %s\n", title))
		default:
			builder.WriteString(fmt.Sprintf("- %s: %s\n", title, summary))
		}
	}
	return builder.String()
}
