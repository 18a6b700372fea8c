package orchestrator

import (
	"regexp"
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
	"github.com/voiceking/voiceking-orchestrator/internal/prompts"
)

var llmQueryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`поясни\s+(.+)`),
	regexp.MustCompile(`що таке\s+(.+)`),
	regexp.MustCompile(`розкажи\s+про\s+(.+)`),
}

func handleLLMSummarize(transcript string, req *models.Request) *IntentResult {
	if !strings.Contains(transcript, "узагальни") && !strings.Contains(transcript, "підсумуй") {
		return nil
	}

	if len(req.ResultSet) == 0 {
		return notFoundResult(
			"Немає результатів для узагальнення.",
			"Потрібні результати пошуку.",
			map[string]any{},
		)
	}

	return &IntentResult{
		Action: models.ActionLLMSummarize,
		Params: map[string]any{
			"source":        "web_search",
			"max_sentences": 3,
			"style":         "concise_voice_output",
			"context_keys":  []string{"result_set"},
		},
		Confidence: 0.8,
		Slots:      map[string]any{},
		TTS:        "Передаю результати для узагальнення.",
		Resolution: map[string]any{"llm_context": "result_set"},
	}
}

func handleLLMQuery(transcript string, req *models.Request) *IntentResult {
	for _, pattern := range llmQueryPatterns {
		match := pattern.FindStringSubmatch(transcript)
		if match == nil {
			continue
		}
		topic := strings.TrimSpace(match[1])
		return &IntentResult{
			Action:     models.ActionLLMQuery,
			Params:     map[string]any{"prompt": prompts.BuildExplainPrompt(topic)},
			Confidence: 0.75,
			Slots:      map[string]any{"topic": topic},
			TTS:        "Запитую пояснення у мовної моделі.",
			Resolution: map[string]any{"topic": topic},
		}
	}
	return nil
}
