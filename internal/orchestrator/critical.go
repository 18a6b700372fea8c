package orchestrator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

// Critical operations recorded in log.resolution.critical_intent.
const (
	criticalShutdown   = "shutdown"
	criticalRestart    = "restart"
	criticalDeleteFile = "delete_file"
)

var deleteFilePattern = regexp.MustCompile(`видали файл\s+(.+)`)

// matchCritical detects shutdown, restart and file deletion ahead of the
// normal handler table. A match forces a confirmation response: action
// stays "none" and the caller must obtain an explicit yes before anything
// executes. Policy flags are never consulted here.
func matchCritical(transcript string) *IntentResult {
	intent, phrase, params := detectCritical(transcript)
	if intent == "" {
		return nil
	}
	return &IntentResult{
		Action:       models.ActionNone,
		Params:       params,
		Confidence:   0.8,
		Slots:        params,
		TTS:          msgConfirmNeeded,
		Resolution:   map[string]any{"critical_intent": intent},
		Confirmation: models.Confirmation{Required: true, Phrase: phrase},
	}
}

func detectCritical(transcript string) (intent, phrase string, params map[string]any) {
	if strings.Contains(transcript, "вимкни комп'ютер") {
		return criticalShutdown, "Вимкнути комп'ютер?", map[string]any{"operation": "shutdown"}
	}
	if strings.Contains(transcript, "перезавантаж") {
		return criticalRestart, "Перезавантажити комп'ютер?", map[string]any{"operation": "restart"}
	}
	if match := deleteFilePattern.FindStringSubmatch(transcript); match != nil {
		filename := strings.TrimSpace(match[1])
		return criticalDeleteFile,
			fmt.Sprintf("Видалити файл %s?", filename),
			map[string]any{"file": filename}
	}
	return "", "", nil
}
