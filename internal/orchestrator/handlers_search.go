package orchestrator

import (
	"regexp"
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

var (
	textInputPattern = regexp.MustCompile(`встав(ити|и) текст:?\s+(.+)`)
	webSearchPattern = regexp.MustCompile(`(пошук|знайди)\s+(в інтернеті:|в інтернеті|:)\s*(.+)`)
	runMacroPattern  = regexp.MustCompile(`увімкн(и|ути) режим\s+(.+)`)
)

func handleTextInput(transcript string, req *models.Request) *IntentResult {
	match := textInputPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}
	text := strings.TrimSpace(match[2])
	return &IntentResult{
		Action:     models.ActionTextInput,
		Params:     map[string]any{"text": text},
		Confidence: 0.75,
		Slots:      map[string]any{"text": text},
		TTS:        "Вставляю текст.",
	}
}

func (o *Orchestrator) handleWebSearch(transcript string, req *models.Request) *IntentResult {
	var query string
	if match := webSearchPattern.FindStringSubmatch(transcript); match != nil {
		query = strings.TrimSpace(match[3])
	} else if rest, ok := strings.CutPrefix(transcript, "пошук "); ok {
		query = strings.TrimSpace(rest)
	} else {
		return nil
	}

	engine := req.DefaultSearchEngine
	if engine == "" {
		engine = o.defaultEngine
	}
	return &IntentResult{
		Action:     models.ActionWebSearch,
		Params:     map[string]any{"engine": engine, "query": query},
		Confidence: 0.8,
		Slots:      map[string]any{"query": query},
		TTS:        "Запускаю пошук.",
	}
}

func handleSpeakResults(transcript string, req *models.Request) *IntentResult {
	if !strings.Contains(transcript, "озвуч результати") && !strings.Contains(transcript, "прочитай результати") {
		return nil
	}

	if len(req.ResultSet) == 0 {
		return notFoundResult(
			"Немає результатів для озвучення.",
			"Результати недоступні.",
			map[string]any{},
		)
	}

	snippet := summarizeResultSet(req.ResultSet)
	return &IntentResult{
		Action:     models.ActionSpeakResults,
		Params:     map[string]any{"source": "result_set"},
		Confidence: 0.8,
		Slots:      map[string]any{"items": len(req.ResultSet)},
		TTS:        snippet,
	}
}

// summarizeResultSet renders the top three results as "title: snippet"
// fragments joined with semicolons.
func summarizeResultSet(results []models.ResultItem) string {
	var top []string
	for i, item := range results {
		if i == 3 {
			break
		}
		title := item.Title
		if title == "" {
			title = item.Name
		}
		if title == "" {
			continue
		}
		summary := item.Snippet
		if summary == "" {
			summary = item.Summary
		}
		if summary != "" {
			top = append(top, title+": "+summary)
		} else {
			top = append(top, title)
		}
	}
	if len(top) == 0 {
		return "Результати без опису."
	}
	return strings.Join(top, "; ")
}

func handleRunMacro(transcript string, req *models.Request) *IntentResult {
	match := runMacroPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}

	spoken := strings.TrimSpace(match[2])
	macro := resolveEntity(req.Macros, spoken)
	if macro == nil {
		return notFoundResult(
			"Не знайшла макрос. Уточніть назву.",
			"Не знайшла такий режим.",
			map[string]any{"macro": spoken},
		)
	}

	name := macro.Name
	if name == "" {
		name = spoken
	}
	return &IntentResult{
		Action:     models.ActionRunMacro,
		Params:     map[string]any{"macro_id": macro.ID, "name": name},
		Confidence: 0.8,
		Slots:      map[string]any{"macro": name},
		TTS:        "Активую режим " + name + ".",
		Resolution: map[string]any{"macro_id": macro.ID, "spoken": spoken},
	}
}
