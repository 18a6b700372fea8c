package orchestrator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

var (
	openFolderPattern = regexp.MustCompile(`відкрий папку\s+(.+)`)
	fileSearchPattern = regexp.MustCompile(`знайди файл\s+(.+)`)
	lastNDaysPattern  = regexp.MustCompile(`покажи файли за останні\s+(\d+)\s+дні`)
	mkdirHerePattern  = regexp.MustCompile(`створи папку\s+(.+)\s+тут`)
)

func handleOpenFolder(transcript string, req *models.Request) *IntentResult {
	match := openFolderPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}

	spoken := strings.TrimSpace(match[1])
	folder := resolveEntity(req.Folders, spoken)
	if folder == nil {
		return notFoundResult(
			"Не знайшла папку. Уточніть назву.",
			"Не знайшла таку папку.",
			map[string]any{"folder": spoken},
		)
	}

	name := folder.Name
	if name == "" {
		name = spoken
	}
	return &IntentResult{
		Action:     models.ActionOpenFolder,
		Params:     map[string]any{"path": folder.Path, "name": name},
		Confidence: 0.8,
		Slots:      map[string]any{"folder": name},
		TTS:        fmt.Sprintf("Відкриваю папку %s.", name),
		Resolution: map[string]any{"folder_path": folder.Path, "spoken": spoken},
	}
}

func handleFileSearch(transcript string, req *models.Request) *IntentResult {
	match := fileSearchPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}
	query := strings.TrimSpace(match[1])
	return &IntentResult{
		Action:     models.ActionFileSearch,
		Params:     map[string]any{"query": query},
		Confidence: 0.75,
		Slots:      map[string]any{"query": query},
		TTS:        fmt.Sprintf("Шукаю файли за запитом %s.", query),
	}
}

func handleFileList(transcript string, req *models.Request) *IntentResult {
	var params map[string]any
	switch {
	case strings.Contains(transcript, "покажи файли за сьогодні"):
		params = map[string]any{"time_filter": "today"}
	case strings.Contains(transcript, "покажи файли за вчора"):
		params = map[string]any{"time_filter": "yesterday"}
	default:
		match := lastNDaysPattern.FindStringSubmatch(transcript)
		if match == nil {
			return nil
		}
		days, err := strconv.Atoi(match[1])
		if err != nil {
			return nil
		}
		params = map[string]any{"time_filter": "last_n_days", "days": days}
	}
	return &IntentResult{
		Action:     models.ActionFileList,
		Params:     params,
		Confidence: 0.7,
		Slots:      params,
		TTS:        "Показую відповідні файли.",
	}
}

func handleMkdirHere(transcript string, req *models.Request) *IntentResult {
	match := mkdirHerePattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}
	name := strings.TrimSpace(match[1])
	return &IntentResult{
		Action:     models.ActionMkdirHere,
		Params:     map[string]any{"name": name},
		Confidence: 0.75,
		Slots:      map[string]any{"folder": name},
		TTS:        fmt.Sprintf("Створюю папку %s.", name),
	}
}

func handleOpenRecent(transcript string, req *models.Request) *IntentResult {
	if !strings.Contains(transcript, "відкрий останній файл") {
		return nil
	}
	return &IntentResult{
		Action:     models.ActionOpenRecent,
		Params:     map[string]any{},
		Confidence: 0.7,
		Slots:      map[string]any{},
		TTS:        "Відкриваю останній файл.",
	}
}
