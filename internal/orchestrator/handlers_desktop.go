package orchestrator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

var (
	runAppPattern      = regexp.MustCompile(`(?:^|\s)(відкрий|запусти)\s+(.+)`)
	focusWindowPattern = regexp.MustCompile(`(?:^|\s)(перемкнись|переключись|перейди)\s+на\s+(.+)`)
	pressKeysPattern   = regexp.MustCompile(`натисн(и|ути)\s+([a-zа-я0-9+\s]+)`)
	volumePattern      = regexp.MustCompile(`(гучніше|тихіше)\s+на\s+(\d+)%`)
)

func handleRunApp(transcript string, req *models.Request) *IntentResult {
	match := runAppPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}

	spoken := strings.TrimSpace(match[2])
	targetName := matchAlias(req.Aliases, spoken)
	if targetName == "" {
		targetName = spoken
	}

	app := resolveEntity(req.Apps, targetName)
	if app == nil {
		return notFoundResult(
			"Не знайшла додаток. Уточніть назву.",
			"Не знайшла такого додатка.",
			map[string]any{"app": spoken},
		)
	}

	name := app.Name
	if name == "" {
		name = targetName
	}
	return &IntentResult{
		Action:     models.ActionRunApp,
		Params:     map[string]any{"app": name, "path": app.Path},
		Confidence: 0.85,
		Slots:      map[string]any{"app": name},
		TTS:        fmt.Sprintf("Запускаю %s.", name),
		Resolution: map[string]any{"app_id": app.ID, "spoken": spoken},
	}
}

func handleFocusWindow(transcript string, req *models.Request) *IntentResult {
	match := focusWindowPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}

	spoken := strings.TrimSpace(match[2])
	window := resolveEntity(req.Windows, spoken)
	if window == nil {
		return notFoundResult(
			"Не знайшла вікно. Уточніть назву.",
			"Не знайшла такого вікна.",
			map[string]any{"window": spoken},
		)
	}

	name := window.Name
	if name == "" {
		name = spoken
	}
	return &IntentResult{
		Action:     models.ActionFocusWindow,
		Params:     map[string]any{"window": name, "id": window.ID},
		Confidence: 0.8,
		Slots:      map[string]any{"window": name},
		TTS:        fmt.Sprintf("Перемикаюся на %s.", name),
		Resolution: map[string]any{"window_id": window.ID, "spoken": spoken},
	}
}

func handleHotkey(transcript string, req *models.Request) *IntentResult {
	if strings.Contains(transcript, "закрий вікно") {
		return &IntentResult{
			Action:     models.ActionHotkey,
			Params:     map[string]any{"keys": []string{"alt", "f4"}},
			Confidence: 0.9,
			Slots:      map[string]any{"keys": "Alt+F4"},
			TTS:        "Закриваю активне вікно.",
		}
	}

	if strings.Contains(transcript, "згорни всі вікна") || strings.Contains(transcript, "робочий стіл") {
		return &IntentResult{
			Action:     models.ActionHotkey,
			Params:     map[string]any{"keys": []string{"win", "d"}},
			Confidence: 0.9,
			Slots:      map[string]any{"keys": "Win+D"},
			TTS:        "Показую робочий стіл.",
		}
	}

	match := pressKeysPattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}
	keys := splitKeyCombo(match[2])
	if len(keys) == 0 {
		return nil
	}
	return &IntentResult{
		Action:     models.ActionHotkey,
		Params:     map[string]any{"keys": keys},
		Confidence: 0.7,
		Slots:      map[string]any{"keys": joinKeyComboTitle(keys)},
		TTS:        "Натискаю комбінацію клавіш.",
	}
}

// splitKeyCombo splits a spoken combination on "+" and spaces.
func splitKeyCombo(combo string) []string {
	var keys []string
	for _, part := range strings.FieldsFunc(combo, func(r rune) bool {
		return r == '+' || r == ' '
	}) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}

func joinKeyComboTitle(keys []string) string {
	titled := make([]string, len(keys))
	for i, key := range keys {
		runes := []rune(key)
		titled[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(titled, "+")
}

func handleAudioControl(transcript string, req *models.Request) *IntentResult {
	if strings.Contains(transcript, "вимкни звук") || strings.Contains(transcript, "без звуку") {
		return &IntentResult{
			Action:     models.ActionAudioControl,
			Params:     map[string]any{"operation": "mute"},
			Confidence: 0.9,
			Slots:      map[string]any{},
			TTS:        "Вимикаю звук.",
		}
	}

	match := volumePattern.FindStringSubmatch(transcript)
	if match == nil {
		return nil
	}
	direction := match[1]
	amount, err := strconv.Atoi(match[2])
	if err != nil {
		return nil
	}
	operation := "volume_down"
	if direction == "гучніше" {
		operation = "volume_up"
	}
	return &IntentResult{
		Action:     models.ActionAudioControl,
		Params:     map[string]any{"operation": operation, "amount": amount},
		Confidence: 0.85,
		Slots:      map[string]any{"amount": amount, "direction": direction},
		TTS:        fmt.Sprintf("Регулюю гучність на %d%%", amount),
	}
}

// systemToggles maps spoken feature phrases to wire feature tags.
// Order is fixed so ties resolve deterministically.
var systemToggles = []struct {
	phrase  string
	feature string
}{
	{"wi-fi", "wifi"},
	{"вайфай", "wifi"},
	{"bluetooth", "bluetooth"},
	{"режим польоту", "airplane_mode"},
}

func handleSystemToggle(transcript string, req *models.Request) *IntentResult {
	for _, toggle := range systemToggles {
		var state string
		switch {
		case strings.Contains(transcript, "увімкни "+toggle.phrase):
			state = "on"
		case strings.Contains(transcript, "вимкни "+toggle.phrase):
			state = "off"
		default:
			continue
		}
		return &IntentResult{
			Action:     models.ActionSystemToggle,
			Params:     map[string]any{"feature": toggle.feature, "state": state},
			Confidence: 0.85,
			Slots:      map[string]any{"feature": toggle.feature, "state": state},
			TTS:        fmt.Sprintf("Перемикаю %s.", toggle.phrase),
		}
	}
	return nil
}
