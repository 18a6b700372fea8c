package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

func allPolicies() models.Policies {
	return models.Policies{
		Flags: map[string]bool{
			PolicyAllowRunApps:       true,
			PolicyAllowHotkeys:       true,
			PolicyAllowAudio:         true,
			PolicyAllowSystemToggle:  true,
			PolicyAllowFileOps:       true,
			PolicyAllowNetworkSearch: true,
			PolicyAllowLLMQuery:      true,
			PolicyAllowLLMSummarize:  true,
			PolicyDictation:          true,
		},
		TTSMaxChars: 120,
	}
}

func activatedRequest(transcript string) *models.Request {
	return &models.Request{
		State:      models.StateActivated,
		Locale:     "uk-UA",
		Transcript: transcript,
		Policies:   allPolicies(),
	}
}

func TestProcess_IdleWhenNotActivated(t *testing.T) {
	tests := []struct {
		name       string
		state      string
		transcript string
	}{
		{"passive with command", models.StatePassive, "Відкрий Notepad"},
		{"empty state", "", "Вимкни комп'ютер"},
		{"unknown state", "sleeping", "Пошук в інтернеті: тест"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := activatedRequest(tt.transcript)
			req.State = tt.state

			resp := New("").Process(req)

			assert.Equal(t, models.ActionNone, resp.Action)
			assert.Equal(t, "idle", resp.Log.IntentDetected)
			assert.Equal(t, 1.0, resp.Log.Confidence)
			assert.False(t, resp.Confirmation.Required)
			assert.NotEmpty(t, resp.TTS.Say)
		})
	}
}

func TestProcess_RunAppWithAlias(t *testing.T) {
	req := activatedRequest("Відкрий ноупад")
	req.Apps = []models.Entity{{Name: "Notepad", Path: "C:/Windows/notepad.exe"}}
	req.Aliases = []models.Alias{{Name: "ноупад", MapsTo: "Notepad"}}

	resp := New("").Process(req)

	assert.Equal(t, models.ActionRunApp, resp.Action)
	assert.Equal(t, "Notepad", resp.Params["app"])
	assert.Equal(t, "C:/Windows/notepad.exe", resp.Params["path"])
	assert.Equal(t, models.ActionRunApp, resp.Log.IntentDetected)
	assert.Equal(t, 0.85, resp.Log.Confidence)
	require.Len(t, resp.Log.PolicyChecks, 1)
	assert.Equal(t, models.PolicyGranted, resp.Log.PolicyChecks[0].Status)
}

func TestProcess_PolicyDeniedTextInput(t *testing.T) {
	req := activatedRequest("Вставити текст: привіт")
	req.Policies.Flags[PolicyDictation] = false

	resp := New("").Process(req)

	assert.Equal(t, models.ActionNone, resp.Action)
	assert.Empty(t, resp.Params)
	require.Len(t, resp.Log.PolicyChecks, 1)
	assert.Equal(t, PolicyDictation, resp.Log.PolicyChecks[0].Policy)
	assert.Equal(t, models.PolicyDenied, resp.Log.PolicyChecks[0].Status)
	assert.Contains(t, resp.Log.Errors, models.ErrorPolicyViolation)
	assert.Equal(t, models.ActionTextInput, resp.Log.IntentDetected)
	assert.False(t, resp.Confirmation.Required)
}

func TestProcess_PolicyAbsentMeansDenied(t *testing.T) {
	req := activatedRequest("Вставити текст: привіт")
	delete(req.Policies.Flags, PolicyDictation)

	resp := New("").Process(req)

	assert.Equal(t, models.ActionNone, resp.Action)
	assert.Contains(t, resp.Log.Errors, models.ErrorPolicyViolation)
}

func TestProcess_WebSearchDefaultEngine(t *testing.T) {
	req := activatedRequest("Пошук в інтернеті: тест")

	resp := New("").Process(req)

	assert.Equal(t, models.ActionWebSearch, resp.Action)
	assert.Equal(t, "google", resp.Params["engine"])
	assert.Equal(t, "тест", resp.Params["query"])
}

func TestProcess_WebSearchConfiguredEngine(t *testing.T) {
	req := activatedRequest("Пошук в інтернеті: тест")

	resp := New("duckduckgo").Process(req)

	assert.Equal(t, "duckduckgo", resp.Params["engine"])
}

func TestProcess_WebSearchRequestEngineWins(t *testing.T) {
	req := activatedRequest("Пошук в інтернеті: тест")
	req.DefaultSearchEngine = "bing"

	resp := New("duckduckgo").Process(req)

	assert.Equal(t, "bing", resp.Params["engine"])
}

func TestProcess_SpeakResultsFromSummary(t *testing.T) {
	req := activatedRequest("")
	req.LLMSummary = "Готове резюме"

	resp := New("").Process(req)

	assert.Equal(t, models.ActionSpeakResults, resp.Action)
	assert.Equal(t, "Готове резюме", resp.TTS.Say)
	assert.Equal(t, map[string]any{"source": "llm_summary"}, resp.Params)
	assert.Equal(t, 1.0, resp.Log.Confidence)
	assert.Equal(t, "llm_summary", resp.Log.Resolution["source"])
}

func TestProcess_SummaryIgnoredWhenTranscriptPresent(t *testing.T) {
	req := activatedRequest("Пошук в інтернеті: тест")
	req.LLMSummary = "Готове резюме"

	resp := New("").Process(req)

	assert.Equal(t, models.ActionWebSearch, resp.Action)
}

func TestProcess_CriticalRequiresConfirmation(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		intent     string
		phrase     string
	}{
		{"shutdown", "Вимкни комп'ютер", "shutdown", "Вимкнути комп'ютер?"},
		{"restart", "Перезавантаж систему", "restart", "Перезавантажити комп'ютер?"},
		{"delete file", "Видали файл звіт.docx", "delete_file", "Видалити файл звіт.docx?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := activatedRequest(tt.transcript)

			resp := New("").Process(req)

			assert.Equal(t, models.ActionNone, resp.Action)
			assert.True(t, resp.Confirmation.Required)
			assert.Equal(t, tt.phrase, resp.Confirmation.Phrase)
			assert.Equal(t, "critical", resp.Log.IntentDetected)
			assert.Equal(t, tt.intent, resp.Log.Resolution["critical_intent"])
			assert.Empty(t, resp.Log.PolicyChecks)
		})
	}
}

func TestProcess_CriticalIgnoresPolicies(t *testing.T) {
	req := activatedRequest("Вимкни комп'ютер")
	req.Policies = models.Policies{Flags: map[string]bool{}}

	resp := New("").Process(req)

	assert.True(t, resp.Confirmation.Required)
	assert.Contains(t, resp.Confirmation.Phrase, "Вимкнути комп'ютер")
	assert.NotContains(t, resp.Log.Errors, models.ErrorPolicyViolation)
}

func TestProcess_EmptyTranscript(t *testing.T) {
	req := activatedRequest("   ")

	resp := New("").Process(req)

	assert.Equal(t, models.ActionNone, resp.Action)
	assert.NotEmpty(t, resp.NeedMoreInfo)
	assert.Equal(t, "missing_transcript", resp.Log.IntentDetected)
	assert.Equal(t, 0.1, resp.Log.Confidence)
}

func TestProcess_UnknownIntent(t *testing.T) {
	req := activatedRequest("зроби мені каву")

	resp := New("").Process(req)

	assert.Equal(t, models.ActionNone, resp.Action)
	assert.Equal(t, "unknown", resp.Log.IntentDetected)
	assert.Equal(t, 0.2, resp.Log.Confidence)
	assert.Contains(t, resp.Log.Errors, models.ErrorIntentNotFound)
	assert.NotEmpty(t, resp.TTS.Say)
}

func TestProcess_EntityNotFoundConfidence(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
	}{
		{"app missing", "Запусти хром"},
		{"window missing", "Перейди на пошту"},
		{"folder via run_app", "Відкрий папку документи"},
		{"macro missing", "Увімкни режим фокус"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := activatedRequest(tt.transcript)

			resp := New("").Process(req)

			assert.Equal(t, models.ActionNone, resp.Action)
			assert.Equal(t, 0.4, resp.Log.Confidence)
			assert.NotEmpty(t, resp.NeedMoreInfo)
			assert.Empty(t, resp.Log.Errors)
		})
	}
}

func TestProcess_TTSTruncationApplied(t *testing.T) {
	req := activatedRequest("")
	req.LLMSummary = "Це дуже довге резюме, яке точно не вміститься в ліміт."
	req.Policies.TTSMaxChars = 20

	resp := New("").Process(req)

	runes := []rune(resp.TTS.Say)
	assert.LessOrEqual(t, len(runes), 20)
	assert.Equal(t, "…", string(runes[len(runes)-1]))
}

func TestProcess_NilRequest(t *testing.T) {
	resp := New("").Process(nil)

	assert.Equal(t, models.ActionNone, resp.Action)
	assert.Equal(t, "idle", resp.Log.IntentDetected)
}

// The handler table order is part of the contract: the first matching rule
// wins even when a later rule would also match the same phrase.
func TestProcess_HandlerOrdering(t *testing.T) {
	t.Run("run_app shadows open_folder", func(t *testing.T) {
		req := activatedRequest("Відкрий папку документи")
		req.Folders = []models.Entity{{Name: "Документи", Path: "C:/Users/me/Documents"}}

		resp := New("").Process(req)

		// run_app consumed the phrase and failed to resolve an app; the
		// open_folder handler is never consulted.
		assert.Equal(t, models.ActionRunApp, resp.Log.IntentDetected)
		assert.Equal(t, models.ActionNone, resp.Action)
		assert.Equal(t, 0.4, resp.Log.Confidence)
	})

	t.Run("focus_window shadows web_search", func(t *testing.T) {
		req := activatedRequest("Перейди на пошук в інтернеті: тест")

		resp := New("").Process(req)

		assert.Equal(t, models.ActionFocusWindow, resp.Log.IntentDetected)
		assert.Equal(t, models.ActionNone, resp.Action)
	})

	t.Run("system_toggle beats run_macro for airplane mode", func(t *testing.T) {
		req := activatedRequest("Увімкни режим польоту")
		req.Macros = []models.Entity{{ID: "m1", Name: "польоту"}}

		resp := New("").Process(req)

		assert.Equal(t, models.ActionSystemToggle, resp.Action)
		assert.Equal(t, "airplane_mode", resp.Params["feature"])
	})

	t.Run("table order is fixed", func(t *testing.T) {
		want := []string{
			models.ActionRunApp, models.ActionFocusWindow, models.ActionHotkey,
			models.ActionAudioControl, models.ActionSystemToggle, models.ActionOpenFolder,
			models.ActionFileSearch, models.ActionFileList, models.ActionMkdirHere,
			models.ActionOpenRecent, models.ActionTextInput, models.ActionWebSearch,
			models.ActionSpeakResults, models.ActionRunMacro, models.ActionLLMSummarize,
			models.ActionLLMQuery,
		}
		rules := intentRules(New(""))
		require.Len(t, rules, len(want))
		for i, rule := range rules {
			assert.Equal(t, want[i], rule.intent)
		}
	})
}

func TestProcess_ResponseAlwaysComplete(t *testing.T) {
	// Every path starts from the template, so collections are never nil.
	for _, transcript := range []string{"", "зроби мені каву", "Вимкни комп'ютер", "Запусти хром"} {
		resp := New("").Process(activatedRequest(transcript))
		assert.True(t, models.SupportedActions[resp.Action])
		assert.NotNil(t, resp.Params)
		assert.NotNil(t, resp.Log.Slots)
		assert.NotNil(t, resp.Log.PolicyChecks)
		assert.NotNil(t, resp.Log.Resolution)
		assert.NotNil(t, resp.Log.Errors)
		assert.GreaterOrEqual(t, resp.Log.Confidence, 0.0)
		assert.LessOrEqual(t, resp.Log.Confidence, 1.0)
	}
}
