package orchestrator

import "github.com/voiceking/voiceking-orchestrator/internal/models"

// IntentResult is the candidate outcome one handler produces. A nil result
// means the pattern was not recognized and the next handler is consulted; a
// non-nil result consumes the match even when the target entity could not
// be resolved (action "none" + NeedMoreInfo, confidence 0.4).
type IntentResult struct {
	Action       string
	Params       map[string]any
	Confidence   float64
	Slots        map[string]any
	TTS          string
	Resolution   map[string]any
	NeedMoreInfo string
	Confirmation models.Confirmation
}

type handlerFunc func(transcript string, req *models.Request) *IntentResult

// intentRule pairs an intent tag with its pattern handler.
type intentRule struct {
	intent string
	match  handlerFunc
}

// intentRules returns the handler table. The order is load-bearing: rules
// are tried top to bottom and the first match wins, with no backtracking,
// even when a later rule would also match. Reordering changes observable
// behavior and is pinned by tests.
func intentRules(o *Orchestrator) []intentRule {
	return []intentRule{
		{models.ActionRunApp, handleRunApp},
		{models.ActionFocusWindow, handleFocusWindow},
		{models.ActionHotkey, handleHotkey},
		{models.ActionAudioControl, handleAudioControl},
		{models.ActionSystemToggle, handleSystemToggle},
		{models.ActionOpenFolder, handleOpenFolder},
		{models.ActionFileSearch, handleFileSearch},
		{models.ActionFileList, handleFileList},
		{models.ActionMkdirHere, handleMkdirHere},
		{models.ActionOpenRecent, handleOpenRecent},
		{models.ActionTextInput, handleTextInput},
		{models.ActionWebSearch, o.handleWebSearch},
		{models.ActionSpeakResults, handleSpeakResults},
		{models.ActionRunMacro, handleRunMacro},
		{models.ActionLLMSummarize, handleLLMSummarize},
		{models.ActionLLMQuery, handleLLMQuery},
	}
}

// notFoundResult is the shared "pattern matched, entity missing" outcome.
func notFoundResult(needMoreInfo, tts string, slots map[string]any) *IntentResult {
	return &IntentResult{
		Action:       models.ActionNone,
		Params:       map[string]any{},
		Confidence:   0.4,
		Slots:        slots,
		TTS:          tts,
		NeedMoreInfo: needMoreInfo,
	}
}
