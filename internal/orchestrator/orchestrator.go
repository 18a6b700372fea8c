// Package orchestrator turns a normalized transcript plus a desktop context
// snapshot into one executable action descriptor. Processing is a pure,
// synchronous pass over the request: no I/O, no shared state, safe to call
// concurrently.
package orchestrator

import (
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

// DefaultSearchEngine is used when neither the request nor the
// configuration names one.
const DefaultSearchEngine = "google"

// Pseudo-intents reported in log.intent_detected outside the handler table.
const (
	intentIdle              = "idle"
	intentCritical          = "critical"
	intentMissingTranscript = "missing_transcript"
	intentUnknown           = "unknown"
)

// Spoken fallback phrases, uk-UA.
const (
	msgActivationPrompt = "Активуйте мене кодовою фразою, щоб виконати команду."
	msgNeedCommand      = "Потрібна голосова команда."
	msgNotUnderstood    = "Не розпізнала команду. Спробуйте інакше сформулювати запит."
	msgPolicyDenied     = "Цю дію заборонено політиками."
	msgConfirmNeeded    = "Потрібне підтвердження."
)

// Orchestrator sequences the full pipeline: state check, LLM-summary
// short-circuit, critical precheck, empty-transcript check, ordered intent
// matching, policy gating and response assembly.
type Orchestrator struct {
	defaultEngine string
	rules         []intentRule
}

// New builds an orchestrator. defaultEngine backs web searches when the
// request does not name an engine; empty means "google".
func New(defaultEngine string) *Orchestrator {
	if defaultEngine == "" {
		defaultEngine = DefaultSearchEngine
	}
	o := &Orchestrator{defaultEngine: defaultEngine}
	o.rules = intentRules(o)
	return o
}

// Process handles a single request. It always returns a complete response;
// every recognized condition is encoded in the document, never raised.
func (o *Orchestrator) Process(req *models.Request) *models.Response {
	if req == nil {
		req = &models.Request{}
	}

	resp := models.NewResponse()
	ttsMax := req.Policies.TTSMaxChars
	transcript := strings.TrimSpace(req.Transcript)

	if req.State != models.StateActivated {
		resp.TTS.Say = ApplyTTSLimit(msgActivationPrompt, ttsMax)
		resp.Log.IntentDetected = intentIdle
		resp.Log.Confidence = 1.0
		return resp
	}

	if req.LLMSummary != "" && transcript == "" {
		resp.Action = models.ActionSpeakResults
		resp.Params = map[string]any{"source": "llm_summary"}
		resp.TTS.Say = ApplyTTSLimit(req.LLMSummary, ttsMax)
		resp.Log.IntentDetected = models.ActionSpeakResults
		resp.Log.Confidence = 1.0
		resp.Log.Resolution = map[string]any{"source": "llm_summary"}
		return resp
	}

	normalized := strings.ToLower(transcript)

	// Critical operations bypass the handler table and policy gating:
	// they always demand confirmation, whatever the policies say.
	if result := matchCritical(normalized); result != nil {
		applyResult(resp, result)
		resp.Log.IntentDetected = intentCritical
		resp.TTS.Say = ApplyTTSLimit(result.TTS, ttsMax)
		return resp
	}

	if transcript == "" {
		resp.NeedMoreInfo = msgNeedCommand
		resp.Log.IntentDetected = intentMissingTranscript
		resp.Log.Confidence = 0.1
		return resp
	}

	for _, rule := range o.rules {
		result := rule.match(normalized, req)
		if result == nil {
			continue
		}
		applyResult(resp, result)
		resp.Log.IntentDetected = rule.intent

		gates := gatesFor(resp.Action, req.Policies)
		resp.Log.PolicyChecks = policyChecks(gates)
		if denyForPolicy(resp, gates) {
			resp.TTS.Say = ApplyTTSLimit(msgPolicyDenied, ttsMax)
		} else {
			resp.TTS.Say = ApplyTTSLimit(result.TTS, ttsMax)
		}
		return resp
	}

	resp.TTS.Say = ApplyTTSLimit(msgNotUnderstood, ttsMax)
	resp.Log.IntentDetected = intentUnknown
	resp.Log.Confidence = 0.2
	resp.Log.Errors = append(resp.Log.Errors, models.ErrorIntentNotFound)
	return resp
}

// applyResult copies the one winning candidate onto the response template.
// Handlers never touch the response directly, so a half-filled candidate
// cannot leak partial state.
func applyResult(resp *models.Response, result *IntentResult) {
	resp.Action = result.Action
	if result.Params != nil {
		resp.Params = result.Params
	}
	resp.Confirmation = result.Confirmation
	resp.NeedMoreInfo = result.NeedMoreInfo
	resp.Log.Confidence = result.Confidence
	if result.Slots != nil {
		resp.Log.Slots = result.Slots
	}
	if result.Resolution != nil {
		resp.Log.Resolution = result.Resolution
	}
}
