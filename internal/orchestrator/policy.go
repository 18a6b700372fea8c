package orchestrator

import "github.com/voiceking/voiceking-orchestrator/internal/models"

// Policy flag names evaluated from the request's policies mapping.
const (
	PolicyAllowRunApps       = "allow_run_apps"
	PolicyAllowHotkeys       = "allow_hotkeys"
	PolicyAllowAudio         = "allow_audio"
	PolicyAllowSystemToggle  = "allow_system_toggle"
	PolicyAllowFileOps       = "allow_file_ops"
	PolicyDictation          = "dictation"
	PolicyAllowNetworkSearch = "allow_network_search"
	PolicyAllowLLMQuery      = "allow_llm_query"
	PolicyAllowLLMSummarize  = "allow_llm_summarize"
)

// policyGate is one evaluated authorization check for an action.
type policyGate struct {
	policy   string
	allowed  bool
	denyCode string
}

// actionPolicies maps each gated action to the flag that must be enabled.
// Actions without an entry (including "none") are always allowed.
var actionPolicies = map[string]string{
	models.ActionRunApp:       PolicyAllowRunApps,
	models.ActionFocusWindow:  PolicyAllowRunApps,
	models.ActionHotkey:       PolicyAllowHotkeys,
	models.ActionAudioControl: PolicyAllowAudio,
	models.ActionSystemToggle: PolicyAllowSystemToggle,
	models.ActionOpenFolder:   PolicyAllowFileOps,
	models.ActionFileSearch:   PolicyAllowFileOps,
	models.ActionFileList:     PolicyAllowFileOps,
	models.ActionMkdirHere:    PolicyAllowFileOps,
	models.ActionOpenRecent:   PolicyAllowFileOps,
	models.ActionTextInput:    PolicyDictation,
	models.ActionWebSearch:    PolicyAllowNetworkSearch,
	models.ActionLLMQuery:     PolicyAllowLLMQuery,
	models.ActionLLMSummarize: PolicyAllowLLMSummarize,
}

// gatesFor evaluates the policy gates that apply to an action. Absent
// policy flags default to deny.
func gatesFor(action string, policies models.Policies) []policyGate {
	flag, ok := actionPolicies[action]
	if !ok {
		return nil
	}
	return []policyGate{{
		policy:   flag,
		allowed:  policies.Enabled(flag),
		denyCode: models.ErrorPolicyViolation,
	}}
}

// policyChecks renders gate evaluations for the response log.
func policyChecks(gates []policyGate) []models.PolicyCheck {
	checks := make([]models.PolicyCheck, 0, len(gates))
	for _, gate := range gates {
		status := models.PolicyGranted
		if !gate.allowed {
			status = models.PolicyDenied
		}
		checks = append(checks, models.PolicyCheck{Policy: gate.policy, Status: status})
	}
	return checks
}

// denyForPolicy overrides the response when any gate is denied: the action
// is forced back to "none", params cleared, and the deny code appended to
// the error list. Whatever the handler produced does not survive a denial.
func denyForPolicy(resp *models.Response, gates []policyGate) bool {
	for _, gate := range gates {
		if gate.allowed {
			continue
		}
		resp.Action = models.ActionNone
		resp.Params = map[string]any{}
		resp.Log.Errors = append(resp.Log.Errors, gate.denyCode)
		resp.Log.Resolution = map[string]any{"denied_policy": gate.policy}
		return true
	}
	return false
}
