package models

import "encoding/json"

// Request states
const (
	StatePassive   = "passive"
	StateActivated = "activated"
)

// Supported actions
const (
	ActionRunApp       = "run_app"
	ActionFocusWindow  = "focus_window"
	ActionHotkey       = "hotkey"
	ActionAudioControl = "audio_control"
	ActionSystemToggle = "system_toggle"
	ActionOpenFolder   = "open_folder"
	ActionFileSearch   = "file_search"
	ActionFileList     = "file_list"
	ActionMkdirHere    = "mkdir_here"
	ActionOpenRecent   = "open_recent"
	ActionTextInput    = "text_input"
	ActionWebSearch    = "web_search"
	ActionSpeakResults = "speak_results"
	ActionRunMacro     = "run_macro"
	ActionLLMQuery     = "llm_query"
	ActionLLMSummarize = "llm_summarize"
	ActionNone         = "none"
)

// Error codes carried in log.errors
const (
	ErrorPolicyViolation = "policy_violation"
	ErrorIntentNotFound  = "intent_not_found"
)

// SupportedActions is the closed set of action tags a response may carry.
var SupportedActions = map[string]bool{
	ActionRunApp:       true,
	ActionFocusWindow:  true,
	ActionHotkey:       true,
	ActionAudioControl: true,
	ActionSystemToggle: true,
	ActionOpenFolder:   true,
	ActionFileSearch:   true,
	ActionFileList:     true,
	ActionMkdirHere:    true,
	ActionOpenRecent:   true,
	ActionTextInput:    true,
	ActionWebSearch:    true,
	ActionSpeakResults: true,
	ActionRunMacro:     true,
	ActionLLMQuery:     true,
	ActionLLMSummarize: true,
	ActionNone:         true,
}

// Request is the single document the orchestrator consumes per call.
// Every field is optional; absence means empty, never an error.
type Request struct {
	State               string       `json:"state"`
	Transcript          string       `json:"transcript"`
	Locale              string       `json:"locale"`
	Policies            Policies     `json:"policies"`
	Apps                []Entity     `json:"apps"`
	Windows             []Entity     `json:"windows"`
	Folders             []Entity     `json:"folders"`
	Macros              []Entity     `json:"macros"`
	Aliases             []Alias      `json:"aliases"`
	ResultSet           []ResultItem `json:"result_set"`
	LLMSummary          string       `json:"llm_summary"`
	DefaultSearchEngine string       `json:"default_search_engine"`
}

// Entity is a named item from the desktop context: an application, window,
// folder or macro. Name, Title and Label are alternative spoken handles.
type Entity struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
	Label string `json:"label,omitempty"`
	Path  string `json:"path,omitempty"`
}

// Alias maps a spoken shorthand to a canonical entity name.
type Alias struct {
	Name   string `json:"name"`
	MapsTo string `json:"maps_to"`
}

// ResultItem is one entry of a prior search result set.
type ResultItem struct {
	Title   string `json:"title,omitempty"`
	Name    string `json:"name,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Policies carries the per-action boolean permission flags plus the
// optional tts_max_chars limit, all inside the one "policies" JSON object.
// TTSMaxChars of 0 means no limit was supplied.
type Policies struct {
	Flags       map[string]bool
	TTSMaxChars int
}

// Enabled reports whether a policy flag is present and true.
// Absent flags default to deny.
func (p Policies) Enabled(name string) bool {
	return p.Flags[name]
}

func (p *Policies) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Flags = make(map[string]bool, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case bool:
			p.Flags[key] = v
		case float64:
			if key == "tts_max_chars" {
				p.TTSMaxChars = int(v)
			}
		}
	}
	return nil
}

func (p Policies) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Flags)+1)
	for key, value := range p.Flags {
		out[key] = value
	}
	if p.TTSMaxChars > 0 {
		out["tts_max_chars"] = p.TTSMaxChars
	}
	return json.Marshal(out)
}
