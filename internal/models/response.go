package models

// Response is the single document produced per request.
type Response struct {
	Action       string         `json:"action"`
	Params       map[string]any `json:"params"`
	Confirmation Confirmation   `json:"confirmation"`
	TTS          TTS            `json:"tts"`
	Log          Log            `json:"log"`
	NeedMoreInfo string         `json:"need_more_info"`
}

// Confirmation asks the caller to confirm before executing the action.
type Confirmation struct {
	Required bool   `json:"required"`
	Phrase   string `json:"phrase"`
}

// TTS carries the spoken and displayed renditions of the reply.
type TTS struct {
	Say     string `json:"say"`
	Display string `json:"display"`
}

// Log is the diagnostic record attached to every response.
type Log struct {
	IntentDetected string         `json:"intent_detected"`
	Confidence     float64        `json:"confidence"`
	Slots          map[string]any `json:"slots"`
	PolicyChecks   []PolicyCheck  `json:"policy_checks"`
	Resolution     map[string]any `json:"resolution"`
	Errors         []string       `json:"errors"`
}

// PolicyCheck records one policy gate evaluation.
type PolicyCheck struct {
	Policy string `json:"policy"`
	Status string `json:"status"`
}

// Policy check statuses
const (
	PolicyGranted = "granted"
	PolicyDenied  = "denied"
)

// NewResponse returns the canonical empty response template. Every code
// path starts from this shape so no field is ever missing on the wire:
// maps and slices are allocated so they serialize as {} and [], not null.
func NewResponse() *Response {
	return &Response{
		Action: ActionNone,
		Params: map[string]any{},
		Log: Log{
			Slots:        map[string]any{},
			PolicyChecks: []PolicyCheck{},
			Resolution:   map[string]any{},
			Errors:       []string{},
		},
	}
}
