package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantErr  bool
	}{
		{"empty object", `{}`, false},
		{
			"full request",
			`{"state":"activated","transcript":"відкрий ноупад","locale":"uk-UA",
			 "policies":{"allow_run_apps":true,"tts_max_chars":200},
			 "apps":[{"id":"a1","name":"Notepad"}],
			 "aliases":[{"name":"ноупад","maps_to":"Notepad"}],
			 "result_set":[],"llm_summary":"","default_search_engine":"google"}`,
			false,
		},
		{"unknown fields pass", `{"extra":"field"}`, false},
		{"transcript wrong type", `{"transcript":42}`, true},
		{"policies wrong type", `{"policies":"yes"}`, true},
		{"apps not array", `{"apps":{"id":"a1"}}`, true},
		{"apps item not object", `{"apps":["Notepad"]}`, true},
		{"top level not object", `["not","an","object"]`, true},
		{"malformed json", `{"state":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest([]byte(tt.document))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}
