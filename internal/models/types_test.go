package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoliciesUnmarshal(t *testing.T) {
	var policies Policies
	err := json.Unmarshal([]byte(`{
		"allow_run_apps": true,
		"dictation": false,
		"tts_max_chars": 200,
		"unexpected": "string value"
	}`), &policies)
	require.NoError(t, err)

	assert.True(t, policies.Enabled("allow_run_apps"))
	assert.False(t, policies.Enabled("dictation"))
	assert.False(t, policies.Enabled("never_mentioned"))
	assert.Equal(t, 200, policies.TTSMaxChars)
	assert.NotContains(t, policies.Flags, "tts_max_chars")
	assert.NotContains(t, policies.Flags, "unexpected")
}

func TestPoliciesUnmarshal_Empty(t *testing.T) {
	var policies Policies
	require.NoError(t, json.Unmarshal([]byte(`{}`), &policies))
	assert.Empty(t, policies.Flags)
	assert.Zero(t, policies.TTSMaxChars)
	assert.False(t, policies.Enabled("allow_run_apps"))
}

func TestPoliciesMarshalRoundTrip(t *testing.T) {
	policies := Policies{
		Flags:       map[string]bool{"allow_audio": true},
		TTSMaxChars: 120,
	}
	data, err := json.Marshal(policies)
	require.NoError(t, err)

	var decoded Policies
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Enabled("allow_audio"))
	assert.Equal(t, 120, decoded.TTSMaxChars)
}

func TestRequestUnmarshal(t *testing.T) {
	var req Request
	err := json.Unmarshal([]byte(`{
		"state": "activated",
		"transcript": "Відкрий ноупад",
		"policies": {"allow_run_apps": true},
		"apps": [{"id": "a1", "name": "Notepad", "path": "C:/notepad.exe"}],
		"aliases": [{"name": "ноупад", "maps_to": "Notepad"}]
	}`), &req)
	require.NoError(t, err)

	assert.Equal(t, StateActivated, req.State)
	assert.Equal(t, "Відкрий ноупад", req.Transcript)
	require.Len(t, req.Apps, 1)
	assert.Equal(t, "C:/notepad.exe", req.Apps[0].Path)
	require.Len(t, req.Aliases, 1)
	assert.Equal(t, "Notepad", req.Aliases[0].MapsTo)
}

func TestNewResponseSerializesComplete(t *testing.T) {
	data, err := json.Marshal(NewResponse())
	require.NoError(t, err)

	body := string(data)
	assert.NotContains(t, body, "null")
	assert.Contains(t, body, `"action":"none"`)
	assert.Contains(t, body, `"params":{}`)
	assert.Contains(t, body, `"slots":{}`)
	assert.Contains(t, body, `"policy_checks":[]`)
	assert.Contains(t, body, `"resolution":{}`)
	assert.Contains(t, body, `"errors":[]`)
	assert.Contains(t, body, `"confirmation":{"required":false,"phrase":""}`)
	assert.Contains(t, body, `"need_more_info":""`)
}

func TestSupportedActionsClosedSet(t *testing.T) {
	assert.Len(t, SupportedActions, 17)
	assert.True(t, SupportedActions[ActionNone])
	assert.False(t, SupportedActions["open_browser"])
}
