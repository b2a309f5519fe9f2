package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageSerializesPayload(t *testing.T) {
	msg, err := NewMessage("PlayerJoined", map[string]string{"playerName": "Alice"})
	require.NoError(t, err)

	assert.Equal(t, "PlayerJoined", msg.Type)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "Alice", payload["playerName"])
}

func TestNewMessageNilPayload(t *testing.T) {
	msg, err := NewMessage("ListGames", nil)
	require.NoError(t, err)

	assert.Equal(t, "ListGames", msg.Type)
	assert.Nil(t, msg.Payload)
}

func TestNewMessageUnserializablePayloadFails(t *testing.T) {
	_, err := NewMessage("Error", func() {})
	assert.Error(t, err)
}

func TestMessageEnvelopeRoundTrip(t *testing.T) {
	msg, err := NewMessage("GameStarted", map[string]int{"turnNumber": 1})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, msg.Type, decoded.Type)
	assert.JSONEq(t, string(msg.Payload), string(decoded.Payload))
}
