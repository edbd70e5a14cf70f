package chat

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKey(t *testing.T) {
	lo, hi := PairKey("b", "a")
	assert.Equal(t, "a", lo)
	assert.Equal(t, "b", hi)

	lo2, hi2 := PairKey("a", "b")
	assert.Equal(t, lo, lo2)
	assert.Equal(t, hi, hi2)
}

func TestConversation_Peer(t *testing.T) {
	c := NewConversation("u2", "u1", time.Now())
	assert.Equal(t, "u2", c.Peer("u1"))
	assert.Equal(t, "u1", c.Peer("u2"))
	assert.Equal(t, "", c.Peer("u3"))
	assert.True(t, c.Has("u1"))
	assert.False(t, c.Has(""))
}

func TestConversation_MarshalJSON(t *testing.T) {
	c := NewConversation("u2", "u1", time.Now())
	c.ID = "c1"
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "c1", out["_id"])
	assert.Equal(t, []any{"u1", "u2"}, out["participants"])
	assert.Equal(t, []any{}, out["messages"])
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		body string
		ok   bool
		typ  MessageType
	}{
		{"plain text", "  hello ", true, MessageTypeText},
		{"link", "see https://example.com", true, MessageTypeLink},
		{"www link", "www.example.com", true, MessageTypeLink},
		{"blank", "   ", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := NewMessage(Message{Body: tt.body}, now)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.typ, m.Type)
			assert.Equal(t, now, m.CreatedAt)
			assert.NotEqual(t, ' ', m.Body[0])
		})
	}
}
