package chat

import (
	"encoding/json"
	"time"
)

// Conversation is the single 1:1 thread between two users. The pair is stored
// normalized so (a, b) and (b, a) resolve to the same row.
type Conversation struct {
	ID            string     `json:"_id" db:"id"`
	ParticipantLo string     `json:"-" db:"participant_lo"`
	ParticipantHi string     `json:"-" db:"participant_hi"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty" db:"last_message_at"`
	MessageCount  int64      `json:"messageCount" db:"message_count"`
	Messages      []Message  `json:"messages"`
}

// PairKey orders two user ids so the smaller comes first.
func PairKey(a, b string) (lo, hi string) {
	if a < b {
		return a, b
	}
	return b, a
}

// NewConversation builds an unsaved conversation between a and b.
func NewConversation(a, b string, now time.Time) Conversation {
	lo, hi := PairKey(a, b)
	return Conversation{
		ParticipantLo: lo,
		ParticipantHi: hi,
		CreatedAt:     now,
		Messages:      []Message{},
	}
}

// Participants returns both members, lower id first.
func (c Conversation) Participants() []string {
	return []string{c.ParticipantLo, c.ParticipantHi}
}

func (c Conversation) Has(userID string) bool {
	return userID != "" && (userID == c.ParticipantLo || userID == c.ParticipantHi)
}

// Peer returns the other participant, or "" when userID is not a member.
func (c Conversation) Peer(userID string) string {
	switch userID {
	case c.ParticipantLo:
		return c.ParticipantHi
	case c.ParticipantHi:
		return c.ParticipantLo
	}
	return ""
}

// MarshalJSON exposes the pair as a participants array.
func (c Conversation) MarshalJSON() ([]byte, error) {
	type alias Conversation
	return json.Marshal(struct {
		alias
		Participants []string `json:"participants"`
	}{alias(c), c.Participants()})
}
