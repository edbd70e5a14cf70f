package chat

import (
	"regexp"
	"strings"
	"time"
)

// MessageType classifies message content.
type MessageType string

const (
	MessageTypeText MessageType = "text"
	MessageTypeLink MessageType = "link"
	MessageTypeFile MessageType = "file"
)

var urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)

// DetectType returns MessageTypeLink when body contains a URL.
func DetectType(body string) MessageType {
	if urlPattern.MatchString(body) {
		return MessageTypeLink
	}
	return MessageTypeText
}

// Message is an immutable entry in a conversation. Seq is its 1-based
// position, assigned by the store on append.
type Message struct {
	ID             string      `json:"_id" db:"id"`
	ConversationID string      `json:"conversationId" db:"conversation_id"`
	Seq            int64       `json:"seq" db:"seq"`
	SenderID       string      `json:"from" db:"sender_id"`
	RecipientID    string      `json:"to" db:"recipient_id"`
	Type           MessageType `json:"type" db:"msg_type"`
	Body           string      `json:"text" db:"body"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
}

// NewMessage trims the body, classifies non-file content as text or link and
// stamps the creation time. It returns false when the body is empty after
// trimming.
func NewMessage(m Message, now time.Time) (Message, bool) {
	m.Body = strings.TrimSpace(m.Body)
	if m.Body == "" {
		return m, false
	}
	if m.Type != MessageTypeFile {
		m.Type = DetectType(m.Body)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	return m, true
}
