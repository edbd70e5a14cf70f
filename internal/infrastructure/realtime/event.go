package realtime

import "encoding/json"

// Inbound event names (client -> server).
const (
	EventFriendRequest          = "friend_request"
	EventAcceptRequest          = "accept_request"
	EventGetDirectConversations = "get_direct_conversations"
	EventStartConversation      = "start_conversation"
	EventGetMessages            = "get_messages"
	EventTextMessage            = "text_message"
	EventFileMessage            = "file_message"
	EventEnd                    = "end"
)

// Outbound event names (server -> client).
const (
	EventConnected        = "connected"
	EventAck              = "ack"
	EventError            = "error"
	EventNewFriendRequest = "new_friend_request"
	EventRequestSent      = "request_sent"
	EventRequestAccepted  = "request_accepted"
	EventStartChat        = "start_chat"
	EventNewTextMessage   = "new_text_message"
)

// Envelope is the JSON frame exchanged over the socket in both directions.
// ID is set by clients on request/response events and echoed in the reply.
type Envelope struct {
	Event string          `json:"event"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Ack answers a request/response event.
type Ack struct {
	ID     string `json:"id,omitempty"`
	Event  string `json:"event"`
	Result any    `json:"result,omitempty"`
}

// ErrorFrame reports a failed event back to the connection that sent it.
type ErrorFrame struct {
	ID      string `json:"id,omitempty"`
	Event   string `json:"event,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Encode builds the wire bytes for an outbound event.
func Encode(event string, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}
