package social

import (
	"time"

	"github.com/uptrace/bun"
)

// FriendRequest is pending for as long as it exists; accepting deletes it.
type FriendRequest struct {
	bun.BaseModel `bun:"table:social.friend_request,alias:fr" json:"-"`

	ID          string    `bun:"id,pk,type:uuid,nullzero,default:gen_random_uuid()" json:"_id"`
	SenderID    string    `bun:"sender_id,type:uuid" json:"sender"`
	RecipientID string    `bun:"recipient_id,type:uuid" json:"recipient"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`

	// Sender is loaded when listing a recipient's pending requests.
	Sender *User `bun:"rel:belongs-to,join:sender_id=id" json:"senderProfile,omitempty"`
}

func NewFriendRequest(from, to string, now time.Time) FriendRequest {
	return FriendRequest{SenderID: from, RecipientID: to, CreatedAt: now}
}

// RequestNotice is the payload of new_friend_request, request_sent and
// request_accepted.
type RequestNotice struct {
	Message string        `json:"message"`
	Request FriendRequest `json:"request"`
}

const (
	NoticeNewRequest      = "New friend request received"
	NoticeRequestSent     = "Request Sent successfully!"
	NoticeRequestAccepted = "Friend Request Accepted"
)
