package social

import (
	"time"

	"github.com/uptrace/bun"
)

// Status is the presence recorded on a user.
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

// User is the profile owned by the auth service. The realtime core reads it
// and only writes presence and the editable profile fields.
type User struct {
	bun.BaseModel `bun:"table:social.user_account,alias:u" json:"-"`

	ID              string    `bun:"id,pk,type:uuid" json:"_id"`
	FirstName       string    `bun:"first_name" json:"firstName"`
	LastName        string    `bun:"last_name" json:"lastName"`
	Email           string    `bun:"email,nullzero" json:"email,omitempty"`
	Avatar          string    `bun:"avatar" json:"avatar,omitempty"`
	About           string    `bun:"about" json:"about,omitempty"`
	Verified        bool      `bun:"verified" json:"-"`
	Status          Status    `bun:"status" json:"status"`
	StatusChangedAt time.Time `bun:"status_changed_at" json:"-"`
	CreatedAt       time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// Friendship is one direction of a friend relation. Accepting a request
// writes both directions.
type Friendship struct {
	bun.BaseModel `bun:"table:social.friendship,alias:f"`

	UserID    string    `bun:"user_id,pk,type:uuid"`
	FriendID  string    `bun:"friend_id,pk,type:uuid"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp"`
}

// ProfileUpdate holds the user-editable fields. Nil fields are left alone.
type ProfileUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	About     *string `json:"about"`
	Avatar    *string `json:"avatar"`
}

func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.About == nil && p.Avatar == nil
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}
