package application

import (
	"sync/atomic"

	"go-tawk/internal/infrastructure/realtime"
	apperrors "go-tawk/pkg/errors"
)

// Session is one connected socket. UserID is empty for an anonymous session.
type Session struct {
	UserID string
	Handle realtime.Handle

	ended atomic.Bool
}

func (s *Session) Anonymous() bool { return s.UserID == "" }

// Ended reports whether the client asked to end the session.
func (s *Session) Ended() bool { return s.ended.Load() }

// Claim checks an identity carried in an event body against the bound user.
// An empty claim resolves to the bound user.
func (s *Session) Claim(userID string) (string, error) {
	if userID == "" || userID == s.UserID {
		return s.UserID, nil
	}
	return "", apperrors.ErrIdentityMismatch
}

// Reply pushes an event to this session's own connection.
func (s *Session) Reply(event string, payload any) error {
	return s.Handle.Push(event, payload)
}
