package repository

import (
	"context"
	"errors"
	"time"

	social "go-tawk/internal/pkg/social/application/domain"
)

var (
	// ErrNotFound is returned when a user or friend request does not exist.
	ErrNotFound = errors.New("social repository: not found")
	// ErrDuplicate is returned when the sender already has a pending request
	// to the recipient.
	ErrDuplicate = errors.New("social repository: duplicate friend request")
	// ErrUnknownUser is returned when a request references a user that does
	// not exist.
	ErrUnknownUser = errors.New("social repository: unknown user")
)

//go:generate mockgen -source=SocialRepository.go -destination=../mocks/SocialRepository.go -package=mocks

// SocialRepository persists the user graph: profiles, presence, friendships
// and pending friend requests.
type SocialRepository interface {
	CreateFriendRequest(ctx context.Context, r *social.FriendRequest) error
	FindPendingRequest(ctx context.Context, senderID, recipientID string) (*social.FriendRequest, error)
	GetFriendRequest(ctx context.Context, requestID string) (*social.FriendRequest, error)
	// AcceptFriendRequest adds the friendship in both directions and deletes
	// the request in one transaction. It returns ErrNotFound when the request
	// is gone.
	AcceptFriendRequest(ctx context.Context, requestID string) (*social.FriendRequest, error)
	ListPendingRequests(ctx context.Context, recipientID string) ([]social.FriendRequest, error)

	GetUser(ctx context.Context, userID string) (*social.User, error)
	ListFriends(ctx context.Context, userID string) ([]social.User, error)
	// ListCandidates returns verified users that are neither userID nor one
	// of its friends.
	ListCandidates(ctx context.Context, userID string) ([]social.User, error)
	UpdateProfile(ctx context.Context, userID string, p social.ProfileUpdate) (*social.User, error)
	// SetPresence records status unless a newer change is already stored.
	SetPresence(ctx context.Context, userID string, status social.Status, at time.Time) error
}
