package repository

import (
	"context"
	"errors"

	chat "go-tawk/internal/pkg/chat/application/domain"
)

var (
	// ErrNotFound is returned when a conversation does not exist.
	ErrNotFound = errors.New("chat repository: not found")
	// ErrDuplicate is returned when a conversation for the pair already exists.
	ErrDuplicate = errors.New("chat repository: duplicate conversation")
)

//go:generate mockgen -source=ChatRepository.go -destination=../mocks/ChatRepository.go -package=mocks

// ChatRepository defines persistence operations for the chat domain.
type ChatRepository interface {
	// CreateConversation inserts c and fills in its ID. It returns
	// ErrDuplicate when the pair already has a conversation.
	CreateConversation(ctx context.Context, c *chat.Conversation) error
	FindConversationByPair(ctx context.Context, a, b string) (*chat.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error)
	ListConversationsByParticipant(ctx context.Context, userID string) ([]chat.Conversation, error)
	// AppendMessage stores m at the next position of its conversation and
	// returns it with ID, Seq and CreatedAt set.
	AppendMessage(ctx context.Context, m chat.Message) (*chat.Message, error)
	// GetMessagesByConversation returns messages in append order. limit <= 0
	// means no limit.
	GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error)
}
