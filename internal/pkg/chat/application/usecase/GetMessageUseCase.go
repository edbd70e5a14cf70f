package usecase

import (
	"context"

	chat "go-tawk/internal/pkg/chat/application/domain"
	repository "go-tawk/internal/pkg/chat/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

// GetMessageInput carries parameters to fetch messages of a conversation.
// Limit 0 returns everything from Offset on. When ViewerID is set, only a
// participant can read; anyone else gets not found.
type GetMessageInput struct {
	ConversationID string
	ViewerID       string
	Limit          int
	Offset         int
}

// GetMessageUseCase fetches messages for a given conversation in append order.
type GetMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessageUseCase(repo repository.ChatRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) ([]chat.Message, error) {
	if in.ConversationID == "" {
		return nil, apperrors.InvalidArg("conversation_id is required")
	}
	if in.Limit < 0 || in.Offset < 0 {
		return nil, apperrors.InvalidArg("limit and offset cannot be negative")
	}
	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, translate(err)
	}
	if in.ViewerID != "" && !conv.Has(in.ViewerID) {
		return nil, apperrors.ErrConversationNotFound
	}
	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, translate(err)
	}
	return msgs, nil
}
