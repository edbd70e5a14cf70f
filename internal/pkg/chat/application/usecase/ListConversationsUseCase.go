package usecase

import (
	"context"

	chat "go-tawk/internal/pkg/chat/application/domain"
	repository "go-tawk/internal/pkg/chat/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

type ListConversationsInput struct {
	UserID string
}

// ListConversationsUseCase lists the direct conversations a user takes part
// in, oldest first.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]chat.Conversation, error) {
	if in.UserID == "" {
		return nil, apperrors.InvalidArg("user_id is required")
	}
	convs, err := uc.Repo.ListConversationsByParticipant(ctx, in.UserID)
	if err != nil {
		return nil, apperrors.ErrPersistence(err)
	}
	return convs, nil
}
