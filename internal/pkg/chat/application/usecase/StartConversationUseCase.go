package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	chat "go-tawk/internal/pkg/chat/application/domain"
	repository "go-tawk/internal/pkg/chat/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

type StartConversationInput struct {
	From string
	To   string
}

// StartConversationUseCase returns the conversation between two users,
// creating it on first contact, together with its message history.
type StartConversationUseCase struct {
	Repo repository.ChatRepository
	Now  func() time.Time
}

func NewStartConversationUseCase(repo repository.ChatRepository) *StartConversationUseCase {
	return &StartConversationUseCase{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

func (uc *StartConversationUseCase) Execute(ctx context.Context, in StartConversationInput) (*chat.Conversation, error) {
	from, to := strings.TrimSpace(in.From), strings.TrimSpace(in.To)
	if from == "" || to == "" {
		return nil, apperrors.InvalidArg("from and to are required")
	}
	if from == to {
		return nil, apperrors.ErrSelfConversation
	}

	conv, err := uc.getOrCreate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	msgs, err := uc.Repo.GetMessagesByConversation(ctx, conv.ID, 0, 0)
	if err != nil {
		return nil, translate(err)
	}
	conv.Messages = msgs
	return conv, nil
}

// getOrCreate relies on the unique pair index: a creator that loses the race
// gets ErrDuplicate and reads the winner's row.
func (uc *StartConversationUseCase) getOrCreate(ctx context.Context, from, to string) (*chat.Conversation, error) {
	conv, err := uc.Repo.FindConversationByPair(ctx, from, to)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrPersistence(err)
	}

	created := chat.NewConversation(from, to, uc.Now())
	err = uc.Repo.CreateConversation(ctx, &created)
	if err == nil {
		return &created, nil
	}
	if !errors.Is(err, repository.ErrDuplicate) {
		return nil, apperrors.ErrPersistence(err)
	}

	conv, err = uc.Repo.FindConversationByPair(ctx, from, to)
	if err != nil {
		return nil, apperrors.ErrPersistence(err)
	}
	return conv, nil
}
