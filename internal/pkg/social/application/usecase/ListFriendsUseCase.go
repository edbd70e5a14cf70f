package usecase

import (
	"context"

	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

type ListFriendsUseCase struct {
	Repo repository.SocialRepository
}

func NewListFriendsUseCase(repo repository.SocialRepository) *ListFriendsUseCase {
	return &ListFriendsUseCase{Repo: repo}
}

func (uc *ListFriendsUseCase) Execute(ctx context.Context, userID string) ([]social.User, error) {
	friends, err := uc.Repo.ListFriends(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrPersistence(err)
	}
	return friends, nil
}
