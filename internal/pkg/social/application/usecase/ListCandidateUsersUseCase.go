package usecase

import (
	"context"

	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

// ListCandidateUsersUseCase lists verified users the caller could befriend.
type ListCandidateUsersUseCase struct {
	Repo repository.SocialRepository
}

func NewListCandidateUsersUseCase(repo repository.SocialRepository) *ListCandidateUsersUseCase {
	return &ListCandidateUsersUseCase{Repo: repo}
}

func (uc *ListCandidateUsersUseCase) Execute(ctx context.Context, userID string) ([]social.User, error) {
	users, err := uc.Repo.ListCandidates(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrPersistence(err)
	}
	return users, nil
}
