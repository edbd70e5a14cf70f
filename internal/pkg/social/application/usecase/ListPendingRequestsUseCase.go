package usecase

import (
	"context"

	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

// ListPendingRequestsUseCase returns the requests waiting on a recipient,
// oldest first, with the sender's public profile attached.
type ListPendingRequestsUseCase struct {
	Repo repository.SocialRepository
}

func NewListPendingRequestsUseCase(repo repository.SocialRepository) *ListPendingRequestsUseCase {
	return &ListPendingRequestsUseCase{Repo: repo}
}

func (uc *ListPendingRequestsUseCase) Execute(ctx context.Context, recipientID string) ([]social.FriendRequest, error) {
	reqs, err := uc.Repo.ListPendingRequests(ctx, recipientID)
	if err != nil {
		return nil, apperrors.ErrPersistence(err)
	}
	return reqs, nil
}
