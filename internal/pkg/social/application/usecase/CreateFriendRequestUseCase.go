package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-tawk/internal/infrastructure/realtime"
	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

type CreateFriendRequestInput struct {
	From string
	To   string
}

// CreateFriendRequestUseCase records a pending request from one user to
// another and notifies both ends. Sending the same request twice returns the
// pending one and notifies again.
type CreateFriendRequestUseCase struct {
	Repo   repository.SocialRepository
	Router realtime.Deliverer
	Now    func() time.Time
}

func NewCreateFriendRequestUseCase(repo repository.SocialRepository, router realtime.Deliverer) *CreateFriendRequestUseCase {
	return &CreateFriendRequestUseCase{Repo: repo, Router: router, Now: func() time.Time { return time.Now().UTC() }}
}

func (uc *CreateFriendRequestUseCase) Execute(ctx context.Context, in CreateFriendRequestInput) (*social.FriendRequest, error) {
	from, to := strings.TrimSpace(in.From), strings.TrimSpace(in.To)
	if from == "" || to == "" {
		return nil, apperrors.InvalidArg("from and to are required")
	}
	if from == to {
		return nil, apperrors.ErrSelfFriendRequest
	}

	req, err := uc.createOrFind(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if uc.Router != nil {
		uc.Router.Deliver(to, realtime.EventNewFriendRequest, social.RequestNotice{Message: social.NoticeNewRequest, Request: *req})
		uc.Router.Deliver(from, realtime.EventRequestSent, social.RequestNotice{Message: social.NoticeRequestSent, Request: *req})
	}
	return req, nil
}

// createOrFind tries twice: a duplicate can be accepted between the failed
// insert and the lookup, leaving room for a fresh request.
func (uc *CreateFriendRequestUseCase) createOrFind(ctx context.Context, from, to string) (*social.FriendRequest, error) {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		req := social.NewFriendRequest(from, to, uc.Now())
		err = uc.Repo.CreateFriendRequest(ctx, &req)
		if err == nil {
			return &req, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, translate(err, apperrors.ErrUserNotFound)
		}

		existing, findErr := uc.Repo.FindPendingRequest(ctx, from, to)
		if findErr == nil {
			return existing, nil
		}
		if !errors.Is(findErr, repository.ErrNotFound) {
			return nil, apperrors.ErrPersistence(findErr)
		}
		err = findErr
	}
	return nil, apperrors.ErrPersistence(err)
}
