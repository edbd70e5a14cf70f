package usecase

import (
	"context"
	"errors"
	"time"

	"go-tawk/internal/infrastructure/realtime"
	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"

	"github.com/cenkalti/backoff/v4"
)

type AcceptFriendRequestInput struct {
	RequestID string
	// ActorID is the user accepting. When set it must be the recipient.
	ActorID string
}

// AcceptFriendRequestUseCase turns a pending request into a friendship. The
// repository applies it in one transaction; transient failures retry that
// whole transaction, so a failed accept leaves the request pending.
type AcceptFriendRequestUseCase struct {
	Repo       repository.SocialRepository
	Router     realtime.Deliverer
	MaxRetries uint64
	NewBackOff func() backoff.BackOff
}

func NewAcceptFriendRequestUseCase(repo repository.SocialRepository, router realtime.Deliverer, maxRetries uint64) *AcceptFriendRequestUseCase {
	return &AcceptFriendRequestUseCase{
		Repo:       repo,
		Router:     router,
		MaxRetries: maxRetries,
		NewBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxElapsedTime = 2 * time.Second
			return b
		},
	}
}

func (uc *AcceptFriendRequestUseCase) Execute(ctx context.Context, in AcceptFriendRequestInput) (*social.FriendRequest, error) {
	if in.RequestID == "" {
		return nil, apperrors.InvalidArg("request_id is required")
	}

	pending, err := uc.Repo.GetFriendRequest(ctx, in.RequestID)
	if err != nil {
		return nil, translate(err, apperrors.ErrFriendRequestNotFound)
	}
	if in.ActorID != "" && in.ActorID != pending.RecipientID {
		return nil, apperrors.ErrNotRequestRecipient
	}

	var accepted *social.FriendRequest
	op := func() error {
		req, err := uc.Repo.AcceptFriendRequest(ctx, pending.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return backoff.Permanent(apperrors.ErrFriendRequestNotFound)
		}
		if err != nil {
			return err
		}
		accepted = req
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(uc.NewBackOff(), uc.MaxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return nil, err
		}
		return nil, apperrors.ErrPersistence(err)
	}

	if uc.Router != nil {
		notice := social.RequestNotice{Message: social.NoticeRequestAccepted, Request: *accepted}
		uc.Router.Deliver(accepted.SenderID, realtime.EventRequestAccepted, notice)
		uc.Router.Deliver(accepted.RecipientID, realtime.EventRequestAccepted, notice)
	}
	return accepted, nil
}
