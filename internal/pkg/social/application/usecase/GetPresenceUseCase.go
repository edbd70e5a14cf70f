package usecase

import (
	"context"
	"errors"

	cacheport "go-tawk/internal/infrastructure/cache/port"
	"go-tawk/internal/infrastructure/realtime"
	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

type PresenceView struct {
	UserID string        `json:"userId"`
	Status social.Status `json:"status"`
}

// GetPresenceUseCase answers from the presence cache. A cache miss means
// offline for a user that exists. Without a reachable cache the user record
// is authoritative.
type GetPresenceUseCase struct {
	Cache cacheport.Cache
	Repo  repository.SocialRepository
}

func NewGetPresenceUseCase(cache cacheport.Cache, repo repository.SocialRepository) *GetPresenceUseCase {
	return &GetPresenceUseCase{Cache: cache, Repo: repo}
}

func (uc *GetPresenceUseCase) Execute(ctx context.Context, userID string) (*PresenceView, error) {
	if userID == "" {
		return nil, apperrors.InvalidArg("user id is required")
	}
	if uc.Cache != nil {
		status, err := realtime.CachedStatus(ctx, uc.Cache, userID)
		switch {
		case err == nil:
			return &PresenceView{UserID: userID, Status: social.Status(status)}, nil
		case errors.Is(err, cacheport.ErrMiss):
			if _, err := uc.Repo.GetUser(ctx, userID); err != nil {
				return nil, translate(err, apperrors.ErrUserNotFound)
			}
			return &PresenceView{UserID: userID, Status: social.StatusOffline}, nil
		}
	}
	user, err := uc.Repo.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	return &PresenceView{UserID: userID, Status: user.Status}, nil
}
