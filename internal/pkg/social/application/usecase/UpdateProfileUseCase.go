package usecase

import (
	"context"
	"strings"

	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

type UpdateProfileInput struct {
	UserID string
	Update social.ProfileUpdate
}

// UpdateProfileUseCase edits the caller's own profile. Only first name,
// last name, about and avatar can change here.
type UpdateProfileUseCase struct {
	Repo repository.SocialRepository
}

func NewUpdateProfileUseCase(repo repository.SocialRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{Repo: repo}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, in UpdateProfileInput) (*social.User, error) {
	if in.UserID == "" {
		return nil, apperrors.InvalidArg("user id is required")
	}
	for _, name := range []*string{in.Update.FirstName, in.Update.LastName} {
		if name != nil && strings.TrimSpace(*name) == "" {
			return nil, apperrors.InvalidArg("names cannot be blank")
		}
	}
	if in.Update.Empty() {
		user, err := uc.Repo.GetUser(ctx, in.UserID)
		if err != nil {
			return nil, translate(err, apperrors.ErrUserNotFound)
		}
		return user, nil
	}

	user, err := uc.Repo.UpdateProfile(ctx, in.UserID, in.Update)
	if err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}
