package usecase

import (
	"errors"

	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

// translate maps repository failures onto application errors. notFound is
// returned for repository.ErrNotFound.
func translate(err error, notFound error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrUnknownUser):
		return apperrors.ErrUserNotFound
	}
	return apperrors.ErrPersistence(err)
}
