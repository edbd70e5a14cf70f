package usecase

import (
	"errors"

	repository "go-tawk/internal/pkg/chat/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

// translate maps repository failures onto application errors.
func translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrConversationNotFound
	}
	return apperrors.ErrPersistence(err)
}
