package controller

import (
	"context"
	"time"

	"go-tawk/internal/infrastructure/auth"
	social "go-tawk/internal/pkg/social/application/domain"
	"go-tawk/internal/pkg/social/application/usecase"
	apperrors "go-tawk/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UpdateMeController handles PATCH /user/update-me.
type UpdateMeController struct {
	UC *usecase.UpdateProfileUseCase
}

func NewUpdateMeController(uc *usecase.UpdateProfileUseCase) *UpdateMeController {
	return &UpdateMeController{UC: uc}
}

func (h *UpdateMeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Binding into ProfileUpdate drops every field but the editable ones.
		var body social.ProfileUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			writeError(c, apperrors.InvalidArg("invalid request body"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		user, err := h.UC.Execute(ctx, usecase.UpdateProfileInput{UserID: auth.UserID(c), Update: body})
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, user, "Profile updated successfully!")
	}
}
