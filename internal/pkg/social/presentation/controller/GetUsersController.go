package controller

import (
	"context"
	"time"

	"go-tawk/internal/infrastructure/auth"
	"go-tawk/internal/pkg/social/application/usecase"

	"github.com/gin-gonic/gin"
)

// GetUsersController handles GET /user/get-users.
type GetUsersController struct {
	UC *usecase.ListCandidateUsersUseCase
}

func NewGetUsersController(uc *usecase.ListCandidateUsersUseCase) *GetUsersController {
	return &GetUsersController{UC: uc}
}

func (h *GetUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		users, err := h.UC.Execute(ctx, auth.UserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, users, "Users fetched successfully")
	}
}
