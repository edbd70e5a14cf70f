package controller

import (
	"context"
	"time"

	"go-tawk/internal/infrastructure/auth"
	"go-tawk/internal/pkg/social/application/usecase"

	"github.com/gin-gonic/gin"
)

// GetFriendsController handles GET /user/get-friends.
type GetFriendsController struct {
	UC *usecase.ListFriendsUseCase
}

func NewGetFriendsController(uc *usecase.ListFriendsUseCase) *GetFriendsController {
	return &GetFriendsController{UC: uc}
}

func (h *GetFriendsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		friends, err := h.UC.Execute(ctx, auth.UserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, friends, "Friends fetched successfully!")
	}
}
