package controller

import (
	"context"
	"time"

	"go-tawk/internal/infrastructure/auth"
	"go-tawk/internal/pkg/social/application/usecase"

	"github.com/gin-gonic/gin"
)

// GetFriendRequestsController handles GET /user/get-friend-requests.
type GetFriendRequestsController struct {
	UC *usecase.ListPendingRequestsUseCase
}

func NewGetFriendRequestsController(uc *usecase.ListPendingRequestsUseCase) *GetFriendRequestsController {
	return &GetFriendRequestsController{UC: uc}
}

func (h *GetFriendRequestsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		reqs, err := h.UC.Execute(ctx, auth.UserID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, reqs, "Friends-Request fetched successfully!")
	}
}
