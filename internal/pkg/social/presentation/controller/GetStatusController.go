package controller

import (
	"context"
	"time"

	"go-tawk/internal/pkg/social/application/usecase"

	"github.com/gin-gonic/gin"
)

// GetStatusController handles GET /user/status/:userId.
type GetStatusController struct {
	UC *usecase.GetPresenceUseCase
}

func NewGetStatusController(uc *usecase.GetPresenceUseCase) *GetStatusController {
	return &GetStatusController{UC: uc}
}

func (h *GetStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		view, err := h.UC.Execute(ctx, c.Param("userId"))
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, view, "Status fetched successfully")
	}
}
