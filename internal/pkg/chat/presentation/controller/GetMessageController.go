package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go-tawk/internal/infrastructure/auth"
	"go-tawk/internal/pkg/chat/application/usecase"
	apperrors "go-tawk/pkg/errors"

	"github.com/gin-gonic/gin"
)

// GetMessageController serves a conversation's history over HTTP to either
// participant.
type GetMessageController struct {
	UC *usecase.GetMessageUseCase
}

func NewGetMessageController(uc *usecase.GetMessageUseCase) *GetMessageController {
	return &GetMessageController{UC: uc}
}

func (h *GetMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")

		limit := 50
		offset := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetMessageInput{
			ConversationID: conversationID,
			ViewerID:       auth.UserID(c),
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"messages": msgs,
			"limit":    limit,
			"offset":   offset,
			"count":    len(msgs),
		})
	}
}

func writeError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	c.JSON(code.HTTPStatus(), gin.H{"status": "error", "code": code, "message": apperrors.MessageOf(err)})
}
