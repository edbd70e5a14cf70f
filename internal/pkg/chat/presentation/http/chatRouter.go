package http

import (
	"go-tawk/internal/pkg/chat/presentation/controller"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers chat HTTP endpoints under the given router group.
// The group is expected to carry the identity middleware.
func RegisterRoutes(g *gin.RouterGroup, getMessages *controller.GetMessageController) {
	// GET /api/v1/chat/conversations/:conversationId/messages -> conversation history
	g.GET("/chat/conversations/:conversationId/messages", getMessages.Handle())
}
