package http

import (
	"go-tawk/internal/pkg/session/presentation/controller"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the websocket endpoint. Identity is resolved by
// the socket controller itself since anonymous sessions may connect.
func RegisterRoutes(g *gin.RouterGroup, socket *controller.SocketController) {
	// GET /api/v1/chat/ws -> websocket endpoint for realtime traffic
	g.GET("/chat/ws", socket.Handle())
}
