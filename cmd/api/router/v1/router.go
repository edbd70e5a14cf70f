package v1

import (
	"go-tawk/internal/infrastructure/auth"
	chatctl "go-tawk/internal/pkg/chat/presentation/controller"
	chathttp "go-tawk/internal/pkg/chat/presentation/http"
	sessionctl "go-tawk/internal/pkg/session/presentation/controller"
	sessionhttp "go-tawk/internal/pkg/session/presentation/http"
	socialhttp "go-tawk/internal/pkg/social/presentation/http"

	"github.com/gin-gonic/gin"
)

// Handlers carries every controller mounted under /api/v1.
type Handlers struct {
	Socket      *sessionctl.SocketController
	GetMessages *chatctl.GetMessageController
	User        socialhttp.Controllers
}

// RegisterRoutes mounts all version 1 API routes under /api/v1. The socket
// resolves identity on its own; everything else requires one.
func RegisterRoutes(r *gin.Engine, authn auth.Authenticator, h Handlers) {
	v1 := r.Group("/api/v1")
	sessionhttp.RegisterRoutes(v1, h.Socket)

	protected := v1.Group("", auth.RequireIdentity(authn))
	socialhttp.RegisterRoutes(protected, h.User)
	chathttp.RegisterRoutes(protected, h.GetMessages)
}
