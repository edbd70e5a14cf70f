package http

import (
	"go-tawk/internal/pkg/social/presentation/controller"

	"github.com/gin-gonic/gin"
)

// Controllers groups the user endpoints so the router can be wired in one call.
type Controllers struct {
	UpdateMe          *controller.UpdateMeController
	GetUsers          *controller.GetUsersController
	GetFriends        *controller.GetFriendsController
	GetFriendRequests *controller.GetFriendRequestsController
	GetStatus         *controller.GetStatusController
}

// RegisterRoutes registers user endpoints under the given router group.
// The group is expected to carry the identity middleware.
func RegisterRoutes(g *gin.RouterGroup, ctl Controllers) {
	user := g.Group("/user")

	// PATCH /api/v1/user/update-me -> edit own profile
	user.PATCH("/update-me", ctl.UpdateMe.Handle())

	// GET /api/v1/user/get-users -> users the caller could befriend
	user.GET("/get-users", ctl.GetUsers.Handle())

	// GET /api/v1/user/get-friends
	user.GET("/get-friends", ctl.GetFriends.Handle())

	// GET /api/v1/user/get-friend-requests -> requests waiting on the caller
	user.GET("/get-friend-requests", ctl.GetFriendRequests.Handle())

	// GET /api/v1/user/status/:userId -> presence, cache first
	user.GET("/status/:userId", ctl.GetStatus.Handle())
}
