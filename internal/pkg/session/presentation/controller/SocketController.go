package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-tawk/config"
	"go-tawk/internal/infrastructure/auth"
	"go-tawk/internal/infrastructure/realtime"
	"go-tawk/internal/pkg/session/application"
	apperrors "go-tawk/pkg/errors"
	"go-tawk/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/ratelimit"
)

// SocketController handles the websocket endpoint for realtime traffic.
type SocketController struct {
	manager    *application.Manager
	dispatcher *application.Dispatcher
	auth       auth.Authenticator
	cfg        config.Realtime
	log        *logger.Logger
}

func NewSocketController(manager *application.Manager, dispatcher *application.Dispatcher, authenticator auth.Authenticator, cfg config.Realtime, log *logger.Logger) *SocketController {
	if log == nil {
		log = &logger.Logger{}
	}
	return &SocketController{
		manager:    manager,
		dispatcher: dispatcher,
		auth:       authenticator,
		cfg:        cfg,
		log:        log,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ConnectedPayload is pushed once right after the upgrade.
type ConnectedPayload struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Anonymous bool   `json:"anonymous"`
}

const (
	defaultReadTimeout = 60 * time.Second
	maxFrameSize       = 1 << 20
)

// Handle upgrades HTTP connections to websocket and processes frames until
// the client disconnects or ends the session.
func (ctl *SocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, err := ctl.auth.Identify(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": apperrors.CodeUnauthenticated, "error": err.Error()})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(userID, ws, ctl.cfg.SendBuffer)
		conn.Start()

		// Work already dispatched finishes even if the client goes away.
		ctx := context.WithoutCancel(c.Request.Context())
		sess := ctl.manager.Open(ctx, userID, conn)
		defer func() {
			ctl.manager.Close(ctx, sess)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		readTimeout := ctl.cfg.ReadTimeout
		if readTimeout <= 0 {
			readTimeout = defaultReadTimeout
		}
		ws.SetReadLimit(maxFrameSize)
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		ws.SetPongHandler(func(string) error {
			ctl.manager.Touch(ctx, sess)
			return ws.SetReadDeadline(time.Now().Add(readTimeout))
		})

		_ = conn.Push(realtime.EventConnected, ConnectedPayload{
			SessionID: conn.SessionID(),
			UserID:    userID,
			Anonymous: sess.Anonymous(),
		})

		limiter := ratelimit.NewUnlimited()
		if ctl.cfg.EventsPerSecond > 0 {
			limiter = ratelimit.New(ctl.cfg.EventsPerSecond, ratelimit.WithoutSlack)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					ctl.log.Debug("socket: read failed", "user_id", userID, "session_id", conn.SessionID(), "err", err)
				}
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
			limiter.Take()

			var env realtime.Envelope
			if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
				_ = conn.Push(realtime.EventError, realtime.ErrorFrame{
					Code:    string(apperrors.CodeInvalidArgument),
					Message: "invalid frame",
				})
				continue
			}

			ctl.dispatcher.Dispatch(ctx, sess, env)
			if sess.Ended() {
				return
			}
		}
	}
}
