package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-tawk/config"
	"go-tawk/internal/infrastructure/auth"
	"go-tawk/internal/infrastructure/realtime"
	chat "go-tawk/internal/pkg/chat/application/domain"
	chatusecase "go-tawk/internal/pkg/chat/application/usecase"
	chatrepo "go-tawk/internal/pkg/chat/persistence/repository/adapter"
	chatctl "go-tawk/internal/pkg/chat/presentation/controller"
	"go-tawk/internal/pkg/session/application"
	"go-tawk/internal/pkg/session/presentation/controller"
	sessionhttp "go-tawk/internal/pkg/session/presentation/http"
	apperrors "go-tawk/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, authn auth.Authenticator) (*httptest.Server, *realtime.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := realtime.NewRegistry(nil, nil)
	router := realtime.NewRouter(registry, nil)
	chats := chatrepo.NewMemChatRepository()

	manager := application.NewManager(registry, nil)
	dispatcher := application.NewDispatcher(time.Second, nil)
	manager.RegisterEnd(dispatcher)
	chatctl.NewChatSocketController(
		chatusecase.NewStartConversationUseCase(chats),
		chatusecase.NewListConversationsUseCase(chats),
		chatusecase.NewGetMessageUseCase(chats),
		chatusecase.NewSendMessageUseCase(chats, router),
	).Register(dispatcher)

	socket := controller.NewSocketController(manager, dispatcher, authn, config.Realtime{
		SendBuffer:  16,
		ReadTimeout: 5 * time.Second,
	}, nil)

	r := gin.New()
	sessionhttp.RegisterRoutes(r.Group("/api/v1"), socket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, registry
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws" + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// next reads frames until one named event arrives.
func next(t *testing.T, ws *websocket.Conn, event string) frame {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var f frame
		require.NoError(t, ws.ReadJSON(&f))
		if f.Event == event {
			return f
		}
	}
}

func send(t *testing.T, ws *websocket.Conn, event, id string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(realtime.Envelope{Event: event, ID: id, Data: raw}))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestSocketController_TextMessageRoundTrip(t *testing.T) {
	srv, registry := newServer(t, auth.QueryAuthenticator{})

	alice := dial(t, srv, "?user_id=alice")
	var hello controller.ConnectedPayload
	require.NoError(t, json.Unmarshal(next(t, alice, realtime.EventConnected).Data, &hello))
	assert.Equal(t, "alice", hello.UserID)
	assert.False(t, hello.Anonymous)

	bob := dial(t, srv, "?user_id=bob")
	next(t, bob, realtime.EventConnected)
	waitFor(t, func() bool { return registry.Online() == 2 })

	send(t, alice, realtime.EventStartConversation, "1", map[string]string{"from": "alice", "to": "bob"})
	var started struct {
		Conversation chat.Conversation `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(next(t, alice, realtime.EventStartChat).Data, &started))
	require.NotEmpty(t, started.Conversation.ID)

	send(t, alice, realtime.EventTextMessage, "2", map[string]string{
		"from": "alice", "to": "bob", "message": "see https://example.com", "conversation_id": started.Conversation.ID,
	})

	var notice chatusecase.NewTextMessageNotice
	require.NoError(t, json.Unmarshal(next(t, bob, realtime.EventNewTextMessage).Data, &notice))
	assert.Equal(t, started.Conversation.ID, notice.ConversationID)
	assert.Equal(t, "alice", notice.Message.SenderID)
	assert.Equal(t, chat.MessageTypeLink, notice.Message.Type)

	t.Run("end unbinds and closes the socket", func(t *testing.T) {
		send(t, bob, realtime.EventEnd, "3", map[string]string{"user_id": "bob"})
		waitFor(t, func() bool {
			_, ok := registry.Lookup("bob")
			return !ok
		})

		require.NoError(t, bob.SetReadDeadline(time.Now().Add(3*time.Second)))
		for {
			if _, _, err := bob.ReadMessage(); err != nil {
				break
			}
		}
	})

	t.Run("disconnect releases presence", func(t *testing.T) {
		require.NoError(t, alice.Close())
		waitFor(t, func() bool { return registry.Online() == 0 })
	})
}

func TestSocketController_AnonymousSession(t *testing.T) {
	srv, registry := newServer(t, auth.QueryAuthenticator{})

	ws := dial(t, srv, "")
	var hello controller.ConnectedPayload
	require.NoError(t, json.Unmarshal(next(t, ws, realtime.EventConnected).Data, &hello))
	assert.True(t, hello.Anonymous)
	assert.Equal(t, 0, registry.Online())

	send(t, ws, realtime.EventGetDirectConversations, "1", nil)
	var failure realtime.ErrorFrame
	require.NoError(t, json.Unmarshal(next(t, ws, realtime.EventError).Data, &failure))
	assert.Equal(t, "1", failure.ID)
	assert.Equal(t, string(apperrors.CodeUnauthenticated), failure.Code)
}

func TestSocketController_InvalidFrame(t *testing.T) {
	srv, _ := newServer(t, auth.QueryAuthenticator{})

	ws := dial(t, srv, "?user_id=carol")
	next(t, ws, realtime.EventConnected)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("not json")))
	var failure realtime.ErrorFrame
	require.NoError(t, json.Unmarshal(next(t, ws, realtime.EventError).Data, &failure))
	assert.Equal(t, string(apperrors.CodeInvalidArgument), failure.Code)

	send(t, ws, realtime.EventGetDirectConversations, "ok", map[string]string{"user_id": "carol"})
	next(t, ws, realtime.EventAck)
}

func TestSocketController_RejectsBadToken(t *testing.T) {
	srv, _ := newServer(t, auth.NewJWTAuthenticator("secret"))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
