package application_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-tawk/internal/infrastructure/realtime"
	"go-tawk/internal/infrastructure/realtime/realtimetest"
	chat "go-tawk/internal/pkg/chat/application/domain"
	chatusecase "go-tawk/internal/pkg/chat/application/usecase"
	chatrepo "go-tawk/internal/pkg/chat/persistence/repository/adapter"
	chatctl "go-tawk/internal/pkg/chat/presentation/controller"
	"go-tawk/internal/pkg/session/application"
	"go-tawk/internal/pkg/social/application/task"
	social "go-tawk/internal/pkg/social/application/domain"
	socialusecase "go-tawk/internal/pkg/social/application/usecase"
	socialrepo "go-tawk/internal/pkg/social/persistence/repository/adapter"
	socialctl "go-tawk/internal/pkg/social/presentation/controller"
	apperrors "go-tawk/pkg/errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	ctx        context.Context
	social     *socialrepo.MemSocialRepository
	chats      *chatrepo.MemChatRepository
	registry   *realtime.Registry
	manager    *application.Manager
	dispatcher *application.Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		ctx:    context.Background(),
		social: socialrepo.NewMemSocialRepository(),
		chats:  chatrepo.NewMemChatRepository(),
	}
	h.registry = realtime.NewRegistry(task.DirectStatusStore(h.social), nil)
	router := realtime.NewRouter(h.registry, nil)

	accept := socialusecase.NewAcceptFriendRequestUseCase(h.social, router, 2)
	accept.NewBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	h.manager = application.NewManager(h.registry, nil)
	h.dispatcher = application.NewDispatcher(time.Second, nil)
	h.manager.RegisterEnd(h.dispatcher)
	socialctl.NewSocialSocketController(socialusecase.NewCreateFriendRequestUseCase(h.social, router), accept).
		Register(h.dispatcher)
	get := chatusecase.NewGetMessageUseCase(h.chats)
	chatctl.NewChatSocketController(
		chatusecase.NewStartConversationUseCase(h.chats),
		chatusecase.NewListConversationsUseCase(h.chats),
		get,
		chatusecase.NewSendMessageUseCase(h.chats, router),
	).Register(h.dispatcher)
	return h
}

func (h *harness) connect(userID string) (*application.Session, *realtimetest.Handle) {
	handle := realtimetest.NewHandle()
	return h.manager.Open(h.ctx, userID, handle), handle
}

func (h *harness) emit(t *testing.T, s *application.Session, event, id string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	h.dispatcher.Dispatch(h.ctx, s, realtime.Envelope{Event: event, ID: id, Data: raw})
}

type ackFrame struct {
	ID     string          `json:"id"`
	Event  string          `json:"event"`
	Result json.RawMessage `json:"result"`
}

// lastAck decodes the result of the most recent ack for id into v.
func lastAck(t *testing.T, handle *realtimetest.Handle, id string, v any) {
	t.Helper()
	acks := handle.Named(realtime.EventAck)
	for i := len(acks) - 1; i >= 0; i-- {
		var a ackFrame
		require.NoError(t, acks[i].Decode(&a))
		if a.ID == id {
			if v != nil {
				require.NoError(t, json.Unmarshal(a.Result, v))
			}
			return
		}
	}
	t.Fatalf("no ack for %q, got %+v", id, handle.Events())
}

func lastError(t *testing.T, handle *realtimetest.Handle) realtime.ErrorFrame {
	t.Helper()
	errs := handle.Named(realtime.EventError)
	require.NotEmpty(t, errs, "expected an error frame")
	var f realtime.ErrorFrame
	require.NoError(t, errs[len(errs)-1].Decode(&f))
	return f
}

func TestFriendRequestScenario(t *testing.T) {
	h := newHarness(t)
	u1, u1Handle := h.connect("u1")
	u2, u2Handle := h.connect("u2")

	h.emit(t, u2, realtime.EventFriendRequest, "fr-1", map[string]string{"from": "u2", "to": "u1"})

	received := u1Handle.Named(realtime.EventNewFriendRequest)
	require.Len(t, received, 1)
	var notice social.RequestNotice
	require.NoError(t, received[0].Decode(&notice))
	assert.Equal(t, social.NoticeNewRequest, notice.Message)
	assert.Equal(t, "u2", notice.Request.SenderID)
	assert.Equal(t, "u1", notice.Request.RecipientID)

	sent := u2Handle.Named(realtime.EventRequestSent)
	require.Len(t, sent, 1)
	var sentNotice social.RequestNotice
	require.NoError(t, sent[0].Decode(&sentNotice))
	assert.Equal(t, social.NoticeRequestSent, sentNotice.Message)
	assert.Equal(t, notice.Request.ID, sentNotice.Request.ID)

	var created social.FriendRequest
	lastAck(t, u2Handle, "fr-1", &created)
	assert.Equal(t, notice.Request.ID, created.ID)

	t.Run("accept makes both users friends and removes the request", func(t *testing.T) {
		h.emit(t, u1, realtime.EventAcceptRequest, "acc-1", map[string]string{"request_id": created.ID})
		lastAck(t, u1Handle, "acc-1", nil)

		friendsOfU1, err := h.social.ListFriends(h.ctx, "u1")
		require.NoError(t, err)
		friendsOfU2, err := h.social.ListFriends(h.ctx, "u2")
		require.NoError(t, err)
		require.Len(t, friendsOfU1, 1)
		require.Len(t, friendsOfU2, 1)
		assert.Equal(t, "u2", friendsOfU1[0].ID)
		assert.Equal(t, "u1", friendsOfU2[0].ID)

		_, err = h.social.GetFriendRequest(h.ctx, created.ID)
		assert.Error(t, err)

		assert.Len(t, u1Handle.Named(realtime.EventRequestAccepted), 1)
		assert.Len(t, u2Handle.Named(realtime.EventRequestAccepted), 1)
	})

	t.Run("accepting a missing request is not found", func(t *testing.T) {
		h.emit(t, u2, realtime.EventAcceptRequest, "acc-2", map[string]string{"request_id": "missing"})
		f := lastError(t, u2Handle)
		assert.Equal(t, "acc-2", f.ID)
		assert.Equal(t, string(apperrors.CodeNotFound), f.Code)
	})
}

func TestConversationScenario(t *testing.T) {
	h := newHarness(t)
	u1, u1Handle := h.connect("u1")
	u2, u2Handle := h.connect("u2")

	h.emit(t, u1, realtime.EventStartConversation, "s1", map[string]string{"from": "u1", "to": "u2"})
	h.emit(t, u2, realtime.EventStartConversation, "s2", map[string]string{"from": "u2", "to": "u1"})

	var first, second chat.Conversation
	lastAck(t, u1Handle, "s1", &first)
	lastAck(t, u2Handle, "s2", &second)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, u1Handle.Named(realtime.EventStartChat), 1)

	h.emit(t, u1, realtime.EventTextMessage, "m1", map[string]string{
		"from": "u1", "to": "u2", "message": "hello", "conversation_id": first.ID,
	})
	lastAck(t, u1Handle, "m1", nil)

	h.emit(t, u1, realtime.EventGetMessages, "g1", map[string]string{"conversation_id": first.ID})
	var history []chat.Message
	lastAck(t, u1Handle, "g1", &history)
	require.Len(t, history, 1)
	assert.Equal(t, "u1", history[0].SenderID)
	assert.Equal(t, "hello", history[0].Body)
	assert.Equal(t, int64(1), history[0].Seq)
	assert.False(t, history[0].CreatedAt.IsZero())

	assert.Len(t, u1Handle.Named(realtime.EventNewTextMessage), 1)
	assert.Len(t, u2Handle.Named(realtime.EventNewTextMessage), 1)

	t.Run("message to a user who ended the session is stored, not delivered", func(t *testing.T) {
		h.emit(t, u2, realtime.EventEnd, "e1", map[string]string{"user_id": "u2"})
		assert.True(t, u2.Ended())
		_, online := h.registry.Lookup("u2")
		assert.False(t, online)

		h.emit(t, u1, realtime.EventTextMessage, "m2", map[string]string{
			"from": "u1", "to": "u2", "message": "are you there?", "conversation_id": first.ID,
		})
		lastAck(t, u1Handle, "m2", nil)
		assert.Len(t, u2Handle.Named(realtime.EventNewTextMessage), 1)

		msgs, err := h.chats.GetMessagesByConversation(h.ctx, first.ID, 0, 0)
		require.NoError(t, err)
		assert.Len(t, msgs, 2)

		user, err := h.social.GetUser(h.ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, social.StatusOffline, user.Status)
	})

	t.Run("file messages are unimplemented", func(t *testing.T) {
		h.emit(t, u1, realtime.EventFileMessage, "f1", map[string]string{"conversation_id": first.ID})
		assert.Equal(t, string(apperrors.CodeUnimplemented), lastError(t, u1Handle).Code)
	})
}

func TestSessionGuards(t *testing.T) {
	h := newHarness(t)

	t.Run("anonymous sessions cannot send events", func(t *testing.T) {
		anon, handle := h.connect("")
		assert.True(t, anon.Anonymous())
		h.emit(t, anon, realtime.EventFriendRequest, "x", map[string]string{"from": "u1", "to": "u2"})
		assert.Equal(t, string(apperrors.CodeUnauthenticated), lastError(t, handle).Code)
		assert.Equal(t, 0, h.registry.Online())
	})

	t.Run("claimed identity must match the connection", func(t *testing.T) {
		s, handle := h.connect("u1")
		h.emit(t, s, realtime.EventFriendRequest, "x", map[string]string{"from": "u3", "to": "u2"})
		assert.Equal(t, string(apperrors.CodePermissionDenied), lastError(t, handle).Code)
	})

	t.Run("unknown events are rejected", func(t *testing.T) {
		s, handle := h.connect("u1")
		h.emit(t, s, "shout", "x", nil)
		f := lastError(t, handle)
		assert.Equal(t, string(apperrors.CodeInvalidArgument), f.Code)
		assert.Equal(t, "shout", f.Event)
	})

	t.Run("panicking handler only fails its event", func(t *testing.T) {
		h.dispatcher.Handle("boom", func(context.Context, *application.Session, []byte) (any, error) {
			panic("kaboom")
		})
		s, handle := h.connect("u1")
		h.emit(t, s, "boom", "p1", nil)
		assert.Equal(t, string(apperrors.CodeInternal), lastError(t, handle).Code)

		h.emit(t, s, realtime.EventGetDirectConversations, "p2", map[string]string{"user_id": "u1"})
		lastAck(t, handle, "p2", nil)
	})

	t.Run("stale connection drop keeps the newer bind", func(t *testing.T) {
		old, _ := h.connect("u5")
		_, current := h.connect("u5")

		h.manager.Close(h.ctx, old)
		bound, ok := h.registry.Lookup("u5")
		require.True(t, ok)
		assert.Equal(t, current.SessionID(), bound.SessionID())
	})

	t.Run("disconnect after end does not unbind again", func(t *testing.T) {
		s, _ := h.connect("u6")
		h.manager.End(h.ctx, s)
		_, fresh := h.connect("u6")

		h.manager.Close(h.ctx, s)
		bound, ok := h.registry.Lookup("u6")
		require.True(t, ok)
		assert.Equal(t, fresh.SessionID(), bound.SessionID())
	})
}
