package task

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	qport "go-tawk/internal/infrastructure/queue/port"
	"go-tawk/internal/infrastructure/realtime"
	social "go-tawk/internal/pkg/social/application/domain"
	"go-tawk/internal/pkg/social/persistence/repository/adapter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopback runs enqueued tasks inline through the registered handlers.
type loopback struct {
	handlers map[string]qport.Handler
	opts     []qport.EnqueueOption
}

func newLoopback() *loopback {
	return &loopback{handlers: make(map[string]qport.Handler)}
}

func (l *loopback) Register(taskType string, h qport.Handler) { l.handlers[taskType] = h }
func (l *loopback) Run(context.Context) error { return nil }
func (l *loopback) Stop(context.Context) error { return nil }
func (l *loopback) Close() error { return nil }

func (l *loopback) Enqueue(ctx context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	l.opts = append(l.opts, opts...)
	return t.Type, l.handlers[t.Type](ctx, t)
}

func TestQueueStatusStore_RoundTripsThroughWorker(t *testing.T) {
	ctx := context.Background()
	repo := adapter.NewMemSocialRepository()
	q := newLoopback()
	RegisterSetPresenceTask(q, repo)
	store := NewQueueStatusStore(q)

	t0 := time.Now().UTC()
	require.NoError(t, store.SetStatus(ctx, "u1", realtime.StatusOnline, t0))

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, social.StatusOnline, u.Status)
	require.Len(t, q.opts, 1)
	assert.Equal(t, PresenceQueue, q.opts[0].Queue)

	// An older offline write arriving late is dropped.
	require.NoError(t, store.SetStatus(ctx, "u1", realtime.StatusOffline, t0.Add(-time.Second)))
	u, err = repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, social.StatusOnline, u.Status)
}

func TestSetPresenceTask_BadPayload(t *testing.T) {
	q := newLoopback()
	RegisterSetPresenceTask(q, adapter.NewMemSocialRepository())

	err := q.handlers[SetPresenceTaskType](context.Background(), qport.Task{Type: SetPresenceTaskType, Payload: []byte("{")})
	assert.Error(t, err)

	empty, _ := json.Marshal(SetPresenceTaskPayload{})
	assert.NoError(t, q.handlers[SetPresenceTaskType](context.Background(), qport.Task{Payload: empty}))
}

func TestDirectStatusStore(t *testing.T) {
	ctx := context.Background()
	repo := adapter.NewMemSocialRepository()
	store := DirectStatusStore(repo)

	require.NoError(t, store.SetStatus(ctx, "u2", realtime.StatusOnline, time.Now()))
	u, err := repo.GetUser(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, social.StatusOnline, u.Status)
}
