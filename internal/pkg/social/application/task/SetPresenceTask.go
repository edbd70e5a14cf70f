package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	qport "go-tawk/internal/infrastructure/queue/port"
	"go-tawk/internal/infrastructure/realtime"
	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
)

// SetPresenceTaskType is the queue task name for persisting a presence change.
const SetPresenceTaskType = "presence:set_status"

// PresenceQueue is the asynq queue presence tasks are routed to.
const PresenceQueue = "presence"

// SetPresenceTaskPayload is the JSON payload transported via the queue.
// At orders writes: the store drops changes older than the one it holds.
type SetPresenceTaskPayload struct {
	UserID string    `json:"userId"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// RegisterSetPresenceTask binds the task handler to the provided server.
func RegisterSetPresenceTask(srv qport.Server, repo repository.SocialRepository) {
	srv.Register(SetPresenceTaskType, func(ctx context.Context, t qport.Task) error {
		var p SetPresenceTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return fmt.Errorf("presence task: bad payload: %w", err)
		}
		if p.UserID == "" {
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return repo.SetPresence(ctx, p.UserID, social.Status(p.Status), p.At)
	})
}

// QueueStatusStore hands presence changes to the worker instead of writing
// the user record on the socket path.
type QueueStatusStore struct {
	client qport.Client
}

func NewQueueStatusStore(client qport.Client) *QueueStatusStore {
	return &QueueStatusStore{client: client}
}

var _ realtime.StatusStore = (*QueueStatusStore)(nil)

func (s *QueueStatusStore) SetStatus(ctx context.Context, userID string, status realtime.Status, at time.Time) error {
	payload, err := json.Marshal(SetPresenceTaskPayload{UserID: userID, Status: string(status), At: at})
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(ctx, qport.Task{Type: SetPresenceTaskType, Payload: payload},
		qport.EnqueueOption{Queue: PresenceQueue, MaxRetry: 5, Retention: time.Hour})
	return err
}

// DirectStatusStore writes presence straight to the repository.
func DirectStatusStore(repo repository.SocialRepository) realtime.StatusStore {
	return realtime.StatusStoreFunc(func(ctx context.Context, userID string, status realtime.Status, at time.Time) error {
		return repo.SetPresence(ctx, userID, social.Status(status), at)
	})
}
