package realtime

import (
	"context"
	"sync"
	"time"

	"go-tawk/pkg/logger"
)

// Status is a user's presence as persisted on the user record.
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

// StatusStore persists presence transitions. at is taken under the registry
// lock, so stores can discard writes older than what they already hold.
type StatusStore interface {
	SetStatus(ctx context.Context, userID string, status Status, at time.Time) error
}

// Presence is the registry contract the session layer writes through.
type Presence interface {
	Locator
	Bind(ctx context.Context, userID string, h Handle)
	Unbind(ctx context.Context, userID string)
	Release(ctx context.Context, userID string, h Handle) bool
	Touch(ctx context.Context, userID string, h Handle) bool
}

// Locator is the read side of the registry used for routing.
type Locator interface {
	Lookup(userID string) (Handle, bool)
}

// Registry maps a user to at most one live handle. The last Bind wins; the
// evicted handle is not closed, it simply stops receiving routed events.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]Handle

	store StatusStore
	log   *logger.Logger
	now   func() time.Time
	last  time.Time
}

// NewRegistry builds a registry. store may be nil when presence is not persisted.
func NewRegistry(store StatusStore, log *logger.Logger) *Registry {
	if log == nil {
		log = &logger.Logger{}
	}
	return &Registry{
		handles: make(map[string]Handle),
		store:   store,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ Presence = (*Registry)(nil)

// Bind marks userID online and routes its events to h, replacing any
// previous handle.
func (r *Registry) Bind(ctx context.Context, userID string, h Handle) {
	if userID == "" || h == nil {
		return
	}
	r.mu.Lock()
	prev, replaced := r.handles[userID]
	r.handles[userID] = h
	at := r.stamp()
	r.mu.Unlock()

	if replaced && prev != h {
		r.log.Info("presence: session replaced", "user_id", userID,
			"previous", prev.SessionID(), "current", h.SessionID())
	}
	r.persist(ctx, userID, StatusOnline, at)
}

// Unbind marks userID offline regardless of which handle is bound.
func (r *Registry) Unbind(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	r.mu.Lock()
	delete(r.handles, userID)
	at := r.stamp()
	r.mu.Unlock()

	r.persist(ctx, userID, StatusOffline, at)
}

// Release unbinds userID only while h is still its bound handle, so a
// connection dropping after being replaced cannot evict its successor.
func (r *Registry) Release(ctx context.Context, userID string, h Handle) bool {
	if userID == "" || h == nil {
		return false
	}
	r.mu.Lock()
	current, ok := r.handles[userID]
	if !ok || current != h {
		r.mu.Unlock()
		return false
	}
	delete(r.handles, userID)
	at := r.stamp()
	r.mu.Unlock()

	r.persist(ctx, userID, StatusOffline, at)
	return true
}

// Lookup returns the handle bound to userID, if any.
func (r *Registry) Lookup(userID string) (Handle, bool) {
	r.mu.RLock()
	h, ok := r.handles[userID]
	r.mu.RUnlock()
	return h, ok
}

// Online returns the number of bound users.
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// Shutdown unbinds every user and closes handles that can be closed.
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.Lock()
	bound := r.handles
	r.handles = make(map[string]Handle)
	at := r.stamp()
	r.mu.Unlock()

	for userID, h := range bound {
		if c, ok := h.(interface{ Close(int, string) }); ok {
			c.Close(1001, "server shutdown")
		}
		r.persist(ctx, userID, StatusOffline, at)
	}
}

// Touch refreshes the presence of userID while h is still its bound handle.
func (r *Registry) Touch(ctx context.Context, userID string, h Handle) bool {
	if userID == "" || h == nil {
		return false
	}
	r.mu.Lock()
	if current, ok := r.handles[userID]; !ok || current != h {
		r.mu.Unlock()
		return false
	}
	at := r.stamp()
	r.mu.Unlock()

	if hb, ok := r.store.(Heartbeater); ok {
		if err := hb.Heartbeat(ctx, userID, at); err != nil {
			r.log.Warn("presence: heartbeat not stored", "user_id", userID, "err", err)
		}
	}
	return true
}

// stamp returns a time strictly after every earlier stamp, so writes taken
// in lock order keep that order in stores. Callers hold r.mu.
func (r *Registry) stamp() time.Time {
	at := r.now()
	if !at.After(r.last) {
		at = r.last.Add(time.Nanosecond)
	}
	r.last = at
	return at
}

func (r *Registry) persist(ctx context.Context, userID string, status Status, at time.Time) {
	if r.store == nil {
		return
	}
	if err := r.store.SetStatus(ctx, userID, status, at); err != nil {
		r.log.Warn("presence: status not persisted", "user_id", userID, "status", string(status), "err", err)
	}
}
