package realtime

import (
	"go-tawk/pkg/logger"
)

// Deliverer pushes an event to a user's live connection, best effort.
type Deliverer interface {
	Deliver(userID, event string, payload any) bool
}

// Router delivers events to whatever connection the registry currently binds
// to a user. An offline recipient is not an error: the call is a no-op and
// nothing is queued. It reports whether the event was handed to a connection.
type Router struct {
	presence Locator
	log      *logger.Logger
}

func NewRouter(presence Locator, log *logger.Logger) *Router {
	if log == nil {
		log = &logger.Logger{}
	}
	return &Router{presence: presence, log: log}
}

var _ Deliverer = (*Router)(nil)

func (r *Router) Deliver(userID, event string, payload any) bool {
	if userID == "" {
		return false
	}
	h, ok := r.presence.Lookup(userID)
	if !ok {
		r.log.Debug("realtime: recipient unreachable", "user_id", userID, "event", event)
		return false
	}
	if err := h.Push(event, payload); err != nil {
		r.log.Debug("realtime: push failed", "user_id", userID, "event", event,
			"session_id", h.SessionID(), "err", err)
		return false
	}
	return true
}
