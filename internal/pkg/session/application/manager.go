package application

import (
	"context"

	"go-tawk/internal/infrastructure/realtime"
	"go-tawk/pkg/logger"
)

// Manager ties socket lifetimes to presence. A connection with an identity
// is bound on open; a transport drop releases it only if it is still the
// bound one, while an explicit end unbinds unconditionally.
type Manager struct {
	presence realtime.Presence
	log      *logger.Logger
}

func NewManager(presence realtime.Presence, log *logger.Logger) *Manager {
	if log == nil {
		log = &logger.Logger{}
	}
	return &Manager{presence: presence, log: log}
}

func (m *Manager) Open(ctx context.Context, userID string, h realtime.Handle) *Session {
	s := &Session{UserID: userID, Handle: h}
	if s.Anonymous() {
		m.log.Debug("session: anonymous connection", "session_id", h.SessionID())
		return s
	}
	m.presence.Bind(ctx, userID, h)
	m.log.Info("session: connected", "user_id", userID, "session_id", h.SessionID())
	return s
}

// End handles the client's end event.
func (m *Manager) End(ctx context.Context, s *Session) {
	if s.ended.Swap(true) || s.Anonymous() {
		return
	}
	m.presence.Unbind(ctx, s.UserID)
	m.log.Info("session: ended by client", "user_id", s.UserID, "session_id", s.Handle.SessionID())
}

// Close handles transport disconnect.
func (m *Manager) Close(ctx context.Context, s *Session) {
	if s.Anonymous() || s.Ended() {
		return
	}
	if m.presence.Release(ctx, s.UserID, s.Handle) {
		m.log.Info("session: disconnected", "user_id", s.UserID, "session_id", s.Handle.SessionID())
		return
	}
	m.log.Debug("session: stale connection closed", "user_id", s.UserID, "session_id", s.Handle.SessionID())
}

// Touch keeps the presence of a live connection from expiring.
func (m *Manager) Touch(ctx context.Context, s *Session) {
	if s.Anonymous() || s.Ended() {
		return
	}
	if !m.presence.Touch(ctx, s.UserID, s.Handle) {
		m.log.Debug("session: heartbeat from replaced connection", "user_id", s.UserID, "session_id", s.Handle.SessionID())
	}
}

type endRequest struct {
	UserID string `json:"user_id"`
}

// RegisterEnd installs the end event handler on d.
func (m *Manager) RegisterEnd(d *Dispatcher) {
	d.Handle(realtime.EventEnd, func(ctx context.Context, s *Session, data []byte) (any, error) {
		req, err := Decode[endRequest](data)
		if err != nil {
			return nil, err
		}
		if _, err := s.Claim(req.UserID); err != nil {
			return nil, err
		}
		m.End(ctx, s)
		return nil, nil
	})
}
