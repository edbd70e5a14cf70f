package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-tawk/internal/infrastructure/realtime"
	apperrors "go-tawk/pkg/errors"
	"go-tawk/pkg/logger"
)

// Handler processes one inbound event. The result, if any, is returned to
// the sender in the ack frame.
type Handler func(ctx context.Context, s *Session, data []byte) (any, error)

// Dispatcher routes inbound envelopes to handlers and answers each one with
// an ack or an error frame. A failing or panicking handler only affects the
// event that triggered it.
type Dispatcher struct {
	handlers map[string]Handler
	timeout  time.Duration
	log      *logger.Logger
}

func NewDispatcher(timeout time.Duration, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = &logger.Logger{}
	}
	return &Dispatcher{handlers: make(map[string]Handler), timeout: timeout, log: log}
}

// Handle registers h for event, replacing any previous handler.
func (d *Dispatcher) Handle(event string, h Handler) {
	d.handlers[event] = h
}

// Dispatch runs the handler for env synchronously on the caller's goroutine.
func (d *Dispatcher) Dispatch(ctx context.Context, s *Session, env realtime.Envelope) {
	h, ok := d.handlers[env.Event]
	if !ok {
		d.fail(s, env, apperrors.InvalidArg(fmt.Sprintf("unknown event %q", env.Event)))
		return
	}
	if s.Anonymous() {
		d.fail(s, env, apperrors.ErrAnonymousSession)
		return
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	result, err := d.run(ctx, h, s, env)
	if err != nil {
		d.fail(s, env, err)
		return
	}
	if err := s.Reply(realtime.EventAck, realtime.Ack{ID: env.ID, Event: env.Event, Result: result}); err != nil {
		d.log.Debug("dispatch: ack not delivered", "event", env.Event, "err", err)
	}
}

func (d *Dispatcher) run(ctx context.Context, h Handler, s *Session, env realtime.Envelope) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("dispatch: handler panic", "event", env.Event, "user_id", s.UserID, "panic", r)
			result, err = nil, apperrors.Internal("internal server error")
		}
	}()
	return h(ctx, s, env.Data)
}

func (d *Dispatcher) fail(s *Session, env realtime.Envelope, err error) {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeInternal || code == apperrors.CodeUnknown {
		d.log.Error("dispatch: event failed", "event", env.Event, "user_id", s.UserID, "err", err)
	} else {
		d.log.Debug("dispatch: event rejected", "event", env.Event, "user_id", s.UserID, "err", err)
	}
	frame := realtime.ErrorFrame{
		ID:      env.ID,
		Event:   env.Event,
		Code:    string(code),
		Message: apperrors.MessageOf(err),
	}
	if err := s.Reply(realtime.EventError, frame); err != nil {
		d.log.Debug("dispatch: error frame not delivered", "event", env.Event, "err", err)
	}
}

// Decode unmarshals an event body. An absent body decodes to the zero value.
func Decode[T any](data []byte) (T, error) {
	var v T
	if len(data) == 0 || string(data) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, apperrors.InvalidArg("invalid event payload")
	}
	return v, nil
}
