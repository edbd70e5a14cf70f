// Package realtimetest provides an in-memory realtime.Handle for tests.
package realtimetest

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Pushed is one event recorded by a Handle.
type Pushed struct {
	Event string
	Data  json.RawMessage
}

// Handle records every pushed event. Set Err to make Push fail.
type Handle struct {
	ID  string
	Err error

	mu     sync.Mutex
	events []Pushed
	closed bool
}

func NewHandle() *Handle {
	return &Handle{ID: uuid.NewString()}
}

func (h *Handle) SessionID() string { return h.ID }

func (h *Handle) Push(event string, payload any) error {
	if h.Err != nil {
		return h.Err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.events = append(h.events, Pushed{Event: event, Data: data})
	h.mu.Unlock()
	return nil
}

func (h *Handle) Close(int, string) {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Events returns a copy of everything pushed so far.
func (h *Handle) Events() []Pushed {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Pushed(nil), h.events...)
}

// Named returns the pushed events with the given name.
func (h *Handle) Named(event string) []Pushed {
	var out []Pushed
	for _, p := range h.Events() {
		if p.Event == event {
			out = append(out, p)
		}
	}
	return out
}

// Decode unmarshals the data of an event into v.
func (p Pushed) Decode(v any) error {
	return json.Unmarshal(p.Data, v)
}
