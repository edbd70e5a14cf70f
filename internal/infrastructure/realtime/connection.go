package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pingPeriod        = 30 * time.Second
	defaultSendBuffer = 128
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrBufferExceeded   = errors.New("connection buffer exceeded")
)

// Handle is a live connection events can be pushed to. The registry keeps a
// non-owning reference; the transport owns its lifetime.
type Handle interface {
	SessionID() string
	Push(event string, payload any) error
}

// Connection wraps a websocket and serializes outbound writes through a
// buffered channel drained by a single write loop. Safe for concurrent use.
type Connection struct {
	ID     string
	UserID string

	ws    *websocket.Conn
	send  chan []byte
	close chan struct{}

	mu         sync.Mutex
	started    bool
	closed     bool
	closeFrame []byte
}

// NewConnection constructs a Connection. userID may be empty for an
// anonymous session.
func NewConnection(userID string, ws *websocket.Conn, buffer int) *Connection {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &Connection{
		ID:     uuid.NewString(),
		UserID: userID,
		ws:     ws,
		send:   make(chan []byte, buffer),
		close:  make(chan struct{}),
	}
}

var _ Handle = (*Connection)(nil)

func (c *Connection) SessionID() string { return c.ID }

// Start launches the write loop. Calls after the first, or after Close, are no-ops.
func (c *Connection) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()
	go c.writeLoop()
}

// Push encodes an event envelope and enqueues it.
func (c *Connection) Push(event string, payload any) error {
	b, err := Encode(event, payload)
	if err != nil {
		return err
	}
	return c.Send(b)
}

// Send enqueues payload for delivery. A client too slow to drain its buffer
// is disconnected so backpressure stays bounded.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.close:
		return ErrConnectionClosed
	default:
	}
	select {
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return ErrBufferExceeded
	}
}

// Done is closed once Close has been called.
func (c *Connection) Done() <-chan struct{} { return c.close }

// Close stops accepting frames. The write loop flushes what is already
// queued, then sends the close frame and releases the socket. The send
// channel stays open so concurrent Send calls never panic.
func (c *Connection) Close(code int, reason string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.closeFrame = websocket.FormatCloseMessage(code, reason)
	close(c.close)
	started := c.started
	c.mu.Unlock()

	if !started {
		c.finish()
	}
}

func (c *Connection) finish() {
	_ = c.ws.WriteControl(websocket.CloseMessage, c.closeFrame, time.Now().Add(writeWait))
	_ = c.ws.Close()
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.finish()

	for {
		select {
		case <-c.close:
			c.flush()
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := c.writePing(); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

// flush writes whatever is still buffered under one shared deadline.
func (c *Connection) flush() {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}
	for {
		select {
		case msg := <-c.send:
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
