package connection

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is a server-side WebSocket connection.
type Conn struct {
	id     uuid.UUID
	cfg    Config
	logger *slog.Logger

	ws *websocket.Conn

	// Outbound queue, drained by writeLoop
	send chan []byte
	done chan struct{}

	// State
	mu          sync.RWMutex
	open        bool
	closeCode   int
	closeReason string
	closeOnce   sync.Once
	writerDone  chan struct{}
	lastPongAt  time.Time
}

// New wraps an upgraded WebSocket. Call Serve to start it.
func New(ws *websocket.Conn, cfg Config, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	id := uuid.New()

	return &Conn{
		id:         id,
		cfg:        cfg,
		logger:     logger.With("conn_id", id.String()),
		ws:         ws,
		send:       make(chan []byte, cfg.SendBufferSize),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
		open:       true,
		closeCode:  websocket.CloseNormalClosure,
	}
}

// ID returns the connection handle.
func (c *Conn) ID() uuid.UUID {
	return c.id
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() string {
	return c.ws.RemoteAddr().String()
}

// IsOpen reports whether the connection still accepts outbound frames.
func (c *Conn) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open
}

// LastPongAt returns when the peer last answered a ping.
func (c *Conn) LastPongAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastPongAt
}

// Send enqueues a text frame. It never blocks: a full queue returns
// ErrSendBufferFull and the frame is dropped.
func (c *Conn) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.open {
		return ErrClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close stops the connection. The writer sends a close frame with code and
// reason, then closes the socket, which ends the read loop.
func (c *Conn) Close(code int, reason string) error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.open = false
		c.closeCode = code
		c.closeReason = reason
		c.mu.Unlock()

		close(c.done)
	})
	return nil
}

// Serve runs the connection until it closes. The write loop runs in its own
// goroutine; the read loop runs in the caller's. h.Disconnect is called once
// the read loop ends, before Serve returns.
func (c *Conn) Serve(h Handler) {
	go c.writeLoop()

	c.readLoop(h)

	c.Close(websocket.CloseNormalClosure, "")
	h.Disconnect(c.id)
	<-c.writerDone
}

// readLoop reads frames until the socket fails or closes.
func (c *Conn) readLoop(h Handler) {
	c.ws.SetReadLimit(c.cfg.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))

	c.ws.SetPongHandler(func(string) error {
		c.mu.Lock()
		c.lastPongAt = time.Now()
		c.mu.Unlock()
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Closed locally
			default:
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
					websocket.CloseNoStatusReceived,
				) {
					c.logger.Debug("websocket read failed", "error", err)
				}
			}
			return
		}

		h.HandleMessage(c.id, data)
	}
}

// writeLoop drains the send queue and pings the peer. It is the only
// goroutine that writes data frames.
func (c *Conn) writeLoop() {
	defer close(c.writerDone)

	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("websocket write failed", "error", err)
				c.Close(websocket.CloseAbnormalClosure, "")
				c.ws.Close()
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteTimeout)
			if err := c.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
			}

		case <-c.done:
			c.mu.RLock()
			code, reason := c.closeCode, c.closeReason
			c.mu.RUnlock()

			if code != websocket.CloseAbnormalClosure {
				c.ws.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(code, reason),
					time.Now().Add(time.Second),
				)
			}
			c.ws.Close()
			return
		}
	}
}
