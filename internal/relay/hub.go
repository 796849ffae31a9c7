package relay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/code-ea/codeEditor-Live/internal/metrics"
	"github.com/code-ea/codeEditor-Live/internal/protocol"
	"github.com/code-ea/codeEditor-Live/internal/registry"
	"github.com/code-ea/codeEditor-Live/internal/room"
)

// Hub relays editor events between the connections of each room.
type Hub interface {
	// Connect registers an accepted connection in the unjoined state.
	Connect(c registry.Conn) error

	// HandleMessage decodes and dispatches one inbound frame.
	HandleMessage(id uuid.UUID, data []byte)

	// Disconnect runs the close cleanup for a connection. Safe to call more
	// than once.
	Disconnect(id uuid.UUID)

	// Shutdown refuses new connections, closes every open one with
	// going-away and waits until all have disconnected or ctx ends.
	Shutdown(ctx context.Context) error

	// State returns the lifecycle state of a connection.
	State(id uuid.UUID) State

	// Members returns the presence list of a room.
	Members(roomID string) []string

	// Rooms returns a summary of every active room.
	Rooms() []room.Summary

	// Stats returns current hub statistics.
	Stats() Stats
}

// hub is the internal implementation.
type hub struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Guards everything below
	mu      sync.Mutex
	conns   *registry.Registry
	rooms   *room.Directory
	closing bool

	// Stats
	received   int64
	dispatched int64
	dropped    int64
	broadcasts int64
	sendFailed int64
}

// NewHub creates a new hub. m may be nil.
func NewHub(cfg Config, m *metrics.Metrics, logger *slog.Logger) Hub {
	if logger == nil {
		logger = slog.Default()
	}

	return &hub{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		conns:   registry.New(),
		rooms:   room.NewDirectory(cfg.Rooms),
	}
}

// Connect registers c.
func (h *hub) Connect(c registry.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closing {
		return ErrHubClosed
	}

	h.conns.Register(c)
	h.metrics.SetConnections(h.conns.Len())

	h.logger.Debug("connection registered", "conn_id", c.ID().String(), "connections", h.conns.Len())
	return nil
}

// Disconnect performs the leave cleanup if the connection was joined, then
// unregisters it.
func (h *hub) Disconnect(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.conns.Has(id) {
		return
	}

	h.leaveLocked(id)
	h.conns.Unregister(id)
	h.metrics.SetConnections(h.conns.Len())

	h.logger.Debug("connection unregistered", "conn_id", id.String(), "connections", h.conns.Len())
}

// Shutdown closes every connection and waits for their cleanup.
func (h *hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closing = true
	conns := h.conns.All()
	h.mu.Unlock()

	h.logger.Info("closing connections", "count", len(conns))

	for _, c := range conns {
		if err := c.Close(websocket.CloseGoingAway, "server shutting down"); err != nil {
			h.logger.Debug("close failed", "conn_id", c.ID().String(), "error", err)
		}
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		h.mu.Lock()
		remaining := h.conns.Len()
		h.mu.Unlock()

		if remaining == 0 {
			h.logger.Info("all connections closed")
			return nil
		}

		select {
		case <-ctx.Done():
			h.logger.Warn("hub shutdown timed out", "remaining", remaining)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// State returns the lifecycle state of a connection.
func (h *hub) State(id uuid.UUID) State {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.conns.Has(id) {
		return StateClosed
	}
	if _, ok := h.conns.Identity(id); ok {
		return StateJoined
	}
	return StateUnjoined
}

// Members returns the presence list of a room.
func (h *hub) Members(roomID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.Members(roomID)
}

// Rooms returns a summary of every active room.
func (h *hub) Rooms() []room.Summary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.Rooms()
}

// Stats returns current statistics.
func (h *hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Stats{
		Connections:      h.conns.Len(),
		JoinedConns:      h.conns.Joined(),
		Rooms:            h.rooms.Len(),
		MessagesReceived: h.received,
		EventsDispatched: h.dispatched,
		MessagesDropped:  h.dropped,
		Broadcasts:       h.broadcasts,
		SendFailures:     h.sendFailed,
	}
}

// joinLocked moves the connection into roomID under user, leaving any
// previous room first.
func (h *hub) joinLocked(id uuid.UUID, roomID, user string) {
	h.leaveLocked(id)

	users := h.rooms.Join(roomID, user)
	h.conns.SetIdentity(id, registry.Identity{Room: roomID, User: user})
	h.metrics.SetRooms(h.rooms.Len())

	h.logger.Info("user joined room", "conn_id", id.String(), "room_id", roomID, "user", user, "users", len(users))

	h.broadcastLocked(roomID, protocol.NewUserJoined(users), uuid.Nil)
}

// leaveLocked removes the connection's user from its room and tells the
// remaining members. It returns false if the connection had not joined.
func (h *hub) leaveLocked(id uuid.UUID) bool {
	prev, ok := h.conns.ClearIdentity(id)
	if !ok {
		return false
	}

	users := h.rooms.Leave(prev.Room, prev.User)
	h.metrics.SetRooms(h.rooms.Len())

	h.logger.Info("user left room", "conn_id", id.String(), "room_id", prev.Room, "user", prev.User, "users", len(users))

	h.broadcastLocked(prev.Room, protocol.NewUserJoined(users), uuid.Nil)
	return true
}
