package registry

import (
	"sort"

	"github.com/google/uuid"
)

// Conn is a connection as seen by the registry and the broadcaster.
type Conn interface {
	// ID returns the connection handle.
	ID() uuid.UUID

	// Send enqueues a frame without blocking.
	Send(data []byte) error

	// IsOpen reports whether the transport can still accept frames.
	IsOpen() bool

	// Close closes the transport with the given close code and reason.
	Close(code int, reason string) error
}

// Identity is the (room, user) pair a connection joined with.
type Identity struct {
	Room string
	User string
}

// IsZero reports whether the identity is unset.
func (i Identity) IsZero() bool {
	return i.Room == ""
}

type entry struct {
	conn     Conn
	seq      uint64
	identity Identity
}

// Registry tracks registered connections and their identities.
type Registry struct {
	entries map[uuid.UUID]*entry
	byRoom  map[string]map[uuid.UUID]*entry
	seq     uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[uuid.UUID]*entry),
		byRoom:  make(map[string]map[uuid.UUID]*entry),
	}
}

// Register adds a connection with an empty identity. Registering an id twice
// replaces the connection and clears its identity.
func (r *Registry) Register(c Conn) {
	id := c.ID()
	if old, ok := r.entries[id]; ok {
		r.unindex(id, old)
	}
	r.seq++
	r.entries[id] = &entry{conn: c, seq: r.seq}
}

// Has reports whether the connection is registered.
func (r *Registry) Has(id uuid.UUID) bool {
	_, ok := r.entries[id]
	return ok
}

// SetIdentity overwrites the identity of a registered connection.
// It returns false if the connection is not registered.
func (r *Registry) SetIdentity(id uuid.UUID, ident Identity) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	r.unindex(id, e)
	e.identity = ident
	if !ident.IsZero() {
		members, ok := r.byRoom[ident.Room]
		if !ok {
			members = make(map[uuid.UUID]*entry)
			r.byRoom[ident.Room] = members
		}
		members[id] = e
	}
	return true
}

// Identity returns the current identity. ok is false when the connection is
// unknown or has not joined a room.
func (r *Registry) Identity(id uuid.UUID) (Identity, bool) {
	e, ok := r.entries[id]
	if !ok || e.identity.IsZero() {
		return Identity{}, false
	}
	return e.identity, true
}

// ClearIdentity resets the identity and returns the previous one.
// ok is false when there was nothing to clear.
func (r *Registry) ClearIdentity(id uuid.UUID) (Identity, bool) {
	e, ok := r.entries[id]
	if !ok || e.identity.IsZero() {
		return Identity{}, false
	}
	prev := e.identity
	r.unindex(id, e)
	e.identity = Identity{}
	return prev, true
}

// Unregister removes the connection. It is a no-op for unknown ids.
func (r *Registry) Unregister(id uuid.UUID) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	r.unindex(id, e)
	delete(r.entries, id)
}

// InRoom returns the connections whose identity room equals room, in
// registration order. Liveness is not checked here.
func (r *Registry) InRoom(room string) []Conn {
	members := r.byRoom[room]
	if len(members) == 0 {
		return nil
	}

	sorted := make([]*entry, 0, len(members))
	for _, e := range members {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].seq < sorted[j].seq })

	conns := make([]Conn, len(sorted))
	for i, e := range sorted {
		conns[i] = e.conn
	}
	return conns
}

// All returns every registered connection in registration order.
func (r *Registry) All() []Conn {
	sorted := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].seq < sorted[j].seq })

	conns := make([]Conn, len(sorted))
	for i, e := range sorted {
		conns[i] = e.conn
	}
	return conns
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Joined returns the number of connections currently in a room.
func (r *Registry) Joined() int {
	n := 0
	for _, members := range r.byRoom {
		n += len(members)
	}
	return n
}

func (r *Registry) unindex(id uuid.UUID, e *entry) {
	if e.identity.IsZero() {
		return
	}
	members := r.byRoom[e.identity.Room]
	delete(members, id)
	if len(members) == 0 {
		delete(r.byRoom, e.identity.Room)
	}
}
