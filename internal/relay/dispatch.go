package relay

import (
	"errors"

	"github.com/google/uuid"

	"github.com/code-ea/codeEditor-Live/internal/metrics"
	"github.com/code-ea/codeEditor-Live/internal/protocol"
)

// HandleMessage decodes one inbound frame and routes it by type. Malformed
// frames and events that fail their preconditions are dropped; the
// connection stays open.
func (h *hub) HandleMessage(id uuid.UUID, data []byte) {
	h.metrics.MessageReceived()

	ev, err := protocol.Decode(data)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.received++

	// No events are processed once a connection has closed
	if !h.conns.Has(id) {
		return
	}

	if err != nil {
		reason := metrics.ReasonMalformed
		if errors.Is(err, protocol.ErrUnknownType) {
			reason = metrics.ReasonUnknownType
		}
		h.dropLocked(reason)
		h.logger.Debug("dropping inbound message", "conn_id", id.String(), "reason", reason, "error", err)
		return
	}

	h.dispatchLocked(id, ev)
}

func (h *hub) dispatchLocked(id uuid.UUID, ev protocol.Event) {
	var ok bool

	switch e := ev.(type) {
	case protocol.Join:
		h.joinLocked(id, e.RoomID, e.UserName)
		ok = true
	case protocol.CodeChange:
		ok = h.handleCodeChange(id, e)
	case protocol.Typing:
		ok = h.handleTyping(id, e)
	case protocol.LanguageChange:
		ok = h.relayToRoom(id, e.RoomID, protocol.NewLanguageUpdate(e.Language))
	case protocol.OutputChange:
		ok = h.relayToRoom(id, e.RoomID, protocol.NewOutputUpdate(e.Output))
	case protocol.InputChange:
		ok = h.relayToRoom(id, e.RoomID, protocol.NewInputUpdate(e.Input))
	case protocol.LeaveRoom:
		ok = h.leaveLocked(id)
	}

	if !ok {
		h.dropLocked(metrics.ReasonPrecondition)
		h.logger.Debug("event ignored", "conn_id", id.String(), "type", string(ev.Type()))
		return
	}

	h.dispatched++
	h.metrics.EventDispatched(string(ev.Type()))
}

// handleCodeChange relays editor contents to the sender's room, excluding
// the sender.
func (h *hub) handleCodeChange(id uuid.UUID, e protocol.CodeChange) bool {
	ident, ok := h.conns.Identity(id)
	if !ok {
		return false
	}
	h.broadcastLocked(ident.Room, protocol.NewCodeUpdate(e.Code), id)
	return true
}

// handleTyping relays a typing indicator, excluding the sender. The payload
// name wins over the joined name when both are present.
func (h *hub) handleTyping(id uuid.UUID, e protocol.Typing) bool {
	ident, ok := h.conns.Identity(id)
	if !ok {
		return false
	}
	user := e.UserName
	if user == "" {
		user = ident.User
	}
	h.broadcastLocked(ident.Room, protocol.NewUserTyping(user), id)
	return true
}

// relayToRoom broadcasts msg to the whole target room, sender included. The
// target is the sender's room when joined, else the payload room id.
func (h *hub) relayToRoom(id uuid.UUID, payloadRoom string, msg protocol.Message) bool {
	target := payloadRoom
	if ident, ok := h.conns.Identity(id); ok {
		target = ident.Room
	}
	if target == "" {
		return false
	}
	h.broadcastLocked(target, msg, uuid.Nil)
	return true
}

func (h *hub) dropLocked(reason string) {
	h.dropped++
	h.metrics.MessageDropped(reason)
}
