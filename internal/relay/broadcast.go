package relay

import (
	"errors"

	"github.com/google/uuid"

	"github.com/code-ea/codeEditor-Live/internal/connection"
	"github.com/code-ea/codeEditor-Live/internal/metrics"
	"github.com/code-ea/codeEditor-Live/internal/protocol"
)

// broadcastLocked enqueues msg to every live connection in roomID except
// exclude (uuid.Nil excludes nobody) and returns the number of connections
// reached. A failed send is logged and skipped. Caller must hold h.mu.
func (h *hub) broadcastLocked(roomID string, msg protocol.Message, exclude uuid.UUID) int {
	data, err := protocol.Encode(msg)
	if err != nil {
		h.logger.Error("failed to encode broadcast", "type", msg.MessageType(), "error", err)
		return 0
	}

	delivered := 0
	for _, c := range h.conns.InRoom(roomID) {
		if c.ID() == exclude || !c.IsOpen() {
			continue
		}

		if err := c.Send(data); err != nil {
			h.sendFailed++
			reason := metrics.ReasonClosed
			if errors.Is(err, connection.ErrSendBufferFull) {
				reason = metrics.ReasonBufferFull
			}
			h.metrics.MessageDropped(reason)
			h.logger.Warn("send failed, dropping message",
				"conn_id", c.ID().String(),
				"room_id", roomID,
				"type", msg.MessageType(),
				"error", err,
			)
			continue
		}
		delivered++
	}

	h.broadcasts++
	h.metrics.Broadcast(msg.MessageType(), delivered)
	return delivered
}
