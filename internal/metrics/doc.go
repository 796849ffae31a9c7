// Package metrics provides Prometheus metrics for monitoring the relay.
//
// Key metrics:
//   - Live WebSocket connections and active rooms
//   - Inbound message rate and dispatched events by type
//   - Dropped messages by reason (malformed, unknown type, full send buffer)
//   - Broadcast fan-out and per-connection deliveries
//
// All collectors live on a private registry so tests can create independent
// instances. A nil *Metrics is valid and records nothing.
package metrics
