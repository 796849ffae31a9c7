// Package connection wraps one accepted WebSocket as a relay connection.
//
// A Conn:
//   - Reads client frames and hands each one to a Handler
//   - Queues outbound frames in a bounded buffer drained by a single writer
//   - Pings the peer and closes it when pongs stop arriving
//   - Reports its own close to the Handler exactly once
package connection
