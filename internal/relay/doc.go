// Package relay implements the collaborative session hub.
//
// The hub combines three components behind one mutex:
//   - Lifecycle Manager: accepts connections, tracks join and leave, and
//     cleans up on close (hub.go)
//   - Event Dispatcher: decodes each inbound frame and routes it to the
//     handler for its type (dispatch.go)
//   - Broadcaster: fans an outbound message out to the live members of one
//     room, optionally skipping the sender (broadcast.go)
//
// Every presence change is applied and broadcast in the same critical
// section, and broadcasts only enqueue to each connection's send buffer, so
// members observe presence lists in a single serial order. Network writes
// happen later in each connection's own write goroutine.
package relay
