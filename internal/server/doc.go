// Package server exposes the relay over HTTP.
//
// Routes:
//   - GET /ws: WebSocket upgrade; each socket is registered with the hub
//     and served until it closes
//   - GET /health: liveness, build info and hub statistics
//   - GET /api/rooms: active rooms and their member counts
//   - GET /metrics: Prometheus exposition, unless disabled
package server
