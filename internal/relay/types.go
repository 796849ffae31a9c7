package relay

import (
	"errors"

	"github.com/code-ea/codeEditor-Live/internal/room"
)

// Errors
var (
	ErrHubClosed = errors.New("hub closed")
)

// Config holds hub settings.
type Config struct {
	Rooms room.Config
}

// State is the lifecycle state of a connection.
type State int

const (
	StateClosed State = iota
	StateUnjoined
	StateJoined
)

func (s State) String() string {
	switch s {
	case StateUnjoined:
		return "unjoined"
	case StateJoined:
		return "joined"
	default:
		return "closed"
	}
}

// Stats contains runtime statistics.
type Stats struct {
	Connections      int   `json:"connections"`
	JoinedConns      int   `json:"joined_connections"`
	Rooms            int   `json:"rooms"`
	MessagesReceived int64 `json:"messages_received"`
	EventsDispatched int64 `json:"events_dispatched"`
	MessagesDropped  int64 `json:"messages_dropped"`
	Broadcasts       int64 `json:"broadcasts"`
	SendFailures     int64 `json:"send_failures"`
}
