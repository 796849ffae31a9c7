package connection

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Errors
var (
	ErrClosed         = errors.New("connection closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// Default settings.
const (
	DefaultPongWait       = 60 * time.Second
	DefaultPingInterval   = DefaultPongWait * 9 / 10
	DefaultWriteTimeout   = 10 * time.Second
	DefaultMaxMessageSize = 1 << 20
	DefaultSendBufferSize = 256
)

// Config holds per-connection transport settings.
type Config struct {
	PingInterval   time.Duration // How often the server pings the peer
	PongWait       time.Duration // Read deadline extension granted by each pong
	WriteTimeout   time.Duration // Deadline for a single frame write
	MaxMessageSize int64         // Largest inbound frame accepted
	SendBufferSize int           // Outbound frames queued before dropping
}

// DefaultConfig returns the default transport settings.
func DefaultConfig() Config {
	return Config{
		PingInterval:   DefaultPingInterval,
		PongWait:       DefaultPongWait,
		WriteTimeout:   DefaultWriteTimeout,
		MaxMessageSize: DefaultMaxMessageSize,
		SendBufferSize: DefaultSendBufferSize,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.PongWait <= 0 {
		c.PongWait = d.PongWait
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = d.SendBufferSize
	}
	return c
}

// Handler receives inbound frames and the close notification of a Conn.
type Handler interface {
	// HandleMessage is called from the read goroutine for each text or
	// binary frame, in arrival order.
	HandleMessage(id uuid.UUID, data []byte)

	// Disconnect is called once after the read loop ends.
	Disconnect(id uuid.UUID)
}
