package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultListenAddr        = ":5000"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 15 * time.Second
	DefaultPongWait          = 60 * time.Second
	DefaultPingInterval      = 54 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultMaxMessageSize    = 1 << 20
	DefaultSendBufferSize    = 256
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultMetricsPath       = "/metrics"
)

// Default returns a config with every default applied.
func Default() *RelayConfig {
	cfg := &RelayConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *RelayConfig) applyDefaults() {
	// Server defaults
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Connections defaults
	if c.Connections.PongWait == 0 {
		c.Connections.PongWait = DefaultPongWait
	}
	if c.Connections.PingInterval == 0 {
		c.Connections.PingInterval = c.Connections.PongWait * 9 / 10
	}
	if c.Connections.WriteTimeout == 0 {
		c.Connections.WriteTimeout = DefaultWriteTimeout
	}
	if c.Connections.MaxMessageSize == 0 {
		c.Connections.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.Connections.SendBufferSize == 0 {
		c.Connections.SendBufferSize = DefaultSendBufferSize
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	// Metrics defaults
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
