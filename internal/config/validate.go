package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *RelayConfig) Validate() error {
	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("server.shutdown_timeout must be >= 0")
	}

	if c.Connections.PongWait <= 0 {
		return errors.New("connections.pong_wait must be > 0")
	}
	if c.Connections.PingInterval <= 0 {
		return errors.New("connections.ping_interval must be > 0")
	}
	if c.Connections.PingInterval >= c.Connections.PongWait {
		return fmt.Errorf("connections.ping_interval (%s) must be less than pong_wait (%s)",
			c.Connections.PingInterval, c.Connections.PongWait)
	}
	if c.Connections.WriteTimeout <= 0 {
		return errors.New("connections.write_timeout must be > 0")
	}
	if c.Connections.MaxMessageSize < 1 {
		return errors.New("connections.max_message_size must be >= 1")
	}
	if c.Connections.SendBufferSize < 1 {
		return errors.New("connections.send_buffer_size must be >= 1")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if !c.Metrics.Disabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	return nil
}
