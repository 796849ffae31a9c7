package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
server:
  listen_addr: ":8080"
  allowed_origins:
    - http://localhost:3000
connections:
  ping_interval: 20s
  pong_wait: 30s
  send_buffer_size: 64
rooms:
  keep_empty: true
logging:
  level: debug
  format: json
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %q, want %q", cfg.Server.ListenAddr, ":8080")
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Server.AllowedOrigins = %v, want [http://localhost:3000]", cfg.Server.AllowedOrigins)
	}
	if cfg.Connections.PingInterval != 20*time.Second {
		t.Errorf("Connections.PingInterval = %v, want %v", cfg.Connections.PingInterval, 20*time.Second)
	}
	if cfg.Connections.PongWait != 30*time.Second {
		t.Errorf("Connections.PongWait = %v, want %v", cfg.Connections.PongWait, 30*time.Second)
	}
	if cfg.Connections.SendBufferSize != 64 {
		t.Errorf("Connections.SendBufferSize = %d, want 64", cfg.Connections.SendBufferSize)
	}
	if !cfg.Rooms.KeepEmpty {
		t.Error("Rooms.KeepEmpty = false, want true")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("RELAY_PORT", "7000")

	yaml := `
server:
  listen_addr: ":${RELAY_PORT}"
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.ListenAddr != ":7000" {
		t.Errorf("Server.ListenAddr = %q, want %q", cfg.Server.ListenAddr, ":7000")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
logging:
  level: warn
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("Server.ListenAddr = %q, want %q", cfg.Server.ListenAddr, DefaultListenAddr)
	}
	if cfg.Server.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("Server.ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)
	}
	if cfg.Connections.PongWait != DefaultPongWait {
		t.Errorf("Connections.PongWait = %v, want %v", cfg.Connections.PongWait, DefaultPongWait)
	}
	if cfg.Connections.PingInterval != DefaultPingInterval {
		t.Errorf("Connections.PingInterval = %v, want %v", cfg.Connections.PingInterval, DefaultPingInterval)
	}
	if cfg.Connections.SendBufferSize != DefaultSendBufferSize {
		t.Errorf("Connections.SendBufferSize = %d, want %d", cfg.Connections.SendBufferSize, DefaultSendBufferSize)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, DefaultLogFormat)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
}

func TestPingIntervalFollowsPongWait(t *testing.T) {
	path := writeTempFile(t, "connections:\n  pong_wait: 10s\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Connections.PingInterval != 9*time.Second {
		t.Errorf("Connections.PingInterval = %v, want %v", cfg.Connections.PingInterval, 9*time.Second)
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := LoadAndValidate("")
		if err != nil {
			t.Fatalf("LoadAndValidate failed: %v", err)
		}
		if cfg.Server.ListenAddr != DefaultListenAddr {
			t.Errorf("Server.ListenAddr = %q, want %q", cfg.Server.ListenAddr, DefaultListenAddr)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeTempFile(t, "logging:\n  format: xml\n")
		_, err := LoadAndValidate(path)
		if err == nil {
			t.Fatal("LoadAndValidate expected error, got nil")
		}
		if !strings.Contains(err.Error(), "logging.format") {
			t.Errorf("error = %q, should mention logging.format", err)
		}
	})
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTempFile(t, "server: [unclosed")

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	valid := func() RelayConfig {
		return *Default()
	}

	tests := []struct {
		name    string
		mutate  func(*RelayConfig)
		wantErr string
	}{
		{
			name:    "missing listen addr",
			mutate:  func(c *RelayConfig) { c.Server.ListenAddr = "" },
			wantErr: "server.listen_addr is required",
		},
		{
			name:    "ping interval not below pong wait",
			mutate:  func(c *RelayConfig) { c.Connections.PingInterval = c.Connections.PongWait },
			wantErr: "connections.ping_interval (1m0s) must be less than pong_wait (1m0s)",
		},
		{
			name:    "zero send buffer",
			mutate:  func(c *RelayConfig) { c.Connections.SendBufferSize = 0 },
			wantErr: "connections.send_buffer_size must be >= 1",
		},
		{
			name:    "zero max message size",
			mutate:  func(c *RelayConfig) { c.Connections.MaxMessageSize = 0 },
			wantErr: "connections.max_message_size must be >= 1",
		},
		{
			name:    "bad log level",
			mutate:  func(c *RelayConfig) { c.Logging.Level = "verbose" },
			wantErr: `logging.level must be one of debug, info, warn, error, got "verbose"`,
		},
		{
			name:    "bad metrics path",
			mutate:  func(c *RelayConfig) { c.Metrics.Path = "metrics" },
			wantErr: `metrics.path must start with /, got "metrics"`,
		},
		{
			name: "bad metrics path ignored when disabled",
			mutate: func(c *RelayConfig) {
				c.Metrics.Disabled = true
				c.Metrics.Path = "metrics"
			},
			wantErr: "",
		},
		{
			name:    "valid config",
			mutate:  func(c *RelayConfig) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
