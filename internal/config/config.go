// Package config loads server configuration from defaults, an optional
// YAML file, and WEFT_-prefixed environment variables, in increasing
// precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the serve command's configuration.
type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	Store     StoreConfig
	Telemetry TelemetryConfig
	Log       LogConfig
}

// ServerConfig holds HTTP/websocket listener settings.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// SessionConfig holds per-session transport settings.
type SessionConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	SendBuffer        int
	MaxIdle           time.Duration
	EvictInterval     time.Duration
}

// StoreConfig holds the session snapshot store settings.
type StoreConfig struct {
	// Driver selects the backend: "none" or "sqlite".
	Driver string
	// Path is the sqlite database file.
	Path string
}

// TelemetryConfig toggles metrics and tracing.
type TelemetryConfig struct {
	Metrics bool
	Tracing bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is "text" or "json".
	Format string
}

// Load reads configuration. path is an optional YAML file; env var
// overrides use prefix WEFT_ (WEFT_SERVER_ADDR, WEFT_LOG_LEVEL, ...).
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("session.read_timeout", "60s")
	v.SetDefault("session.write_timeout", "10s")
	v.SetDefault("session.heartbeat_interval", "30s")
	v.SetDefault("session.send_buffer", 64)
	v.SetDefault("session.max_idle", "5m")
	v.SetDefault("session.evict_interval", "1m")
	v.SetDefault("store.driver", "none")
	v.SetDefault("store.path", "weft.db")
	v.SetDefault("telemetry.metrics", true)
	v.SetDefault("telemetry.tracing", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("WEFT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case "none", "sqlite":
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}
