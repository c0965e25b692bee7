package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Store     StoreConfig     `yaml:"store"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Presets   PresetsConfig   `yaml:"presets"`
	Refresh   RefreshConfig   `yaml:"refresh"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StoreConfig selects where events are persisted: the embedded SQLite
// database, or a remote HTTP event service.
type StoreConfig struct {
	Driver  string `yaml:"driver"` // "sqlite" or "http"
	Path    string `yaml:"path"`   // sqlite database file
	BaseURL string `yaml:"base_url"`
	User    string `yaml:"user"` // store scope for the sqlite driver
}

type MirrorConfig struct {
	Dir      string        `yaml:"dir"`
	Debounce time.Duration `yaml:"debounce"`
}

type PresetsConfig struct {
	Path string `yaml:"path"`
}

// RefreshConfig schedules periodic reconciliation with the store. An
// empty schedule disables it.
type RefreshConfig struct {
	Schedule string `yaml:"schedule"` // cron expression
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "cadence.db",
			User:   "default",
		},
		Mirror: MirrorConfig{
			Dir:      "mirror",
			Debounce: 2 * time.Second,
		},
		Refresh: RefreshConfig{
			Schedule: "@every 15m",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("CADENCE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CADENCE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CADENCE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CADENCE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("CADENCE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if enabled := os.Getenv("CADENCE_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CADENCE_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if driver := os.Getenv("CADENCE_STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	if dbPath := os.Getenv("CADENCE_DB_PATH"); dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if baseURL := os.Getenv("CADENCE_STORE_BASE_URL"); baseURL != "" {
		cfg.Store.BaseURL = baseURL
	}
	if user := os.Getenv("CADENCE_STORE_USER"); user != "" {
		cfg.Store.User = user
	}
	if dir := os.Getenv("CADENCE_MIRROR_DIR"); dir != "" {
		cfg.Mirror.Dir = dir
	}
	if presets := os.Getenv("CADENCE_PRESETS_PATH"); presets != "" {
		cfg.Presets.Path = presets
	}
	if schedule := os.Getenv("CADENCE_REFRESH_SCHEDULE"); schedule != "" {
		cfg.Refresh.Schedule = schedule
	}
	if level := os.Getenv("CADENCE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown transport mode %q", c.Transport.Mode)
	}
	switch c.Store.Driver {
	case "sqlite":
	case "http":
		if c.Store.BaseURL == "" {
			return fmt.Errorf("http store requires a base_url")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
