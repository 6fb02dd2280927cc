package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Search   SearchConfig   `toml:"search"`
	Database DatabaseConfig `toml:"database"`
	Output   OutputConfig   `toml:"output"`
	Offline  OfflineConfig  `toml:"offline"`
}

// ServerConfig describes the upstream recommendation server.
type ServerConfig struct {
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// SearchConfig tunes the search-as-you-type pipeline.
type SearchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
	TimeoutMS  int `toml:"timeout_ms"`
	CacheSize  int `toml:"cache_size"`
	Limit      int `toml:"limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// OutputConfig controls where exported files are written.
type OutputConfig struct {
	Directory string `toml:"directory"`
}

// OfflineConfig contains settings for the local offline search server.
type OfflineConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Debounce returns the configured debounce delay.
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Timeout returns the configured per-request search timeout.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// Timeout returns the HTTP client timeout for the upstream server.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Addr returns host:port for the offline server.
func (o OfflineConfig) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("%w: server.base_url is required", ErrInvalidConfig)
	}
	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("%w: search.debounce_ms must not be negative", ErrInvalidConfig)
	}
	if c.Search.TimeoutMS < 0 {
		return fmt.Errorf("%w: search.timeout_ms must not be negative", ErrInvalidConfig)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rate_limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
