package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./songrec.db" {
			t.Errorf("expected database path ./songrec.db, got %s", config.Database.Path)
		}

		if config.Server.BaseURL != "http://127.0.0.1:5000" {
			t.Errorf("expected server base URL http://127.0.0.1:5000, got %s", config.Server.BaseURL)
		}

		if config.Search.Debounce() != 300*time.Millisecond {
			t.Errorf("expected 300ms debounce, got %v", config.Search.Debounce())
		}

		if config.Search.Timeout() != 5*time.Second {
			t.Errorf("expected 5s search timeout, got %v", config.Search.Timeout())
		}

		if config.Offline.Addr() != "127.0.0.1:5050" {
			t.Errorf("expected offline addr 127.0.0.1:5050, got %s", config.Offline.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
base_url = "http://music.local:8000"
rate_limit = 2.5

[search]
debounce_ms = 150

[database]
path = "/custom/path.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.BaseURL != "http://music.local:8000" {
			t.Errorf("expected base URL http://music.local:8000, got %s", config.Server.BaseURL)
		}
		if config.Server.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Server.RateLimit)
		}
		if config.Search.DebounceMS != 150 {
			t.Errorf("expected debounce 150, got %d", config.Search.DebounceMS)
		}
		if config.Search.TimeoutMS != 5000 {
			t.Errorf("expected default timeout to survive partial config, got %d", config.Search.TimeoutMS)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig Invalid", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("[search]\ndebounce_ms = -1\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
