package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultBaseURL is the API server the client talks to when nothing is configured.
	DefaultBaseURL = "http://localhost:5000"
	// DefaultTimeout bounds every API round trip.
	DefaultTimeout = 15 * time.Second

	appDir = "tasks"
)

// Client holds terminal client settings.
type Client struct {
	BaseURL   string        `toml:"base_url"`
	TokenFile string        `toml:"token_file"`
	LogFile   string        `toml:"log_file"`
	Timeout   time.Duration `toml:"timeout"`
}

// DefaultClientConfigPath returns the per-user config file location.
func DefaultClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, "config.toml")
}

// LoadClient reads client settings. An empty path selects the default
// location, which may be absent; an explicit path must exist.
func LoadClient(path string) (*Client, error) {
	cfg := &Client{}
	setClientDefaults(cfg)

	explicit := path != ""
	if !explicit {
		path = DefaultClientConfigPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("TASKS_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TASKS_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base_url must not be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

func setClientDefaults(cfg *Client) {
	cfg.BaseURL = DefaultBaseURL
	cfg.Timeout = DefaultTimeout
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.TokenFile = filepath.Join(dir, appDir, "token")
	}
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.LogFile = filepath.Join(dir, appDir, "tasks.log")
	}
}
