package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything the client needs to reach the backend.
type Config struct {
	APIBaseURL string
	SocketURL  string
	// GoogleClientID names the OAuth client an identity token must be minted
	// for. The token itself is obtained out of band and handed to the google
	// command; no request from this client carries the id.
	GoogleClientID string
	StateDir       string
	TokenPath      string
	CachePath      string
}

// fileConfig is the optional on-disk config, overridden by environment.
type fileConfig struct {
	APIBaseURL     string `yaml:"api_url"`
	SocketURL      string `yaml:"socket_url"`
	GoogleClientID string `yaml:"google_client_id"`
}

// Load reads the optional YAML config from the state dir, then applies
// environment overrides.
func Load() (Config, error) {
	stateDir := os.Getenv("TODOHUB_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		stateDir = filepath.Join(home, ".todohub")
	}

	fc, err := loadFile(filepath.Join(stateDir, "config.yaml"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL:     firstNonEmpty(os.Getenv("TODOHUB_API_URL"), fc.APIBaseURL, "http://localhost:4000/api"),
		SocketURL:      firstNonEmpty(os.Getenv("TODOHUB_SOCKET_URL"), fc.SocketURL, "ws://localhost:4000/ws"),
		GoogleClientID: firstNonEmpty(os.Getenv("TODOHUB_GOOGLE_CLIENT_ID"), fc.GoogleClientID, ""),
		StateDir:       stateDir,
		TokenPath:      filepath.Join(stateDir, "session.json"),
		CachePath:      filepath.Join(stateDir, "cache.db"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that required fields are usable.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api url cannot be empty")
	}
	if c.SocketURL == "" {
		return fmt.Errorf("socket url cannot be empty")
	}
	if !strings.HasPrefix(c.SocketURL, "ws://") && !strings.HasPrefix(c.SocketURL, "wss://") {
		return fmt.Errorf("socket url must be a ws:// or wss:// endpoint")
	}
	if c.StateDir == "" {
		return fmt.Errorf("state dir cannot be empty")
	}
	return nil
}

func loadFile(path string) (fileConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("decode config file: %w", err)
	}
	return fc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
