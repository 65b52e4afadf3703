// Package syncconfig loads and saves the global meeple configuration:
// which remote account to mirror and which status categories are worth
// syncing. Stored as JSON under ~/.config/meeple.
package syncconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/meeple/internal/models"
)

// Config is the global meeple config stored at ~/.config/meeple/config.json.
type Config struct {
	Username     string   `json:"username"`
	ServerURL    string   `json:"server_url,omitempty"`
	SyncStatuses []string `json:"sync_statuses,omitempty"` // nil = sync everything
	DataDir      string   `json:"data_dir,omitempty"`      // override for the database location
}

// AuthCredentials stores session state at ~/.config/meeple/auth.json.
// Only needed for private-info fetches.
type AuthCredentials struct {
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
	SavedAt      string `json:"saved_at,omitempty"`
}

const defaultServerURL = "https://boardgamegeek.com"

// ConfigDir returns ~/.config/meeple, creating it if necessary.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "meeple")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// DefaultDataDir returns the default database directory (~/.meeple), unless
// overridden in config.
func DefaultDataDir() (string, error) {
	cfg, err := LoadConfig()
	if err == nil && cfg.DataDir != "" {
		return cfg.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".meeple"), nil
}

// LoadConfig reads the global config. A missing file is an empty config,
// not an error.
func LoadConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the global config to ~/.config/meeple/config.json.
func SaveConfig(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// LoadAuth reads session credentials. Returns nil without error when the
// file does not exist.
func LoadAuth() (*AuthCredentials, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "auth.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var creds AuthCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// SaveAuth writes session credentials (0600 perms).
func SaveAuth(creds *AuthCredentials) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "auth.json"), data, 0600)
}

// ClearAuth removes the auth.json file.
func ClearAuth() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, "auth.json"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ServerURL returns the remote service URL.
// Priority: MEEPLE_SERVER_URL env > config.json > default.
func ServerURL() string {
	if v := os.Getenv("MEEPLE_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := LoadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

// Statuses parses the configured sync-worthy statuses. Returns nil when
// no restriction is configured, meaning everything is synced.
func (c *Config) Statuses() ([]models.Status, error) {
	if c.SyncStatuses == nil {
		return nil, nil
	}
	statuses := make([]models.Status, 0, len(c.SyncStatuses))
	for _, s := range c.SyncStatuses {
		status, err := models.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// SetStatuses stores a status restriction. An empty slice restricts to
// nothing; nil clears the restriction entirely.
func (c *Config) SetStatuses(statuses []models.Status) {
	if statuses == nil {
		c.SyncStatuses = nil
		return
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	c.SyncStatuses = names
}
