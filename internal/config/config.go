// Package config persists user preferences between sessions: setting
// overrides applied at startup, the path of an init script to source,
// and the list of recently opened files.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// maxRecentFiles bounds the recent-file list.
const maxRecentFiles = 10

// Config holds the persisted editor configuration.
type Config struct {
	// Settings are applied to the registry at startup, keyed by
	// setting name with command-language values ("on", "2", "#ff00ff").
	Settings map[string]string `json:"settings,omitempty"`

	// InitScript is sourced at startup, after Settings are applied.
	InitScript string `json:"init_script,omitempty"`

	// RecentFiles lists recently opened paths, most recent first.
	RecentFiles []string `json:"recent_files,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pxlr"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns an empty one if it
// doesn't exist yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		Settings: make(map[string]string),
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.ensureInitialized()
	return cfg, nil
}

func (c *Config) ensureInitialized() {
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
}

// Save writes the config back to disk.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.filePath, data, 0644)
}

// AddRecentFile records path at the front of the recent list, removing
// any earlier occurrence and trimming the list to its cap.
func (c *Config) AddRecentFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > maxRecentFiles {
		files = files[:maxRecentFiles]
	}
	c.RecentFiles = files
}

// Recent returns a copy of the recent-file list, most recent first.
func (c *Config) Recent() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.RecentFiles))
	copy(out, c.RecentFiles)
	return out
}
