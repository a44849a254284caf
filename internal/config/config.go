package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config represents the main configuration file structure
type Config struct {
	Locale       string `json:"locale"`       // "auto" or ISO format (e.g., "en-US")
	TrashCommand string `json:"trashCommand"` // external command safe-rm routes deletions to
}

var (
	cfg     *Config
	cfgOnce sync.Once
	cfgMu   sync.RWMutex
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Locale:       "auto",  // default: auto-detect system locale
		TrashCommand: "trash", // default: freedesktop/macOS trash CLI
	}
}

// Load loads the configuration from file
func Load() (*Config, error) {
	cfgMu.RLock()
	defer cfgMu.RUnlock()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.Locale == "" {
		config.Locale = "auto"
	}
	if config.TrashCommand == "" {
		config.TrashCommand = "trash"
	}

	return &config, nil
}

// Save saves the configuration to file
func Save(config *Config) error {
	cfgMu.Lock()
	defer cfgMu.Unlock()

	if err := EnsureDir(DevflowHomeDir()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}

// Get returns the current configuration (singleton)
func Get() *Config {
	cfgOnce.Do(func() {
		var err error
		cfg, err = Load()
		if err != nil {
			cfg = NewConfig()
		}
	})
	return cfg
}

// GetLocale returns the configured locale
func GetLocale() string {
	return Get().Locale
}

// SetLocale sets the locale and saves
func SetLocale(locale string) error {
	config := Get()
	config.Locale = locale
	return Save(config)
}

// GetTrashCommand returns the configured trash command
func GetTrashCommand() string {
	return Get().TrashCommand
}
