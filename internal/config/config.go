// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// birdwatch-tui.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - BIRDWATCH_* environment variables
//   - ~/.birdwatch/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete birdwatch-tui configuration.
type Config struct {
	// General settings
	Version string `toml:"version" env:"-"`

	// API server configuration
	API APIConfig `toml:"api" envPrefix:"BIRDWATCH_API_"`

	// Chat configuration
	Chat ChatConfig `toml:"chat" envPrefix:"BIRDWATCH_CHAT_"`

	// UI configuration
	UI UIConfig `toml:"ui" envPrefix:"BIRDWATCH_UI_"`
}

// APIConfig contains API server connection configuration.
type APIConfig struct {
	// BaseURL is the root of the API service, e.g. "http://localhost:9000"
	BaseURL string `toml:"base_url" env:"URL"`
	// TimeoutSecs is the per-request timeout in seconds. Chat turns wait on
	// model inference, so this is generous by default.
	TimeoutSecs int `toml:"timeout_secs" env:"TIMEOUT_SECS"`
}

// ChatConfig contains chat behavior configuration.
type ChatConfig struct {
	// DefaultModel is the model tag new chats start with
	DefaultModel string `toml:"default_model" env:"MODEL"`
	// MaxUploadBytes is the size limit for local attachments
	MaxUploadBytes int `toml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
	// RecentLimit is how many chats history listings request
	RecentLimit int `toml:"recent_limit" env:"RECENT_LIMIT"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" env:"THEME"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" env:"COMPACT"`
	// ShowTimestamps displays message timestamps in transcripts
	ShowTimestamps bool `toml:"show_timestamps" env:"TIMESTAMPS"`
}

// Models the API serves. The tag selects the answering pipeline.
var KnownModels = []string{"llm", "llm-cnn", "llm-rag", "llm-agent"}

// IsKnownModel reports whether tag names a model the API serves.
func IsKnownModel(tag string) bool {
	for _, m := range KnownModels {
		if m == tag {
			return true
		}
	}
	return false
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:     "http://localhost:9000",
			TimeoutSecs: 120,
		},

		Chat: ChatConfig{
			DefaultModel:   "llm",
			MaxUploadBytes: 5 * 1024 * 1024,
			RecentLimit:    20,
		},

		UI: UIConfig{
			Theme:          "dark",
			CompactMode:    false,
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the birdwatch configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".birdwatch"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, then applies environment
// overrides and validation. A missing config file is not an error; defaults
// are used.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems. Keep loading.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies BIRDWATCH_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() error {
	return env.Parse(c)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.TimeoutSecs <= 0 {
		cfg.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if cfg.Chat.DefaultModel == "" {
		cfg.Chat.DefaultModel = defaults.Chat.DefaultModel
	}
	if cfg.Chat.MaxUploadBytes <= 0 {
		cfg.Chat.MaxUploadBytes = defaults.Chat.MaxUploadBytes
	}
	if cfg.Chat.RecentLimit <= 0 {
		cfg.Chat.RecentLimit = defaults.Chat.RecentLimit
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Ensure permissions are correct even if file already existed
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# birdwatch configuration file")
	fmt.Fprintln(file, "# Generated by birdwatch - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be http or https, got %q", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url has no host: %q", c.API.BaseURL)
	}

	if !IsKnownModel(c.Chat.DefaultModel) {
		return fmt.Errorf("chat.default_model %q is not one of %s",
			c.Chat.DefaultModel, strings.Join(KnownModels, ", "))
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("ui.theme must be dark, light, or auto, got %q", c.UI.Theme)
	}

	return nil
}
