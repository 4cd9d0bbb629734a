// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Shared setup for CLI command handlers.
//
// Every handler needs the same things wired together: loaded
// configuration with CLI overrides applied, an API client carrying
// the persistent session token, and the local chat cache. Building
// them in one place keeps the handlers focused on their command.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/config"
	"github.com/jeranaias/birdwatch-tui/internal/session"
	"github.com/jeranaias/birdwatch-tui/internal/storage"
)

// Runtime bundles the long-lived objects a command handler works with.
type Runtime struct {
	Config   *config.Config
	Client   *api.Client
	Cache    *storage.ChatCache
	Sessions *session.Manager
}

// NewRuntime loads configuration, applies CLI overrides, and builds the
// API client, session manager, and chat cache. The cache is optional:
// when it cannot be created the Runtime still works, Cache is just nil.
func NewRuntime(args Args) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// CLI flags override config and environment
	if args.URL != "" {
		cfg.API.BaseURL = args.URL
	}
	if args.Model != "" {
		if !config.IsKnownModel(args.Model) {
			return nil, fmt.Errorf("unknown model %q (known: %v)", args.Model, config.KnownModels)
		}
		cfg.Chat.DefaultModel = args.Model
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configDir, dirErr := config.ConfigDir()
	if dirErr != nil {
		configDir = os.TempDir()
	}
	sessions := session.NewManager(configDir)

	client := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
	}, sessions)

	cache, cacheErr := storage.NewChatCache()
	if cacheErr != nil && args.Verbose {
		fmt.Fprintf(os.Stderr, "warning: chat cache unavailable: %v\n", cacheErr)
	}

	return &Runtime{
		Config:   cfg,
		Client:   client,
		Cache:    cache,
		Sessions: sessions,
	}, nil
}

// ModelTag returns the model the session should start with.
func (r *Runtime) ModelTag() string {
	return r.Config.Chat.DefaultModel
}
