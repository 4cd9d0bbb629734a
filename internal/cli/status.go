// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command handler for the birdwatch CLI.
//
// Handles "birdwatch status": configuration summary, server
// reachability, session persistence, and local cache counts.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/config"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
)

// statusReport is the machine-readable shape of the status command.
type statusReport struct {
	Version          string         `json:"version"`
	ServerURL        string         `json:"server_url"`
	ServerReachable  bool           `json:"server_reachable"`
	ServerError      string         `json:"server_error,omitempty"`
	DefaultModel     string         `json:"default_model"`
	TimeoutSecs      int            `json:"timeout_secs"`
	ConfigPath       string         `json:"config_path"`
	SessionPersisted bool           `json:"session_persisted"`
	CachedChats      map[string]int `json:"cached_chats"`
}

// HandleStatus handles the "status" command.
func HandleStatus(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}

	report := buildStatusReport(rt)

	if args.JSON {
		return printJSON(report)
	}

	printStatusReport(report)
	return nil
}

// buildStatusReport probes the server and cache and assembles the report.
func buildStatusReport(rt *Runtime) statusReport {
	report := statusReport{
		Version:      Version,
		ServerURL:    rt.Client.BaseURL(),
		DefaultModel: rt.Config.Chat.DefaultModel,
		TimeoutSecs:  rt.Config.API.TimeoutSecs,
		CachedChats:  make(map[string]int),
	}

	if path, err := config.ConfigPathTOML(); err == nil {
		report.ConfigPath = path
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Client.CheckReachable(ctx); err != nil {
		report.ServerError = err.Error()
	} else {
		report.ServerReachable = true
	}

	// Token() creates and persists the session token on first use, so
	// Persisted() is meaningful after it
	rt.Sessions.Token()
	report.SessionPersisted = rt.Sessions.Persisted()

	if rt.Cache != nil {
		for _, tag := range config.KnownModels {
			if metas, err := rt.Cache.List(tag); err == nil && len(metas) > 0 {
				report.CachedChats[tag] = len(metas)
			}
		}
	}

	return report
}

// printStatusReport prints the human-readable status.
func printStatusReport(report statusReport) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("birdwatch status"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	fmt.Printf("  %s %s\n", infoStyle.Render("Version:"), report.Version)
	fmt.Printf("  %s %s\n", infoStyle.Render("Server:"), commandStyle.Render(report.ServerURL))

	if report.ServerReachable {
		fmt.Printf("  %s %s\n", infoStyle.Render("Reachable:"), styles.RenderSuccess("yes"))
	} else {
		fmt.Printf("  %s %s\n", infoStyle.Render("Reachable:"), styles.RenderError("no"))
		if report.ServerError != "" {
			fmt.Printf("  %s %s\n", infoStyle.Render("Last error:"), report.ServerError)
		}
	}

	fmt.Printf("  %s %s\n", infoStyle.Render("Model:"), commandStyle.Render(report.DefaultModel))
	fmt.Printf("  %s %ds\n", infoStyle.Render("Timeout:"), report.TimeoutSecs)
	if report.ConfigPath != "" {
		fmt.Printf("  %s %s\n", infoStyle.Render("Config:"), report.ConfigPath)
	}

	if report.SessionPersisted {
		fmt.Printf("  %s persisted (history survives restarts)\n", infoStyle.Render("Session:"))
	} else {
		fmt.Printf("  %s %s\n", infoStyle.Render("Session:"), warningStyle.Render("in-memory only"))
	}

	if len(report.CachedChats) == 0 {
		fmt.Printf("  %s empty\n", infoStyle.Render("Cache:"))
	} else {
		fmt.Printf("  %s\n", infoStyle.Render("Cache:"))
		for _, tag := range config.KnownModels {
			if n, ok := report.CachedChats[tag]; ok {
				fmt.Printf("    %s %d chats\n", commandStyle.Render(tag+":"), n)
			}
		}
	}

	fmt.Println()
}
