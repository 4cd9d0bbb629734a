// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing and the non-TUI command
// handlers for birdwatch.
//
// The default command starts the full-screen TUI. The remaining
// commands are plain terminal workflows: an interactive line-based
// chat REPL with input history, read-only listings of the sounds,
// maps, and newsletter libraries, and a status report covering
// configuration, server reachability, and the local chat cache.
//
// All handlers respect TTY detection: colored and markdown-rendered
// output is reserved for interactive terminals, and piped output
// stays plain so it can be consumed by scripts.
package cli
