// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the birdwatch TUI.

The package implements a terminal chat interface on the Bubble Tea
framework, talking to the birdwatch server through the api package.

# Key Components

## Controller (controller.go)

The session state machine, free of any I/O or terminal concerns:
  - An immutable confirmed chat snapshot plus one optimistic pending message
  - Replace-not-merge reconciliation: a server reply becomes the new
    snapshot wholesale, and the pending overlay is dropped
  - Exact rollback when a send fails
  - Monotonic sequence counters so stale responses are discarded and the
    last request wins
  - Reentrancy guards: one request in flight at a time

## Model (model.go)

The Bubble Tea model wiring the controller to the terminal:
  - Composer input with attachment staging (/attach)
  - Model switching (/model) and new-chat / history shortcuts
  - Viewport scrollback over the rendered transcript
  - Status bar with transient notes

## Commands (commands.go)

tea.Cmd creators for the network calls, each tagging its result with the
request sequence number, plus local attachment staging from disk.

## View (view.go)

Screen assembly: header, transcript or welcome screen, error banner,
spinner, composer, status bar, and the chat history list.
*/
package chat
