// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the birdwatch TUI.

This package contains a collection of styled components built on top of the
Bubble Tea and Lip Gloss libraries, consistent with the birdwatch design
language.

# Components

## Input

InputArea (input.go) - Text input with a staged-attachment line above it.

## Display

Header (header.go) - Title bar with the active model badge and chat title.
StatusBar (statusbar.go) - Bottom status line with state and key hints.
MessageBubble (message.go) - Per-role chat bubbles; assistant replies are
rendered as markdown via Glamour (markdown.go).
MessageList (message.go) - A transcript rendered as a column of bubbles.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner with message and elapsed timer.
ErrorBanner (error.go) - Failure display with a recovery hint, driven by
the api package's error classification.
Welcome (welcome.go) - Empty-chat welcome screen.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme(80, 24)
	header := components.NewHeader(theme)
	header.SetModelTag("llm-cnn")
	view := header.View()
*/
package components
