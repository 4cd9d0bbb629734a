// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat interface.
// Network results carry the sequence number of the request that produced
// them; the controller discards results whose sequence is stale.
package chat

import (
	"github.com/jeranaias/birdwatch-tui/internal/model"
)

// =============================================================================
// NETWORK RESULT MESSAGES
// =============================================================================

// ChatLoadedMsg delivers the result of fetching a chat. Cached marks a
// transcript served from the local cache after a failed fetch.
type ChatLoadedMsg struct {
	Seq    int
	Chat   *model.Chat
	Err    error
	Cached bool
}

// SubmitDoneMsg delivers the result of a message submission. On success Chat
// is the server's full updated chat.
type SubmitDoneMsg struct {
	Seq  int
	Chat *model.Chat
	Err  error
}

// ChatListMsg delivers the recent-chats list for the history view.
// Cached marks a list served from the local cache after a failed fetch.
type ChatListMsg struct {
	Chats  []*model.Chat
	Err    error
	Cached bool
}

// ReachableMsg reports whether the server answered the startup probe.
type ReachableMsg struct {
	Err error
}

// =============================================================================
// LOCAL MESSAGES
// =============================================================================

// AttachmentStagedMsg delivers a locally read attachment, or the read error.
type AttachmentStagedMsg struct {
	Attachment *model.Attachment
	Err        error
}

// NoteExpiredMsg clears a transient status bar note.
type NoteExpiredMsg struct {
	ID int
}
