// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// ============================================================================
// Chat
// ============================================================================

// Chat is a chat session as the server represents it: an ID, a derived
// title, the model that answers it, and the full ordered transcript.
type Chat struct {
	ChatID   string     `json:"chat_id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Model    string     `json:"model,omitempty"`
	DTS      int64      `json:"dts,omitempty"`
	Messages []*Message `json:"messages"`
}

// Clone returns a deep-enough copy of the chat: the message slice is
// copied so appends to the clone never alias the original. Individual
// messages are immutable once constructed and are shared.
func (c *Chat) Clone() *Chat {
	clone := *c
	clone.Messages = make([]*Message, len(c.Messages))
	copy(clone.Messages, c.Messages)
	return &clone
}

// WithMessage returns a copy of the chat with msg appended. The receiver
// is never modified, so a confirmed snapshot can serve as the base for an
// optimistic view and survive it unchanged.
func (c *Chat) WithMessage(msg *Message) *Chat {
	view := c.Clone()
	view.Messages = append(view.Messages, msg)
	return view
}

// MessageCount returns the number of messages in the transcript.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty reports whether the chat has no messages.
func (c *Chat) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LastMessage returns the most recent message, or nil for an empty chat.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// UpdatedAt returns the chat's last-modified time.
func (c *Chat) UpdatedAt() time.Time {
	return time.Unix(c.DTS, 0)
}

// DisplayTitle returns the title, falling back to a preview of the first
// message for chats the server has not titled yet.
func (c *Chat) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	for _, m := range c.Messages {
		if m.Role == RoleUser && m.Content != "" {
			return TruncateTitle(m.Content)
		}
	}
	return "Audio chat"
}

// TruncateTitle shortens text to the title length the server uses.
func TruncateTitle(s string) string {
	s = strings.TrimSpace(s)
	const max = 50
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// ============================================================================
// Chat Listing
// ============================================================================

// ChatMeta is the summary of a chat shown in history listings.
type ChatMeta struct {
	ChatID       string
	Title        string
	Model        string
	DTS          int64
	MessageCount int
}

// Meta returns the listing summary for the chat.
func (c *Chat) Meta() ChatMeta {
	return ChatMeta{
		ChatID:       c.ChatID,
		Title:        c.DisplayTitle(),
		Model:        c.Model,
		DTS:          c.DTS,
		MessageCount: len(c.Messages),
	}
}
