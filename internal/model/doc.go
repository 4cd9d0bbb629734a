// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats and messages.
//
// This package defines the core domain types used throughout the application
// for representing chat sessions, messages, and attachments.
//
// # Key Types
//
//   - Chat: Container for a chat session with messages and metadata
//   - Message: Single message with role, content, optional attachment, and results
//   - Attachment: Tagged variant holding either local bytes or a remote path
//   - Role: Message role enumeration (user, assistant, cnn)
//
// # Usage
//
// Create an optimistic user message and stage it on a chat:
//
//	msg := model.NewUserMessage("What bird is this?", nil)
//	view := chat.WithMessage(msg)
//
// Attach a local recording:
//
//	att := model.NewLocalAttachment(model.AttachmentAudio, "song.mp3", "audio/mpeg", data)
//	msg := model.NewUserMessage("", att)
package model
