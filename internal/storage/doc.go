// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local chat cache for birdwatch-tui.
//
// The server owns chat history; this package keeps local JSON copies of
// chats the server has returned so recent history stays browsable when the
// API is unreachable, plus transcript export.
//
// # Key Types
//
//   - ChatCache: Per-model cache of server-confirmed chats
//
// # Usage
//
// Create a cache and store a chat:
//
//	cache, err := storage.NewChatCache()
//	err = cache.Put("llm-cnn", chat)
//
// List and load cached chats:
//
//	metas, err := cache.List("llm-cnn")
//	chat, err := cache.Get("llm-cnn", metas[0].ChatID)
//
// Search cached chats:
//
//	results, err := cache.Search("llm-cnn", "sparrow")
//
// # Storage Location
//
// Chats are cached in ~/.birdwatch/chats/<model>/ as JSON files.
package storage
