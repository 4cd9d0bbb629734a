// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the birdwatching API service.
//
// All chat endpoints are scoped by a model tag ("llm", "llm-cnn", ...) that
// selects the answering pipeline, and every request carries the session
// token in the X-Session-ID header. Chat submissions are multipart form
// posts: a "content" text field plus an optional "file" upload.
//
// # Key Types
//
//   - Client: HTTP client for chats, bird sounds, bird maps, and newsletters
//   - ClientError: Typed error with category for handling
//
// # Usage
//
//	client := api.NewClient(cfg, sessions)
//	chat, err := client.StartChat(ctx, "llm-cnn", "what bird is this?", att)
//	if api.IsChatNotFound(err) {
//	    // stale chat id
//	}
//
// Media referenced by server-side paths is fetched by URL; the resolvers in
// urls.go build those URLs without touching the network.
package api
