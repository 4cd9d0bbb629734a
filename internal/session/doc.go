// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the persistent session identity sent with every
// API request.
//
// The server scopes chat history by an opaque session token carried in the
// X-Session-ID header. This package mints that token (a random UUID) on
// first use and persists it under the config directory so the same history
// is visible across restarts.
//
// # Key Types
//
//   - Manager: Owns the token, its persistence, and rotation
//
// # Usage
//
// Create a manager rooted at the config directory:
//
//	mgr := session.NewManager(cfg.Dir())
//	req.Header.Set(session.Header, mgr.Token())
//
// Start over with a fresh identity:
//
//	mgr.Rotate()
//
// # Degraded Mode
//
// When the token file cannot be read or written, the manager falls back to
// an in-memory token. Requests keep working; history resets on restart.
package session
