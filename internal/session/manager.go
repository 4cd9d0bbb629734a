// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the persistent session identity sent with every
// API request.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Header is the HTTP header carrying the session token.
const Header = "X-Session-ID"

// fileName is the token file under the config directory.
const fileName = "session_id"

// Manager owns the session token. The token is a random UUID created on
// first use and persisted to disk so history survives restarts. When the
// token file cannot be read or written the manager falls back to an
// in-memory token: the app stays usable, history just resets next run.
type Manager struct {
	mu        sync.Mutex
	path      string
	token     string
	persisted bool
}

// NewManager creates a manager that stores its token under dir.
func NewManager(dir string) *Manager {
	return &Manager{path: filepath.Join(dir, fileName)}
}

// Token returns the session token, creating and persisting it on first call.
// Always returns a usable token.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" {
		return m.token
	}

	if tok, ok := m.readToken(); ok {
		m.token = tok
		m.persisted = true
		return m.token
	}

	m.token = uuid.NewString()
	m.persisted = m.writeToken(m.token) == nil
	return m.token
}

// Rotate discards the current token and creates a fresh one, persisting it
// when possible. Returns the new token.
func (m *Manager) Rotate() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = uuid.NewString()
	m.persisted = m.writeToken(m.token) == nil
	return m.token
}

// Persisted reports whether the current token survives restarts.
func (m *Manager) Persisted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persisted
}

// Path returns the token file location.
func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) readToken() (string, bool) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(data))
	if _, err := uuid.Parse(tok); err != nil {
		// Corrupt token file. Treat as absent and mint a new identity.
		return "", false
	}
	return tok, true
}

func (m *Manager) writeToken(tok string) error {
	return util.AtomicWriteFile(m.path, []byte(tok+"\n"), 0600)
}
