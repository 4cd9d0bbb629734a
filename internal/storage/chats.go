// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local chat cache for birdwatch-tui.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// CHAT CACHE
// =============================================================================

// ChatCache keeps local copies of chats the server has returned, so recent
// history is browsable when the API is unreachable. The server owns the
// truth; the cache is refreshed with whatever the server sends and is never
// submitted back.
//
// Chats are stored one JSON file per chat, grouped by model tag:
//
//	<base>/<model>/<chat_id>.json
type ChatCache struct {
	// BaseDir is the cache root. Default: ~/.birdwatch/chats/
	BaseDir string

	// MaxChats limits cached chats per model (0 = unlimited)
	MaxChats int
}

// NewChatCache creates a cache under the default directory.
func NewChatCache() (*ChatCache, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewChatCacheWithDir(filepath.Join(homeDir, ".birdwatch", "chats"))
}

// NewChatCacheWithDir creates a cache with a custom root directory.
func NewChatCacheWithDir(baseDir string) (*ChatCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &ChatCache{
		BaseDir:  baseDir,
		MaxChats: 100,
	}, nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Put stores a server-confirmed chat, replacing any cached copy.
func (s *ChatCache) Put(modelTag string, chat *model.Chat) error {
	if chat.ChatID == "" {
		return &CacheError{Message: "chat has no id"}
	}

	data, err := json.MarshalIndent(chat, "", "  ")
	if err != nil {
		return err
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(s.filePath(modelTag, chat.ChatID), data, 0644); err != nil {
		return err
	}

	if s.MaxChats > 0 {
		s.enforceLimit(modelTag)
	}
	return nil
}

// enforceLimit removes the oldest cached chats if over limit.
func (s *ChatCache) enforceLimit(modelTag string) {
	metas, err := s.List(modelTag)
	if err != nil || len(metas) <= s.MaxChats {
		return
	}

	// List is most recent first; drop from the tail.
	for _, meta := range metas[s.MaxChats:] {
		s.Delete(modelTag, meta.ChatID)
	}
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Get retrieves a cached chat by ID.
func (s *ChatCache) Get(modelTag, chatID string) (*model.Chat, error) {
	data, err := os.ReadFile(s.filePath(modelTag, chatID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrChatNotCached
		}
		return nil, err
	}

	var chat model.Chat
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns metadata for all cached chats of a model, most recent first.
func (s *ChatCache) List(modelTag string) ([]model.ChatMeta, error) {
	dir := filepath.Join(s.BaseDir, modelTag)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.ChatMeta{}, nil
		}
		return nil, err
	}

	var metas []model.ChatMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		chat, err := s.Get(modelTag, id)
		if err != nil {
			continue // skip corrupted files
		}
		metas = append(metas, chat.Meta())
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].DTS > metas[j].DTS
	})
	return metas, nil
}

// Search finds cached chats whose title or message content matches query
// (case-insensitive). An empty query returns everything.
func (s *ChatCache) Search(modelTag, query string) ([]model.ChatMeta, error) {
	all, err := s.List(modelTag)
	if err != nil || query == "" {
		return all, err
	}

	query = strings.ToLower(query)
	var results []model.ChatMeta
	for _, meta := range all {
		if strings.Contains(strings.ToLower(meta.Title), query) {
			results = append(results, meta)
			continue
		}
		chat, err := s.Get(modelTag, meta.ChatID)
		if err != nil {
			continue
		}
		for _, msg := range chat.Messages {
			if strings.Contains(strings.ToLower(msg.Content), query) {
				results = append(results, meta)
				break
			}
		}
	}
	return results, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a cached chat by ID.
func (s *ChatCache) Delete(modelTag, chatID string) error {
	if err := os.Remove(s.filePath(modelTag, chatID)); err != nil {
		if os.IsNotExist(err) {
			return ErrChatNotCached
		}
		return err
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// filePath returns the cache file path for a chat ID.
func (s *ChatCache) filePath(modelTag, chatID string) string {
	return filepath.Join(s.BaseDir, modelTag, chatID+".json")
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrChatNotCached is returned when a chat has no local copy.
// Use errors.Is(err, ErrChatNotCached) to check for this error.
var ErrChatNotCached = &CacheError{Message: "chat not cached"}

// CacheError represents a cache-related error.
type CacheError struct {
	Message string
}

// Error implements the error interface.
func (e *CacheError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing cache errors.
func (e *CacheError) Is(target error) bool {
	t, ok := target.(*CacheError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// ExportMarkdown renders a chat as a Markdown transcript.
func ExportMarkdown(chat *model.Chat) string {
	var sb strings.Builder
	sb.WriteString("# " + chat.DisplayTitle() + "\n\n")
	if chat.DTS != 0 {
		sb.WriteString("Updated: " + chat.UpdatedAt().Format(time.RFC3339) + "\n\n")
	}
	sb.WriteString("---\n\n")

	for _, msg := range chat.Messages {
		sb.WriteString("**" + msg.Role.DisplayName() + "**")
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (" + msg.Timestamp.Format("15:04") + ")")
		}
		sb.WriteString(":\n\n")

		if msg.Attachment != nil {
			switch {
			case msg.Attachment.IsLocal():
				sb.WriteString("_[" + msg.Attachment.Kind().String() + ": " + msg.Attachment.Name() + "]_\n\n")
			default:
				sb.WriteString("_[" + msg.Attachment.Kind().String() + ": " + msg.Attachment.Path() + "]_\n\n")
			}
		}
		if msg.ShowContent() {
			sb.WriteString(msg.Content + "\n\n")
		}
		if msg.Results != nil {
			sb.WriteString(msg.Results.PredictionLabel + " (" + util.FormatAccuracy(msg.Results.Accuracy) + ")\n\n")
		}
		sb.WriteString("---\n\n")
	}
	return sb.String()
}
