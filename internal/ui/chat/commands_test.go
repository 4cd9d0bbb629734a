// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/storage"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestStageAttachment_Audio(t *testing.T) {
	path := writeTempFile(t, "robin.mp3", []byte("riff-data"))

	att, err := StageAttachment(path, 1024)
	if err != nil {
		t.Fatalf("stageAttachment: %v", err)
	}
	if att.Kind() != model.AttachmentAudio {
		t.Errorf("expected audio kind, got %v", att.Kind())
	}
	if att.Name() != "robin.mp3" {
		t.Errorf("expected base name, got %q", att.Name())
	}
	if att.MIME() != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %q", att.MIME())
	}
	if !att.IsLocal() {
		t.Error("staged attachment should be local")
	}
}

func TestStageAttachment_ImageExtensions(t *testing.T) {
	path := writeTempFile(t, "wing.PNG", []byte("png-data"))

	att, err := StageAttachment(path, 1024)
	if err != nil {
		t.Fatalf("stageAttachment: %v", err)
	}
	if att.Kind() != model.AttachmentImage {
		t.Errorf("expected image kind, got %v", att.Kind())
	}
	if att.MIME() != "image/png" {
		t.Errorf("expected image/png, got %q", att.MIME())
	}
}

func TestStageAttachment_UnsupportedType(t *testing.T) {
	path := writeTempFile(t, "notes.txt", []byte("text"))

	_, err := StageAttachment(path, 1024)
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStageAttachment_OverSizeLimit(t *testing.T) {
	path := writeTempFile(t, "long.wav", make([]byte, 2048))

	_, err := StageAttachment(path, 1024)
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
	if !strings.Contains(err.Error(), "upload limit") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStageAttachment_MissingFile(t *testing.T) {
	if _, err := StageAttachment(filepath.Join(t.TempDir(), "gone.mp3"), 0); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStageAttachment_Directory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "birds.mp3")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := StageAttachment(dir, 0); err == nil {
		t.Fatal("expected error for directory")
	}
}

// =============================================================================
// OFFLINE CACHE FALLBACK
// =============================================================================

// unreachableClient returns a client pointed at a port nothing listens on.
func unreachableClient() *api.Client {
	return api.NewClient(&api.ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	}, nil)
}

func seededCache(t *testing.T) *storage.ChatCache {
	t.Helper()
	cache, err := storage.NewChatCacheWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	chat := &model.Chat{
		ChatID: "cached-1",
		Title:  "Robin sighting",
		Model:  "llm",
		DTS:    1700000000,
		Messages: []*model.Message{
			{Role: model.RoleUser, Content: "blue wings, near the lake"},
		},
	}
	if err := cache.Put("llm", chat); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	return cache
}

func TestListChatsCmd_FallsBackToCache(t *testing.T) {
	cache := seededCache(t)

	msg := ListChatsCmd(unreachableClient(), cache, "llm", 20)()
	list, ok := msg.(ChatListMsg)
	if !ok {
		t.Fatalf("unexpected msg type %T", msg)
	}
	if list.Err != nil {
		t.Fatalf("cache fallback should clear the error, got %v", list.Err)
	}
	if !list.Cached {
		t.Error("expected cached marker")
	}
	if len(list.Chats) != 1 || list.Chats[0].ChatID != "cached-1" {
		t.Fatalf("chats = %+v", list.Chats)
	}
	if list.Chats[0].DisplayTitle() != "Robin sighting" {
		t.Errorf("title = %q", list.Chats[0].DisplayTitle())
	}
}

func TestListChatsCmd_EmptyCacheKeepsError(t *testing.T) {
	cache, err := storage.NewChatCacheWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}

	msg := ListChatsCmd(unreachableClient(), cache, "llm", 20)()
	list := msg.(ChatListMsg)
	if list.Err == nil {
		t.Fatal("expected error when nothing is cached")
	}
	if list.Cached {
		t.Error("empty cache must not claim cached data")
	}
}

func TestLoadChatCmd_FallsBackToCache(t *testing.T) {
	cache := seededCache(t)

	msg := LoadChatCmd(unreachableClient(), cache, "llm", "cached-1", 7)()
	loaded, ok := msg.(ChatLoadedMsg)
	if !ok {
		t.Fatalf("unexpected msg type %T", msg)
	}
	if loaded.Err != nil {
		t.Fatalf("cache fallback should clear the error, got %v", loaded.Err)
	}
	if !loaded.Cached {
		t.Error("expected cached marker")
	}
	if loaded.Seq != 7 {
		t.Errorf("seq = %d, want 7", loaded.Seq)
	}
	if loaded.Chat == nil || len(loaded.Chat.Messages) != 1 {
		t.Fatalf("chat = %+v", loaded.Chat)
	}
}

func TestLoadChatCmd_MissingEverywhere(t *testing.T) {
	cache := seededCache(t)

	msg := LoadChatCmd(unreachableClient(), cache, "llm", "never-seen", 1)()
	loaded := msg.(ChatLoadedMsg)
	if loaded.Err == nil {
		t.Fatal("expected error when the chat is in neither place")
	}
}
