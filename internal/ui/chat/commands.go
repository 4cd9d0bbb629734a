// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/storage"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// LoadChatCmd creates a command that fetches a chat from the server.
// When the fetch fails and a cached copy exists, the cached transcript
// stands in so history stays readable offline.
func LoadChatCmd(client *api.Client, cache *storage.ChatCache, modelTag, chatID string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		chat, err := client.GetChat(ctx, modelTag, chatID)
		if err != nil && cache != nil {
			if cached, cerr := cache.Get(modelTag, chatID); cerr == nil {
				return ChatLoadedMsg{Seq: seq, Chat: cached, Cached: true}
			}
		}
		return ChatLoadedMsg{Seq: seq, Chat: chat, Err: err}
	}
}

// SubmitCmd creates a command that sends a message. An empty chatID starts a
// new chat; otherwise the message continues the existing one.
func SubmitCmd(client *api.Client, modelTag, chatID, content string, att *model.Attachment, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var (
			chat *model.Chat
			err  error
		)
		if chatID == "" {
			chat, err = client.StartChat(ctx, modelTag, content, att)
		} else {
			chat, err = client.ContinueChat(ctx, modelTag, chatID, content, att)
		}
		return SubmitDoneMsg{Seq: seq, Chat: chat, Err: err}
	}
}

// ListChatsCmd creates a command that fetches the recent chats for a model.
// An unreachable server falls back to the local cache so the history view
// still has something to show.
func ListChatsCmd(client *api.Client, cache *storage.ChatCache, modelTag string, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		chats, err := client.ListChats(ctx, modelTag, limit)
		if err != nil && cache != nil {
			if metas, cerr := cache.List(modelTag); cerr == nil && len(metas) > 0 {
				if limit > 0 && len(metas) > limit {
					metas = metas[:limit]
				}
				return ChatListMsg{Chats: metasToChats(metas), Cached: true}
			}
		}
		return ChatListMsg{Chats: chats, Err: err}
	}
}

// metasToChats lifts cached listing summaries into the chat records the
// history view displays.
func metasToChats(metas []model.ChatMeta) []*model.Chat {
	chats := make([]*model.Chat, 0, len(metas))
	for _, meta := range metas {
		chats = append(chats, &model.Chat{
			ChatID: meta.ChatID,
			Title:  meta.Title,
			Model:  meta.Model,
			DTS:    meta.DTS,
		})
	}
	return chats
}

// CheckReachableCmd creates a command that probes the server.
func CheckReachableCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return ReachableMsg{Err: client.CheckReachable(ctx)}
	}
}

// CacheChatCmd creates a command that writes a chat to the local cache.
// Cache failures are silent: the cache is an offline convenience, not a
// source of truth.
func CacheChatCmd(cache *storage.ChatCache, chat *model.Chat) tea.Cmd {
	if cache == nil || chat == nil {
		return nil
	}
	return func() tea.Msg {
		_ = cache.Put(chat.Model, chat)
		return nil
	}
}

// ExpireNoteCmd creates a command that clears a status note after a delay.
func ExpireNoteCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return NoteExpiredMsg{ID: id}
	})
}

// =============================================================================
// ATTACHMENT STAGING
// =============================================================================

// audio and image extensions accepted for staging, mapped to MIME types.
var attachmentMIMEs = map[string]struct {
	kind model.AttachmentKind
	mime string
}{
	".mp3":  {model.AttachmentAudio, "audio/mpeg"},
	".wav":  {model.AttachmentAudio, "audio/wav"},
	".ogg":  {model.AttachmentAudio, "audio/ogg"},
	".m4a":  {model.AttachmentAudio, "audio/mp4"},
	".flac": {model.AttachmentAudio, "audio/flac"},
	".jpg":  {model.AttachmentImage, "image/jpeg"},
	".jpeg": {model.AttachmentImage, "image/jpeg"},
	".png":  {model.AttachmentImage, "image/png"},
	".gif":  {model.AttachmentImage, "image/gif"},
	".webp": {model.AttachmentImage, "image/webp"},
}

// StageAttachmentCmd creates a command that reads a file from disk and turns
// it into a local attachment. The file type is inferred from the extension
// and the size is checked against maxBytes before the read.
func StageAttachmentCmd(path string, maxBytes int64) tea.Cmd {
	return func() tea.Msg {
		att, err := StageAttachment(path, maxBytes)
		return AttachmentStagedMsg{Attachment: att, Err: err}
	}
}

// StageAttachment reads a file from disk and turns it into a local
// attachment, validating the extension and size. The CLI chat REPL
// shares this with the TUI's /attach command.
func StageAttachment(path string, maxBytes int64) (*model.Attachment, error) {
	ext := strings.ToLower(filepath.Ext(path))
	entry, ok := attachmentMIMEs[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q (audio or image expected)", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("%s is %s, over the %s upload limit",
			filepath.Base(path),
			util.FormatSize(int(info.Size())),
			util.FormatSize(int(maxBytes)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	return model.NewLocalAttachment(entry.kind, filepath.Base(path), entry.mime, data), nil
}
