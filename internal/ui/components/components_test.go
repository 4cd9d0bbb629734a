// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(80, 24)
}

func TestWordWrap(t *testing.T) {
	wrapped := wordWrap("the quick brown fox jumps over the lazy dog", 15)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 15 {
			t.Errorf("line %q exceeds width 15", line)
		}
	}
}

func TestWordWrap_PreservesNewlines(t *testing.T) {
	wrapped := wordWrap("line one\nline two", 40)
	if !strings.Contains(wrapped, "\n") {
		t.Error("expected newline preserved")
	}
}

func TestMessageBubble_UserContent(t *testing.T) {
	msg := model.NewUserMessage("seen near the lake, blue wings", nil)
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	out := bubble.View()
	if !strings.Contains(out, "blue wings") {
		t.Error("expected message content in bubble")
	}
	if !strings.Contains(out, "you") {
		t.Error("expected role label in bubble")
	}
}

func TestMessageBubble_PendingLabel(t *testing.T) {
	msg := model.NewUserMessage("hello", nil)
	bubble := NewMessageBubble(msg, testTheme())
	bubble.Pending = true

	if !strings.Contains(bubble.View(), "sending") {
		t.Error("expected pending indicator")
	}
}

func TestMessageBubble_AudioAttachment(t *testing.T) {
	att := model.NewLocalAttachment(model.AttachmentAudio, "robin.mp3", "audio/mpeg", []byte("riff"))
	msg := model.NewUserMessage("", att)
	bubble := NewMessageBubble(msg, testTheme())

	out := bubble.View()
	if !strings.Contains(out, "robin.mp3") {
		t.Error("expected attachment name in bubble")
	}
	if !strings.Contains(out, "[audio]") {
		t.Error("expected attachment kind tag")
	}
}

func TestMessageBubble_RemoteAttachmentResolvesURL(t *testing.T) {
	att := model.NewRemoteAttachment(model.AttachmentAudio, "chat-1/m1.mp3")
	msg := model.NewUserMessage("", att)
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(120)
	bubble.BaseURL = "http://localhost:9000"
	bubble.ModelTag = "llm-cnn"

	out := bubble.View()
	if !strings.Contains(out, "http://localhost:9000/llm-cnn/audio/chat-1/m1.mp3") {
		t.Errorf("expected resolved audio URL, got:\n%s", out)
	}
}

func TestMessageBubble_RemoteImageResolvesURL(t *testing.T) {
	att := model.NewRemoteAttachment(model.AttachmentImage, "chat-1/m2.jpg")
	msg := model.NewUserMessage("", att)
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(120)
	bubble.BaseURL = "http://localhost:9000"
	bubble.ModelTag = "llm"

	if !strings.Contains(bubble.View(), "http://localhost:9000/llm/images/chat-1/m2.jpg") {
		t.Error("expected resolved image URL")
	}
}

func TestMessageBubble_RemoteAttachmentWithoutBaseURL(t *testing.T) {
	att := model.NewRemoteAttachment(model.AttachmentAudio, "chat-1/m1.mp3")
	msg := model.NewUserMessage("", att)
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(120)

	// No base URL known: fall back to the server-relative path.
	if !strings.Contains(bubble.View(), "chat-1/m1.mp3") {
		t.Error("expected relative path fallback")
	}
}

func TestMessageList_PropagatesURLResolution(t *testing.T) {
	att := model.NewRemoteAttachment(model.AttachmentAudio, "c9/m4.mp3")
	ml := NewMessageList(testTheme())
	ml.Width = 120
	ml.BaseURL = "http://localhost:9000"
	ml.ModelTag = "llm-cnn"
	ml.SetMessages([]*model.Message{model.NewUserMessage("", att)})

	if !strings.Contains(ml.View(), "http://localhost:9000/llm-cnn/audio/c9/m4.mp3") {
		t.Error("expected list to hand base URL down to bubbles")
	}
}

func TestMessageBubble_ClassifierResult(t *testing.T) {
	msg := &model.Message{
		Role: model.RoleCNN,
		Results: &model.Results{
			PredictionLabel: "European Robin",
			Accuracy:        97.4,
		},
		Timestamp: time.Now(),
	}
	bubble := NewMessageBubble(msg, testTheme())

	out := bubble.View()
	if !strings.Contains(out, "European Robin") {
		t.Error("expected prediction label")
	}
	if !strings.Contains(out, "97.4%") {
		t.Error("expected accuracy percentage")
	}
}

func TestMessageBubble_NilMessage(t *testing.T) {
	bubble := NewMessageBubble(nil, testTheme())
	if bubble.View() == "" {
		t.Error("expected non-empty fallback render")
	}
}

func TestMessageList_EmptyState(t *testing.T) {
	ml := NewMessageList(testTheme())
	if !strings.Contains(ml.View(), "No messages yet") {
		t.Error("expected empty state text")
	}
}

func TestMessageList_PendingHighlight(t *testing.T) {
	msg := model.NewUserMessage("pending one", nil)
	ml := NewMessageList(testTheme())
	ml.SetMessages([]*model.Message{msg})
	ml.PendingID = msg.ID

	if !strings.Contains(ml.View(), "sending") {
		t.Error("expected pending message marked as sending")
	}
}

func TestHeader_View(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(80)
	h.SetModelTag("llm-cnn")
	h.SetChatTitle("Robin sighting")

	out := h.View()
	if !strings.Contains(out, "birdwatch") {
		t.Error("expected app title")
	}
	if !strings.Contains(out, "LLM-CNN") {
		t.Error("expected uppercased model badge")
	}
	if !strings.Contains(out, "Robin sighting") {
		t.Error("expected chat title")
	}
}

func TestStatusBar_States(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(120)

	sb.SetStatus(StatusSubmitting)
	if !strings.Contains(sb.View(), "Sending") {
		t.Error("expected submitting status text")
	}

	sb.SetStatus(StatusError)
	sb.SetNote("upload failed")
	out := sb.View()
	if !strings.Contains(out, "Error") || !strings.Contains(out, "upload failed") {
		t.Error("expected error status with note")
	}
}

func TestErrorBanner_Unreachable(t *testing.T) {
	banner := NewErrorBanner(api.ErrUnreachable, testTheme())
	out := banner.View()
	if !strings.Contains(out, "Cannot reach") {
		t.Error("expected unreachable title")
	}
	if !strings.Contains(out, "BIRDWATCH_API_URL") {
		t.Error("expected recovery hint")
	}
}

func TestErrorBanner_Generic(t *testing.T) {
	banner := NewErrorBanner(errors.New("boom"), testTheme())
	out := banner.View()
	if !strings.Contains(out, "Something went wrong") {
		t.Error("expected generic title")
	}
	if !strings.Contains(out, "boom") {
		t.Error("expected error detail")
	}
}

func TestInputArea_AttachmentStaging(t *testing.T) {
	in := NewInputArea(testTheme())
	in.SetWidth(80)

	if in.Attachment() != nil {
		t.Fatal("expected no staged attachment initially")
	}

	att := model.NewLocalAttachment(model.AttachmentImage, "wing.jpg", "image/jpeg", []byte("jpg"))
	in.SetAttachment(att)

	if !strings.Contains(in.View(), "wing.jpg") {
		t.Error("expected staged attachment shown")
	}

	in.ClearAttachment()
	if in.Attachment() != nil {
		t.Error("expected attachment cleared")
	}
}

func TestSpinner_Lifecycle(t *testing.T) {
	s := NewThinkingSpinner()
	if s.Active() {
		t.Error("spinner should start inactive")
	}
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.Active() {
		t.Error("spinner should be active after Start")
	}
	if !strings.Contains(s.View(), "Identifying") {
		t.Error("expected spinner message")
	}

	s.Stop()
	if s.Active() {
		t.Error("spinner should be inactive after Stop")
	}
}

func TestWelcome_View(t *testing.T) {
	w := NewWelcome(testTheme())
	w.SetVersion("1.0.0")
	w.SetModelTag("llm")

	out := w.View()
	if !strings.Contains(out, "birdwatch 1.0.0") {
		t.Error("expected title with version")
	}
	if !strings.Contains(out, "/attach") {
		t.Error("expected attach hint")
	}
	if !strings.Contains(out, "llm") {
		t.Error("expected active model tag")
	}
}
