// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/model"
)

func confirmedChat(id string, contents ...string) *model.Chat {
	c := &model.Chat{
		ChatID: id,
		Model:  "llm",
		DTS:    time.Now().Unix(),
	}
	for i, content := range contents {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		c.Messages = append(c.Messages, &model.Message{
			ID:      content,
			Role:    role,
			Content: content,
		})
	}
	return c
}

// ==========================================================================
// SUBMIT
// ==========================================================================

func TestSubmit_OptimisticAppendThenReplace(t *testing.T) {
	c := NewController("llm")

	pending, seq, err := c.BeginSubmit("small bird, red breast", nil)
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if c.State() != StateSubmitting {
		t.Fatalf("expected StateSubmitting, got %v", c.State())
	}

	// The optimistic message is visible immediately.
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0] != pending {
		t.Fatal("expected pending message in transcript")
	}
	if c.PendingID() != pending.ID {
		t.Error("PendingID mismatch")
	}

	// Server reply replaces the snapshot wholesale.
	reply := confirmedChat("chat-1", "small bird, red breast", "Sounds like a European Robin.")
	if !c.ApplySubmitDone(seq, reply, nil) {
		t.Fatal("ApplySubmitDone should apply")
	}

	if c.State() != StateReady {
		t.Errorf("expected StateReady, got %v", c.State())
	}
	if c.Pending() != nil {
		t.Error("pending overlay should be dropped after confirmation")
	}
	if c.ChatID() != "chat-1" {
		t.Errorf("expected chat-1, got %q", c.ChatID())
	}
	msgs = c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 confirmed messages, got %d", len(msgs))
	}
	// The server's version of the user message wins, not the optimistic one.
	if msgs[0] == pending {
		t.Error("optimistic message should have been replaced by the server copy")
	}
}

func TestSubmit_FailureRollsBackExactly(t *testing.T) {
	c := NewController("llm")

	// Establish a confirmed chat first.
	base := confirmedChat("chat-1", "first", "reply")
	seq, _ := c.BeginLoad()
	c.ApplyLoaded(seq, base, nil)

	before := c.Messages()

	_, subSeq, err := c.BeginSubmit("second question", nil)
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if got := len(c.Messages()); got != 3 {
		t.Fatalf("expected 3 messages during flight, got %d", got)
	}

	boom := errors.New("upload failed")
	if !c.ApplySubmitDone(subSeq, nil, boom) {
		t.Fatal("ApplySubmitDone should apply")
	}

	if c.State() != StateError {
		t.Errorf("expected StateError, got %v", c.State())
	}
	if !errors.Is(c.Err(), boom) {
		t.Errorf("expected stored error, got %v", c.Err())
	}

	// Transcript is back to its exact pre-submit state.
	after := c.Messages()
	if len(after) != len(before) {
		t.Fatalf("expected %d messages after rollback, got %d", len(before), len(after))
	}
	for i := range after {
		if after[i] != before[i] {
			t.Errorf("message %d changed across rollback", i)
		}
	}

	// Dismissing the error returns to Ready since a chat is active.
	c.DismissError()
	if c.State() != StateReady {
		t.Errorf("expected StateReady after dismiss, got %v", c.State())
	}
}

func TestSubmit_EmptyRejectedLocally(t *testing.T) {
	c := NewController("llm")

	_, _, err := c.BeginSubmit("", nil)
	if !errors.Is(err, ErrEmptySubmission) {
		t.Fatalf("expected ErrEmptySubmission, got %v", err)
	}
	if c.State() != StateIdle {
		t.Errorf("state should be unchanged, got %v", c.State())
	}
	if c.Pending() != nil {
		t.Error("no pending message should exist")
	}
}

func TestSubmit_AttachmentOnlyAccepted(t *testing.T) {
	c := NewController("llm-cnn")

	att := model.NewLocalAttachment(model.AttachmentAudio, "song.mp3", "audio/mpeg", []byte("riff"))
	pending, _, err := c.BeginSubmit("", att)
	if err != nil {
		t.Fatalf("attachment-only submit should be accepted: %v", err)
	}
	if pending.Attachment != att {
		t.Error("pending message should carry the attachment")
	}
}

func TestSubmit_ReentrancyRejected(t *testing.T) {
	c := NewController("llm")

	_, _, err := c.BeginSubmit("first", nil)
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	_, _, err = c.BeginSubmit("second", nil)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if len(c.Messages()) != 1 {
		t.Error("rejected submit must not add a message")
	}
}

func TestSubmit_StaleResponseDiscarded(t *testing.T) {
	c := NewController("llm")

	_, seqA, _ := c.BeginSubmit("question A", nil)

	// A fails, user retries with B.
	c.ApplySubmitDone(seqA, nil, errors.New("timeout"))
	c.DismissError()
	_, seqB, err := c.BeginSubmit("question B", nil)
	if err != nil {
		t.Fatalf("retry BeginSubmit: %v", err)
	}

	// A's response arrives late: discarded.
	lateA := confirmedChat("chat-A", "question A", "answer A")
	if c.ApplySubmitDone(seqA, lateA, nil) {
		t.Fatal("stale response should be discarded")
	}
	if c.State() != StateSubmitting {
		t.Errorf("state should still be Submitting, got %v", c.State())
	}
	if c.ChatID() != "" {
		t.Error("stale response must not install a snapshot")
	}

	// B's response wins.
	replyB := confirmedChat("chat-B", "question B", "answer B")
	if !c.ApplySubmitDone(seqB, replyB, nil) {
		t.Fatal("current response should apply")
	}
	if c.ChatID() != "chat-B" {
		t.Errorf("expected chat-B, got %q", c.ChatID())
	}
}

// ==========================================================================
// LOAD
// ==========================================================================

func TestLoad_LastRequestWins(t *testing.T) {
	c := NewController("llm")

	seqA, _ := c.BeginLoad()
	seqB, err := c.BeginLoad()
	if err != nil {
		t.Fatalf("second BeginLoad should supersede the first: %v", err)
	}

	// A arrives late, after B was requested: discarded.
	if c.ApplyLoaded(seqA, confirmedChat("chat-A", "a"), nil) {
		t.Fatal("superseded load should be discarded")
	}
	if !c.ApplyLoaded(seqB, confirmedChat("chat-B", "b"), nil) {
		t.Fatal("latest load should apply")
	}
	if c.ChatID() != "chat-B" {
		t.Errorf("expected chat-B, got %q", c.ChatID())
	}
}

func TestLoad_RejectedWhileSubmitting(t *testing.T) {
	c := NewController("llm")
	_, _, _ = c.BeginSubmit("in flight", nil)

	_, err := c.BeginLoad()
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestLoad_ErrorEntersErrorState(t *testing.T) {
	c := NewController("llm")

	seq, _ := c.BeginLoad()
	boom := errors.New("not found")
	if !c.ApplyLoaded(seq, nil, boom) {
		t.Fatal("ApplyLoaded should apply")
	}
	if c.State() != StateError {
		t.Errorf("expected StateError, got %v", c.State())
	}

	// No chat was active, so dismissing returns to Idle.
	c.DismissError()
	if c.State() != StateIdle {
		t.Errorf("expected StateIdle after dismiss, got %v", c.State())
	}
}

// ==========================================================================
// MODEL SWITCHING
// ==========================================================================

func TestSwitchModel_ClearsActiveChat(t *testing.T) {
	c := NewController("llm")
	seq, _ := c.BeginLoad()
	c.ApplyLoaded(seq, confirmedChat("chat-1", "hello", "hi"), nil)

	if err := c.SwitchModel("llm-cnn"); err != nil {
		t.Fatalf("SwitchModel: %v", err)
	}
	if c.ModelTag() != "llm-cnn" {
		t.Errorf("expected llm-cnn, got %q", c.ModelTag())
	}
	if c.Chat() != nil || c.ChatID() != "" {
		t.Error("switching models should clear the active chat")
	}
	if c.State() != StateIdle {
		t.Errorf("expected StateIdle, got %v", c.State())
	}
}

func TestSwitchModel_SameTagIsNoop(t *testing.T) {
	c := NewController("llm")
	seq, _ := c.BeginLoad()
	c.ApplyLoaded(seq, confirmedChat("chat-1", "hello"), nil)

	if err := c.SwitchModel("llm"); err != nil {
		t.Fatalf("SwitchModel: %v", err)
	}
	if c.ChatID() != "chat-1" {
		t.Error("switching to the current model should keep the chat")
	}
}

func TestSwitchModel_RejectedWhileSubmitting(t *testing.T) {
	c := NewController("llm")
	_, _, _ = c.BeginSubmit("in flight", nil)

	if err := c.SwitchModel("llm-rag"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if c.ModelTag() != "llm" {
		t.Error("model tag must not change on rejection")
	}
}

func TestSwitchModel_UnknownTagRejected(t *testing.T) {
	c := NewController("llm")
	if err := c.SwitchModel("llm-quantum"); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

// ==========================================================================
// NEW CHAT
// ==========================================================================

func TestNewChat_ResetsToIdle(t *testing.T) {
	c := NewController("llm")
	seq, _ := c.BeginLoad()
	c.ApplyLoaded(seq, confirmedChat("chat-1", "hello"), nil)

	if err := c.NewChat(); err != nil {
		t.Fatalf("NewChat: %v", err)
	}
	if c.State() != StateIdle || c.Chat() != nil {
		t.Error("NewChat should clear the session")
	}
	if len(c.Messages()) != 0 {
		t.Error("transcript should be empty")
	}
}

func TestNewChat_RejectedWhileSubmitting(t *testing.T) {
	c := NewController("llm")
	_, _, _ = c.BeginSubmit("in flight", nil)

	if err := c.NewChat(); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

// ==========================================================================
// SNAPSHOT IMMUTABILITY
// ==========================================================================

func TestMessages_DoesNotAliasSnapshot(t *testing.T) {
	c := NewController("llm")
	seq, _ := c.BeginLoad()
	snapshot := confirmedChat("chat-1", "one", "two")
	c.ApplyLoaded(seq, snapshot, nil)

	msgs := c.Messages()
	msgs[0] = &model.Message{Role: model.RoleUser, Content: "mutated"}

	if c.Messages()[0].Content != "one" {
		t.Error("mutating the returned slice must not affect the snapshot")
	}
	if snapshot.Messages[0].Content != "one" {
		t.Error("snapshot messages changed")
	}
}
