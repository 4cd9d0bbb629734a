// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Roles
// ============================================================================

// Role identifies the author of a message.
type Role string

const (
	// RoleUser is a message typed or recorded by the birdwatcher.
	RoleUser Role = "user"
	// RoleAssistant is a reply from the language model.
	RoleAssistant Role = "assistant"
	// RoleCNN is a species identification produced by the audio classifier.
	RoleCNN Role = "cnn"
)

// DisplayName returns the label shown next to messages of this role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleCNN:
		return "Classifier"
	default:
		return string(r)
	}
}

// ============================================================================
// Results
// ============================================================================

// Results is a species prediction attached to a classifier message.
type Results struct {
	PredictionLabel string  `json:"prediction_label"`
	Accuracy        float64 `json:"accuracy"`
}

// ============================================================================
// Message
// ============================================================================

// Message is a single entry in a chat transcript.
type Message struct {
	ID         string
	Role       Role
	Content    string
	Attachment *Attachment
	Results    *Results
	Timestamp  time.Time
}

// NewUserMessage creates a user message with a fresh client-side ID.
// Either content or attachment may be empty, but not both; callers
// validate before constructing.
func NewUserMessage(content string, att *Attachment) *Message {
	return &Message{
		ID:         uuid.NewString(),
		Role:       RoleUser,
		Content:    content,
		Attachment: att,
		Timestamp:  time.Now(),
	}
}

// HasAudio reports whether the message carries an audio attachment.
func (m *Message) HasAudio() bool {
	return m.Attachment != nil && m.Attachment.Kind() == AttachmentAudio
}

// HasImage reports whether the message carries an image attachment.
func (m *Message) HasImage() bool {
	return m.Attachment != nil && m.Attachment.Kind() == AttachmentImage
}

// ShowContent reports whether the text body should be rendered. User
// messages whose only payload is a recording carry placeholder text that
// is hidden; assistant text always shows.
func (m *Message) ShowContent() bool {
	if m.Content == "" {
		return false
	}
	return !m.HasAudio() || m.Role == RoleAssistant
}

// ============================================================================
// Wire Format
// ============================================================================

// wireMessage mirrors the JSON shape the API produces and consumes.
// Attachments are flattened: inline payloads use audio/image, server-side
// media uses audio_path/image_path. Exactly one of each pair is set.
type wireMessage struct {
	MessageID string   `json:"message_id,omitempty"`
	Role      Role     `json:"role"`
	Content   string   `json:"content,omitempty"`
	Name      string   `json:"name,omitempty"`
	Audio     string   `json:"audio,omitempty"`
	AudioPath string   `json:"audio_path,omitempty"`
	Image     string   `json:"image,omitempty"`
	ImagePath string   `json:"image_path,omitempty"`
	Results   *Results `json:"results,omitempty"`
	Timestamp int64    `json:"timestamp,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m *Message) MarshalJSON() ([]byte, error) {
	w := wireMessage{
		MessageID: m.ID,
		Role:      m.Role,
		Content:   m.Content,
		Results:   m.Results,
	}
	if !m.Timestamp.IsZero() {
		w.Timestamp = m.Timestamp.Unix()
	}
	if a := m.Attachment; a != nil {
		switch {
		case a.Kind() == AttachmentAudio && a.IsLocal():
			w.Audio = encodeInline(a.Data())
			w.Name = a.Name()
		case a.Kind() == AttachmentAudio:
			w.AudioPath = a.Path()
		case a.IsLocal():
			w.Image = encodeInline(a.Data())
			w.Name = a.Name()
		default:
			w.ImagePath = a.Path()
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.ID = w.MessageID
	m.Role = w.Role
	m.Content = w.Content
	m.Results = w.Results
	m.Attachment = nil
	m.Timestamp = time.Time{}
	if w.Timestamp != 0 {
		m.Timestamp = time.Unix(w.Timestamp, 0)
	}
	switch {
	case w.Audio != "":
		m.Attachment = NewLocalAttachment(AttachmentAudio, w.Name, "audio/mpeg", decodeInline(w.Audio))
	case w.AudioPath != "":
		m.Attachment = NewRemoteAttachment(AttachmentAudio, w.AudioPath)
	case w.Image != "":
		m.Attachment = NewLocalAttachment(AttachmentImage, w.Name, "image/jpeg", decodeInline(w.Image))
	case w.ImagePath != "":
		m.Attachment = NewRemoteAttachment(AttachmentImage, w.ImagePath)
	}
	return nil
}
