// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ============================================================================
// Attachment Kinds
// ============================================================================

// AttachmentKind identifies the media type of an attachment.
type AttachmentKind int

const (
	// AttachmentAudio is a bird sound recording.
	AttachmentAudio AttachmentKind = iota
	// AttachmentImage is a bird photo.
	AttachmentImage
)

// String returns a human-readable name for the kind.
func (k AttachmentKind) String() string {
	switch k {
	case AttachmentAudio:
		return "audio"
	case AttachmentImage:
		return "image"
	default:
		return "unknown"
	}
}

// ============================================================================
// Attachment
// ============================================================================

// Attachment is media carried by a message. It is exactly one of two
// variants: local (raw bytes captured on this machine, not yet uploaded)
// or remote (a server-side path returned after processing). The fields are
// unexported so the variant invariant cannot be broken by construction.
type Attachment struct {
	kind AttachmentKind

	// Local variant.
	data []byte
	name string
	mime string

	// Remote variant.
	path string
}

// NewLocalAttachment creates a local attachment from raw bytes.
func NewLocalAttachment(kind AttachmentKind, name, mime string, data []byte) *Attachment {
	return &Attachment{
		kind: kind,
		data: data,
		name: name,
		mime: mime,
	}
}

// NewRemoteAttachment creates a remote attachment from a server-side path.
func NewRemoteAttachment(kind AttachmentKind, path string) *Attachment {
	return &Attachment{
		kind: kind,
		path: path,
	}
}

// Kind returns the media type of the attachment.
func (a *Attachment) Kind() AttachmentKind {
	return a.kind
}

// IsLocal reports whether the attachment holds local bytes rather than a
// remote path.
func (a *Attachment) IsLocal() bool {
	return a.path == ""
}

// Data returns the raw bytes of a local attachment, or nil for remote.
func (a *Attachment) Data() []byte {
	return a.data
}

// Name returns the original filename of a local attachment.
func (a *Attachment) Name() string {
	return a.name
}

// MIME returns the media type of a local attachment.
func (a *Attachment) MIME() string {
	return a.mime
}

// Path returns the server-side path of a remote attachment, or "" for local.
func (a *Attachment) Path() string {
	return a.path
}

// Size returns the byte length of a local attachment, 0 for remote.
func (a *Attachment) Size() int {
	return len(a.data)
}

// DataURI renders a local attachment as a data: URI suitable for inline
// playback or display. Returns "" for remote attachments.
func (a *Attachment) DataURI() string {
	if !a.IsLocal() {
		return ""
	}
	mime := a.mime
	if mime == "" {
		mime = defaultMIME(a.kind)
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(a.data))
}

func defaultMIME(kind AttachmentKind) string {
	if kind == AttachmentImage {
		return "image/jpeg"
	}
	return "audio/mpeg"
}

// decodeInline converts inline payload text from the wire into raw bytes.
// The server emits plain base64; data URIs are accepted too. Text that is
// not valid base64 is kept verbatim.
func decodeInline(s string) []byte {
	if idx := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && idx >= 0 {
		s = s[idx+len(";base64,"):]
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b
	}
	return []byte(s)
}

// encodeInline renders local bytes as the plain base64 the server expects.
func encodeInline(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
