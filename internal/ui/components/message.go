// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the birdwatch TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single chat message as a styled bubble.
// BaseURL and ModelTag let remote attachments render as the full media
// URL instead of the server-relative path.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	Pending       bool
	ShowTimestamp bool
	BaseURL       string
	ModelTag      string
	theme         *styles.Theme
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleAssistant}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleCNN:
		return b.renderResultBubble()
	default:
		return b.renderAssistantBubble()
	}
}

// ==========================================================================
// USER BUBBLE - Sky tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	var parts []string

	if att := b.Message.Attachment; att != nil {
		parts = append(parts, b.attachmentLine(att))
	}
	if b.Message.ShowContent() {
		parts = append(parts, b.Message.Content)
	}
	if len(parts) == 0 {
		parts = append(parts, "...")
	}
	content := strings.Join(parts, "\n")

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth)

	bubble := bubbleStyle.Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	label := strings.ToLower(b.Message.Role.DisplayName())
	if b.Pending {
		label += " (sending)"
	}
	header := roleStyle.Render(label)
	if ts := b.renderTimestamp(); ts != "" {
		header += " " + ts
	}

	// Right-align the bubble with a left margin.
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Green tones, left-aligned, markdown rendered
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	rendered, err := RenderMarkdown(content, maxContentWidth)
	if err != nil {
		rendered = wordWrap(content, maxContentWidth)
	}
	contentWidth := minInt(maxLineWidth(rendered)+4, b.Width-8)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.AssistantBubbleFg).
		Background(styles.AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.AssistantBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4)

	bubble := bubbleStyle.Render(rendered)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render(strings.ToLower(b.Message.Role.DisplayName()))
	if ts := b.renderTimestamp(); ts != "" {
		header += " " + ts
	}

	result := lipgloss.JoinVertical(lipgloss.Left, header, bubble)

	if att := b.Message.Attachment; att != nil {
		attLine := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			PaddingLeft(2).
			Render(b.attachmentLine(att))
		result = lipgloss.JoinVertical(lipgloss.Left, result, attLine)
	}

	return result
}

// ==========================================================================
// RESULT BUBBLE - Violet tones, classification output
// ==========================================================================

func (b *MessageBubble) renderResultBubble() string {
	var parts []string

	if r := b.Message.Results; r != nil {
		labelStyle := lipgloss.NewStyle().Bold(true)
		parts = append(parts,
			labelStyle.Render(r.PredictionLabel)+
				"  "+util.FormatAccuracy(r.Accuracy)+" match")
	}
	if b.Message.Content != "" {
		parts = append(parts, b.Message.Content)
	}
	if len(parts) == 0 {
		parts = append(parts, "No classification result")
	}
	content := strings.Join(parts, "\n")

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubbleStyle := lipgloss.NewStyle().
		Foreground(styles.ResultBubbleFg).
		Background(styles.ResultBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.ResultBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4)

	bubble := bubbleStyle.Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render(strings.ToLower(b.Message.Role.DisplayName()))
	if ts := b.renderTimestamp(); ts != "" {
		header += " " + ts
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// ==========================================================================
// HELPER METHODS
// ==========================================================================

// attachmentLine renders a one-line summary of an attachment. Remote
// attachments carry a server-relative media path; when the bubble knows
// the base URL the line shows the resolved absolute URL.
func (b *MessageBubble) attachmentLine(att *model.Attachment) string {
	tag := "[" + att.Kind().String() + "]"
	switch {
	case att.IsLocal():
		return localAttachmentLine(att)
	case att.Path() != "" && b.BaseURL != "":
		if att.Kind() == model.AttachmentImage {
			return tag + " " + api.ChatImageURL(b.BaseURL, b.ModelTag, att.Path())
		}
		return tag + " " + api.ChatAudioURL(b.BaseURL, b.ModelTag, att.Path())
	case att.Path() != "":
		return tag + " " + att.Path()
	default:
		return tag
	}
}

// localAttachmentLine renders the name-and-size summary of a local file,
// shared with the composer's staged-attachment row.
func localAttachmentLine(att *model.Attachment) string {
	line := "[" + att.Kind().String() + "] " + att.Name()
	if att.Size() > 0 {
		line += " (" + util.FormatSize(att.Size()) + ")"
	}
	return line
}

// renderTimestamp renders a dimmed relative timestamp.
func (b *MessageBubble) renderTimestamp() string {
	if !b.ShowTimestamp || b.Message.Timestamp.IsZero() {
		return ""
	}
	timestampStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	return timestampStyle.Render(util.FormatRelativeTime(b.Message.Timestamp, time.Now()))
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within the specified width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if util.RuneLen(currentLine)+1+util.RuneLen(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the display width of the longest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a chat transcript as a column of bubbles.
// BaseURL and ModelTag are handed down to each bubble so remote
// attachments resolve to absolute media URLs.
type MessageList struct {
	Messages       []*model.Message
	PendingID      string
	Width          int
	ShowTimestamps bool
	BaseURL        string
	ModelTag       string
	theme          *styles.Theme
}

// NewMessageList creates an empty message list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Messages:       []*model.Message{},
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []*model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages separated by blank lines.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return emptyStyle.Render("No messages yet. Describe a bird or attach a recording!")
	}

	var bubbles []string
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.BaseURL = ml.BaseURL
		bubble.ModelTag = ml.ModelTag
		bubble.Pending = msg.ID != "" && msg.ID == ml.PendingID
		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n")
}
