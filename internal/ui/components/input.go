// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// INPUT AREA COMPONENT - Text input with staged attachment display
// =============================================================================

// InputArea is the composer: a text input plus an optional staged attachment
// shown above it.
type InputArea struct {
	input      textinput.Model
	attachment *model.Attachment
	width      int
	focused    bool
	theme      *styles.Theme
}

// NewInputArea creates the composer component.
func NewInputArea(theme *styles.Theme) *InputArea {
	ti := textinput.New()
	ti.Placeholder = "Describe a bird, or /attach a recording..."
	ti.CharLimit = 4096
	ti.Width = 70
	ti.Prompt = "> "

	ti.PromptStyle = lipgloss.NewStyle().
		Foreground(styles.Sky).
		Bold(true)
	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Sky)

	return &InputArea{
		input: ti,
		width: 80,
		theme: theme,
	}
}

// Focus focuses the input.
func (i *InputArea) Focus() tea.Cmd {
	i.focused = true
	return i.input.Focus()
}

// Blur removes focus from the input.
func (i *InputArea) Blur() {
	i.focused = false
	i.input.Blur()
}

// Focused reports whether the input has focus.
func (i *InputArea) Focused() bool {
	return i.focused
}

// SetWidth sets the composer width.
func (i *InputArea) SetWidth(width int) {
	i.width = width
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	i.input.Width = inputWidth
}

// Value returns the current input text.
func (i *InputArea) Value() string {
	return i.input.Value()
}

// SetValue replaces the current input text.
func (i *InputArea) SetValue(value string) {
	i.input.SetValue(value)
}

// Reset clears the input text. The staged attachment is left alone so a
// failed send can be retried without re-attaching.
func (i *InputArea) Reset() {
	i.input.Reset()
}

// Attachment returns the staged attachment, or nil.
func (i *InputArea) Attachment() *model.Attachment {
	return i.attachment
}

// SetAttachment stages an attachment for the next send.
func (i *InputArea) SetAttachment(att *model.Attachment) {
	i.attachment = att
}

// ClearAttachment removes the staged attachment.
func (i *InputArea) ClearAttachment() {
	i.attachment = nil
}

// Update forwards messages to the underlying text input.
func (i *InputArea) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return cmd
}

// View renders the composer.
func (i *InputArea) View() string {
	boxStyle := i.theme.Input
	if i.focused {
		boxStyle = i.theme.InputActive
	}
	box := boxStyle.Width(i.width - 2).Render(i.input.View())

	if i.attachment == nil {
		return box
	}

	line := localAttachmentLine(i.attachment) + "  (ctrl+x to remove)"
	attStyle := lipgloss.NewStyle().
		Foreground(styles.Sky).
		PaddingLeft(1)
	staged := attStyle.Render(util.TruncateWidth(line, i.width-2))

	return lipgloss.JoinVertical(lipgloss.Left, staged, box)
}
